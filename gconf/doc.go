/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration object under the "_c:<pkg>" key.
It is loaded from the genesis "conf" section when the chain starts and read
by handlers on every call. Configuration objects are serialized with amino.
*/
package gconf
