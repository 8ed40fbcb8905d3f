/*
Package orm stores models under a bucket prefix of a KVStore.

A ModelBucket owns all keys starting with its name and a colon. Values are
the binary form of the model, as produced by its Marshal method. Every
bucket can be registered with a QueryRouter to expose its content over the
ABCI query interface.
*/
package orm
