/*
Package app contains the ABCI application glue: the store handling of
StoreApp, the transaction dispatch of BaseApp, the message router and the
decorator chain.
*/
package app
