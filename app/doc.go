/*
Package app contains the building blocks of an application hosting the
extensions: a message router, a decorator chain, the genesis file format
and Application, which owns the store and runs transactions one at a time.
*/
package app
