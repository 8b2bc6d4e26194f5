/*
Package orm provides an easy to use db wrapper.

Models are protobuf encoded and stored under a bucket specific key prefix, so
that many buckets can share a single KVStore without key collisions.
*/
package orm
