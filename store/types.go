package store

import weave "github.com/iov-one/taxweave"

// Move references for all storage types into this package for shorter names
// everywhere.

type (
	ReadOnlyKVStore  = weave.ReadOnlyKVStore
	SetDeleter       = weave.SetDeleter
	KVStore          = weave.KVStore
	Batch            = weave.Batch
	Iterator         = weave.Iterator
	CacheableKVStore = weave.CacheableKVStore
	KVCacheWrap      = weave.KVCacheWrap
)

// Model groups together key and value to return.
type Model = weave.Model

// Pair constructs a model from a key-value pair.
func Pair(key, value []byte) Model {
	return weave.Pair(key, value)
}
