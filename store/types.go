package store

import "github.com/iov-one/barter"

// Storage types live in the root package. They are aliased here
// so the store implementations read naturally.

type ReadOnlyKVStore = barter.ReadOnlyKVStore
type SetDeleter = barter.SetDeleter
type KVStore = barter.KVStore
type Batch = barter.Batch
type Iterator = barter.Iterator
type CacheableKVStore = barter.CacheableKVStore
type KVCacheWrap = barter.KVCacheWrap
type CommitKVStore = barter.CommitKVStore
type CommitID = barter.CommitID
type Model = barter.Model

// Pair constructs a model from a key-value pair
var Pair = barter.Pair
