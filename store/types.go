package store

import (
	"github.com/rampart-io/rampart"
)

// Move references for all storage types into this package
// for shorter names everywhere.

type ReadOnlyKVStore = rampart.ReadOnlyKVStore
type KVStore = rampart.KVStore
type SetDeleter = rampart.SetDeleter
type Batch = rampart.Batch
type Iterator = rampart.Iterator
type CacheableKVStore = rampart.CacheableKVStore
type KVCacheWrap = rampart.KVCacheWrap
type CommitKVStore = rampart.CommitKVStore
type CommitID = rampart.CommitID
type Model = rampart.Model

// Pair is re-exported to keep test fixtures short.
var Pair = rampart.Pair
