package rampart

// ReadOnlyKVStore is a simple interface to read data.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist. Errors on nil key.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists. Errors on nil key.
	Has(key []byte) (bool, error)

	// Iterator over a domain of keys in ascending order. End is exclusive.
	// Start must be less than end, or the Iterator is invalid.
	// CONTRACT: No writes may happen within a domain while an iterator
	// exists over it.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator over a domain of keys in descending order. End is
	// exclusive. Start must be less than end, or the Iterator is invalid.
	// CONTRACT: No writes may happen within a domain while an iterator
	// exists over it.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is a minimal interface for writing.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is a simple interface to get/set data.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter

	// NewBatch returns a batch that can write multiple ops atomically.
	NewBatch() Batch
}

// Batch groups writes to apply them in one call.
type Batch interface {
	SetDeleter
	Write() error
}

/*
Iterator allows iteration over a set of items within a range of keys. These
may all be preloaded, or loaded on demand.

	var itr Iterator = ...
	defer itr.Close()

	for ; itr.Valid(); itr.Next() {
		k, v := itr.Key(), itr.Value()
		// ...
	}
*/
type Iterator interface {
	// Valid returns whether the current position is valid.
	// Once invalid, an Iterator is forever invalid.
	Valid() bool

	// Next moves the iterator to the next key in the iteration order.
	// If Valid returns false, this method panics.
	Next() error

	// Key returns the key at the cursor.
	// If Valid returns false, this method panics.
	// CONTRACT: key is readonly []byte
	Key() (key []byte)

	// Value returns the value at the cursor.
	// If Valid returns false, this method panics.
	// CONTRACT: value is readonly []byte
	Value() (value []byte)

	// Close releases the Iterator.
	Close()
}

// CacheableKVStore is a KVStore that supports CacheWrapping.
//
// CacheWrap must not return a Committer, since Commit on cache wraps makes
// no sense.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a scratch pad of uncommitted data visible to all reads
// through it. At the end, call Write to apply the writes to the parent, or
// Discard to drop them. This is how every pool and policy operation stays
// atomic: the handler runs against a cache wrap that is written through only
// on success.
type KVCacheWrap interface {
	// CacheableKVStore allows cache wrapping recursively.
	CacheableKVStore

	// Write syncs with the underlying store.
	Write() error

	// Discard invalidates this CacheWrap and releases all data.
	Discard()
}

// CommitKVStore is a store that can persist a state snapshot to disk and
// load it back on start.
type CommitKVStore interface {
	// Get returns the value at the last committed state.
	Get(key []byte) ([]byte, error)

	// CacheWrap returns a scratch pad to perform operations on.
	CacheWrap() KVCacheWrap

	// Commit persists the next version and returns its info.
	Commit() (CommitID, error)

	// LoadLatestVersion loads the latest persisted version. If there was
	// a crash during the last commit, it is guaranteed to return a stable
	// state, even if older.
	LoadLatestVersion() error

	// LatestVersion returns info on the latest version saved to disk.
	LatestVersion() (CommitID, error)
}

// CommitID contains the version number of a persisted state and its hash.
type CommitID struct {
	Version int64
	Hash    []byte
}

// Model groups a raw key with the raw serialized value stored under that
// key. It is the exchange format for iterators and range scans.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key and value.
func Pair(key, value []byte) Model {
	return Model{
		Key:   key,
		Value: value,
	}
}
