package iavl

import (
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"

	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/store"
)

// defaultCacheSize is the number of recently used tree nodes held in memory.
const defaultCacheSize = 10000

// CommitStore manages a merkle tree with committed, versioned state. Reads
// through the store itself observe only the last saved version. All writes
// must go through a CacheWrap and become durable on Commit.
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore creates a new store backed by the given database. Call
// LoadLatestVersion before the first use.
func NewCommitStore(db dbm.DB) *CommitStore {
	return &CommitStore{
		tree: iavl.NewMutableTree(db, defaultCacheSize),
	}
}

// MockCommitStore returns a store with in-memory backing, useful for tests.
func MockCommitStore() *CommitStore {
	return NewCommitStore(dbm.NewMemDB())
}

// Get returns the value at the last committed state.
// Returns nil iff key doesn't exist.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	_, value := s.tree.GetVersioned(key, s.tree.Version())
	return value, nil
}

// CacheWrap returns a scratch pad over the working state of the tree. On
// Write the changes are applied to the working state and become durable on
// the next Commit.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	t := treeStore{tree: s.tree}
	return store.NewBTreeCacheWrap(t, t.NewBatch(), nil)
}

// Commit saves the working state as the next version to disk and returns
// info on the saved version.
func (s *CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version. If there was a crash
// during the last commit, it is guaranteed to return a stable state, even if
// older.
func (s *CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk.
func (s *CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// treeStore adapts the working state of a mutable tree to the KVStore
// interface. Reads and writes both address the working, not yet saved state.
type treeStore struct {
	tree *iavl.MutableTree
}

var _ store.KVStore = treeStore{}

// Get returns nil iff key doesn't exist.
func (t treeStore) Get(key []byte) ([]byte, error) {
	_, value := t.tree.Get(key)
	return value, nil
}

// Has checks if a key exists.
func (t treeStore) Has(key []byte) (bool, error) {
	return t.tree.Has(key), nil
}

// Set adds a new value to the working state.
func (t treeStore) Set(key, value []byte) error {
	t.tree.Set(key, value)
	return nil
}

// Delete removes the key from the working state.
func (t treeStore) Delete(key []byte) error {
	t.tree.Remove(key)
	return nil
}

// NewBatch returns a batch that applies ops to the working state on Write.
func (t treeStore) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(t)
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (t treeStore) Iterator(start, end []byte) (store.Iterator, error) {
	return newLazyIterator(t.tree.ImmutableTree, start, end, true), nil
}

// ReverseIterator over a domain of keys in descending order. End is
// exclusive.
func (t treeStore) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return newLazyIterator(t.tree.ImmutableTree, start, end, false), nil
}
