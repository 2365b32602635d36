package store

import (
	"testing"

	"github.com/rampart-io/rampart/ramparttest/assert"
)

func TestBTreeCacheWrapSuite(t *testing.T) {
	suite := NewTestSuite(func() (CacheableKVStore, func()) {
		return MemStore(), func() {}
	})

	t.Run("GetSet", suite.GetSet)
	t.Run("CacheConflicts", suite.CacheConflicts)
	t.Run("FuzzIterator", suite.FuzzIterator)
	t.Run("IteratorWithConflicts", suite.IteratorWithConflicts)
}

func TestBTreeCacheWrapDiscard(t *testing.T) {
	base := MemStore()
	assert.Nil(t, base.Set([]byte("a"), []byte("1")))

	cache := base.CacheWrap()
	assert.Nil(t, cache.Set([]byte("b"), []byte("2")))
	assert.Nil(t, cache.Delete([]byte("a")))
	cache.Discard()

	// after the discard the same wrap holds no local changes
	v, err := cache.Get([]byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("1"), v)

	v, err = cache.Get([]byte("b"))
	assert.Nil(t, err)
	if v != nil {
		t.Fatalf("discarded write must not be visible: %q", v)
	}
}

func TestBTreeCacheWrapUnknownItemErrors(t *testing.T) {
	wrap := NewBTreeCacheWrap(EmptyKVStore{}, EmptyKVStore{}.NewBatch(), nil)
	// sneak a foreign item into the tree
	wrap.bt.ReplaceOrInsert(bkey{[]byte("rogue")})

	if _, err := wrap.Get([]byte("rogue")); err == nil {
		t.Fatal("reading an unknown btree item must fail")
	}
	if _, err := wrap.Has([]byte("rogue")); err == nil {
		t.Fatal("checking an unknown btree item must fail")
	}
}
