package app

import (
	"testing"

	"github.com/rampart-io/rampart/ramparttest/assert"
	"github.com/rampart-io/rampart/store/iavl"
)

func TestCommitStoreIsolation(t *testing.T) {
	cs, err := NewCommitStore(iavl.MockCommitStore())
	if err != nil {
		t.Fatalf("cannot create the commit store: %s", err)
	}

	k, v := []byte("state"), []byte("proposed")

	// a deliver write is not visible through the check cache
	assert.Nil(t, cs.DeliverStore().Set(k, v))
	got, err := cs.CheckStore().Get(k)
	assert.Nil(t, err)
	if got != nil {
		t.Fatalf("deliver write leaked into the check cache: %q", got)
	}

	// a check write must never survive a commit
	assert.Nil(t, cs.CheckStore().Set([]byte("gone"), []byte("soon")))

	id, err := cs.Commit()
	assert.Nil(t, err)
	if id.Version != 1 {
		t.Fatalf("want version 1, got %d", id.Version)
	}
	if len(id.Hash) == 0 {
		t.Fatal("commit must produce a non-empty hash")
	}

	// after the commit both fresh caches see the delivered value
	got, err = cs.CheckStore().Get(k)
	assert.Nil(t, err)
	assert.Equal(t, v, got)
	got, err = cs.DeliverStore().Get(k)
	assert.Nil(t, err)
	assert.Equal(t, v, got)

	gone, err := cs.DeliverStore().Get([]byte("gone"))
	assert.Nil(t, err)
	if gone != nil {
		t.Fatalf("check write survived the commit: %q", gone)
	}

	info, err := cs.CommitInfo()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), info.Version)
}

func TestCommitStoreSequentialCommits(t *testing.T) {
	cs, err := NewCommitStore(iavl.MockCommitStore())
	if err != nil {
		t.Fatalf("cannot create the commit store: %s", err)
	}

	for i := 1; i <= 3; i++ {
		assert.Nil(t, cs.DeliverStore().Set([]byte{byte(i)}, []byte{byte(i)}))
		id, err := cs.Commit()
		assert.Nil(t, err)
		assert.Equal(t, int64(i), id.Version)
	}

	// all previously committed values are visible
	for i := 1; i <= 3; i++ {
		got, err := cs.DeliverStore().Get([]byte{byte(i)})
		assert.Nil(t, err)
		assert.Equal(t, []byte{byte(i)}, got)
	}
}
