package app

import (
	"testing"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/ramparttest/assert"
	"github.com/rampart-io/rampart/store"
)

type initRecorder struct {
	calls int
	err   error
}

func (r *initRecorder) FromOptions(opts rampart.Options, kv rampart.KVStore) error {
	r.calls++
	return r.err
}

func TestChainInitializers(t *testing.T) {
	first := &initRecorder{}
	second := &initRecorder{}

	init := ChainInitializers(nil, first, second)
	err := init.FromOptions(rampart.Options{}, store.MemStore())
	assert.Nil(t, err)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestChainInitializersStopsOnError(t *testing.T) {
	first := &initRecorder{err: errors.ErrInput}
	second := &initRecorder{}

	init := ChainInitializers(first, second)
	err := init.FromOptions(rampart.Options{}, store.MemStore())
	if !errors.ErrInput.Is(err) {
		t.Fatalf("want an input error, got %+v", err)
	}
	assert.Equal(t, 0, second.calls)
}
