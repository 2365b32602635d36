package utils

import (
	"context"
	"testing"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/store"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	var h panicHandler
	r := NewRecovery()

	ctx := context.Background()
	s := store.MemStore()

	// Panic handler panics. Test the test tool.
	assert.Panics(t, func() { h.Check(ctx, s, nil) })
	assert.Panics(t, func() { h.Deliver(ctx, s, nil) })

	// Recovery wrapped handler returns an error.
	_, err := r.Check(ctx, s, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))

	_, err = r.Deliver(ctx, s, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))
}

type panicHandler struct{}

var _ rampart.Handler = panicHandler{}

func (p panicHandler) Check(ctx rampart.Context, store rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	panic("check panic")
}

func (p panicHandler) Deliver(ctx rampart.Context, store rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	panic("deliver panic")
}
