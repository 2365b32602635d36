package utils

import (
	"context"
	"fmt"
	"testing"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	// always write ok, ov before calling functions
	ok, ov := []byte("demo"), []byte("data")
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}
	// a default error if desired
	derr := fmt.Errorf("something went wrong")

	cases := [...]struct {
		save    rampart.Decorator // decorator at savepoint
		handler rampart.Handler
		check   bool // whether to call Check or Deliver
		isError bool // true iff we expect errors

		written [][]byte // keys to find
		missing [][]byte // keys not to find
	}{
		// savepoint deactivated, returns error, both written
		0: {
			NewSavepoint(),
			writeHandler{key: nk, value: nv, err: derr},
			true,
			true,
			[][]byte{ok, nk},
			nil,
		},
		// savepoint activated, returns error, one written
		1: {
			NewSavepoint().OnCheck(),
			writeHandler{key: nk, value: nv, err: derr},
			true,
			true,
			[][]byte{ok},
			[][]byte{nk},
		},
		// savepoint activated for deliver, returns error, one written
		2: {
			NewSavepoint().OnDeliver(),
			writeHandler{key: nk, value: nv, err: derr},
			false,
			true,
			[][]byte{ok},
			[][]byte{nk},
		},
		// double-activation maintains both behaviors
		3: {
			NewSavepoint().OnDeliver().OnCheck(),
			writeHandler{key: nk, value: nv, err: derr},
			false,
			true,
			[][]byte{ok},
			[][]byte{nk},
		},
		// savepoint check doesn't affect deliver
		4: {
			NewSavepoint().OnCheck(),
			writeHandler{key: nk, value: nv, err: derr},
			false,
			true,
			[][]byte{ok, nk},
			nil,
		},
		// don't rollback when success returned
		5: {
			NewSavepoint().OnCheck().OnDeliver(),
			writeHandler{key: nk, value: nv},
			false,
			false,
			[][]byte{ok, nk},
			nil,
		},
		// writes from a non-savepoint decorator survive an error
		6: {
			writeDecorator{key: []byte{1}, value: []byte{2}, after: false},
			writeHandler{key: nk, value: nv, err: derr},
			false,
			true,
			[][]byte{ok, nk, {1}},
			nil,
		},
		// decorator writes land also on the check path
		7: {
			writeDecorator{key: []byte{1}, value: []byte{2}, after: false},
			writeHandler{key: nk, value: nv},
			true,
			false,
			[][]byte{ok, nk, {1}},
			nil,
		},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			require.NoError(t, kv.Set(ok, ov))

			var err error
			if tc.check {
				_, err = tc.save.Check(ctx, kv, nil, tc.handler)
			} else {
				_, err = tc.save.Deliver(ctx, kv, nil, tc.handler)
			}

			if tc.isError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			for _, k := range tc.written {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.True(t, has, "%x", k)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.False(t, has, "%x", k)
			}
		})
	}
}

// writeHandler writes the key, value pair and returns the error (may be nil)
type writeHandler struct {
	key   []byte
	value []byte
	err   error
}

var _ rampart.Handler = writeHandler{}

func (h writeHandler) Check(ctx rampart.Context, store rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	if err := store.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &rampart.CheckResult{}, h.err
}

func (h writeHandler) Deliver(ctx rampart.Context, store rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	if err := store.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &rampart.DeliverResult{}, h.err
}

// writeDecorator writes the key, value pair,
// either before or after calling down the stack
type writeDecorator struct {
	key   []byte
	value []byte
	after bool
}

var _ rampart.Decorator = writeDecorator{}

func (d writeDecorator) Check(ctx rampart.Context, store rampart.KVStore, tx rampart.Tx, next rampart.Checker) (*rampart.CheckResult, error) {
	if !d.after {
		if err := store.Set(d.key, d.value); err != nil {
			return nil, err
		}
	}
	res, err := next.Check(ctx, store, tx)
	if d.after && err == nil {
		if serr := store.Set(d.key, d.value); serr != nil {
			return nil, serr
		}
	}
	return res, err
}

func (d writeDecorator) Deliver(ctx rampart.Context, store rampart.KVStore, tx rampart.Tx, next rampart.Deliverer) (*rampart.DeliverResult, error) {
	if !d.after {
		if err := store.Set(d.key, d.value); err != nil {
			return nil, err
		}
	}
	res, err := next.Deliver(ctx, store, tx)
	if d.after && err == nil {
		if serr := store.Set(d.key, d.value); serr != nil {
			return nil, serr
		}
	}
	return res, err
}
