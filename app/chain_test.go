package app

import (
	"context"
	"testing"

	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/ramparttest"
	"github.com/rampart-io/rampart/ramparttest/assert"
)

func TestChainDecorators(t *testing.T) {
	var (
		c1 ramparttest.Decorator
		c2 ramparttest.Decorator
		c3 ramparttest.Decorator
		h  ramparttest.Handler
	)

	stack := ChainDecorators(
		&c1,
		nil, // nil decorators must be ignored
		&c2,
	).Chain(
		&c3,
	).WithHandler(&h)

	ctx := context.Background()

	_, err := stack.Check(ctx, nil, nil)
	assert.Nil(t, err)
	_, err = stack.Deliver(ctx, nil, nil)
	assert.Nil(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainStopsOnError(t *testing.T) {
	var (
		first ramparttest.Decorator
		last  ramparttest.Decorator
		h     ramparttest.Handler
	)
	failing := ramparttest.Decorator{
		CheckErr:   errors.ErrUnauthorized,
		DeliverErr: errors.ErrUnauthorized,
	}

	stack := ChainDecorators(&first, &failing, &last).WithHandler(&h)
	ctx := context.Background()

	if _, err := stack.Check(ctx, nil, nil); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want an unauthorized error, got %+v", err)
	}
	if _, err := stack.Deliver(ctx, nil, nil); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want an unauthorized error, got %+v", err)
	}

	// the decorators below the failing one must never be reached
	assert.Equal(t, 2, first.CallCount())
	assert.Equal(t, 0, last.CallCount())
	assert.Equal(t, 0, h.CallCount())
}

func TestCutoffNil(t *testing.T) {
	var d ramparttest.Decorator

	chain := ChainDecorators(nil, &d, nil, nil).Chain(nil, &d)
	if got := len(chain.chain); got != 2 {
		t.Fatalf("want 2 decorators in the chain, got %d", got)
	}

	// a typed nil pointer must be removed as well
	var typedNil *ramparttest.Decorator
	chain = ChainDecorators(typedNil, &d)
	if got := len(chain.chain); got != 1 {
		t.Fatalf("want 1 decorator in the chain, got %d", got)
	}
}
