package utils

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
)

// Recovery is a decorator to recover from panics in operations,
// so we can report them as errors to the caller
type Recovery struct{}

var _ rampart.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx rampart.Context, store rampart.KVStore, tx rampart.Tx, next rampart.Checker) (_ *rampart.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx rampart.Context, store rampart.KVStore, tx rampart.Tx, next rampart.Deliverer) (_ *rampart.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
