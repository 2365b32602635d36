package pool

import (
	"github.com/rampart-io/rampart/errors"
)

// pool reserves 1100 ~ 1109.
var (
	// ErrTransactionNotFound is returned when no pending transaction
	// exists for the given wallet and hash.
	ErrTransactionNotFound = errors.Register(1100, "transaction not found")

	// ErrMessageNotFound is returned when no pending message exists
	// for the given wallet and hash.
	ErrMessageNotFound = errors.Register(1101, "message not found")

	// ErrAlreadySigned is returned when a signer tries to sign the
	// same pending item twice.
	ErrAlreadySigned = errors.Register(1102, "already signed")

	// ErrNotProposer is returned when anyone but the recorded proposer
	// tries to delete a pending item.
	ErrNotProposer = errors.Register(1103, "not the proposer")
)
