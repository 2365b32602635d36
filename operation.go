package rampart

import (
	"github.com/rampart-io/rampart/errors"
)

// Operation is the wallet platform's call kind. It is a closed enumeration:
// a delegate call runs the destination's code with the wallet's own storage
// and identity, so it is classified and policed separately from a plain
// call.
type Operation int32

const (
	// CallOp is an ordinary call into the destination.
	CallOp Operation = 0
	// DelegateCallOp executes the destination's code in the wallet's own
	// context.
	DelegateCallOp Operation = 1
)

// Validate returns an error unless the operation is one of the declared
// kinds.
func (op Operation) Validate() error {
	switch op {
	case CallOp, DelegateCallOp:
		return nil
	default:
		return errors.Wrapf(errors.ErrInput, "unknown operation kind: %d", op)
	}
}

func (op Operation) String() string {
	switch op {
	case CallOp:
		return "call"
	case DelegateCallOp:
		return "delegatecall"
	default:
		return "invalid"
	}
}

const (
	// HashLength is the size of every content hash handled by the pool.
	// The wallet platform computes the hash; this library only keys by it.
	HashLength = 32

	// MaxValueLength bounds the big-endian byte form of a transferred
	// amount. Platform amounts are unsigned 256 bit integers.
	MaxValueLength = 32
)

// ValidateContentHash returns an error unless raw is a well formed content
// hash.
func ValidateContentHash(raw []byte) error {
	if len(raw) != HashLength {
		return errors.Wrapf(errors.ErrInput, "content hash must be %d bytes", HashLength)
	}
	return nil
}

// ValidateValue returns an error unless raw is a well formed amount. The
// amount is a big-endian unsigned integer; an empty slice means zero.
func ValidateValue(raw []byte) error {
	if len(raw) > MaxValueLength {
		return errors.Wrapf(errors.ErrInput, "value must not exceed %d bytes", MaxValueLength)
	}
	return nil
}
