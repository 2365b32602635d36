package guard

import (
	"bytes"

	"github.com/rampart-io/rampart"
)

// TransactionType is the classification of a wallet transaction. It is
// a closed enumeration, Classify always returns one of the declared
// kinds.
type TransactionType int32

const (
	// NativeTransfer moves the platform's base currency and carries no
	// payload.
	NativeTransfer TransactionType = iota + 1
	// ERC20Transfer is a token transfer call on the destination.
	ERC20Transfer
	// ERC20TransferFrom is a token transfer spending an allowance. The
	// payee is an argument of the call, not the destination.
	ERC20TransferFrom
	// ContractInteraction is any other call into a contract.
	ContractInteraction
	// DelegateCall runs foreign code with the wallet's own identity.
	DelegateCall
)

func (t TransactionType) String() string {
	switch t {
	case NativeTransfer:
		return "native-transfer"
	case ERC20Transfer:
		return "erc20-transfer"
	case ERC20TransferFrom:
		return "erc20-transfer-from"
	case ContractInteraction:
		return "contract-interaction"
	case DelegateCall:
		return "delegate-call"
	default:
		return "invalid"
	}
}

const selectorLength = 4

// Canonical 4 byte selectors of the token calls the validator
// understands, keccak256 of the call signatures.
var (
	transferSelector     = []byte{0xa9, 0x05, 0x9c, 0xbb}
	transferFromSelector = []byte{0x23, 0xb8, 0x72, 0xdd}
)

// Classify determines the transaction kind from the call parameters
// alone. It is pure, reads no state and is total over all inputs.
//
// A delegate call is classified as such no matter what the payload
// looks like, running foreign code in the wallet's context dominates
// every other property. A call without payload moving a positive value
// is a native transfer. Payloads starting with a known token selector
// are token transfers. Everything else, including payloads too short
// to carry a selector and the empty call moving nothing, is a plain
// contract interaction.
func Classify(destination rampart.Address, value, payload []byte, op rampart.Operation) TransactionType {
	if op == rampart.DelegateCallOp {
		return DelegateCall
	}
	if len(payload) == 0 {
		if positive(value) {
			return NativeTransfer
		}
		return ContractInteraction
	}
	if len(payload) >= selectorLength {
		switch {
		case bytes.Equal(payload[:selectorLength], transferSelector):
			return ERC20Transfer
		case bytes.Equal(payload[:selectorLength], transferFromSelector):
			return ERC20TransferFrom
		}
	}
	return ContractInteraction
}

// positive returns true unless the big endian value is zero. An empty
// slice means zero.
func positive(value []byte) bool {
	for _, b := range value {
		if b != 0 {
			return true
		}
	}
	return false
}
