package guard

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/x/addrbook"
	"github.com/rampart-io/rampart/x/delegation"
	"github.com/rampart-io/rampart/x/trusted"
)

// The recipient of a transferFrom call is its second argument word.
// Words are 32 bytes and addresses are right aligned within them, so
// the recipient occupies payload bytes 48 through 68.
const (
	wordLength            = 32
	recipientArgumentFrom = selectorLength + 2*wordLength - rampart.AddressLength
	recipientArgumentTo   = selectorLength + 2*wordLength
)

// Buckets are stateless key space descriptors and safe to share.
var (
	entries   = addrbook.NewBucket()
	contracts = trusted.NewBucket()
	policies  = delegation.NewBucket()
)

// Validate classifies the transaction and checks it against the
// wallet's lists. It returns the classified type together with nil if
// the wallet may execute, or with the policy error that forbids it.
// Unknown is rejected: a payee missing from the address book, a
// contract on no list and a delegate call without an enabled policy
// all fail. The store is never written to.
func Validate(db rampart.ReadOnlyKVStore, wallet, destination rampart.Address, value, payload []byte, op rampart.Operation) (TransactionType, error) {
	t := Classify(destination, value, payload, op)
	switch t {
	case DelegateCall:
		return t, validateDelegateCall(db, wallet, destination)
	case NativeTransfer, ERC20Transfer:
		// The payee of a token transfer is the destination as well. The
		// wallet lists token contracts it pays through in its book.
		return t, validatePayee(db, wallet, destination)
	case ERC20TransferFrom:
		if len(payload) < recipientArgumentTo {
			return t, errors.Wrap(ErrRecipientUnknown, "payload too short to decode the recipient")
		}
		payee := rampart.Address(payload[recipientArgumentFrom:recipientArgumentTo])
		return t, validatePayee(db, wallet, payee)
	case ContractInteraction:
		return t, validateContract(db, wallet, destination)
	default:
		return t, errors.Wrapf(errors.ErrState, "unknown transaction type: %d", t)
	}
}

func validateDelegateCall(db rampart.ReadOnlyKVStore, wallet, destination rampart.Address) error {
	policy, err := policies.GetPolicy(db, wallet)
	switch {
	case err == nil:
		// continue below
	case errors.ErrNotFound.Is(err):
		return errors.Wrap(ErrDelegateCallDisabled, "no delegation policy")
	default:
		return errors.Wrap(err, "load delegation policy")
	}
	if !policy.Enabled {
		return errors.Wrap(ErrDelegateCallDisabled, "delegation policy disabled")
	}
	// An empty target set means any target, a non empty one is a strict
	// allow list.
	if len(policy.Targets) != 0 && !policy.HasTarget(destination) {
		return errors.Wrapf(ErrDelegateTargetNotAllowed, "target %q", destination)
	}
	return nil
}

func validatePayee(db rampart.ReadOnlyKVStore, wallet, payee rampart.Address) error {
	ok, err := entries.HasEntry(db, wallet, payee)
	if err != nil {
		return errors.Wrap(err, "address book lookup")
	}
	if !ok {
		return errors.Wrapf(ErrRecipientUnknown, "payee %q", payee)
	}
	return nil
}

func validateContract(db rampart.ReadOnlyKVStore, wallet, destination rampart.Address) error {
	inBook, err := entries.HasEntry(db, wallet, destination)
	if err != nil {
		return errors.Wrap(err, "address book lookup")
	}
	if inBook {
		return nil
	}
	listed, err := contracts.HasContract(db, wallet, destination)
	if err != nil {
		return errors.Wrap(err, "trusted contract lookup")
	}
	if !listed {
		return errors.Wrapf(ErrContractNotTrusted, "destination %q", destination)
	}
	return nil
}
