package guard

import (
	"github.com/rampart-io/rampart/errors"
)

// guard reserves 1110 ~ 1119.
var (
	// ErrDelegateCallDisabled is returned when a wallet attempts a
	// delegate call without an enabled delegation policy.
	ErrDelegateCallDisabled = errors.Register(1110, "delegate calls disabled")

	// ErrDelegateTargetNotAllowed is returned when the delegation policy
	// restricts targets and the destination is not listed.
	ErrDelegateTargetNotAllowed = errors.Register(1111, "delegate target not allowed")

	// ErrRecipientUnknown is returned when the payee of a transfer is
	// not in the wallet's address book.
	ErrRecipientUnknown = errors.Register(1112, "recipient not in address book")

	// ErrContractNotTrusted is returned when a contract interaction
	// names a destination that is in neither the address book nor the
	// trusted contract registry.
	ErrContractNotTrusted = errors.Register(1113, "contract not trusted")
)
