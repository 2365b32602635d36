package rampart

import (
	"github.com/tendermint/tendermint/libs/common"
)

// CheckResult captures any non-error payload from a validation-only pass.
type CheckResult struct {
	// Data is a machine-parseable return value, like an id of the created
	// entity.
	Data []byte
	// Log is human readable data.
	Log string
}

// DeliverResult captures any non-error payload of an applied operation.
type DeliverResult struct {
	// Data is a machine-parseable return value, like an id of the created
	// entity.
	Data []byte
	// Log is human readable data.
	Log string
	// Tags describe the operation for the embedder's audit trail. The
	// action tagger decorator always appends the message path; handlers
	// add domain tags like the wallet and the content hash.
	Tags []common.KVPair
}
