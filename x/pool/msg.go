package pool

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/migration"
)

func init() {
	migration.MustRegister(1, &ProposeTransactionMsg{}, migration.NoModification)
	migration.MustRegister(1, &SignTransactionMsg{}, migration.NoModification)
	migration.MustRegister(1, &MarkTransactionExecutedMsg{}, migration.NoModification)
	migration.MustRegister(1, &DeleteTransactionMsg{}, migration.NoModification)
	migration.MustRegister(1, &PruneTransactionsMsg{}, migration.NoModification)
	migration.MustRegister(1, &ProposeMessageMsg{}, migration.NoModification)
	migration.MustRegister(1, &SignMessageMsg{}, migration.NoModification)
	migration.MustRegister(1, &MarkMessageExecutedMsg{}, migration.NoModification)
	migration.MustRegister(1, &DeleteMessageMsg{}, migration.NoModification)
	migration.MustRegister(1, &PruneMessagesMsg{}, migration.NoModification)
	migration.MustRegister(1, &UpdateConfigurationMsg{}, migration.NoModification)
}

const (
	pathProposeTx           = "pool/propose_tx"
	pathSignTx              = "pool/sign_tx"
	pathMarkTxExecuted      = "pool/mark_tx_executed"
	pathDeleteTx            = "pool/delete_tx"
	pathPruneTxs            = "pool/prune_txs"
	pathProposeMsg          = "pool/propose_msg"
	pathSignMsg             = "pool/sign_msg"
	pathMarkMsgExecuted     = "pool/mark_msg_executed"
	pathDeleteMsg           = "pool/delete_msg"
	pathPruneMsgs           = "pool/prune_msgs"
	pathUpdateConfiguration = "pool/update_configuration"
)

var _ rampart.Msg = (*ProposeTransactionMsg)(nil)

// ProposeTransactionMsg stages a new wallet transaction for co-signing.
// With an empty Proposer the main caller is attributed. With an
// explicit Proposer the calling context must carry the proposer, the
// wallet or the configuration owner.
type ProposeTransactionMsg struct {
	Metadata    *rampart.Metadata
	Wallet      rampart.Address
	Hash        []byte
	Destination rampart.Address
	Value       []byte
	Payload     []byte
	Operation   rampart.Operation
	Nonce       uint64
	Proposer    rampart.Address
}

func (ProposeTransactionMsg) Path() string {
	return pathProposeTx
}

func (msg *ProposeTransactionMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", msg.Wallet.Validate())
	errs = errors.AppendField(errs, "Hash", rampart.ValidateContentHash(msg.Hash))
	errs = errors.AppendField(errs, "Destination", msg.Destination.Validate())
	errs = errors.AppendField(errs, "Value", rampart.ValidateValue(msg.Value))
	errs = errors.AppendField(errs, "Operation", msg.Operation.Validate())
	if len(msg.Proposer) != 0 {
		errs = errors.AppendField(errs, "Proposer", msg.Proposer.Validate())
	}
	return errs
}

func (msg *ProposeTransactionMsg) GetMetadata() *rampart.Metadata {
	return msg.Metadata
}

func (msg *ProposeTransactionMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *ProposeTransactionMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

var _ rampart.Msg = (*SignTransactionMsg)(nil)

// SignTransactionMsg appends the main caller's approval to a pending
// transaction. Signature bytes are opaque bookkeeping and may be empty.
type SignTransactionMsg struct {
	Metadata  *rampart.Metadata
	Wallet    rampart.Address
	Hash      []byte
	Signature []byte
}

func (SignTransactionMsg) Path() string {
	return pathSignTx
}

func (msg *SignTransactionMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", msg.Wallet.Validate())
	errs = errors.AppendField(errs, "Hash", rampart.ValidateContentHash(msg.Hash))
	return errs
}

func (msg *SignTransactionMsg) GetMetadata() *rampart.Metadata {
	return msg.Metadata
}

func (msg *SignTransactionMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *SignTransactionMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

var _ rampart.Msg = (*MarkTransactionExecutedMsg)(nil)

// MarkTransactionExecutedMsg archives a pending transaction after the
// wallet executed it. A hash with nothing pending cannot be marked, so
// execution can be recorded at most once per proposal.
type MarkTransactionExecutedMsg struct {
	Metadata *rampart.Metadata
	Wallet   rampart.Address
	Hash     []byte
}

func (MarkTransactionExecutedMsg) Path() string {
	return pathMarkTxExecuted
}

func (msg *MarkTransactionExecutedMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", msg.Wallet.Validate())
	errs = errors.AppendField(errs, "Hash", rampart.ValidateContentHash(msg.Hash))
	return errs
}

func (msg *MarkTransactionExecutedMsg) GetMetadata() *rampart.Metadata {
	return msg.Metadata
}

func (msg *MarkTransactionExecutedMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *MarkTransactionExecutedMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

var _ rampart.Msg = (*DeleteTransactionMsg)(nil)

// DeleteTransactionMsg withdraws a pending transaction. Only the
// recorded proposer may delete, nothing is archived.
type DeleteTransactionMsg struct {
	Metadata *rampart.Metadata
	Wallet   rampart.Address
	Hash     []byte
}

func (DeleteTransactionMsg) Path() string {
	return pathDeleteTx
}

func (msg *DeleteTransactionMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", msg.Wallet.Validate())
	errs = errors.AppendField(errs, "Hash", rampart.ValidateContentHash(msg.Hash))
	return errs
}

func (msg *DeleteTransactionMsg) GetMetadata() *rampart.Metadata {
	return msg.Metadata
}

func (msg *DeleteTransactionMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *DeleteTransactionMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

var _ rampart.Msg = (*PruneTransactionsMsg)(nil)

// PruneTransactionsMsg removes a batch of pending transactions. Staleness
// is the caller's judgement, the pool never infers it. Unknown hashes
// are skipped and the count of removed items is reported.
type PruneTransactionsMsg struct {
	Metadata *rampart.Metadata
	Wallet   rampart.Address
	Hashes   [][]byte
	Reason   string
}

func (PruneTransactionsMsg) Path() string {
	return pathPruneTxs
}

func (msg *PruneTransactionsMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", msg.Wallet.Validate())
	if len(msg.Hashes) == 0 {
		errs = errors.AppendField(errs, "Hashes", errors.Wrap(errors.ErrEmpty, "hashes are required"))
	}
	for _, hash := range msg.Hashes {
		errs = errors.AppendField(errs, "Hashes", rampart.ValidateContentHash(hash))
	}
	errs = errors.AppendField(errs, "Reason", validateOpaqueString(msg.Reason))
	return errs
}

func (msg *PruneTransactionsMsg) GetMetadata() *rampart.Metadata {
	return msg.Metadata
}

func (msg *PruneTransactionsMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *PruneTransactionsMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

var _ rampart.Msg = (*ProposeMessageMsg)(nil)

// ProposeMessageMsg stages a new off-chain message for co-signing.
// Proposer attribution works like in ProposeTransactionMsg.
type ProposeMessageMsg struct {
	Metadata  *rampart.Metadata
	Wallet    rampart.Address
	Hash      []byte
	Raw       []byte
	RequestID string
	Topic     string
	Proposer  rampart.Address
}

func (ProposeMessageMsg) Path() string {
	return pathProposeMsg
}

func (msg *ProposeMessageMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", msg.Wallet.Validate())
	errs = errors.AppendField(errs, "Hash", rampart.ValidateContentHash(msg.Hash))
	errs = errors.AppendField(errs, "RequestID", validateOpaqueString(msg.RequestID))
	errs = errors.AppendField(errs, "Topic", validateOpaqueString(msg.Topic))
	if len(msg.Proposer) != 0 {
		errs = errors.AppendField(errs, "Proposer", msg.Proposer.Validate())
	}
	return errs
}

func (msg *ProposeMessageMsg) GetMetadata() *rampart.Metadata {
	return msg.Metadata
}

func (msg *ProposeMessageMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *ProposeMessageMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

var _ rampart.Msg = (*SignMessageMsg)(nil)

// SignMessageMsg appends the main caller's approval to a pending
// message.
type SignMessageMsg struct {
	Metadata  *rampart.Metadata
	Wallet    rampart.Address
	Hash      []byte
	Signature []byte
}

func (SignMessageMsg) Path() string {
	return pathSignMsg
}

func (msg *SignMessageMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", msg.Wallet.Validate())
	errs = errors.AppendField(errs, "Hash", rampart.ValidateContentHash(msg.Hash))
	return errs
}

func (msg *SignMessageMsg) GetMetadata() *rampart.Metadata {
	return msg.Metadata
}

func (msg *SignMessageMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *SignMessageMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

var _ rampart.Msg = (*MarkMessageExecutedMsg)(nil)

// MarkMessageExecutedMsg archives a pending message after the wallet
// used it.
type MarkMessageExecutedMsg struct {
	Metadata *rampart.Metadata
	Wallet   rampart.Address
	Hash     []byte
}

func (MarkMessageExecutedMsg) Path() string {
	return pathMarkMsgExecuted
}

func (msg *MarkMessageExecutedMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", msg.Wallet.Validate())
	errs = errors.AppendField(errs, "Hash", rampart.ValidateContentHash(msg.Hash))
	return errs
}

func (msg *MarkMessageExecutedMsg) GetMetadata() *rampart.Metadata {
	return msg.Metadata
}

func (msg *MarkMessageExecutedMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *MarkMessageExecutedMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

var _ rampart.Msg = (*DeleteMessageMsg)(nil)

// DeleteMessageMsg withdraws a pending message. Only the recorded
// proposer may delete.
type DeleteMessageMsg struct {
	Metadata *rampart.Metadata
	Wallet   rampart.Address
	Hash     []byte
}

func (DeleteMessageMsg) Path() string {
	return pathDeleteMsg
}

func (msg *DeleteMessageMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", msg.Wallet.Validate())
	errs = errors.AppendField(errs, "Hash", rampart.ValidateContentHash(msg.Hash))
	return errs
}

func (msg *DeleteMessageMsg) GetMetadata() *rampart.Metadata {
	return msg.Metadata
}

func (msg *DeleteMessageMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *DeleteMessageMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

var _ rampart.Msg = (*PruneMessagesMsg)(nil)

// PruneMessagesMsg removes a batch of pending messages, mirroring
// PruneTransactionsMsg.
type PruneMessagesMsg struct {
	Metadata *rampart.Metadata
	Wallet   rampart.Address
	Hashes   [][]byte
	Reason   string
}

func (PruneMessagesMsg) Path() string {
	return pathPruneMsgs
}

func (msg *PruneMessagesMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", msg.Wallet.Validate())
	if len(msg.Hashes) == 0 {
		errs = errors.AppendField(errs, "Hashes", errors.Wrap(errors.ErrEmpty, "hashes are required"))
	}
	for _, hash := range msg.Hashes {
		errs = errors.AppendField(errs, "Hashes", rampart.ValidateContentHash(hash))
	}
	errs = errors.AppendField(errs, "Reason", validateOpaqueString(msg.Reason))
	return errs
}

func (msg *PruneMessagesMsg) GetMetadata() *rampart.Metadata {
	return msg.Metadata
}

func (msg *PruneMessagesMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *PruneMessagesMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

var _ rampart.Msg = (*UpdateConfigurationMsg)(nil)

// UpdateConfigurationMsg updates this package configuration. Only non
// zero fields of the patch are applied.
type UpdateConfigurationMsg struct {
	Metadata *rampart.Metadata
	Patch    *Configuration
}

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfiguration
}

func (msg *UpdateConfigurationMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	if msg.Patch == nil {
		errs = errors.AppendField(errs, "Patch", errors.Wrap(errors.ErrEmpty, "patch is required"))
	} else {
		errs = errors.AppendField(errs, "Patch", msg.Patch.Validate())
	}
	return errs
}

func (msg *UpdateConfigurationMsg) GetMetadata() *rampart.Metadata {
	return msg.Metadata
}

func (msg *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}
