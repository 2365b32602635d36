package pool

import (
	"unicode"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/migration"
	"github.com/rampart-io/rampart/orm"
)

func init() {
	migration.MustRegister(1, &Transaction{}, migration.NoModification)
	migration.MustRegister(1, &Message{}, migration.NoModification)
}

const (
	// itemIDLength is the size of TxID and MsgID values, a big endian
	// counter state.
	itemIDLength = 8

	// maxStringLength bounds the free text fields (reason, request ID,
	// topic).
	maxStringLength = 128
)

// Signature records that a signer claims approval of a pending item.
// Data is opaque evidence, the pool performs no cryptographic checks.
type Signature struct {
	Signer rampart.Address
	Data   []byte
}

func (s Signature) Validate() error {
	return errors.AppendField(nil, "Signer", s.Signer.Validate())
}

var _ orm.Model = (*Transaction)(nil)

// Transaction is a wallet transaction staged for co-signing. It is
// pending until marked executed, deleted by its proposer or pruned.
type Transaction struct {
	Metadata    *rampart.Metadata
	Wallet      rampart.Address
	Hash        []byte
	TxID        []byte
	Destination rampart.Address
	Value       []byte
	Payload     []byte
	Operation   rampart.Operation
	Nonce       uint64
	Proposer    rampart.Address
	Signatures  []Signature
}

func (t *Transaction) GetMetadata() *rampart.Metadata {
	return t.Metadata
}

func (t *Transaction) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", t.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", t.Wallet.Validate())
	errs = errors.AppendField(errs, "Hash", rampart.ValidateContentHash(t.Hash))
	if len(t.TxID) != itemIDLength {
		errs = errors.AppendField(errs, "TxID",
			errors.Wrapf(errors.ErrInput, "id must be %d bytes", itemIDLength))
	}
	errs = errors.AppendField(errs, "Destination", t.Destination.Validate())
	errs = errors.AppendField(errs, "Value", rampart.ValidateValue(t.Value))
	errs = errors.AppendField(errs, "Operation", t.Operation.Validate())
	errs = errors.AppendField(errs, "Proposer", t.Proposer.Validate())
	errs = errors.AppendField(errs, "Signatures", validateSignatures(t.Signatures))
	return errs
}

// HasSigned returns true if the signer already appears on this
// transaction.
func (t *Transaction) HasSigned(signer rampart.Address) bool {
	return hasSigned(t.Signatures, signer)
}

func (t *Transaction) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(t)
}

func (t *Transaction) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, t)
}

var _ orm.Model = (*Message)(nil)

// Message is an off-chain message staged for co-signing, the structural
// mirror of a Transaction. Raw, RequestID and Topic are opaque session
// metadata recorded for the wallet.
type Message struct {
	Metadata   *rampart.Metadata
	Wallet     rampart.Address
	Hash       []byte
	MsgID      []byte
	Raw        []byte
	RequestID  string
	Topic      string
	Proposer   rampart.Address
	Signatures []Signature
}

func (m *Message) GetMetadata() *rampart.Metadata {
	return m.Metadata
}

func (m *Message) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", m.Wallet.Validate())
	errs = errors.AppendField(errs, "Hash", rampart.ValidateContentHash(m.Hash))
	if len(m.MsgID) != itemIDLength {
		errs = errors.AppendField(errs, "MsgID",
			errors.Wrapf(errors.ErrInput, "id must be %d bytes", itemIDLength))
	}
	errs = errors.AppendField(errs, "RequestID", validateOpaqueString(m.RequestID))
	errs = errors.AppendField(errs, "Topic", validateOpaqueString(m.Topic))
	errs = errors.AppendField(errs, "Proposer", m.Proposer.Validate())
	errs = errors.AppendField(errs, "Signatures", validateSignatures(m.Signatures))
	return errs
}

// HasSigned returns true if the signer already appears on this message.
func (m *Message) HasSigned(signer rampart.Address) bool {
	return hasSigned(m.Signatures, signer)
}

func (m *Message) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *Message) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func validateSignatures(sigs []Signature) error {
	var errs error
	seen := make(map[string]struct{}, len(sigs))
	for _, sig := range sigs {
		errs = errors.Append(errs, sig.Validate())
		if _, ok := seen[string(sig.Signer)]; ok {
			errs = errors.Append(errs,
				errors.Wrapf(errors.ErrDuplicate, "signer %q listed twice", sig.Signer))
		}
		seen[string(sig.Signer)] = struct{}{}
	}
	return errs
}

func hasSigned(sigs []Signature, signer rampart.Address) bool {
	for _, sig := range sigs {
		if sig.Signer.Equals(signer) {
			return true
		}
	}
	return false
}

// validateOpaqueString bounds the free text fields. Content is not
// interpreted, only kept displayable.
func validateOpaqueString(s string) error {
	if len(s) > maxStringLength {
		return errors.Wrapf(errors.ErrInput, "longer than %d bytes", maxStringLength)
	}
	for _, c := range s {
		if !unicode.IsPrint(c) {
			return errors.Wrap(errors.ErrInput, "contains a non printable character")
		}
	}
	return nil
}
