package registry

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/x/addrbook"
	"github.com/rampart-io/rampart/x/delegation"
	"github.com/rampart-io/rampart/x/pool"
	"github.com/rampart-io/rampart/x/trusted"
)

func meta() *rampart.Metadata {
	return &rampart.Metadata{Schema: 1}
}

// TransactionProposal describes a wallet transaction to stage for
// co-signing.
type TransactionProposal struct {
	Wallet      rampart.Address
	Hash        []byte
	Destination rampart.Address
	Value       []byte
	Payload     []byte
	Operation   rampart.Operation
	Nonce       uint64
	// Proposer optionally attributes the proposal to another identity.
	// Left empty the caller is attributed.
	Proposer rampart.Address
}

// ProposeTransaction stages a transaction and returns the assigned
// transaction ID.
func (r *Registry) ProposeTransaction(ctx rampart.Context, caller rampart.Address, proposal TransactionProposal) ([]byte, error) {
	res, err := r.deliver(ctx, caller, &pool.ProposeTransactionMsg{
		Metadata:    meta(),
		Wallet:      proposal.Wallet,
		Hash:        proposal.Hash,
		Destination: proposal.Destination,
		Value:       proposal.Value,
		Payload:     proposal.Payload,
		Operation:   proposal.Operation,
		Nonce:       proposal.Nonce,
		Proposer:    proposal.Proposer,
	})
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// SignTransaction records the caller's approval of the pending
// transaction. The signature bytes are kept as opaque evidence.
func (r *Registry) SignTransaction(ctx rampart.Context, caller, wallet rampart.Address, hash, signature []byte) error {
	_, err := r.deliver(ctx, caller, &pool.SignTransactionMsg{
		Metadata:  meta(),
		Wallet:    wallet,
		Hash:      hash,
		Signature: signature,
	})
	return err
}

// MarkTransactionExecuted archives the pending transaction as executed.
// A second call for the same item fails, execution is recorded at most
// once.
func (r *Registry) MarkTransactionExecuted(ctx rampart.Context, caller, wallet rampart.Address, hash []byte) error {
	_, err := r.deliver(ctx, caller, &pool.MarkTransactionExecutedMsg{
		Metadata: meta(),
		Wallet:   wallet,
		Hash:     hash,
	})
	return err
}

// DeleteTransaction withdraws a pending transaction. Only the recorded
// proposer may do this.
func (r *Registry) DeleteTransaction(ctx rampart.Context, caller, wallet rampart.Address, hash []byte) error {
	_, err := r.deliver(ctx, caller, &pool.DeleteTransactionMsg{
		Metadata: meta(),
		Wallet:   wallet,
		Hash:     hash,
	})
	return err
}

// PruneTransactions drops a batch of pending transactions, for example
// because the wallet's nonce advanced past them. Hashes with nothing
// pending are skipped.
func (r *Registry) PruneTransactions(ctx rampart.Context, caller, wallet rampart.Address, hashes [][]byte, reason string) error {
	_, err := r.deliver(ctx, caller, &pool.PruneTransactionsMsg{
		Metadata: meta(),
		Wallet:   wallet,
		Hashes:   hashes,
		Reason:   reason,
	})
	return err
}

// MessageProposal describes an off-chain message to stage for
// co-signing.
type MessageProposal struct {
	Wallet    rampart.Address
	Hash      []byte
	Raw       []byte
	RequestID string
	Topic     string
	// Proposer optionally attributes the proposal to another identity.
	// Left empty the caller is attributed.
	Proposer rampart.Address
}

// ProposeMessage stages a message and returns the assigned message ID.
func (r *Registry) ProposeMessage(ctx rampart.Context, caller rampart.Address, proposal MessageProposal) ([]byte, error) {
	res, err := r.deliver(ctx, caller, &pool.ProposeMessageMsg{
		Metadata:  meta(),
		Wallet:    proposal.Wallet,
		Hash:      proposal.Hash,
		Raw:       proposal.Raw,
		RequestID: proposal.RequestID,
		Topic:     proposal.Topic,
		Proposer:  proposal.Proposer,
	})
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// SignMessage records the caller's approval of the pending message.
func (r *Registry) SignMessage(ctx rampart.Context, caller, wallet rampart.Address, hash, signature []byte) error {
	_, err := r.deliver(ctx, caller, &pool.SignMessageMsg{
		Metadata:  meta(),
		Wallet:    wallet,
		Hash:      hash,
		Signature: signature,
	})
	return err
}

// MarkMessageExecuted archives the pending message as executed.
func (r *Registry) MarkMessageExecuted(ctx rampart.Context, caller, wallet rampart.Address, hash []byte) error {
	_, err := r.deliver(ctx, caller, &pool.MarkMessageExecutedMsg{
		Metadata: meta(),
		Wallet:   wallet,
		Hash:     hash,
	})
	return err
}

// DeleteMessage withdraws a pending message. Only the recorded proposer
// may do this.
func (r *Registry) DeleteMessage(ctx rampart.Context, caller, wallet rampart.Address, hash []byte) error {
	_, err := r.deliver(ctx, caller, &pool.DeleteMessageMsg{
		Metadata: meta(),
		Wallet:   wallet,
		Hash:     hash,
	})
	return err
}

// PruneMessages drops a batch of pending messages.
func (r *Registry) PruneMessages(ctx rampart.Context, caller, wallet rampart.Address, hashes [][]byte, reason string) error {
	_, err := r.deliver(ctx, caller, &pool.PruneMessagesMsg{
		Metadata: meta(),
		Wallet:   wallet,
		Hashes:   hashes,
		Reason:   reason,
	})
	return err
}

// AddToAddressBook lists an address as a known counterparty of the
// wallet.
func (r *Registry) AddToAddressBook(ctx rampart.Context, caller, wallet, address rampart.Address, label string) error {
	_, err := r.deliver(ctx, caller, &addrbook.AddEntryMsg{
		Metadata: meta(),
		Wallet:   wallet,
		Address:  address,
		Label:    label,
	})
	return err
}

// RemoveFromAddressBook drops an address from the wallet's book.
func (r *Registry) RemoveFromAddressBook(ctx rampart.Context, caller, wallet, address rampart.Address) error {
	_, err := r.deliver(ctx, caller, &addrbook.RemoveEntryMsg{
		Metadata: meta(),
		Wallet:   wallet,
		Address:  address,
	})
	return err
}

// TrustContract lists a contract for interaction approval. Trusting a
// listed contract refreshes its label.
func (r *Registry) TrustContract(ctx rampart.Context, caller, wallet, address rampart.Address, label string) error {
	_, err := r.deliver(ctx, caller, &trusted.AddContractMsg{
		Metadata: meta(),
		Wallet:   wallet,
		Address:  address,
		Label:    label,
	})
	return err
}

// RevokeContract removes a contract from the wallet's trusted set.
func (r *Registry) RevokeContract(ctx rampart.Context, caller, wallet, address rampart.Address) error {
	_, err := r.deliver(ctx, caller, &trusted.RemoveContractMsg{
		Metadata: meta(),
		Wallet:   wallet,
		Address:  address,
	})
	return err
}

// SetDelegateCallsEnabled flips the wallet's delegate call switch,
// creating the policy record when there is none yet.
func (r *Registry) SetDelegateCallsEnabled(ctx rampart.Context, caller, wallet rampart.Address, enabled bool) error {
	_, err := r.deliver(ctx, caller, &delegation.SetEnabledMsg{
		Metadata: meta(),
		Wallet:   wallet,
		Enabled:  enabled,
	})
	return err
}

// AddDelegateTarget allows one more delegate call target for the
// wallet. The first target creates a disabled policy.
func (r *Registry) AddDelegateTarget(ctx rampart.Context, caller, wallet, target rampart.Address) error {
	_, err := r.deliver(ctx, caller, &delegation.AddTargetMsg{
		Metadata: meta(),
		Wallet:   wallet,
		Target:   target,
	})
	return err
}

// RemoveDelegateTarget removes a target from the wallet's allow list.
func (r *Registry) RemoveDelegateTarget(ctx rampart.Context, caller, wallet, target rampart.Address) error {
	_, err := r.deliver(ctx, caller, &delegation.RemoveTargetMsg{
		Metadata: meta(),
		Wallet:   wallet,
		Target:   target,
	})
	return err
}

// Rebind hands the named package's configuration to a new owner. The
// update is gated by the current binding: while a configuration is
// owned, only the owner's signature passes.
func (r *Registry) Rebind(ctx rampart.Context, caller rampart.Address, pkg string, owner rampart.Address) error {
	var msg rampart.Msg
	switch pkg {
	case "pool":
		msg = &pool.UpdateConfigurationMsg{
			Metadata: meta(),
			Patch:    &pool.Configuration{Metadata: meta(), Owner: owner},
		}
	case "addrbook":
		msg = &addrbook.UpdateConfigurationMsg{
			Metadata: meta(),
			Patch:    &addrbook.Configuration{Metadata: meta(), Owner: owner},
		}
	case "trusted":
		msg = &trusted.UpdateConfigurationMsg{
			Metadata: meta(),
			Patch:    &trusted.Configuration{Metadata: meta(), Owner: owner},
		}
	case "delegation":
		msg = &delegation.UpdateConfigurationMsg{
			Metadata: meta(),
			Patch:    &delegation.Configuration{Metadata: meta(), Owner: owner},
		}
	default:
		return errors.Wrapf(errors.ErrInput, "unknown package %q", pkg)
	}
	_, err := r.deliver(ctx, caller, msg)
	return err
}
