package registry

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/x/addrbook"
	"github.com/rampart-io/rampart/x/delegation"
	"github.com/rampart-io/rampart/x/pool"
	"github.com/rampart-io/rampart/x/trusted"
)

// All read accessors observe the latest committed state and never
// stage writes.

// Transaction returns the pending transaction of the wallet for the
// given content hash.
func (r *Registry) Transaction(wallet rampart.Address, hash []byte) (*pool.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	db := r.store.ReadStore()
	defer db.Discard()
	return r.txs.Pending(db, wallet, hash)
}

// TransactionSignatures returns the approvals collected so far for the
// pending transaction.
func (r *Registry) TransactionSignatures(wallet rampart.Address, hash []byte) ([]pool.Signature, error) {
	tx, err := r.Transaction(wallet, hash)
	if err != nil {
		return nil, err
	}
	return tx.Signatures, nil
}

// HasSignedTransaction returns true if the signer already approved the
// pending transaction.
func (r *Registry) HasSignedTransaction(wallet rampart.Address, hash []byte, signer rampart.Address) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	db := r.store.ReadStore()
	defer db.Discard()
	return r.txs.HasSigned(db, wallet, hash, signer)
}

// PendingTransactions lists the content hashes of the wallet's pending
// transactions in ascending order. Limit zero means the default page
// size, an offset beyond the end yields an empty page.
func (r *Registry) PendingTransactions(wallet rampart.Address, offset, limit int) ([][]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	db := r.store.ReadStore()
	defer db.Discard()
	return r.txs.PendingHashes(db, wallet, offset, limit)
}

// ExecutedTransaction returns an archived transaction by its id. The
// archive keeps the signatures collected before execution.
func (r *Registry) ExecutedTransaction(wallet rampart.Address, hash, txID []byte) (*pool.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	db := r.store.ReadStore()
	defer db.Discard()
	return r.txs.Executed(db, wallet, hash, txID)
}

// Message returns the pending message of the wallet for the given
// content hash.
func (r *Registry) Message(wallet rampart.Address, hash []byte) (*pool.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	db := r.store.ReadStore()
	defer db.Discard()
	return r.msgs.Pending(db, wallet, hash)
}

// MessageSignatures returns the approvals collected so far for the
// pending message.
func (r *Registry) MessageSignatures(wallet rampart.Address, hash []byte) ([]pool.Signature, error) {
	msg, err := r.Message(wallet, hash)
	if err != nil {
		return nil, err
	}
	return msg.Signatures, nil
}

// HasSignedMessage returns true if the signer already approved the
// pending message.
func (r *Registry) HasSignedMessage(wallet rampart.Address, hash []byte, signer rampart.Address) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	db := r.store.ReadStore()
	defer db.Discard()
	return r.msgs.HasSigned(db, wallet, hash, signer)
}

// PendingMessages lists the content hashes of the wallet's pending
// messages, paged like PendingTransactions.
func (r *Registry) PendingMessages(wallet rampart.Address, offset, limit int) ([][]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	db := r.store.ReadStore()
	defer db.Discard()
	return r.msgs.PendingHashes(db, wallet, offset, limit)
}

// ExecutedMessage returns an archived message by its id.
func (r *Registry) ExecutedMessage(wallet rampart.Address, hash, msgID []byte) (*pool.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	db := r.store.ReadStore()
	defer db.Discard()
	return r.msgs.Executed(db, wallet, hash, msgID)
}

// AddressBookEntry returns the wallet's book entry for the address.
func (r *Registry) AddressBookEntry(wallet, address rampart.Address) (*addrbook.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	db := r.store.ReadStore()
	defer db.Discard()
	return r.book.GetEntry(db, wallet, address)
}

// AddressBook returns all entries of the wallet's book in key order.
func (r *Registry) AddressBook(wallet rampart.Address) ([]*addrbook.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	db := r.store.ReadStore()
	defer db.Discard()
	return r.book.Entries(db, wallet)
}

// TrustedContract returns the wallet's trusted contract record for the
// address.
func (r *Registry) TrustedContract(wallet, address rampart.Address) (*trusted.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	db := r.store.ReadStore()
	defer db.Discard()
	return r.contracts.GetContract(db, wallet, address)
}

// TrustedContracts returns all contracts the wallet trusts in key
// order.
func (r *Registry) TrustedContracts(wallet rampart.Address) ([]*trusted.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	db := r.store.ReadStore()
	defer db.Discard()
	return r.contracts.Contracts(db, wallet)
}

// DelegatePolicy returns the wallet's delegate call policy.
func (r *Registry) DelegatePolicy(wallet rampart.Address) (*delegation.Policy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	db := r.store.ReadStore()
	defer db.Discard()
	return r.policies.GetPolicy(db, wallet)
}
