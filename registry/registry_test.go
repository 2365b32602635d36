package registry

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"testing"

	dbm "github.com/tendermint/tendermint/libs/db"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/ramparttest"
	"github.com/rampart-io/rampart/store/iavl"
	"github.com/rampart-io/rampart/x/guard"
	"github.com/rampart-io/rampart/x/pool"
)

func contentHash(seed string) []byte {
	h := sha256.Sum256([]byte(seed))
	return h[:]
}

func TestRegistryTransactionLifecycle(t *testing.T) {
	wallet := ramparttest.NewCaller("wallet").Address()
	payee := ramparttest.NewCaller("payee").Address()
	proposer := ramparttest.NewCaller("proposer").Address()
	cosigner := ramparttest.NewCaller("cosigner").Address()

	r, err := New(rampart.Options{}, iavl.MockCommitStore(), nil)
	if err != nil {
		t.Fatalf("cannot create the registry: %+v", err)
	}
	ctx := context.Background()

	hash := contentHash("rent payment")
	one := []byte{0x01}

	// The payee is unknown, the guard blocks execution.
	err = r.CheckTransaction(ctx, wallet, payee, one, nil, rampart.CallOp)
	if !guard.ErrRecipientUnknown.Is(err) {
		t.Fatalf("want an unknown recipient error, got %+v", err)
	}

	txID, err := r.ProposeTransaction(ctx, proposer, TransactionProposal{
		Wallet:      wallet,
		Hash:        hash,
		Destination: payee,
		Value:       one,
		Operation:   rampart.CallOp,
		Nonce:       1,
	})
	if err != nil {
		t.Fatalf("cannot propose: %+v", err)
	}
	if binary.BigEndian.Uint64(txID) != 1 {
		t.Fatalf("want the first transaction id, got %x", txID)
	}

	// Proposing implies no approval.
	sigs, err := r.TransactionSignatures(wallet, hash)
	if err != nil {
		t.Fatalf("cannot read signatures: %+v", err)
	}
	if len(sigs) != 0 {
		t.Fatalf("a fresh proposal must have no signatures: %+v", sigs)
	}

	if err := r.SignTransaction(ctx, proposer, wallet, hash, []byte("sig-a")); err != nil {
		t.Fatalf("proposer cannot sign: %+v", err)
	}
	if err := r.SignTransaction(ctx, cosigner, wallet, hash, []byte("sig-b")); err != nil {
		t.Fatalf("cosigner cannot sign: %+v", err)
	}
	if err := r.SignTransaction(ctx, cosigner, wallet, hash, []byte("sig-b")); !pool.ErrAlreadySigned.Is(err) {
		t.Fatalf("want an already signed error, got %+v", err)
	}

	ok, err := r.HasSignedTransaction(wallet, hash, cosigner)
	if err != nil {
		t.Fatalf("cannot check the signature: %+v", err)
	}
	if !ok {
		t.Fatal("the cosigner approval was not recorded")
	}
	sigs, err = r.TransactionSignatures(wallet, hash)
	if err != nil {
		t.Fatalf("cannot read signatures: %+v", err)
	}
	if len(sigs) != 2 {
		t.Fatalf("want 2 signatures, got %d", len(sigs))
	}

	hashes, err := r.PendingTransactions(wallet, 0, 0)
	if err != nil {
		t.Fatalf("cannot list pending: %+v", err)
	}
	if len(hashes) != 1 || !bytes.Equal(hashes[0], hash) {
		t.Fatalf("unexpected pending listing: %x", hashes)
	}

	// Withdrawal is the proposer's privilege, a failed attempt changes
	// nothing.
	if err := r.DeleteTransaction(ctx, cosigner, wallet, hash); !pool.ErrNotProposer.Is(err) {
		t.Fatalf("want a not proposer error, got %+v", err)
	}
	if _, err := r.Transaction(wallet, hash); err != nil {
		t.Fatalf("the failed delete must not remove the item: %+v", err)
	}

	// Listing the payee flips the guard verdict for the very same
	// parameters.
	if err := r.AddToAddressBook(ctx, wallet, wallet, payee, "landlord"); err != nil {
		t.Fatalf("cannot add the payee: %+v", err)
	}
	if err := r.CheckTransaction(ctx, wallet, payee, one, nil, rampart.CallOp); err != nil {
		t.Fatalf("the listed payee must pass: %+v", err)
	}

	if err := r.MarkTransactionExecuted(ctx, wallet, wallet, hash); err != nil {
		t.Fatalf("cannot mark executed: %+v", err)
	}
	if err := r.MarkTransactionExecuted(ctx, wallet, wallet, hash); !pool.ErrTransactionNotFound.Is(err) {
		t.Fatalf("execution must be recorded at most once: %+v", err)
	}
	if _, err := r.Transaction(wallet, hash); !pool.ErrTransactionNotFound.Is(err) {
		t.Fatalf("the executed item must leave the pending set: %+v", err)
	}

	// The archive keeps the item with its collected evidence.
	executed, err := r.ExecutedTransaction(wallet, hash, txID)
	if err != nil {
		t.Fatalf("cannot read the archive: %+v", err)
	}
	if len(executed.Signatures) != 2 {
		t.Fatalf("the archive must keep the signatures: %+v", executed.Signatures)
	}

	// A new round for the same content gets the next id.
	txID, err = r.ProposeTransaction(ctx, proposer, TransactionProposal{
		Wallet:      wallet,
		Hash:        hash,
		Destination: payee,
		Value:       one,
		Operation:   rampart.CallOp,
		Nonce:       2,
	})
	if err != nil {
		t.Fatalf("cannot propose again: %+v", err)
	}
	if binary.BigEndian.Uint64(txID) != 2 {
		t.Fatalf("transaction ids must not be reused: %x", txID)
	}
}

func TestRegistryMessageLifecycle(t *testing.T) {
	wallet := ramparttest.NewCaller("wallet").Address()
	proposer := ramparttest.NewCaller("proposer").Address()

	r, err := New(rampart.Options{}, iavl.MockCommitStore(), nil)
	if err != nil {
		t.Fatalf("cannot create the registry: %+v", err)
	}
	ctx := context.Background()

	hash := contentHash("bridge withdrawal")
	msgID, err := r.ProposeMessage(ctx, proposer, MessageProposal{
		Wallet:    wallet,
		Hash:      hash,
		Raw:       []byte("opaque payload"),
		RequestID: "withdraw-7",
		Topic:     "bridge",
	})
	if err != nil {
		t.Fatalf("cannot propose: %+v", err)
	}
	if binary.BigEndian.Uint64(msgID) != 1 {
		t.Fatalf("want the first message id, got %x", msgID)
	}

	if err := r.SignMessage(ctx, proposer, wallet, hash, []byte("sig")); err != nil {
		t.Fatalf("cannot sign: %+v", err)
	}
	ok, err := r.HasSignedMessage(wallet, hash, proposer)
	if err != nil {
		t.Fatalf("cannot check the signature: %+v", err)
	}
	if !ok {
		t.Fatal("the approval was not recorded")
	}

	msg, err := r.Message(wallet, hash)
	if err != nil {
		t.Fatalf("cannot read the message: %+v", err)
	}
	if msg.Topic != "bridge" || msg.RequestID != "withdraw-7" {
		t.Fatalf("routing hints lost: %+v", msg)
	}

	hashes, err := r.PendingMessages(wallet, 0, 0)
	if err != nil {
		t.Fatalf("cannot list pending: %+v", err)
	}
	if len(hashes) != 1 {
		t.Fatalf("want one pending message, got %d", len(hashes))
	}

	if err := r.MarkMessageExecuted(ctx, wallet, wallet, hash); err != nil {
		t.Fatalf("cannot mark executed: %+v", err)
	}
	if _, err := r.Message(wallet, hash); !pool.ErrMessageNotFound.Is(err) {
		t.Fatalf("the executed message must leave the pending set: %+v", err)
	}
	archived, err := r.ExecutedMessage(wallet, hash, msgID)
	if err != nil {
		t.Fatalf("cannot read the archive: %+v", err)
	}
	if archived.RequestID != "withdraw-7" {
		t.Fatalf("the archive lost the routing hints: %+v", archived)
	}
}

func TestRegistryDelegatePolicyFlow(t *testing.T) {
	wallet := ramparttest.NewCaller("wallet").Address()
	library := ramparttest.NewCaller("library").Address()
	unlisted := ramparttest.NewCaller("unlisted").Address()

	r, err := New(rampart.Options{}, iavl.MockCommitStore(), nil)
	if err != nil {
		t.Fatalf("cannot create the registry: %+v", err)
	}
	ctx := context.Background()

	// No policy at all rejects.
	err = r.CheckTransaction(ctx, wallet, library, nil, nil, rampart.DelegateCallOp)
	if !guard.ErrDelegateCallDisabled.Is(err) {
		t.Fatalf("want a disabled error, got %+v", err)
	}

	if err := r.SetDelegateCallsEnabled(ctx, wallet, wallet, true); err != nil {
		t.Fatalf("cannot enable delegate calls: %+v", err)
	}
	if err := r.AddDelegateTarget(ctx, wallet, wallet, library); err != nil {
		t.Fatalf("cannot add the target: %+v", err)
	}

	if err := r.CheckTransaction(ctx, wallet, library, nil, nil, rampart.DelegateCallOp); err != nil {
		t.Fatalf("the listed target must pass: %+v", err)
	}
	err = r.CheckTransaction(ctx, wallet, unlisted, nil, nil, rampart.DelegateCallOp)
	if !guard.ErrDelegateTargetNotAllowed.Is(err) {
		t.Fatalf("want a target not allowed error, got %+v", err)
	}

	// Disabling beats the target list.
	if err := r.SetDelegateCallsEnabled(ctx, wallet, wallet, false); err != nil {
		t.Fatalf("cannot disable delegate calls: %+v", err)
	}
	err = r.CheckTransaction(ctx, wallet, library, nil, nil, rampart.DelegateCallOp)
	if !guard.ErrDelegateCallDisabled.Is(err) {
		t.Fatalf("want a disabled error, got %+v", err)
	}

	policy, err := r.DelegatePolicy(wallet)
	if err != nil {
		t.Fatalf("cannot read the policy: %+v", err)
	}
	if policy.Enabled {
		t.Fatal("the policy must be disabled")
	}
	if len(policy.Targets) != 1 || !policy.Targets[0].Equals(library) {
		t.Fatalf("disabling must not touch the target list: %+v", policy.Targets)
	}
}

func TestGuardHookWritesNothing(t *testing.T) {
	wallet := ramparttest.NewCaller("wallet").Address()
	payee := ramparttest.NewCaller("payee").Address()

	db := iavl.MockCommitStore()
	r, err := New(rampart.Options{}, db, nil)
	if err != nil {
		t.Fatalf("cannot create the registry: %+v", err)
	}
	ctx := context.Background()

	before, err := db.LatestVersion()
	if err != nil {
		t.Fatalf("cannot read the version: %+v", err)
	}

	// Both verdicts leave the store untouched.
	if err := r.CheckTransaction(ctx, wallet, payee, []byte{0x01}, nil, rampart.CallOp); err == nil {
		t.Fatal("the unknown payee must be rejected")
	}
	if err := r.CheckTransaction(ctx, wallet, payee, nil, []byte{0xde, 0xad, 0xbe, 0xef}, rampart.CallOp); err == nil {
		t.Fatal("the unknown contract must be rejected")
	}

	after, err := db.LatestVersion()
	if err != nil {
		t.Fatalf("cannot read the version: %+v", err)
	}
	if before.Version != after.Version || !bytes.Equal(before.Hash, after.Hash) {
		t.Fatalf("the guard hook must not change the state: %v != %v", before, after)
	}
}

func TestRegistryGenesis(t *testing.T) {
	wallet := ramparttest.NewCaller("wallet").Address()
	exchange := ramparttest.NewCaller("exchange").Address()
	governor := ramparttest.NewCaller("governor").Address()

	genesis := rampart.Options{
		"registry": json.RawMessage(fmt.Sprintf(`{"authority": %q}`, governor)),
		"addrbook": json.RawMessage(fmt.Sprintf(`
			{"entries": [
				{"wallet": %q, "address": %q, "label": "exchange"}
			]}`, wallet, exchange)),
	}
	db, cleanup := ramparttest.CommitKVStore(t)
	defer cleanup()
	r, err := New(genesis, db, nil)
	if err != nil {
		t.Fatalf("cannot create the registry: %+v", err)
	}

	if !r.Authority().Equals(governor) {
		t.Fatalf("want the configured authority, got %q", r.Authority())
	}

	entry, err := r.AddressBookEntry(wallet, exchange)
	if err != nil {
		t.Fatalf("cannot read the seeded entry: %+v", err)
	}
	if entry.Label != "exchange" {
		t.Fatalf("unexpected label: %q", entry.Label)
	}

	// The seeded entry feeds the guard immediately.
	err = r.CheckTransaction(context.Background(), wallet, exchange, []byte{0x01}, nil, rampart.CallOp)
	if err != nil {
		t.Fatalf("the seeded payee must pass: %+v", err)
	}
}

func TestRegistryRestartKeepsState(t *testing.T) {
	wallet := ramparttest.NewCaller("wallet").Address()
	exchange := ramparttest.NewCaller("exchange").Address()
	landlord := ramparttest.NewCaller("landlord").Address()

	backing := dbm.NewMemDB()
	genesis := rampart.Options{
		"addrbook": json.RawMessage(fmt.Sprintf(`
			{"entries": [
				{"wallet": %q, "address": %q, "label": "exchange"}
			]}`, wallet, exchange)),
	}

	r, err := New(genesis, iavl.NewCommitStore(backing), nil)
	if err != nil {
		t.Fatalf("cannot create the registry: %+v", err)
	}
	if err := r.AddToAddressBook(context.Background(), wallet, wallet, landlord, "landlord"); err != nil {
		t.Fatalf("cannot add an entry: %+v", err)
	}

	// A second registry over the same backing must find the state and
	// must not seed the genesis payload again.
	again, err := New(rampart.Options{
		"addrbook": json.RawMessage(`{"entries": []}`),
	}, iavl.NewCommitStore(backing), nil)
	if err != nil {
		t.Fatalf("cannot reopen the registry: %+v", err)
	}

	entries, err := again.AddressBook(wallet)
	if err != nil {
		t.Fatalf("cannot list the book: %+v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("want both entries to survive the restart, got %d", len(entries))
	}
}

func TestRegistryRebind(t *testing.T) {
	wallet := ramparttest.NewCaller("wallet").Address()
	payee := ramparttest.NewCaller("payee").Address()
	governor := ramparttest.NewCaller("governor").Address()
	stranger := ramparttest.NewCaller("stranger").Address()

	r, err := New(rampart.Options{}, iavl.MockCommitStore(), nil)
	if err != nil {
		t.Fatalf("cannot create the registry: %+v", err)
	}
	ctx := context.Background()

	if err := r.Rebind(ctx, governor, "addrbook", governor); err != nil {
		t.Fatalf("cannot rebind: %+v", err)
	}

	// With the configuration owned by the governor the registry
	// authority no longer qualifies, so a stranger cannot manage a
	// foreign wallet anymore.
	err = r.AddToAddressBook(ctx, stranger, wallet, payee, "payee")
	if !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want an unauthorized error, got %+v", err)
	}
	if err := r.AddToAddressBook(ctx, governor, wallet, payee, "payee"); err != nil {
		t.Fatalf("the new owner must manage the wallet: %+v", err)
	}
	// The wallet still manages itself.
	if err := r.RemoveFromAddressBook(ctx, wallet, wallet, payee); err != nil {
		t.Fatalf("the wallet must manage itself: %+v", err)
	}

	// Rebinding is now gated on the current owner.
	if err := r.Rebind(ctx, stranger, "addrbook", stranger); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want an unauthorized error, got %+v", err)
	}
	if err := r.Rebind(ctx, rampart.Address("short"), "addrbook", governor); err == nil {
		t.Fatal("a malformed caller must be rejected")
	}
	if err := r.Rebind(ctx, governor, "nosuchpkg", governor); !errors.ErrInput.Is(err) {
		t.Fatalf("want an input error, got %+v", err)
	}
}
