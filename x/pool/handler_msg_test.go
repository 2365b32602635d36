package pool

import (
	"bytes"
	"context"
	"testing"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/ramparttest"
)

// TestMessageLifecycle walks one off-chain message through the whole
// pool: propose, co-sign, execute, archive lookup and re-proposal. The
// message flow mirrors the transaction flow so the corner cases are
// covered by the transaction handler tests.
func TestMessageLifecycle(t *testing.T) {
	wallet := ramparttest.NewCaller("wallet")
	owner := ramparttest.NewCaller("registry owner")
	proposer := ramparttest.NewCaller("proposer")
	cosigner := ramparttest.NewCaller("cosigner")

	hash := contentHash("permit payload")

	db := pooldb(t, owner.Address())
	bucket := NewMessageBucket()

	auth := &ramparttest.CtxAuth{Key: "auth"}
	propose := proposeMessageHandler{auth: auth, bucket: bucket}
	sign := signMessageHandler{auth: auth, bucket: bucket}
	mark := markMessageExecutedHandler{auth: auth, bucket: bucket}

	proposerCtx := auth.SetCallers(context.Background(), proposer.Address(), owner.Address())
	cosignerCtx := auth.SetCallers(context.Background(), cosigner.Address(), owner.Address())
	walletCtx := auth.SetCallers(context.Background(), wallet.Address())

	proposeTx := &ramparttest.Tx{Msg: &ProposeMessageMsg{
		Metadata:  &rampart.Metadata{Schema: 1},
		Wallet:    wallet.Address(),
		Hash:      hash,
		Raw:       []byte("arbitrary bytes, the pool never interprets them"),
		RequestID: "withdraw-42",
		Topic:     "bridge",
	}}
	res, err := propose.Deliver(proposerCtx, db, proposeTx)
	if err != nil {
		t.Fatalf("cannot propose: %+v", err)
	}
	msgID := res.Data
	if !bytes.Equal(msgID, encodeCount(1)) {
		t.Fatalf("want first id, got %x", msgID)
	}

	// The same hash cannot be staged twice while pending.
	if _, err := propose.Deliver(proposerCtx, db, proposeTx); !errors.ErrDuplicate.Is(err) {
		t.Fatalf("want a duplicate error, got %+v", err)
	}

	signTx := func(sig string) *ramparttest.Tx {
		return &ramparttest.Tx{Msg: &SignMessageMsg{
			Metadata:  &rampart.Metadata{Schema: 1},
			Wallet:    wallet.Address(),
			Hash:      hash,
			Signature: []byte(sig),
		}}
	}
	if _, err := sign.Deliver(proposerCtx, db, signTx("sig-a")); err != nil {
		t.Fatalf("proposer cannot sign: %+v", err)
	}
	if _, err := sign.Deliver(cosignerCtx, db, signTx("sig-b")); err != nil {
		t.Fatalf("cosigner cannot sign: %+v", err)
	}
	if _, err := sign.Deliver(cosignerCtx, db, signTx("sig-b")); !ErrAlreadySigned.Is(err) {
		t.Fatalf("want an already signed error, got %+v", err)
	}

	pending, err := bucket.Pending(db, wallet.Address(), hash)
	if err != nil {
		t.Fatalf("cannot get pending message: %s", err)
	}
	if pending.RequestID != "withdraw-42" || pending.Topic != "bridge" {
		t.Fatalf("routing hints lost: %+v", pending)
	}
	if len(pending.Signatures) != 2 {
		t.Fatalf("want 2 signatures, got %d", len(pending.Signatures))
	}

	markTx := &ramparttest.Tx{Msg: &MarkMessageExecutedMsg{
		Metadata: &rampart.Metadata{Schema: 1},
		Wallet:   wallet.Address(),
		Hash:     hash,
	}}
	res, err = mark.Deliver(walletCtx, db, markTx)
	if err != nil {
		t.Fatalf("cannot mark executed: %+v", err)
	}
	if !bytes.Equal(res.Data, msgID) {
		t.Fatalf("mark result %x does not carry the message id %x", res.Data, msgID)
	}
	if _, err := mark.Deliver(walletCtx, db, markTx); !ErrMessageNotFound.Is(err) {
		t.Fatalf("second mark must fail not found: %+v", err)
	}

	archived, err := bucket.Executed(db, wallet.Address(), hash, msgID)
	if err != nil {
		t.Fatalf("cannot get archived message: %s", err)
	}
	if len(archived.Signatures) != 2 {
		t.Fatalf("archive lost signatures: %+v", archived.Signatures)
	}

	// Re-proposing the executed content starts a fresh round with the
	// next id.
	res, err = propose.Deliver(proposerCtx, db, proposeTx)
	if err != nil {
		t.Fatalf("cannot propose again: %+v", err)
	}
	if !bytes.Equal(res.Data, encodeCount(2)) {
		t.Fatalf("want second id, got %x", res.Data)
	}
}

func TestDeleteMessageProposerOnly(t *testing.T) {
	wallet := ramparttest.NewCaller("wallet")
	owner := ramparttest.NewCaller("registry owner")
	proposer := ramparttest.NewCaller("proposer")

	hash := contentHash("permit payload")

	db := pooldb(t, owner.Address())
	bucket := NewMessageBucket()
	if err := bucket.SavePending(db, &Message{
		Metadata: &rampart.Metadata{Schema: 1},
		Wallet:   wallet.Address(),
		Hash:     hash,
		MsgID:    encodeCount(1),
		Raw:      []byte("payload"),
		Proposer: proposer.Address(),
	}); err != nil {
		t.Fatalf("cannot store pending message: %s", err)
	}

	auth := &ramparttest.CtxAuth{Key: "auth"}
	h := deleteMessageHandler{auth: auth, bucket: bucket}
	tx := &ramparttest.Tx{Msg: &DeleteMessageMsg{
		Metadata: &rampart.Metadata{Schema: 1},
		Wallet:   wallet.Address(),
		Hash:     hash,
	}}

	walletCtx := auth.SetCallers(context.Background(), wallet.Address())
	if _, err := h.Deliver(walletCtx, db, tx); !ErrNotProposer.Is(err) {
		t.Fatalf("the wallet must not withdraw for the proposer: %+v", err)
	}

	proposerCtx := auth.SetCallers(context.Background(), proposer.Address())
	if _, err := h.Deliver(proposerCtx, db, tx); err != nil {
		t.Fatalf("proposer cannot delete: %+v", err)
	}
	if _, err := bucket.Pending(db, wallet.Address(), hash); !ErrMessageNotFound.Is(err) {
		t.Fatalf("pending message must be gone: %+v", err)
	}
}

func TestPruneMessagesSkipsUnknown(t *testing.T) {
	wallet := ramparttest.NewCaller("wallet")
	owner := ramparttest.NewCaller("registry owner")

	db := pooldb(t, owner.Address())
	bucket := NewMessageBucket()
	if err := bucket.SavePending(db, &Message{
		Metadata: &rampart.Metadata{Schema: 1},
		Wallet:   wallet.Address(),
		Hash:     contentHash("keep"),
		MsgID:    encodeCount(1),
		Raw:      []byte("payload"),
		Proposer: wallet.Address(),
	}); err != nil {
		t.Fatalf("cannot store pending message: %s", err)
	}

	auth := &ramparttest.CtxAuth{Key: "auth"}
	h := pruneMessagesHandler{auth: auth, bucket: bucket}
	ctx := auth.SetCallers(context.Background(), wallet.Address())
	tx := &ramparttest.Tx{Msg: &PruneMessagesMsg{
		Metadata: &rampart.Metadata{Schema: 1},
		Wallet:   wallet.Address(),
		Hashes:   [][]byte{contentHash("unknown")},
		Reason:   "stale",
	}}
	res, err := h.Deliver(ctx, db, tx)
	if err != nil {
		t.Fatalf("cannot prune: %+v", err)
	}
	if !bytes.Equal(res.Data, encodeCount(0)) {
		t.Fatalf("nothing should be pruned, got %x", res.Data)
	}
	if _, err := bucket.Pending(db, wallet.Address(), contentHash("keep")); err != nil {
		t.Fatalf("unlisted message must survive: %+v", err)
	}
}
