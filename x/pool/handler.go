package pool

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/tendermint/tendermint/libs/common"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/gconf"
	"github.com/rampart-io/rampart/migration"
	"github.com/rampart-io/rampart/x"
)

const packageName = "pool"

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r rampart.Registry, auth x.Authenticator) {
	txs := NewTransactionBucket()
	r.Handle(pathProposeTx, migration.SchemaMigratingHandler(packageName,
		proposeTransactionHandler{auth: auth, bucket: txs}))
	r.Handle(pathSignTx, migration.SchemaMigratingHandler(packageName,
		signTransactionHandler{auth: auth, bucket: txs}))
	r.Handle(pathMarkTxExecuted, migration.SchemaMigratingHandler(packageName,
		markTransactionExecutedHandler{auth: auth, bucket: txs}))
	r.Handle(pathDeleteTx, migration.SchemaMigratingHandler(packageName,
		deleteTransactionHandler{auth: auth, bucket: txs}))
	r.Handle(pathPruneTxs, migration.SchemaMigratingHandler(packageName,
		pruneTransactionsHandler{auth: auth, bucket: txs}))

	msgs := NewMessageBucket()
	r.Handle(pathProposeMsg, migration.SchemaMigratingHandler(packageName,
		proposeMessageHandler{auth: auth, bucket: msgs}))
	r.Handle(pathSignMsg, migration.SchemaMigratingHandler(packageName,
		signMessageHandler{auth: auth, bucket: msgs}))
	r.Handle(pathMarkMsgExecuted, migration.SchemaMigratingHandler(packageName,
		markMessageExecutedHandler{auth: auth, bucket: msgs}))
	r.Handle(pathDeleteMsg, migration.SchemaMigratingHandler(packageName,
		deleteMessageHandler{auth: auth, bucket: msgs}))
	r.Handle(pathPruneMsgs, migration.SchemaMigratingHandler(packageName,
		pruneMessagesHandler{auth: auth, bucket: msgs}))

	r.Handle(pathUpdateConfiguration, gconf.NewUpdateConfigurationHandler(
		packageName, &Configuration{}, auth))
}

// canManage returns nil if the transaction was authorized by the wallet
// itself or by the configured package owner. Without a bound
// configuration only the wallet qualifies.
func canManage(ctx rampart.Context, auth x.Authenticator, db rampart.ReadOnlyKVStore, wallet rampart.Address) error {
	if auth.HasAddress(ctx, wallet) {
		return nil
	}
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case err == nil:
		if len(conf.Owner) != 0 && auth.HasAddress(ctx, conf.Owner) {
			return nil
		}
	case errors.ErrNotFound.Is(err):
		// No configuration bound.
	default:
		return errors.Wrap(err, "load configuration")
	}
	return errors.Wrap(errors.ErrUnauthorized, "wallet or configuration owner signature required")
}

// resolveProposer attributes a proposal. An empty requested proposer is
// the self service path and attributes the main caller. An explicit
// proposer must itself be in the caller set, or the caller set must
// qualify for wallet management.
func resolveProposer(ctx rampart.Context, auth x.Authenticator, db rampart.ReadOnlyKVStore, wallet, requested rampart.Address) (rampart.Address, error) {
	if len(requested) == 0 {
		caller := x.MainCaller(ctx, auth)
		if len(caller) == 0 {
			return nil, errors.Wrap(errors.ErrUnauthorized, "no caller to attribute")
		}
		return caller, nil
	}
	if auth.HasAddress(ctx, requested) {
		return requested, nil
	}
	if err := canManage(ctx, auth, db, wallet); err != nil {
		return nil, err
	}
	return requested, nil
}

func hashHex(hash []byte) string {
	return strings.ToUpper(hex.EncodeToString(hash))
}

func encodeCount(n int64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(n))
	return raw
}

type proposeTransactionHandler struct {
	auth   x.Authenticator
	bucket *TransactionBucket
}

var _ rampart.Handler = proposeTransactionHandler{}

func (h proposeTransactionHandler) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &rampart.CheckResult{}, nil
}

func (h proposeTransactionHandler) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	msg, proposer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	txID, err := h.bucket.NextID(db, msg.Wallet, msg.Hash)
	if err != nil {
		return nil, errors.Wrap(err, "next id")
	}
	pending := &Transaction{
		Metadata:    msg.Metadata,
		Wallet:      msg.Wallet,
		Hash:        msg.Hash,
		TxID:        txID,
		Destination: msg.Destination,
		Value:       msg.Value,
		Payload:     msg.Payload,
		Operation:   msg.Operation,
		Nonce:       msg.Nonce,
		Proposer:    proposer,
	}
	if err := h.bucket.SavePending(db, pending); err != nil {
		return nil, errors.Wrap(err, "save transaction")
	}
	return &rampart.DeliverResult{
		Data: txID,
		Tags: []common.KVPair{
			{Key: []byte("wallet"), Value: []byte(msg.Wallet.String())},
			{Key: []byte("tx-hash"), Value: []byte(hashHex(msg.Hash))},
			{Key: []byte("proposer"), Value: []byte(proposer.String())},
		},
	}, nil
}

func (h proposeTransactionHandler) validate(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*ProposeTransactionMsg, rampart.Address, error) {
	var msg ProposeTransactionMsg
	if err := rampart.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	proposer, err := resolveProposer(ctx, h.auth, db, msg.Wallet, msg.Proposer)
	if err != nil {
		return nil, nil, err
	}
	switch ok, err := h.bucket.HasPending(db, msg.Wallet, msg.Hash); {
	case err != nil:
		return nil, nil, errors.Wrap(err, "check pending")
	case ok:
		return nil, nil, errors.Wrap(errors.ErrDuplicate, "transaction already pending")
	}
	return &msg, proposer, nil
}

type signTransactionHandler struct {
	auth   x.Authenticator
	bucket *TransactionBucket
}

var _ rampart.Handler = signTransactionHandler{}

func (h signTransactionHandler) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &rampart.CheckResult{}, nil
}

func (h signTransactionHandler) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	msg, pending, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	pending.Signatures = append(pending.Signatures, Signature{
		Signer: signer,
		Data:   msg.Signature,
	})
	if err := h.bucket.SavePending(db, pending); err != nil {
		return nil, errors.Wrap(err, "save transaction")
	}
	return &rampart.DeliverResult{
		Tags: []common.KVPair{
			{Key: []byte("wallet"), Value: []byte(msg.Wallet.String())},
			{Key: []byte("tx-hash"), Value: []byte(hashHex(msg.Hash))},
		},
	}, nil
}

func (h signTransactionHandler) validate(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*SignTransactionMsg, *Transaction, rampart.Address, error) {
	var msg SignTransactionMsg
	if err := rampart.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	if err := canManage(ctx, h.auth, db, msg.Wallet); err != nil {
		return nil, nil, nil, err
	}
	signer := x.MainCaller(ctx, h.auth)
	if len(signer) == 0 {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "no caller to attribute")
	}
	pending, err := h.bucket.Pending(db, msg.Wallet, msg.Hash)
	if err != nil {
		return nil, nil, nil, err
	}
	if pending.HasSigned(signer) {
		return nil, nil, nil, errors.Wrapf(ErrAlreadySigned, "signer %s", signer)
	}
	return &msg, pending, signer, nil
}

type markTransactionExecutedHandler struct {
	auth   x.Authenticator
	bucket *TransactionBucket
}

var _ rampart.Handler = markTransactionExecutedHandler{}

func (h markTransactionExecutedHandler) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &rampart.CheckResult{}, nil
}

func (h markTransactionExecutedHandler) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	msg, pending, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	// Archive first, then drop from pending. Once the pending item is
	// gone a second mark fails the existence check, so execution is
	// recorded at most once per proposal.
	if err := h.bucket.Archive(db, pending); err != nil {
		return nil, errors.Wrap(err, "archive transaction")
	}
	if err := h.bucket.DeletePending(db, msg.Wallet, msg.Hash); err != nil {
		return nil, errors.Wrap(err, "delete pending")
	}
	return &rampart.DeliverResult{
		Data: pending.TxID,
		Tags: []common.KVPair{
			{Key: []byte("wallet"), Value: []byte(msg.Wallet.String())},
			{Key: []byte("tx-hash"), Value: []byte(hashHex(msg.Hash))},
		},
	}, nil
}

func (h markTransactionExecutedHandler) validate(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*MarkTransactionExecutedMsg, *Transaction, error) {
	var msg MarkTransactionExecutedMsg
	if err := rampart.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if err := canManage(ctx, h.auth, db, msg.Wallet); err != nil {
		return nil, nil, err
	}
	pending, err := h.bucket.Pending(db, msg.Wallet, msg.Hash)
	if err != nil {
		return nil, nil, err
	}
	return &msg, pending, nil
}

type deleteTransactionHandler struct {
	auth   x.Authenticator
	bucket *TransactionBucket
}

var _ rampart.Handler = deleteTransactionHandler{}

func (h deleteTransactionHandler) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &rampart.CheckResult{}, nil
}

func (h deleteTransactionHandler) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.DeletePending(db, msg.Wallet, msg.Hash); err != nil {
		return nil, errors.Wrap(err, "delete pending")
	}
	return &rampart.DeliverResult{
		Tags: []common.KVPair{
			{Key: []byte("wallet"), Value: []byte(msg.Wallet.String())},
			{Key: []byte("tx-hash"), Value: []byte(hashHex(msg.Hash))},
		},
	}, nil
}

func (h deleteTransactionHandler) validate(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*DeleteTransactionMsg, error) {
	var msg DeleteTransactionMsg
	if err := rampart.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	pending, err := h.bucket.Pending(db, msg.Wallet, msg.Hash)
	if err != nil {
		return nil, err
	}
	// Withdrawal is personal. Not even the wallet or the configuration
	// owner may remove a proposal on the proposer's behalf.
	if !h.auth.HasAddress(ctx, pending.Proposer) {
		return nil, errors.Wrap(ErrNotProposer, "only the recorded proposer may delete")
	}
	return &msg, nil
}

type pruneTransactionsHandler struct {
	auth   x.Authenticator
	bucket *TransactionBucket
}

var _ rampart.Handler = pruneTransactionsHandler{}

func (h pruneTransactionsHandler) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &rampart.CheckResult{}, nil
}

func (h pruneTransactionsHandler) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	var pruned int64
	for _, hash := range msg.Hashes {
		switch ok, err := h.bucket.HasPending(db, msg.Wallet, hash); {
		case err != nil:
			return nil, errors.Wrap(err, "check pending")
		case !ok:
			// Unknown hashes are skipped, not an error.
			continue
		}
		if err := h.bucket.DeletePending(db, msg.Wallet, hash); err != nil {
			return nil, errors.Wrap(err, "delete pending")
		}
		pruned++
	}
	return &rampart.DeliverResult{
		Data: encodeCount(pruned),
		Log:  fmt.Sprintf("pruned %d of %d transactions", pruned, len(msg.Hashes)),
		Tags: []common.KVPair{
			{Key: []byte("wallet"), Value: []byte(msg.Wallet.String())},
			{Key: []byte("prune-reason"), Value: []byte(msg.Reason)},
		},
	}, nil
}

func (h pruneTransactionsHandler) validate(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*PruneTransactionsMsg, error) {
	var msg PruneTransactionsMsg
	if err := rampart.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := canManage(ctx, h.auth, db, msg.Wallet); err != nil {
		return nil, err
	}
	return &msg, nil
}
