package pool

import (
	"fmt"

	"github.com/tendermint/tendermint/libs/common"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/x"
)

type proposeMessageHandler struct {
	auth   x.Authenticator
	bucket *MessageBucket
}

var _ rampart.Handler = proposeMessageHandler{}

func (h proposeMessageHandler) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &rampart.CheckResult{}, nil
}

func (h proposeMessageHandler) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	msg, proposer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	msgID, err := h.bucket.NextID(db, msg.Wallet, msg.Hash)
	if err != nil {
		return nil, errors.Wrap(err, "next id")
	}
	pending := &Message{
		Metadata:  msg.Metadata,
		Wallet:    msg.Wallet,
		Hash:      msg.Hash,
		MsgID:     msgID,
		Raw:       msg.Raw,
		RequestID: msg.RequestID,
		Topic:     msg.Topic,
		Proposer:  proposer,
	}
	if err := h.bucket.SavePending(db, pending); err != nil {
		return nil, errors.Wrap(err, "save message")
	}
	return &rampart.DeliverResult{
		Data: msgID,
		Tags: []common.KVPair{
			{Key: []byte("wallet"), Value: []byte(msg.Wallet.String())},
			{Key: []byte("msg-hash"), Value: []byte(hashHex(msg.Hash))},
			{Key: []byte("proposer"), Value: []byte(proposer.String())},
		},
	}, nil
}

func (h proposeMessageHandler) validate(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*ProposeMessageMsg, rampart.Address, error) {
	var msg ProposeMessageMsg
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
		return nil, nil, errors.Wrap(errors.ErrDuplicate, "message already pending")
	}
	return &msg, proposer, nil
}

type signMessageHandler struct {
	auth   x.Authenticator
	bucket *MessageBucket
}

var _ rampart.Handler = signMessageHandler{}

func (h signMessageHandler) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &rampart.CheckResult{}, nil
}

func (h signMessageHandler) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	msg, pending, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	pending.Signatures = append(pending.Signatures, Signature{
		Signer: signer,
		Data:   msg.Signature,
	})
	if err := h.bucket.SavePending(db, pending); err != nil {
		return nil, errors.Wrap(err, "save message")
	}
	return &rampart.DeliverResult{
		Tags: []common.KVPair{
			{Key: []byte("wallet"), Value: []byte(msg.Wallet.String())},
			{Key: []byte("msg-hash"), Value: []byte(hashHex(msg.Hash))},
		},
	}, nil
}

func (h signMessageHandler) validate(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*SignMessageMsg, *Message, rampart.Address, error) {
	var msg SignMessageMsg
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

type markMessageExecutedHandler struct {
	auth   x.Authenticator
	bucket *MessageBucket
}

var _ rampart.Handler = markMessageExecutedHandler{}

func (h markMessageExecutedHandler) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &rampart.CheckResult{}, nil
}

func (h markMessageExecutedHandler) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	msg, pending, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Archive(db, pending); err != nil {
		return nil, errors.Wrap(err, "archive message")
	}
	if err := h.bucket.DeletePending(db, msg.Wallet, msg.Hash); err != nil {
		return nil, errors.Wrap(err, "delete pending")
	}
	return &rampart.DeliverResult{
		Data: pending.MsgID,
		Tags: []common.KVPair{
			{Key: []byte("wallet"), Value: []byte(msg.Wallet.String())},
			{Key: []byte("msg-hash"), Value: []byte(hashHex(msg.Hash))},
		},
	}, nil
}

func (h markMessageExecutedHandler) validate(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*MarkMessageExecutedMsg, *Message, error) {
	var msg MarkMessageExecutedMsg
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

type deleteMessageHandler struct {
	auth   x.Authenticator
	bucket *MessageBucket
}

var _ rampart.Handler = deleteMessageHandler{}

func (h deleteMessageHandler) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &rampart.CheckResult{}, nil
}

func (h deleteMessageHandler) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
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
			{Key: []byte("msg-hash"), Value: []byte(hashHex(msg.Hash))},
		},
	}, nil
}

func (h deleteMessageHandler) validate(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*DeleteMessageMsg, error) {
	var msg DeleteMessageMsg
	if err := rampart.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	pending, err := h.bucket.Pending(db, msg.Wallet, msg.Hash)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, pending.Proposer) {
		return nil, errors.Wrap(ErrNotProposer, "only the recorded proposer may delete")
	}
	return &msg, nil
}

type pruneMessagesHandler struct {
	auth   x.Authenticator
	bucket *MessageBucket
}

var _ rampart.Handler = pruneMessagesHandler{}

func (h pruneMessagesHandler) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &rampart.CheckResult{}, nil
}

func (h pruneMessagesHandler) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
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
			continue
		}
		if err := h.bucket.DeletePending(db, msg.Wallet, hash); err != nil {
			return nil, errors.Wrap(err, "delete pending")
		}
		pruned++
	}
	return &rampart.DeliverResult{
		Data: encodeCount(pruned),
		Log:  fmt.Sprintf("pruned %d of %d messages", pruned, len(msg.Hashes)),
		Tags: []common.KVPair{
			{Key: []byte("wallet"), Value: []byte(msg.Wallet.String())},
			{Key: []byte("prune-reason"), Value: []byte(msg.Reason)},
		},
	}, nil
}

func (h pruneMessagesHandler) validate(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*PruneMessagesMsg, error) {
	var msg PruneMessagesMsg
	if err := rampart.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := canManage(ctx, h.auth, db, msg.Wallet); err != nil {
		return nil, err
	}
	return &msg, nil
}
