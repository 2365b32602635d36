package pool

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/migration"
	"github.com/rampart-io/rampart/orm"
)

const (
	// defaultPageSize is used by the pending hash listings when the
	// caller does not name a limit. It is also the hard cap.
	defaultPageSize = 100
)

// itemKey identifies a pending item. One wallet can have at most one
// pending item per content hash.
func itemKey(wallet rampart.Address, hash []byte) []byte {
	key := make([]byte, 0, len(wallet)+len(hash))
	key = append(key, wallet...)
	key = append(key, hash...)
	return key
}

// executedKey identifies an archived item. The item ID keeps repeated
// proposals of the same content apart.
func executedKey(wallet rampart.Address, hash []byte, id []byte) []byte {
	key := make([]byte, 0, len(wallet)+len(hash)+len(id))
	key = append(key, wallet...)
	key = append(key, hash...)
	key = append(key, id...)
	return key
}

// pageHashes turns a pending prefix scan result into the list of
// content hashes, clamping the page arguments. An offset beyond the end
// yields an empty page.
func pageHashes(b migration.Bucket, db rampart.ReadOnlyKVStore, wallet rampart.Address, offset, limit int) ([][]byte, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > defaultPageSize {
		limit = defaultPageSize
	}
	objs, err := b.GetPrefix(db, wallet, offset, limit)
	if err != nil {
		return nil, errors.Wrap(err, "prefix scan")
	}
	hashes := make([][]byte, len(objs))
	for i, obj := range objs {
		// Keys are wallet|hash, the scan is scoped to the wallet.
		hashes[i] = obj.Key()[len(wallet):]
	}
	return hashes, nil
}

// TransactionBucket stores pending transactions, the executed archive
// and the per item ID counters.
type TransactionBucket struct {
	pending  migration.Bucket
	executed migration.Bucket
	ids      orm.Sequence
}

func NewTransactionBucket() *TransactionBucket {
	return &TransactionBucket{
		pending:  migration.NewBucket("pool", "pendtx", &Transaction{}),
		executed: migration.NewBucket("pool", "exectx", &Transaction{}),
		ids:      orm.NewSequence("pendtx", "id"),
	}
}

// NextID returns a fresh transaction ID for the given wallet and hash.
// Every pair owns its own counter that is never reset, so IDs strictly
// increase even across delete and execute.
func (b *TransactionBucket) NextID(db rampart.KVStore, wallet rampart.Address, hash []byte) ([]byte, error) {
	return b.ids.NextValFor(db, itemKey(wallet, hash))
}

// HasPending returns true if a pending transaction exists for the
// wallet and hash.
func (b *TransactionBucket) HasPending(db rampart.ReadOnlyKVStore, wallet rampart.Address, hash []byte) (bool, error) {
	obj, err := b.pending.Get(db, itemKey(wallet, hash))
	if err != nil {
		return false, errors.Wrap(err, "bucket get")
	}
	return obj != nil && obj.Value() != nil, nil
}

// Pending returns the pending transaction for the wallet and hash or
// ErrTransactionNotFound.
func (b *TransactionBucket) Pending(db rampart.ReadOnlyKVStore, wallet rampart.Address, hash []byte) (*Transaction, error) {
	obj, err := b.pending.Get(db, itemKey(wallet, hash))
	if err != nil {
		return nil, errors.Wrap(err, "bucket get")
	}
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrap(ErrTransactionNotFound, "nothing pending")
	}
	tx, ok := obj.Value().(*Transaction)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return tx, nil
}

// Executed returns the archived transaction for the wallet, hash and
// transaction ID or ErrTransactionNotFound.
func (b *TransactionBucket) Executed(db rampart.ReadOnlyKVStore, wallet rampart.Address, hash, txID []byte) (*Transaction, error) {
	obj, err := b.executed.Get(db, executedKey(wallet, hash, txID))
	if err != nil {
		return nil, errors.Wrap(err, "bucket get")
	}
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrap(ErrTransactionNotFound, "not executed")
	}
	tx, ok := obj.Value().(*Transaction)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return tx, nil
}

// SavePending persists the transaction in the pending space.
func (b *TransactionBucket) SavePending(db rampart.KVStore, tx *Transaction) error {
	return b.pending.Save(db, orm.NewSimpleObj(itemKey(tx.Wallet, tx.Hash), tx))
}

// DeletePending removes the pending transaction. Deleting a missing
// entry is not an error, callers check existence first.
func (b *TransactionBucket) DeletePending(db rampart.KVStore, wallet rampart.Address, hash []byte) error {
	return b.pending.Delete(db, itemKey(wallet, hash))
}

// Archive writes the transaction to the executed space under its ID.
func (b *TransactionBucket) Archive(db rampart.KVStore, tx *Transaction) error {
	key := executedKey(tx.Wallet, tx.Hash, tx.TxID)
	return b.executed.Save(db, orm.NewSimpleObj(key, tx))
}

// HasSigned returns true if the signer already appears on the pending
// transaction. Asking about a hash with nothing pending is
// ErrTransactionNotFound.
func (b *TransactionBucket) HasSigned(db rampart.ReadOnlyKVStore, wallet rampart.Address, hash []byte, signer rampart.Address) (bool, error) {
	tx, err := b.Pending(db, wallet, hash)
	if err != nil {
		return false, err
	}
	return tx.HasSigned(signer), nil
}

// PendingHashes lists the content hashes of the wallet's pending
// transactions in ascending key order. Limit zero means the default
// page size and pages are capped at it. An offset beyond the end
// returns an empty page, never an error.
func (b *TransactionBucket) PendingHashes(db rampart.ReadOnlyKVStore, wallet rampart.Address, offset, limit int) ([][]byte, error) {
	return pageHashes(b.pending, db, wallet, offset, limit)
}

// MessageBucket stores pending messages, the executed archive and the
// per item ID counters. It mirrors TransactionBucket.
type MessageBucket struct {
	pending  migration.Bucket
	executed migration.Bucket
	ids      orm.Sequence
}

func NewMessageBucket() *MessageBucket {
	return &MessageBucket{
		pending:  migration.NewBucket("pool", "pendmsg", &Message{}),
		executed: migration.NewBucket("pool", "execmsg", &Message{}),
		ids:      orm.NewSequence("pendmsg", "id"),
	}
}

// NextID returns a fresh message ID for the given wallet and hash.
func (b *MessageBucket) NextID(db rampart.KVStore, wallet rampart.Address, hash []byte) ([]byte, error) {
	return b.ids.NextValFor(db, itemKey(wallet, hash))
}

// HasPending returns true if a pending message exists for the wallet
// and hash.
func (b *MessageBucket) HasPending(db rampart.ReadOnlyKVStore, wallet rampart.Address, hash []byte) (bool, error) {
	obj, err := b.pending.Get(db, itemKey(wallet, hash))
	if err != nil {
		return false, errors.Wrap(err, "bucket get")
	}
	return obj != nil && obj.Value() != nil, nil
}

// Pending returns the pending message for the wallet and hash or
// ErrMessageNotFound.
func (b *MessageBucket) Pending(db rampart.ReadOnlyKVStore, wallet rampart.Address, hash []byte) (*Message, error) {
	obj, err := b.pending.Get(db, itemKey(wallet, hash))
	if err != nil {
		return nil, errors.Wrap(err, "bucket get")
	}
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrap(ErrMessageNotFound, "nothing pending")
	}
	msg, ok := obj.Value().(*Message)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return msg, nil
}

// Executed returns the archived message for the wallet, hash and
// message ID or ErrMessageNotFound.
func (b *MessageBucket) Executed(db rampart.ReadOnlyKVStore, wallet rampart.Address, hash, msgID []byte) (*Message, error) {
	obj, err := b.executed.Get(db, executedKey(wallet, hash, msgID))
	if err != nil {
		return nil, errors.Wrap(err, "bucket get")
	}
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrap(ErrMessageNotFound, "not executed")
	}
	msg, ok := obj.Value().(*Message)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return msg, nil
}

// SavePending persists the message in the pending space.
func (b *MessageBucket) SavePending(db rampart.KVStore, msg *Message) error {
	return b.pending.Save(db, orm.NewSimpleObj(itemKey(msg.Wallet, msg.Hash), msg))
}

// DeletePending removes the pending message.
func (b *MessageBucket) DeletePending(db rampart.KVStore, wallet rampart.Address, hash []byte) error {
	return b.pending.Delete(db, itemKey(wallet, hash))
}

// Archive writes the message to the executed space under its ID.
func (b *MessageBucket) Archive(db rampart.KVStore, msg *Message) error {
	key := executedKey(msg.Wallet, msg.Hash, msg.MsgID)
	return b.executed.Save(db, orm.NewSimpleObj(key, msg))
}

// HasSigned returns true if the signer already appears on the pending
// message. Asking about a hash with nothing pending is
// ErrMessageNotFound.
func (b *MessageBucket) HasSigned(db rampart.ReadOnlyKVStore, wallet rampart.Address, hash []byte, signer rampart.Address) (bool, error) {
	msg, err := b.Pending(db, wallet, hash)
	if err != nil {
		return false, err
	}
	return msg.HasSigned(signer), nil
}

// PendingHashes lists the content hashes of the wallet's pending
// messages in ascending key order, paged like the transaction variant.
func (b *MessageBucket) PendingHashes(db rampart.ReadOnlyKVStore, wallet rampart.Address, offset, limit int) ([][]byte, error) {
	return pageHashes(b.pending, db, wallet, offset, limit)
}
