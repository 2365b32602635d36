package addrbook

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/gconf"
	"github.com/rampart-io/rampart/migration"
	"github.com/rampart-io/rampart/x"
)

const packageName = "addrbook"

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r rampart.Registry, auth x.Authenticator) {
	bucket := NewBucket()
	r.Handle(pathAddEntry, migration.SchemaMigratingHandler(packageName,
		addEntryHandler{auth: auth, bucket: bucket}))
	r.Handle(pathRemoveEntry, migration.SchemaMigratingHandler(packageName,
		removeEntryHandler{auth: auth, bucket: bucket}))
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

type addEntryHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ rampart.Handler = addEntryHandler{}

func (h addEntryHandler) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &rampart.CheckResult{}, nil
}

func (h addEntryHandler) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	entry := &Entry{
		Metadata: msg.Metadata,
		Wallet:   msg.Wallet,
		Address:  msg.Address,
		Label:    msg.Label,
	}
	if err := h.bucket.Put(db, entry); err != nil {
		return nil, errors.Wrap(err, "save entry")
	}
	return &rampart.DeliverResult{Data: entryKey(msg.Wallet, msg.Address)}, nil
}

func (h addEntryHandler) validate(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*AddEntryMsg, error) {
	var msg AddEntryMsg
	if err := rampart.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := canManage(ctx, h.auth, db, msg.Wallet); err != nil {
		return nil, err
	}
	switch ok, err := h.bucket.HasEntry(db, msg.Wallet, msg.Address); {
	case err != nil:
		return nil, errors.Wrap(err, "check entry")
	case ok:
		return nil, errors.Wrap(errors.ErrDuplicate, "address already in book")
	}
	return &msg, nil
}

type removeEntryHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ rampart.Handler = removeEntryHandler{}

func (h removeEntryHandler) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &rampart.CheckResult{}, nil
}

func (h removeEntryHandler) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Delete(db, entryKey(msg.Wallet, msg.Address)); err != nil {
		return nil, errors.Wrap(err, "delete entry")
	}
	return &rampart.DeliverResult{}, nil
}

func (h removeEntryHandler) validate(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*RemoveEntryMsg, error) {
	var msg RemoveEntryMsg
	if err := rampart.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := canManage(ctx, h.auth, db, msg.Wallet); err != nil {
		return nil, err
	}
	switch ok, err := h.bucket.HasEntry(db, msg.Wallet, msg.Address); {
	case err != nil:
		return nil, errors.Wrap(err, "check entry")
	case !ok:
		return nil, errors.Wrap(errors.ErrNotFound, "address not in book")
	}
	return &msg, nil
}
