package trusted

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/gconf"
	"github.com/rampart-io/rampart/migration"
	"github.com/rampart-io/rampart/x"
)

const packageName = "trusted"

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r rampart.Registry, auth x.Authenticator) {
	bucket := NewBucket()
	r.Handle(pathAddContract, migration.SchemaMigratingHandler(packageName,
		addContractHandler{auth: auth, bucket: bucket}))
	r.Handle(pathRemoveContract, migration.SchemaMigratingHandler(packageName,
		removeContractHandler{auth: auth, bucket: bucket}))
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

type addContractHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ rampart.Handler = addContractHandler{}

func (h addContractHandler) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &rampart.CheckResult{}, nil
}

func (h addContractHandler) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	contract := &Contract{
		Metadata: msg.Metadata,
		Wallet:   msg.Wallet,
		Address:  msg.Address,
		Label:    msg.Label,
	}
	// Listing the same contract again refreshes the label. Trust is
	// idempotent so there is no duplicate check here.
	if err := h.bucket.Put(db, contract); err != nil {
		return nil, errors.Wrap(err, "save contract")
	}
	return &rampart.DeliverResult{Data: contractKey(msg.Wallet, msg.Address)}, nil
}

func (h addContractHandler) validate(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*AddContractMsg, error) {
	var msg AddContractMsg
	if err := rampart.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := canManage(ctx, h.auth, db, msg.Wallet); err != nil {
		return nil, err
	}
	return &msg, nil
}

type removeContractHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ rampart.Handler = removeContractHandler{}

func (h removeContractHandler) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &rampart.CheckResult{}, nil
}

func (h removeContractHandler) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Delete(db, contractKey(msg.Wallet, msg.Address)); err != nil {
		return nil, errors.Wrap(err, "delete contract")
	}
	return &rampart.DeliverResult{}, nil
}

func (h removeContractHandler) validate(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*RemoveContractMsg, error) {
	var msg RemoveContractMsg
	if err := rampart.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := canManage(ctx, h.auth, db, msg.Wallet); err != nil {
		return nil, err
	}
	switch ok, err := h.bucket.HasContract(db, msg.Wallet, msg.Address); {
	case err != nil:
		return nil, errors.Wrap(err, "check contract")
	case !ok:
		return nil, errors.Wrap(errors.ErrNotFound, "contract not trusted")
	}
	return &msg, nil
}
