package delegation

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/gconf"
	"github.com/rampart-io/rampart/migration"
	"github.com/rampart-io/rampart/x"
)

const packageName = "delegation"

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r rampart.Registry, auth x.Authenticator) {
	bucket := NewBucket()
	r.Handle(pathSetEnabled, migration.SchemaMigratingHandler(packageName,
		setEnabledHandler{auth: auth, bucket: bucket}))
	r.Handle(pathAddTarget, migration.SchemaMigratingHandler(packageName,
		addTargetHandler{auth: auth, bucket: bucket}))
	r.Handle(pathRemoveTarget, migration.SchemaMigratingHandler(packageName,
		removeTargetHandler{auth: auth, bucket: bucket}))
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

type setEnabledHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ rampart.Handler = setEnabledHandler{}

func (h setEnabledHandler) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &rampart.CheckResult{}, nil
}

func (h setEnabledHandler) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	policy, err := h.bucket.GetPolicy(db, msg.Wallet)
	switch {
	case err == nil:
		policy.Enabled = msg.Enabled
	case errors.ErrNotFound.Is(err):
		policy = &Policy{
			Metadata: msg.Metadata,
			Wallet:   msg.Wallet,
			Enabled:  msg.Enabled,
		}
	default:
		return nil, errors.Wrap(err, "get policy")
	}
	if err := h.bucket.Put(db, policy); err != nil {
		return nil, errors.Wrap(err, "save policy")
	}
	return &rampart.DeliverResult{}, nil
}

func (h setEnabledHandler) validate(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*SetEnabledMsg, error) {
	var msg SetEnabledMsg
	if err := rampart.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := canManage(ctx, h.auth, db, msg.Wallet); err != nil {
		return nil, err
	}
	return &msg, nil
}

type addTargetHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ rampart.Handler = addTargetHandler{}

func (h addTargetHandler) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &rampart.CheckResult{}, nil
}

func (h addTargetHandler) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	policy, err := h.bucket.GetPolicy(db, msg.Wallet)
	switch {
	case err == nil:
		// Covered by validate already but the pending state could
		// have changed between check and deliver.
		if policy.HasTarget(msg.Target) {
			return nil, errors.Wrap(errors.ErrDuplicate, "target already listed")
		}
		policy.Targets = append(policy.Targets, msg.Target)
	case errors.ErrNotFound.Is(err):
		// The first target creates a policy but does not enable
		// delegation.
		policy = &Policy{
			Metadata: msg.Metadata,
			Wallet:   msg.Wallet,
			Enabled:  false,
			Targets:  []rampart.Address{msg.Target},
		}
	default:
		return nil, errors.Wrap(err, "get policy")
	}
	if err := h.bucket.Put(db, policy); err != nil {
		return nil, errors.Wrap(err, "save policy")
	}
	return &rampart.DeliverResult{}, nil
}

func (h addTargetHandler) validate(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*AddTargetMsg, error) {
	var msg AddTargetMsg
	if err := rampart.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := canManage(ctx, h.auth, db, msg.Wallet); err != nil {
		return nil, err
	}
	policy, err := h.bucket.GetPolicy(db, msg.Wallet)
	switch {
	case err == nil:
		if policy.HasTarget(msg.Target) {
			return nil, errors.Wrap(errors.ErrDuplicate, "target already listed")
		}
	case errors.ErrNotFound.Is(err):
		// Fine, deliver creates the policy.
	default:
		return nil, errors.Wrap(err, "get policy")
	}
	return &msg, nil
}

type removeTargetHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ rampart.Handler = removeTargetHandler{}

func (h removeTargetHandler) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &rampart.CheckResult{}, nil
}

func (h removeTargetHandler) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	msg, policy, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	targets := policy.Targets[:0]
	for _, target := range policy.Targets {
		if !target.Equals(msg.Target) {
			targets = append(targets, target)
		}
	}
	policy.Targets = targets
	if err := h.bucket.Put(db, policy); err != nil {
		return nil, errors.Wrap(err, "save policy")
	}
	return &rampart.DeliverResult{}, nil
}

func (h removeTargetHandler) validate(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*RemoveTargetMsg, *Policy, error) {
	var msg RemoveTargetMsg
	if err := rampart.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if err := canManage(ctx, h.auth, db, msg.Wallet); err != nil {
		return nil, nil, err
	}
	policy, err := h.bucket.GetPolicy(db, msg.Wallet)
	if err != nil {
		return nil, nil, errors.Wrap(err, "get policy")
	}
	if !policy.HasTarget(msg.Target) {
		return nil, nil, errors.Wrap(errors.ErrNotFound, "target not listed")
	}
	return &msg, policy, nil
}
