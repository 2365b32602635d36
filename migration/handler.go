package migration

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/gconf"
	"github.com/rampart-io/rampart/x"
)

// SchemaMigratingHandler returns a handler that will ensure incoming
// messages are in the current schema version format. If a message in an older
// schema is handled then it is first migrated. Messages that cannot be
// migrated to the current schema version are returning a migration error.
// This functionality is executed before the decorated handler and it is
// completely transparent to the wrapped handler.
func SchemaMigratingHandler(packageName string, h rampart.Handler) rampart.Handler {
	return &schemaMigratingHandler{
		handler:     h,
		packageName: packageName,
		schema:      NewSchemaBucket(),
		migrations:  reg,
	}
}

type schemaMigratingHandler struct {
	handler     rampart.Handler
	packageName string
	schema      *SchemaBucket
	migrations  *register
}

var _ rampart.Handler = (*schemaMigratingHandler)(nil)

func (h *schemaMigratingHandler) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	if err := h.migrate(db, tx); err != nil {
		return nil, errors.Wrap(err, "migration")
	}
	return h.handler.Check(ctx, db, tx)
}

func (h *schemaMigratingHandler) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	if err := h.migrate(db, tx); err != nil {
		return nil, errors.Wrap(err, "migration")
	}
	return h.handler.Deliver(ctx, db, tx)
}

func (h *schemaMigratingHandler) migrate(db rampart.ReadOnlyKVStore, tx rampart.Tx) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get msg")
	}

	m, ok := msg.(Migratable)
	if !ok {
		return errors.Wrap(errors.ErrMsg, "message cannot be migrated")
	}
	currSchemaVer, err := h.schema.CurrentSchema(db, h.packageName)
	if err != nil {
		return errors.Wrap(err, "current message schema")
	}

	// Migration is applied in place, directly modifying the instance.
	if err := h.migrations.Apply(db, m, currSchemaVer); err != nil {
		return errors.Wrap(err, "schema migration")
	}
	return nil
}

// RegisterRoutes registers handlers for schema migration message processing.
func RegisterRoutes(r rampart.Registry, auth x.Authenticator) {
	r.Handle(pathUpgradeSchema, &upgradeSchemaHandler{
		bucket: NewSchemaBucket(),
		auth:   auth,
	})
	r.Handle(pathUpdateConfiguration, gconf.NewUpdateConfigurationHandler(
		"migration", &Configuration{}, auth))
}

// upgradeSchemaHandler activates the next schema version of a package. It
// requires the migration configuration to be bound with an owner first.
type upgradeSchemaHandler struct {
	bucket *SchemaBucket
	auth   x.Authenticator
}

var _ rampart.Handler = (*upgradeSchemaHandler)(nil)

func (h *upgradeSchemaHandler) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &rampart.CheckResult{}, nil
}

func (h *upgradeSchemaHandler) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	ver, err := h.bucket.CurrentSchema(db, msg.Pkg)
	if err != nil && !errors.ErrNotFound.Is(err) {
		return nil, errors.Wrap(err, "current schema version")
	}

	schema := Schema{
		Metadata: &rampart.Metadata{Schema: 1},
		Pkg:      msg.Pkg,
		Version:  ver + 1,
	}
	obj, err := h.bucket.Create(db, &schema)
	if err != nil {
		return nil, errors.Wrap(err, "create schema version")
	}

	return &rampart.DeliverResult{Data: obj.Key()}, nil
}

func (h *upgradeSchemaHandler) validate(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*UpgradeSchemaMsg, error) {
	var msg UpgradeSchemaMsg
	if err := rampart.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if len(conf.Owner) == 0 || !h.auth.HasAddress(ctx, conf.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	}

	return &msg, nil
}
