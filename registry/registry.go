package registry

import (
	"sync"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/app"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/gconf"
	"github.com/rampart-io/rampart/migration"
	"github.com/rampart-io/rampart/x/addrbook"
	"github.com/rampart-io/rampart/x/delegation"
	"github.com/rampart-io/rampart/x/pool"
	"github.com/rampart-io/rampart/x/trusted"
	"github.com/rampart-io/rampart/x/utils"
)

// featurePackages lists every package with its own schema and
// configuration space.
var featurePackages = []string{"pool", "addrbook", "trusted", "delegation"}

// Registry dispatches operations into the pool and policy handlers and
// serves reads from the latest committed state. Methods are safe for
// concurrent use, mutations are serialized.
type Registry struct {
	mu        sync.RWMutex
	store     *app.CommitStore
	handler   rampart.Handler
	authority rampart.Address
	logger    log.Logger

	txs       *pool.TransactionBucket
	msgs      *pool.MessageBucket
	book      addrbook.Bucket
	contracts trusted.Bucket
	policies  delegation.Bucket
}

// New builds a registry over the given store. A fresh store is
// initialized from the options: schemas are activated, genesis state is
// seeded and every feature configuration the options do not provide is
// bound to the registry authority. On an already initialized store the
// genesis payload is ignored.
//
// The authority address is read from the "registry" option. When the
// option is missing the AuthorityCondition address is used.
func New(opts rampart.Options, db rampart.CommitKVStore, logger log.Logger) (*Registry, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	cs, err := app.NewCommitStore(db)
	if err != nil {
		return nil, errors.Wrap(err, "commit store")
	}
	authority, err := loadAuthority(opts)
	if err != nil {
		return nil, errors.Wrap(err, "authority")
	}

	auth := contextAuth{}
	router := app.NewRouter()
	migration.RegisterRoutes(router, auth)
	pool.RegisterRoutes(router, auth)
	addrbook.RegisterRoutes(router, auth)
	trusted.RegisterRoutes(router, auth)
	delegation.RegisterRoutes(router, auth)

	r := &Registry{
		store: cs,
		handler: app.ChainDecorators(
			utils.NewRecovery(),
			utils.NewLogging(),
			utils.NewSavepoint().OnDeliver(),
			utils.NewActionTagger(),
		).WithHandler(router),
		authority: authority,
		logger:    logger,
		txs:       pool.NewTransactionBucket(),
		msgs:      pool.NewMessageBucket(),
		book:      addrbook.NewBucket(),
		contracts: trusted.NewBucket(),
		policies:  delegation.NewBucket(),
	}

	info, err := cs.CommitInfo()
	if err != nil {
		return nil, errors.Wrap(err, "commit info")
	}
	if info.Version == 0 {
		if err := r.initialize(opts); err != nil {
			return nil, errors.Wrap(err, "initialize")
		}
	}
	return r, nil
}

// Authority returns the address the registry injects alongside every
// caller. It is the default owner of all feature configurations.
func (r *Registry) Authority() rampart.Address {
	return r.authority
}

func loadAuthority(opts rampart.Options) (rampart.Address, error) {
	var conf struct {
		Authority rampart.Address `json:"authority"`
	}
	if err := opts.ReadOptions("registry", &conf); err != nil {
		return nil, errors.Wrap(err, "read options")
	}
	if len(conf.Authority) == 0 {
		return AuthorityCondition().Address(), nil
	}
	if err := conf.Authority.Validate(); err != nil {
		return nil, err
	}
	return conf.Authority, nil
}

func (r *Registry) initialize(opts rampart.Options) error {
	db := r.store.DeliverStore()

	pkgs := append([]string{"migration"}, featurePackages...)
	migration.MustInitPkg(db, pkgs...)

	ini := app.ChainInitializers(
		&migration.Initializer{},
		&pool.Initializer{},
		&addrbook.Initializer{},
		&trusted.Initializer{},
		&delegation.Initializer{},
	)
	if err := ini.FromOptions(opts, db); err != nil {
		return errors.Wrap(err, "genesis options")
	}
	if err := r.bindDefaultOwners(db); err != nil {
		return err
	}
	if _, err := r.store.Commit(); err != nil {
		return errors.Wrap(err, "commit")
	}
	r.logger.Info("store initialized", "authority", r.authority)
	return nil
}

// bindDefaultOwners binds every feature configuration that genesis left
// unbound to the registry authority. The configuration owner is the
// identity allowed to act on a wallet's behalf, without a binding the
// pass-through methods would only serve the wallets themselves.
func (r *Registry) bindDefaultOwners(db rampart.KVStore) error {
	meta := &rampart.Metadata{Schema: 1}
	defaults := []struct {
		pkg   string
		probe gconf.Unmarshaler
		conf  gconf.ValidMarshaler
	}{
		{"pool", &pool.Configuration{}, &pool.Configuration{Metadata: meta, Owner: r.authority}},
		{"addrbook", &addrbook.Configuration{}, &addrbook.Configuration{Metadata: meta, Owner: r.authority}},
		{"trusted", &trusted.Configuration{}, &trusted.Configuration{Metadata: meta, Owner: r.authority}},
		{"delegation", &delegation.Configuration{}, &delegation.Configuration{Metadata: meta, Owner: r.authority}},
	}
	for _, d := range defaults {
		switch err := gconf.Load(db, d.pkg, d.probe); {
		case err == nil:
			// Bound by genesis.
		case errors.ErrNotFound.Is(err):
			if err := gconf.Save(db, d.pkg, d.conf); err != nil {
				return errors.Wrapf(err, "bind %q configuration", d.pkg)
			}
		default:
			return errors.Wrapf(err, "load %q configuration", d.pkg)
		}
	}
	return nil
}

// deliver runs one message through the decorator stack and commits on
// success. The caller address and the registry authority form the
// context's caller set, in that order, so handlers attribute the caller
// while the authority satisfies the wallet or registry checks.
func (r *Registry) deliver(ctx rampart.Context, caller rampart.Address, msg rampart.Msg) (*rampart.DeliverResult, error) {
	if err := caller.Validate(); err != nil {
		return nil, errors.Wrap(err, "caller")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ctx = rampart.WithLogger(ctx, r.logger)
	ctx = withCallers(ctx, caller, r.authority)

	res, err := r.handler.Deliver(ctx, r.store.DeliverStore(), operationTx{msg: msg})
	if err != nil {
		return nil, err
	}
	if _, err := r.store.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	return res, nil
}
