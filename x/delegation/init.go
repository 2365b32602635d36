package delegation

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/gconf"
)

var _ rampart.Initializer = (*Initializer)(nil)

// Initializer fulfils the Initializer interface to load data from
// application options.
type Initializer struct{}

// FromOptions will parse initial delegation policies and the package
// configuration from options and save them to the database.
func (*Initializer) FromOptions(opts rampart.Options, kv rampart.KVStore) error {
	if err := gconf.InitConfig(kv, opts, packageName, &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	var seed struct {
		Policies []struct {
			Wallet  rampart.Address   `json:"wallet"`
			Enabled bool              `json:"enabled"`
			Targets []rampart.Address `json:"targets"`
		} `json:"policies"`
	}
	if err := opts.ReadOptions(packageName, &seed); err != nil {
		return errors.Wrap(err, "read policies")
	}

	bucket := NewBucket()
	for i, p := range seed.Policies {
		policy := &Policy{
			Metadata: &rampart.Metadata{Schema: 1},
			Wallet:   p.Wallet,
			Enabled:  p.Enabled,
			Targets:  p.Targets,
		}
		if err := bucket.Put(kv, policy); err != nil {
			return errors.Wrapf(err, "policy #%d", i)
		}
	}
	return nil
}
