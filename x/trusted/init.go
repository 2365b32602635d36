package trusted

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/gconf"
)

var _ rampart.Initializer = (*Initializer)(nil)

// Initializer fulfils the Initializer interface to load data from
// application options.
type Initializer struct{}

// FromOptions will parse initial trusted contracts and the package
// configuration from options and save them to the database.
func (*Initializer) FromOptions(opts rampart.Options, kv rampart.KVStore) error {
	if err := gconf.InitConfig(kv, opts, packageName, &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	var seed struct {
		Contracts []struct {
			Wallet  rampart.Address `json:"wallet"`
			Address rampart.Address `json:"address"`
			Label   string          `json:"label"`
		} `json:"contracts"`
	}
	if err := opts.ReadOptions(packageName, &seed); err != nil {
		return errors.Wrap(err, "read contracts")
	}

	bucket := NewBucket()
	for i, c := range seed.Contracts {
		contract := &Contract{
			Metadata: &rampart.Metadata{Schema: 1},
			Wallet:   c.Wallet,
			Address:  c.Address,
			Label:    c.Label,
		}
		if err := bucket.Put(kv, contract); err != nil {
			return errors.Wrapf(err, "contract #%d", i)
		}
	}
	return nil
}
