package addrbook

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/gconf"
)

var _ rampart.Initializer = (*Initializer)(nil)

// Initializer fulfils the Initializer interface to load data from
// application options.
type Initializer struct{}

// FromOptions will parse initial address book entries and the package
// configuration from options and save them to the database.
func (*Initializer) FromOptions(opts rampart.Options, kv rampart.KVStore) error {
	if err := gconf.InitConfig(kv, opts, packageName, &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	var seed struct {
		Entries []struct {
			Wallet  rampart.Address `json:"wallet"`
			Address rampart.Address `json:"address"`
			Label   string          `json:"label"`
		} `json:"entries"`
	}
	if err := opts.ReadOptions(packageName, &seed); err != nil {
		return errors.Wrap(err, "read entries")
	}

	bucket := NewBucket()
	for i, e := range seed.Entries {
		entry := &Entry{
			Metadata: &rampart.Metadata{Schema: 1},
			Wallet:   e.Wallet,
			Address:  e.Address,
			Label:    e.Label,
		}
		if err := bucket.Put(kv, entry); err != nil {
			return errors.Wrapf(err, "entry #%d", i)
		}
	}
	return nil
}
