package pool

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/gconf"
)

var _ rampart.Initializer = (*Initializer)(nil)

// Initializer fulfils the Initializer interface to load data from
// application options. Pool items are runtime artifacts, only the
// package configuration can be seeded.
type Initializer struct{}

// FromOptions reads the package configuration from options.
func (*Initializer) FromOptions(opts rampart.Options, kv rampart.KVStore) error {
	if err := gconf.InitConfig(kv, opts, packageName, &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}
	return nil
}
