package migration

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/gconf"
)

// Initializer seeds the migration package state from the registry
// construction options.
type Initializer struct{}

var _ rampart.Initializer = (*Initializer)(nil)

// FromOptions stores the package configuration if one is provided and
// activates the first schema version of every package listed under the
// "initialize_schema" key.
func (*Initializer) FromOptions(opts rampart.Options, kv rampart.KVStore) error {
	if err := gconf.InitConfig(kv, opts, "migration", &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	var packages []string
	if err := opts.ReadOptions("initialize_schema", &packages); err != nil {
		return errors.Wrap(err, "cannot read initialize_schema")
	}
	// The migration package schema version must always be at least one.
	packages = append(packages, "migration")

	b := NewSchemaBucket()
	for _, pkg := range packages {
		_, err := b.Create(kv, &Schema{
			Metadata: &rampart.Metadata{Schema: 1},
			Pkg:      pkg,
			Version:  1,
		})
		// Duplicated initializations are ignored.
		if err != nil && !errors.ErrDuplicate.Is(err) {
			return errors.Wrapf(err, "initialize %q schema", pkg)
		}
	}
	return nil
}
