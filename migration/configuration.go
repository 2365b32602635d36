package migration

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/gconf"
)

func init() {
	MustRegister(1, &Configuration{}, NoModification)
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

// Configuration is the migration package settings. The owner is the only
// address that can activate new schema versions and update this
// configuration.
type Configuration struct {
	Metadata *rampart.Metadata
	Owner    rampart.Address
}

func (c *Configuration) GetMetadata() *rampart.Metadata {
	return c.Metadata
}

func (c *Configuration) GetOwner() rampart.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	if len(c.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	}
	return errs
}

func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, "migration", &conf); err != nil {
		return conf, errors.Wrap(err, "load configuration")
	}
	return conf, nil
}
