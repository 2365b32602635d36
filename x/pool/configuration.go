package pool

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/gconf"
	"github.com/rampart-io/rampart/migration"
)

func init() {
	migration.MustRegister(1, &Configuration{}, migration.NoModification)
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

// Configuration holds the package level settings. Owner is the registry
// authority that may act on any wallet's pool items and change this
// configuration.
type Configuration struct {
	Metadata *rampart.Metadata
	Owner    rampart.Address
}

func (c *Configuration) GetOwner() rampart.Address {
	return c.Owner
}

func (c *Configuration) GetMetadata() *rampart.Metadata {
	return c.Metadata
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
