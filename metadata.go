package rampart

import (
	"github.com/rampart-io/rampart/errors"
)

// Metadata carries the schema version of the entity it is embedded in.
// Every persisted model and every message declares one, so that stored data
// can be migrated in place when a package's schema evolves.
type Metadata struct {
	Schema uint32
}

// Validate ensures the metadata is well formed. A nil metadata is never
// valid.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "no metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version must be greater than zero")
	}
	return nil
}

// Copy returns a copy of this object. Helpful when implementing model
// copies without sharing the metadata pointer.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}
