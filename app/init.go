package app

import (
	"github.com/rampart-io/rampart"
)

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...rampart.Initializer) rampart.Initializer {
	return chainInitializer{inits: inits}
}

type chainInitializer struct {
	inits []rampart.Initializer
}

// FromOptions will pass opts to all initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromOptions(opts rampart.Options, kv rampart.KVStore) error {
	for _, i := range c.inits {
		if i == nil {
			continue
		}
		if err := i.FromOptions(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
