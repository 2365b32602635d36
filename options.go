package rampart

import (
	"encoding/json"

	"github.com/rampart-io/rampart/errors"
)

// Options is the registry's construction configuration. Each extension
// looks up its own key and parses the raw JSON as desired.
type Options map[string]json.RawMessage

// ReadOptions reads the value stored under a given key and parses the JSON
// into the given obj. Noop and no error if the key is missing.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "option %q: %s", key, err)
	}
	return nil
}

// Initializer implementations seed extension state from the construction
// options. The registry runs every extension's initializer exactly once,
// before serving any operation.
type Initializer interface {
	FromOptions(Options, KVStore) error
}
