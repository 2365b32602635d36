package orm

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/x"
)

// Object is what is stored in the bucket.
// Key is joined with the bucket prefix to set the full key.
// Value is the data stored.
type Object interface {
	Keyed
	Cloneable
	// Validate returns error if the object is not in a valid
	// state to save to the db (eg. field missing, out of range, ...)
	x.Validater
	Value() rampart.Persistent
}

// Model is implemented by any entity that a bucket can store.
type Model interface {
	rampart.Persistent
	Validate() error
}

// Reader defines an interface that allows reading objects from the db.
type Reader interface {
	Get(db rampart.ReadOnlyKVStore, key []byte) (Object, error)
}

// Keyed is anything that can identify itself.
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable will create a new object that can be loaded into.
type Cloneable interface {
	Clone() Object
}
