package addrbook

import (
	"unicode"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/migration"
	"github.com/rampart-io/rampart/orm"
)

func init() {
	migration.MustRegister(1, &Entry{}, migration.NoModification)
}

const maxLabelLength = 128

var _ orm.Model = (*Entry)(nil)

// Entry is a single address book position. It binds a destination
// address to the wallet that vetted it, together with a short human
// readable label.
type Entry struct {
	Metadata *rampart.Metadata
	Wallet   rampart.Address
	Address  rampart.Address
	Label    string
}

func (e *Entry) GetMetadata() *rampart.Metadata {
	return e.Metadata
}

func (e *Entry) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", e.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", e.Wallet.Validate())
	errs = errors.AppendField(errs, "Address", e.Address.Validate())
	errs = errors.AppendField(errs, "Label", validateLabel(e.Label))
	return errs
}

func (e *Entry) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(e)
}

func (e *Entry) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, e)
}

// validateLabel ensures a label can be displayed without surprises. An
// empty label is allowed.
func validateLabel(label string) error {
	if len(label) > maxLabelLength {
		return errors.Wrapf(errors.ErrInput, "label longer than %d bytes", maxLabelLength)
	}
	for _, c := range label {
		if !unicode.IsPrint(c) {
			return errors.Wrap(errors.ErrInput, "label contains a non printable character")
		}
	}
	return nil
}

// entryKey scopes an entry to its wallet. Both addresses are fixed
// length so plain concatenation keeps the per wallet range contiguous.
func entryKey(wallet, address rampart.Address) []byte {
	key := make([]byte, 0, len(wallet)+len(address))
	key = append(key, wallet...)
	key = append(key, address...)
	return key
}

type Bucket struct {
	migration.Bucket
}

func NewBucket() Bucket {
	return Bucket{
		Bucket: migration.NewBucket("addrbook", "addr", &Entry{}),
	}
}

// HasEntry returns true if the wallet lists given address in its book.
func (b Bucket) HasEntry(db rampart.ReadOnlyKVStore, wallet, address rampart.Address) (bool, error) {
	obj, err := b.Get(db, entryKey(wallet, address))
	if err != nil {
		return false, errors.Wrap(err, "bucket get")
	}
	return obj != nil && obj.Value() != nil, nil
}

// GetEntry returns the entry stored for given wallet and address pair
// or ErrNotFound.
func (b Bucket) GetEntry(db rampart.ReadOnlyKVStore, wallet, address rampart.Address) (*Entry, error) {
	obj, err := b.Get(db, entryKey(wallet, address))
	if err != nil {
		return nil, errors.Wrap(err, "bucket get")
	}
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "no entry")
	}
	entry, ok := obj.Value().(*Entry)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return entry, nil
}

// Entries returns all address book entries of a single wallet.
func (b Bucket) Entries(db rampart.ReadOnlyKVStore, wallet rampart.Address) ([]*Entry, error) {
	objs, err := b.GetPrefix(db, wallet, 0, 0)
	if err != nil {
		return nil, errors.Wrap(err, "prefix scan")
	}
	entries := make([]*Entry, 0, len(objs))
	for _, obj := range objs {
		entry, ok := obj.Value().(*Entry)
		if !ok {
			return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Put persists the entry under its wallet and address pair.
func (b Bucket) Put(db rampart.KVStore, entry *Entry) error {
	key := entryKey(entry.Wallet, entry.Address)
	return b.Save(db, orm.NewSimpleObj(key, entry))
}
