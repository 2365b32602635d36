package trusted

import (
	"unicode"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/migration"
	"github.com/rampart-io/rampart/orm"
)

func init() {
	migration.MustRegister(1, &Contract{}, migration.NoModification)
}

const maxLabelLength = 128

var _ orm.Model = (*Contract)(nil)

// Contract marks a contract address as a vetted interaction target for
// a wallet.
type Contract struct {
	Metadata *rampart.Metadata
	Wallet   rampart.Address
	Address  rampart.Address
	Label    string
}

func (c *Contract) GetMetadata() *rampart.Metadata {
	return c.Metadata
}

func (c *Contract) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", c.Wallet.Validate())
	errs = errors.AppendField(errs, "Address", c.Address.Validate())
	errs = errors.AppendField(errs, "Label", validateLabel(c.Label))
	return errs
}

func (c *Contract) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Contract) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

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

func contractKey(wallet, address rampart.Address) []byte {
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
		Bucket: migration.NewBucket("trusted", "trusted", &Contract{}),
	}
}

// HasContract returns true if the wallet trusts the given contract
// address.
func (b Bucket) HasContract(db rampart.ReadOnlyKVStore, wallet, address rampart.Address) (bool, error) {
	obj, err := b.Get(db, contractKey(wallet, address))
	if err != nil {
		return false, errors.Wrap(err, "bucket get")
	}
	return obj != nil && obj.Value() != nil, nil
}

// GetContract returns the contract entry stored for given wallet and
// address pair or ErrNotFound.
func (b Bucket) GetContract(db rampart.ReadOnlyKVStore, wallet, address rampart.Address) (*Contract, error) {
	obj, err := b.Get(db, contractKey(wallet, address))
	if err != nil {
		return nil, errors.Wrap(err, "bucket get")
	}
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "no contract")
	}
	contract, ok := obj.Value().(*Contract)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return contract, nil
}

// Contracts returns all contracts trusted by a single wallet.
func (b Bucket) Contracts(db rampart.ReadOnlyKVStore, wallet rampart.Address) ([]*Contract, error) {
	objs, err := b.GetPrefix(db, wallet, 0, 0)
	if err != nil {
		return nil, errors.Wrap(err, "prefix scan")
	}
	contracts := make([]*Contract, 0, len(objs))
	for _, obj := range objs {
		contract, ok := obj.Value().(*Contract)
		if !ok {
			return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
		}
		contracts = append(contracts, contract)
	}
	return contracts, nil
}

// Put persists the contract under its wallet and address pair,
// overwriting any previous version.
func (b Bucket) Put(db rampart.KVStore, contract *Contract) error {
	key := contractKey(contract.Wallet, contract.Address)
	return b.Save(db, orm.NewSimpleObj(key, contract))
}
