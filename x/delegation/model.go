package delegation

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/migration"
	"github.com/rampart-io/rampart/orm"
)

func init() {
	migration.MustRegister(1, &Policy{}, migration.NoModification)
}

var _ orm.Model = (*Policy)(nil)

// Policy describes if and where a wallet accepts delegatecall
// execution. There is at most one policy per wallet.
type Policy struct {
	Metadata *rampart.Metadata
	Wallet   rampart.Address
	// Enabled gates all delegatecall execution for the wallet.
	Enabled bool
	// Targets optionally pins the contracts that may be called. Empty
	// means any target once enabled.
	Targets []rampart.Address
}

func (p *Policy) GetMetadata() *rampart.Metadata {
	return p.Metadata
}

func (p *Policy) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", p.Metadata.Validate())
	errs = errors.AppendField(errs, "Wallet", p.Wallet.Validate())
	seen := make(map[string]struct{}, len(p.Targets))
	for _, target := range p.Targets {
		errs = errors.AppendField(errs, "Targets", target.Validate())
		if _, ok := seen[string(target)]; ok {
			errs = errors.AppendField(errs, "Targets",
				errors.Wrapf(errors.ErrDuplicate, "target %q listed twice", target))
		}
		seen[string(target)] = struct{}{}
	}
	return errs
}

// HasTarget returns true if the address is listed as an allowed
// delegatecall target.
func (p *Policy) HasTarget(address rampart.Address) bool {
	for _, target := range p.Targets {
		if target.Equals(address) {
			return true
		}
	}
	return false
}

func (p *Policy) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

func (p *Policy) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, p)
}

type Bucket struct {
	migration.Bucket
}

func NewBucket() Bucket {
	return Bucket{
		Bucket: migration.NewBucket("delegation", "delpol", &Policy{}),
	}
}

// GetPolicy returns the delegation policy of a wallet or ErrNotFound
// when the wallet never configured one.
func (b Bucket) GetPolicy(db rampart.ReadOnlyKVStore, wallet rampart.Address) (*Policy, error) {
	obj, err := b.Get(db, wallet)
	if err != nil {
		return nil, errors.Wrap(err, "bucket get")
	}
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "no policy")
	}
	policy, ok := obj.Value().(*Policy)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return policy, nil
}

// Put persists the policy under its wallet address.
func (b Bucket) Put(db rampart.KVStore, policy *Policy) error {
	return b.Save(db, orm.NewSimpleObj(policy.Wallet, policy))
}
