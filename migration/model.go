package migration

import (
	"encoding/binary"
	"regexp"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/orm"
)

func init() {
	MustRegister(1, &Schema{}, NoModification)
}

var _ orm.Model = (*Schema)(nil)

// Schema tracks the data format version of a single package. One instance is
// persisted for every (package, version) pair that was ever activated.
type Schema struct {
	Metadata *rampart.Metadata
	// Pkg is the name of the package that this schema version refers to.
	Pkg string
	// Version is the schema version that this instance activates.
	Version uint32
}

var validPkgName = regexp.MustCompile(`^[a-z]{3,20}$`).MatchString

func (s *Schema) GetMetadata() *rampart.Metadata {
	return s.Metadata
}

func (s *Schema) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", s.Metadata.Validate())
	if !validPkgName(s.Pkg) {
		errs = errors.AppendField(errs, "Pkg", errors.Wrap(errors.ErrInput, "invalid package name"))
	}
	if s.Version < 1 {
		errs = errors.AppendField(errs, "Version", errors.Wrap(errors.ErrModel, "version must be greater than zero"))
	}
	return errs
}

func (s *Schema) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

func (s *Schema) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, s)
}

// schemaID returns a deterministic ID of this schema instance. Created IDs
// can be sorted using lexicographical order from the lowest to the highest
// version.
func schemaID(pkg string, version uint32) []byte {
	raw := make([]byte, len(pkg)+4)
	copy(raw, pkg)
	binary.BigEndian.PutUint32(raw[len(pkg):], version)
	return raw
}

type SchemaBucket struct {
	orm.Bucket
}

func NewSchemaBucket() *SchemaBucket {
	// The schema bucket is using the plain orm.Bucket implementation so
	// that it can insert entities without a schema version being
	// registered. It cannot use the migration bucket implementation
	// because that would cause a circular dependency on itself.
	b := orm.NewBucket("schema", orm.NewSimpleObj(nil, &Schema{}))
	return &SchemaBucket{Bucket: b}
}

// MustInitPkg initializes schema versioning for given package names. This
// registers a version one schema.
// This function panics if not successful. It is safe to call this function
// many times as duplicate initializations are ignored.
func MustInitPkg(db rampart.KVStore, packageNames ...string) {
	for _, name := range packageNames {
		_, err := NewSchemaBucket().Create(db, &Schema{
			Metadata: &rampart.Metadata{Schema: 1},
			Pkg:      name,
			Version:  1,
		})
		// Duplicated initializations are ignored.
		if err != nil && !errors.ErrDuplicate.Is(err) {
			panic(errors.Wrap(err, name))
		}
	}
}

// CurrentSchema returns the current version of the schema for a given
// package. It returns ErrNotFound if no schema version was initialized for
// this package. The minimum schema version is 1.
func (b *SchemaBucket) CurrentSchema(db rampart.ReadOnlyKVStore, packageName string) (uint32, error) {
	for ver := uint32(1); ver < 10000; ver++ {
		obj, err := b.Bucket.Get(db, schemaID(packageName, ver))
		if err != nil {
			return 0, errors.Wrap(err, "bucket get")
		}
		if obj != nil {
			continue
		}
		if ver == 1 {
			return 0, errors.Wrapf(errors.ErrNotFound, "package %q is not initialized", packageName)
		}
		return ver - 1, nil
	}
	return 0, errors.Wrap(errors.ErrState, "version too high")
}

// Save persists the state of a given schema entity.
func (b *SchemaBucket) Save(db rampart.KVStore, obj orm.Object) error {
	s, ok := obj.Value().(*Schema)
	if !ok {
		return errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	if err := b.validateNextSchema(db, s); err != nil {
		return err
	}
	return b.Bucket.Save(db, obj)
}

// Create adds the given schema instance to the store and returns the newly
// inserted entity.
func (b *SchemaBucket) Create(db rampart.KVStore, s *Schema) (orm.Object, error) {
	if err := b.validateNextSchema(db, s); err != nil {
		return nil, err
	}
	obj := orm.NewSimpleObj(schemaID(s.Pkg, s.Version), s)
	return obj, b.Bucket.Save(db, obj)
}

// validateNextSchema returns an error if the given Schema instance does not
// represent the next valid schema version.
func (b *SchemaBucket) validateNextSchema(db rampart.ReadOnlyKVStore, next *Schema) error {
	ver, err := b.CurrentSchema(db, next.Pkg)
	if err != nil {
		if errors.ErrNotFound.Is(err) {
			ver = 0
			if next.Version != 1 {
				return errors.Wrap(errors.ErrInput, "schema must be initialized with version 1")
			}
		} else {
			return errors.Wrap(err, "current schema")
		}
	}
	if ver+1 != next.Version {
		// Schema versioning is sequential and the numbers must be
		// incrementing.
		return errors.Wrapf(errors.ErrDuplicate, "previous schema is %d", ver)
	}
	return nil
}
