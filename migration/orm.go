package migration

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/orm"
)

// Bucket is a storage engine that supports and requires schema versioning.
// It enforces every stored model to contain schema version information and
// migrates objects on the fly, before returning them to the user.
type Bucket struct {
	orm.Bucket
	packageName string
	schema      *SchemaBucket
	migrations  *register
}

// NewBucket returns a new instance of a schema aware bucket implementation.
// Package name is used to track the schema version. Bucket name is the
// namespace for the stored entity. Model is the type of the entity this
// bucket is maintaining.
func NewBucket(packageName string, bucketName string, model orm.Model) Bucket {
	return WithMigration(
		orm.NewBucket(bucketName, orm.NewSimpleObj(nil, model)),
		packageName,
	)
}

// WithMigration wraps an existing bucket with schema version awareness.
func WithMigration(bucket orm.Bucket, packageName string) Bucket {
	return Bucket{
		Bucket:      bucket,
		packageName: packageName,
		schema:      NewSchemaBucket(),
		migrations:  reg,
	}
}

// useRegister will update this bucket to use a custom register instance
// instead of the global one. This is a private method meant to be used for
// tests only.
func (svb Bucket) useRegister(r *register) Bucket {
	svb.migrations = r
	return svb
}

func (svb Bucket) Get(db rampart.ReadOnlyKVStore, key []byte) (orm.Object, error) {
	obj, err := svb.Bucket.Get(db, key)
	if err != nil || obj == nil {
		return obj, err
	}
	if err := svb.migrate(db, obj); err != nil {
		return nil, errors.Wrap(err, "migrate")
	}
	return obj, nil
}

func (svb Bucket) Save(db rampart.KVStore, obj orm.Object) error {
	if err := svb.migrate(db, obj); err != nil {
		return errors.Wrap(err, "migrate")
	}
	return svb.Bucket.Save(db, obj)
}

// GetPrefix returns all objects stored under keys sharing the given prefix.
// Every returned object is migrated to the current schema version.
func (svb Bucket) GetPrefix(db rampart.ReadOnlyKVStore, prefix []byte, offset, limit int) ([]orm.Object, error) {
	objs, err := svb.Bucket.GetPrefix(db, prefix, offset, limit)
	if err != nil {
		return nil, err
	}
	for i, obj := range objs {
		if err := svb.migrate(db, obj); err != nil {
			return nil, errors.Wrapf(err, "migrate %d element", i)
		}
	}
	return objs, nil
}

func (svb Bucket) migrate(db rampart.ReadOnlyKVStore, obj orm.Object) error {
	return migrate(svb.migrations, svb.schema, svb.packageName, db, obj.Value())
}

func migrate(
	migrations *register,
	schema *SchemaBucket,
	packageName string,
	db rampart.ReadOnlyKVStore,
	value interface{},
) error {
	m, ok := value.(Migratable)
	if !ok {
		return errors.Wrapf(errors.ErrModel, "model %T cannot be migrated", value)
	}
	currSchemaVer, err := schema.CurrentSchema(db, packageName)
	if err != nil {
		return errors.Wrapf(err, "current schema version of package %q", packageName)
	}

	meta := m.GetMetadata()
	if meta == nil {
		return errors.Wrapf(errors.ErrMetadata, "%T metadata is nil", m)
	}

	// In case of the schema not being set we assume the code is expecting
	// the current version. We can therefore set the default to the current
	// schema version.
	if meta.Schema == 0 {
		meta.Schema = currSchemaVer
		return nil
	}

	if meta.Schema > currSchemaVer {
		return errors.Wrapf(errors.ErrSchema, "model schema higher than %d", currSchemaVer)
	}

	// Migration is applied in place, directly modifying the instance.
	if err := migrations.Apply(db, m, currSchemaVer); err != nil {
		return errors.Wrap(err, "schema migration")
	}
	return nil
}

// Migrate will query the current schema of the named package and attempt to
// migrate the passed value up to the current version.
//
// It returns an error if the passed value is not Migratable, not registered
// with migrations, missing metadata, has a schema higher than the current
// one, or if the final migrated value is invalid.
func Migrate(db rampart.ReadOnlyKVStore, packageName string, value interface{}) error {
	return migrate(reg, NewSchemaBucket(), packageName, db, value)
}
