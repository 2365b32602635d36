package migration

import (
	"encoding/json"
	"testing"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/store"
)

func TestInitializeSchemaVersions(t *testing.T) {
	const genesis = `
	{
		"conf": {
			"migration": {
				"metadata": {"schema": 1},
				"owner": "aabbccddeeff00112233445566778899aabbccdd"
			}
		},
		"initialize_schema": ["ccc", "bbb", "aaa"]
	}
	`

	var opts rampart.Options
	if err := json.Unmarshal([]byte(genesis), &opts); err != nil {
		t.Fatalf("cannot unmarshal genesis: %s", err)
	}

	db := store.MemStore()
	var ini Initializer
	if err := ini.FromOptions(opts, db); err != nil {
		t.Fatalf("cannot initialize: %s", err)
	}

	wantSchemaVersions := []string{
		"aaa", "bbb", "ccc",

		// Running the initializer must always ensure the migration
		// package schema version is at least one.
		"migration",
	}
	for _, pkgName := range wantSchemaVersions {
		ver, err := NewSchemaBucket().CurrentSchema(db, pkgName)
		if err != nil {
			t.Fatalf("cannot get current schema for %q package: %s", pkgName, err)
		}
		if ver != 1 {
			t.Fatalf("unexpected schema version for %q package: %d", pkgName, ver)
		}
	}

	conf, err := loadConf(db)
	if err != nil {
		t.Fatalf("cannot load configuration: %s", err)
	}
	if conf.Owner.String() != "AABBCCDDEEFF00112233445566778899AABBCCDD" {
		t.Fatalf("unexpected configuration owner: %q", conf.Owner)
	}
}

func TestInitializeWithoutConfiguration(t *testing.T) {
	db := store.MemStore()
	var ini Initializer
	if err := ini.FromOptions(rampart.Options{}, db); err != nil {
		t.Fatalf("initialization without options must not fail: %s", err)
	}

	ver, err := NewSchemaBucket().CurrentSchema(db, "migration")
	if err != nil {
		t.Fatalf("cannot get current schema for the migration package: %s", err)
	}
	if ver != 1 {
		t.Fatalf("unexpected schema version for the migration package: %d", ver)
	}
}
