package addrbook

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/gconf"
	"github.com/rampart-io/rampart/migration"
	"github.com/rampart-io/rampart/ramparttest"
	"github.com/rampart-io/rampart/store"
)

func TestGenesisSeeding(t *testing.T) {
	wallet := ramparttest.NewCaller("wallet").Address()
	dest := ramparttest.NewCaller("dest").Address()
	owner := ramparttest.NewCaller("owner").Address()

	const genesisTemplate = `
		{
			"conf": {
				"addrbook": {
					"metadata": {"schema": 1},
					"owner": %q
				}
			},
			"addrbook": {
				"entries": [
					{"wallet": %q, "address": %q, "label": "payroll"}
				]
			}
		}
	`
	genesis := fmt.Sprintf(genesisTemplate, owner.String(), wallet.String(), dest.String())

	var opts rampart.Options
	if err := json.Unmarshal([]byte(genesis), &opts); err != nil {
		t.Fatalf("cannot unmarshal genesis: %s", err)
	}

	db := store.MemStore()
	migration.MustInitPkg(db, packageName)

	var ini Initializer
	if err := ini.FromOptions(opts, db); err != nil {
		t.Fatalf("cannot initialize: %+v", err)
	}

	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		t.Fatalf("cannot load configuration: %s", err)
	}
	if !conf.Owner.Equals(owner) {
		t.Fatalf("unexpected configuration owner: %q", conf.Owner)
	}

	entry, err := NewBucket().GetEntry(db, wallet, dest)
	if err != nil {
		t.Fatalf("cannot get seeded entry: %s", err)
	}
	if entry.Label != "payroll" {
		t.Fatalf("unexpected label: %q", entry.Label)
	}
}

func TestGenesisWithoutEntries(t *testing.T) {
	db := store.MemStore()
	migration.MustInitPkg(db, packageName)

	var ini Initializer
	if err := ini.FromOptions(rampart.Options{}, db); err != nil {
		t.Fatalf("empty options must be a noop: %+v", err)
	}
}
