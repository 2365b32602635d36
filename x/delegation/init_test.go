package delegation

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/migration"
	"github.com/rampart-io/rampart/ramparttest"
	"github.com/rampart-io/rampart/store"
)

func TestGenesisSeeding(t *testing.T) {
	wallet := ramparttest.NewCaller("wallet").Address()
	dex := ramparttest.NewCaller("dex").Address()

	genesis := fmt.Sprintf(`
		{
			"delegation": {
				"policies": [
					{"wallet": %q, "enabled": true, "targets": [%q]}
				]
			}
		}
	`, wallet.String(), dex.String())

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

	policy, err := NewBucket().GetPolicy(db, wallet)
	if err != nil {
		t.Fatalf("cannot get seeded policy: %s", err)
	}
	if !policy.Enabled {
		t.Fatal("policy must be enabled")
	}
	if !policy.HasTarget(dex) {
		t.Fatal("dex must be an allowed target")
	}
}
