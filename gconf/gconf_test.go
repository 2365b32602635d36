package gconf

import (
	"testing"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/ramparttest"
	"github.com/rampart-io/rampart/ramparttest/assert"
	"github.com/rampart-io/rampart/store"
)

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        *myconfig
		WantSaveErr *errors.Error
	}{
		"all fields set": {
			Conf: &myconfig{
				Owner: ramparttest.NewCaller("owner").Address(),
				Name:  "foobar",
				Limit: 852151421,
			},
		},
		"owner is optional": {
			Conf: &myconfig{Name: "unclaimed"},
		},
		"invalid owner cannot be saved": {
			Conf:        &myconfig{Owner: rampart.Address("too short")},
			WantSaveErr: errors.ErrInput,
		},
		"negative limit cannot be saved": {
			Conf:        &myconfig{Limit: -1},
			WantSaveErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				return
			}

			var got myconfig
			if err := Load(db, "mypkg", &got); err != nil {
				t.Fatalf("cannot load configuration: %s", err)
			}
			assert.Equal(t, tc.Conf, &got)
		})
	}
}

func TestLoadMissingConfiguration(t *testing.T) {
	db := store.MemStore()
	var got myconfig
	if err := Load(db, "mypkg", &got); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want a not found error, got %+v", err)
	}
}

func TestLoadDifferentPackage(t *testing.T) {
	db := store.MemStore()
	if err := Save(db, "mypkg", &myconfig{Name: "mine"}); err != nil {
		t.Fatalf("cannot save configuration: %s", err)
	}
	var got myconfig
	if err := Load(db, "otherpkg", &got); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want a not found error, got %+v", err)
	}
}

func TestInitConfig(t *testing.T) {
	db := store.MemStore()
	opts := rampart.Options{
		"conf": []byte(`{"mypkg": {"Name": "initial", "Limit": 42}}`),
	}
	var c myconfig
	if err := InitConfig(db, opts, "mypkg", &c); err != nil {
		t.Fatalf("cannot initialize configuration: %s", err)
	}

	var got myconfig
	if err := Load(db, "mypkg", &got); err != nil {
		t.Fatalf("cannot load configuration: %s", err)
	}
	assert.Equal(t, &myconfig{Name: "initial", Limit: 42}, &got)
}

func TestInitConfigWithoutPackageEntry(t *testing.T) {
	db := store.MemStore()
	opts := rampart.Options{
		"conf": []byte(`{"otherpkg": {"Name": "not mine"}}`),
	}
	var c myconfig
	if err := InitConfig(db, opts, "mypkg", &c); err != nil {
		t.Fatalf("initialization without an entry must be a noop, got %+v", err)
	}

	var got myconfig
	if err := Load(db, "mypkg", &got); !errors.ErrNotFound.Is(err) {
		t.Fatalf("no configuration must be stored, got %+v", err)
	}
}

func TestInitConfigWithoutConfOptions(t *testing.T) {
	db := store.MemStore()
	var c myconfig
	if err := InitConfig(db, rampart.Options{}, "mypkg", &c); err != nil {
		t.Fatalf("initialization without options must be a noop, got %+v", err)
	}
}
