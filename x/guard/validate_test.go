package guard

import (
	"testing"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
	"github.com/rampart-io/rampart/migration"
	"github.com/rampart-io/rampart/ramparttest"
	"github.com/rampart-io/rampart/store"
	"github.com/rampart-io/rampart/x/addrbook"
	"github.com/rampart-io/rampart/x/delegation"
	"github.com/rampart-io/rampart/x/trusted"
)

func TestValidate(t *testing.T) {
	wallet := ramparttest.NewCaller("wallet").Address()
	bare := ramparttest.NewCaller("bare wallet").Address()
	payee := ramparttest.NewCaller("payee").Address()
	token := ramparttest.NewCaller("token").Address()
	dex := ramparttest.NewCaller("dex").Address()
	library := ramparttest.NewCaller("library").Address()
	unknown := ramparttest.NewCaller("unknown").Address()

	one := []byte{0x01}

	// The wallet has the payee and the token in its address book,
	// trusts the dex and allows delegate calls to the library only. The
	// bare wallet has nothing at all.
	prepare := func(t *testing.T) rampart.CacheableKVStore {
		t.Helper()

		db := store.MemStore()
		migration.MustInitPkg(db, "addrbook", "trusted", "delegation")

		for _, address := range []rampart.Address{payee, token} {
			err := entries.Put(db, &addrbook.Entry{
				Metadata: &rampart.Metadata{Schema: 1},
				Wallet:   wallet,
				Address:  address,
			})
			if err != nil {
				t.Fatalf("cannot fill the address book: %s", err)
			}
		}
		err := contracts.Put(db, &trusted.Contract{
			Metadata: &rampart.Metadata{Schema: 1},
			Wallet:   wallet,
			Address:  dex,
			Label:    "dex",
		})
		if err != nil {
			t.Fatalf("cannot trust the dex: %s", err)
		}
		err = policies.Put(db, &delegation.Policy{
			Metadata: &rampart.Metadata{Schema: 1},
			Wallet:   wallet,
			Enabled:  true,
			Targets:  []rampart.Address{library},
		})
		if err != nil {
			t.Fatalf("cannot store the delegation policy: %s", err)
		}
		return db
	}

	cases := map[string]struct {
		wallet      rampart.Address
		destination rampart.Address
		value       []byte
		payload     []byte
		op          rampart.Operation
		wantType    TransactionType
		wantErr     *errors.Error
	}{
		"native transfer to a listed payee": {
			wallet:      wallet,
			destination: payee,
			value:       one,
			wantType:    NativeTransfer,
		},
		"native transfer to an unlisted payee": {
			wallet:      wallet,
			destination: unknown,
			value:       one,
			wantType:    NativeTransfer,
			wantErr:     ErrRecipientUnknown,
		},
		"address books do not leak across wallets": {
			wallet:      bare,
			destination: payee,
			value:       one,
			wantType:    NativeTransfer,
			wantErr:     ErrRecipientUnknown,
		},
		"token transfer through a listed token": {
			wallet:      wallet,
			destination: token,
			payload:     transferPayload(unknown),
			wantType:    ERC20Transfer,
		},
		"token transfer through an unlisted token": {
			wallet:      wallet,
			destination: unknown,
			payload:     transferPayload(payee),
			wantType:    ERC20Transfer,
			wantErr:     ErrRecipientUnknown,
		},
		"transfer from checks the decoded recipient": {
			wallet:      wallet,
			destination: unknown,
			payload:     transferFromPayload(unknown, payee),
			wantType:    ERC20TransferFrom,
		},
		"transfer from to an unlisted recipient": {
			wallet:      wallet,
			destination: token,
			payload:     transferFromPayload(payee, unknown),
			wantType:    ERC20TransferFrom,
			wantErr:     ErrRecipientUnknown,
		},
		"undecodable transfer from fails closed": {
			wallet:      wallet,
			destination: token,
			payload:     transferFromPayload(payee, payee)[:20],
			wantType:    ERC20TransferFrom,
			wantErr:     ErrRecipientUnknown,
		},
		"interaction with a trusted contract": {
			wallet:      wallet,
			destination: dex,
			payload:     []byte{0xde, 0xad, 0xbe, 0xef},
			wantType:    ContractInteraction,
		},
		"interaction with a contract from the address book": {
			wallet:      wallet,
			destination: payee,
			payload:     []byte{0xde, 0xad, 0xbe, 0xef},
			wantType:    ContractInteraction,
		},
		"interaction with an unknown contract": {
			wallet:      wallet,
			destination: unknown,
			payload:     []byte{0xde, 0xad, 0xbe, 0xef},
			wantType:    ContractInteraction,
			wantErr:     ErrContractNotTrusted,
		},
		"empty call moving nothing is policed as an interaction": {
			wallet:      wallet,
			destination: dex,
			wantType:    ContractInteraction,
		},
		"delegate call to the allowed target": {
			wallet:      wallet,
			destination: library,
			op:          rampart.DelegateCallOp,
			wantType:    DelegateCall,
		},
		"delegate call to an unlisted target": {
			wallet:      wallet,
			destination: dex,
			op:          rampart.DelegateCallOp,
			wantType:    DelegateCall,
			wantErr:     ErrDelegateTargetNotAllowed,
		},
		"delegate call without a policy": {
			wallet:      bare,
			destination: library,
			op:          rampart.DelegateCallOp,
			wantType:    DelegateCall,
			wantErr:     ErrDelegateCallDisabled,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := prepare(t)
			gotType, err := Validate(db, tc.wallet, tc.destination, tc.value, tc.payload, tc.op)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected validation error: %+v", err)
			}
			if gotType != tc.wantType {
				t.Fatalf("classified as %s, want %s", gotType, tc.wantType)
			}
		})
	}
}

func TestValidateDisabledPolicyBeatsTargets(t *testing.T) {
	wallet := ramparttest.NewCaller("wallet").Address()
	library := ramparttest.NewCaller("library").Address()

	db := store.MemStore()
	migration.MustInitPkg(db, "addrbook", "trusted", "delegation")

	err := policies.Put(db, &delegation.Policy{
		Metadata: &rampart.Metadata{Schema: 1},
		Wallet:   wallet,
		Enabled:  false,
		Targets:  []rampart.Address{library},
	})
	if err != nil {
		t.Fatalf("cannot store the delegation policy: %s", err)
	}

	// Even a listed target is rejected while the policy is disabled.
	if _, err := Validate(db, wallet, library, nil, nil, rampart.DelegateCallOp); !ErrDelegateCallDisabled.Is(err) {
		t.Fatalf("want a disabled error, got %+v", err)
	}
}

func TestValidateEmptyTargetSetAllowsAnyTarget(t *testing.T) {
	wallet := ramparttest.NewCaller("wallet").Address()
	anywhere := ramparttest.NewCaller("anywhere").Address()

	db := store.MemStore()
	migration.MustInitPkg(db, "addrbook", "trusted", "delegation")

	err := policies.Put(db, &delegation.Policy{
		Metadata: &rampart.Metadata{Schema: 1},
		Wallet:   wallet,
		Enabled:  true,
	})
	if err != nil {
		t.Fatalf("cannot store the delegation policy: %s", err)
	}

	if _, err := Validate(db, wallet, anywhere, nil, nil, rampart.DelegateCallOp); err != nil {
		t.Fatalf("an empty target set must allow any target: %+v", err)
	}
}

// TestValidateReflectsBookUpdates covers the canonical flow: a transfer
// to a new payee is rejected until the payee is added to the book, then
// the very same parameters pass.
func TestValidateReflectsBookUpdates(t *testing.T) {
	wallet := ramparttest.NewCaller("wallet").Address()
	payee := ramparttest.NewCaller("payee").Address()

	db := store.MemStore()
	migration.MustInitPkg(db, "addrbook", "trusted", "delegation")

	check := func() error {
		_, err := Validate(db, wallet, payee, []byte{0x01}, nil, rampart.CallOp)
		return err
	}

	if err := check(); !ErrRecipientUnknown.Is(err) {
		t.Fatalf("want an unknown recipient error, got %+v", err)
	}
	// The verdict is stable while the state does not change.
	if err := check(); !ErrRecipientUnknown.Is(err) {
		t.Fatalf("the verdict must not change on its own: %+v", err)
	}

	err := entries.Put(db, &addrbook.Entry{
		Metadata: &rampart.Metadata{Schema: 1},
		Wallet:   wallet,
		Address:  payee,
		Label:    "landlord",
	})
	if err != nil {
		t.Fatalf("cannot add the payee: %s", err)
	}

	if err := check(); err != nil {
		t.Fatalf("the listed payee must pass: %+v", err)
	}
	if err := check(); err != nil {
		t.Fatalf("the verdict must not change on its own: %+v", err)
	}
}
