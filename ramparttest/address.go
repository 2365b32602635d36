package ramparttest

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/rampart-io/rampart"
)

// NewCaller returns a deterministic caller condition derived from the seed.
// The same seed always produces the same condition, so fixtures can be
// compared across test runs. Use its Address for authentication.
func NewCaller(seed string) rampart.Condition {
	return rampart.NewCondition("test", "caller", []byte(seed))
}

// RandomAddr returns a valid random address generated on the fly.
func RandomAddr(t testing.TB) rampart.Address {
	t.Helper()
	raw := make([]byte, rampart.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	a := rampart.Address(raw)
	if err := a.Validate(); err != nil {
		t.Fatalf("generated address is not valid: %s", err)
	}
	return a
}

// DecodeAddr takes a hex encoded address and returns its raw representation.
// This function ensures that the returned value is a valid address.
func DecodeAddr(t testing.TB, encoded string) rampart.Address {
	t.Helper()
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		t.Fatalf("cannot decode hex string: %s", err)
	}
	a := rampart.Address(raw)
	if err := a.Validate(); err != nil {
		t.Fatalf("decoded string is not a valid address: %s", err)
	}
	return a
}
