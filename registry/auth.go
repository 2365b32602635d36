package registry

import (
	"context"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/x"
)

// AuthorityCondition is the identity the registry acts under when the
// construction options name no authority address. The derived address
// is the same for every deployment, a store holds exactly one registry.
func AuthorityCondition() rampart.Condition {
	return rampart.NewCondition("registry", "authority", []byte("singleton"))
}

type contextKey int

const callersContextKey contextKey = iota

// withCallers returns a context carrying the caller set of a single
// operation. The first address is the attributed main caller.
func withCallers(ctx rampart.Context, callers ...rampart.Address) rampart.Context {
	return context.WithValue(ctx, callersContextKey, callers)
}

// contextAuth resolves the caller set that the registry methods inject.
type contextAuth struct{}

var _ x.Authenticator = contextAuth{}

func (contextAuth) GetCallers(ctx rampart.Context) []rampart.Address {
	callers, _ := ctx.Value(callersContextKey).([]rampart.Address)
	return callers
}

func (a contextAuth) HasAddress(ctx rampart.Context, addr rampart.Address) bool {
	for _, c := range a.GetCallers(ctx) {
		if c.Equals(addr) {
			return true
		}
	}
	return false
}
