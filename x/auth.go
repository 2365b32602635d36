package x

import (
	"github.com/rampart-io/rampart"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding one implementation for all extensions.
//
// There are no signatures to verify at this level. Callers were already
// authenticated by the platform embedding this library, so what travels in
// the context is the set of verified caller addresses.
type Authenticator interface {
	// GetCallers reveals all the addresses authenticated for this call,
	// in the order they were attached.
	GetCallers(rampart.Context) []rampart.Address
	// HasAddress checks if any caller matches this address.
	HasAddress(rampart.Context, rampart.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetCallers combines all callers from all Authenticators
func (m MultiAuth) GetCallers(ctx rampart.Context) []rampart.Address {
	var res []rampart.Address
	for _, impl := range m.impls {
		add := impl.GetCallers(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator supports this
func (m MultiAuth) HasAddress(ctx rampart.Context, addr rampart.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainCaller returns the first caller if any, otherwise nil
func MainCaller(ctx rampart.Context, auth Authenticator) rampart.Address {
	callers := auth.GetCallers(ctx)
	if len(callers) == 0 {
		return nil
	}
	return callers[0]
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx rampart.Context, auth Authenticator, required []rampart.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasNAddresses returns true if at least n elements in required are
// also in context.
func HasNAddresses(ctx rampart.Context, auth Authenticator, required []rampart.Address, n int) bool {
	// Special case: is this an error???
	if n <= 0 {
		return true
	}

	for _, r := range required {
		if auth.HasAddress(ctx, r) {
			n--
			if n == 0 {
				return true
			}
		}
	}
	return false
}
