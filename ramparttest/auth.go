package ramparttest

import (
	"context"
	"fmt"

	"github.com/rampart-io/rampart"
)

// Auth is a mock implementing the x.Authenticator interface.
//
// This structure authenticates any of the referenced addresses. You can use
// either the Caller or the Callers attribute (or both). Each time all
// addresses, regardless of which attribute, are considered.
type Auth struct {
	// Caller represents an authentication of a single caller. This is a
	// convenience attribute when a test needs only one identity.
	Caller rampart.Address

	// Callers represents an authentication of multiple callers.
	Callers []rampart.Address
}

func (a *Auth) GetCallers(rampart.Context) []rampart.Address {
	if a.Caller != nil {
		return append(a.Callers, a.Caller)
	}
	return a.Callers
}

func (a *Auth) HasAddress(ctx rampart.Context, addr rampart.Address) bool {
	for _, c := range a.Callers {
		if addr.Equals(c) {
			return true
		}
	}
	if a.Caller == nil {
		return false
	}
	return addr.Equals(a.Caller)
}

// CtxAuth is a mock implementing the x.Authenticator interface.
//
// This implementation is using the context to store and retrieve the caller
// identities, the same way the registry does for real operations.
type CtxAuth struct {
	// Key used to set and retrieve callers from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetCallers(ctx rampart.Context, callers ...rampart.Address) rampart.Context {
	return context.WithValue(ctx, a.Key, callers)
}

func (a *CtxAuth) GetCallers(ctx rampart.Context) []rampart.Address {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	callers, ok := val.([]rampart.Address)
	if !ok {
		panic(fmt.Sprintf("instead of []rampart.Address got %T", val))
	}
	return callers
}

func (a *CtxAuth) HasAddress(ctx rampart.Context, addr rampart.Address) bool {
	for _, c := range a.GetCallers(ctx) {
		if addr.Equals(c) {
			return true
		}
	}
	return false
}
