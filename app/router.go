package app

import (
	"fmt"
	"regexp"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
)

// Router allows us to register many handlers with different paths and
// direct each message to the proper one.
type Router struct {
	handlers map[string]rampart.Handler
}

var _ rampart.Registry = (*Router)(nil)
var _ rampart.Handler = (*Router)(nil)

// pathPattern is a regular expression that every registered path must
// match. Paths are of the "extension/action" form.
var pathPattern = regexp.MustCompile(`^[a-z0-9_]{3,10}/[a-z0-9_]{3,32}$`)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]rampart.Handler),
	}
}

// Handle adds a new route to the router. This function panics if the path is
// invalid or if a handler for the given path was already registered. Both
// are programmer errors that must not pass the development stage.
func (r *Router) Handle(path string, h rampart.Handler) {
	if !pathPattern.MatchString(path) {
		panic(fmt.Sprintf("invalid path %q", path))
	}
	if _, ok := r.handlers[path]; ok {
		panic(fmt.Sprintf("re-registering handler for the path %q", path))
	}
	r.handlers[path] = h
}

// handler returns the handler registered for the given message path. It
// never returns nil. If no handler was registered a handler that always
// fails with a not found error is returned.
func (r *Router) handler(m rampart.Msg) rampart.Handler {
	path := m.Path()
	if h, ok := r.handlers[path]; ok {
		return h
	}
	return &notFoundHandler{path: path}
}

// Check dispatches to the proper handler based on the message path.
func (r *Router) Check(ctx rampart.Context, store rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	h := r.handler(msg)
	return h.Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on the message path.
func (r *Router) Deliver(ctx rampart.Context, store rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	h := r.handler(msg)
	return h.Deliver(ctx, store, tx)
}

type notFoundHandler struct {
	path string
}

var _ rampart.Handler = (*notFoundHandler)(nil)

func (h *notFoundHandler) Check(ctx rampart.Context, store rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}

func (h *notFoundHandler) Deliver(ctx rampart.Context, store rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}
