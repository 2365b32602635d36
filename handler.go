package rampart

// Handler is a core engine that can process a few specific messages, for
// example "propose a transaction" or "add an address book entry".
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler that only verifies validity of a
// transaction without applying it. It is its own interface to allow better
// type control of the next argument in Decorator.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler that applies a transaction. It is its own
// interface to allow better type control of the next argument in Decorator.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality like identity
// handling, panic recovery, or result tagging, to many Handlers.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler, the setup side of a
// router.
type Registry interface {
	// Handle assigns the given handler to handle processing of every
	// message with the given path.
	Handle(path string, h Handler)
}
