package rampart

import (
	"reflect"

	"github.com/rampart-io/rampart/errors"
)

// Msg is a request to make a single state transition. It is just the
// request; handlers validate the content and authorize the caller. All
// identity information travels in the context, never in the message.
type Msg interface {
	Persistent

	// Validate performs a sanity check on the message content without
	// access to the state or the caller identity.
	Validate() error

	// Path returns the routing path of the message. The router uses it to
	// locate the handler. Must be of the form "extension/action".
	Path() string
}

// Marshaller is anything that can be represented in binary.
//
// Marshal may validate the data before serializing it, so unless the struct
// was validated before, errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separate from Marshaller, as Unmarshal almost always requires a
// pointer, while functions that only need to serialize can accept values.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx carries a message through the middleware stack. The registry wraps
// every operation in a Tx before dispatching, so decorators can treat all
// operations uniformly.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message in the transaction, or "(missing)"
// when no message is available. Used for logging only.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message from the transaction, validates it and loads
// it into the destination, which must be a pointer to the expected message
// type.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	dst := reflect.ValueOf(destination)
	if dst.Kind() != reflect.Ptr {
		return errors.Wrap(errors.ErrType, "destination must be a pointer")
	}
	elem := dst.Elem()
	src := reflect.ValueOf(msg)
	for src.Kind() == reflect.Ptr {
		src = src.Elem()
	}
	if elem.Type() != src.Type() {
		return errors.Wrapf(errors.ErrType, "want %s message, got %T", elem.Type(), msg)
	}
	elem.Set(src)
	return nil
}
