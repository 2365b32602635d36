package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrUnauthorized is returned whenever an operation is requested by a
	// caller that is not permitted to perform it.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound is returned when a requested operation cannot be
	// completed due to missing data.
	ErrNotFound = Register(3, "not found")

	// ErrMsg is returned whenever a message is invalid and cannot be
	// processed.
	ErrMsg = Register(4, "invalid message")

	// ErrModel is returned whenever a model is invalid and cannot be
	// persisted.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate is returned when there is a record already that has
	// the same unique key used.
	ErrDuplicate = Register(6, "duplicate")

	// ErrEmpty is returned when a value fails a not empty assertion.
	ErrEmpty = Register(7, "value is empty")

	// ErrState is returned when an object is in an invalid state for the
	// requested operation.
	ErrState = Register(8, "invalid state")

	// ErrType is returned whenever the type is not what was expected.
	ErrType = Register(9, "invalid type")

	// ErrInput stands for general input problems indication.
	ErrInput = Register(10, "invalid input")

	// ErrImmutable is returned when something that is considered
	// immutable gets modified.
	ErrImmutable = Register(11, "cannot be modified")

	// ErrOverflow is returned when a computation cannot be completed due
	// to a value range restriction.
	ErrOverflow = Register(12, "overflow")

	// ErrSchema is returned whenever an operation cannot be completed due
	// to an object schema version issue.
	ErrSchema = Register(13, "invalid schema")

	// ErrDatabase is returned whenever the underlying storage does not
	// work as expected.
	ErrDatabase = Register(14, "database error")

	// ErrMetadata is returned whenever an entity metadata is invalid.
	ErrMetadata = Register(15, "invalid metadata")

	// ErrHuman is returned when application reaches a code path that
	// should not ever be reached if the code was written as expected.
	ErrHuman = Register(16, "coding error")

	// ErrPanic is only set when we recover from a panic, so we know to
	// redact potentially sensitive system info.
	ErrPanic = Register(111222, "panic")
)

// Register returns an error instance that should be used as the base for
// creating error instances during runtime.
//
// Popular root errors are declared in this package, but extensions may want
// to declare custom errors. Use this function only during a program startup
// phase.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	err := &Error{
		code: code,
		desc: description,
	}
	usedCodes[err.code] = err
	return err
}

// usedCodes is keeping track of used codes to ensure their uniqueness. No
// two error instances should share the same error code.
var usedCodes = map[uint32]*Error{
	// Code 1 is reserved for non categorized errors and must not be used.
	1: nil,
}

// internalCode is returned for all errors that were not created from a
// registered root error.
const internalCode uint32 = 1

// Error represents a root error.
//
// All errors returned by this application are expected to wrap one of the
// root errors declared via Register. This allows client code to test for the
// error category without relying on the message content.
type Error struct {
	code uint32
	desc string
}

// Error returns the stored description.
func (e *Error) Error() string { return e.desc }

// Code returns the error code that this error instance was registered with.
func (e *Error) Code() uint32 { return e.code }

// New returns a new error. Returned instance is having the root cause set to
// this error. Below two lines are equal
//
//	e.New("my description")
//	Wrap(e, "my description")
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is basically New with formatting capabilities.
func (e *Error) Newf(description string, args ...interface{}) error {
	return e.New(fmt.Sprintf(description, args...))
}

// Is check if given error instance is of a given kind/type. This involves
// unwrapping given error using the Cause method if available.
func (kind *Error) Is(err error) bool {
	// Reflect usage is necessary to correctly compare with
	// a nil implementation of an error.
	if kind == nil {
		return isNilErr(err)
	}
	for {
		if err == kind {
			return true
		}

		// If this is a collection of errors, this error is matching if
		// any of clubbed errors is of the tested kind.
		if u, ok := err.(unpacker); ok {
			for _, e := range u.Unpack() {
				if kind.Is(e) {
					return true
				}
			}
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return false
		}
	}
}

func isNilErr(err error) bool {
	// Reflect usage is necessary to correctly compare with
	// a nil implementation of an error.
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}

// Wrap extends given error with an additional information.
//
// If the wrapped error does not provide a Code method (ie. stdlib errors),
// it will be labeled as an internal error.
//
// If err is nil, this returns nil, avoiding the need for an if statement
// when wrapping an error returned at the end of a function.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}

	// If this error does not carry the stacktrace information yet, attach
	// one. This should be done only once per error at the lowest frame
	// possible (most inner wrap).
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}

	return &wrappedError{
		parent: err,
		msg:    description,
	}
}

// Wrapf extends given error with an additional information.
//
// This function works like Wrap function with additional functionality of
// formatting the input as specified.
func Wrapf(err error, format string, args ...interface{}) error {
	desc := fmt.Sprintf(format, args...)
	return Wrap(err, desc)
}

type wrappedError struct {
	// This error layer description.
	msg string
	// The underlying error that triggered this one.
	parent error
}

func (e *wrappedError) StackTrace() errors.StackTrace {
	if e.parent == nil {
		return nil
	}
	return stackTrace(e.parent)
}

func (e *wrappedError) Error() string {
	if e.parent == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

func (e *wrappedError) Code() uint32 {
	return Code(e.parent)
}

// Format implements fmt.Formatter so that %+v prints the description
// together with the stack trace of the error origin.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s\n", e.Error())
		if st := e.StackTrace(); st != nil {
			st.Format(s, verb)
		}
		return
	}
	fmt.Fprint(s, e.Error())
}

// Code tests if given error contains a registered error code and returns the
// value of it if available. An error without a code, including nil, is
// reported as an internal error. This function is testing for the causer
// interface as well and unwraps the error.
func Code(err error) uint32 {
	for {
		if c, ok := err.(coder); ok {
			return c.Code()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalCode
		}
	}
}

// Recover captures a panic and stop its propagation. If panic happens it is
// transformed into a ErrPanic instance and assigned to given error. Call
// this function using defer in order to work as expected.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// stackTrace returns the stack trace frames carried by given error or by any
// error that it wraps. It returns nil if no stack trace information is
// available.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// stackTracer is implemented by errors from the github.com/pkg/errors
// package.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// causer is an interface implemented by an error that supports wrapping.
// Use it to test if an error wraps another error instance.
type causer interface {
	Cause() error
}

// coder is implemented by all errors created through this package.
type coder interface {
	Code() uint32
}
