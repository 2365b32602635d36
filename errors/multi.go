package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// Error created by clubbing together a collection of errors does not
// implement the causer interface. When a collection of errors is bundled
// together, there is no more a single cause of the final error.
func Append(errs ...error) error {
	var collection multiError
	for _, err := range errs {
		switch e := err.(type) {
		case nil:
			continue
		case multiError:
			collection = append(collection, e...)
		default:
			if !isNilErr(err) {
				collection = append(collection, e)
			}
		}
	}

	switch len(collection) {
	case 0:
		return nil
	case 1:
		return collection[0]
	default:
		return collection
	}
}

type multiError []error

var _ unpacker = (multiError)(nil)
var _ coder = (multiError)(nil)

// Unpack implements the unpacker interface.
func (errs multiError) Unpack() []error {
	return errs
}

// Code returns the code of the first error in the collection, consistent
// with the fail fast validation approach.
func (errs multiError) Code() uint32 {
	if len(errs) == 0 {
		return internalCode
	}
	return Code(errs[0])
}

func (errs multiError) Error() string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return errs[0].Error()
	}

	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = fmt.Sprintf("(%d) %s", i, err)
	}
	return strings.Join(msgs, "\n")
}

// unpacker is implemented by errors that represent a collection of errors.
type unpacker interface {
	Unpack() []error
}
