/*
Package errors implements the error handling used across this repository.

The idea is to reuse as many errors from this package as possible and define
custom package errors only when absolutely necessary. It is best to define a
new error here if you feel it is going to be somewhat package agnostic.

If you want to register a custom error, use Register(code, description). For
reusing errors, use ErrXyz.New and ErrXyz.Newf. The code allows clients to
distinguish categories of failures and act accordingly without parsing the
message content.

There is also support for stack traces. Please ensure you create the error
using ErrXyz.New("...") or errors.Wrap(err, "...") at the point of creation
to attach a stack trace. If you wrap multiple times, we only record the first
wrap with the stack trace. (And don't do this as a global `var ErrFoo =
errors.ErrInput.New("foo")` or you will get a useless stack trace).

Once you have an error, you can use `fmt.Printf/Sprintf` to get more context

	%s is just the error message
	%+v is the full stack trace
*/
package errors
