/*
Package errors defines the registered errors of solpay and helpers to wrap
them.

A registered error carries the ABCI code it is reported with. Handlers wrap
one with context (Wrap, Wrapf) and callers test the kind with Is, which
follows the Cause chain. Every error that does not wrap a registered one is
reported as an internal error with code 1.
*/
package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Codes 2 to 17 are shared by all modules. Modules register their own
// codes above 1000.
var (
	// ErrUnauthorized means a required signature or derived address is
	// missing.
	ErrUnauthorized = Register(2, "unauthorized")
	ErrNotFound     = Register(3, "not found")
	// ErrMsg means a message failed validation.
	ErrMsg = Register(4, "invalid message")
	// ErrModel means a stored record failed validation.
	ErrModel     = Register(5, "invalid model")
	ErrDuplicate = Register(6, "duplicate")
	// ErrHuman marks code paths that are unreachable when the modules are
	// wired correctly.
	ErrHuman     = Register(7, "coding error")
	ErrImmutable = Register(8, "cannot be modified")
	ErrEmpty     = Register(9, "value is empty")
	// ErrState means the operation does not apply to the current state of a
	// record, for example completing an escrow that was pulled back.
	ErrState = Register(10, "invalid state")
	ErrType  = Register(11, "invalid type")
	// ErrInsufficientAmount means an account holds less than a transfer
	// needs.
	ErrInsufficientAmount = Register(12, "insufficient amount")
	ErrAmount             = Register(13, "invalid amount")
	ErrInput              = Register(14, "invalid input")
	ErrOverflow           = Register(15, "an operation cannot be completed due to value overflow")
	ErrDatabase           = Register(16, "database error")
	// ErrIteratorDone ends every iteration and is not a failure.
	ErrIteratorDone = Register(17, "iterator done")

	// ErrPanic is set by Recover only. Its message is redacted outside of
	// debug mode as it may expose node internals.
	ErrPanic = Register(111222, "panic")
)

// registered maps every code in use to its error. Code 1 is kept for
// internal errors.
var registered = map[uint32]*Error{1: nil}

// Register declares a new error kind. It panics if code is taken and must
// only be called from package level variable declarations.
func Register(code uint32, description string) *Error {
	if prev, ok := registered[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registered[code] = e
	return e
}

// Error is a registered error kind. Return it wrapped, not as is.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

func (e Error) ABCICode() uint32 {
	return e.code
}

// New is Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrapf(e, format, args...)
}

// Is reports whether err is e or wraps it. A nil kind matches nil errors
// only, including typed nil pointers.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}
	for err != nil {
		if err == e {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Wrap prefixes err with description. It returns nil for a nil err, so it
// can wrap the last call of a function directly.
//
// The first Wrap of an error records the stack, printed by %+v.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, parent: err}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Format adds the recorded stack for %+v. All other verbs print Error.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %+v", e.msg, e.parent)
		return
	}
	fmt.Fprint(s, e.Error())
}

// Recover turns a panic into an ErrPanic assigned to *err. It must be
// deferred directly.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the outermost stack recorded in the chain of err, or
// nil.
func stackTrace(err error) errors.StackTrace {
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}

func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	switch v := reflect.ValueOf(err); v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
