/*
Package errors implements the error handling used across solpay.

Root errors are declared with Register(code, description) and carry an ABCI
code, so clients can tell apart a rejected stage transition from an
unauthorized request. Reuse the root errors declared here whenever possible
and register package specific codes only when the category is new, as
x/escrow and x/token do.

Wrap an error at the point of creation, with ErrXyz.New or errors.Wrap, to
attach a stacktrace. Only the innermost wrap records the trace.

	%s  the error message chain
	%+v the message chain followed by the stack trace
*/
package errors
