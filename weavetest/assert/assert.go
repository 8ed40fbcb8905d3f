/*
Package assert provides the few assertions the table tests of this module
need. Every assertion stops the test on failure.

It must not import the root package, as tests inside of it use these
helpers.
*/
package assert

import (
	"fmt"
	"reflect"
	"testing"
)

// Tester is the part of testing.TB used by the assertions.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails the test if value is neither nil nor a typed nil pointer,
// slice, map, channel, function or interface.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if value == nil {
		return
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		if v.IsNil() {
			return
		}
	}
	// %+v prints the stack trace of wrapped errors.
	t.Fatalf("want nil, got %+v", value)
}

// Equal fails the test if want and got are not deeply equal. Byte slices,
// which most addresses and keys are, are printed as hex.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if reflect.DeepEqual(want, got) {
		return
	}
	t.Fatalf("values not equal\nwant %T %s\n got %T %s", want, show(want), got, show(got))
}

func show(v interface{}) string {
	if b, ok := v.([]byte); ok {
		return fmt.Sprintf("%X", b)
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return fmt.Sprintf("%X", rv.Bytes())
	}
	return fmt.Sprintf("%v", v)
}

// Panics fails the test if fn returns without panicking.
func Panics(t Tester, fn func()) {
	t.Helper()
	panicked := func() (p bool) {
		defer func() {
			p = recover() != nil
		}()
		fn()
		return false
	}()
	if !panicked {
		t.Fatal("panic expected")
	}
}

// IsErr fails the test unless got is want or, when want provides an Is
// method, want.Is(got) reports true. Registered errors unwrap got that way.
func IsErr(t testing.TB, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if kind, ok := want.(interface{ Is(error) bool }); ok && kind.Is(got) {
		return
	}
	t.Fatalf("want %q error, got %+v", want, got)
}
