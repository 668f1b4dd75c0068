// Package require contains test assertions used across this module's test
// suites. It exists so the rest of the module doesn't need a reflection-heavy
// third-party assertion library just to compare values and fail a test.
package require

import (
	"fmt"
	"reflect"
	"testing"
)

// Equal fails the test if expected and actual are not deeply equal.
func Equal(t testing.TB, expected, actual interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected %#v, actual %#v%s", expected, actual, formatExtra(msgAndArgs))
	}
}

// NotEqual fails the test if expected and actual are deeply equal.
func NotEqual(t testing.TB, expected, actual interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected values to differ, both were %#v%s", expected, formatExtra(msgAndArgs))
	}
}

// Same fails the test if expected and actual are not the same object
// (pointer identity) or value.
func Same(t testing.TB, expected, actual interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if expected != actual {
		t.Fatalf("expected %#v and %#v to be the same%s", expected, actual, formatExtra(msgAndArgs))
	}
}

// True fails the test if value is false.
func True(t testing.TB, value bool, msgAndArgs ...interface{}) {
	t.Helper()
	if !value {
		t.Fatalf("expected true%s", formatExtra(msgAndArgs))
	}
}

// False fails the test if value is true.
func False(t testing.TB, value bool, msgAndArgs ...interface{}) {
	t.Helper()
	if value {
		t.Fatalf("expected false%s", formatExtra(msgAndArgs))
	}
}

// Nil fails the test if value is not nil.
func Nil(t testing.TB, value interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if !isNil(value) {
		t.Fatalf("expected nil, got %#v%s", value, formatExtra(msgAndArgs))
	}
}

// NotNil fails the test if value is nil.
func NotNil(t testing.TB, value interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if isNil(value) {
		t.Fatalf("expected non-nil value%s", formatExtra(msgAndArgs))
	}
}

// NoError fails the test if err is non-nil.
func NoError(t testing.TB, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err != nil {
		t.Fatalf("expected no error, got %v%s", err, formatExtra(msgAndArgs))
	}
}

// Error fails the test if err is nil.
func Error(t testing.TB, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error%s", formatExtra(msgAndArgs))
	}
}

// EqualError fails the test if err is nil or its message doesn't match expected.
func EqualError(t testing.TB, err error, expected string, msgAndArgs ...interface{}) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %q, got none%s", expected, formatExtra(msgAndArgs))
		return
	}
	if err.Error() != expected {
		t.Fatalf("expected error %q, got %q%s", expected, err.Error(), formatExtra(msgAndArgs))
	}
}

// Contains fails the test if haystack does not contain needle.
func Contains(t testing.TB, haystack, needle string, msgAndArgs ...interface{}) {
	t.Helper()
	if !contains(haystack, needle) {
		t.Fatalf("expected %q to contain %q%s", haystack, needle, formatExtra(msgAndArgs))
	}
}

// CapturePanic calls fn and returns the recovered panic value formatted as
// an error, or nil if fn did not panic.
func CapturePanic(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case error:
				err = v
			default:
				err = fmt.Errorf("%v", v)
			}
		}
	}()
	fn()
	return
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}

func contains(haystack, needle string) bool {
	return len(needle) == 0 || (len(haystack) >= len(needle) && indexOf(haystack, needle) >= 0)
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}

func formatExtra(msgAndArgs []interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if len(msgAndArgs) == 1 {
		return ": " + fmt.Sprint(msgAndArgs[0])
	}
	format, ok := msgAndArgs[0].(string)
	if !ok {
		return ": " + fmt.Sprint(msgAndArgs...)
	}
	return ": " + fmt.Sprintf(format, msgAndArgs[1:]...)
}
