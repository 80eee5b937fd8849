// Package invariant provides contract assertions for the notation engine.
//
// Assertions guard programmer errors: a nil catalog handed to the engine, a
// seat store returning negative positions, an allocator that selects more
// seats than exist. User input never trips an assertion; malformed notation
// is reported as diagnostics instead.
//
// All functions panic on violation.
package invariant

import (
	"fmt"
	"reflect"
	"runtime"
)

// Precondition checks an input contract at function entry.
// Panics with PRECONDITION VIOLATION if condition is false.
//
// Example:
//
//	func Allocate(seats []*seating.Seat, tokens []notation.Token) {
//	    invariant.Precondition(len(tokens) > 0, "tokens must not be empty")
//	    // ...
//	}
func Precondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("PRECONDITION", format, args...)
	}
}

// Postcondition checks an output contract before function return.
// Panics with POSTCONDITION VIOLATION if condition is false.
//
// Example:
//
//	seats := expand(group)
//	invariant.Postcondition(len(seats) == group.count, "group must expand to its count")
func Postcondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("POSTCONDITION", format, args...)
	}
}

// Invariant checks an internal invariant during function execution.
// Panics with INVARIANT VIOLATION if condition is false.
//
// Example:
//
//	for i := range seats {
//	    invariant.Invariant(seats[i].Position >= 0, "position must not be negative")
//	}
func Invariant(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("INVARIANT", format, args...)
	}
}

// NotNil panics if value is nil, including typed nils such as (*Catalog)(nil).
func NotNil(value interface{}, name string) {
	if value == nil || isNilValue(value) {
		fail("PRECONDITION", "%s must not be nil", name)
	}
}

func isNilValue(value interface{}) bool {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}

// Positive panics if value <= 0.
// Typically a postcondition on seat counts and generated positions.
func Positive(value int, name string) {
	if value <= 0 {
		fail("POSTCONDITION", "%s must be positive, got %d", name, value)
	}
}

// ExpectNoError panics if err is not nil.
// Used for operations that cannot fail on well-formed input, such as
// parsing the embedded catalog.
func ExpectNoError(err error, msg string) {
	if err != nil {
		fail("POSTCONDITION", "%s must not fail: %v", msg, err)
	}
}

// fail panics with a formatted message including the violating call site.
func fail(kind, format string, args ...interface{}) {
	pc := make([]uintptr, 10)
	n := runtime.Callers(3, pc)
	frames := runtime.CallersFrames(pc[:n])

	msg := fmt.Sprintf("%s VIOLATION: "+format, append([]interface{}{kind}, args...)...)

	if frame, ok := frames.Next(); ok {
		msg += fmt.Sprintf("\n  at %s:%d", frame.File, frame.Line)
	}

	panic(msg)
}
