package invariant_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/opal-lang/tutti/core/invariant"
)

// expectPanic runs fn and returns the recovered panic message.
func expectPanic(t *testing.T, fn func()) (msg string) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		msg = fmt.Sprintf("%v", r)
	}()
	fn()
	return ""
}

func TestPreconditionPass(t *testing.T) {
	invariant.Precondition(true, "this should pass")
	invariant.Precondition(len("Vln") > 0, "abbreviation not empty")
}

func TestPreconditionFail(t *testing.T) {
	msg := expectPanic(t, func() {
		invariant.Precondition(false, "tokens must not be empty")
	})
	if !strings.Contains(msg, "PRECONDITION VIOLATION") {
		t.Errorf("expected PRECONDITION VIOLATION, got: %s", msg)
	}
	if !strings.Contains(msg, "tokens must not be empty") {
		t.Errorf("expected custom message, got: %s", msg)
	}
	if !strings.Contains(msg, "invariant_test.go:") {
		t.Errorf("expected call site, got: %s", msg)
	}
}

func TestPostconditionFail(t *testing.T) {
	msg := expectPanic(t, func() {
		invariant.Postcondition(false, "group must expand to %d seats", 3)
	})
	if !strings.Contains(msg, "POSTCONDITION VIOLATION: group must expand to 3 seats") {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestInvariantFail(t *testing.T) {
	msg := expectPanic(t, func() {
		invariant.Invariant(false, "position %d must not be negative", -1)
	})
	if !strings.Contains(msg, "INVARIANT VIOLATION") {
		t.Errorf("expected INVARIANT VIOLATION, got: %s", msg)
	}
}

func TestNotNil(t *testing.T) {
	name := "Vln"
	invariant.NotNil(&name, "name")
	invariant.NotNil([]int{1}, "slice")

	var typed *string
	msg := expectPanic(t, func() { invariant.NotNil(typed, "catalog") })
	if !strings.Contains(msg, "catalog must not be nil") {
		t.Errorf("unexpected message: %s", msg)
	}

	msg = expectPanic(t, func() { invariant.NotNil(nil, "store") })
	if !strings.Contains(msg, "store must not be nil") {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestPositive(t *testing.T) {
	invariant.Positive(1, "count")
	for _, v := range []int{0, -3} {
		msg := expectPanic(t, func() { invariant.Positive(v, "position") })
		if !strings.Contains(msg, "position must be positive") {
			t.Errorf("unexpected message: %s", msg)
		}
	}
}

func TestExpectNoError(t *testing.T) {
	invariant.ExpectNoError(nil, "encode")
	msg := expectPanic(t, func() { invariant.ExpectNoError(errors.New("boom"), "snapshot encoding") })
	if !strings.Contains(msg, "snapshot encoding must not fail: boom") {
		t.Errorf("unexpected message: %s", msg)
	}
}

func ExamplePrecondition() {
	expand := func(count int) int {
		invariant.Precondition(count > 0, "count must be positive")
		return count
	}
	fmt.Println("Seats:", expand(3))
	// Output: Seats: 3
}
