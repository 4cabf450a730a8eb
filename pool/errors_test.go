package pool

import (
	"errors"
	"strings"
	"testing"
)

func TestTaskError_SliceTask(t *testing.T) {
	cause := errors.New("connection reset")
	te := &TaskError{Index: 7, Task: 42, Err: cause}

	msg := te.Error()
	if !strings.Contains(msg, "task 7") {
		t.Errorf("expected index in message, got %q", msg)
	}
	if !strings.Contains(msg, "42") {
		t.Errorf("expected input value in message, got %q", msg)
	}
	if !strings.Contains(msg, "connection reset") {
		t.Errorf("expected cause in message, got %q", msg)
	}

	if !errors.Is(te, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if te.Unwrap() != cause {
		t.Error("expected Unwrap to return the cause")
	}
}

func TestTaskError_KeyedTask(t *testing.T) {
	te := &TaskError{Index: -1, Key: "users", Task: "payload", Err: errors.New("bad input")}

	msg := te.Error()
	if !strings.Contains(msg, `"users"`) {
		t.Errorf("expected key in message, got %q", msg)
	}
}

func TestStartupError(t *testing.T) {
	cause := errors.New("affinity denied")
	se := &StartupError{Err: cause}

	if !strings.Contains(se.Error(), "pool startup") {
		t.Errorf("unexpected message: %q", se.Error())
	}
	if !errors.Is(se, cause) {
		t.Error("expected errors.Is to find the cause")
	}

	var target *StartupError
	if !errors.As(error(se), &target) {
		t.Error("expected errors.As to match *StartupError")
	}
}
