package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeConfiguration, "bad matrix: %s", "3x4")

	if err.Code != ErrCodeConfiguration {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeConfiguration)
	}

	if err.Message != "bad matrix: 3x4" {
		t.Errorf("Message = %v, want %v", err.Message, "bad matrix: 3x4")
	}

	expected := "CONFIGURATION: bad matrix: 3x4"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeRouting, cause, "no tree")

	if err.Code != ErrCodeRouting {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRouting)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	if got := err.Error(); got != "ROUTING: no tree: underlying error" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      Configuration("test"),
			code:     ErrCodeConfiguration,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      Configuration("test"),
			code:     ErrCodeRouting,
			expected: false,
		},
		{
			name:     "outermost code wins",
			err:      Wrap(ErrCodeRouting, Internal("inner"), "outer"),
			code:     ErrCodeRouting,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("steiner: %w", Internal("double emission")),
			code:     ErrCodeInternalInvariant,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeConfiguration,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeConfiguration,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCategoryHelpers(t *testing.T) {
	if !IsConfiguration(Configuration("x")) {
		t.Error("IsConfiguration = false")
	}
	if !IsRouting(Routing("x")) {
		t.Error("IsRouting = false")
	}
	if !IsInternal(Internal("x")) {
		t.Error("IsInternal = false")
	}
	if IsRouting(Configuration("x")) {
		t.Error("IsRouting(configuration) = true")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      Routing("test"),
			expected: ErrCodeRouting,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      Configuration("friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDetails(t *testing.T) {
	err := Routing("no path").With("start", 3).With("end", 7)

	kv := err.KeyVals()
	want := []any{"end", 7, "start", 3}
	if len(kv) != len(want) {
		t.Fatalf("KeyVals() = %v, want %v", kv, want)
	}
	for i := range want {
		if kv[i] != want[i] {
			t.Errorf("KeyVals()[%d] = %v, want %v", i, kv[i], want[i])
		}
	}

	if New(ErrCodeRouting, "bare").KeyVals() != nil {
		t.Error("KeyVals() without details should be nil")
	}
}
