package errors

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMalformedInput, "line %d: %s", 3, "expected two integers")

	if err.Code != ErrCodeMalformedInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMalformedInput)
	}

	if err.Message != "line 3: expected two integers" {
		t.Errorf("Message = %v, want %v", err.Message, "line 3: expected two integers")
	}

	expected := "MALFORMED_INPUT: line 3: expected two integers"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("no incumbent")
	err := Wrap(ErrCodeSolverFailed, cause, "highs run")

	if err.Code != ErrCodeSolverFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeSolverFailed)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
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
			err:      New(ErrCodeDegenerateGraph, "test"),
			code:     ErrCodeDegenerateGraph,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeDegenerateGraph, "test"),
			code:     ErrCodeSolverFailed,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeSolverFailed, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeSolverFailed,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("read: %w", New(ErrCodeMalformedInput, "inner")),
			code:     ErrCodeMalformedInput,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
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

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidBackend, "test"), ErrCodeInvalidBackend},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
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
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{New(ErrCodeMalformedInput, "x"), true},
		{New(ErrCodeDegenerateGraph, "x"), true},
		{Wrap(ErrCodeSolverFailed, errors.New("x"), "y"), true},
		{New(ErrCodeInvalidConfig, "x"), false},
		{errors.New("plain"), false},
	}

	for _, tt := range tests {
		if got := IsFatal(tt.err); got != tt.want {
			t.Errorf("IsFatal(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestValidateTimeLimit(t *testing.T) {
	tests := []struct {
		d       time.Duration
		wantErr bool
	}{
		{time.Second, false},
		{10 * time.Minute, false},
		{0, true},
		{-time.Second, true},
		{8 * 24 * time.Hour, true},
	}

	for _, tt := range tests {
		err := ValidateTimeLimit(tt.d)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateTimeLimit(%s) error = %v, wantErr %v", tt.d, err, tt.wantErr)
		}
	}
}
