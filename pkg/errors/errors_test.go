package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnknownItem, "unknown item(s): %s", "nope")

	if err.Code != ErrCodeUnknownItem {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUnknownItem)
	}

	if err.Message != "unknown item(s): nope" {
		t.Errorf("Message = %v, want %v", err.Message, "unknown item(s): nope")
	}

	expected := "UNKNOWN_ITEM: unknown item(s): nope"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("exit status 2")
	err := Wrap(ErrCodeInstallFailed, cause, "installing htop")

	if err.Code != ErrCodeInstallFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInstallFailed)
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
			err:      New(ErrCodeInvalidCatalog, "test"),
			code:     ErrCodeInvalidCatalog,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidCatalog, "test"),
			code:     ErrCodeCycle,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInstallFailed, New(ErrCodeNoTTY, "inner"), "outer"),
			code:     ErrCodeInstallFailed,
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
		{
			name:     "Error type",
			err:      New(ErrCodeCycle, "test"),
			expected: ErrCodeCycle,
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
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "Error with cause",
			err:      Wrap(ErrCodeInstallFailed, errors.New("exit 1"), "apt-get failed"),
			expected: "apt-get failed: exit 1",
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

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"validation", New(ErrCodeUnknownItem, "x"), ExitFailure},
		{"no tty", New(ErrCodeNoTTY, "x"), ExitFailure},
		{"install failed", Wrap(ErrCodeInstallFailed, errors.New("boom"), "x"), ExitFailure},
		{"missing runtime", New(ErrCodeMissingRuntime, "x"), ExitMissingRuntime},
		{"wrapped missing runtime", Wrap(ErrCodeInternal, New(ErrCodeMissingRuntime, "x"), "y"), ExitFailure},
		{"plain", errors.New("plain"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
