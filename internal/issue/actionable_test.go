// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  NewActionableError("build snapshot"),
			want: "failed to build snapshot",
		},
		{
			name: "with resource",
			err: &ActionableError{
				Operation: "parse manifest",
				Resource:  "requirements.txt",
			},
			want: "failed to parse manifest: requirements.txt",
		},
		{
			name: "with cause",
			err: &ActionableError{
				Operation: "load config",
				Resource:  "config.toml",
				Cause:     errors.New("no such file"),
			},
			want: "failed to load config: config.toml: no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := WrapWithOperation(cause, "build snapshot")

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}

func TestWrapNilError(t *testing.T) {
	if WrapWithOperation(nil, "op") != nil {
		t.Error("WrapWithOperation(nil) should return nil")
	}
	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}
}

func TestErrorContextBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := NewErrorContext().
		WithOperation("build snapshot").
		WithResource("bot.py").
		WithSuggestion("Check the Dockerfile").
		WithSuggestions("Try --verbose", "Try --no-cache").
		Wrap(cause).
		Build()

	if err == nil {
		t.Fatal("Build returned nil")
	}
	if err.Operation != "build snapshot" || err.Resource != "bot.py" {
		t.Errorf("unexpected fields: %+v", err)
	}
	if len(err.Suggestions) != 3 {
		t.Errorf("Suggestions = %v, want 3 entries", err.Suggestions)
	}
	if !errors.Is(err, cause) {
		t.Error("cause should be wrapped")
	}
	if !err.HasSuggestions() {
		t.Error("HasSuggestions should be true")
	}
}

func TestErrorContextRequiresOperation(t *testing.T) {
	if NewErrorContext().WithResource("bot.py").Build() != nil {
		t.Error("Build without operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError without operation should return nil")
	}
}

func TestActionableErrorFormat(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewErrorContext().
		WithOperation("build snapshot").
		WithSuggestion("Check the engine daemon").
		Wrap(fmt.Errorf("engine build: %w", inner)).
		Build()

	t.Run("default", func(t *testing.T) {
		out := err.Format(false)
		if !strings.Contains(out, "failed to build snapshot") {
			t.Errorf("missing main message: %q", out)
		}
		if !strings.Contains(out, "• Check the engine daemon") {
			t.Errorf("missing suggestion bullet: %q", out)
		}
		if strings.Contains(out, "Error chain:") {
			t.Errorf("default format should omit the error chain: %q", out)
		}
	})

	t.Run("verbose", func(t *testing.T) {
		out := err.Format(true)
		if !strings.Contains(out, "Error chain:") {
			t.Errorf("verbose format should include the error chain: %q", out)
		}
		if !strings.Contains(out, "1. engine build: connection refused") {
			t.Errorf("chain should list the wrapped error: %q", out)
		}
		if !strings.Contains(out, "2. connection refused") {
			t.Errorf("chain should unwrap to the root cause: %q", out)
		}
	})
}
