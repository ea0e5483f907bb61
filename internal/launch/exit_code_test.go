// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"testing"
)

func TestExitCodeValidate(t *testing.T) {
	tests := []struct {
		code    ExitCode
		wantErr bool
	}{
		{0, false},
		{1, false},
		{125, false},
		{255, false},
		{-1, true},
		{256, true},
	}

	for _, tt := range tests {
		err := tt.code.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("ExitCode(%d).Validate() error = %v, wantErr %v", tt.code, err, tt.wantErr)
		}
		if err != nil {
			if !errors.Is(err, ErrInvalidExitCode) {
				t.Errorf("error should wrap ErrInvalidExitCode: %v", err)
			}
			var invalidErr *InvalidExitCodeError
			if !errors.As(err, &invalidErr) {
				t.Errorf("error should be *InvalidExitCodeError: %v", err)
			}
		}
	}
}

func TestExitCodeIsSuccess(t *testing.T) {
	if !ExitCode(0).IsSuccess() {
		t.Error("0 should be success")
	}
	if ExitCode(1).IsSuccess() {
		t.Error("1 should not be success")
	}
}

func TestExitCodeIsEngine(t *testing.T) {
	for _, code := range []ExitCode{125, 126, 127} {
		if !code.IsEngine() {
			t.Errorf("%d should be an engine exit code", code)
		}
	}
	for _, code := range []ExitCode{0, 1, 124, 128, 255} {
		if code.IsEngine() {
			t.Errorf("%d should not be an engine exit code", code)
		}
	}
}

func TestExitCodeString(t *testing.T) {
	if got := ExitCode(42).String(); got != "42" {
		t.Errorf("String() = %q, want 42", got)
	}
}
