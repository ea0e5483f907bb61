// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestIsTransientError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"wrapped context canceled", fmt.Errorf("run: %w", context.Canceled), false},
		{"rootless podman race", errors.New("crun: ping_group_range: Invalid argument"), true},
		{"oci runtime error", errors.New("OCI runtime error: unable to start"), true},
		{"dns failure", errors.New("Temporary failure resolving 'deb.debian.org'"), true},
		{"host resolution", errors.New("Could not resolve host: registry-1.docker.io"), true},
		{"connection timeout", errors.New("dial tcp: connection timed out"), true},
		{"connection refused", errors.New("dial tcp 127.0.0.1:2375: connection refused"), true},
		{"overlay mount race", errors.New("error creating overlay mount to /var/lib/containers"), true},
		{"layer mount", errors.New("error mounting layer: device busy"), true},
		{"ordinary failure", errors.New("manifest entry invalid"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsTransientError(tt.err); got != tt.want {
				t.Errorf("IsTransientError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
