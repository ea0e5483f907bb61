// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// PodmanEngine implements the Engine interface using the Podman CLI.
// It embeds BaseCLIEngine for common CLI operations.
type PodmanEngine struct {
	*BaseCLIEngine
}

// NewPodmanEngine creates a new Podman engine.
// On Linux with SELinux enabled, volume mounts are automatically labeled with :z.
func NewPodmanEngine(opts ...BaseCLIEngineOption) *PodmanEngine {
	path, _ := exec.LookPath("podman")

	// Podman needs SELinux volume labels on Linux (prepend to user options)
	allOpts := append([]BaseCLIEngineOption{
		WithName(string(EngineTypePodman)),
		WithVolumeFormatter(addSELinuxLabel),
	}, opts...)

	return &PodmanEngine{
		BaseCLIEngine: NewBaseCLIEngine(path, allOpts...),
	}
}

// Name returns the engine name.
func (e *PodmanEngine) Name() string {
	return string(EngineTypePodman)
}

// Available checks if Podman is available.
func (e *PodmanEngine) Available() bool {
	if e.BinaryPath() == "" {
		return false
	}
	cmd := e.CreateCommand(context.Background(), "version", "--format", "{{.Version}}")
	return cmd.Run() == nil
}

// Version returns the Podman version.
func (e *PodmanEngine) Version(ctx context.Context) (string, error) {
	out, err := e.RunCommandWithOutput(ctx, "version", "--format", "{{.Version}}")
	if err != nil {
		return "", fmt.Errorf("failed to get podman version: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// ImageExists checks if an image exists.
func (e *PodmanEngine) ImageExists(ctx context.Context, image string) (bool, error) {
	err := e.RunCommandStatus(ctx, "image", "exists", image)
	return err == nil, nil
}

// isSELinuxEnabled checks if SELinux is enabled on the system.
func isSELinuxEnabled() bool {
	data, err := os.ReadFile("/sys/fs/selinux/enforce")
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == "1"
}

// addSELinuxLabel adds the :z label to a volume mount if SELinux is enabled
// and the volume doesn't already have an SELinux label (:z or :Z).
func addSELinuxLabel(volume string) string {
	if !isSELinuxEnabled() {
		return volume
	}
	return appendSELinuxLabel(volume)
}

// appendSELinuxLabel relabels a volume mount spec unconditionally. Split out
// from addSELinuxLabel so it can be exercised on hosts without SELinux.
func appendSELinuxLabel(volume string) string {
	// Volume format: host_path:container_path[:options]
	parts := strings.Split(volume, ":")

	// Need at least host:container
	if len(parts) < 2 {
		return volume
	}

	if len(parts) >= 3 {
		options := parts[len(parts)-1]
		for opt := range strings.SplitSeq(options, ",") {
			if opt == "z" || opt == "Z" {
				// Already has SELinux label
				return volume
			}
		}
		// Append z to existing options
		return volume + ",z"
	}

	// No options specified, add :z
	return volume + ":z"
}
