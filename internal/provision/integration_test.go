// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// skipUnlessIntegration skips unless container integration tests are enabled.
// These tests need a working Docker daemon and pull base images.
func skipUnlessIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("APPCRATE_INTEGRATION") == "" {
		t.Skip("set APPCRATE_INTEGRATION=1 to run container integration tests")
	}
}

// buildContextFor plans a snapshot and lays out its build context on disk:
// the generated Dockerfile plus the application file (and manifest, if any).
func buildContextFor(t *testing.T, spec BuildSpec) string {
	t.Helper()

	b := NewBuilder(nil, DefaultConfig())
	snapshot, err := b.Plan(spec)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte(snapshot.Dockerfile), 0o644); err != nil {
		t.Fatalf("failed to write Dockerfile: %v", err)
	}
	if err := CopyFile(spec.App.Path, filepath.Join(dir, spec.App.Name)); err != nil {
		t.Fatalf("failed to copy app file: %v", err)
	}
	if spec.Manifest != nil && len(spec.Manifest.Requirements) > 0 {
		dst := filepath.Join(dir, filepath.Base(spec.Manifest.Path))
		if err := CopyFile(spec.Manifest.Path, dst); err != nil {
			t.Fatalf("failed to copy manifest: %v", err)
		}
	}
	return dir
}

func TestSnapshotRunsBakedCommand(t *testing.T) {
	skipUnlessIntegration(t)

	app := resolveTestApp(t, "bot.py", "print('hello from snapshot')\n")
	dir := buildContextFor(t, BuildSpec{App: app})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			FromDockerfile: testcontainers.FromDockerfile{
				Context:    dir,
				Dockerfile: "Dockerfile",
			},
			WaitingFor: wait.ForExit(),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("failed to build and run snapshot: %v", err)
	}

	logs, err := ctr.Logs(ctx)
	if err != nil {
		t.Fatalf("failed to read logs: %v", err)
	}
	defer logs.Close()

	out, err := io.ReadAll(logs)
	if err != nil {
		t.Fatalf("failed to read logs: %v", err)
	}
	if !strings.Contains(string(out), "hello from snapshot") {
		t.Errorf("snapshot output = %q, want greeting", string(out))
	}
}

func TestSnapshotExitCodeVerbatim(t *testing.T) {
	skipUnlessIntegration(t)

	app := resolveTestApp(t, "bot.py", "import sys\nsys.exit(3)\n")
	dir := buildContextFor(t, BuildSpec{App: app})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			FromDockerfile: testcontainers.FromDockerfile{
				Context:    dir,
				Dockerfile: "Dockerfile",
			},
			WaitingFor: wait.ForExit(),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("failed to build and run snapshot: %v", err)
	}

	state, err := ctr.State(ctx)
	if err != nil {
		t.Fatalf("failed to read container state: %v", err)
	}
	if state.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3 verbatim", state.ExitCode)
	}
}
