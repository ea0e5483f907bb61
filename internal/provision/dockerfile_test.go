// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"appcrate-cli/internal/appfile"
	"appcrate-cli/internal/manifest"
)

// resolveTestApp writes an application file and resolves it.
func resolveTestApp(t *testing.T, name, content string) *appfile.AppFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write app file: %v", err)
	}
	app, err := appfile.Resolve(path, "")
	if err != nil {
		t.Fatalf("failed to resolve app file: %v", err)
	}
	return app
}

// loadTestManifest writes a manifest file and parses it.
func loadTestManifest(t *testing.T, name, content string) *manifest.Manifest {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	m, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("failed to load manifest: %v", err)
	}
	return m
}

func TestGenerateDockerfileWithManifest(t *testing.T) {
	app := resolveTestApp(t, "bot.py", "print('hi')\n")
	m := loadTestManifest(t, "requirements.txt", "requests==2.32.0\npyyaml\n")

	b := NewBuilder(nil, DefaultConfig())
	snapshot, err := b.Plan(BuildSpec{App: app, Manifest: m})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	df := snapshot.Dockerfile
	for _, want := range []string{
		"FROM python:3.12-slim\n",
		"WORKDIR /app\n",
		"COPY requirements.txt ./\n",
		"RUN pip install --no-cache-dir -r requirements.txt\n",
		"COPY bot.py ./\n",
		"CMD [\"python3\", \"bot.py\"]\n",
	} {
		if !strings.Contains(df, want) {
			t.Errorf("Dockerfile missing %q:\n%s", want, df)
		}
	}

	// The install layer must precede the application layer so that
	// application-only changes reuse installed dependencies.
	installIdx := strings.Index(df, "COPY requirements.txt")
	appIdx := strings.Index(df, "COPY bot.py")
	if installIdx > appIdx {
		t.Error("install layer should precede the application layer")
	}
}

func TestGenerateDockerfileNoManifest(t *testing.T) {
	app := resolveTestApp(t, "bot.py", "print('hi')\n")

	b := NewBuilder(nil, DefaultConfig())
	snapshot, err := b.Plan(BuildSpec{App: app})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if strings.Contains(snapshot.Dockerfile, "RUN ") {
		t.Errorf("Dockerfile should have no install layer without a manifest:\n%s", snapshot.Dockerfile)
	}
	if !strings.Contains(snapshot.Dockerfile, "COPY bot.py ./") {
		t.Errorf("Dockerfile missing application copy:\n%s", snapshot.Dockerfile)
	}
}

func TestGenerateDockerfileEmptyManifest(t *testing.T) {
	app := resolveTestApp(t, "bot.py", "print('hi')\n")
	m := loadTestManifest(t, "requirements.txt", "# nothing yet\n")

	b := NewBuilder(nil, DefaultConfig())
	snapshot, err := b.Plan(BuildSpec{App: app, Manifest: m})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if strings.Contains(snapshot.Dockerfile, "RUN ") {
		t.Error("empty manifest should not produce an install layer")
	}
}

func TestGenerateDockerfileBaseImageOverride(t *testing.T) {
	app := resolveTestApp(t, "bot.py", "print('hi')\n")

	b := NewBuilder(nil, DefaultConfig())
	snapshot, err := b.Plan(BuildSpec{App: app, BaseImage: "python:3.13-alpine"})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if !strings.Contains(snapshot.Dockerfile, "FROM python:3.13-alpine\n") {
		t.Errorf("Dockerfile should use the override base image:\n%s", snapshot.Dockerfile)
	}
}

func TestGenerateDockerfileCustomWorkDir(t *testing.T) {
	app := resolveTestApp(t, "bot.py", "print('hi')\n")

	cfg := DefaultConfig()
	cfg.Apply(WithWorkDir("/srv/bot"))

	b := NewBuilder(nil, cfg)
	snapshot, err := b.Plan(BuildSpec{App: app})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if !strings.Contains(snapshot.Dockerfile, "WORKDIR /srv/bot\n") {
		t.Errorf("Dockerfile should use the configured workdir:\n%s", snapshot.Dockerfile)
	}
}

func TestGenerateDockerfileNodeInstaller(t *testing.T) {
	app := resolveTestApp(t, "bot.js", "console.log('hi')\n")
	m := loadTestManifest(t, "packages.txt", "express\n")

	b := NewBuilder(nil, DefaultConfig())
	snapshot, err := b.Plan(BuildSpec{App: app, Manifest: m})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if !strings.Contains(snapshot.Dockerfile, "RUN xargs -a packages.txt npm install --no-audit --no-fund\n") {
		t.Errorf("Dockerfile missing node install command:\n%s", snapshot.Dockerfile)
	}
	if !strings.Contains(snapshot.Dockerfile, "CMD [\"node\", \"bot.js\"]\n") {
		t.Errorf("Dockerfile missing node entry command:\n%s", snapshot.Dockerfile)
	}
}

func TestGenerateDockerfileShebangInterpreter(t *testing.T) {
	app := resolveTestApp(t, "bot.py", "#!/usr/bin/env python2\nprint('hi')\n")

	b := NewBuilder(nil, DefaultConfig())
	snapshot, err := b.Plan(BuildSpec{App: app})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if !strings.Contains(snapshot.Dockerfile, "CMD [\"python2\", \"bot.py\"]\n") {
		t.Errorf("Dockerfile should use the shebang interpreter:\n%s", snapshot.Dockerfile)
	}
}
