// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"appcrate-cli/internal/appfile"
	"appcrate-cli/internal/container"
	"appcrate-cli/internal/manifest"

	"github.com/charmbracelet/log"
)

const (
	// LabelManaged marks images created by appcrate so they can be listed
	// and cleaned. The value is always "true".
	LabelManaged = "io.appcrate.managed"

	// LabelApp carries the sanitized application name the snapshot was
	// built for.
	LabelApp = "io.appcrate.app"

	// buildAttempts is how many times a failing build is retried when the
	// failure looks transient (network resolution, storage races).
	buildAttempts = 3

	// buildBackoff is the base backoff between build retries.
	buildBackoff = 2 * time.Second
)

// ErrManifestUnsupported is returned when a manifest declares dependencies
// but the application flavor has no installer for them.
var ErrManifestUnsupported = errors.New("flavor does not support dependency manifests")

type (
	// BuildSpec are the inputs of one build: the resolved application file,
	// the parsed manifest, and the base image. The build is a pure function
	// of these inputs; identical specs produce identical snapshots.
	BuildSpec struct {
		// App is the resolved application file (required)
		App *appfile.AppFile

		// Manifest is the parsed dependency manifest. May be nil or empty;
		// the install layer is then omitted.
		Manifest *manifest.Manifest

		// BaseImage is the base runtime image. Empty means the flavor
		// default.
		BaseImage string

		// Tag overrides the computed snapshot tag when non-empty.
		Tag string
	}

	// Builder turns a BuildSpec into an immutable snapshot image using a
	// container engine. Snapshots are cached by a content hash over all
	// inputs, so rebuilding with unchanged inputs is a no-op.
	Builder struct {
		engine container.Engine
		config *Config
		logger *log.Logger
	}
)

// NewBuilder creates a new Builder.
func NewBuilder(engine container.Engine, cfg *Config) *Builder {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Builder{
		engine: engine,
		config: cfg,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "build",
		}),
	}
}

// Config returns the builder's configuration.
func (b *Builder) Config() *Config {
	return b.config
}

// SetLogger replaces the builder's logger.
func (b *Builder) SetLogger(logger *log.Logger) {
	b.logger = logger
}

// Plan computes the snapshot that Build would produce without touching the
// container engine: the generated Dockerfile, the cache key, and the tag.
func (b *Builder) Plan(spec BuildSpec) (*Snapshot, error) {
	if err := b.validate(spec); err != nil {
		return nil, err
	}

	baseImage := b.baseImage(spec)
	manifestName := b.manifestName(spec)
	cacheKey := b.calculateCacheKey(spec, baseImage)

	tag := spec.Tag
	if tag == "" {
		tag = b.buildSnapshotTag(spec.App.Name, cacheKey[:12])
	}

	return &Snapshot{
		ImageTag:   tag,
		CacheKey:   cacheKey,
		Dockerfile: b.generateDockerfile(baseImage, spec.App, spec.Manifest, manifestName),
	}, nil
}

// Build creates or retrieves a cached snapshot for the given spec.
//
// The pipeline is strictly sequential: build context preparation, dependency
// installation, application copy, and entry command recording all happen
// inside a single engine build, and any failure aborts the whole build with
// no usable snapshot left behind.
func (b *Builder) Build(ctx context.Context, spec BuildSpec) (*Snapshot, error) {
	snapshot, err := b.Plan(spec)
	if err != nil {
		return nil, err
	}

	// Check if a cached snapshot exists (skip if ForceRebuild is set)
	if !b.config.ForceRebuild {
		exists, _ := b.engine.ImageExists(ctx, snapshot.ImageTag) // Error treated as "not found"
		if exists {
			b.logger.Debug("snapshot cached", "tag", snapshot.ImageTag)
			snapshot.Reused = true
			return snapshot, nil
		}
	}

	b.logger.Info("building snapshot",
		"app", spec.App.Name,
		"base", b.baseImage(spec),
		"tag", snapshot.ImageTag)

	if err := b.buildSnapshotImage(ctx, spec, snapshot); err != nil {
		return nil, err
	}

	b.logger.Info("snapshot ready", "tag", snapshot.ImageTag)
	return snapshot, nil
}

// validate checks the spec before any filesystem or engine work.
func (b *Builder) validate(spec BuildSpec) error {
	if spec.App == nil {
		return errors.New("build spec has no application file")
	}
	if spec.Manifest != nil && len(spec.Manifest.Requirements) > 0 && !spec.App.Flavor.SupportsManifest() {
		return fmt.Errorf("flavor %q: %w", spec.App.Flavor.Name, ErrManifestUnsupported)
	}
	return nil
}

// baseImage returns the effective base image for a spec.
func (b *Builder) baseImage(spec BuildSpec) string {
	if spec.BaseImage != "" {
		return spec.BaseImage
	}
	return spec.App.Flavor.DefaultBaseImage
}

// manifestName returns the filename under which the manifest is copied into
// the image.
func (b *Builder) manifestName(spec BuildSpec) string {
	if spec.Manifest == nil || spec.Manifest.Path == "" {
		return spec.App.Flavor.ManifestName
	}
	return filepath.Base(spec.Manifest.Path)
}

// buildSnapshotTag constructs the snapshot tag with optional suffix.
// When TagSuffix is set, the tag format is "<prefix>-<app>:<hash>-<suffix>".
// This enables test isolation by making each test's images unique.
func (b *Builder) buildSnapshotTag(appName, hash string) string {
	repo := fmt.Sprintf("%s-%s", b.config.TagPrefix, sanitizeName(appName))
	if b.config.TagSuffix != "" {
		return fmt.Sprintf("%s:%s-%s", repo, hash, b.config.TagSuffix)
	}
	return fmt.Sprintf("%s:%s", repo, hash)
}

// calculateCacheKey generates a unique key over all build inputs: the base
// image, the canonical manifest hash, the application content hash, and the
// flavor. Identical inputs always yield the same key.
func (b *Builder) calculateCacheKey(spec BuildSpec, baseImage string) string {
	h := sha256.New()

	h.Write([]byte("image:" + baseImage))
	h.Write([]byte("flavor:" + spec.App.Flavor.Name))
	h.Write([]byte("interpreter:" + spec.App.Interpreter))
	h.Write([]byte("workdir:" + b.config.WorkDir))

	if spec.Manifest != nil {
		h.Write([]byte("manifest:" + spec.Manifest.Hash()))
	}

	h.Write([]byte("app:" + spec.App.Name + ":" + spec.App.ContentHash))

	return hex.EncodeToString(h.Sum(nil))
}

// buildSnapshotImage runs the engine build for a snapshot.
func (b *Builder) buildSnapshotImage(ctx context.Context, spec BuildSpec, snapshot *Snapshot) error {
	buildCtx, cleanup, err := b.prepareBuildContext(spec, snapshot)
	if err != nil {
		return err
	}
	defer cleanup()

	labels := map[string]string{
		LabelManaged: "true",
		LabelApp:     sanitizeName(spec.App.Name),
	}
	for k, v := range b.config.Labels {
		labels[k] = v
	}

	buildOpts := container.BuildOptions{
		ContextDir: buildCtx,
		Dockerfile: "Dockerfile",
		Tag:        snapshot.ImageTag,
		Labels:     labels,
		NoCache:    b.config.NoCache,
		Stdout:     b.config.Output,
		Stderr:     b.config.Output,
	}

	// Dependency resolution inside the build can hit transient network or
	// storage failures; retry those, fail fast on everything else.
	return container.RetryWithBackoff(ctx, buildAttempts, buildBackoff,
		func(attempt int) (bool, error) {
			if attempt > 0 {
				b.logger.Warn("retrying snapshot build", "attempt", attempt+1, "tag", snapshot.ImageTag)
			}
			err := b.engine.Build(ctx, buildOpts)
			if err == nil {
				return false, nil
			}
			return container.IsTransientError(err), err
		})
}

// prepareBuildContext creates a temporary directory with the manifest, the
// application file, and the generated Dockerfile.
//
// Note: Docker installed via Snap has limited filesystem access: it cannot
// see /tmp or hidden directories in $HOME, but CAN access visible home
// directories. A visible directory in the user's home is therefore preferred
// as the build context location.
func (b *Builder) prepareBuildContext(spec BuildSpec, snapshot *Snapshot) (buildContextDir string, cleanup func(), err error) {
	var buildContextParent string

	// Try HOME first, but verify it actually exists (handles misconfigured
	// environments and tests that point HOME at a nonexistent path)
	if home, homeErr := os.UserHomeDir(); homeErr == nil {
		if _, statErr := os.Stat(home); statErr == nil {
			buildContextParent = filepath.Join(home, "appcrate-build")
		}
	}

	// Fallback if HOME is unavailable or doesn't exist
	if buildContextParent == "" {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			buildContextParent = filepath.Join(cwd, ".appcrate-build")
		} else {
			// Last resort: use system temp (may fail with Snap Docker)
			buildContextParent = filepath.Join(os.TempDir(), "appcrate-build")
		}
	}

	if mkdirErr := os.MkdirAll(buildContextParent, 0o755); mkdirErr != nil {
		return "", nil, fmt.Errorf("failed to create build context parent directory: %w", mkdirErr)
	}

	tmpDir, err := os.MkdirTemp(buildContextParent, "ctx-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	cleanup = func() {
		_ = os.RemoveAll(tmpDir) // Cleanup temp dir; error non-critical
	}

	// Copy the manifest when it contributes an install layer
	if spec.Manifest != nil && len(spec.Manifest.Requirements) > 0 {
		manifestDst := filepath.Join(tmpDir, b.manifestName(spec))
		if err := CopyFile(spec.Manifest.Path, manifestDst); err != nil {
			cleanup()
			return "", nil, fmt.Errorf("failed to copy manifest: %w", err)
		}
	}

	// Copy the application file verbatim
	appDst := filepath.Join(tmpDir, spec.App.Name)
	if err := CopyFile(spec.App.Path, appDst); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to copy application file: %w", err)
	}

	// Write the generated Dockerfile
	dockerfilePath := filepath.Join(tmpDir, "Dockerfile")
	if err := os.WriteFile(dockerfilePath, []byte(snapshot.Dockerfile), 0o644); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to write Dockerfile: %w", err)
	}

	return tmpDir, cleanup, nil
}
