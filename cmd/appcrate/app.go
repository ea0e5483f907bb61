// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"appcrate-cli/internal/appfile"
	"appcrate-cli/internal/config"
	"appcrate-cli/internal/container"
	"appcrate-cli/internal/issue"
	"appcrate-cli/internal/manifest"
	"appcrate-cli/internal/provision"

	"github.com/charmbracelet/log"
)

// newLogger creates a prefixed stderr logger honoring the verbose flag.
func newLogger(prefix string) *log.Logger {
	opts := log.Options{Prefix: prefix}
	if verbose {
		opts.Level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, opts)
}

// glamourStyle maps the configured color scheme to a glamour style name.
func glamourStyle() string {
	switch loadedCfg.UI.ColorScheme {
	case config.ColorSchemeLight:
		return "light"
	default:
		return "dark"
	}
}

// renderIssue prints the catalog guidance for a known issue to stderr.
// Rendering failures are swallowed; the caller still returns the real error.
func renderIssue(id issue.Id) {
	known := issue.Lookup(id)
	if known == nil {
		return
	}
	if rendered, err := known.Render(glamourStyle()); err == nil {
		fmt.Fprint(os.Stderr, rendered)
	}
}

// resolveEngine picks the container engine from the --engine flag, falling
// back to the configured engine. "auto" probes for podman first, then docker.
func resolveEngine() (container.Engine, error) {
	selection := config.ContainerEngine(engineFlag)
	if selection == "" {
		selection = loadedCfg.ContainerEngine
	}
	if valid, errs := selection.IsValid(); !valid {
		return nil, errs[0]
	}

	var (
		eng container.Engine
		err error
	)
	switch selection {
	case config.EngineAuto:
		eng, err = container.AutoDetectEngine()
	case config.EnginePodman:
		eng, err = container.NewEngine(container.EngineTypePodman)
	case config.EngineDocker:
		eng, err = container.NewEngine(container.EngineTypeDocker)
	}
	if err != nil {
		var notAvail *container.ErrEngineNotAvailable
		if errors.As(err, &notAvail) {
			renderIssue(issue.EngineNotFoundId)
		}
		return nil, err
	}

	return eng, nil
}

// resolveApp resolves the application file, printing catalog guidance for
// the two common failure modes before returning the error.
func resolveApp(path, interpreterOverride string) (*appfile.AppFile, error) {
	app, err := appfile.Resolve(path, interpreterOverride)
	if err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist), errors.Is(err, appfile.ErrNotRegularFile):
			renderIssue(issue.AppFileNotFoundId)
		case errors.Is(err, appfile.ErrUnknownFlavor):
			renderIssue(issue.InterpreterUnknownId)
		}
		return nil, err
	}
	return app, nil
}

// resolveManifest loads the dependency manifest for an app. An explicit
// --manifest path must exist; otherwise the flavor's conventional manifest
// name is looked up next to the app file, and absence simply means no
// dependencies.
func resolveManifest(app *appfile.AppFile, manifestPath string) (*manifest.Manifest, error) {
	if manifestPath != "" {
		m, err := manifest.Load(manifestPath)
		if err != nil {
			switch {
			case errors.Is(err, os.ErrNotExist):
				renderIssue(issue.ManifestNotFoundId)
			case errors.Is(err, manifest.ErrInvalidRequirement), errors.Is(err, manifest.ErrDuplicateRequirement):
				renderIssue(issue.ManifestInvalidId)
			}
			return nil, err
		}
		return m, nil
	}

	if app.Flavor.ManifestName == "" {
		return nil, nil
	}

	implicit := filepath.Join(filepath.Dir(app.Path), app.Flavor.ManifestName)
	if _, err := os.Stat(implicit); err != nil {
		return nil, nil // No manifest next to the app: no dependencies
	}

	m, err := manifest.Load(implicit)
	if err != nil {
		if errors.Is(err, manifest.ErrInvalidRequirement) || errors.Is(err, manifest.ErrDuplicateRequirement) {
			renderIssue(issue.ManifestInvalidId)
		}
		return nil, err
	}
	return m, nil
}

// newBuilder creates a provision.Builder configured from the loaded config
// plus per-invocation build flags.
func newBuilder(eng container.Engine, force, noCache bool) *provision.Builder {
	cfg := provision.DefaultConfig()
	cfg.Apply(
		provision.WithForceRebuild(force),
		provision.WithNoCache(noCache || loadedCfg.Build.NoCache),
	)
	if loadedCfg.Build.TagPrefix != "" {
		cfg.Apply(provision.WithTagPrefix(loadedCfg.Build.TagPrefix.String()))
	}
	if loadedCfg.Build.WorkDir != "" {
		cfg.Apply(provision.WithWorkDir(loadedCfg.Build.WorkDir.String()))
	}
	b := provision.NewBuilder(eng, cfg)
	b.SetLogger(newLogger("build"))
	return b
}

// splitKeyValue splits a "key=value" flag value. ok is false when there is
// no '=' or the key is empty.
func splitKeyValue(s string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(s, "=")
	if !ok || key == "" {
		return "", "", false
	}
	return key, value, true
}

// resolveBaseImage picks the base image for a build: the --base-image flag,
// then the configured per-flavor override, then the flavor default (empty,
// resolved by the builder).
func resolveBaseImage(app *appfile.AppFile, baseImageFlag string) string {
	if baseImageFlag != "" {
		return baseImageFlag
	}
	if override, ok := loadedCfg.Build.BaseImages[app.Flavor.Name]; ok {
		return override
	}
	return ""
}
