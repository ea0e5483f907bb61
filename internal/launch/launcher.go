// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"fmt"
	"io"
	"os"

	"appcrate-cli/internal/container"

	"github.com/charmbracelet/log"
)

type (
	// Spec describes one launch of a snapshot.
	Spec struct {
		// ImageTag is the snapshot to instantiate (required)
		ImageTag string

		// EnvFiles are dotenv files loaded in order. A '?' suffix marks a
		// file as optional.
		EnvFiles []string

		// EnvVars are inline KEY=VALUE variables. They override values
		// from EnvFiles.
		EnvVars map[string]string

		// Name is an optional container name
		Name string

		// Ports are port mappings in "host:container" format
		Ports []string

		// Volumes are volume mounts in "host:container" format
		Volumes []string

		// Stdin, Stdout, Stderr wire the container's standard streams.
		// Nil values default to the process's own streams.
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer

		// Interactive keeps stdin open
		Interactive bool

		// TTY allocates a pseudo-TTY
		TTY bool
	}

	// Result is the outcome of a launch. The exit code is the application's
	// own, surfaced verbatim; the launcher defines no translation, retry, or
	// restart policy.
	Result struct {
		ExitCode ExitCode
		Error    error
	}

	// Launcher instantiates snapshots as foreground container processes
	// using the image's baked entry command.
	Launcher struct {
		engine container.Engine
		logger *log.Logger
	}
)

// NewLauncher creates a new Launcher.
func NewLauncher(engine container.Engine) *Launcher {
	return &Launcher{
		engine: engine,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "run",
		}),
	}
}

// SetLogger replaces the launcher's logger.
func (l *Launcher) SetLogger(logger *log.Logger) {
	l.logger = logger
}

// Launch starts the snapshot as the container's foreground process and waits
// for it to exit. The entry command baked into the image is used as-is, with
// no arguments; container state never survives the run (--rm), so repeated
// launches of the same snapshot start from identical state.
func (l *Launcher) Launch(ctx context.Context, spec Spec) (*Result, error) {
	if spec.ImageTag == "" {
		return nil, fmt.Errorf("launch spec has no image tag")
	}

	env, err := l.buildEnv(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to build environment: %w", err)
	}

	stdin := spec.Stdin
	stdout := spec.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := spec.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	l.logger.Debug("starting snapshot", "tag", spec.ImageTag, "engine", l.engine.Name())

	runOpts := container.RunOptions{
		Image:       spec.ImageTag,
		Env:         env,
		Volumes:     spec.Volumes,
		Ports:       spec.Ports,
		Name:        spec.Name,
		Remove:      true, // No state leaks from one run to the next
		Stdin:       stdin,
		Stdout:      stdout,
		Stderr:      stderr,
		Interactive: spec.Interactive,
		TTY:         spec.TTY,
	}

	result, err := l.engine.Run(ctx, runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to run snapshot: %w", err)
	}

	code := ExitCode(result.ExitCode)
	if code.IsEngine() {
		l.logger.Debug("engine exit code", "code", code)
	}

	return &Result{
		ExitCode: code,
		Error:    result.Error,
	}, nil
}

// buildEnv builds the container environment with documented precedence:
//  1. EnvFiles, loaded in array order
//  2. EnvVars (inline variables) - highest priority
func (l *Launcher) buildEnv(spec Spec) (map[string]string, error) {
	env := make(map[string]string)

	for _, path := range spec.EnvFiles {
		if err := LoadEnvFile(env, path, ""); err != nil {
			return nil, err
		}
	}

	for k, v := range spec.EnvVars {
		env[k] = v
	}

	return env, nil
}
