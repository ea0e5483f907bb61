// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"fmt"
	"io"
)

// Engine defines the interface for container operations.
type Engine interface {
	// Name returns the engine name (docker or podman)
	Name() string
	// Available checks if the engine is available on the system
	Available() bool
	// Version returns the engine version
	Version(ctx context.Context) (string, error)

	// Build builds an image from a Dockerfile
	Build(ctx context.Context, opts BuildOptions) error
	// Run runs a container from an image
	Run(ctx context.Context, opts RunOptions) (*RunResult, error)
	// ImageExists checks if an image exists
	ImageExists(ctx context.Context, image string) (bool, error)
	// RemoveImage removes an image
	RemoveImage(ctx context.Context, image string, force bool) error
	// ListImages lists image references matching a label filter
	ListImages(ctx context.Context, labelFilter string) ([]string, error)
}

// BuildOptions contains options for building an image.
type BuildOptions struct {
	// ContextDir is the build context directory
	ContextDir string
	// Dockerfile is the path to the Dockerfile (relative to ContextDir)
	Dockerfile string
	// Tag is the image tag
	Tag string
	// Labels are image labels applied at build time
	Labels map[string]string
	// BuildArgs are build-time variables
	BuildArgs map[string]string
	// NoCache disables the build cache
	NoCache bool
	// Stdout is where to write build output
	Stdout io.Writer
	// Stderr is where to write build errors
	Stderr io.Writer
}

// RunOptions contains options for running a container.
type RunOptions struct {
	// Image is the image to run
	Image string
	// Command overrides the image's entry command; empty means use the
	// command baked into the image
	Command []string
	// WorkDir is the working directory inside the container
	WorkDir string
	// Env contains environment variables
	Env map[string]string
	// Volumes are volume mounts in "host:container" format
	Volumes []string
	// Ports are port mappings in "host:container" format
	Ports []string
	// Remove automatically removes the container after exit
	Remove bool
	// Name is the container name
	Name string
	// Stdin is the standard input
	Stdin io.Reader
	// Stdout is where to write standard output
	Stdout io.Writer
	// Stderr is where to write standard error
	Stderr io.Writer
	// Interactive enables interactive mode
	Interactive bool
	// TTY allocates a pseudo-TTY
	TTY bool
}

// RunResult contains the result of running a container.
type RunResult struct {
	// ExitCode is the exit code of the container process
	ExitCode int
	// Error contains any infrastructure error (not application failure)
	Error error
}

// EngineType identifies the container engine type.
type EngineType string

const (
	EngineTypePodman EngineType = "podman"
	EngineTypeDocker EngineType = "docker"
)

// ErrEngineNotAvailable is returned when a container engine is not available.
type ErrEngineNotAvailable struct {
	Engine string
	Reason string
}

func (e *ErrEngineNotAvailable) Error() string {
	return fmt.Sprintf("container engine '%s' is not available: %s", e.Engine, e.Reason)
}

// NewEngine creates a new container engine based on preference.
// If the preferred engine is unavailable, the other engine is tried
// before giving up.
func NewEngine(preferredType EngineType) (Engine, error) {
	switch preferredType {
	case EngineTypePodman:
		engine := NewPodmanEngine()
		if engine.Available() {
			return engine, nil
		}
		dockerEngine := NewDockerEngine()
		if dockerEngine.Available() {
			return dockerEngine, nil
		}
		return nil, &ErrEngineNotAvailable{
			Engine: string(preferredType),
			Reason: "neither podman nor docker found on PATH",
		}
	case EngineTypeDocker:
		engine := NewDockerEngine()
		if engine.Available() {
			return engine, nil
		}
		podmanEngine := NewPodmanEngine()
		if podmanEngine.Available() {
			return podmanEngine, nil
		}
		return nil, &ErrEngineNotAvailable{
			Engine: string(preferredType),
			Reason: "neither docker nor podman found on PATH",
		}
	default:
		return AutoDetectEngine()
	}
}

// AutoDetectEngine detects an available container engine.
// Podman is tried first, then Docker.
func AutoDetectEngine() (Engine, error) {
	podman := NewPodmanEngine()
	if podman.Available() {
		return podman, nil
	}

	docker := NewDockerEngine()
	if docker.Available() {
		return docker, nil
	}

	return nil, &ErrEngineNotAvailable{
		Engine: "auto",
		Reason: "neither podman nor docker found on PATH",
	}
}
