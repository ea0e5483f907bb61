// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"io"
	"os"
)

type (
	// Config holds configuration for building snapshot images.
	Config struct {
		// WorkDir is the working directory inside the image where the
		// manifest and application file are placed and where the entry
		// command runs. Default: /app
		WorkDir string

		// TagPrefix is the repository name prefix for snapshot tags.
		// Default: appcrate
		TagPrefix string

		// ForceRebuild bypasses cached snapshots and forces a rebuild
		ForceRebuild bool

		// NoCache disables the engine's layer cache during the build
		NoCache bool

		// Labels are extra image labels applied in addition to the
		// managed labels
		Labels map[string]string

		// Output is where engine build progress is written.
		// Default: os.Stderr
		Output io.Writer

		// TagSuffix is an optional suffix appended to snapshot tags.
		// This enables test isolation by making each test's images unique.
		// Can be set via the APPCRATE_TAG_SUFFIX environment variable.
		TagSuffix string
	}

	// Option is a functional option for configuring a Config.
	Option func(*Config)
)

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		WorkDir:   "/app",
		TagPrefix: "appcrate",
		Output:    os.Stderr,
		TagSuffix: os.Getenv("APPCRATE_TAG_SUFFIX"),
	}
}

// WithWorkDir returns an Option that sets the in-image working directory.
func WithWorkDir(dir string) Option {
	return func(c *Config) {
		c.WorkDir = dir
	}
}

// WithTagPrefix returns an Option that sets the snapshot tag prefix.
func WithTagPrefix(prefix string) Option {
	return func(c *Config) {
		c.TagPrefix = prefix
	}
}

// WithForceRebuild returns an Option that sets ForceRebuild on the config.
func WithForceRebuild(force bool) Option {
	return func(c *Config) {
		c.ForceRebuild = force
	}
}

// WithNoCache returns an Option that disables the engine layer cache.
func WithNoCache(noCache bool) Option {
	return func(c *Config) {
		c.NoCache = noCache
	}
}

// WithLabels returns an Option that sets extra image labels.
func WithLabels(labels map[string]string) Option {
	return func(c *Config) {
		c.Labels = labels
	}
}

// WithOutput returns an Option that sets the build progress writer.
func WithOutput(w io.Writer) Option {
	return func(c *Config) {
		c.Output = w
	}
}

// WithTagSuffix returns an Option that sets TagSuffix on the config.
// This is primarily used for test isolation to ensure parallel tests
// don't compete for the same snapshot tags.
func WithTagSuffix(suffix string) Option {
	return func(c *Config) {
		c.TagSuffix = suffix
	}
}

// Apply applies the given options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}
