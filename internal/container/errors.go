// SPDX-License-Identifier: MPL-2.0

package container

import (
	"appcrate-cli/internal/issue"
)

// buildImageError creates an actionable error for image build failures.
func buildImageError(engine string, opts BuildOptions, cause error) error {
	ctx := issue.NewErrorContext().
		WithOperation("build snapshot image")

	// Determine resource (Dockerfile or image tag)
	switch {
	case opts.Dockerfile != "":
		ctx.WithResource(opts.Dockerfile)
	case opts.ContextDir != "":
		ctx.WithResource(opts.ContextDir + "/Dockerfile")
	case opts.Tag != "":
		ctx.WithResource(opts.Tag)
	}

	ctx.WithSuggestion("Check that every package in the manifest resolves (try: " + engine + " build manually)")
	ctx.WithSuggestion("Ensure the base image is available (try: " + engine + " pull <base-image>)")
	ctx.WithSuggestion("Run with --verbose to see full build output")

	return ctx.Wrap(cause).BuildError()
}
