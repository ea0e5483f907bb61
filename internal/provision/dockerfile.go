// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"fmt"
	"strings"

	"appcrate-cli/internal/appfile"
	"appcrate-cli/internal/manifest"
)

// generateDockerfile creates the Dockerfile content for a snapshot.
//
// The manifest layer precedes the application layer so that rebuilding after
// an application-only change reuses the installed-dependency layer.
func (b *Builder) generateDockerfile(baseImage string, app *appfile.AppFile, m *manifest.Manifest, manifestName string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "FROM %s\n\n", baseImage)
	sb.WriteString("# appcrate snapshot layer\n\n")

	fmt.Fprintf(&sb, "WORKDIR %s\n\n", b.config.WorkDir)

	if m != nil && len(m.Requirements) > 0 {
		sb.WriteString("# Install declared dependencies\n")
		fmt.Fprintf(&sb, "COPY %s ./\n", manifestName)
		fmt.Fprintf(&sb, "RUN %s\n\n", app.Flavor.InstallCommand(manifestName))
	}

	sb.WriteString("# Application\n")
	fmt.Fprintf(&sb, "COPY %s ./\n\n", app.Name)

	fmt.Fprintf(&sb, "CMD [%q, %q]\n", app.Interpreter, app.Name)

	return sb.String()
}
