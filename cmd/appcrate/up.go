// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"appcrate-cli/internal/issue"
	"appcrate-cli/internal/provision"

	"github.com/spf13/cobra"
)

var (
	upForce   bool
	upNoCache bool

	// upCmd builds a snapshot (if needed) and runs it
	upCmd = &cobra.Command{
		Use:   "up <appfile>",
		Short: "Build the snapshot if needed, then run it",
		Long: `Build the snapshot for an application file if it does not exist yet, then
run it.

This is 'appcrate build' followed by 'appcrate run': an existing snapshot
with identical inputs is reused without rebuilding, and the application's
exit code becomes appcrate's exit code.`,
		Args: cobra.ExactArgs(1),
		RunE: runUp,
	}
)

func init() {
	addRunFlags(upCmd)
	upCmd.Flags().BoolVarP(&upForce, "force", "f", false, "rebuild even when a snapshot with identical inputs exists")
	upCmd.Flags().BoolVar(&upNoCache, "no-cache", false, "disable the engine's layer cache")
}

func runUp(cmd *cobra.Command, args []string) error {
	eng, err := resolveEngine()
	if err != nil {
		return err
	}

	app, err := resolveApp(args[0], runInterpreter)
	if err != nil {
		return err
	}

	m, err := resolveManifest(app, runManifest)
	if err != nil {
		return err
	}

	builder := newBuilder(eng, upForce, upNoCache)
	snapshot, err := builder.Build(cmd.Context(), provision.BuildSpec{
		App:       app,
		Manifest:  m,
		BaseImage: resolveBaseImage(app, runBaseImage),
		Tag:       runTag,
	})
	if err != nil {
		renderIssue(issue.BuildFailedId)
		return err
	}

	if verbose {
		if snapshot.Reused {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", VerboseStyle.Render("reusing snapshot "+snapshot.ImageTag))
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", VerboseStyle.Render("built snapshot "+snapshot.ImageTag))
		}
	}

	return launchSnapshot(cmd, eng, snapshot.ImageTag)
}
