// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"appcrate-cli/internal/provision"

	"github.com/spf13/cobra"
)

var (
	inspectManifest    string
	inspectBaseImage   string
	inspectInterpreter string
	inspectDockerfile  bool

	// inspectCmd shows what a build would produce without building
	inspectCmd = &cobra.Command{
		Use:   "inspect <appfile>",
		Short: "Show the planned snapshot without building it",
		Long: `Show what 'appcrate build' would produce for an application file: the
resolved flavor and interpreter, the snapshot tag, the cache key, and the
generated Dockerfile. Nothing is built and no engine is required beyond
detection.`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}
)

func init() {
	inspectCmd.Flags().StringVarP(&inspectManifest, "manifest", "m", "", "dependency manifest file (default: flavor's manifest name next to the app)")
	inspectCmd.Flags().StringVar(&inspectBaseImage, "base-image", "", "base runtime image (default: flavor default)")
	inspectCmd.Flags().StringVar(&inspectInterpreter, "interpreter", "", "interpreter override (default: shebang, then file extension)")
	inspectCmd.Flags().BoolVar(&inspectDockerfile, "dockerfile", false, "print only the generated Dockerfile")
}

func runInspect(cmd *cobra.Command, args []string) error {
	app, err := resolveApp(args[0], inspectInterpreter)
	if err != nil {
		return err
	}

	m, err := resolveManifest(app, inspectManifest)
	if err != nil {
		return err
	}

	// Planning needs no engine; pass nil and never call Build.
	builder := newBuilder(nil, false, false)
	snapshot, err := builder.Plan(provision.BuildSpec{
		App:       app,
		Manifest:  m,
		BaseImage: resolveBaseImage(app, inspectBaseImage),
	})
	if err != nil {
		return err
	}

	if inspectDockerfile {
		fmt.Print(snapshot.Dockerfile)
		return nil
	}

	fmt.Println(TitleStyle.Render("Snapshot plan"))
	fmt.Println()
	fmt.Printf("%s: %s\n", CmdStyle.Render("app"), app.Path)
	fmt.Printf("%s: %s\n", CmdStyle.Render("flavor"), app.Flavor.Name)
	fmt.Printf("%s: %s\n", CmdStyle.Render("interpreter"), app.Interpreter)
	if m != nil && len(m.Requirements) > 0 {
		fmt.Printf("%s: %s (%d requirement(s))\n", CmdStyle.Render("manifest"), m.Path, len(m.Requirements))
	} else {
		fmt.Printf("%s: %s\n", CmdStyle.Render("manifest"), SubtitleStyle.Render("(none)"))
	}
	fmt.Printf("%s: %s\n", CmdStyle.Render("tag"), snapshot.ImageTag)
	fmt.Printf("%s: %s\n", CmdStyle.Render("cache key"), snapshot.CacheKey)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Dockerfile:"))
	fmt.Print(snapshot.Dockerfile)

	return nil
}
