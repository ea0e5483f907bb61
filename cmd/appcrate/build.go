// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"appcrate-cli/internal/issue"
	"appcrate-cli/internal/provision"

	"github.com/spf13/cobra"
)

var (
	buildManifest    string
	buildBaseImage   string
	buildInterpreter string
	buildTag         string
	buildForce       bool
	buildNoCache     bool
	buildLabels      []string

	// buildCmd builds a snapshot image from an app file and its manifest
	buildCmd = &cobra.Command{
		Use:   "build <appfile>",
		Short: "Build a snapshot image from an application file",
		Long: `Build an immutable snapshot image from a single application file and its
dependency manifest.

The build is deterministic: the snapshot tag encodes a content hash over the
base image, the interpreter, the manifest, and the app file. Rebuilding with
unchanged inputs reuses the existing image; changing any input produces a new
snapshot. A failed dependency install aborts the build and no snapshot is
produced.`,
		Args: cobra.ExactArgs(1),
		RunE: runBuild,
	}
)

func init() {
	buildCmd.Flags().StringVarP(&buildManifest, "manifest", "m", "", "dependency manifest file (default: flavor's manifest name next to the app)")
	buildCmd.Flags().StringVar(&buildBaseImage, "base-image", "", "base runtime image (default: flavor default)")
	buildCmd.Flags().StringVar(&buildInterpreter, "interpreter", "", "interpreter override (default: shebang, then file extension)")
	buildCmd.Flags().StringVarP(&buildTag, "tag", "t", "", "snapshot tag override")
	buildCmd.Flags().BoolVarP(&buildForce, "force", "f", false, "rebuild even when a snapshot with identical inputs exists")
	buildCmd.Flags().BoolVar(&buildNoCache, "no-cache", false, "disable the engine's layer cache")
	buildCmd.Flags().StringArrayVar(&buildLabels, "label", nil, "extra image label in key=value form (repeatable)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	eng, err := resolveEngine()
	if err != nil {
		return err
	}

	app, err := resolveApp(args[0], buildInterpreter)
	if err != nil {
		return err
	}

	m, err := resolveManifest(app, buildManifest)
	if err != nil {
		return err
	}

	builder := newBuilder(eng, buildForce, buildNoCache)
	if err := applyExtraLabels(builder, buildLabels); err != nil {
		return err
	}

	snapshot, err := builder.Build(cmd.Context(), provision.BuildSpec{
		App:       app,
		Manifest:  m,
		BaseImage: resolveBaseImage(app, buildBaseImage),
		Tag:       buildTag,
	})
	if err != nil {
		renderIssue(issue.BuildFailedId)
		return err
	}

	if snapshot.Reused {
		fmt.Printf("%s Snapshot up to date: %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(snapshot.ImageTag))
	} else {
		fmt.Printf("%s Built snapshot: %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(snapshot.ImageTag))
	}
	if verbose {
		fmt.Printf("%s %s\n", VerboseStyle.Render("cache key:"), VerboseStyle.Render(snapshot.CacheKey))
	}

	return nil
}

// applyExtraLabels parses repeated --label key=value flags into the builder
// config.
func applyExtraLabels(builder *provision.Builder, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	parsed := make(map[string]string, len(labels))
	for _, l := range labels {
		k, v, ok := splitKeyValue(l)
		if !ok {
			return fmt.Errorf("invalid label %q: expected key=value", l)
		}
		parsed[k] = v
	}
	builder.Config().Apply(provision.WithLabels(parsed))
	return nil
}
