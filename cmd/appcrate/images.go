// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"appcrate-cli/internal/provision"

	"github.com/spf13/cobra"
)

var (
	cleanApp   string
	cleanForce bool

	// imagesCmd lists snapshot images managed by appcrate
	imagesCmd = &cobra.Command{
		Use:   "images",
		Short: "List snapshot images managed by appcrate",
		Long: `List every snapshot image appcrate has built on this machine. Only images
carrying the appcrate management label are shown; other images are never
touched.`,
		Args: cobra.NoArgs,
		RunE: runImages,
	}

	// cleanCmd removes snapshot images managed by appcrate
	cleanCmd = &cobra.Command{
		Use:   "clean",
		Short: "Remove snapshot images managed by appcrate",
		Long: `Remove snapshot images appcrate has built on this machine. By default all
managed snapshots are removed; use --app to remove only the snapshots of one
application.`,
		Args: cobra.NoArgs,
		RunE: runClean,
	}
)

func init() {
	cleanCmd.Flags().StringVar(&cleanApp, "app", "", "only remove snapshots of this application name")
	cleanCmd.Flags().BoolVarP(&cleanForce, "force", "f", false, "force removal even when containers reference the image")
}

func runImages(cmd *cobra.Command, args []string) error {
	eng, err := resolveEngine()
	if err != nil {
		return err
	}

	images, err := eng.ListImages(cmd.Context(), provision.LabelManaged+"=true")
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if len(images) == 0 {
		fmt.Println(SubtitleStyle.Render("No snapshots found."))
		return nil
	}

	fmt.Println(TitleStyle.Render("Snapshots"))
	for _, img := range images {
		fmt.Printf("  %s\n", CmdStyle.Render(img))
	}

	return nil
}

func runClean(cmd *cobra.Command, args []string) error {
	eng, err := resolveEngine()
	if err != nil {
		return err
	}

	filter := provision.LabelManaged + "=true"
	if cleanApp != "" {
		filter = provision.LabelApp + "=" + cleanApp
	}

	images, err := eng.ListImages(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if len(images) == 0 {
		fmt.Println(SubtitleStyle.Render("Nothing to remove."))
		return nil
	}

	removed := 0
	for _, img := range images {
		if err := eng.RemoveImage(cmd.Context(), img, cleanForce); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s failed to remove %s: %v\n", WarningStyle.Render("!"), img, err)
			continue
		}
		fmt.Printf("%s Removed %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(img))
		removed++
	}

	if removed < len(images) {
		return fmt.Errorf("removed %d of %d snapshot(s)", removed, len(images))
	}

	return nil
}
