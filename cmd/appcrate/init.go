// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"appcrate-cli/internal/appfile"

	"github.com/spf13/cobra"
)

var (
	initForce  bool
	initFlavor string

	// initCmd scaffolds a dependency manifest next to an app file
	initCmd = &cobra.Command{
		Use:   "init <appfile>",
		Short: "Create a dependency manifest next to an application file",
		Long: `Create an empty dependency manifest next to an application file, named by
the app's flavor convention (requirements.txt for Python, packages.txt for
Node, gems.txt for Ruby).

Add one package specifier per line, e.g. "python-telegram-bot==21.0".`,
		Args: cobra.ExactArgs(1),
		RunE: runInitManifest,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing manifest")
	initCmd.Flags().StringVar(&initFlavor, "flavor", "", "flavor override (default: resolved from the app file)")
}

func runInitManifest(cmd *cobra.Command, args []string) error {
	var flavor appfile.Flavor
	if initFlavor != "" {
		f, err := appfile.FlavorByName(initFlavor)
		if err != nil {
			return err
		}
		flavor = f
	} else {
		app, err := resolveApp(args[0], "")
		if err != nil {
			return err
		}
		flavor = app.Flavor
	}

	if flavor.ManifestName == "" {
		return fmt.Errorf("flavor %q has no dependency manifest (nothing to scaffold)", flavor.Name)
	}

	manifestPath := filepath.Join(filepath.Dir(args[0]), flavor.ManifestName)

	if _, err := os.Stat(manifestPath); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", manifestPath)
	}

	content := fmt.Sprintf("# Dependencies for %s, one per line.\n# Pin versions for reproducible snapshots, e.g. somepackage==1.2.3\n", filepath.Base(args[0]))
	if err := os.WriteFile(manifestPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(manifestPath)
	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Printf("  1. List your dependencies in %s\n", flavor.ManifestName)
	fmt.Printf("  2. Run 'appcrate build %s' to build the snapshot\n", args[0])
	fmt.Printf("  3. Run 'appcrate run %s' to start it\n", args[0])

	return nil
}
