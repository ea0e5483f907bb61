// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"appcrate-cli/internal/appfile"
	"appcrate-cli/internal/container"
	"appcrate-cli/internal/issue"

	"github.com/spf13/cobra"
)

// doctorCmd checks the local environment for a usable container engine.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the local environment",
	Long: `Check the local environment: which container engines are installed and
responding, and which runtime flavors appcrate can build for.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println(TitleStyle.Render("Environment check"))
	fmt.Println()

	anyAvailable := false
	for _, engineType := range []container.EngineType{container.EngineTypePodman, container.EngineTypeDocker} {
		eng, err := container.NewEngine(engineType)
		if err != nil || !eng.Available() {
			fmt.Printf("%s %s: %s\n", ErrorStyle.Render("✗"), engineType, SubtitleStyle.Render("not available"))
			continue
		}
		// NewEngine may have fallen back to the other engine; only count a
		// direct hit for this row.
		if eng.Name() != string(engineType) {
			fmt.Printf("%s %s: %s\n", ErrorStyle.Render("✗"), engineType, SubtitleStyle.Render("not available"))
			continue
		}
		version, verr := eng.Version(cmd.Context())
		if verr != nil {
			version = "unknown version"
		}
		fmt.Printf("%s %s: %s\n", SuccessStyle.Render("✓"), eng.Name(), version)
		anyAvailable = true
	}

	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Supported flavors:"))
	for _, name := range appfile.FlavorNames() {
		flavor, err := appfile.FlavorByName(name)
		if err != nil {
			continue
		}
		fmt.Printf("  %s (%s, base %s)\n", CmdStyle.Render(flavor.Name), flavor.Interpreter, flavor.DefaultBaseImage)
	}

	if !anyAvailable {
		fmt.Println()
		renderIssue(issue.EngineNotFoundId)
		return fmt.Errorf("no container engine available")
	}

	return nil
}
