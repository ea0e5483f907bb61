// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"appcrate-cli/internal/config"

	"github.com/spf13/cobra"
)

// configCmd is the `appcrate config` command tree.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage appcrate configuration",
	Long: `Manage appcrate configuration.

Configuration is stored in:
  - Linux: ~/.config/appcrate/config.toml
  - macOS: ~/Library/Application Support/appcrate/config.toml
  - Windows: %APPDATA%\appcrate\config.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := config.GenerateTOML(loadedCfg)
			if err != nil {
				return err
			}
			fmt.Print(content)
			return nil
		},
	})
}

func showConfig() error {
	headerStyle := TitleStyle
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Println(headerStyle.Render("Current Configuration"))
	fmt.Println()

	cfgDir, dirErr := config.ConfigDir()
	if dirErr == nil {
		cfgPath := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
		if _, err := os.Stat(cfgPath); err == nil {
			fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), cfgPath)
		} else {
			fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
		}
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s: %s\n", keyStyle.Render("container_engine"), valueStyle.Render(loadedCfg.ContainerEngine.String()))
	fmt.Printf("%s: %s\n", keyStyle.Render("build.tag_prefix"), valueStyle.Render(loadedCfg.Build.TagPrefix.String()))
	if loadedCfg.Build.WorkDir != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("build.work_dir"), valueStyle.Render(loadedCfg.Build.WorkDir.String()))
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("build.work_dir"), SubtitleStyle.Render("(default)"))
	}
	fmt.Printf("%s: %v\n", keyStyle.Render("build.no_cache"), loadedCfg.Build.NoCache)
	for flavor, image := range loadedCfg.Build.BaseImages {
		fmt.Printf("%s: %s\n", keyStyle.Render("build.base_images."+flavor), valueStyle.Render(image))
	}
	fmt.Printf("%s: %s\n", keyStyle.Render("ui.color_scheme"), valueStyle.Render(loadedCfg.UI.ColorScheme.String()))
	fmt.Printf("%s: %v\n", keyStyle.Render("ui.verbose"), loadedCfg.UI.Verbose)

	return nil
}

func initConfigFile() error {
	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	cfgPath := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
	fmt.Printf("%s Config file ready at %s\n", SuccessStyle.Render("✓"), cfgPath)

	return nil
}

func showConfigPath() error {
	if cfgFile != "" {
		fmt.Println(cfgFile)
		return nil
	}

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Println(filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}
