// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"appcrate-cli/internal/container"
	"appcrate-cli/internal/issue"
	"appcrate-cli/internal/launch"
	"appcrate-cli/internal/provision"

	"github.com/spf13/cobra"
)

var (
	runManifest    string
	runBaseImage   string
	runInterpreter string
	runTag         string
	runName        string
	runEnvVars     []string
	runEnvFiles    []string
	runPorts       []string
	runVolumes     []string
	runInteractive bool

	// runCmd runs an already-built snapshot
	runCmd = &cobra.Command{
		Use:   "run <appfile>",
		Short: "Run an already-built snapshot",
		Long: `Run the snapshot built from an application file.

The snapshot must already exist for the current inputs (app file, manifest,
base image); use 'appcrate up' to build and run in one step. The container
runs the image's baked entry command with no arguments and is removed on
exit, so every run starts from the exact state captured at build time. The
application's exit code becomes appcrate's exit code, unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: runRun,
	}
)

func init() {
	addRunFlags(runCmd)
}

// addRunFlags registers the launch-related flags shared by run and up.
func addRunFlags(c *cobra.Command) {
	c.Flags().StringVarP(&runManifest, "manifest", "m", "", "dependency manifest file (default: flavor's manifest name next to the app)")
	c.Flags().StringVar(&runBaseImage, "base-image", "", "base runtime image (default: flavor default)")
	c.Flags().StringVar(&runInterpreter, "interpreter", "", "interpreter override (default: shebang, then file extension)")
	c.Flags().StringVarP(&runTag, "tag", "t", "", "snapshot tag override")
	c.Flags().StringVar(&runName, "name", "", "container name")
	c.Flags().StringArrayVarP(&runEnvVars, "env", "e", nil, "environment variable in KEY=VALUE form (repeatable)")
	c.Flags().StringArrayVar(&runEnvFiles, "env-file", nil, "dotenv file to load (repeatable; suffix '?' marks it optional)")
	c.Flags().StringArrayVarP(&runPorts, "port", "p", nil, "port mapping in host:container form (repeatable)")
	c.Flags().StringArrayVar(&runVolumes, "volume", nil, "volume mount in host:container form (repeatable)")
	c.Flags().BoolVarP(&runInteractive, "interactive", "i", false, "keep stdin open")
}

func runRun(cmd *cobra.Command, args []string) error {
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

	// Plan (never build) to recover the snapshot tag for the current inputs.
	builder := newBuilder(eng, false, false)
	snapshot, err := builder.Plan(provision.BuildSpec{
		App:       app,
		Manifest:  m,
		BaseImage: resolveBaseImage(app, runBaseImage),
		Tag:       runTag,
	})
	if err != nil {
		return err
	}

	exists, err := eng.ImageExists(cmd.Context(), snapshot.ImageTag)
	if err != nil {
		return fmt.Errorf("failed to check for snapshot %s: %w", snapshot.ImageTag, err)
	}
	if !exists {
		renderIssue(issue.SnapshotNotFoundId)
		return fmt.Errorf("snapshot %s not found (build it with 'appcrate build %s')", snapshot.ImageTag, args[0])
	}

	return launchSnapshot(cmd, eng, snapshot.ImageTag)
}

// launchSnapshot starts a snapshot with the launch flags and converts a
// non-zero application exit code into an ExitError for Execute to unwrap.
func launchSnapshot(cmd *cobra.Command, engine container.Engine, imageTag string) error {
	envVars := make(map[string]string, len(runEnvVars))
	for _, kv := range runEnvVars {
		k, v, ok := splitKeyValue(kv)
		if !ok {
			return fmt.Errorf("invalid environment variable %q: expected KEY=VALUE", kv)
		}
		envVars[k] = v
	}

	launcher := launch.NewLauncher(engine)
	launcher.SetLogger(newLogger("run"))
	result, err := launcher.Launch(cmd.Context(), launch.Spec{
		ImageTag:    imageTag,
		EnvFiles:    runEnvFiles,
		EnvVars:     envVars,
		Name:        runName,
		Ports:       runPorts,
		Volumes:     runVolumes,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Interactive: runInteractive,
	})
	if err != nil {
		return err
	}

	if !result.ExitCode.IsSuccess() {
		return &ExitError{Code: result.ExitCode, Err: result.Error}
	}

	return nil
}
