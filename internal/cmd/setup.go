package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Run the project's setup script on every pod worker",
	Long: `Sync the project's copy dirs, then run the configured setup script on
every worker. Typically used once after creating a pod to install the
environment (conda, deps, tmux) before the first launch.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	proj, pc, name, err := currentProject(cfg)
	if err != nil {
		return err
	}
	fmt.Println("Using project:", name)

	if pc.SetupScript == "" {
		return fmt.Errorf("project %s has no setup_script configured", name)
	}
	script, err := readScript(pc.SetupScript, "")
	if err != nil {
		return err
	}

	if _, err := proj.Copy(cmd.Context(), nil, runOpts()); err != nil {
		return fmt.Errorf("copy failed on one or more hosts: %w", err)
	}
	if _, err := proj.SSH(cmd.Context(), script, runOpts()); err != nil {
		return fmt.Errorf("setup failed on one or more hosts: %w", err)
	}
	fmt.Println("Setup complete.")
	return nil
}
