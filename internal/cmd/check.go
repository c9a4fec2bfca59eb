package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sea-Snell/tpu-pod-launcher/internal/project"
	"github.com/Sea-Snell/tpu-pod-launcher/internal/shell"
)

var checkSession string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Show the session output on every pod worker",
	Long: `Capture the visible tmux pane contents of the launch session on every
worker and print them host by host. check never fails just because the
launched command is still starting up; whatever is on screen is shown.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

var checkForeverCmd = &cobra.Command{
	Use:   "check-forever",
	Short: "Show the session output on every worker, repeatedly",
	Args:  cobra.NoArgs,
	RunE:  runCheckForever,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(checkForeverCmd)
	checkCmd.Flags().StringVar(&checkSession, "session", project.DefaultSession, "tmux session name to inspect")
	checkForeverCmd.Flags().StringVar(&checkSession, "session", project.DefaultSession, "tmux session name to inspect")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	proj, _, name, err := currentProject(cfg)
	if err != nil {
		return err
	}
	fmt.Println("Using project:", name)

	// Capture output is the point here, not command tracing.
	_, err = proj.Check(cmd.Context(), checkSession, false, shell.Options{})
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}
	return nil
}

func runCheckForever(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	proj, _, name, err := currentProject(cfg)
	if err != nil {
		return err
	}
	fmt.Println("Using project:", name)

	for {
		// Transient failures (a worker rebooting, the session not up yet)
		// just show up in that host's output; keep polling.
		_, _ = proj.Check(cmd.Context(), checkSession, false, shell.Options{})
		select {
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		case <-time.After(time.Second):
		}
	}
}
