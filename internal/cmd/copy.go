package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Sync the project's copy dirs to every pod worker",
	Long: `Sync each configured (local, remote) directory pair to every worker
with rsync, applying the project's exclude patterns.`,
	Args: cobra.NoArgs,
	RunE: runCopy,
}

func init() {
	rootCmd.AddCommand(copyCmd)
}

func runCopy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	proj, _, name, err := currentProject(cfg)
	if err != nil {
		return err
	}
	fmt.Println("Using project:", name)

	results, err := proj.Copy(cmd.Context(), nil, runOpts())
	if err != nil {
		return fmt.Errorf("copy failed on one or more hosts: %w", err)
	}
	fmt.Printf("Synced %d copy dir(s).\n", len(results))
	return nil
}
