package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scpRecursive bool

var scpCmd = &cobra.Command{
	Use:   "scp <local> <remote>",
	Short: "Copy a local path to every pod worker",
	Args:  cobra.ExactArgs(2),
	RunE:  runSCP,
}

func init() {
	rootCmd.AddCommand(scpCmd)
	scpCmd.Flags().BoolVarP(&scpRecursive, "recursive", "r", true, "copy directories recursively")
}

func runSCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	proj, _, name, err := currentProject(cfg)
	if err != nil {
		return err
	}
	fmt.Println("Using project:", name)

	results, err := proj.SCP(cmd.Context(), args[0], args[1], scpRecursive, runOpts())
	if err != nil {
		return fmt.Errorf("scp failed on one or more hosts: %w", err)
	}
	fmt.Printf("Copied %s to %d host(s).\n", args[0], len(results))
	return nil
}
