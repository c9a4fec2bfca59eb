package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var setProjectCmd = &cobra.Command{
	Use:   "set-project <name>",
	Short: "Select the project later commands operate on",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetProject,
}

var listProjectsCmd = &cobra.Command{
	Use:   "list-projects",
	Short: "List the configured projects",
	Args:  cobra.NoArgs,
	RunE:  runListProjects,
}

func init() {
	rootCmd.AddCommand(setProjectCmd)
	rootCmd.AddCommand(listProjectsCmd)
}

func runSetProject(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	name := args[0]
	if _, ok := cfg.Projects[name]; !ok {
		return fmt.Errorf("unknown project: %s", name)
	}

	store, err := stateStore(cfg)
	if err != nil {
		return err
	}
	if err := store.SetProject(name); err != nil {
		return fmt.Errorf("failed to persist project selection: %w", err)
	}
	fmt.Printf("Project set to: %s\n", name)
	return nil
}

func runListProjects(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(cfg.Projects) == 0 {
		fmt.Println("No projects configured.")
		return nil
	}

	selected := ""
	if store, err := stateStore(cfg); err == nil {
		selected, _ = store.Project()
	}

	names := make([]string, 0, len(cfg.Projects))
	for name := range cfg.Projects {
		names = append(names, name)
	}
	sort.Strings(names)

	green := color.New(color.FgGreen).SprintFunc()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tTPU\tZONE\tWORKDIR")
	_, _ = fmt.Fprintln(w, "----\t---\t----\t-------")
	for _, name := range names {
		p := cfg.Projects[name]
		display := green(name)
		if name == selected {
			display += " *"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", display, p.TPUName, p.TPUZone, p.WorkingDir)
	}
	_ = w.Flush()
	return nil
}
