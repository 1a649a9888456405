package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var sourcesJSON bool

var (
	setPriority   int
	setMaxResults int
	setDelay      float64
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage per-platform source configuration",
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List source configurations",
	Args:  cobra.NoArgs,
	RunE:  runSourcesList,
}

var sourcesEnableCmd = &cobra.Command{
	Use:   "enable [platform]",
	Short: "Enable a platform",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesEnable,
}

var sourcesDisableCmd = &cobra.Command{
	Use:   "disable [platform]",
	Short: "Disable a platform",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesDisable,
}

var sourcesSetCmd = &cobra.Command{
	Use:   "set [platform]",
	Short: "Update a platform's configuration",
	Long: `Updates the fields given as flags and leaves the rest unchanged.

Examples:
  prospector sources set github --priority 9
  prospector sources set reddit --max-results 100 --delay 2`,
	Args: cobra.ExactArgs(1),
	RunE: runSourcesSet,
}

func init() {
	sourcesListCmd.Flags().BoolVar(&sourcesJSON, "json", false, "print as JSON")

	sourcesSetCmd.Flags().IntVar(&setPriority, "priority", 0, "priority in [1,10]")
	sourcesSetCmd.Flags().IntVar(&setMaxResults, "max-results", 0, "maximum results per query")
	sourcesSetCmd.Flags().Float64Var(&setDelay, "delay", 0, "seconds between requests")

	sourcesCmd.AddCommand(sourcesListCmd, sourcesEnableCmd, sourcesDisableCmd, sourcesSetCmd)
	rootCmd.AddCommand(sourcesCmd)
}

func runSourcesList(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	configs, err := sourceService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	if sourcesJSON {
		return printJSON(cmd, configs)
	}

	out := cmd.OutOrStdout()
	st := newStyles(out)
	if len(configs) == 0 {
		fmt.Fprintln(out, st.Muted.Render("No sources configured."))
		return nil
	}

	rows := make([][]string, len(configs))
	for i, cfg := range configs {
		status := "disabled"
		if cfg.Enabled {
			status = "enabled"
		}
		rows[i] = []string{
			string(cfg.Platform),
			status,
			strconv.Itoa(cfg.Priority),
			strconv.Itoa(cfg.MaxResults),
			strconv.FormatFloat(cfg.RateLimitDelay, 'f', -1, 64),
		}
	}
	fmt.Fprintln(out, st.table([]string{"Platform", "Status", "Priority", "Max results", "Delay (s)"}, rows))
	return nil
}

func runSourcesEnable(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}
	if err := sourceService.Enable(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to enable %s: %w", args[0], err)
	}
	cmd.Printf("Enabled %s\n", args[0])
	return nil
}

func runSourcesDisable(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}
	if err := sourceService.Disable(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to disable %s: %w", args[0], err)
	}
	cmd.Printf("Disabled %s\n", args[0])
	return nil
}

func runSourcesSet(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	flags := cmd.Flags()
	if !flags.Changed("priority") && !flags.Changed("max-results") && !flags.Changed("delay") {
		return errors.New("nothing to update: pass --priority, --max-results or --delay")
	}

	cfg, err := sourceService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", args[0], err)
	}

	if flags.Changed("priority") {
		cfg.Priority = setPriority
	}
	if flags.Changed("max-results") {
		cfg.MaxResults = setMaxResults
	}
	if flags.Changed("delay") {
		cfg.RateLimitDelay = setDelay
	}

	if err := sourceService.Update(cmd.Context(), *cfg); err != nil {
		return fmt.Errorf("failed to update %s: %w", args[0], err)
	}
	cmd.Printf("Updated %s\n", cfg.Platform)
	return nil
}
