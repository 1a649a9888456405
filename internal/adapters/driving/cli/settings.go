package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change scoring weights, selection limits, enrichment and HTTP
timeouts, and the outreach model. Settings live in config.toml in the
configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Validates and stores one setting.

Examples:
  prospector settings set scoring.icp_weight 0.5
  prospector settings set enrichment.workers 4`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Walks through every setting. Press Enter to keep the current value.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings := settingsService.Get()
	out := cmd.OutOrStdout()
	st := newStyles(out)

	fmt.Fprintln(out, st.Title.Render("Current Settings"))
	section := ""
	for _, key := range settingsService.Keys() {
		if s, _, ok := strings.Cut(key, "."); ok && s != section {
			section = s
			fmt.Fprintln(out, st.Subtitle.Render("["+section+"]"))
		}
		value, _ := settings.Value(key)
		fmt.Fprintf(out, "  %s = %s\n", key, value)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s set to %s\n", args[0], strings.TrimSpace(args[1]))
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Prospector Settings Wizard")
	fmt.Fprintln(out, "==========================")

	settings := settingsService.Get()
	for _, key := range settingsService.Keys() {
		current, _ := settings.Value(key)
		for {
			fmt.Fprintf(out, "%s [%s]: ", key, current)
			input, eof := readLine(reader)
			if input == "" {
				if eof {
					fmt.Fprintln(out)
					return nil
				}
				break
			}
			err := settingsService.Set(key, input)
			if err == nil {
				break
			}
			fmt.Fprintf(out, "  %v\n", err)
			if eof {
				return nil
			}
		}
	}

	fmt.Fprintln(out, "Settings saved.")
	return nil
}

// readLine reads one trimmed line and reports whether input is exhausted.
func readLine(reader *bufio.Reader) (string, bool) {
	line, err := reader.ReadString('\n')
	return strings.TrimSpace(line), errors.Is(err, io.EOF)
}
