package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/prospector/internal/core/domain"
)

var (
	selectICPPath string
	selectJSON    bool
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Preview the sources chosen for an ICP",
	Long: `Ranks platforms for the ICP in --icp and shows the search strategy each
would run, without calling any platform.`,
	Args: cobra.NoArgs,
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().StringVarP(&selectICPPath, "icp", "i", "", "ICP JSON file (- for stdin)")
	selectCmd.Flags().BoolVar(&selectJSON, "json", false, "print the plan as JSON")
	rootCmd.AddCommand(selectCmd)
}

// plannedSource is one ranked platform with its strategy.
type plannedSource struct {
	Source   domain.SourceConfig   `json:"source"`
	Strategy domain.SearchStrategy `json:"strategy"`
}

func runSelect(cmd *cobra.Command, _ []string) error {
	if selectorService == nil {
		return errors.New("source selector not configured")
	}

	icp, err := readICP(cmd, selectICPPath)
	if err != nil {
		return err
	}

	plan := planSources(icp)

	if selectJSON {
		return printJSON(cmd, plan)
	}

	out := cmd.OutOrStdout()
	st := newStyles(out)
	if len(plan) == 0 {
		fmt.Fprintln(out, st.Muted.Render("No enabled sources match this ICP."))
		return nil
	}

	rows := make([][]string, len(plan))
	for i, p := range plan {
		query := ""
		if len(p.Strategy.PrimaryQueries) > 0 {
			query = p.Strategy.PrimaryQueries[0]
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			string(p.Source.Platform),
			strconv.Itoa(p.Source.Priority),
			strconv.Itoa(p.Source.MaxResults),
			query,
		}
	}
	fmt.Fprintln(out, st.table([]string{"#", "Platform", "Priority", "Max results", "First query"}, rows))
	return nil
}

func planSources(icp domain.ICP) []plannedSource {
	configs := selectorService.AnalyzeICP(icp)
	platforms := make([]domain.Platform, len(configs))
	for i, cfg := range configs {
		platforms[i] = cfg.Platform
	}
	strategies := selectorService.Strategies(platforms, icp)

	plan := make([]plannedSource, len(configs))
	for i, cfg := range configs {
		plan[i] = plannedSource{Source: cfg, Strategy: strategies[cfg.Platform]}
	}
	return plan
}
