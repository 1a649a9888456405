package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/logger"
)

var (
	discoverICPPath string
	discoverJSON    bool
	discoverLimit   int
	discoverEnrich  bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover prospects matching an ICP",
	Long: `Runs one multi-source discovery for the ideal customer profile in --icp.

The ICP is a JSON object, for example:
  {
    "target_roles": ["CTO", "VP Engineering"],
    "industries": ["saas"],
    "company_size": "startup",
    "pain_points": ["slow deploys"],
    "technologies": ["kubernetes"]
  }

Use --icp - to read it from stdin. With --enrich, each prospect's page is
scraped and, when OPENAI_API_KEY is set, personalised outreach is drafted.`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().StringVarP(&discoverICPPath, "icp", "i", "", "ICP JSON file (- for stdin)")
	discoverCmd.Flags().BoolVar(&discoverJSON, "json", false, "print the result as JSON")
	discoverCmd.Flags().IntVarP(&discoverLimit, "limit", "n", 25, "maximum prospects to keep (0 = all)")
	discoverCmd.Flags().BoolVar(&discoverEnrich, "enrich", false, "scrape prospect pages and draft outreach")
	rootCmd.AddCommand(discoverCmd)
}

// discoverOutput is the --json document.
type discoverOutput struct {
	Run        *domain.MultiSourceResult `json:"run"`
	Enrichment *domain.EnrichmentResult  `json:"enrichment,omitempty"`
}

func runDiscover(cmd *cobra.Command, _ []string) error {
	if discoveryService == nil {
		return errors.New("discovery service not configured")
	}
	if discoverEnrich && enrichmentService == nil {
		return errors.New("enrichment service not configured")
	}

	icp, err := readICP(cmd, discoverICPPath)
	if err != nil {
		return err
	}

	result, err := discoveryService.Discover(cmd.Context(), icp)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}
	if discoverLimit > 0 && len(result.Prospects) > discoverLimit {
		result.Prospects = result.Prospects[:discoverLimit]
	}

	var enrichment *domain.EnrichmentResult
	if discoverEnrich && len(result.Prospects) > 0 {
		enrichment, err = enrichmentService.Enrich(cmd.Context(), result.Prospects)
		if err != nil {
			if enrichment == nil {
				return fmt.Errorf("enrichment failed: %w", err)
			}
			logger.Warn("Outreach not generated: %v", err)
		}
	}

	if discoverJSON {
		return printJSON(cmd, discoverOutput{Run: result, Enrichment: enrichment})
	}

	out := cmd.OutOrStdout()
	st := newStyles(out)
	printRunSummary(out, st, result)
	if len(result.Prospects) == 0 {
		fmt.Fprintln(out, st.Muted.Render("No prospects found."))
		return nil
	}
	fmt.Fprintln(out, prospectTable(st, result.Prospects))
	if enrichment != nil {
		printEnrichment(out, st, enrichment)
	}
	return nil
}

// readICP loads an ICP from path, or from stdin when path is "-".
func readICP(cmd *cobra.Command, path string) (domain.ICP, error) {
	if path == "" {
		return nil, errors.New("--icp is required")
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read ICP: %w", err)
	}

	icp, err := domain.ParseICP(data)
	if err != nil {
		return nil, fmt.Errorf("parse ICP: %w", err)
	}
	return icp, nil
}

func printRunSummary(out io.Writer, st *styles, r *domain.MultiSourceResult) {
	fmt.Fprintln(out, st.Title.Render("Run "+r.RunID))
	fmt.Fprintf(out, "  %s %s\n", st.Success.Render("succeeded:"), platformList(r.SuccessfulSources))
	if len(r.FailedSources) > 0 {
		fmt.Fprintf(out, "  %s %s\n", st.Error.Render("failed:"), platformList(r.FailedSources))
	}
	if len(r.SkippedSources) > 0 {
		fmt.Fprintf(out, "  %s %s\n", st.Muted.Render("skipped:"), platformList(r.SkippedSources))
	}
	fmt.Fprintf(out, "  %d prospects in %.1fs\n\n", len(r.Prospects), r.TotalExecutionTime)
}

func platformList(platforms []domain.Platform) string {
	if len(platforms) == 0 {
		return "none"
	}
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

func prospectTable(st *styles, prospects []domain.Prospect) string {
	rows := make([][]string, len(prospects))
	for i := range prospects {
		p := &prospects[i]
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			p.Name,
			p.Title,
			p.Company,
			string(p.SourcePlatform),
			formatScore(p.RelevanceScore),
			p.SourceURL,
		}
	}
	return st.table([]string{"#", "Name", "Title", "Company", "Platform", "Score", "URL"}, rows)
}

func printEnrichment(out io.Writer, st *styles, r *domain.EnrichmentResult) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, st.Title.Render(fmt.Sprintf("Enriched %d prospects", len(r.Enriched))))
	for _, url := range r.Excluded {
		fmt.Fprintln(out, st.Muted.Render("  excluded: "+url))
	}

	for _, o := range r.Outreach {
		fmt.Fprintln(out)
		fmt.Fprintln(out, st.Subtitle.Render("To: "+o.ProspectName))
		if o.Subject != "" {
			fmt.Fprintf(out, "Subject: %s\n", o.Subject)
		}
		fmt.Fprintln(out, o.Message)
	}
}
