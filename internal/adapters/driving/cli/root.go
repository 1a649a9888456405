// Package cli provides the cobra command tree for prospector.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/prospector/internal/core/ports/driving"
	"github.com/custodia-labs/prospector/internal/logger"
)

// version is overridden at build time via SetVersion.
var version = "dev"

// Injected services. Commands check for nil before use.
var (
	discoveryService  driving.DiscoveryService
	selectorService   driving.SourceSelector
	enrichmentService driving.EnrichmentService
	sourceService     driving.SourceService
	settingsService   driving.SettingsService
)

// Options carries the global flags into the bootstrap.
type Options struct {
	ConfigDir string
	EnvFile   string
	Verbose   bool
}

// Services is the set of driving ports the commands depend on.
type Services struct {
	Discovery  driving.DiscoveryService
	Selector   driving.SourceSelector
	Enrichment driving.EnrichmentService
	Source     driving.SourceService
	Settings   driving.SettingsService
}

// Bootstrap builds the services once the global flags are parsed.
type Bootstrap func(opts Options) (*Services, error)

var (
	bootstrap  Bootstrap
	globalOpts Options
)

// skipBootstrap marks commands that need no services.
const skipBootstrap = "skip-bootstrap"

var rootCmd = &cobra.Command{
	Use:   "prospector",
	Short: "Find sales prospects across many platforms",
	Long: `Prospector turns an ideal customer profile (ICP) into a ranked list of
prospects. It picks the platforms most likely to hold matching people,
searches them concurrently, merges duplicates and scores every lead.

Credentials are read from the environment or a .env file:
  GITHUB_TOKEN, TWITTER_BEARER_TOKEN,
  REDDIT_CLIENT_ID, REDDIT_CLIENT_SECRET, REDDIT_USER_AGENT,
  GOOGLE_CSE_API_KEY, GOOGLE_CSE_ID, OPENAI_API_KEY`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&globalOpts.Verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&globalOpts.ConfigDir, "config-dir", "", "configuration directory (default ~/.prospector)")
	flags.StringVar(&globalOpts.EnvFile, "env-file", "", "dotenv file with platform credentials")
}

// SetBootstrap registers the function that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(globalOpts.Verbose)

	if cmd.Annotations[skipBootstrap] == "true" || bootstrap == nil || servicesInjected() {
		return nil
	}

	svc, err := bootstrap(globalOpts)
	if err != nil {
		return err
	}
	inject(svc)
	return nil
}

func servicesInjected() bool {
	return discoveryService != nil || selectorService != nil || enrichmentService != nil ||
		sourceService != nil || settingsService != nil
}

func inject(svc *Services) {
	if svc == nil {
		return
	}
	discoveryService = svc.Discovery
	selectorService = svc.Selector
	enrichmentService = svc.Enrichment
	sourceService = svc.Source
	settingsService = svc.Settings
}
