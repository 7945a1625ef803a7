// Package cli implements the kado command-line interface using cobra.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kadolab/kado-cli/internal/adapters/driven/ai"
	"github.com/kadolab/kado-cli/internal/adapters/driven/catalog/csvfile"
	configfile "github.com/kadolab/kado-cli/internal/adapters/driven/config/file"
	"github.com/kadolab/kado-cli/internal/adapters/driven/storage/sqlite"
	vectormemory "github.com/kadolab/kado-cli/internal/adapters/driven/vector/memory"
	"github.com/kadolab/kado-cli/internal/core/domain"
	"github.com/kadolab/kado-cli/internal/core/ports/driven"
	"github.com/kadolab/kado-cli/internal/core/services"
	"github.com/kadolab/kado-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// verbose enables debug logging on stderr.
var verbose bool

// Shared services, wired once in initServices before any command runs.
var (
	appSettings    domain.AppSettings
	configStore    driven.ConfigStore
	promptStore    driven.PromptStore
	catalogService *services.CatalogService
	recommender    *services.RecommenderService
	llmService     driven.LLMService
	historyStore   driven.RecommendationStore
	sqliteStore    *sqlite.Store

	// initWarnings collects non-fatal wiring problems so commands can
	// surface them instead of failing at startup.
	initWarnings []string
)

// rootCmd is the base command for the kado CLI.
var rootCmd = &cobra.Command{
	Use:   "kado",
	Short: "Conversational gift recommendation assistant",
	Long: `Kado helps you find a gift by chatting about the person you are
buying for. Once it knows who the gift is for and what they like, it
retrieves matching products from your catalogue and recommends the best
fits.

Start with 'kado chat' for an interactive session, or use
'kado chat --message' for a one-shot question.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute wires the services and runs the root command. The build version
// is injected by main.
func Execute(buildVersion string) error {
	if buildVersion != "" {
		version = buildVersion
	}

	initServices()
	defer closeServices()

	return rootCmd.Execute()
}

// initServices constructs the adapter stack. AI-backed services degrade to
// nil when unconfigured; commands that need them report the collected
// warnings.
func initServices() {
	// A .env file in the working directory supplies API keys during
	// development. Missing files are expected.
	_ = godotenv.Load()

	store, err := configfile.NewConfigStore("")
	if err != nil {
		initWarnings = append(initWarnings, "config store unavailable: "+err.Error())
		appSettings = domain.DefaultAppSettings()
	} else {
		configStore = store
		appSettings = configfile.LoadAppSettings(store)
	}

	prompts, err := configfile.NewPromptStore("")
	if err != nil {
		initWarnings = append(initWarnings, "prompt store unavailable: "+err.Error())
	} else {
		promptStore = prompts
	}

	embeddingService, err := ai.CreateAndValidateEmbeddingService(appSettings.Embedding)
	if err != nil {
		initWarnings = append(initWarnings, err.Error())
	}
	llm, err := ai.CreateAndValidateLLMService(appSettings.LLM)
	if err != nil {
		initWarnings = append(initWarnings, err.Error())
	}
	llmService = llm

	var source driven.CatalogSource
	csvSource, err := csvfile.NewSource(csvfile.Config{Path: appSettings.Catalog.Path})
	if err != nil {
		initWarnings = append(initWarnings, "catalog source unavailable: "+err.Error())
	} else {
		source = csvSource
	}
	catalogService = services.NewCatalogService(source, embeddingService, vectormemory.NewIndex())

	db, err := sqlite.NewStore("")
	if err != nil {
		initWarnings = append(initWarnings, "recommendation history unavailable: "+err.Error())
	} else {
		sqliteStore = db
		historyStore = db.RecommendationStore()
	}

	extractor := services.NewPreferenceExtractor(llmService, promptStore)
	recommender = services.NewRecommenderService(llmService, catalogService, extractor, historyStore, promptStore)
	if appSettings.Catalog.TopK > 0 {
		recommender.SetTopK(appSettings.Catalog.TopK)
	}
}

// closeServices releases adapter resources.
func closeServices() {
	if llmService != nil {
		_ = llmService.Close()
	}
	if sqliteStore != nil {
		_ = sqliteStore.Close()
	}
}

// reportWarnings prints collected wiring warnings once.
func reportWarnings(cmd *cobra.Command) {
	for _, warning := range initWarnings {
		cmd.PrintErrln("Warning: " + warning)
	}
}
