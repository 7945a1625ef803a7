package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kadolab/kado-cli/internal/adapters/driven/ai"
	configfile "github.com/kadolab/kado-cli/internal/adapters/driven/config/file"
	"github.com/kadolab/kado-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the catalogue path, AI providers and other options.

Use subcommands to configure specific settings.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the chat model provider",
	Long:  `Configure the provider and model behind the gift assistant conversation.`,
	RunE:  runSettingsLLM,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure the embedding provider",
	Long:  `Configure the provider and model behind catalogue similarity retrieval.`,
	RunE:  runSettingsEmbedding,
}

var settingsCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Configure the catalogue source",
	RunE:  runSettingsCatalog,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsCatalogCmd)
	rootCmd.AddCommand(settingsCmd)
}

// allProviders lists the selectable AI providers.
func allProviders() []domain.AIProvider {
	return []domain.AIProvider{domain.AIProviderMistral, domain.AIProviderOpenAI}
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	reportWarnings(cmd)

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Catalogue]")
	cmd.Printf("  Path: %s\n", appSettings.Catalog.Path)
	cmd.Printf("  Candidates per recommendation: %d\n", appSettings.Catalog.TopK)
	cmd.Println()

	printProviderSettings(cmd, "LLM", appSettings.LLM.Provider, appSettings.LLM.Model,
		appSettings.LLM.APIKey, appSettings.LLM.IsConfigured())
	printProviderSettings(cmd, "Embedding", appSettings.Embedding.Provider, appSettings.Embedding.Model,
		appSettings.Embedding.APIKey, appSettings.Embedding.IsConfigured())

	if configStore != nil {
		cmd.Printf("Config file: %s\n", configStore.Path())
	}
	return nil
}

func printProviderSettings(cmd *cobra.Command, section string, provider domain.AIProvider, model, apiKey string, configured bool) {
	cmd.Printf("[%s]\n", section)
	cmd.Printf("  Provider: %s\n", provider.Description())
	if model != "" {
		cmd.Printf("  Model: %s\n", model)
	} else {
		cmd.Printf("  Model: (provider default)\n")
	}
	if apiKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(apiKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	status := "configured"
	if !configured {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not available")
	}

	reader := bufio.NewReader(os.Stdin)
	provider, model, apiKey, err := promptProvider(cmd, reader, "chat model")
	if err != nil {
		return err
	}

	settings := domain.LLMSettings{Provider: provider, Model: model, APIKey: apiKey}

	cmd.Print("Validating configuration... ")
	if err := ai.ValidateLLMConfig(settings); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	if err := saveProvider(configfile.KeyLLMProvider, configfile.KeyLLMModel, configfile.KeyLLMAPIKey, settings.Provider, settings.Model, settings.APIKey); err != nil {
		return fmt.Errorf("failed to save LLM settings: %w", err)
	}

	cmd.Printf("Chat model configured: %s\n", provider.Description())
	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not available")
	}

	reader := bufio.NewReader(os.Stdin)
	provider, model, apiKey, err := promptProvider(cmd, reader, "embedding")
	if err != nil {
		return err
	}

	settings := domain.EmbeddingSettings{Provider: provider, Model: model, APIKey: apiKey}

	cmd.Print("Validating configuration... ")
	if err := ai.ValidateEmbeddingConfig(settings); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("embedding configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	if err := saveProvider(configfile.KeyEmbeddingProvider, configfile.KeyEmbeddingModel, configfile.KeyEmbeddingAPIKey, settings.Provider, settings.Model, settings.APIKey); err != nil {
		return fmt.Errorf("failed to save embedding settings: %w", err)
	}

	cmd.Printf("Embedding provider configured: %s\n", provider.Description())
	return nil
}

func runSettingsCatalog(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not available")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Printf("Catalogue CSV path [%s]: ", appSettings.Catalog.Path)
	path := readLine(reader)
	if path == "" {
		path = appSettings.Catalog.Path
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("catalogue file not readable: %w", err)
	}

	cmd.Printf("Candidates per recommendation [%d]: ", appSettings.Catalog.TopK)
	topK := parseChoice(readLine(reader), 50, appSettings.Catalog.TopK)

	if err := configStore.Set(configfile.KeyCatalogPath, path); err != nil {
		return fmt.Errorf("failed to save catalogue path: %w", err)
	}
	if err := configStore.Set(configfile.KeyCatalogTopK, int64(topK)); err != nil {
		return fmt.Errorf("failed to save candidate count: %w", err)
	}

	cmd.Printf("Catalogue configured: %s (top %d)\n", path, topK)
	return nil
}

// promptProvider walks through provider, model and API key selection.
func promptProvider(cmd *cobra.Command, reader *bufio.Reader, what string) (domain.AIProvider, string, string, error) {
	cmd.Printf("Select %s provider\n", what)
	providers := allProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	provider := providers[idx-1]

	cmd.Print("Enter model name (empty for provider default): ")
	model := readLine(reader)

	cmd.Print("Enter API key: ")
	apiKey := readPassword()
	cmd.Println()
	if apiKey == "" {
		return "", "", "", errors.New("API key is required for this provider")
	}

	return provider, model, apiKey, nil
}

// saveProvider persists one provider block to the config store.
func saveProvider(providerKey, modelKey, apiKeyKey string, provider domain.AIProvider, model, apiKey string) error {
	if err := configStore.Set(providerKey, provider.String()); err != nil {
		return err
	}
	if err := configStore.Set(modelKey, model); err != nil {
		return err
	}
	return configStore.Set(apiKeyKey, apiKey)
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
