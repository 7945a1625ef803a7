package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var catalogSearchLimit int

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the gift catalogue",
	Long:  `Inspect the configured gift catalogue: categories, price range and similarity search.`,
}

var catalogCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List catalogue categories",
	RunE:  runCatalogCategories,
}

var catalogPriceRangeCmd = &cobra.Command{
	Use:   "price-range",
	Short: "Show the catalogue price range",
	RunE:  runCatalogPriceRange,
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalogue by similarity",
	Long: `Embeds the query and retrieves the closest products from the catalogue.
Requires a configured embedding provider; the index is built on demand.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogSearch,
}

func init() {
	catalogSearchCmd.Flags().IntVarP(&catalogSearchLimit, "limit", "n", 4, "maximum number of results")
	catalogCmd.AddCommand(catalogCategoriesCmd)
	catalogCmd.AddCommand(catalogPriceRangeCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	rootCmd.AddCommand(catalogCmd)
}

// loadCatalog loads the catalogue once for a catalogue command.
func loadCatalog(cmd *cobra.Command) (context.Context, error) {
	reportWarnings(cmd)
	if catalogService == nil {
		return nil, errors.New("catalog service not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := catalogService.Load(ctx); err != nil {
		return nil, fmt.Errorf("load catalogue: %w", err)
	}
	return ctx, nil
}

func runCatalogCategories(cmd *cobra.Command, _ []string) error {
	if _, err := loadCatalog(cmd); err != nil {
		return err
	}

	categories, err := catalogService.Categories()
	if err != nil {
		return fmt.Errorf("read categories: %w", err)
	}

	cmd.Println("Main categories:")
	for _, name := range categories.Main {
		cmd.Printf("  - %s\n", name)
	}
	cmd.Println()
	cmd.Println("Gift categories:")
	for _, name := range categories.Gift {
		cmd.Printf("  - %s\n", name)
	}
	return nil
}

func runCatalogPriceRange(cmd *cobra.Command, _ []string) error {
	if _, err := loadCatalog(cmd); err != nil {
		return err
	}

	priceRange, err := catalogService.PriceRange()
	if err != nil {
		return fmt.Errorf("read price range: %w", err)
	}

	cmd.Printf("Prices run from %.2f to %.2f across %d products.\n",
		priceRange.Min, priceRange.Max, len(catalogService.Items()))
	return nil
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	ctx, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	if err := catalogService.BuildIndex(ctx); err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	candidates, err := catalogService.Search(ctx, args[0], catalogSearchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(candidates) == 0 {
		cmd.Println("No matching products found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, candidate := range candidates {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, candidate.Name, candidate.Similarity)
		cmd.Printf("      %s - Price: %.2f - Rating: %.1f/5\n",
			candidate.Category, candidate.Price, candidate.Rating)
	}
	return nil
}
