package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kadolab/kado-cli/internal/core/domain"
)

var historyJSON bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past recommendations",
	Long:  `List the recommendations saved from previous chat sessions, most recent first.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output history as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	reportWarnings(cmd)
	if historyStore == nil {
		return errors.New("recommendation history not available")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	recs, err := historyStore.List(ctx)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	if historyJSON {
		data, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(recs) == 0 {
		cmd.Println("No recommendations saved yet. Try 'kado chat'.")
		return nil
	}

	for _, rec := range recs {
		printRecommendation(cmd, rec)
	}
	return nil
}

func printRecommendation(cmd *cobra.Command, rec domain.SavedRecommendation) {
	cmd.Printf("%s  (session %s)\n", rec.Timestamp.Local().Format("2006-01-02 15:04"), rec.UserID)
	cmd.Printf("  Recipient: %s\n", orDash(rec.Description))
	cmd.Printf("  Interests: %s\n", orDash(rec.Interests))
	cmd.Printf("  Budget:    %s\n", orDash(rec.PriceRange))
	cmd.Printf("  Occasion:  %s\n", orDash(rec.Context))
	cmd.Printf("  Gift type: %s\n", orDash(rec.GiftType))
	cmd.Println()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
