package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kadolab/kado-cli/internal/adapters/driving/tui"
	"github.com/kadolab/kado-cli/internal/core/domain"
	"github.com/kadolab/kado-cli/internal/core/ports/driven"
	"github.com/kadolab/kado-cli/internal/logger"
)

// fallbackSystemPrompt is used when the prompt store cannot provide the
// chat system prompt.
const fallbackSystemPrompt = `You are Kado, a friendly gift recommendation assistant. Ask short,
natural questions to learn who the gift is for, their interests, the
occasion and the budget. Ask one question at a time.`

var (
	chatMessage  string
	chatPriceMin float64
	chatPriceMax float64
	chatGiftType string
	chatNoIndex  bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the gift assistant",
	Long: `Start an interactive chat session with the gift assistant.

The assistant asks about the gift recipient until it knows enough, then
retrieves matching products from the catalogue and recommends the best
fits. Use --message for a single non-interactive turn.

In the chat:
  /keep <n>  - save the n-th retrieved product to your wishlist
  /wishlist  - show the products you kept this session
  /quit      - leave the chat`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "send a single message and print the reply")
	chatCmd.Flags().Float64Var(&chatPriceMin, "price-min", 0, "minimum acceptable price")
	chatCmd.Flags().Float64Var(&chatPriceMax, "price-max", 0, "maximum acceptable price")
	chatCmd.Flags().StringVar(&chatGiftType, "type", "", "preferred kind of gift")
	chatCmd.Flags().BoolVar(&chatNoIndex, "no-index", false, "skip catalogue indexing (chat without retrieval)")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	reportWarnings(cmd)

	if llmService == nil {
		return errors.New("no LLM provider configured. Run 'kado settings llm' or set MISTRAL_API_KEY")
	}
	if recommender == nil {
		return errors.New("recommender not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	prepareCatalog(cmd, ctx)

	filters := domain.SearchFilters{
		PriceMin: chatPriceMin,
		PriceMax: chatPriceMax,
		GiftType: chatGiftType,
	}

	if chatMessage != "" {
		return runOneShot(cmd, ctx, filters)
	}
	return runInteractive(cmd, filters)
}

// prepareCatalog loads the catalogue and builds the similarity index.
// Failures degrade to a retrieval-free chat rather than aborting.
func prepareCatalog(cmd *cobra.Command, ctx context.Context) {
	if catalogService == nil || chatNoIndex {
		return
	}

	if err := catalogService.Load(ctx); err != nil {
		cmd.PrintErrf("Warning: catalogue unavailable, chatting without product retrieval (%v)\n", err)
		return
	}
	if err := catalogService.BuildIndex(ctx); err != nil {
		cmd.PrintErrf("Warning: index build failed, chatting without product retrieval (%v)\n", err)
	}
}

// runOneShot performs a single conversation turn and prints the reply.
func runOneShot(cmd *cobra.Command, ctx context.Context, filters domain.SearchFilters) error {
	conv := domain.NewConversation(loadSystemPrompt())
	conv.Append(domain.RoleUser, chatMessage)

	result := recommender.Reply(ctx, conv, filters)

	cmd.Println(result.Reply)
	if result.Recommended {
		cmd.Println()
		cmd.Printf("Retrieved %d products:\n", len(result.Candidates))
		for i, candidate := range result.Candidates {
			cmd.Printf("  %d. %s - %.2f (%s)\n", i+1, candidate.Name, candidate.Price, candidate.Category)
		}
	}
	return nil
}

// runInteractive starts the Bubble Tea chat session.
func runInteractive(cmd *cobra.Command, filters domain.SearchFilters) error {
	// Panic recovery keeps the stack trace readable after the
	// alternate screen is torn down.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	model := tui.New(recommender, loadSystemPrompt())
	model = model.WithFilters(filters)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("chat error: %w", err)
	}

	// Print the wishlist on the way out so kept items survive the
	// alternate screen.
	if m, ok := final.(tui.Model); ok && m.Wishlist().Len() > 0 {
		cmd.Println("Your wishlist:")
		for i, item := range m.Wishlist().Items() {
			cmd.Printf("  %d. %s - %.2f (%s)\n", i+1, item.Name, item.Price, item.Category)
		}
	}
	return nil
}

// loadSystemPrompt fetches the chat system prompt, falling back to the
// embedded default.
func loadSystemPrompt() string {
	if promptStore == nil {
		return fallbackSystemPrompt
	}
	prompt, err := promptStore.Load(driven.PromptChatSystem)
	if err != nil {
		logger.Warn("Chat system prompt unavailable, using default: %v", err)
		return fallbackSystemPrompt
	}
	return prompt
}
