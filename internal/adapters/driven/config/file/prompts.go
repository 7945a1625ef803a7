package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kadolab/kado-cli/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// defaultPrompts holds the embedded prompt texts. They serve as fallback
// when the files are unreadable and as the initial content written to a
// fresh prompt directory.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptChatSystem: `You are Kado, a friendly gift recommendation assistant.

Your job is to find out who the gift is for and what they like. Ask short,
natural questions about the recipient: who they are, their interests, the
occasion, the budget, and what kind of gift would suit them.

Ask one question at a time. Once you know enough, a curated product list
will be provided for you to recommend from. Never invent products.`,

	driven.PromptExtractPreferences: `Analyse the conversation and extract the following information as JSON:
{
    "description": "description of the gift recipient",
    "price_range": "budget or price range",
    "interests": "the recipient's interests",
    "context": "the gifting occasion",
    "gift_type": "preferred kind of gift"
}
Use an empty string for anything the user has not said. Return ONLY the JSON object.`,

	driven.PromptRecommend: `Based on this information about the gift recipient:
%s

And these available products:
%s

Recommend the most suitable gifts, explaining why each one fits the person.
Only recommend products from the list above.`,
}

// PromptStore serves prompt templates from user-editable .txt files,
// seeded with the embedded defaults. All I/O is deferred to the first
// Load, so constructing a store touches nothing on disk.
type PromptStore struct {
	dir string

	seedOnce sync.Once
	seedErr  error

	mu    sync.Mutex
	cache map[string]string
}

// NewPromptStore creates a prompt store rooted at promptDir, defaulting
// to ~/.kado/prompts.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".kado", "prompts")
	}
	return &PromptStore{
		dir:   promptDir,
		cache: map[string]string{},
	}, nil
}

// Load returns the prompt template for name. The first call seeds the
// prompt directory; a failed seed degrades to the embedded defaults.
// Loaded prompts are cached until Reload.
func (s *PromptStore) Load(name string) (string, error) {
	s.seedOnce.Do(func() { s.seedErr = s.seed() })

	s.mu.Lock()
	defer s.mu.Unlock()

	if prompt, ok := s.cache[name]; ok {
		return prompt, nil
	}

	if s.seedErr == nil {
		raw, err := os.ReadFile(s.promptPath(name))
		if err == nil {
			prompt := strings.TrimSpace(string(raw))
			s.cache[name] = prompt
			return prompt, nil
		}
	}

	if prompt, ok := defaultPrompts[name]; ok {
		return prompt, nil
	}
	if s.seedErr != nil {
		return "", fmt.Errorf("prompt store init failed: %w", s.seedErr)
	}
	return "", fmt.Errorf("unknown prompt %q", name)
}

// Reload drops the cache so edited files are picked up on the next Load.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = map[string]string{}
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.dir
}

func (s *PromptStore) promptPath(name string) string {
	return filepath.Join(s.dir, name+".txt")
}

// seed creates the prompt directory, one file per default prompt, and the
// README. Existing files are left alone so user edits survive.
func (s *PromptStore) seed() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create prompt directory: %w", err)
	}

	for name, content := range defaultPrompts {
		path := s.promptPath(name)
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			return fmt.Errorf("create default prompt %q: %w", name, err)
		}
	}

	readme := filepath.Join(s.dir, "README.md")
	if _, err := os.Stat(readme); !os.IsNotExist(err) {
		return nil
	}
	return os.WriteFile(readme, []byte(promptsReadme), 0600)
}

const promptsReadme = `# Kado Prompts

This directory contains customisable prompts used by Kado's LLM features.

## Files

- ` + "`chat_system.txt`" + ` - System prompt for the gift assistant conversation
- ` + "`extract_preferences.txt`" + ` - Extracts recipient preferences as JSON
- ` + "`recommend.txt`" + ` - Composes the final recommendation request

## Customisation

Edit any file to customise LLM behaviour. Changes take effect on the next
command or after restarting the chat.

## Format Placeholders

The recommend prompt uses Go fmt placeholders:
- first ` + "`%s`" + ` - the recipient preference summary
- second ` + "`%s`" + ` - the retrieved product list

Ensure customised prompts maintain placeholders in the correct positions.
The extraction prompt must keep asking for the same JSON keys.
`
