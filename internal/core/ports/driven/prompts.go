package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible
	// default or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptChatSystem is the system prompt that drives the gift
	// assistant conversation. No format placeholders.
	PromptChatSystem = "chat_system"

	// PromptExtractPreferences instructs the model to emit the structured
	// preference record as JSON. No format placeholders; the user-authored
	// transcript is sent as the user message.
	PromptExtractPreferences = "extract_preferences"

	// PromptRecommend composes the augmented recommendation request.
	// The template expects %s (preference summary) and %s (candidate list)
	// placeholders.
	PromptRecommend = "recommend"
)
