package domain

import "strings"

// Message roles. The ordering of messages is the sole timeline; no
// timestamps are needed for correctness.
const (
	// RoleSystem marks instructions to the model. At most one system
	// message exists per conversation, always in the leading position.
	RoleSystem = "system"

	// RoleUser marks end-user input.
	RoleUser = "user"

	// RoleAssistant marks model replies.
	RoleAssistant = "assistant"
)

// ConversationMessage is a single turn in a conversation.
type ConversationMessage struct {
	// Role is one of RoleSystem, RoleUser, RoleAssistant.
	Role string

	// Content is the message text.
	Content string
}

// Conversation is an append-only, ordered message history.
// It enforces the single-leading-system-message invariant: setting a
// system prompt replaces any existing one rather than appending.
//
// Conversation is not safe for concurrent use; a single logical
// conversation is processed one turn at a time.
type Conversation struct {
	messages []ConversationMessage
}

// NewConversation creates a conversation, optionally seeded with a
// system prompt. An empty systemPrompt seeds nothing.
func NewConversation(systemPrompt string) *Conversation {
	c := &Conversation{}
	if systemPrompt != "" {
		c.SetSystem(systemPrompt)
	}
	return c
}

// Append adds a message to the end of the history. System-role messages
// are routed through SetSystem to preserve the leading-position invariant.
func (c *Conversation) Append(role, content string) {
	if role == RoleSystem {
		c.SetSystem(content)
		return
	}
	c.messages = append(c.messages, ConversationMessage{Role: role, Content: content})
}

// SetSystem installs or replaces the leading system message.
func (c *Conversation) SetSystem(content string) {
	msg := ConversationMessage{Role: RoleSystem, Content: content}
	if len(c.messages) > 0 && c.messages[0].Role == RoleSystem {
		c.messages[0] = msg
		return
	}
	c.messages = append([]ConversationMessage{msg}, c.messages...)
}

// Messages returns a copy of the full ordered history.
func (c *Conversation) Messages() []ConversationMessage {
	out := make([]ConversationMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// SystemMessage returns the leading system message, or nil if none exists.
func (c *Conversation) SystemMessage() *ConversationMessage {
	if len(c.messages) > 0 && c.messages[0].Role == RoleSystem {
		msg := c.messages[0]
		return &msg
	}
	return nil
}

// Len returns the number of messages in the history.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// UserText joins the contents of all user-authored messages, in order,
// separated by newlines. System and assistant messages are excluded.
func (c *Conversation) UserText() string {
	var parts []string
	for _, m := range c.messages {
		if m.Role == RoleUser {
			parts = append(parts, m.Content)
		}
	}
	return strings.Join(parts, "\n")
}
