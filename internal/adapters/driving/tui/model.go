// Package tui implements the interactive chat interface using Bubble Tea.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kadolab/kado-cli/internal/core/domain"
	"github.com/kadolab/kado-cli/internal/core/ports/driving"
)

var (
	chatBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// turnMsg carries the result of a completed recommendation turn back into
// the update loop.
type turnMsg struct {
	result domain.TurnResult
}

// Model is the Bubble Tea model for the chat session. The conversation and
// wishlist live here, owned by the session.
type Model struct {
	recommender  driving.RecommenderService
	conversation *domain.Conversation
	wishlist     *domain.Wishlist
	filters      domain.SearchFilters

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	transcript []string
	candidates []domain.RecommendationCandidate
	status     string
	waiting    bool
	ready      bool
}

// New creates a chat model. The system prompt seeds the conversation; the
// recommender drives every turn.
func New(recommender driving.RecommenderService, systemPrompt string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Tell me who the gift is for"
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		recommender:  recommender,
		conversation: domain.NewConversation(systemPrompt),
		wishlist:     &domain.Wishlist{},
		input:        ti,
		viewport:     viewport.New(0, 0),
		spinner:      sp,
		status:       "Type a message and press Enter. /help lists commands.",
	}
}

// WithFilters applies the user's filter selections to every turn of the
// session.
func (m Model) WithFilters(filters domain.SearchFilters) Model {
	m.filters = filters
	return m
}

// Init starts the text input cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and turn-completion events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + ih + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved - ch
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.waiting {
			return m.submit()
		}

	case turnMsg:
		m.waiting = false
		m.conversation.Append(domain.RoleAssistant, msg.result.Reply)
		m.candidates = msg.result.Candidates
		m.appendLine(assistantStyle.Render("Kado: ") + msg.result.Reply)
		if msg.result.Recommended {
			m.status = fmt.Sprintf("%d products retrieved. /keep <n> saves one to your wishlist.", len(msg.result.Candidates))
		} else {
			m.status = "Keep chatting. The more I know, the better the match."
		}
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit processes the current input line: slash commands run locally,
// anything else becomes a conversation turn.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	m.input.SetValue("")

	if strings.HasPrefix(text, "/") {
		return m.runCommand(text)
	}

	m.conversation.Append(domain.RoleUser, text)
	m.appendLine(userStyle.Render("You: ") + text)
	m.waiting = true
	m.status = "Thinking..."
	m.viewport.GotoBottom()

	recommender := m.recommender
	conv := m.conversation
	filters := m.filters
	turn := func() tea.Msg {
		return turnMsg{result: recommender.Reply(context.Background(), conv, filters)}
	}
	return m, tea.Batch(m.spinner.Tick, turn)
}

// runCommand handles the session-local slash commands.
func (m Model) runCommand(text string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(text)
	switch fields[0] {
	case "/quit", "/exit":
		return m, tea.Quit

	case "/help":
		m.appendLine(noticeStyle.Render(helpText))

	case "/keep":
		if len(fields) != 2 {
			m.status = "Usage: /keep <n>"
			break
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 || n > len(m.candidates) {
			m.status = fmt.Sprintf("Pick a product between 1 and %d.", len(m.candidates))
			break
		}
		candidate := m.candidates[n-1]
		m.wishlist.Add(domain.WishlistItem{
			Name:        candidate.Name,
			Price:       candidate.Price,
			Category:    candidate.Category,
			Description: candidate.Description,
		})
		m.status = fmt.Sprintf("Kept %q. Wishlist has %d item(s).", candidate.Name, m.wishlist.Len())

	case "/wishlist":
		m.appendLine(noticeStyle.Render(renderWishlist(m.wishlist)))

	default:
		m.status = "Unknown command. /help lists commands."
	}

	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
	return m, nil
}

const helpText = `Commands:
  /keep <n>  - save the n-th retrieved product to your wishlist
  /wishlist  - show the products you kept this session
  /quit      - leave the chat`

// renderWishlist formats the session wishlist.
func renderWishlist(w *domain.Wishlist) string {
	items := w.Items()
	if len(items) == 0 {
		return "Your wishlist is empty. Use /keep <n> after a recommendation."
	}
	var b strings.Builder
	b.WriteString("Wishlist:\n")
	for i, item := range items {
		fmt.Fprintf(&b, "  %d. %s - %.2f (%s)\n", i+1, item.Name, item.Price, item.Category)
	}
	return strings.TrimRight(b.String(), "\n")
}

// appendLine adds a transcript line and refreshes the viewport.
func (m *Model) appendLine(line string) {
	m.transcript = append(m.transcript, line)
	m.viewport.SetContent(m.renderTranscript())
}

// renderTranscript joins the visible conversation lines.
func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return noticeStyle.Render("Hi! I'm Kado. Tell me who you are buying a gift for.")
	}
	return strings.Join(m.transcript, "\n\n")
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Kado - gift assistant")
	chat := chatBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())

	status := m.status
	if m.waiting {
		status = m.spinner.View() + " " + status
	}

	return header + "\n" + chat + "\n" + input + "\n" + statusStyle.Render(status)
}

// Wishlist exposes the session wishlist, mainly for printing after the
// session ends.
func (m Model) Wishlist() *domain.Wishlist {
	return m.wishlist
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
