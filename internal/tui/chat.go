package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// returns a new chat screen
func NewChatModel() *ChatModel {
	ti := textinput.New()
	ti.Placeholder = "ask anything, or /tour city, country..."
	ti.Focus()
	ti.CharLimit = 0
	ti.Width = 80
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorLightGray)

	return &ChatModel{
		input:           ti,
		spinner:         sp,
		history:         []ChatMessage{},
		tokensRemaining: -1,
		client:          NewClient(),
	}
}

func (m *ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ChatModel) Update(msg tea.Msg) (*ChatModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			query := strings.TrimSpace(m.input.Value())
			if query == "" || m.isFetching {
				return m, nil
			}

			m.isFetching = true
			m.input.SetValue("")

			if city, country, ok := parseTourCommand(query); ok {
				m.appendMessage(ChatMessage{Role: "user", Content: query})
				return m, tea.Batch(m.spinner.Tick, m.client.PlanTourCmd(city, country))
			}

			m.appendMessage(ChatMessage{Role: "user", Content: query})

			return m, tea.Batch(m.spinner.Tick, m.client.ChatCmd(m.history))

		case "ctrl+l":
			m.input.SetValue("")
			m.history = []ChatMessage{}
			m.isFetching = false
			m.refreshViewport()
			return m, nil
		}

	case ChatResponseMsg:
		m.isFetching = false
		m.tokensRemaining = msg.tokensRemaining
		m.appendMessage(msg.message)
		m.input.Focus()
		return m, nil

	case TourResponseMsg:
		m.isFetching = false
		m.tokensRemaining = msg.tokensRemaining
		m.appendMessage(ChatMessage{Role: "assistant", Content: msg.rendered})
		m.input.Focus()
		return m, nil

	case RequestErrorMsg:
		m.isFetching = false
		m.appendMessage(ChatMessage{Role: "assistant", Content: fmt.Sprintf("Error: %v", msg.err)})
		m.input.Focus()
		return m, nil

	case spinner.TickMsg:
		if m.isFetching {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 10

		viewportHeight := max(msg.Height-8, 5)
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.glamourRenderer, _ = glamour.NewTermRenderer( //nolint:errcheck // falls back to plain text
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(msg.Width-8),
			)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}

		m.refreshViewport()
	}

	m.input, cmd = m.input.Update(msg)

	if m.shouldScrollBottom {
		m.viewport.GotoBottom()
		m.shouldScrollBottom = false
	}

	return m, cmd
}

func (m *ChatModel) View() string {
	var b strings.Builder

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorWhite).
		Render("CHAT MODE")

	help := lipgloss.NewStyle().
		Foreground(colorGray).
		Render("[Enter: Send] [Ctrl+L: Clear] [Ctrl+C: Back]")

	headerLine := lipgloss.JoinHorizontal(lipgloss.Left,
		header,
		strings.Repeat(" ", max(0, m.width-len("CHAT MODE")-len(help)-2)),
		help,
	)

	b.WriteString(headerLine)
	b.WriteString("\n\n")

	if m.ready {
		conversationBox := lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorGray).
			Width(m.width - 4).
			Padding(0, 1).
			Render(m.viewport.View())

		b.WriteString(conversationBox)
		b.WriteString("\n")
	}

	inputBox := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorGray).
		Width(m.width - 4).
		Padding(0, 1).
		Render(m.input.View())

	b.WriteString(inputBox)
	b.WriteString("\n")

	statusText := ""
	if m.isFetching {
		statusText = m.spinner.View() + infoStyle.Render(" thinking...")
	} else if m.tokensRemaining >= 0 {
		statusText = infoStyle.Render(fmt.Sprintf("tokens remaining: %d", m.tokensRemaining))
	}
	b.WriteString(statusText)

	return b.String()
}

func (m *ChatModel) appendMessage(msg ChatMessage) {
	m.history = append(m.history, msg)
	m.refreshViewport()
	m.shouldScrollBottom = true
}

func (m *ChatModel) refreshViewport() {
	if !m.ready {
		return
	}

	var b strings.Builder

	if len(m.history) == 0 {
		b.WriteString(infoStyle.Render("ready! ask a question, or plan a trip with /tour city, country."))
	}

	for _, msg := range m.history {
		if msg.Role == "user" {
			b.WriteString(userLabelStyle.Render("you"))
			b.WriteString("\n")
			b.WriteString(msg.Content)
			b.WriteString("\n\n")
			continue
		}

		b.WriteString(assistantLabelStyle.Render("geniusgpt"))
		b.WriteString("\n")
		b.WriteString(m.renderMarkdown(msg.Content))
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())

	if m.shouldScrollBottom {
		m.viewport.GotoBottom()
	}
}

func (m *ChatModel) renderMarkdown(content string) string {
	if m.glamourRenderer == nil {
		return content
	}

	rendered, err := m.glamourRenderer.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimSpace(rendered) + "\n"
}

// parses "/tour city, country" into its parts
func parseTourCommand(query string) (string, string, bool) {
	const prefix = "/tour "

	if !strings.HasPrefix(query, prefix) {
		return "", "", false
	}

	args := strings.TrimSpace(strings.TrimPrefix(query, prefix))

	city, country, found := strings.Cut(args, ",")
	if !found {
		return "", "", false
	}

	city = strings.TrimSpace(city)
	country = strings.TrimSpace(country)

	if city == "" || country == "" {
		return "", "", false
	}

	return city, country, true
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
