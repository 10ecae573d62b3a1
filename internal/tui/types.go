package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// represents the current state of the TUI
type AppState int

const (
	StateWelcome AppState = iota
	StateChat
)

// main TUI application model
type Model struct {
	state   AppState
	mode    string
	width   int
	height  int
	err     error
	welcome *Welcome
	chat    *ChatModel
}

// sent when an error occurs
type ErrorMsg struct {
	err error
}

// sent to transition to the chat state
type EnterChatMsg struct{}

// represents a chat message in the conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// interactive chat interface
type ChatModel struct {
	input              textinput.Model
	viewport           viewport.Model
	width              int
	height             int
	history            []ChatMessage
	tokensRemaining    int
	isFetching         bool
	spinner            spinner.Model
	glamourRenderer    *glamour.TermRenderer
	ready              bool
	shouldScrollBottom bool
	client             *Client
}

// sent when a chat turn completes
type ChatResponseMsg struct {
	message         ChatMessage
	tokensRemaining int
}

// sent when a tour request completes
type TourResponseMsg struct {
	rendered        string
	tokensRemaining int
	cached          bool
}

// sent when a balance lookup completes
type BalanceMsg struct {
	tokens int
}

// sent when a request fails
type RequestErrorMsg struct {
	err error
}

// welcome screen model
type Welcome struct {
	mode     string
	input    string
	balance  string
	commands []Command
}

// represents an available TUI command
type Command struct {
	Name        string
	Description string
	Available   bool
}
