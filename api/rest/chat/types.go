package chat

import "codeberg.org/geniusgpt/server/internal/llm"

// contains a chat turn request with the full conversation history
type Request struct {
	Messages []llm.Message `json:"messages" binding:"required"`
}

// contains the assistant's reply and the user's remaining balance
type Response struct {
	Message         llm.Message `json:"message"`
	TokensRemaining int         `json:"tokens_remaining"`
}
