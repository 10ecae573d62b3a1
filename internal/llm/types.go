package llm

import (
	"context"
	"errors"
)

// sentinel errors for the generation boundary; transport and provider failures
// are always wrapped so callers never see raw HTTP errors
var (
	// the provider could not be reached or returned a failure
	ErrGenerationUnavailable = errors.New("generation unavailable")

	// the provider answered but the response did not match the expected shape
	ErrMalformedOutput = errors.New("malformed generation output")
)

// represents a role-tagged conversation turn (role: system, user or assistant)
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// result of a chat completion, with the provider-reported token cost
type ChatResult struct {
	Message    Message
	TokensUsed int
}

// structured tour produced by the model
type TourDraft struct {
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Stops       []string `json:"stops"`
}

// result of a tour generation; Tour is nil when the model reported the
// destination as not found (absent, not an error)
type TourResult struct {
	Tour       *TourDraft
	TokensUsed int
}

// invokes the external generative model
type Generator interface {
	Chat(ctx context.Context, turns []Message) (*ChatResult, error)
	GenerateTour(ctx context.Context, city, country string) (*TourResult, error)
	GenerateImage(ctx context.Context, city, country string) string
}
