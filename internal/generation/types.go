package generation

import (
	"context"
	"errors"

	"codeberg.org/geniusgpt/server/geniusgpt/tours"
	"codeberg.org/geniusgpt/server/internal/llm"
)

// conservative fixed balance floors checked before invoking the model; the
// actual debit is always the per-call cost reported by the provider
const (
	ChatBalanceFloor = 100
	TourBalanceFloor = 300
)

var (
	// the user's balance is below the operation's floor; no call was made
	ErrInsufficientBalance = errors.New("insufficient token balance")

	// the model explicitly found nothing for the request
	ErrNoResult = errors.New("no result for request")
)

// tracks per-user token balances
type Ledger interface {
	FetchOrCreate(ctx context.Context, userID string) (int, error)
	Subtract(ctx context.Context, userID string, amount int) (int, error)
	HasSufficient(ctx context.Context, userID string, threshold int) (bool, error)
}

// maps a normalized destination to a previously generated tour
type TourCache interface {
	Find(ctx context.Context, city, country string) (*tours.Tour, error)
	Create(ctx context.Context, req tours.CreateTourRequest) (*tours.Tour, error)
}

// orchestrates cache lookup, balance check, model invocation, cost deduction
// and result persistence for all metered operations
type Service struct {
	ledger    Ledger
	cache     TourCache
	generator llm.Generator
}

// result of a chat turn
type ChatResponse struct {
	Message         llm.Message
	TokensRemaining int
}

// result of a tour request; Cached reports whether the paid generation step
// was skipped
type TourResponse struct {
	Tour            *tours.Tour
	TokensRemaining int
	Cached          bool
}
