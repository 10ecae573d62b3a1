package generation

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/geniusgpt/server/geniusgpt/tours"
	"codeberg.org/geniusgpt/server/internal/llm"
)

// creates a metered generation service with explicit dependencies; nothing
// here reads global state, fakes slot in for tests
func New(ledger Ledger, cache TourCache, generator llm.Generator) *Service {
	return &Service{
		ledger:    ledger,
		cache:     cache,
		generator: generator,
	}
}

// runs one chat turn: advisory balance check, model call, deduction of the
// reported cost. The balance is never debited when the call fails.
func (s *Service) Chat(ctx context.Context, userID string, turns []llm.Message) (*ChatResponse, error) {
	ok, err := s.ledger.HasSufficient(ctx, userID, ChatBalanceFloor)
	if err != nil {
		return nil, fmt.Errorf("failed to check balance: %w", err)
	}

	if !ok {
		return nil, ErrInsufficientBalance
	}

	result, err := s.generator.Chat(ctx, turns)
	if err != nil {
		// no charge on any failed call
		return nil, err
	}

	newBalance, err := s.ledger.Subtract(ctx, userID, result.TokensUsed)
	if err != nil {
		return nil, fmt.Errorf("failed to subtract tokens: %w", err)
	}

	return &ChatResponse{
		Message:         result.Message,
		TokensRemaining: newBalance,
	}, nil
}

// plans a one-day tour for a destination. Cached destinations are returned
// without a model call or a charge; otherwise the flow is balance check,
// generation, deduction of the reported cost, then persistence. Two
// concurrent misses for the same destination may both pay; the losing
// persist re-fetches the winner's row instead of overwriting it.
func (s *Service) PlanTour(ctx context.Context, userID, city, country string) (*TourResponse, error) {
	cached, err := s.cache.Find(ctx, city, country)
	if err == nil {
		balance, balErr := s.ledger.FetchOrCreate(ctx, userID)
		if balErr != nil {
			return nil, fmt.Errorf("failed to fetch balance: %w", balErr)
		}

		return &TourResponse{
			Tour:            cached,
			TokensRemaining: balance,
			Cached:          true,
		}, nil
	}

	if !errors.Is(err, tours.ErrNotFound) {
		return nil, fmt.Errorf("failed to check tour cache: %w", err)
	}

	ok, err := s.ledger.HasSufficient(ctx, userID, TourBalanceFloor)
	if err != nil {
		return nil, fmt.Errorf("failed to check balance: %w", err)
	}

	if !ok {
		return nil, ErrInsufficientBalance
	}

	result, err := s.generator.GenerateTour(ctx, city, country)
	if err != nil {
		// no charge on any failed call
		return nil, err
	}

	if result.Tour == nil {
		// the model explicitly rejected the destination; nothing usable was
		// produced, so nothing is charged
		return nil, ErrNoResult
	}

	newBalance, err := s.ledger.Subtract(ctx, userID, result.TokensUsed)
	if err != nil {
		return nil, fmt.Errorf("failed to subtract tokens: %w", err)
	}

	created, err := s.cache.Create(ctx, tours.CreateTourRequest{
		City:        result.Tour.City,
		Country:     result.Tour.Country,
		Title:       result.Tour.Title,
		Description: result.Tour.Description,
		Stops:       result.Tour.Stops,
	})

	if err != nil {
		if errors.Is(err, tours.ErrDuplicateDestination) {
			// lost a concurrent race: someone else already cached this
			// destination, serve their row
			winner, findErr := s.cache.Find(ctx, city, country)
			if findErr != nil {
				return nil, fmt.Errorf("failed to fetch winning tour after duplicate insert: %w", findErr)
			}

			return &TourResponse{
				Tour:            winner,
				TokensRemaining: newBalance,
				Cached:          true,
			}, nil
		}

		return nil, fmt.Errorf("failed to cache tour: %w", err)
	}

	return &TourResponse{
		Tour:            created,
		TokensRemaining: newBalance,
	}, nil
}

// returns the user's balance, provisioning the ledger account on first use
func (s *Service) Balance(ctx context.Context, userID string) (int, error) {
	return s.ledger.FetchOrCreate(ctx, userID)
}

// returns a best-effort destination image URL, empty when unavailable
func (s *Service) TourImage(ctx context.Context, city, country string) string {
	return s.generator.GenerateImage(ctx, city, country)
}
