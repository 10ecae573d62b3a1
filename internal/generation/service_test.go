package generation

import (
	"context"
	"errors"
	"testing"

	"codeberg.org/geniusgpt/server/geniusgpt/tours"
	"codeberg.org/geniusgpt/server/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// in-memory ledger implementing Ledger for testing
type mockLedger struct {
	balances      map[string]int
	subtractCalls int
}

func newMockLedger(userID string, balance int) *mockLedger {
	return &mockLedger{balances: map[string]int{userID: balance}}
}

func (m *mockLedger) FetchOrCreate(_ context.Context, userID string) (int, error) {
	if _, ok := m.balances[userID]; !ok {
		m.balances[userID] = 1000
	}

	return m.balances[userID], nil
}

func (m *mockLedger) Subtract(_ context.Context, userID string, amount int) (int, error) {
	m.subtractCalls++

	if _, ok := m.balances[userID]; !ok {
		return 0, errors.New("account not found")
	}

	m.balances[userID] -= amount

	return m.balances[userID], nil
}

func (m *mockLedger) HasSufficient(ctx context.Context, userID string, threshold int) (bool, error) {
	balance, err := m.FetchOrCreate(ctx, userID)
	if err != nil {
		return false, err
	}

	return balance >= threshold, nil
}

// in-memory tour cache implementing TourCache for testing
type mockCache struct {
	entries     map[string]*tours.Tour
	createCalls int
	createErr   error
}

func newMockCache() *mockCache {
	return &mockCache{entries: map[string]*tours.Tour{}}
}

func (m *mockCache) key(city, country string) string {
	return tours.NormalizeKey(city) + "|" + tours.NormalizeKey(country)
}

func (m *mockCache) Find(_ context.Context, city, country string) (*tours.Tour, error) {
	tour, ok := m.entries[m.key(city, country)]
	if !ok {
		return nil, tours.ErrNotFound
	}

	return tour, nil
}

func (m *mockCache) Create(_ context.Context, req tours.CreateTourRequest) (*tours.Tour, error) {
	m.createCalls++

	if m.createErr != nil {
		return nil, m.createErr
	}

	key := m.key(req.City, req.Country)
	if _, exists := m.entries[key]; exists {
		return nil, tours.ErrDuplicateDestination
	}

	tour := &tours.Tour{
		ID:          "tour-1",
		City:        req.City,
		Country:     req.Country,
		Title:       req.Title,
		Description: req.Description,
		Stops:       req.Stops,
	}
	m.entries[key] = tour

	return tour, nil
}

// implements llm.Generator for testing
type mockGenerator struct {
	chatFunc  func(ctx context.Context, turns []llm.Message) (*llm.ChatResult, error)
	tourFunc  func(ctx context.Context, city, country string) (*llm.TourResult, error)
	chatCalls int
	tourCalls int
}

func (m *mockGenerator) Chat(ctx context.Context, turns []llm.Message) (*llm.ChatResult, error) {
	m.chatCalls++

	if m.chatFunc != nil {
		return m.chatFunc(ctx, turns)
	}

	return &llm.ChatResult{
		Message:    llm.Message{Role: "assistant", Content: "hello"},
		TokensUsed: 50,
	}, nil
}

func (m *mockGenerator) GenerateTour(ctx context.Context, city, country string) (*llm.TourResult, error) {
	m.tourCalls++

	if m.tourFunc != nil {
		return m.tourFunc(ctx, city, country)
	}

	return &llm.TourResult{
		Tour: &llm.TourDraft{
			City:        city,
			Country:     country,
			Title:       "A Day in " + city,
			Description: "description",
			Stops:       []string{"one", "two", "three"},
		},
		TokensUsed: 220,
	}, nil
}

func (m *mockGenerator) GenerateImage(_ context.Context, _, _ string) string {
	return "https://images.example.com/test.png"
}

func TestChat_DeductsReportedCost(t *testing.T) {
	ctx := context.Background()
	ledger := newMockLedger("user-1", 1000)
	gen := &mockGenerator{}

	svc := New(ledger, newMockCache(), gen)

	resp, err := svc.Chat(ctx, "user-1", []llm.Message{{Role: "user", Content: "hi"}})

	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Message.Content)
	assert.Equal(t, 950, resp.TokensRemaining)
	assert.Equal(t, 1, gen.chatCalls)
}

func TestChat_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	ledger := newMockLedger("user-1", ChatBalanceFloor-1)
	gen := &mockGenerator{}

	svc := New(ledger, newMockCache(), gen)

	_, err := svc.Chat(ctx, "user-1", []llm.Message{{Role: "user", Content: "hi"}})

	require.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, 0, gen.chatCalls, "model must not be invoked")
	assert.Equal(t, 0, ledger.subtractCalls, "no deduction on refused request")
	assert.Equal(t, ChatBalanceFloor-1, ledger.balances["user-1"], "balance unchanged")
}

func TestChat_GeneratorFailureIsNotCharged(t *testing.T) {
	ctx := context.Background()
	ledger := newMockLedger("user-1", 1000)
	gen := &mockGenerator{
		chatFunc: func(_ context.Context, _ []llm.Message) (*llm.ChatResult, error) {
			return nil, llm.ErrGenerationUnavailable
		},
	}

	svc := New(ledger, newMockCache(), gen)

	_, err := svc.Chat(ctx, "user-1", []llm.Message{{Role: "user", Content: "hi"}})

	require.ErrorIs(t, err, llm.ErrGenerationUnavailable)
	assert.Equal(t, 0, ledger.subtractCalls)
	assert.Equal(t, 1000, ledger.balances["user-1"])
}

func TestPlanTour_GeneratesAndCaches(t *testing.T) {
	ctx := context.Background()
	ledger := newMockLedger("user-1", 1000)
	cache := newMockCache()
	gen := &mockGenerator{}

	svc := New(ledger, cache, gen)

	resp, err := svc.PlanTour(ctx, "user-1", "Paris", "France")

	require.NoError(t, err)
	assert.Equal(t, "A Day in Paris", resp.Tour.Title)
	assert.Equal(t, 780, resp.TokensRemaining, "balance 1000 minus reported cost 220")
	assert.False(t, resp.Cached)

	// the tour is now cached for the normalized destination
	cachedTour, err := cache.Find(ctx, " PARIS ", "france")
	require.NoError(t, err)
	assert.Equal(t, "A Day in Paris", cachedTour.Title)
}

func TestPlanTour_CacheHitSkipsGenerationAndCharge(t *testing.T) {
	ctx := context.Background()
	ledger := newMockLedger("user-1", 1000)
	cache := newMockCache()
	gen := &mockGenerator{}

	svc := New(ledger, cache, gen)

	_, err := svc.PlanTour(ctx, "user-1", "Paris", "France")
	require.NoError(t, err)

	firstTourCalls := gen.tourCalls
	firstSubtracts := ledger.subtractCalls

	resp, err := svc.PlanTour(ctx, "user-1", "paris", "FRANCE")

	require.NoError(t, err)
	assert.True(t, resp.Cached)
	assert.Equal(t, "A Day in Paris", resp.Tour.Title)
	assert.Equal(t, firstTourCalls, gen.tourCalls, "second call must not invoke the model")
	assert.Equal(t, firstSubtracts, ledger.subtractCalls, "second call must not deduct")
	assert.Equal(t, 780, resp.TokensRemaining, "balance untouched by cache hit")
}

func TestPlanTour_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	ledger := newMockLedger("user-1", 250)
	cache := newMockCache()
	gen := &mockGenerator{}

	svc := New(ledger, cache, gen)

	_, err := svc.PlanTour(ctx, "user-1", "Paris", "France")

	require.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, 0, gen.tourCalls)
	assert.Equal(t, 0, ledger.subtractCalls)
	assert.Equal(t, 0, cache.createCalls, "cache is never written")
	assert.Equal(t, 250, ledger.balances["user-1"], "balance unchanged at 250")
}

func TestPlanTour_DestinationNotRecognized(t *testing.T) {
	ctx := context.Background()
	ledger := newMockLedger("user-1", 1000)
	cache := newMockCache()
	gen := &mockGenerator{
		tourFunc: func(_ context.Context, _, _ string) (*llm.TourResult, error) {
			return &llm.TourResult{Tour: nil, TokensUsed: 30}, nil
		},
	}

	svc := New(ledger, cache, gen)

	_, err := svc.PlanTour(ctx, "user-1", "Atlantis", "Greece")

	require.ErrorIs(t, err, ErrNoResult)
	assert.Equal(t, 0, ledger.subtractCalls, "absent result is never charged")
	assert.Equal(t, 0, cache.createCalls)
	assert.Equal(t, 1000, ledger.balances["user-1"])
}

func TestPlanTour_MalformedOutputIsNotCharged(t *testing.T) {
	ctx := context.Background()
	ledger := newMockLedger("user-1", 1000)
	gen := &mockGenerator{
		tourFunc: func(_ context.Context, _, _ string) (*llm.TourResult, error) {
			return nil, llm.ErrMalformedOutput
		},
	}

	svc := New(ledger, newMockCache(), gen)

	_, err := svc.PlanTour(ctx, "user-1", "Paris", "France")

	require.ErrorIs(t, err, llm.ErrMalformedOutput)
	assert.Equal(t, 0, ledger.subtractCalls)
	assert.Equal(t, 1000, ledger.balances["user-1"])
}

func TestPlanTour_DuplicateInsertServesWinningRow(t *testing.T) {
	ctx := context.Background()
	ledger := newMockLedger("user-1", 1000)
	cache := newMockCache()

	// simulate a concurrent winner: the row appears between this request's
	// cache miss and its persist
	winner := &tours.Tour{ID: "winner", City: "Paris", Country: "France", Title: "Winner Tour"}
	gen := &mockGenerator{
		tourFunc: func(_ context.Context, city, country string) (*llm.TourResult, error) {
			cache.entries[cache.key(city, country)] = winner

			return &llm.TourResult{
				Tour: &llm.TourDraft{
					City: city, Country: country, Title: "Loser Tour",
					Description: "d", Stops: []string{"a", "b", "c"},
				},
				TokensUsed: 220,
			}, nil
		},
	}

	svc := New(ledger, cache, gen)

	resp, err := svc.PlanTour(ctx, "user-1", "Paris", "France")

	require.NoError(t, err)
	assert.True(t, resp.Cached)
	assert.Equal(t, "Winner Tour", resp.Tour.Title, "loser serves the winner's row")
	assert.Equal(t, 780, resp.TokensRemaining, "the losing request still paid for its call")
}

func TestBalance_ProvisionsOnFirstUse(t *testing.T) {
	ctx := context.Background()
	ledger := &mockLedger{balances: map[string]int{}}

	svc := New(ledger, newMockCache(), &mockGenerator{})

	balance, err := svc.Balance(ctx, "brand-new-user")

	require.NoError(t, err)
	assert.Equal(t, 1000, balance)

	// repeated calls return the same single grant
	balance, err = svc.Balance(ctx, "brand-new-user")
	require.NoError(t, err)
	assert.Equal(t, 1000, balance)
}
