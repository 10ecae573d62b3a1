package tours

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	domain "codeberg.org/geniusgpt/server/geniusgpt/tours"
	"codeberg.org/geniusgpt/server/internal/generation"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlanner struct {
	resp     *generation.TourResponse
	err      error
	imageURL string
}

func (s *stubPlanner) PlanTour(_ context.Context, _, _, _ string) (*generation.TourResponse, error) {
	return s.resp, s.err
}

func (s *stubPlanner) TourImage(_ context.Context, _, _ string) string {
	return s.imageURL
}

func newPlanRouter(svc TourPlanner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.POST("/tours", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Next()
	}, PlanTourHandler(svc))

	return router
}

func postTour(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/tours", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestPlanTourHandler_Generated(t *testing.T) {
	svc := &stubPlanner{
		resp: &generation.TourResponse{
			Tour: &domain.Tour{
				ID:      "3f0e8a1c-9b9e-4f0a-8c3d-2f6a1b5c7d9e",
				City:    "Paris",
				Country: "France",
				Title:   "A Day in Paris",
				Stops:   []string{"Louvre", "Notre-Dame", "Montmartre"},
			},
			TokensRemaining: 700,
			Cached:          false,
		},
	}

	w := postTour(t, newPlanRouter(svc), PlanTourRequest{City: "Paris", Country: "France"})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp PlanTourResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Tour)
	assert.Equal(t, "A Day in Paris", resp.Tour.Title)
	assert.Equal(t, 700, resp.TokensRemaining)
	assert.False(t, resp.Cached)
}

func TestPlanTourHandler_CachedReturnsOK(t *testing.T) {
	svc := &stubPlanner{
		resp: &generation.TourResponse{
			Tour:            &domain.Tour{City: "Paris", Country: "France", Title: "A Day in Paris"},
			TokensRemaining: 700,
			Cached:          true,
		},
	}

	w := postTour(t, newPlanRouter(svc), PlanTourRequest{City: "Paris", Country: "France"})

	require.Equal(t, http.StatusOK, w.Code)

	var resp PlanTourResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Cached)
}

func TestPlanTourHandler_InsufficientBalance(t *testing.T) {
	svc := &stubPlanner{err: generation.ErrInsufficientBalance}

	w := postTour(t, newPlanRouter(svc), PlanTourRequest{City: "Paris", Country: "France"})

	require.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient_balance")
}

func TestPlanTourHandler_UnknownDestination(t *testing.T) {
	svc := &stubPlanner{err: generation.ErrNoResult}

	w := postTour(t, newPlanRouter(svc), PlanTourRequest{City: "Atlantis", Country: "Nowhere"})

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no_result")
}

func TestPlanTourHandler_MissingFields(t *testing.T) {
	svc := &stubPlanner{}

	w := postTour(t, newPlanRouter(svc), map[string]string{"city": "Paris"})

	require.Equal(t, http.StatusBadRequest, w.Code)
}
