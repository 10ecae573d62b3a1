package tours

import (
	"context"
	"net/http"
	"strconv"

	"codeberg.org/geniusgpt/server/api/rest/pagination"
	"codeberg.org/geniusgpt/server/geniusgpt/tokens"
	"codeberg.org/geniusgpt/server/geniusgpt/tours"
	"codeberg.org/geniusgpt/server/internal/auth"
	"codeberg.org/geniusgpt/server/internal/errors"
	"codeberg.org/geniusgpt/server/internal/generation"
	"codeberg.org/geniusgpt/server/internal/llm"
	"codeberg.org/geniusgpt/server/internal/logger"
	"github.com/gin-gonic/gin"

	stderrors "errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// runs metered tour generation
type TourPlanner interface {
	PlanTour(ctx context.Context, userID, city, country string) (*generation.TourResponse, error)
	TourImage(ctx context.Context, city, country string) string
}

// PlanTourHandler generates (or serves the cached) tour for a destination
func PlanTourHandler(svc TourPlanner) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req PlanTourRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		resp, err := svc.PlanTour(c.Request.Context(), userID, req.City, req.Country)
		if err != nil {
			switch {
			case stderrors.Is(err, generation.ErrInsufficientBalance):
				errors.InsufficientBalance(c, "token balance too low")

			case stderrors.Is(err, generation.ErrNoResult):
				errors.NoResult(c, "destination not recognized")

			case stderrors.Is(err, llm.ErrGenerationUnavailable):
				logger.FromContext(c.Request.Context()).Warn("tour generation unavailable", "user_id", userID, "error", err)
				errors.GenerationUnavailable(c)

			case stderrors.Is(err, llm.ErrMalformedOutput):
				logger.FromContext(c.Request.Context()).Warn("tour generation returned unusable output", "user_id", userID, "error", err)
				errors.MalformedOutput(c)

			case stderrors.Is(err, tokens.ErrAccountNotFound):
				errors.AccountNotFound(c)

			default:
				errors.InternalError(c, "failed to plan tour", err)
			}

			return
		}

		status := http.StatusCreated
		if resp.Cached {
			status = http.StatusOK
		}

		c.JSON(status, PlanTourResponse{
			Tour:            resp.Tour,
			TokensRemaining: resp.TokensRemaining,
			Cached:          resp.Cached,
		})
	}
}

// ListToursHandler lists cached tours with optional search and pagination
func ListToursHandler(tourRepo *tours.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		searchTerm := c.Query("search")
		limit, _ := strconv.Atoi(c.Query("limit"))   //nolint:errcheck // defaults applied below
		offset, _ := strconv.Atoi(c.Query("offset")) //nolint:errcheck // defaults applied below

		params := pagination.DefaultParams(limit, offset, defaultPageSize, maxPageSize)

		toursList, total, err := tourRepo.List(c.Request.Context(), searchTerm, params.Limit, params.Offset)
		if err != nil {
			errors.InternalError(c, "failed to list tours", err)
			return
		}

		c.JSON(http.StatusOK, ListToursResponse{
			Tours:      toursList,
			Pagination: pagination.NewMeta(params, total),
		})
	}
}

// GetTourHandler gets a single cached tour by ID
func GetTourHandler(tourRepo *tours.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tourID, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		tour, err := tourRepo.Get(c.Request.Context(), tourID)
		if err != nil {
			if stderrors.Is(err, tours.ErrNotFound) {
				errors.NotFound(c, "tour")
				return
			}

			errors.InternalError(c, "failed to get tour", err)

			return
		}

		c.JSON(http.StatusOK, tour)
	}
}

// TourImageHandler returns a best-effort destination image for a cached tour
func TourImageHandler(tourRepo *tours.Repository, svc TourPlanner) gin.HandlerFunc {
	return func(c *gin.Context) {
		tourID, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		tour, err := tourRepo.Get(c.Request.Context(), tourID)
		if err != nil {
			if stderrors.Is(err, tours.ErrNotFound) {
				errors.NotFound(c, "tour")
				return
			}

			errors.InternalError(c, "failed to get tour", err)

			return
		}

		// never an error: an empty URL means no image is available
		imageURL := svc.TourImage(c.Request.Context(), tour.City, tour.Country)

		c.JSON(http.StatusOK, TourImageResponse{ImageURL: imageURL})
	}
}
