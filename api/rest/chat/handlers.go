package chat

import (
	"context"
	"net/http"

	"codeberg.org/geniusgpt/server/geniusgpt/tokens"
	"codeberg.org/geniusgpt/server/internal/auth"
	"codeberg.org/geniusgpt/server/internal/errors"
	"codeberg.org/geniusgpt/server/internal/generation"
	"codeberg.org/geniusgpt/server/internal/llm"
	"codeberg.org/geniusgpt/server/internal/logger"
	"github.com/gin-gonic/gin"

	stderrors "errors"
)

// runs metered chat turns
type ChatService interface {
	Chat(ctx context.Context, userID string, turns []llm.Message) (*generation.ChatResponse, error)
}

// Handler runs one chat turn for the authenticated user
func Handler(svc ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if len(req.Messages) == 0 {
			errors.BadRequest(c, "at least one message is required", nil)
			return
		}

		resp, err := svc.Chat(c.Request.Context(), userID, req.Messages)
		if err != nil {
			switch {
			case stderrors.Is(err, generation.ErrInsufficientBalance):
				errors.InsufficientBalance(c, "token balance too low")

			case stderrors.Is(err, llm.ErrGenerationUnavailable):
				// soft failure: surfaced to the user, never fatal
				logger.FromContext(c.Request.Context()).Warn("chat generation unavailable", "user_id", userID, "error", err)
				errors.GenerationUnavailable(c)

			case stderrors.Is(err, tokens.ErrAccountNotFound):
				errors.AccountNotFound(c)

			default:
				errors.InternalError(c, "failed to generate chat response", err)
			}

			return
		}

		c.JSON(http.StatusOK, Response{
			Message:         resp.Message,
			TokensRemaining: resp.TokensRemaining,
		})
	}
}
