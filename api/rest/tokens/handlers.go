package tokens

import (
	"context"
	"net/http"

	"codeberg.org/geniusgpt/server/internal/auth"
	"codeberg.org/geniusgpt/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// reads (and lazily provisions) token balances
type BalanceReader interface {
	Balance(ctx context.Context, userID string) (int, error)
}

// BalanceHandler returns the caller's token balance, provisioning the
// account with the default grant on first sight
func BalanceHandler(svc BalanceReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		balance, err := svc.Balance(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to read token balance", err)
			return
		}

		c.JSON(http.StatusOK, BalanceResponse{Tokens: balance})
	}
}
