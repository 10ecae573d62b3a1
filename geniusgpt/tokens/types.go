package tokens

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// tokens granted when a ledger account is provisioned on first use
const DefaultGrant = 1000

// returned when no ledger account exists for the user
var ErrAccountNotFound = errors.New("token account not found")

// handles token ledger database operations
type Repository struct {
	db *pgxpool.Pool
}

// represents a user's token ledger account
type Account struct {
	UserID string `json:"user_id"`
	Tokens int    `json:"tokens"`
}
