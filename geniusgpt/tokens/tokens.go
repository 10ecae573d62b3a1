package tokens

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new token ledger repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// returns the user's balance, provisioning the account with the default
// grant if it does not exist yet; safe under concurrent first calls
func (r *Repository) FetchOrCreate(ctx context.Context, userID string) (int, error) {
	var balance int

	err := r.db.QueryRow(ctx, queryFetchOrCreate, userID, DefaultGrant).Scan(&balance)
	if err != nil {
		return 0, err
	}

	return balance, nil
}

// returns the user's current balance without provisioning
func (r *Repository) Balance(ctx context.Context, userID string) (int, error) {
	var balance int

	err := r.db.QueryRow(ctx, queryBalance, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrAccountNotFound
		}

		return 0, err
	}

	return balance, nil
}

// atomically decrements the balance by amount and returns the new balance.
// Sufficiency is NOT re-checked here: callers run HasSufficient first as an
// advisory floor, and a concurrent deduction between the two steps can push
// the balance negative. That window is inherited behavior, kept on purpose.
func (r *Repository) Subtract(ctx context.Context, userID string, amount int) (int, error) {
	var balance int

	err := r.db.QueryRow(ctx, querySubtract, userID, amount).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrAccountNotFound
		}

		return 0, err
	}

	return balance, nil
}

// reports whether the user's balance meets the threshold; a point-in-time
// read, not a lock. Provisions the account on first use.
func (r *Repository) HasSufficient(ctx context.Context, userID string, threshold int) (bool, error) {
	balance, err := r.FetchOrCreate(ctx, userID)
	if err != nil {
		return false, err
	}

	return balance >= threshold, nil
}
