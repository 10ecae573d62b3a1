package tours

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// returned on a cache miss
	ErrNotFound = errors.New("tour not found")

	// returned when a concurrent insert already cached the same destination
	ErrDuplicateDestination = errors.New("tour already exists for destination")
)

// handles tour cache database operations
type Repository struct {
	db *pgxpool.Pool
}

// represents a cached one-day tour for a destination
type Tour struct {
	ID          string    `json:"id"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Stops       []string  `json:"stops"`
	CreatedAt   time.Time `json:"created_at"`
}

// contains data for caching a newly generated tour
type CreateTourRequest struct {
	City        string
	Country     string
	Title       string
	Description string
	Stops       []string
}
