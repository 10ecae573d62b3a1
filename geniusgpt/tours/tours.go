package tours

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgres unique_violation
const pgCodeUniqueViolation = "23505"

// creates a new tour cache repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// finds a cached tour by normalized destination; exact-match only
func (r *Repository) Find(ctx context.Context, city, country string) (*Tour, error) {
	var tour Tour

	err := r.db.QueryRow(ctx, queryFind, NormalizeKey(city), NormalizeKey(country)).Scan(
		&tour.ID,
		&tour.City,
		&tour.Country,
		&tour.Title,
		&tour.Description,
		&tour.Stops,
		&tour.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &tour, nil
}

// caches a generated tour. A concurrent duplicate for the same destination
// fails loudly with ErrDuplicateDestination instead of overwriting; the
// caller re-fetches the winning row.
func (r *Repository) Create(ctx context.Context, req CreateTourRequest) (*Tour, error) {
	var tour Tour

	err := r.db.QueryRow(
		ctx,
		queryCreate,
		req.City,
		req.Country,
		NormalizeKey(req.City),
		NormalizeKey(req.Country),
		req.Title,
		req.Description,
		req.Stops,
	).Scan(
		&tour.ID,
		&tour.City,
		&tour.Country,
		&tour.Title,
		&tour.Description,
		&tour.Stops,
		&tour.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgCodeUniqueViolation {
			return nil, ErrDuplicateDestination
		}

		return nil, err
	}

	return &tour, nil
}

// gets a single cached tour by ID
func (r *Repository) Get(ctx context.Context, tourID string) (*Tour, error) {
	var tour Tour

	err := r.db.QueryRow(ctx, queryGet, tourID).Scan(
		&tour.ID,
		&tour.City,
		&tour.Country,
		&tour.Title,
		&tour.Description,
		&tour.Stops,
		&tour.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &tour, nil
}

// lists cached tours ordered by city, optionally filtered by a city/country
// substring, with the total count for pagination
func (r *Repository) List(ctx context.Context, searchTerm string, limit, offset int) ([]Tour, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, queryCount, searchTerm).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, queryList, searchTerm, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	toursList := []Tour{}

	for rows.Next() {
		var tour Tour

		err := rows.Scan(
			&tour.ID,
			&tour.City,
			&tour.Country,
			&tour.Title,
			&tour.Description,
			&tour.Stops,
			&tour.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}

		toursList = append(toursList, tour)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return toursList, total, nil
}
