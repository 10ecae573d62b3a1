package tours

const (
	queryCreate = `
		INSERT INTO tours (city, country, city_key, country_key, title, description, stops)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, city, country, title, description, stops, created_at
	`

	queryFind = `
		SELECT id, city, country, title, description, stops, created_at
		FROM tours
		WHERE city_key = $1 AND country_key = $2
	`

	queryGet = `
		SELECT id, city, country, title, description, stops, created_at
		FROM tours
		WHERE id = $1
	`

	queryList = `
		SELECT id, city, country, title, description, stops, created_at
		FROM tours
		WHERE ($1 = '' OR city ILIKE '%' || $1 || '%' OR country ILIKE '%' || $1 || '%')
		ORDER BY city ASC
		LIMIT $2 OFFSET $3
	`

	queryCount = `
		SELECT COUNT(*)
		FROM tours
		WHERE ($1 = '' OR city ILIKE '%' || $1 || '%' OR country ILIKE '%' || $1 || '%')
	`
)
