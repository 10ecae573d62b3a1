package tokens

const (
	// the DO UPDATE arm makes the insert return the existing row instead of
	// nothing, so concurrent first calls for the same user resolve to a
	// single account with a single starting grant
	queryFetchOrCreate = `
		INSERT INTO user_tokens (user_id, tokens)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET updated_at = NOW()
		RETURNING tokens
	`

	queryBalance = `
		SELECT tokens
		FROM user_tokens
		WHERE user_id = $1
	`

	// unconditional decrement: sufficiency is checked earlier as an advisory
	// read, the two steps are deliberately not transactional
	querySubtract = `
		UPDATE user_tokens
		SET tokens = tokens - $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING tokens
	`
)
