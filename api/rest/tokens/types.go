package tokens

// contains the user's current token balance
type BalanceResponse struct {
	Tokens int `json:"tokens"`
}
