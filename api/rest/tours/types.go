package tours

import (
	"codeberg.org/geniusgpt/server/api/rest/pagination"
	"codeberg.org/geniusgpt/server/geniusgpt/tours"
)

// contains a tour generation request
type PlanTourRequest struct {
	City    string `json:"city" binding:"required"`
	Country string `json:"country" binding:"required"`
}

// contains a generated or cached tour and the user's remaining balance
type PlanTourResponse struct {
	Tour            *tours.Tour `json:"tour"`
	TokensRemaining int         `json:"tokens_remaining"`
	Cached          bool        `json:"cached"`
}

// contains a page of cached tours
type ListToursResponse struct {
	Tours      []tours.Tour    `json:"tours"`
	Pagination pagination.Meta `json:"pagination"`
}

// contains a best-effort destination image URL; empty when unavailable
type TourImageResponse struct {
	ImageURL string `json:"image_url"`
}
