package main

import (
	"fmt"

	"codeberg.org/geniusgpt/server/geniusgpt/tokens"
	"codeberg.org/geniusgpt/server/geniusgpt/tours"
	"codeberg.org/geniusgpt/server/internal/generation"
	"codeberg.org/geniusgpt/server/internal/llm"
)

// creates the generation client and wires the metering service around it
func InitializeServices(tokenRepo *tokens.Repository, tourRepo *tours.Repository) (*Services, error) {
	generator, err := llm.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create generation client: %w", err)
	}

	generationService := generation.New(tokenRepo, tourRepo, generator)

	return &Services{
		Generator:  generator,
		Generation: generationService,
	}, nil
}
