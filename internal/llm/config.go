package llm

import (
	"fmt"
	"os"
	"strconv"
)

// loadConfig loads OpenAI configuration from environment variables
func loadConfig() (*OpenAIConfig, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = defaultModel
	}

	chatMaxTokens := defaultChatMaxTokens
	if maxTokensStr := os.Getenv("CHAT_MAX_TOKENS"); maxTokensStr != "" {
		if val, err := strconv.Atoi(maxTokensStr); err == nil {
			chatMaxTokens = val
		}
	}

	imageSize := os.Getenv("TOUR_IMAGE_SIZE")
	if imageSize == "" {
		imageSize = defaultImageSize
	}

	return &OpenAIConfig{
		APIKey:        apiKey,
		Model:         model,
		ChatMaxTokens: chatMaxTokens,
		ImageSize:     imageSize,
	}, nil
}
