package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	openaiChatCompletionsURL = "https://api.openai.com/v1/chat/completions"
	openaiImagesURL          = "https://api.openai.com/v1/images/generations"

	defaultModel         = "gpt-3.5-turbo"
	defaultChatMaxTokens = 100
	defaultImageSize     = "512x512"

	// sampling is pinned low so identical prompts produce stable output
	pinnedTemperature = 0.0

	chatSystemPrompt = "you are a helpful assistant"
	tourSystemPrompt = "you are a tour guide"
)

// shared HTTP client for OpenAI API calls
// reuses connection pool and timeout configuration
var openaiHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for OpenAI API calls (50 requests/second with burst capacity of 10)
var openaiRateLimiter = rate.NewLimiter(50, 10)

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int     `json:"index"`
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type imageGenerationRequest struct {
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageGenerationResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// wire shape of the tour generation output
type tourPayload struct {
	Tour *TourDraft `json:"tour"`
}

type OpenAIConfig struct {
	APIKey        string
	Model         string // e.g., "gpt-3.5-turbo"
	ChatMaxTokens int    // response cap for chat turns
	ImageSize     string // e.g., "512x512"

	// overrides the API host, used by tests
	baseURL string
}

type OpenAIClient struct {
	config     OpenAIConfig
	httpClient *http.Client
}

// creates a new OpenAI client with auto-configuration from environment variables
func NewClient() (*OpenAIClient, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAI config: %w", err)
	}

	return NewClientWithConfig(*config), nil
}

// creates a new OpenAI client with explicit configuration
func NewClientWithConfig(config OpenAIConfig) *OpenAIClient {
	if config.Model == "" {
		config.Model = defaultModel
	}

	if config.ChatMaxTokens == 0 {
		config.ChatMaxTokens = defaultChatMaxTokens
	}

	if config.ImageSize == "" {
		config.ImageSize = defaultImageSize
	}

	return &OpenAIClient{
		config:     config,
		httpClient: openaiHTTPClient,
	}
}

func (c *OpenAIClient) Model() string {
	return c.config.Model
}

// sends the conversation history plus the fixed system preamble and returns
// the assistant's reply with its token cost
func (c *OpenAIClient) Chat(ctx context.Context, turns []Message) (*ChatResult, error) {
	messages := make([]Message, 0, len(turns)+1)
	messages = append(messages, Message{Role: "system", Content: chatSystemPrompt})
	messages = append(messages, turns...)

	resp, err := c.createChatCompletion(ctx, messages, c.config.ChatMaxTokens)
	if err != nil {
		return nil, err
	}

	return &ChatResult{
		Message:    resp.Choices[0].Message,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

// asks the model to validate the destination and produce a fixed-shape tour;
// a nil Tour means the model explicitly reported the destination as not found
func (c *OpenAIClient) GenerateTour(ctx context.Context, city, country string) (*TourResult, error) {
	messages := []Message{
		{Role: "system", Content: tourSystemPrompt},
		{Role: "user", Content: buildTourPrompt(city, country)},
	}

	resp, err := c.createChatCompletion(ctx, messages, 0)
	if err != nil {
		return nil, err
	}

	raw := stripCodeFence(resp.Choices[0].Message.Content)

	// strict parse: unknown fields or a shape mismatch are rejected rather
	// than trusted, the model output is untyped text until proven otherwise
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.DisallowUnknownFields()

	var payload tourPayload
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse tour JSON: %w", ErrMalformedOutput)
	}

	if payload.Tour == nil {
		// explicit "not found" sentinel from the model
		return &TourResult{Tour: nil, TokensUsed: resp.Usage.TotalTokens}, nil
	}

	if err := validateTourShape(payload.Tour); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrMalformedOutput)
	}

	// the model echoes the destination; fall back to the request values if missing
	if payload.Tour.City == "" {
		payload.Tour.City = city
	}

	if payload.Tour.Country == "" {
		payload.Tour.Country = country
	}

	return &TourResult{
		Tour:       payload.Tour,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

// requests a panoramic destination image; best-effort, any failure collapses
// to an empty URL and never propagates as an error
func (c *OpenAIClient) GenerateImage(ctx context.Context, city, country string) string {
	reqBody := imageGenerationRequest{
		Prompt: fmt.Sprintf("a panoramic view of the %s %s", city, country),
		N:      1,
		Size:   c.config.ImageSize,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.imagesEndpoint(), bytes.NewBuffer(jsonData))
	if err != nil {
		return ""
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	if err := openaiRateLimiter.Wait(ctx); err != nil {
		return ""
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ""
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var imgResp imageGenerationResponse
	if err := json.NewDecoder(resp.Body).Decode(&imgResp); err != nil {
		return ""
	}

	if len(imgResp.Data) == 0 {
		return ""
	}

	return imgResp.Data[0].URL
}

// performs a chat completion call; maxTokens of 0 leaves the response uncapped
func (c *OpenAIClient) createChatCompletion(ctx context.Context, messages []Message, maxTokens int) (*chatCompletionResponse, error) {
	reqBody := chatCompletionRequest{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: pinnedTemperature,
		MaxTokens:   maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", ErrGenerationUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint(), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", ErrGenerationUnavailable)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	// rate limiting
	if err := openaiRateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", ErrGenerationUnavailable)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", ErrGenerationUnavailable)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck
		return nil, fmt.Errorf("API request failed with status %d: %s: %w", resp.StatusCode, string(body), ErrGenerationUnavailable)
	}

	var apiResp chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", ErrGenerationUnavailable)
	}

	if len(apiResp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response: %w", ErrGenerationUnavailable)
	}

	return &apiResp, nil
}

// endpoint returns the chat completions URL; overridable for tests
func (c *OpenAIClient) endpoint() string {
	if c.config.baseURL != "" {
		return c.config.baseURL + "/v1/chat/completions"
	}

	return openaiChatCompletionsURL
}

func (c *OpenAIClient) imagesEndpoint() string {
	if c.config.baseURL != "" {
		return c.config.baseURL + "/v1/images/generations"
	}

	return openaiImagesURL
}

// rejects tour records that do not match the required fixed shape
func validateTourShape(tour *TourDraft) error {
	if strings.TrimSpace(tour.Title) == "" {
		return fmt.Errorf("tour title is empty")
	}

	if strings.TrimSpace(tour.Description) == "" {
		return fmt.Errorf("tour description is empty")
	}

	if len(tour.Stops) != 3 {
		return fmt.Errorf("expected exactly 3 stops, got %d", len(tour.Stops))
	}

	for i, stop := range tour.Stops {
		if strings.TrimSpace(stop) == "" {
			return fmt.Errorf("stop %d is empty", i)
		}
	}

	return nil
}
