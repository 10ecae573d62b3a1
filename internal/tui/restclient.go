package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timeout for generation requests
const requestTimeout = 60 * time.Second

// manages HTTP requests to the geniusgpt REST API
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// creates a new REST client from the environment
func NewClient() *Client {
	endpoint := os.Getenv("GENIUSGPT_API_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:8080"
	}

	return &Client{
		endpoint: endpoint,
		token:    os.Getenv("GENIUSGPT_TOKEN"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// sends a chat turn with the full conversation history
func (c *Client) Chat(ctx context.Context, history []ChatMessage) (*ChatResponseMsg, error) {
	payload := chatRequest{Messages: history}

	var result chatResponse
	if err := c.post(ctx, "/api/v1/chat", payload, &result); err != nil {
		return nil, err
	}

	return &ChatResponseMsg{
		message:         result.Message,
		tokensRemaining: result.TokensRemaining,
	}, nil
}

// requests a tour for a destination
func (c *Client) PlanTour(ctx context.Context, city, country string) (*TourResponseMsg, error) {
	payload := planTourRequest{City: city, Country: country}

	var result planTourResponse
	if err := c.post(ctx, "/api/v1/tours", payload, &result); err != nil {
		return nil, err
	}

	return &TourResponseMsg{
		rendered:        formatTour(result),
		tokensRemaining: result.TokensRemaining,
		cached:          result.Cached,
	}, nil
}

// fetches the caller's token balance
func (c *Client) Balance(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/api/v1/tokens", nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, decodeAPIError(resp.StatusCode, body)
	}

	var result balanceResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("failed to parse response: %w", err)
	}

	return result.Tokens, nil
}

// returns a tea.Cmd that sends a chat turn
func (c *Client) ChatCmd(history []ChatMessage) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		resp, err := c.Chat(ctx, history)
		if err != nil {
			return RequestErrorMsg{err: err}
		}

		return *resp
	}
}

// returns a tea.Cmd that requests a tour
func (c *Client) PlanTourCmd(city, country string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		resp, err := c.PlanTour(ctx, city, country)
		if err != nil {
			return RequestErrorMsg{err: err}
		}

		return *resp
	}
}

// returns a tea.Cmd that fetches the token balance
func (c *Client) BalanceCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		tokens, err := c.Balance(ctx)
		if err != nil {
			return RequestErrorMsg{err: err}
		}

		return BalanceMsg{tokens: tokens}
	}
}

func (c *Client) post(ctx context.Context, path string, payload, result any) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(payloadBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return decodeAPIError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func decodeAPIError(status int, body []byte) error {
	var errResp apiErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return fmt.Errorf("%s: %s", errResp.Error, errResp.Message)
	}

	return fmt.Errorf("request failed with status %d: %s", status, string(body))
}

// REST API request/response types

type chatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

type chatResponse struct {
	Message         ChatMessage `json:"message"`
	TokensRemaining int         `json:"tokens_remaining"`
}

type planTourRequest struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

type tourPayload struct {
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Stops       []string `json:"stops"`
}

type planTourResponse struct {
	Tour            tourPayload `json:"tour"`
	TokensRemaining int         `json:"tokens_remaining"`
	Cached          bool        `json:"cached"`
}

type balanceResponse struct {
	Tokens int `json:"tokens"`
}

type apiErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// renders a tour as markdown for the chat viewport
func formatTour(result planTourResponse) string {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# %s\n\n%s\n\n", result.Tour.Title, result.Tour.Description)

	for i, stop := range result.Tour.Stops {
		fmt.Fprintf(&b, "%d. %s\n", i+1, stop)
	}

	if result.Cached {
		b.WriteString("\n_(served from the tour cache)_\n")
	}

	return b.String()
}
