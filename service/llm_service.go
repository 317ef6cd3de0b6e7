package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ChatClient sends a single system+user prompt and returns the reply text.
type ChatClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// DefaultChatURL is Groq's OpenAI-compatible chat completions endpoint.
const DefaultChatURL = "https://api.groq.com/openai/v1/chat/completions"

// RateLimiter is a fixed-window counter keyed by caller-chosen strings.
type RateLimiter struct {
	mu           sync.Mutex
	requestCount map[string]int
	limit        int
	window       time.Duration
	lastReset    time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requestCount: make(map[string]int),
		limit:        limit,
		window:       window,
		lastReset:    now(),
	}
}

// Allow checks if a request is allowed based on rate limit
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now().Sub(rl.lastReset) > rl.window {
		rl.requestCount = make(map[string]int)
		rl.lastReset = now()
	}

	rl.requestCount[key]++
	return rl.requestCount[key] <= rl.limit
}

// ErrRateLimited is returned when the local LLM call budget is exhausted.
var ErrRateLimited = errors.New("rate limit exceeded for LLM calls")

// OpenAIChatClient talks to any OpenAI-compatible chat completions API
// (Groq, a local Ollama with its /v1 endpoint, ...).
type OpenAIChatClient struct {
	URL        string
	APIKey     string
	Model      string
	HTTPClient *http.Client
	Limiter    *RateLimiter
	MaxRetries int
	// Backoff returns the wait before retry attempt n (0-based).
	Backoff func(attempt int) time.Duration
}

// NewOpenAIChatClient returns a client with the default retry policy.
func NewOpenAIChatClient(url, apiKey, model string) *OpenAIChatClient {
	if url == "" {
		url = DefaultChatURL
	}
	return &OpenAIChatClient{
		URL:        url,
		APIKey:     apiKey,
		Model:      model,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Limiter:    NewRateLimiter(50, time.Minute),
		MaxRetries: 3,
		Backoff: func(attempt int) time.Duration {
			return time.Duration(10*(attempt+1)) * time.Second
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete implements ChatClient. Requests rejected with 429 are retried with
// a growing backoff.
func (c *OpenAIChatClient) Complete(ctx context.Context, system, user string) (string, error) {
	if c.Limiter != nil && !c.Limiter.Allow("chat_completion") {
		return "", ErrRateLimited
	}

	reqBody, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	attempts := c.MaxRetries
	if attempts < 1 {
		attempts = 1
	}
	var resp *http.Response
	for attempt := 0; attempt < attempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(reqBody))
		if err != nil {
			return "", fmt.Errorf("failed to create chat request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.APIKey)
		}

		resp, err = c.HTTPClient.Do(req)
		if err != nil {
			return "", fmt.Errorf("chat request failed: %w", err)
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			break
		}
		resp.Body.Close()
		log.Warn().Int("attempt", attempt+1).Msg("[OpenAIChatClient] Rate limited by provider")
		if attempt == attempts-1 {
			return "", fmt.Errorf("chat provider rate limit: %s", resp.Status)
		}
		wait := time.Second
		if c.Backoff != nil {
			wait = c.Backoff(attempt)
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat provider returned %s: %s", resp.Status, string(body))
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse chat response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("chat response has no choices")
	}
	return result.Choices[0].Message.Content, nil
}
