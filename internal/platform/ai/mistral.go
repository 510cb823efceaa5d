package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultBaseURL     = "https://api.mistral.ai"
	chatCompletionPath = "/v1/chat/completions"
	defaultHTTPTimeout = 30 * time.Second
)

// MistralClient is a minimal chat-completions client. A zero API key produces
// a disabled client; callers check Enabled before use.
type MistralClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Choices []struct {
		Index   int         `json:"index"`
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewMistralClient builds a client for the given key and model.
func NewMistralClient(apiKey string, model string) *MistralClient {
	return &MistralClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}
}

// Enabled reports whether the client holds a usable API key.
func (c *MistralClient) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Chat sends one system+user exchange and returns the first reply text.
func (c *MistralClient) Chat(ctx context.Context, systemPrompt string, userMessage string) (string, error) {
	if !c.Enabled() {
		return "", errors.New("mistral client not configured")
	}

	payload := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		Temperature: 0.3,
		MaxTokens:   1024,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatCompletionPath, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("mistral request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("mistral chat completion status %d", resp.StatusCode)
	}

	var out chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode mistral response: %w", err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", errors.New("mistral returned an empty completion")
	}
	return out.Choices[0].Message.Content, nil
}
