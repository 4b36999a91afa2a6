package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

var (
	// ErrNotConfigured is returned by every call when no API key was provided.
	ErrNotConfigured = errors.New("API key for Gemini is not configured; set GEMINI_API_KEY in the environment")
	// ErrEmptyResponse is returned when the model finished normally but produced no text.
	ErrEmptyResponse = errors.New("AI did not return any text content; the response might be empty or blocked")
)

// BlockedError reports a generation that stopped for a reason other than STOP.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("AI response generation stopped due to: %s. Check safety ratings or prompt content", e.Reason)
}

// Client is a single-shot text completion client for the Gemini API
type Client struct {
	genai *genai.Client
	model string
}

// NewClient creates a new Gemini client. An empty apiKey yields a client whose
// every call fails with ErrNotConfigured.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	return newClient(ctx, apiKey, model, "")
}

// NewClientWithBaseURL creates a new Gemini client with a custom base URL (for testing)
func NewClientWithBaseURL(ctx context.Context, apiKey, model, baseURL string) (*Client, error) {
	return newClient(ctx, apiKey, model, baseURL)
}

func newClient(ctx context.Context, apiKey, model, baseURL string) (*Client, error) {
	if model == "" {
		model = DefaultModel
	}
	c := &Client{model: model}
	if apiKey == "" {
		log.Warn("GEMINI_API_KEY not set, AI features will answer with a configuration error")
		return c, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	c.genai = client
	return c, nil
}

// Configured reports whether the client has credentials
func (c *Client) Configured() bool {
	return c.genai != nil
}

// Model returns the model name requests are sent to
func (c *Client) Model() string {
	return c.model
}

// Complete sends one prompt, with an optional system instruction, and returns
// the raw generated text.
func (c *Client) Complete(ctx context.Context, prompt, systemInstruction string) (string, error) {
	if c.genai == nil {
		return "", ErrNotConfigured
	}

	config := &genai.GenerateContentConfig{}
	if systemInstruction != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}}
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		reason := resp.Candidates[0].FinishReason
		if reason != "" && reason != genai.FinishReasonStop {
			return "", &BlockedError{Reason: string(reason)}
		}
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", &BlockedError{Reason: string(resp.PromptFeedback.BlockReason)}
	}
	return "", ErrEmptyResponse
}
