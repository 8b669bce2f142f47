// Package classifier is the adapter to the external tier classifier: a
// generative backend that assigns confidence tiers to pre-filtered
// candidates. The classification rules live in the prompt; this package
// only handles transport, parsing and validation.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/conflictcheck/namecheck/config"
	internalErrors "github.com/conflictcheck/namecheck/internal/errors"
	"github.com/conflictcheck/namecheck/model"
	"github.com/conflictcheck/namecheck/services"
)

// Client calls an Anthropic-style messages API. It implements
// services.Classifier. No retries: a failed call is surfaced to the
// caller, who may re-run the pipeline.
type Client struct {
	cfg        config.ClassifierConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a classifier client. A nil logger falls back to
// slog.Default.
func New(cfg config.ClassifierConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Classify sends the request to the backend and returns the validated
// tiered matches. Network errors, timeouts and non-2xx statuses map to
// ErrClassifierUnavailable; unparseable content maps to
// ErrMalformedResponse.
func (c *Client) Classify(ctx context.Context, req services.ClassifierRequest) ([]model.MatchResult, error) {
	body, err := json.Marshal(messagesRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.MaxTokens,
		Messages:  []message{{Role: "user", Content: BuildPrompt(req)}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode classifier request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build classifier request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.cfg.APIKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, internalErrors.NewClassifierUnavailableError(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, internalErrors.NewClassifierUnavailableError(resp.StatusCode, nil)
	}

	var decoded messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, internalErrors.NewMalformedResponseError("invalid response envelope", err.Error())
	}
	if len(decoded.Content) == 0 || decoded.Content[0].Text == "" {
		return nil, internalErrors.NewMalformedResponseError("empty response content", "")
	}

	matches, err := ParseResponse(decoded.Content[0].Text, req.Candidates)
	if err != nil {
		c.logger.Warn("classifier returned unparseable content",
			"search_name", req.SearchName,
			"candidates", len(req.Candidates),
			"error", err)
		return nil, err
	}

	c.logger.Debug("classifier responded",
		"search_name", req.SearchName,
		"candidates", len(req.Candidates),
		"matches", len(matches))
	return matches, nil
}
