// Package messenger implements the outbound messaging channel adapter.
// Sends are fire-and-forget at the call sites: the caller logs the error
// and moves on, so this client never retries.
package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"schoolstore/internal/core/domain/model/kernel"
)

// Client talks to the messaging channel API. Implements ports.Messenger.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a messenger client. With an empty baseURL or apiToken
// the client logs outbound messages instead of delivering them.
func NewClient(baseURL, apiToken string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

type sendTextRequest struct {
	To   string `json:"to"`
	Type string `json:"type"`
	Text string `json:"text"`
}

// SendText delivers a plain-text message to the given phone number.
func (c *Client) SendText(ctx context.Context, to kernel.Phone, text string) error {
	if c.baseURL == "" || c.apiToken == "" {
		c.logger.InfoContext(ctx, "messenger is not configured, message not delivered",
			"to", to.String(), "text", text)
		return nil
	}

	body, err := json.Marshal(sendTextRequest{To: to.String(), Type: "text", Text: text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send text: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated &&
		resp.StatusCode != http.StatusAccepted {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("send text: status %d: %s", resp.StatusCode, snippet)
	}
	return nil
}
