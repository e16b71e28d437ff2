// Package bridge implements the outbound chat platform adapters. Each bridge
// performs a single delivery attempt; the chat service owns retry and
// channel disabling.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/example/cobra/internal/ports/secondary"
)

const defaultTimeout = 10 * time.Second

// TeamsBridge relays messages to a Microsoft Teams incoming webhook. The
// channel's external reference is the webhook URL.
type TeamsBridge struct {
	client *http.Client
}

// NewTeamsBridge creates a Teams bridge with a default HTTP client.
func NewTeamsBridge() *TeamsBridge {
	return &TeamsBridge{client: &http.Client{Timeout: defaultTimeout}}
}

// Platform implements secondary.PlatformBridge.
func (b *TeamsBridge) Platform() string { return "teams" }

// teamsCard is the minimal MessageCard payload accepted by incoming webhooks.
type teamsCard struct {
	Type    string `json:"@type"`
	Context string `json:"@context"`
	Title   string `json:"title,omitempty"`
	Text    string `json:"text"`
}

// Send implements secondary.PlatformBridge.
func (b *TeamsBridge) Send(ctx context.Context, msg secondary.OutboundMessage) error {
	payload := teamsCard{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   msg.Sender,
		Text:    msg.Body,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode teams payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, msg.ExternalRef, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build teams request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("teams delivery failed: %w", err)
	}
	defer drainAndClose(resp.Body)

	return classifyStatus("teams", resp.StatusCode)
}

// classifyStatus maps a delivery response code to the port error taxonomy.
// Gone and not-found mean the webhook or bot was removed on the remote side.
func classifyStatus(platform string, status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound || status == http.StatusGone:
		return fmt.Errorf("%s returned %d: %w", platform, status, secondary.ErrReferenceExpired)
	default:
		return fmt.Errorf("%s delivery rejected with status %d", platform, status)
	}
}

// drainAndClose reads the remainder of a response body so the connection can
// be reused.
func drainAndClose(body io.ReadCloser) {
	io.Copy(io.Discard, body)
	body.Close()
}

var _ secondary.PlatformBridge = (*TeamsBridge)(nil)
