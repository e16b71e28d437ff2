package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/example/cobra/internal/ports/secondary"
)

// GroupMeBridge relays messages through the GroupMe bot post API. The
// channel's external reference is the bot ID.
type GroupMeBridge struct {
	postURL string
	client  *http.Client
}

// NewGroupMeBridge creates a GroupMe bridge posting to the given API URL.
func NewGroupMeBridge(postURL string) *GroupMeBridge {
	return &GroupMeBridge{
		postURL: postURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// Platform implements secondary.PlatformBridge.
func (b *GroupMeBridge) Platform() string { return "groupme" }

// groupMePost is the bot post payload.
type groupMePost struct {
	BotID string `json:"bot_id"`
	Text  string `json:"text"`
}

// Send implements secondary.PlatformBridge.
func (b *GroupMeBridge) Send(ctx context.Context, msg secondary.OutboundMessage) error {
	payload := groupMePost{
		BotID: msg.ExternalRef,
		Text:  fmt.Sprintf("%s: %s", msg.Sender, msg.Body),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode groupme payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.postURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build groupme request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("groupme delivery failed: %w", err)
	}
	defer drainAndClose(resp.Body)

	return classifyStatus("groupme", resp.StatusCode)
}

var _ secondary.PlatformBridge = (*GroupMeBridge)(nil)
