package primary

import "context"

// ChatService defines the primary port for chat channels, messages, and the
// external platform relay.
type ChatService interface {
	// CreateChannel creates a chat channel, optionally bound to an
	// external platform.
	CreateChannel(ctx context.Context, req CreateChannelRequest) (*Channel, error)

	// GetChannel retrieves a channel by ID.
	GetChannel(ctx context.Context, channelID string) (*Channel, error)

	// ListChannels lists all channels.
	ListChannels(ctx context.Context) ([]*Channel, error)

	// PostMessage persists a message, notifies realtime clients, and if the
	// channel is platform-bound relays it outbound with bounded retry.
	// Relay failure does not fail the request.
	PostMessage(ctx context.Context, req PostMessageRequest) (*Message, error)

	// ListMessages lists a channel's messages, newest first.
	ListMessages(ctx context.Context, channelID string, limit int) ([]*Message, error)

	// IngestInbound records a message arriving from an external platform
	// webhook. Duplicate external IDs are dropped silently.
	IngestInbound(ctx context.Context, req InboundMessage) (*Message, error)
}

// CreateChannelRequest contains parameters for creating a channel.
type CreateChannelRequest struct {
	Name        string `json:"name"`
	Platform    string `json:"platform"`    // "internal", "teams", or "groupme"
	ExternalRef string `json:"externalRef"` // required for platform-bound channels
}

// PostMessageRequest contains parameters for posting a message.
type PostMessageRequest struct {
	ChannelID string `json:"-"`
	Body      string `json:"body"`
}

// InboundMessage is a message arriving from an external platform.
type InboundMessage struct {
	Platform    string
	ExternalRef string // identifies the bound channel
	ExternalID  string // platform message id, used for de-duplication
	Sender      string
	Body        string
}

// Channel represents a chat channel at the port boundary.
type Channel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Platform    string `json:"platform"`
	ExternalRef string `json:"externalRef,omitempty"`
	Enabled     bool   `json:"enabled"`
	CreatedBy   string `json:"createdBy"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// Message represents a chat message at the port boundary.
type Message struct {
	ID        string `json:"id"`
	ChannelID string `json:"channelId"`
	Sender    string `json:"sender"`
	Body      string `json:"body"`
	Source    string `json:"source"`
	Relayed   bool   `json:"relayed"`
	CreatedAt string `json:"createdAt"`
}
