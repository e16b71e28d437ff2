package secondary

import "context"

// ChannelRepository defines the secondary port for chat channel persistence.
type ChannelRepository interface {
	// Create persists a new channel.
	Create(ctx context.Context, channel *ChannelRecord) error

	// GetByID retrieves a channel by its ID.
	GetByID(ctx context.Context, id string) (*ChannelRecord, error)

	// List retrieves all channels.
	List(ctx context.Context) ([]*ChannelRecord, error)

	// GetByExternalRef retrieves the channel bound to a platform reference.
	GetByExternalRef(ctx context.Context, platform, externalRef string) (*ChannelRecord, error)

	// SetEnabled toggles the channel's relay flag.
	SetEnabled(ctx context.Context, id string, enabled bool) error

	// GetNextID returns the next available channel ID.
	GetNextID(ctx context.Context) (string, error)
}

// ChannelRecord represents a chat channel as stored in persistence.
type ChannelRecord struct {
	ID          string
	Name        string
	Platform    string // "internal", "teams", or "groupme"
	ExternalRef string // webhook URL or bot id, empty for internal channels
	Enabled     bool
	CreatedBy   string
	CreatedAt   string
	UpdatedAt   string
}

// MessageRepository defines the secondary port for chat message persistence.
type MessageRepository interface {
	// Create persists a new message.
	Create(ctx context.Context, message *MessageRecord) error

	// GetByID retrieves a message by its ID.
	GetByID(ctx context.Context, id string) (*MessageRecord, error)

	// List retrieves a channel's messages, newest first.
	List(ctx context.Context, channelID string, limit int) ([]*MessageRecord, error)

	// ExternalIDExists reports whether an inbound message was already ingested.
	ExternalIDExists(ctx context.Context, externalID string) (bool, error)

	// MarkRelayed records the outcome of the outbound relay.
	MarkRelayed(ctx context.Context, id string, relayed bool) error

	// GetNextID returns the next available message ID.
	GetNextID(ctx context.Context) (string, error)
}

// MessageRecord represents a chat message as stored in persistence.
type MessageRecord struct {
	ID         string
	ChannelID  string
	Sender     string
	Body       string
	Source     string // "internal", "teams", or "groupme"
	ExternalID string // platform message id for inbound, relay ref for outbound
	Relayed    bool
	CreatedAt  string
}
