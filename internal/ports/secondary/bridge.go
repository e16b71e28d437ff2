package secondary

import "context"

// OutboundMessage is one message handed to a platform bridge for delivery.
type OutboundMessage struct {
	ExternalRef string // webhook URL or bot id from the channel record
	Sender      string
	Body        string
	RefID       string // client-generated reference for de-duplication
}

// PlatformBridge defines the secondary port for relaying messages to an
// external chat platform. Send performs a single delivery attempt; the
// service owns the retry loop. A Send returning ErrReferenceExpired means
// the remote integration was uninstalled or revoked and retrying is futile.
type PlatformBridge interface {
	// Platform returns the platform identifier ("teams", "groupme").
	Platform() string

	// Send delivers one message to the platform.
	Send(ctx context.Context, msg OutboundMessage) error
}
