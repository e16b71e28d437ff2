package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/cobra/internal/core/relay"
	"github.com/example/cobra/internal/ctxutil"
	"github.com/example/cobra/internal/ports/primary"
	"github.com/example/cobra/internal/ports/secondary"
)

// Chat platform identifiers. "internal" channels never relay.
const (
	PlatformInternal = "internal"
	PlatformTeams    = "teams"
	PlatformGroupMe  = "groupme"
)

// ChatServiceImpl implements the ChatService interface.
type ChatServiceImpl struct {
	channelRepo secondary.ChannelRepository
	messageRepo secondary.MessageRepository
	bridges     map[string]secondary.PlatformBridge
	policy      relay.Policy
	logWriter   secondary.LogWriter
	notifier    secondary.Notifier
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewChatService creates a new ChatService with injected dependencies.
// Bridges are keyed by their Platform() identifier.
func NewChatService(
	channelRepo secondary.ChannelRepository,
	messageRepo secondary.MessageRepository,
	bridges []secondary.PlatformBridge,
	policy relay.Policy,
	logWriter secondary.LogWriter,
	notifier secondary.Notifier,
) *ChatServiceImpl {
	byPlatform := make(map[string]secondary.PlatformBridge, len(bridges))
	for _, b := range bridges {
		byPlatform[b.Platform()] = b
	}
	return &ChatServiceImpl{
		channelRepo: channelRepo,
		messageRepo: messageRepo,
		bridges:     byPlatform,
		policy:      policy,
		logWriter:   logWriter,
		notifier:    notifier,
		sleep:       sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func validPlatform(platform string) bool {
	switch platform {
	case PlatformInternal, PlatformTeams, PlatformGroupMe:
		return true
	}
	return false
}

// CreateChannel creates a chat channel, optionally bound to an external
// platform.
func (s *ChatServiceImpl) CreateChannel(ctx context.Context, req primary.CreateChannelRequest) (*primary.Channel, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, primary.Invalid("name", "must not be empty")
	}
	if len(req.Name) > maxNameLen {
		return nil, primary.Invalid("name", fmt.Sprintf("must not exceed %d characters", maxNameLen))
	}
	if !validPlatform(req.Platform) {
		return nil, primary.Invalid("platform", "must be internal, teams, or groupme")
	}
	if req.Platform != PlatformInternal && strings.TrimSpace(req.ExternalRef) == "" {
		return nil, primary.Invalid("externalRef", "required for platform-bound channels")
	}
	if req.Platform == PlatformInternal && req.ExternalRef != "" {
		return nil, primary.Invalid("externalRef", "must be empty for internal channels")
	}

	nextID, err := s.channelRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate channel ID: %w", err)
	}

	record := &secondary.ChannelRecord{
		ID:          nextID,
		Name:        req.Name,
		Platform:    req.Platform,
		ExternalRef: req.ExternalRef,
		Enabled:     true,
		CreatedBy:   ctxutil.Actor(ctx),
	}
	if err := s.channelRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	s.logWriter.LogCreate(ctx, "channel", nextID)
	return s.GetChannel(ctx, nextID)
}

// GetChannel retrieves a channel by ID.
func (s *ChatServiceImpl) GetChannel(ctx context.Context, channelID string) (*primary.Channel, error) {
	record, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	return recordToChannel(record), nil
}

// ListChannels lists all channels.
func (s *ChatServiceImpl) ListChannels(ctx context.Context) ([]*primary.Channel, error) {
	records, err := s.channelRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	channels := make([]*primary.Channel, len(records))
	for i, record := range records {
		channels[i] = recordToChannel(record)
	}
	return channels, nil
}

// PostMessage persists a message, notifies realtime clients, and relays it
// to the channel's platform. The message is durable before the first relay
// attempt; relay failure marks it unrelayed but never fails the request.
func (s *ChatServiceImpl) PostMessage(ctx context.Context, req primary.PostMessageRequest) (*primary.Message, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, primary.Invalid("body", "must not be empty")
	}
	if len(req.Body) > maxBodyLen {
		return nil, primary.Invalid("body", fmt.Sprintf("must not exceed %d characters", maxBodyLen))
	}

	channel, err := s.channelRepo.GetByID(ctx, req.ChannelID)
	if err != nil {
		return nil, err
	}

	nextID, err := s.messageRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate message ID: %w", err)
	}

	refID := uuid.NewString()
	record := &secondary.MessageRecord{
		ID:         nextID,
		ChannelID:  channel.ID,
		Sender:     ctxutil.Actor(ctx),
		Body:       req.Body,
		Source:     PlatformInternal,
		ExternalID: refID,
	}
	if err := s.messageRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	s.notifier.Broadcast(ctx, secondary.Event{Name: "message.created", Payload: map[string]string{
		"channelId": channel.ID, "messageId": nextID,
	}})

	if channel.Platform != PlatformInternal && channel.Enabled {
		relayed := s.relay(ctx, channel, secondary.OutboundMessage{
			ExternalRef: channel.ExternalRef,
			Sender:      record.Sender,
			Body:        record.Body,
			RefID:       refID,
		})
		if err := s.messageRepo.MarkRelayed(ctx, nextID, relayed); err != nil {
			return nil, fmt.Errorf("failed to record relay outcome: %w", err)
		}
	}

	stored, err := s.messageRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, err
	}
	return recordToMessage(stored), nil
}

// relay drives the bounded retry loop for one outbound message. It returns
// whether delivery succeeded. An expired reference disables the channel so
// later posts skip the relay entirely.
func (s *ChatServiceImpl) relay(ctx context.Context, channel *secondary.ChannelRecord, msg secondary.OutboundMessage) bool {
	bridge, ok := s.bridges[channel.Platform]
	if !ok {
		log.Printf("warning: no bridge registered for platform %s, message not relayed", channel.Platform)
		return false
	}

	attempts := 0
	for {
		err := bridge.Send(ctx, msg)
		attempts++
		if err == nil {
			return true
		}
		if errors.Is(err, secondary.ErrReferenceExpired) {
			log.Printf("warning: %s reference expired for channel %s, disabling relay", channel.Platform, channel.ID)
			if err := s.channelRepo.SetEnabled(ctx, channel.ID, false); err != nil {
				log.Printf("warning: failed to disable channel %s: %v", channel.ID, err)
			}
			s.logWriter.LogUpdate(ctx, "channel", channel.ID, "enabled", "true", "false")
			return false
		}
		if !s.policy.ShouldRetry(attempts) {
			log.Printf("warning: relay to %s failed after %d attempts: %v", channel.Platform, attempts, err)
			return false
		}
		if err := s.sleep(ctx, s.policy.Delay(attempts)); err != nil {
			return false
		}
	}
}

// ListMessages lists a channel's messages, newest first.
func (s *ChatServiceImpl) ListMessages(ctx context.Context, channelID string, limit int) ([]*primary.Message, error) {
	if _, err := s.channelRepo.GetByID(ctx, channelID); err != nil {
		return nil, err
	}
	records, err := s.messageRepo.List(ctx, channelID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	messages := make([]*primary.Message, len(records))
	for i, record := range records {
		messages[i] = recordToMessage(record)
	}
	return messages, nil
}

// IngestInbound records a message arriving from an external platform webhook.
// Duplicate external IDs are dropped silently, returning the nil message.
func (s *ChatServiceImpl) IngestInbound(ctx context.Context, req primary.InboundMessage) (*primary.Message, error) {
	if !validPlatform(req.Platform) || req.Platform == PlatformInternal {
		return nil, primary.Invalid("platform", "must be teams or groupme")
	}
	if strings.TrimSpace(req.ExternalID) == "" {
		return nil, primary.Invalid("externalId", "must not be empty")
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, primary.Invalid("body", "must not be empty")
	}

	channel, err := s.channelRepo.GetByExternalRef(ctx, req.Platform, req.ExternalRef)
	if err != nil {
		return nil, err
	}

	exists, err := s.messageRepo.ExternalIDExists(ctx, req.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate message: %w", err)
	}
	if exists {
		return nil, nil
	}

	nextID, err := s.messageRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate message ID: %w", err)
	}

	sender := req.Sender
	if sender == "" {
		sender = req.Platform
	}
	record := &secondary.MessageRecord{
		ID:         nextID,
		ChannelID:  channel.ID,
		Sender:     sender,
		Body:       req.Body,
		Source:     req.Platform,
		ExternalID: req.ExternalID,
	}
	if err := s.messageRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	s.notifier.Broadcast(ctx, secondary.Event{Name: "message.created", Payload: map[string]string{
		"channelId": channel.ID, "messageId": nextID,
	}})

	stored, err := s.messageRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, err
	}
	return recordToMessage(stored), nil
}

func recordToChannel(r *secondary.ChannelRecord) *primary.Channel {
	return &primary.Channel{
		ID:          r.ID,
		Name:        r.Name,
		Platform:    r.Platform,
		ExternalRef: r.ExternalRef,
		Enabled:     r.Enabled,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func recordToMessage(r *secondary.MessageRecord) *primary.Message {
	return &primary.Message{
		ID:        r.ID,
		ChannelID: r.ChannelID,
		Sender:    r.Sender,
		Body:      r.Body,
		Source:    r.Source,
		Relayed:   r.Relayed,
		CreatedAt: r.CreatedAt,
	}
}

var _ primary.ChatService = (*ChatServiceImpl)(nil)
