package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/cobra/internal/ctxutil"
	"github.com/example/cobra/internal/ports/primary"
	"github.com/example/cobra/internal/ports/secondary"
)

// maskedValue replaces secret setting values in API responses.
const maskedValue = "••••"

// SettingsServiceImpl implements the SettingsService interface.
type SettingsServiceImpl struct {
	settingRepo secondary.SettingRepository
	channelRepo secondary.ChannelRepository
	logWriter   secondary.LogWriter
}

// NewSettingsService creates a new SettingsService with injected dependencies.
func NewSettingsService(
	settingRepo secondary.SettingRepository,
	channelRepo secondary.ChannelRepository,
	logWriter secondary.LogWriter,
) *SettingsServiceImpl {
	return &SettingsServiceImpl{
		settingRepo: settingRepo,
		channelRepo: channelRepo,
		logWriter:   logWriter,
	}
}

// UpsertSetting creates or replaces a setting. Admin only.
func (s *SettingsServiceImpl) UpsertSetting(ctx context.Context, req primary.UpsertSettingRequest) (*primary.Setting, error) {
	if !ctxutil.UserFromContext(ctx).IsAdmin {
		return nil, primary.ConflictError("settings may only be changed by an administrator")
	}
	if strings.TrimSpace(req.Key) == "" {
		return nil, primary.Invalid("key", "must not be empty")
	}
	if strings.ContainsAny(req.Key, " \t\n") {
		return nil, primary.Invalid("key", "must not contain whitespace")
	}

	record := &secondary.SettingRecord{
		Key:       req.Key,
		Value:     req.Value,
		Category:  req.Category,
		IsSecret:  req.IsSecret,
		Enabled:   req.Enabled,
		UpdatedBy: ctxutil.Actor(ctx),
	}
	if err := s.settingRepo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to upsert setting: %w", err)
	}

	// Secret values never enter the audit log.
	logged := req.Value
	if req.IsSecret {
		logged = maskedValue
	}
	s.logWriter.LogUpdate(ctx, "setting", req.Key, "value", "", logged)

	stored, err := s.settingRepo.Get(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	return recordToSetting(stored, false), nil
}

// GetSetting retrieves a setting by key. Secret values are masked unless the
// caller is an admin requesting reveal.
func (s *SettingsServiceImpl) GetSetting(ctx context.Context, key string, reveal bool) (*primary.Setting, error) {
	record, err := s.settingRepo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	reveal = reveal && ctxutil.UserFromContext(ctx).IsAdmin
	return recordToSetting(record, reveal), nil
}

// ListSettings lists settings, optionally filtered by category. Secret
// values are always masked in lists.
func (s *SettingsServiceImpl) ListSettings(ctx context.Context, category string) ([]*primary.Setting, error) {
	records, err := s.settingRepo.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	settings := make([]*primary.Setting, len(records))
	for i, record := range records {
		settings[i] = recordToSetting(record, false)
	}
	return settings, nil
}

// IntegrationStatus reports per-platform configuration state derived from the
// channel table.
func (s *SettingsServiceImpl) IntegrationStatus(ctx context.Context) ([]*primary.IntegrationStatus, error) {
	channels, err := s.channelRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}

	byPlatform := map[string]*primary.IntegrationStatus{
		PlatformTeams:   {Platform: PlatformTeams},
		PlatformGroupMe: {Platform: PlatformGroupMe},
	}
	for _, ch := range channels {
		status, ok := byPlatform[ch.Platform]
		if !ok {
			continue
		}
		status.Configured = true
		status.Channels++
		if ch.Enabled {
			status.Enabled = true
		}
	}

	return []*primary.IntegrationStatus{
		byPlatform[PlatformTeams],
		byPlatform[PlatformGroupMe],
	}, nil
}

func recordToSetting(r *secondary.SettingRecord, reveal bool) *primary.Setting {
	value := r.Value
	if r.IsSecret && !reveal {
		value = maskedValue
	}
	return &primary.Setting{
		Key:       r.Key,
		Value:     value,
		Category:  r.Category,
		IsSecret:  r.IsSecret,
		Enabled:   r.Enabled,
		UpdatedBy: r.UpdatedBy,
		UpdatedAt: r.UpdatedAt,
	}
}

var _ primary.SettingsService = (*SettingsServiceImpl)(nil)
