package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/cobra/internal/ports/secondary"
)

// ChannelRepository implements secondary.ChannelRepository with SQLite.
type ChannelRepository struct {
	db *sql.DB
}

// NewChannelRepository creates a new SQLite channel repository.
func NewChannelRepository(db *sql.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

const channelSelectCols = "id, name, platform, external_ref, enabled, created_by, created_at, updated_at"

// scanChannel scans a channel row into a ChannelRecord.
func scanChannel(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ChannelRecord, error) {
	var (
		externalRef sql.NullString
		createdBy   sql.NullString
		createdAt   time.Time
		updatedAt   time.Time
	)

	record := &secondary.ChannelRecord{}
	err := scanner.Scan(
		&record.ID, &record.Name, &record.Platform, &externalRef,
		&record.Enabled, &createdBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.ExternalRef = externalRef.String
	record.CreatedBy = createdBy.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// Create persists a new channel.
func (r *ChannelRepository) Create(ctx context.Context, channel *secondary.ChannelRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO channels (id, name, platform, external_ref, enabled, created_by) VALUES (?, ?, ?, ?, ?, ?)",
		channel.ID, channel.Name, channel.Platform, nullable(channel.ExternalRef),
		channel.Enabled, nullable(channel.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to create channel: %w", err)
	}
	return nil
}

// GetByID retrieves a channel by its ID.
func (r *ChannelRepository) GetByID(ctx context.Context, id string) (*secondary.ChannelRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+channelSelectCols+" FROM channels WHERE id = ?", id)

	record, err := scanChannel(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("channel %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}
	return record, nil
}

// List retrieves all channels, newest first.
func (r *ChannelRepository) List(ctx context.Context) ([]*secondary.ChannelRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+channelSelectCols+" FROM channels ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ChannelRecord
	for rows.Next() {
		record, err := scanChannel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// GetByExternalRef retrieves the channel bound to a platform reference.
func (r *ChannelRepository) GetByExternalRef(ctx context.Context, platform, externalRef string) (*secondary.ChannelRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+channelSelectCols+" FROM channels WHERE platform = ? AND external_ref = ?",
		platform, externalRef,
	)

	record, err := scanChannel(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("channel for %s reference: %w", platform, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel by reference: %w", err)
	}
	return record, nil
}

// SetEnabled toggles the channel's relay flag.
func (r *ChannelRepository) SetEnabled(ctx context.Context, id string, enabled bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE channels SET enabled = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		enabled, id,
	)
	if err != nil {
		return fmt.Errorf("failed to toggle channel: %w", err)
	}
	return requireRow(result, "channel", id)
}

// GetNextID returns the next available channel ID.
func (r *ChannelRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM channels",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next channel ID: %w", err)
	}
	return fmt.Sprintf("CHAN-%03d", maxID+1), nil
}

var _ secondary.ChannelRepository = (*ChannelRepository)(nil)
