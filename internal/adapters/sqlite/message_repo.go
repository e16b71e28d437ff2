package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/cobra/internal/ports/secondary"
)

// MessageRepository implements secondary.MessageRepository with SQLite.
type MessageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new SQLite message repository.
func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageSelectCols = "id, channel_id, sender, body, source, external_id, relayed, created_at"

// scanMessage scans a message row into a MessageRecord.
func scanMessage(scanner interface {
	Scan(dest ...any) error
}) (*secondary.MessageRecord, error) {
	var (
		externalID sql.NullString
		createdAt  time.Time
	)

	record := &secondary.MessageRecord{}
	err := scanner.Scan(
		&record.ID, &record.ChannelID, &record.Sender, &record.Body,
		&record.Source, &externalID, &record.Relayed, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	record.ExternalID = externalID.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// Create persists a new message.
func (r *MessageRepository) Create(ctx context.Context, message *secondary.MessageRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO messages (id, channel_id, sender, body, source, external_id, relayed) VALUES (?, ?, ?, ?, ?, ?, ?)",
		message.ID, message.ChannelID, message.Sender, message.Body,
		message.Source, nullable(message.ExternalID), message.Relayed,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// GetByID retrieves a message by its ID.
func (r *MessageRepository) GetByID(ctx context.Context, id string) (*secondary.MessageRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+messageSelectCols+" FROM messages WHERE id = ?", id)

	record, err := scanMessage(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("message %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return record, nil
}

// List retrieves a channel's messages, newest first.
func (r *MessageRepository) List(ctx context.Context, channelID string, limit int) ([]*secondary.MessageRecord, error) {
	query := "SELECT " + messageSelectCols + " FROM messages WHERE channel_id = ? ORDER BY created_at DESC, id DESC"
	args := []any{channelID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var records []*secondary.MessageRecord
	for rows.Next() {
		record, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// ExternalIDExists reports whether an inbound message was already ingested.
func (r *MessageRepository) ExternalIDExists(ctx context.Context, externalID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM messages WHERE external_id = ?", externalID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check external ID: %w", err)
	}
	return count > 0, nil
}

// MarkRelayed records the outcome of the outbound relay.
func (r *MessageRepository) MarkRelayed(ctx context.Context, id string, relayed bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE messages SET relayed = ? WHERE id = ?", relayed, id)
	if err != nil {
		return fmt.Errorf("failed to mark message relayed: %w", err)
	}
	return requireRow(result, "message", id)
}

// GetNextID returns the next available message ID.
func (r *MessageRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM messages",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next message ID: %w", err)
	}
	return fmt.Sprintf("MSG-%03d", maxID+1), nil
}

var _ secondary.MessageRepository = (*MessageRepository)(nil)
