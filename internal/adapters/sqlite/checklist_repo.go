package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/cobra/internal/ports/secondary"
)

// ChecklistRepository implements secondary.ChecklistRepository with SQLite.
type ChecklistRepository struct {
	db *sql.DB
}

// NewChecklistRepository creates a new SQLite checklist repository.
func NewChecklistRepository(db *sql.DB) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

const checklistSelectCols = `id, template_id, name, event_ref, operational_period_ref,
	assigned_positions, progress_pct, total_items, completed_items, required_items,
	required_items_completed, archived, archived_at, archived_by, created_by, created_at, updated_at`

// scanChecklist scans a checklist row into a ChecklistRecord.
func scanChecklist(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ChecklistRecord, error) {
	var (
		eventRef   sql.NullString
		opRef      sql.NullString
		positions  sql.NullString
		archivedAt sql.NullTime
		archivedBy sql.NullString
		createdBy  sql.NullString
		createdAt  time.Time
		updatedAt  time.Time
	)

	record := &secondary.ChecklistRecord{}
	err := scanner.Scan(
		&record.ID, &record.TemplateID, &record.Name, &eventRef, &opRef,
		&positions, &record.ProgressPct, &record.TotalItems, &record.CompletedItems,
		&record.RequiredItems, &record.RequiredItemsCompleted, &record.Archived,
		&archivedAt, &archivedBy, &createdBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.EventRef = eventRef.String
	record.OperationalPeriodRef = opRef.String
	record.AssignedPositions = positions.String
	record.ArchivedBy = archivedBy.String
	record.CreatedBy = createdBy.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	if archivedAt.Valid {
		record.ArchivedAt = archivedAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

// Create persists a new checklist and its items in one transaction.
// Item IDs are minted here so the whole instantiation is atomic.
func (r *ChecklistRepository) Create(ctx context.Context, checklist *secondary.ChecklistRecord, items []*secondary.ChecklistItemRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin create transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO checklists (id, template_id, name, event_ref, operational_period_ref,
			assigned_positions, progress_pct, total_items, completed_items, required_items,
			required_items_completed, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		checklist.ID, checklist.TemplateID, checklist.Name,
		nullable(checklist.EventRef), nullable(checklist.OperationalPeriodRef),
		nullable(checklist.AssignedPositions), checklist.ProgressPct,
		checklist.TotalItems, checklist.CompletedItems, checklist.RequiredItems,
		checklist.RequiredItemsCompleted, nullable(checklist.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to create checklist: %w", err)
	}

	var maxID int
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM checklist_items",
	).Scan(&maxID); err != nil {
		return fmt.Errorf("failed to get next checklist item ID: %w", err)
	}

	for _, item := range items {
		maxID++
		item.ID = fmt.Sprintf("CI-%03d", maxID)
		item.ChecklistID = checklist.ID

		_, err = tx.ExecContext(ctx,
			`INSERT INTO checklist_items (id, checklist_id, text, item_type, display_order,
				is_required, status_config, is_completed, current_status, notes, completed_by, completed_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, item.ChecklistID, item.Text, item.Type, item.DisplayOrder,
			item.IsRequired, nullable(item.StatusConfig), item.IsCompleted,
			nullable(item.CurrentStatus), nullable(item.Notes),
			nullable(item.CompletedBy), nullable(item.CompletedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to create checklist item: %w", err)
		}
	}

	return tx.Commit()
}

// GetByID retrieves a checklist by its ID.
func (r *ChecklistRepository) GetByID(ctx context.Context, id string) (*secondary.ChecklistRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+checklistSelectCols+" FROM checklists WHERE id = ?", id)

	record, err := scanChecklist(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("checklist %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checklist: %w", err)
	}
	return record, nil
}

// List retrieves checklists matching the given filters, newest first.
func (r *ChecklistRepository) List(ctx context.Context, filters secondary.ChecklistFilters) ([]*secondary.ChecklistRecord, error) {
	query := "SELECT " + checklistSelectCols + " FROM checklists WHERE 1=1"
	var args []any

	if !filters.IncludeArchived {
		query += " AND archived = 0"
	}
	if filters.TemplateID != "" {
		query += " AND template_id = ?"
		args = append(args, filters.TemplateID)
	}
	if filters.EventRef != "" {
		query += " AND event_ref = ?"
		args = append(args, filters.EventRef)
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklists: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ChecklistRecord
	for rows.Next() {
		record, err := scanChecklist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checklist: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// UpdateProgress persists the aggregate counters onto the checklist row.
func (r *ChecklistRepository) UpdateProgress(ctx context.Context, id string, progress secondary.ProgressRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE checklists SET progress_pct = ?, total_items = ?, completed_items = ?,
			required_items = ?, required_items_completed = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		progress.ProgressPct, progress.TotalItems, progress.CompletedItems,
		progress.RequiredItems, progress.RequiredItemsCompleted, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update checklist progress: %w", err)
	}
	return requireRow(result, "checklist", id)
}

// SetArchived archives or restores a checklist, stamping the actor.
func (r *ChecklistRepository) SetArchived(ctx context.Context, id string, archived bool, actor string) error {
	var result sql.Result
	var err error
	if archived {
		result, err = r.db.ExecContext(ctx,
			"UPDATE checklists SET archived = 1, archived_at = CURRENT_TIMESTAMP, archived_by = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			actor, id,
		)
	} else {
		result, err = r.db.ExecContext(ctx,
			"UPDATE checklists SET archived = 0, archived_at = NULL, archived_by = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			id,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to archive checklist: %w", err)
	}
	return requireRow(result, "checklist", id)
}

// UpdateAssignedPositions replaces the checklist's visibility list.
func (r *ChecklistRepository) UpdateAssignedPositions(ctx context.Context, id, positions string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE checklists SET assigned_positions = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		nullable(positions), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update assigned positions: %w", err)
	}
	return requireRow(result, "checklist", id)
}

const checklistItemSelectCols = `id, checklist_id, text, item_type, display_order, is_required,
	status_config, is_completed, current_status, notes, completed_by, completed_at, created_at, updated_at`

// scanChecklistItem scans a checklist item row into a ChecklistItemRecord.
func scanChecklistItem(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ChecklistItemRecord, error) {
	var (
		statusConfig  sql.NullString
		currentStatus sql.NullString
		notes         sql.NullString
		completedBy   sql.NullString
		completedAt   sql.NullTime
		createdAt     time.Time
		updatedAt     time.Time
	)

	record := &secondary.ChecklistItemRecord{}
	err := scanner.Scan(
		&record.ID, &record.ChecklistID, &record.Text, &record.Type,
		&record.DisplayOrder, &record.IsRequired, &statusConfig,
		&record.IsCompleted, &currentStatus, &notes, &completedBy,
		&completedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.StatusConfig = statusConfig.String
	record.CurrentStatus = currentStatus.String
	record.Notes = notes.String
	record.CompletedBy = completedBy.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	if completedAt.Valid {
		record.CompletedAt = completedAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

// GetItem retrieves one item belonging to a checklist.
func (r *ChecklistRepository) GetItem(ctx context.Context, checklistID, itemID string) (*secondary.ChecklistItemRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+checklistItemSelectCols+" FROM checklist_items WHERE id = ? AND checklist_id = ?",
		itemID, checklistID,
	)

	record, err := scanChecklistItem(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("checklist item %s: %w", itemID, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checklist item: %w", err)
	}
	return record, nil
}

// ListItems retrieves a checklist's items ordered by display order.
func (r *ChecklistRepository) ListItems(ctx context.Context, checklistID string) ([]*secondary.ChecklistItemRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+checklistItemSelectCols+" FROM checklist_items WHERE checklist_id = ? ORDER BY display_order, id",
		checklistID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ChecklistItemRecord
	for rows.Next() {
		record, err := scanChecklistItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checklist item: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// UpdateItemCompletion sets the completion flag and stamps. Empty stamps
// clear the columns.
func (r *ChecklistRepository) UpdateItemCompletion(ctx context.Context, itemID string, completed bool, completedBy, completedAt string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE checklist_items SET is_completed = ?, completed_by = ?, completed_at = ?,
			updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		completed, nullable(completedBy), nullable(completedAt), itemID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item completion: %w", err)
	}
	return requireRow(result, "checklist item", itemID)
}

// UpdateItemStatus sets a status item's current status label.
func (r *ChecklistRepository) UpdateItemStatus(ctx context.Context, itemID, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE checklist_items SET current_status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, itemID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item status: %w", err)
	}
	return requireRow(result, "checklist item", itemID)
}

// UpdateItemNotes replaces an item's notes verbatim; nil clears them.
func (r *ChecklistRepository) UpdateItemNotes(ctx context.Context, itemID string, notes *string) error {
	var value sql.NullString
	if notes != nil {
		value = sql.NullString{String: *notes, Valid: true}
	}
	result, err := r.db.ExecContext(ctx,
		"UPDATE checklist_items SET notes = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		value, itemID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item notes: %w", err)
	}
	return requireRow(result, "checklist item", itemID)
}

// GetNextID returns the next available checklist ID.
func (r *ChecklistRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM checklists",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next checklist ID: %w", err)
	}
	return fmt.Sprintf("CHK-%03d", maxID+1), nil
}

var _ secondary.ChecklistRepository = (*ChecklistRepository)(nil)
