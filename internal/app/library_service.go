package app

import (
	"context"
	"fmt"

	"github.com/example/cobra/internal/core/checklist"
	"github.com/example/cobra/internal/ctxutil"
	"github.com/example/cobra/internal/ports/primary"
	"github.com/example/cobra/internal/ports/secondary"
)

// LibraryServiceImpl implements the LibraryService interface.
type LibraryServiceImpl struct {
	libraryRepo secondary.LibraryRepository
	logWriter   secondary.LogWriter
}

// NewLibraryService creates a new LibraryService with injected dependencies.
func NewLibraryService(libraryRepo secondary.LibraryRepository, logWriter secondary.LogWriter) *LibraryServiceImpl {
	return &LibraryServiceImpl{libraryRepo: libraryRepo, logWriter: logWriter}
}

// CreateEntry creates a new library entry.
func (s *LibraryServiceImpl) CreateEntry(ctx context.Context, req primary.CreateLibraryEntryRequest) (*primary.LibraryEntry, error) {
	if err := validateItemFields(req.Text, req.Type, req.StatusConfig); err != nil {
		return nil, err
	}
	if len(req.Category) > maxCategoryLen {
		return nil, primary.Invalid("category", fmt.Sprintf("must not exceed %d characters", maxCategoryLen))
	}

	encoded, err := checklist.EncodeStatusConfig(req.StatusConfig)
	if err != nil {
		return nil, err
	}

	nextID, err := s.libraryRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate library entry ID: %w", err)
	}

	record := &secondary.LibraryItemRecord{
		ID:           nextID,
		Text:         req.Text,
		Type:         req.Type,
		StatusConfig: encoded,
		Category:     req.Category,
		IsRequired:   req.IsRequired,
		CreatedBy:    ctxutil.Actor(ctx),
	}
	if err := s.libraryRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create library entry: %w", err)
	}

	s.logWriter.LogCreate(ctx, "library_item", nextID)
	return s.GetEntry(ctx, nextID)
}

// GetEntry retrieves a library entry by ID.
func (s *LibraryServiceImpl) GetEntry(ctx context.Context, entryID string) (*primary.LibraryEntry, error) {
	record, err := s.libraryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	return recordToLibraryEntry(record)
}

// ListEntries lists library entries, most used first.
func (s *LibraryServiceImpl) ListEntries(ctx context.Context, filters primary.LibraryFilters) ([]*primary.LibraryEntry, error) {
	records, err := s.libraryRepo.List(ctx, secondary.LibraryFilters{
		Category: filters.Category,
		Limit:    filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list library entries: %w", err)
	}

	entries := make([]*primary.LibraryEntry, len(records))
	for i, record := range records {
		entries[i], err = recordToLibraryEntry(record)
		if err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// UpdateEntry updates a library entry. The item type is immutable; changing
// it would invalidate the status configuration semantics.
func (s *LibraryServiceImpl) UpdateEntry(ctx context.Context, req primary.UpdateLibraryEntryRequest) (*primary.LibraryEntry, error) {
	record, err := s.libraryRepo.GetByID(ctx, req.EntryID)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		if len(*req.Text) > maxItemTextLen {
			return nil, primary.Invalid("text", fmt.Sprintf("must not exceed %d characters", maxItemTextLen))
		}
		s.logWriter.LogUpdate(ctx, "library_item", record.ID, "text", record.Text, *req.Text)
		record.Text = *req.Text
	}
	if req.Category != nil {
		if len(*req.Category) > maxCategoryLen {
			return nil, primary.Invalid("category", fmt.Sprintf("must not exceed %d characters", maxCategoryLen))
		}
		record.Category = *req.Category
	}
	if req.IsRequired != nil {
		record.IsRequired = *req.IsRequired
	}
	if req.StatusConfig != nil {
		if record.Type != checklist.TypeStatus {
			return nil, primary.ConflictError("library entry %s is not a status item", record.ID)
		}
		if err := checklist.ValidateStatusConfig(*req.StatusConfig); err != nil {
			return nil, primary.Invalid("statusConfig", err.Error())
		}
		encoded, err := checklist.EncodeStatusConfig(*req.StatusConfig)
		if err != nil {
			return nil, err
		}
		record.StatusConfig = encoded
	}

	if err := s.libraryRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return s.GetEntry(ctx, record.ID)
}

// DeleteEntry removes a library entry. Templates that already copied the
// entry keep their copies.
func (s *LibraryServiceImpl) DeleteEntry(ctx context.Context, entryID string) error {
	if _, err := s.libraryRepo.GetByID(ctx, entryID); err != nil {
		return err
	}
	if err := s.libraryRepo.Delete(ctx, entryID); err != nil {
		return err
	}
	s.logWriter.LogDelete(ctx, "library_item", entryID)
	return nil
}

func recordToLibraryEntry(r *secondary.LibraryItemRecord) (*primary.LibraryEntry, error) {
	config, err := checklist.ParseStatusConfig(r.StatusConfig)
	if err != nil {
		return nil, err
	}
	return &primary.LibraryEntry{
		ID:           r.ID,
		Text:         r.Text,
		Type:         r.Type,
		Category:     r.Category,
		IsRequired:   r.IsRequired,
		StatusConfig: config,
		UsageCount:   r.UsageCount,
		CreatedBy:    r.CreatedBy,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}, nil
}

var _ primary.LibraryService = (*LibraryServiceImpl)(nil)
