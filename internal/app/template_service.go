// Package app implements the primary ports: business logic and validation
// between the HTTP adapter and the repositories.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/cobra/internal/core/checklist"
	"github.com/example/cobra/internal/ctxutil"
	"github.com/example/cobra/internal/ports/primary"
	"github.com/example/cobra/internal/ports/secondary"
)

// Field size limits enforced before business logic runs.
const (
	maxNameLen     = 200
	maxItemTextLen = 500
	maxCategoryLen = 100
	maxNotesLen    = 2000
	maxBodyLen     = 4000
)

// TemplateServiceImpl implements the TemplateService interface.
type TemplateServiceImpl struct {
	templateRepo secondary.TemplateRepository
	libraryRepo  secondary.LibraryRepository
	logWriter    secondary.LogWriter
	notifier     secondary.Notifier
}

// NewTemplateService creates a new TemplateService with injected dependencies.
func NewTemplateService(
	templateRepo secondary.TemplateRepository,
	libraryRepo secondary.LibraryRepository,
	logWriter secondary.LogWriter,
	notifier secondary.Notifier,
) *TemplateServiceImpl {
	return &TemplateServiceImpl{
		templateRepo: templateRepo,
		libraryRepo:  libraryRepo,
		logWriter:    logWriter,
		notifier:     notifier,
	}
}

// CreateTemplate creates a new template, optionally with initial items.
func (s *TemplateServiceImpl) CreateTemplate(ctx context.Context, req primary.CreateTemplateRequest) (*primary.Template, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, primary.Invalid("name", "must not be empty")
	}
	if len(req.Name) > maxNameLen {
		return nil, primary.Invalid("name", fmt.Sprintf("must not exceed %d characters", maxNameLen))
	}
	for i, item := range req.Items {
		if err := validateItemFields(item.Text, item.Type, item.StatusConfig); err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
	}

	nextID, err := s.templateRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate template ID: %w", err)
	}

	record := &secondary.TemplateRecord{
		ID:          nextID,
		Name:        req.Name,
		Category:    req.Category,
		Tags:        strings.Join(req.Tags, ","),
		Description: req.Description,
		IsActive:    true,
		CreatedBy:   ctxutil.Actor(ctx),
	}
	if err := s.templateRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	for i, item := range req.Items {
		if _, err := s.addItem(ctx, nextID, item.Text, item.Type, item.IsRequired, item.StatusConfig, i+1); err != nil {
			return nil, err
		}
	}

	s.logWriter.LogCreate(ctx, "template", nextID)
	s.notifier.Broadcast(ctx, secondary.Event{Name: "template.created", Payload: map[string]string{"id": nextID}})

	return s.GetTemplate(ctx, nextID)
}

// GetTemplate retrieves a template with its items.
func (s *TemplateServiceImpl) GetTemplate(ctx context.Context, templateID string) (*primary.Template, error) {
	record, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	items, err := s.templateRepo.ListItems(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load template items: %w", err)
	}

	template := recordToTemplate(record)
	template.Items = make([]*primary.TemplateItem, len(items))
	for i, item := range items {
		template.Items[i], err = recordToTemplateItem(item)
		if err != nil {
			return nil, err
		}
	}
	return template, nil
}

// ListTemplates lists templates with optional filters.
func (s *TemplateServiceImpl) ListTemplates(ctx context.Context, filters primary.TemplateFilters) ([]*primary.Template, error) {
	records, err := s.templateRepo.List(ctx, secondary.TemplateFilters{
		Category:        filters.Category,
		Name:            filters.Name,
		ActiveOnly:      filters.ActiveOnly,
		IncludeArchived: filters.IncludeArchived,
		Limit:           filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	templates := make([]*primary.Template, len(records))
	for i, r := range records {
		templates[i] = recordToTemplate(r)
	}
	return templates, nil
}

// UpdateTemplate updates a template's editable fields.
func (s *TemplateServiceImpl) UpdateTemplate(ctx context.Context, req primary.UpdateTemplateRequest) (*primary.Template, error) {
	record, err := s.templateRepo.GetByID(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, primary.Invalid("name", "must not be empty")
		}
		if len(*req.Name) > maxNameLen {
			return nil, primary.Invalid("name", fmt.Sprintf("must not exceed %d characters", maxNameLen))
		}
		s.logWriter.LogUpdate(ctx, "template", record.ID, "name", record.Name, *req.Name)
		record.Name = *req.Name
	}
	if req.Category != nil {
		record.Category = *req.Category
	}
	if req.Tags != nil {
		record.Tags = strings.Join(*req.Tags, ",")
	}
	if req.Description != nil {
		record.Description = *req.Description
	}
	if req.IsActive != nil && *req.IsActive != record.IsActive {
		s.logWriter.LogUpdate(ctx, "template", record.ID, "is_active",
			fmt.Sprintf("%t", record.IsActive), fmt.Sprintf("%t", *req.IsActive))
		record.IsActive = *req.IsActive
	}

	if err := s.templateRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.notifier.Broadcast(ctx, secondary.Event{Name: "template.updated", Payload: map[string]string{"id": record.ID}})
	return s.GetTemplate(ctx, record.ID)
}

// ArchiveTemplate soft-deletes a template.
func (s *TemplateServiceImpl) ArchiveTemplate(ctx context.Context, templateID string) error {
	if err := s.templateRepo.SetArchived(ctx, templateID, true); err != nil {
		return err
	}
	s.logWriter.LogUpdate(ctx, "template", templateID, "archived", "false", "true")
	s.notifier.Broadcast(ctx, secondary.Event{Name: "template.archived", Payload: map[string]string{"id": templateID}})
	return nil
}

// RestoreTemplate reverses an archive.
func (s *TemplateServiceImpl) RestoreTemplate(ctx context.Context, templateID string) error {
	if err := s.templateRepo.SetArchived(ctx, templateID, false); err != nil {
		return err
	}
	s.logWriter.LogUpdate(ctx, "template", templateID, "archived", "true", "false")
	s.notifier.Broadcast(ctx, secondary.Event{Name: "template.restored", Payload: map[string]string{"id": templateID}})
	return nil
}

// AddItem appends an item to a template.
func (s *TemplateServiceImpl) AddItem(ctx context.Context, req primary.AddTemplateItemRequest) (*primary.TemplateItem, error) {
	if err := validateItemFields(req.Text, req.Type, req.StatusConfig); err != nil {
		return nil, err
	}
	if _, err := s.templateRepo.GetByID(ctx, req.TemplateID); err != nil {
		return nil, err
	}

	existing, err := s.templateRepo.ListItems(ctx, req.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load template items: %w", err)
	}

	return s.addItem(ctx, req.TemplateID, req.Text, req.Type, req.IsRequired, req.StatusConfig, len(existing)+1)
}

// addItem persists one template item at the given display order.
func (s *TemplateServiceImpl) addItem(ctx context.Context, templateID, text, itemType string, required bool, config []checklist.StatusOption, order int) (*primary.TemplateItem, error) {
	encoded, err := checklist.EncodeStatusConfig(config)
	if err != nil {
		return nil, err
	}

	itemID, err := s.templateRepo.GetNextItemID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate item ID: %w", err)
	}

	record := &secondary.TemplateItemRecord{
		ID:           itemID,
		TemplateID:   templateID,
		Text:         text,
		Type:         itemType,
		DisplayOrder: order,
		IsRequired:   required,
		StatusConfig: encoded,
	}
	if err := s.templateRepo.AddItem(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}

	return recordToTemplateItem(record)
}

// UpdateItem updates a template item.
func (s *TemplateServiceImpl) UpdateItem(ctx context.Context, req primary.UpdateTemplateItemRequest) (*primary.TemplateItem, error) {
	record, err := s.templateRepo.GetItem(ctx, req.TemplateID, req.ItemID)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		if strings.TrimSpace(*req.Text) == "" {
			return nil, primary.Invalid("text", "must not be empty")
		}
		if len(*req.Text) > maxItemTextLen {
			return nil, primary.Invalid("text", fmt.Sprintf("must not exceed %d characters", maxItemTextLen))
		}
		record.Text = *req.Text
	}
	if req.IsRequired != nil {
		record.IsRequired = *req.IsRequired
	}
	if req.StatusConfig != nil {
		if record.Type != checklist.TypeStatus {
			return nil, primary.ConflictError("item %s is not a status item", record.ID)
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

	if err := s.templateRepo.UpdateItem(ctx, record); err != nil {
		return nil, err
	}
	s.logWriter.LogUpdate(ctx, "template_item", record.ID, "item", "", record.Text)
	return recordToTemplateItem(record)
}

// RemoveItem deletes a template item.
func (s *TemplateServiceImpl) RemoveItem(ctx context.Context, templateID, itemID string) error {
	if err := s.templateRepo.RemoveItem(ctx, templateID, itemID); err != nil {
		return err
	}
	s.logWriter.LogDelete(ctx, "template_item", itemID)
	return nil
}

// ReorderItems resequences a template's items to the given ID order.
func (s *TemplateServiceImpl) ReorderItems(ctx context.Context, templateID string, orderedItemIDs []string) error {
	items, err := s.templateRepo.ListItems(ctx, templateID)
	if err != nil {
		return fmt.Errorf("failed to load template items: %w", err)
	}
	if len(orderedItemIDs) != len(items) {
		return primary.Invalid("items", "reorder must include every item exactly once")
	}
	known := make(map[string]bool, len(items))
	for _, item := range items {
		known[item.ID] = true
	}
	for _, id := range orderedItemIDs {
		if !known[id] {
			return fmt.Errorf("template item %s: %w", id, secondary.ErrNotFound)
		}
		delete(known, id)
	}

	if err := s.templateRepo.ReorderItems(ctx, templateID, orderedItemIDs); err != nil {
		return err
	}
	s.logWriter.LogUpdate(ctx, "template", templateID, "item_order", "", strings.Join(orderedItemIDs, ","))
	return nil
}

// InsertLibraryItem copies a library entry into the template and increments
// the entry's usage counter.
func (s *TemplateServiceImpl) InsertLibraryItem(ctx context.Context, templateID, libraryItemID string) (*primary.TemplateItem, error) {
	if _, err := s.templateRepo.GetByID(ctx, templateID); err != nil {
		return nil, err
	}
	entry, err := s.libraryRepo.GetByID(ctx, libraryItemID)
	if err != nil {
		return nil, err
	}

	existing, err := s.templateRepo.ListItems(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load template items: %w", err)
	}

	config, err := checklist.ParseStatusConfig(entry.StatusConfig)
	if err != nil {
		return nil, err
	}

	item, err := s.addItem(ctx, templateID, entry.Text, entry.Type, entry.IsRequired, config, len(existing)+1)
	if err != nil {
		return nil, err
	}

	if err := s.libraryRepo.RecordUse(ctx, libraryItemID); err != nil {
		return nil, fmt.Errorf("failed to record library use: %w", err)
	}
	s.logWriter.LogUpdate(ctx, "template", templateID, "library_insert", "", libraryItemID)
	return item, nil
}

// validateItemFields checks the shared item constraints before persistence.
func validateItemFields(text, itemType string, config []checklist.StatusOption) error {
	if strings.TrimSpace(text) == "" {
		return primary.Invalid("text", "must not be empty")
	}
	if len(text) > maxItemTextLen {
		return primary.Invalid("text", fmt.Sprintf("must not exceed %d characters", maxItemTextLen))
	}
	if !checklist.ValidItemType(itemType) {
		return primary.Invalid("type", "must be checkbox or status")
	}
	if itemType == checklist.TypeStatus {
		if err := checklist.ValidateStatusConfig(config); err != nil {
			return primary.Invalid("statusConfig", err.Error())
		}
	} else if len(config) > 0 {
		return primary.Invalid("statusConfig", "checkbox items must not carry a status configuration")
	}
	return nil
}

// Helper conversions

func recordToTemplate(r *secondary.TemplateRecord) *primary.Template {
	var tags []string
	if r.Tags != "" {
		tags = strings.Split(r.Tags, ",")
	}
	return &primary.Template{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Tags:        tags,
		Description: r.Description,
		IsActive:    r.IsActive,
		Archived:    r.Archived,
		UsageCount:  r.UsageCount,
		LastUsedAt:  r.LastUsedAt,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func recordToTemplateItem(r *secondary.TemplateItemRecord) (*primary.TemplateItem, error) {
	config, err := checklist.ParseStatusConfig(r.StatusConfig)
	if err != nil {
		return nil, err
	}
	return &primary.TemplateItem{
		ID:           r.ID,
		TemplateID:   r.TemplateID,
		Text:         r.Text,
		Type:         r.Type,
		DisplayOrder: r.DisplayOrder,
		IsRequired:   r.IsRequired,
		StatusConfig: config,
	}, nil
}

var _ primary.TemplateService = (*TemplateServiceImpl)(nil)
