package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/cobra/internal/adapters/sqlite"
	"github.com/example/cobra/internal/ports/secondary"
)

func TestChannelRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewChannelRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, &secondary.ChannelRecord{
		ID:          "CHAN-001",
		Name:        "EOC Bridge",
		Platform:    "teams",
		ExternalRef: "https://example.test/webhook/abc",
		Enabled:     true,
		CreatedBy:   "admin@example.org",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	record, err := repo.GetByID(ctx, "CHAN-001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if record.Platform != "teams" || record.ExternalRef != "https://example.test/webhook/abc" {
		t.Errorf("expected platform binding round-trip, got %+v", record)
	}
	if !record.Enabled {
		t.Error("expected channel enabled")
	}
}

func TestChannelRepository_GetByExternalRef(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewChannelRepository(db)
	ctx := context.Background()
	seedChannel(t, db, "CHAN-001", "groupme", "bot-42")
	seedChannel(t, db, "CHAN-002", "teams", "bot-42")

	record, err := repo.GetByExternalRef(ctx, "groupme", "bot-42")
	if err != nil {
		t.Fatalf("get by ref: %v", err)
	}
	if record.ID != "CHAN-001" {
		t.Errorf("expected platform-scoped lookup, got %s", record.ID)
	}

	_, err = repo.GetByExternalRef(ctx, "groupme", "bot-99")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unbound ref, got %v", err)
	}
}

func TestChannelRepository_SetEnabled(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewChannelRepository(db)
	ctx := context.Background()
	seedChannel(t, db, "CHAN-001", "teams", "ref-1")

	if err := repo.SetEnabled(ctx, "CHAN-001", false); err != nil {
		t.Fatalf("disable: %v", err)
	}
	record, _ := repo.GetByID(ctx, "CHAN-001")
	if record.Enabled {
		t.Error("expected channel disabled")
	}

	err := repo.SetEnabled(ctx, "CHAN-404", false)
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestChannelRepository_GetNextID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewChannelRepository(db)
	ctx := context.Background()

	id, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("next id: %v", err)
	}
	if id != "CHAN-001" {
		t.Errorf("expected CHAN-001 on empty table, got %s", id)
	}

	seedChannel(t, db, "CHAN-004", "", "")
	id, err = repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("next id: %v", err)
	}
	if id != "CHAN-005" {
		t.Errorf("expected CHAN-005 after CHAN-004, got %s", id)
	}
}

func TestMessageRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewMessageRepository(db)
	ctx := context.Background()
	seedChannel(t, db, "CHAN-001", "", "")

	for i, id := range []string{"MSG-001", "MSG-002", "MSG-003"} {
		err := repo.Create(ctx, &secondary.MessageRecord{
			ID:        id,
			ChannelID: "CHAN-001",
			Sender:    "ops@example.org",
			Body:      "update",
			Source:    "internal",
		})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	records, err := repo.List(ctx, "CHAN-001", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(records))
	}
	if records[0].ID != "MSG-003" {
		t.Errorf("expected newest first, got %s", records[0].ID)
	}

	records, err = repo.List(ctx, "CHAN-001", 2)
	if err != nil {
		t.Fatalf("list with limit: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected limit applied, got %d", len(records))
	}
}

func TestMessageRepository_ExternalIDExists(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewMessageRepository(db)
	ctx := context.Background()
	seedChannel(t, db, "CHAN-001", "", "")

	err := repo.Create(ctx, &secondary.MessageRecord{
		ID: "MSG-001", ChannelID: "CHAN-001", Sender: "gm", Body: "hi",
		Source: "groupme", ExternalID: "ext-123",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	exists, err := repo.ExternalIDExists(ctx, "ext-123")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Error("expected known external ID to exist")
	}

	exists, err = repo.ExternalIDExists(ctx, "ext-999")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Error("expected unknown external ID to be absent")
	}
}

func TestMessageRepository_MarkRelayed(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewMessageRepository(db)
	ctx := context.Background()
	seedChannel(t, db, "CHAN-001", "", "")

	err := repo.Create(ctx, &secondary.MessageRecord{
		ID: "MSG-001", ChannelID: "CHAN-001", Sender: "ops", Body: "out", Source: "internal",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.MarkRelayed(ctx, "MSG-001", true); err != nil {
		t.Fatalf("mark relayed: %v", err)
	}
	record, _ := repo.GetByID(ctx, "MSG-001")
	if !record.Relayed {
		t.Error("expected relayed flag set")
	}

	err = repo.MarkRelayed(ctx, "MSG-404", true)
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
