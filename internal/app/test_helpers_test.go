package app

import (
	"context"
	"sync"

	"github.com/example/cobra/internal/ctxutil"
	"github.com/example/cobra/internal/ports/secondary"
)

// Ensure the shared mocks implement their interfaces
var (
	_ secondary.LogWriter = (*mockLogWriter)(nil)
	_ secondary.Notifier  = (*mockNotifier)(nil)
)

// mockLogWriter implements secondary.LogWriter for testing.
type mockLogWriter struct {
	creates []string // "entityType/entityID"
	updates []string // "entityType/entityID/fieldName"
	deletes []string // "entityType/entityID"
}

func newMockLogWriter() *mockLogWriter {
	return &mockLogWriter{}
}

func (m *mockLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	m.creates = append(m.creates, entityType+"/"+entityID)
	return nil
}

func (m *mockLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	m.updates = append(m.updates, entityType+"/"+entityID+"/"+fieldName)
	return nil
}

func (m *mockLogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	m.deletes = append(m.deletes, entityType+"/"+entityID)
	return nil
}

// mockNotifier implements secondary.Notifier for testing. Broadcast is
// guarded so the concurrent relay tests can share one instance.
type mockNotifier struct {
	mu     sync.Mutex
	events []secondary.Event
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{}
}

func (m *mockNotifier) Broadcast(ctx context.Context, event secondary.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *mockNotifier) eventNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.events))
	for i, e := range m.events {
		names[i] = e.Name
	}
	return names
}

// userContext returns a context carrying a non-admin identity with the given
// positions.
func userContext(email string, positions ...string) context.Context {
	return ctxutil.WithUser(context.Background(), ctxutil.User{
		Email:     email,
		Name:      email,
		Positions: positions,
	})
}

// adminContext returns a context carrying an admin identity.
func adminContext(email string) context.Context {
	return ctxutil.WithUser(context.Background(), ctxutil.User{
		Email:   email,
		Name:    email,
		IsAdmin: true,
	})
}
