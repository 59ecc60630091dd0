package event

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/activity"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingHandler struct {
	eventTypes []string
	mu         sync.Mutex
	handled    []shared.DomainEvent
	err        error
	panicMsg   string
}

func (h *recordingHandler) Handle(_ context.Context, e shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, e)
	if h.panicMsg != "" {
		panic(h.panicMsg)
	}
	return h.err
}

func (h *recordingHandler) EventTypes() []string { return h.eventTypes }

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func clientCreated(orgID uuid.UUID) shared.DomainEvent {
	return shared.NewLifecycleEvent("client", "created", uuid.New(), orgID)
}

func TestPublish_Synchronous(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	typed := &recordingHandler{}
	wildcard := &recordingHandler{}
	other := &recordingHandler{}
	bus.Subscribe(typed, "client.created")
	bus.Subscribe(wildcard)
	bus.Subscribe(other, "product.created")

	require.NoError(t, bus.Publish(context.Background(), clientCreated(uuid.New()), clientCreated(uuid.New())))

	assert.Equal(t, 2, typed.count())
	assert.Equal(t, 2, wildcard.count())
	assert.Zero(t, other.count())
}

func TestPublish_HandlerFailuresAreIsolated(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{err: errors.New("boom")}
	panicking := &recordingHandler{panicMsg: "kaboom"}
	healthy := &recordingHandler{}
	bus.Subscribe(failing, "client.created")
	bus.Subscribe(panicking, "client.created")
	bus.Subscribe(healthy, "client.created")

	require.NoError(t, bus.Publish(context.Background(), clientCreated(uuid.New())))
	assert.Equal(t, 1, healthy.count())
}

func TestUnsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := &recordingHandler{eventTypes: []string{"client.created"}}
	bus.Subscribe(h)

	_ = bus.Publish(context.Background(), clientCreated(uuid.New()))
	bus.Unsubscribe(h)
	_ = bus.Publish(context.Background(), clientCreated(uuid.New()))

	assert.Equal(t, 1, h.count())
}

func TestStartStop_DrainsQueue(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := &recordingHandler{}
	bus.Subscribe(h)

	ctx := context.Background()
	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Start(ctx))

	for i := 0; i < 50; i++ {
		require.NoError(t, bus.Publish(ctx, clientCreated(uuid.New())))
	}

	stopCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	require.NoError(t, bus.Stop(stopCtx))
	require.NoError(t, bus.Stop(stopCtx))

	assert.Equal(t, 50, h.count())

	// after Stop publishing falls back to synchronous delivery
	require.NoError(t, bus.Publish(ctx, clientCreated(uuid.New())))
	assert.Equal(t, 51, h.count())
}

func TestPublish_QueuedDeliveryOutlivesRequestContext(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := &recordingHandler{}
	bus.Subscribe(h)
	require.NoError(t, bus.Start(context.Background()))

	reqCtx, cancel := context.WithCancel(context.Background())
	require.NoError(t, bus.Publish(reqCtx, clientCreated(uuid.New())))
	cancel()

	require.NoError(t, bus.Stop(context.Background()))
	assert.Equal(t, 1, h.count())
}

type memoryActivityRepo struct {
	mu      sync.Mutex
	entries []*activity.Entry
}

func (r *memoryActivityRepo) Append(_ context.Context, entries ...*activity.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entries...)
	return nil
}

func (r *memoryActivityRepo) List(context.Context, uuid.UUID, shared.Query, shared.Filter) ([]activity.Entry, int64, error) {
	return nil, 0, nil
}

func TestActivityLogHandler(t *testing.T) {
	repo := &memoryActivityRepo{}
	bus := NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(NewActivityLogHandler(repo))

	orgID := uuid.New()
	userID := uuid.New()
	ctx := logger.WithUserID(logger.WithContext(context.Background(), zap.NewNop()), userID.String())

	changed := shared.NewStatusChangedEvent("client", uuid.New(), orgID, "LEAD", "PROSPECT")
	require.NoError(t, bus.Publish(ctx, changed, shared.NewLifecycleEvent("user", "registered", uuid.New(), uuid.Nil)))

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, orgID, entry.OrganizationID)
	assert.Equal(t, "client.status_changed", entry.EventType)
	require.NotNil(t, entry.ActorID)
	assert.Equal(t, userID, *entry.ActorID)
	assert.JSONEq(t, `"PROSPECT"`, string(mustField(t, entry.Payload, "to")))
}

func mustField(t *testing.T, payload []byte, field string) []byte {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &m))
	return m[field]
}
