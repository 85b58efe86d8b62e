package opensearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"MockECommerce/internal/api/domain/order"
	"MockECommerce/internal/api/messaging"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCluster mimics the handful of OpenSearch endpoints the sink calls.
type fakeCluster struct {
	mu          sync.Mutex
	indexExists bool
	created     int
	docs        map[string]json.RawMessage
	lastSearch  map[string]any
	searchHits  []map[string]any
}

func (f *fakeCluster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/":
		_, _ = io.WriteString(w, `{"version":{"number":"2.11.0","distribution":"opensearch"}}`)
	case r.Method == http.MethodHead && r.URL.Path == "/order-events":
		if !f.indexExists {
			w.WriteHeader(http.StatusNotFound)
		}
	case r.Method == http.MethodPut && r.URL.Path == "/order-events":
		f.indexExists = true
		f.created++
		_, _ = io.WriteString(w, `{"acknowledged":true}`)
	case strings.HasPrefix(r.URL.Path, "/order-events/_doc/"):
		body, _ := io.ReadAll(r.Body)
		f.docs[strings.TrimPrefix(r.URL.Path, "/order-events/_doc/")] = body
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	case strings.HasSuffix(r.URL.Path, "/_search"):
		_ = json.NewDecoder(r.Body).Decode(&f.lastSearch)
		_ = json.NewEncoder(w).Encode(map[string]any{"hits": map[string]any{"hits": f.searchHits}})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newSink(t *testing.T, cluster *fakeCluster) *OrderEventSink {
	t.Helper()

	srv := httptest.NewServer(cluster)
	t.Cleanup(srv.Close)

	client, err := NewClient([]string{srv.URL})
	require.NoError(t, err)

	sink, err := NewOrderEventSink(context.Background(), client, "order-events")
	require.NoError(t, err)
	return sink
}

func TestNewOrderEventSink(t *testing.T) {
	t.Run("should create missing index once", func(t *testing.T) {
		cluster := &fakeCluster{docs: map[string]json.RawMessage{}}

		newSink(t, cluster)

		assert.Equal(t, 1, cluster.created)
	})

	t.Run("should reuse existing index", func(t *testing.T) {
		cluster := &fakeCluster{indexExists: true, docs: map[string]json.RawMessage{}}

		newSink(t, cluster)

		assert.Zero(t, cluster.created)
	})

	t.Run("should require addresses", func(t *testing.T) {
		_, err := NewClient(nil)
		assert.Error(t, err)
	})
}

func TestOrderEventSink_Publish(t *testing.T) {
	cluster := &fakeCluster{docs: map[string]json.RawMessage{}}
	sink := newSink(t, cluster)
	orderID := uuid.New()
	occurred := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

	t.Run("should index envelope under its event id", func(t *testing.T) {
		event := order.Event{Kind: order.EventCreated, Order: order.OrderDto{ID: orderID, Status: "Pending"}, OccurredAt: occurred}
		env, err := messaging.NewEnvelope(orderID.String(), string(event.Kind), event, occurred)
		require.NoError(t, err)

		require.NoError(t, sink.Publish(context.Background(), env))

		require.Contains(t, cluster.docs, env.EventID)
		var doc orderEventDoc
		require.NoError(t, json.Unmarshal(cluster.docs[env.EventID], &doc))
		assert.Equal(t, orderID.String(), doc.OrderID)
		assert.Equal(t, order.EventCreated, doc.Kind)
		assert.Equal(t, "Pending", doc.Order.Status)
		assert.True(t, occurred.Equal(doc.OccurredAt))
	})

	t.Run("should flag undecodable payload as permanent", func(t *testing.T) {
		env := messaging.Envelope{EventID: "e-bad", Key: orderID.String(), Payload: json.RawMessage(`"oops"`)}

		err := sink.Publish(context.Background(), env)

		require.Error(t, err)
		assert.True(t, messaging.IsPermanent(err))
	})
}

func TestOrderEventSink_GetOrderEvents(t *testing.T) {
	orderID := uuid.New()
	cluster := &fakeCluster{
		indexExists: true,
		docs:        map[string]json.RawMessage{},
		searchHits: []map[string]any{
			{"_id": "e1", "_source": map[string]any{"event_id": "e1", "order_id": orderID.String(), "kind": "order.created", "occurred_at": "2025-04-01T10:00:00Z"}},
			{"_id": "e2", "_source": map[string]any{"order_id": orderID.String(), "kind": "order.deleted", "occurred_at": "2025-04-02T10:00:00Z"}},
		},
	}
	sink := newSink(t, cluster)

	records, err := sink.GetOrderEvents(context.Background(), orderID)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "e1", records[0].EventID)
	assert.Equal(t, "e2", records[1].EventID)
	assert.Equal(t, order.EventDeleted, records[1].Kind)

	query, _ := json.Marshal(cluster.lastSearch["query"])
	assert.Contains(t, string(query), orderID.String())
}
