package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"MockECommerce/internal/api/domain/order"
	"MockECommerce/internal/api/messaging"

	"github.com/google/uuid"
	"github.com/opensearch-project/opensearch-go"
)

var (
	_ messaging.Publisher = (*OrderEventSink)(nil)
	_ order.EventHistory  = (*OrderEventSink)(nil)
)

const historyLimit = 500

// OrderEventSink stores order event envelopes as documents, one per event,
// and serves them back as an order's activity history.
type OrderEventSink struct {
	client *opensearch.Client
	index  string
}

func NewClient(urls []string) (*opensearch.Client, error) {
	if len(urls) == 0 {
		return nil, errors.New("no OpenSearch addresses configured")
	}

	client, err := opensearch.NewClient(opensearch.Config{
		Addresses: urls,
		Transport: &http.Transport{MaxIdleConnsPerHost: 10},
	})
	if err != nil {
		return nil, fmt.Errorf("opensearch client: %w", err)
	}
	return client, nil
}

// NewOrderEventSink creates the index when it does not exist yet.
func NewOrderEventSink(ctx context.Context, client *opensearch.Client, index string) (*OrderEventSink, error) {
	sink := &OrderEventSink{client: client, index: index}
	if err := sink.ensureIndex(ctx); err != nil {
		return nil, err
	}
	return sink, nil
}

func (s *OrderEventSink) ensureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("indices.exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body := map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"event_id":    map[string]any{"type": "keyword"},
				"order_id":    map[string]any{"type": "keyword"},
				"kind":        map[string]any{"type": "keyword"},
				"occurred_at": map[string]any{"type": "date"},
				"order":       map[string]any{"type": "object", "enabled": true},
			},
		},
		"settings": map[string]any{
			"number_of_replicas": 0,
		},
	}
	buf, _ := json.Marshal(body)

	cr, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithBody(bytes.NewReader(buf)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("indices.create: %w", err)
	}
	defer cr.Body.Close()
	// A concurrent creator may have won the race.
	if cr.IsError() && cr.StatusCode != http.StatusBadRequest {
		return fmt.Errorf("indices.create error: %s", cr.String())
	}
	return nil
}

type orderEventDoc struct {
	EventID    string          `json:"event_id"`
	OrderID    string          `json:"order_id"`
	Kind       order.EventKind `json:"kind"`
	Order      order.OrderDto  `json:"order"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Publish indexes env under its event id, so redelivered messages overwrite
// instead of duplicating.
func (s *OrderEventSink) Publish(ctx context.Context, env messaging.Envelope) error {
	var event order.Event
	if err := json.Unmarshal(env.Payload, &event); err != nil {
		return messaging.Permanent(fmt.Errorf("decode order event: %w", err))
	}

	doc := orderEventDoc{
		EventID:    env.EventID,
		OrderID:    env.Key,
		Kind:       event.Kind,
		Order:      event.Order,
		OccurredAt: event.OccurredAt.UTC(),
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(payload),
		s.client.Index.WithDocumentID(env.EventID),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index error: %s", res.String())
	}
	return nil
}

func (s *OrderEventSink) GetOrderEvents(ctx context.Context, orderID uuid.UUID) ([]order.ActivityRecord, error) {
	body := map[string]any{
		"size": historyLimit,
		"query": map[string]any{
			"bool": map[string]any{
				"filter": []map[string]any{
					{"term": map[string]any{"order_id": orderID.String()}},
				},
			},
		},
		"sort": []map[string]any{
			{"occurred_at": map[string]any{"order": "asc"}},
		},
	}
	raw, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(raw)),
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.String())
	}

	var sr struct {
		Hits struct {
			Hits []struct {
				ID     string        `json:"_id"`
				Source orderEventDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode search: %w", err)
	}

	out := make([]order.ActivityRecord, 0, len(sr.Hits.Hits))
	for _, h := range sr.Hits.Hits {
		eventID := h.Source.EventID
		if eventID == "" {
			eventID = h.ID
		}
		out = append(out, order.ActivityRecord{
			EventID:    eventID,
			Kind:       h.Source.Kind,
			Order:      h.Source.Order,
			OccurredAt: h.Source.OccurredAt,
		})
	}
	return out, nil
}

func (s *OrderEventSink) Close() error {
	return nil
}
