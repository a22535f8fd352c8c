package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/raushan165/Taskpilot/internal/application"
	"github.com/raushan165/Taskpilot/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// ContactIndex stores contact submissions in an Elasticsearch index.
type ContactIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewContactIndex(es *elasticsearch.Client, index string) *ContactIndex {
	return &ContactIndex{es: es, index: index}
}

func (c *ContactIndex) Index(ctx context.Context, m *entity.ContactMessage) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: c.index, DocumentID: m.ID, Body: bytes.NewReader(b), Refresh: "false"}
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("es index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match over name, email, subject and message.
func (c *ContactIndex) Search(ctx context.Context, q string, size int) ([]entity.ContactMessage, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"subject^2", "message", "name", "email"},
			},
		},
		"size": size,
		"sort": []any{map[string]any{"created_at": map[string]any{"order": "desc", "unmapped_type": "date"}}},
	}
	if q == "" {
		query["query"] = map[string]any{"match_all": map[string]any{}}
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, fmt.Errorf("es search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string               `json:"_id"`
				Source entity.ContactMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]entity.ContactMessage, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		m := h.Source
		if m.ID == "" {
			m.ID = h.ID
		}
		out = append(out, m)
	}
	return out, nil
}

var _ application.ContactIndex = (*ContactIndex)(nil)
