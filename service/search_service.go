package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	model "github.com/Itish41/ActionNotes/models"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/rs/zerolog/log"
)

// Indexer maintains a full-text search index of notes.
type Indexer interface {
	IndexNote(ctx context.Context, note *model.Note) error
	DeleteNote(ctx context.Context, id uint) error
	// SearchNotes returns matching note IDs, best match first.
	SearchNotes(ctx context.Context, query string, limit int) ([]uint, error)
}

// ElasticIndexer implements Indexer with Elasticsearch.
type ElasticIndexer struct {
	client *elasticsearch.Client
	index  string
}

// NewElasticIndexer connects to the given Elasticsearch addresses.
func NewElasticIndexer(index string, addresses ...string) (*ElasticIndexer, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: addresses})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	if index == "" {
		index = "notes"
	}
	return &ElasticIndexer{client: client, index: index}, nil
}

// IndexNote upserts the note's search document.
func (e *ElasticIndexer) IndexNote(ctx context.Context, note *model.Note) error {
	body, err := json.Marshal(note.SearchDocument())
	if err != nil {
		return fmt.Errorf("failed to marshal note for indexing: %w", err)
	}

	res, err := e.client.Index(
		e.index,
		bytes.NewReader(body),
		e.client.Index.WithDocumentID(strconv.FormatUint(uint64(note.ID), 10)),
		e.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch indexing failed: %s", res.String())
	}
	log.Debug().Uint("note_id", note.ID).Msg("[IndexNote] Note indexed")
	return nil
}

// DeleteNote removes the note's search document. Missing documents are ignored.
func (e *ElasticIndexer) DeleteNote(ctx context.Context, id uint) error {
	res, err := e.client.Delete(
		e.index,
		strconv.FormatUint(uint64(id), 10),
		e.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("elasticsearch delete failed: %s", res.String())
	}
	return nil
}

// SearchNotes runs a multi_match query over title, content and tags.
func (e *ElasticIndexer) SearchNotes(ctx context.Context, query string, limit int) ([]uint, error) {
	searchQuery := map[string]interface{}{
		"size":    limit,
		"_source": false,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title^2", "content", "tags"},
			},
		},
	}
	body, err := json.Marshal(searchQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	res, err := e.client.Search(
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(e.index),
		e.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search failed: %s", res.String())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	ids := make([]uint, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		id, err := strconv.ParseUint(hit.ID, 10, 64)
		if err != nil {
			continue // not one of ours
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
