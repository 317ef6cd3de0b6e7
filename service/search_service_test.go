package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	model "github.com/Itish41/ActionNotes/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeElastic answers like an Elasticsearch 8 node; handler gets every request.
func fakeElastic(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *ElasticIndexer {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	idx, err := NewElasticIndexer("", server.URL)
	require.NoError(t, err)
	return idx
}

func TestElasticIndexer_IndexNote(t *testing.T) {
	var path, method string
	var doc map[string]interface{}
	idx := fakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		path, method = r.URL.Path, r.Method
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &doc))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"_id":"7","result":"created"}`))
	})

	note := &model.Note{ID: 7, Title: "Plan", Content: "Fix the build", Tags: []model.Tag{{Name: "work"}}}
	require.NoError(t, idx.IndexNote(context.Background(), note))

	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/notes/_doc/7", path)
	assert.Equal(t, "Plan", doc["title"])
	assert.Equal(t, []interface{}{"work"}, doc["tags"])
}

func TestElasticIndexer_DeleteNote(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"Deleted", http.StatusOK, false},
		{"Already gone", http.StatusNotFound, false},
		{"Cluster error", http.StatusServiceUnavailable, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := fakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/notes/_doc/3", r.URL.Path)
				w.WriteHeader(tt.status)
				w.Write([]byte(`{}`))
			})
			err := idx.DeleteNote(context.Background(), 3)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestElasticIndexer_SearchNotes(t *testing.T) {
	var query map[string]interface{}
	idx := fakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notes/_search", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &query))
		w.Write([]byte(`{"hits":{"total":{"value":3},"hits":[{"_id":"5"},{"_id":"legacy-doc"},{"_id":"2"}]}}`))
	})

	ids, err := idx.SearchNotes(context.Background(), "deploy", 20)
	require.NoError(t, err)
	assert.Equal(t, []uint{5, 2}, ids)
	assert.Equal(t, float64(20), query["size"])

	multi := query["query"].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "deploy", multi["query"])
}

func TestElasticIndexer_SearchError(t *testing.T) {
	idx := fakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"type":"index_not_found_exception"}}`))
	})

	_, err := idx.SearchNotes(context.Background(), "deploy", 20)
	assert.ErrorContains(t, err, "elasticsearch search failed")
}
