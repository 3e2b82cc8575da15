package crawler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-KEY") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Q == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(searchResponse{
			Organic: []SearchResult{
				{Title: "Magnetism - Physics", Link: "https://example.org/magnetism", Snippet: "Fields and forces"},
				{Title: "Magnetic fields", Link: "https://example.org/fields"},
			},
		})
	}))
	defer srv.Close()

	client := NewSearchClient("test-key", srv.URL)

	results, err := client.Search(context.Background(), "Magnetism for grade 11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results length = %d, want 2", len(results))
	}
	if results[0].Link != "https://example.org/magnetism" {
		t.Errorf("first link = %q", results[0].Link)
	}
}

func TestSearchClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewSearchClient("wrong-key", srv.URL)

	if _, err := client.Search(context.Background(), "anything"); err == nil {
		t.Error("expected error for non-200 status")
	}
}

func TestTopicQuery(t *testing.T) {
	topic := Topic{Subject: "physics", Grade: 11, Topic: "Magnetism"}
	if got := topic.Query(); got != "Magnetism for grade 11" {
		t.Errorf("Query() = %q", got)
	}
}
