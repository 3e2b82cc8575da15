package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchAllKeepsPartialResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/good":
			_, _ = w.Write([]byte("<html><body><h1>Magnetism</h1><p>Field lines never cross.</p></body></html>"))
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	fetcher := NewFetcher(2, 5*time.Second)
	results := fetcher.FetchAll(context.Background(), []string{srv.URL + "/good", srv.URL + "/missing"})

	if len(results) != 2 {
		t.Fatalf("results length = %d, want 2", len(results))
	}
	if results[0].Err != nil {
		t.Errorf("good link errored: %v", results[0].Err)
	}
	if !strings.Contains(results[0].Body, "Field lines never cross.") {
		t.Errorf("body missing text: %q", results[0].Body)
	}
	if results[1].Err == nil {
		t.Error("missing link should record an error")
	}
}

func TestFetchAllSlowLinkDoesNotBlockBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			time.Sleep(2 * time.Second)
		}
		_, _ = w.Write([]byte("<p>ok</p>"))
	}))
	defer srv.Close()

	fetcher := NewFetcher(2, 200*time.Millisecond)

	start := time.Now()
	results := fetcher.FetchAll(context.Background(), []string{srv.URL + "/slow", srv.URL + "/fast"})
	elapsed := time.Since(start)

	if elapsed > time.Second {
		t.Errorf("batch took %v, per-link timeout did not apply", elapsed)
	}
	if results[0].Err == nil {
		t.Error("slow link should time out")
	}
	if results[1].Err != nil {
		t.Errorf("fast link errored: %v", results[1].Err)
	}
}

func TestStripHTML(t *testing.T) {
	html := `<html><head><style>body { color: red; }</style><script>alert("x")</script></head>
<body><h1>Magnetism</h1><p>Fields &amp; forces.</p><div>  Induction   basics </div></body></html>`

	text := StripHTML(html)

	for _, want := range []string{"Magnetism", "Fields & forces.", "Induction basics"} {
		if !strings.Contains(text, want) {
			t.Errorf("stripped text missing %q:\n%s", want, text)
		}
	}
	for _, banned := range []string{"<p>", "alert", "color: red"} {
		if strings.Contains(text, banned) {
			t.Errorf("stripped text still contains %q:\n%s", banned, text)
		}
	}
}

func TestDomainOf(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.byjus.com/physics/magnetism/", "byjus.com"},
		{"http://example.org/page", "example.org"},
		{"https://khanacademy.org", "khanacademy.org"},
	}
	for _, tt := range tests {
		if got := domainOf(tt.url); got != tt.want {
			t.Errorf("domainOf(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
