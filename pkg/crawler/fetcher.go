package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"
)

const maxBodyBytes = 512 * 1024

// FetchResult is the outcome of fetching a single link. Failures are recorded
// rather than dropped so the caller can keep partial results.
type FetchResult struct {
	URL  string
	Body string
	Err  error
}

// Fetcher downloads pages concurrently with a bounded worker count and a
// per-link timeout. A slow or hung link never blocks the rest of the batch.
type Fetcher struct {
	Client      *http.Client
	Concurrency int
	LinkTimeout time.Duration
}

func NewFetcher(concurrency int, linkTimeout time.Duration) *Fetcher {
	if concurrency <= 0 {
		concurrency = 4
	}
	if linkTimeout <= 0 {
		linkTimeout = 20 * time.Second
	}
	return &Fetcher{
		Client:      &http.Client{Timeout: linkTimeout},
		Concurrency: concurrency,
		LinkTimeout: linkTimeout,
	}
}

// FetchAll fetches every link and returns one result per link, in input order.
func (f *Fetcher) FetchAll(ctx context.Context, links []string) []FetchResult {
	results := make([]FetchResult, len(links))
	sem := make(chan struct{}, f.Concurrency)
	var wg sync.WaitGroup

	for i, link := range links {
		wg.Add(1)
		go func(i int, link string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			body, err := f.fetchOne(ctx, link)
			results[i] = FetchResult{URL: link, Body: body, Err: err}
		}(i, link)
	}
	wg.Wait()

	return results
}

func (f *Fetcher) fetchOne(ctx context.Context, link string) (string, error) {
	linkCtx, cancel := context.WithTimeout(ctx, f.LinkTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(linkCtx, "GET", link, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; coursegen-crawler/1.0)")

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch error: status %d", resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	return StripHTML(string(bodyBytes)), nil
}

var (
	scriptRe = regexp.MustCompile(`(?is)<(script|style|noscript)[^>]*>.*?</(script|style|noscript)>`)
	tagRe    = regexp.MustCompile(`(?s)<[^>]*>`)
	spaceRe  = regexp.MustCompile(`[ \t]+`)
	blankRe  = regexp.MustCompile(`\n{3,}`)
)

// StripHTML reduces an HTML document to plain text suitable for LLM extraction.
func StripHTML(html string) string {
	text := scriptRe.ReplaceAllString(html, " ")
	text = tagRe.ReplaceAllString(text, "\n")
	text = strings.NewReplacer("&nbsp;", " ", "&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&#39;", "'").Replace(text)
	text = spaceRe.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	text = strings.Join(kept, "\n")
	return blankRe.ReplaceAllString(text, "\n\n")
}
