package crawler

import (
	"fmt"
	"strings"
	"time"
)

// Scrape status values
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// ScrapedPage is the strict schema every crawled page is reduced to before it
// enters the pipeline. Pages that could not be fetched or parsed are still
// recorded, with Status set to "failed".
type ScrapedPage struct {
	URL         string    `json:"url" validate:"required"`
	Source      string    `json:"source"`
	ContentType string    `json:"content_type"`
	Subject     string    `json:"subject"`
	Grade       int       `json:"grade"`
	Unit        string    `json:"unit"`
	TopicTitle  string    `json:"topic_title,omitempty"`
	Title       string    `json:"title,omitempty"`
	Headings    []string  `json:"headings"`
	Findings    []string  `json:"main_findings"`
	Content     string    `json:"content,omitempty"`
	Keywords    []string  `json:"keywords"`
	WordCount   int       `json:"word_count"`
	Status      string    `json:"status" validate:"required,oneof=success failed"`
	ScrapedAt   time.Time `json:"scraped_at"`
}

// Topic identifies what to search and crawl for.
type Topic struct {
	Subject string
	Grade   int
	Unit    string
	Topic   string
}

// Query builds the search query string sent to the search API.
func (t Topic) Query() string {
	return fmt.Sprintf("%s for grade %d", t.Topic, t.Grade)
}

func failedPage(url string, topic Topic, reason string) ScrapedPage {
	return ScrapedPage{
		URL:       url,
		Source:    domainOf(url),
		Subject:   topic.Subject,
		Grade:     topic.Grade,
		Unit:      topic.Unit,
		Content:   reason,
		Status:    StatusFailed,
		ScrapedAt: time.Now(),
	}
}

func domainOf(url string) string {
	s := strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimPrefix(s, "www.")
}
