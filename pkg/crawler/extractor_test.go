package crawler

import (
	"context"
	"testing"

	"ai-coursegen-be/pkg/llm"
)

type fakeProvider struct {
	response string
	err      error
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.response, f.err
}

func TestExtractorSuccess(t *testing.T) {
	provider := &fakeProvider{response: `Here is the extraction:
{
  "title": "Magnetism",
  "headings": ["Fields", "Forces"],
  "main_findings": ["Field lines never cross"],
  "content": "Magnetism is the force exerted by magnets.",
  "keywords": ["magnetism", "field"],
  "content_type": "article"
}`}

	extractor := NewExtractor(provider)
	topic := Topic{Subject: "physics", Grade: 11, Unit: "Electricity and Magnetism", Topic: "Magnetism"}

	page := extractor.Extract(context.Background(), "https://www.byjus.com/magnetism", "raw page text", topic)

	if page.Status != StatusSuccess {
		t.Fatalf("status = %q, want success (content: %q)", page.Status, page.Content)
	}
	if page.Title != "Magnetism" || len(page.Headings) != 2 {
		t.Errorf("unexpected page: %+v", page)
	}
	if page.Source != "byjus.com" {
		t.Errorf("source = %q, want byjus.com", page.Source)
	}
	if page.WordCount != 7 {
		t.Errorf("word count = %d, want 7", page.WordCount)
	}
	if page.Grade != 11 || page.TopicTitle != "Magnetism" {
		t.Errorf("topic fields not carried over: %+v", page)
	}
}

func TestExtractorFailuresProduceFailedPage(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
	}{
		{name: "provider error", provider: &fakeProvider{err: context.DeadlineExceeded}},
		{name: "no json in response", provider: &fakeProvider{response: "I could not parse this page."}},
		{name: "missing required content", provider: &fakeProvider{response: `{"title": "Magnetism"}`}},
		{name: "broken json", provider: &fakeProvider{response: `{"title": `}},
	}

	topic := Topic{Subject: "physics", Grade: 11, Topic: "Magnetism"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := NewExtractor(tt.provider)
			page := extractor.Extract(context.Background(), "https://example.org/x", "body", topic)

			if page.Status != StatusFailed {
				t.Errorf("status = %q, want failed", page.Status)
			}
			if page.URL != "https://example.org/x" {
				t.Errorf("failed page must keep its URL, got %q", page.URL)
			}
		})
	}
}
