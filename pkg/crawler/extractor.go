package crawler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"ai-coursegen-be/pkg/llm"
)

const maxExtractChars = 12000

// Extractor turns fetched page text into a ScrapedPage via LLM extraction.
// Non-conforming model output is a soft failure: the page is recorded as
// failed, never propagated as an error.
type Extractor struct {
	provider llm.LLMProvider
	validate *validator.Validate
}

func NewExtractor(provider llm.LLMProvider) *Extractor {
	return &Extractor{
		provider: provider,
		validate: validator.New(),
	}
}

func (e *Extractor) Extract(ctx context.Context, url, body string, topic Topic) ScrapedPage {
	if len(body) > maxExtractChars {
		body = body[:maxExtractChars]
	}

	prompt := e.buildPrompt(url, body, topic)
	response, err := e.provider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		return failedPage(url, topic, fmt.Sprintf("extraction failed: %v", err))
	}

	page, err := e.parsePage(response, url, topic)
	if err != nil {
		return failedPage(url, topic, fmt.Sprintf("malformed extraction output: %v", err))
	}
	return *page
}

func (e *Extractor) buildPrompt(url, body string, topic Topic) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You extract structured educational data from a web page.\n")
	prompt.WriteString("You do NOT invent facts. You only report what the page contains.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString("<action>extract_page</action>\n\n")

	prompt.WriteString("<target_topic>\n")
	prompt.WriteString(fmt.Sprintf("subject: %s\ngrade: %d\nunit: %s\ntopic: %s\n", topic.Subject, topic.Grade, topic.Unit, topic.Topic))
	prompt.WriteString("</target_topic>\n\n")

	prompt.WriteString("<page_url>")
	prompt.WriteString(url)
	prompt.WriteString("</page_url>\n\n")

	prompt.WriteString("<page_text>\n")
	prompt.WriteString(body)
	prompt.WriteString("\n</page_text>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY valid JSON:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"title\": \"main page title\",\n")
	prompt.WriteString("  \"headings\": [\"section headings from the body\"],\n")
	prompt.WriteString("  \"main_findings\": [\"key factual or conceptual findings\"],\n")
	prompt.WriteString("  \"content\": \"clean text summary of the page\",\n")
	prompt.WriteString("  \"keywords\": [\"educational keywords\"],\n")
	prompt.WriteString("  \"content_type\": \"article|video|quiz|reference\"\n")
	prompt.WriteString("}\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

type extractedPage struct {
	Title       string   `json:"title"`
	Headings    []string `json:"headings"`
	Findings    []string `json:"main_findings"`
	Content     string   `json:"content" validate:"required"`
	Keywords    []string `json:"keywords"`
	ContentType string   `json:"content_type"`
}

func (e *Extractor) parsePage(response, url string, topic Topic) (*ScrapedPage, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var raw extractedPage
	if err := json.Unmarshal([]byte(jsonContent), &raw); err != nil {
		return nil, fmt.Errorf("JSON unmarshal failed: %w", err)
	}
	if err := e.validate.Struct(&raw); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	page := &ScrapedPage{
		URL:         url,
		Source:      domainOf(url),
		ContentType: raw.ContentType,
		Subject:     topic.Subject,
		Grade:       topic.Grade,
		Unit:        topic.Unit,
		TopicTitle:  topic.Topic,
		Title:       raw.Title,
		Headings:    raw.Headings,
		Findings:    raw.Findings,
		Content:     raw.Content,
		Keywords:    raw.Keywords,
		WordCount:   len(strings.Fields(raw.Content)),
		Status:      StatusSuccess,
		ScrapedAt:   time.Now(),
	}
	return page, nil
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}
