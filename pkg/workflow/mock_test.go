package workflow

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"ai-coursegen-be/internal/pkg/logger"
	"ai-coursegen-be/pkg/crawler"
	"ai-coursegen-be/pkg/llm"
)

// scriptedProvider replays canned responses keyed by the <action> tag each
// prompt carries. Successive calls for the same action consume successive
// responses; the last one repeats.
type scriptedProvider struct {
	mu      sync.Mutex
	scripts map[string][]string
	errs    map[string]error
	calls   []string
}

func newScriptedProvider() *scriptedProvider {
	return &scriptedProvider{
		scripts: make(map[string][]string),
		errs:    make(map[string]error),
	}
}

func (p *scriptedProvider) on(action string, responses ...string) *scriptedProvider {
	p.scripts[action] = responses
	return p
}

func (p *scriptedProvider) failOn(action string, err error) *scriptedProvider {
	p.errs[action] = err
	return p
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	action := actionOf(prompt)

	p.mu.Lock()
	defer p.mu.Unlock()

	seen := 0
	for _, c := range p.calls {
		if c == action {
			seen++
		}
	}
	p.calls = append(p.calls, action)

	if err, ok := p.errs[action]; ok {
		return "", err
	}
	responses, ok := p.scripts[action]
	if !ok || len(responses) == 0 {
		return "", fmt.Errorf("no scripted response for action %q", action)
	}
	if seen >= len(responses) {
		seen = len(responses) - 1
	}
	return responses[seen], nil
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("empty history")
	}
	return p.Generate(ctx, history[len(history)-1].Content, opts...)
}

func (p *scriptedProvider) callCount(action string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.calls {
		if c == action {
			n++
		}
	}
	return n
}

func actionOf(prompt string) string {
	start := strings.Index(prompt, "<action>")
	end := strings.Index(prompt, "</action>")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return prompt[start+len("<action>") : end]
}

type stubRetriever struct {
	refs *RetrievedRefs
	err  error
}

func (s *stubRetriever) Retrieve(ctx context.Context, topicQuery string) (*RetrievedRefs, error) {
	return s.refs, s.err
}

type stubCrawl struct {
	pages []crawler.ScrapedPage
	err   error
}

func (s *stubCrawl) Crawl(ctx context.Context, topic crawler.Topic) ([]crawler.ScrapedPage, error) {
	return s.pages, s.err
}

// nopLogger satisfies logger.ILogger for tests.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }
