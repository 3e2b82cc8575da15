package workflow

import (
	"context"
	"fmt"
	"strings"

	"ai-coursegen-be/internal/pkg/logger"
	"ai-coursegen-be/pkg/crawler"
	"ai-coursegen-be/pkg/llm"
)

// Generator produces the draft for the selected route. Whatever happens, the
// draft is non-nil afterwards: the refinement loop must never see a missing
// draft, so failures produce a placeholder instead.
type Generator struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewGenerator(provider llm.LLMProvider, log logger.ILogger) *Generator {
	return &Generator{provider: provider, logger: log}
}

func (g *Generator) GenerateLesson(ctx context.Context, st *State) {
	style := StyleFor(st.EnrichedResource, st.ContentType)
	links := referenceLinks(st.TopicData)

	g.logger.Info("workflow.lesson_gen", "Generating lesson", map[string]interface{}{
		"style": string(style),
		"links": len(links),
	})

	response, err := g.provider.Generate(ctx, buildLessonPrompt(st.User, st.EnrichedResource, style, links), llm.WithTemperature(0.7))
	g.setDraft(st, response, err, "workflow.lesson_gen")
}

func (g *Generator) GenerateBlog(ctx context.Context, st *State) {
	style := StyleFor(st.EnrichedResource, st.ContentType)

	g.logger.Info("workflow.blog_gen", "Generating blog", map[string]interface{}{"style": string(style)})

	response, err := g.provider.Generate(ctx, buildBlogPrompt(st.User, st.EnrichedResource, style), llm.WithTemperature(0.7))
	g.setDraft(st, response, err, "workflow.blog_gen")
}

func (g *Generator) setDraft(st *State, response string, err error, module string) {
	if err != nil {
		g.logger.Error(module, "Generation failed, using placeholder", map[string]interface{}{"error": err.Error()})
		st.Content = &GeneratedContent{Content: placeholderContent(st)}
		return
	}
	if strings.TrimSpace(response) == "" {
		g.logger.Warn(module, "Empty generation output, using placeholder", nil)
		st.Content = &GeneratedContent{Content: placeholderContent(st)}
		return
	}
	st.Content = &GeneratedContent{Content: response}
}

func placeholderContent(st *State) string {
	topic := "the requested topic"
	if st.CurrentResource != nil && st.CurrentResource.Topic != "" {
		topic = st.CurrentResource.Topic
	}
	return fmt.Sprintf("# %s\n\nContent generation for this topic did not complete. Please retry shortly.\n", topic)
}

// referenceLinks collects the successfully scraped URLs for citation.
func referenceLinks(pages []crawler.ScrapedPage) []string {
	links := make([]string, 0, len(pages))
	for _, p := range pages {
		if p.Status == crawler.StatusSuccess && p.URL != "" {
			links = append(links, p.URL)
		}
	}
	return links
}
