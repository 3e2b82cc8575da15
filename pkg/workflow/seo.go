package workflow

import (
	"context"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"ai-coursegen-be/internal/pkg/logger"
	"ai-coursegen-be/pkg/llm"
)

// SeoAdjuster runs the structural pass over the draft. It is a reformatting
// transform, never a rewrite: factual content must survive unchanged. The LLM
// reformat is optional; the deterministic normalizer always applies last, and
// a failed LLM call falls back to the normalizer alone.
type SeoAdjuster struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewSeoAdjuster(provider llm.LLMProvider, log logger.ILogger) *SeoAdjuster {
	return &SeoAdjuster{provider: provider, logger: log}
}

func (s *SeoAdjuster) Run(ctx context.Context, st *State) {
	if st.Content == nil {
		return
	}

	adjusted := st.Content.Content
	if s.provider != nil {
		response, err := s.provider.Generate(ctx, buildSeoPrompt(adjusted), llm.WithTemperature(0.0))
		if err != nil {
			s.logger.Error("workflow.seo_adjust", "SEO reformat call failed, applying normalizer only", map[string]interface{}{"error": err.Error()})
		} else if strings.TrimSpace(response) != "" {
			adjusted = response
		}
	}

	normalized := NormalizeMarkdown(adjusted)
	st.Content = &GeneratedContent{Content: normalized}

	s.logger.Info("workflow.seo_adjust", "Draft structurally adjusted", map[string]interface{}{
		"headings": len(headingOutline([]byte(normalized))),
	})
}

var (
	headingSpaceRe  = regexp.MustCompile(`(?m)^(#{1,6})([^#\s])`)
	multiBlankRe    = regexp.MustCompile(`\n{3,}`)
	trailingSpaceRe = regexp.MustCompile(`(?m)[ \t]+$`)
	subHeadingRe    = regexp.MustCompile(`^#{2,6} `)
)

// NormalizeMarkdown applies the deterministic structural rules: LF line
// endings, a space after heading markers, no trailing whitespace, at most one
// blank line between blocks, a level-1 heading first when the document has
// headings but no H1, and a single trailing newline. Running it on already
// clean input changes nothing.
func NormalizeMarkdown(content string) string {
	out := strings.ReplaceAll(content, "\r\n", "\n")
	out = headingSpaceRe.ReplaceAllString(out, "$1 $2")
	out = trailingSpaceRe.ReplaceAllString(out, "")
	out = multiBlankRe.ReplaceAllString(out, "\n\n")
	out = promoteFirstHeading(out)
	out = strings.TrimRight(out, "\n") + "\n"
	return out
}

// promoteFirstHeading lifts the first heading to level 1 when the document
// contains headings but no H1.
func promoteFirstHeading(content string) string {
	for _, h := range headingOutline([]byte(content)) {
		if h.Level == 1 {
			return content
		}
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if subHeadingRe.MatchString(line) {
			lines[i] = "# " + strings.TrimLeft(line, "# ")
			return strings.Join(lines, "\n")
		}
	}
	return content
}

type headingInfo struct {
	Level int
	Text  string
}

func headingOutline(source []byte) []headingInfo {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var outline []headingInfo
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			outline = append(outline, headingInfo{
				Level: h.Level,
				Text:  string(n.Text(source)),
			})
		}
		return ast.WalkContinue, nil
	})
	return outline
}
