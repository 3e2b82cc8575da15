package workflow

import (
	"context"
	"strings"

	"ai-coursegen-be/internal/pkg/logger"
	"ai-coursegen-be/pkg/llm"
)

// Improver rewrites the draft from the full review bundle (feedback, gaps and
// validation verdict observed on the same draft). The result replaces the
// draft entirely; a failed call keeps the current draft.
type Improver struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewImprover(provider llm.LLMProvider, log logger.ILogger) *Improver {
	return &Improver{provider: provider, logger: log}
}

func (i *Improver) Run(ctx context.Context, st *State) {
	if st.Content == nil || st.Feedback == nil {
		return
	}

	response, err := i.provider.Generate(ctx, buildImprovePrompt(st.Content.Content, st.Feedback, st.ValidationResult), llm.WithTemperature(0.5))
	if err != nil {
		i.logger.Error("workflow.improve", "Improvement call failed, keeping current draft", map[string]interface{}{"error": err.Error()})
		return
	}
	if strings.TrimSpace(response) == "" {
		i.logger.Warn("workflow.improve", "Empty improvement output, keeping current draft", nil)
		return
	}

	st.Content = &GeneratedContent{Content: response}
	i.logger.Info("workflow.improve", "Draft improved", map[string]interface{}{"length": len(response)})
}
