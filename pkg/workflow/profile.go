package workflow

import (
	"context"

	"ai-coursegen-be/internal/pkg/logger"
	"ai-coursegen-be/pkg/llm"
)

// ProfileSummarizer rewrites the principal's profile summary for
// personalization. Any failure keeps the prior user record untouched.
type ProfileSummarizer struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewProfileSummarizer(provider llm.LLMProvider, log logger.ILogger) *ProfileSummarizer {
	return &ProfileSummarizer{provider: provider, logger: log}
}

func (p *ProfileSummarizer) Run(ctx context.Context, st *State) {
	if st.User == nil {
		return
	}

	response, err := p.provider.Generate(ctx, buildUserSummaryPrompt(st.User), llm.WithTemperature(0.0))
	if err != nil {
		p.logger.Error("workflow.user_info", "Profile summary call failed", map[string]interface{}{"error": err.Error()})
		return
	}

	summarized, err := decodeUserInfo(response)
	if err != nil {
		p.logger.Warn("workflow.user_info", "Malformed profile summary output", map[string]interface{}{"error": err.Error()})
		return
	}

	// Identity fields are immutable; only the summary may change.
	st.User.Summary = summarized.Summary
	p.logger.Info("workflow.user_info", "Profile summarized", map[string]interface{}{"user_id": st.User.ID})
}
