package workflow

import (
	"context"

	"ai-coursegen-be/internal/pkg/logger"
	"ai-coursegen-be/pkg/llm"
)

// Reviewer runs the three read-only refinement stages: feedback collection,
// gap analysis and post-validation. Each stage skips silently when its
// required inputs are missing and keeps the prior value on any failure.
type Reviewer struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewReviewer(provider llm.LLMProvider, log logger.ILogger) *Reviewer {
	return &Reviewer{provider: provider, logger: log}
}

func (r *Reviewer) CollectFeedback(ctx context.Context, st *State) {
	if st.Content == nil {
		return
	}

	response, err := r.provider.Generate(ctx, buildFeedbackPrompt(st.Content.Content), llm.WithTemperature(0.2))
	if err != nil {
		r.logger.Error("workflow.collect_feedback", "Feedback call failed, keeping prior feedback", map[string]interface{}{"error": err.Error()})
		return
	}

	fb, err := decodeFeedback(response)
	if err != nil {
		r.logger.Warn("workflow.collect_feedback", "Malformed feedback output, keeping prior feedback", map[string]interface{}{"error": err.Error()})
		return
	}

	st.Feedback = fb
	r.logger.Info("workflow.collect_feedback", "Feedback collected", map[string]interface{}{
		"rating": fb.Rating,
		"needed": fb.Needed,
		"gaps":   len(fb.Gaps),
	})
}

// FindGaps runs the gap analysis. Its result replaces the feedback record
// wholesale: gap analysis sees both the draft and the raw feedback, so it is
// strictly more informed than what it supersedes.
func (r *Reviewer) FindGaps(ctx context.Context, st *State) {
	if st.Content == nil || st.Feedback == nil {
		return
	}

	response, err := r.provider.Generate(ctx, buildGapPrompt(st.Content.Content, st.Feedback), llm.WithTemperature(0.2))
	if err != nil {
		r.logger.Error("workflow.find_gaps", "Gap analysis call failed, keeping prior feedback", map[string]interface{}{"error": err.Error()})
		return
	}

	fb, err := decodeFeedback(response)
	if err != nil {
		r.logger.Warn("workflow.find_gaps", "Malformed gap analysis output, keeping prior feedback", map[string]interface{}{"error": err.Error()})
		return
	}

	st.Feedback = fb
	r.logger.Info("workflow.find_gaps", "Gap analysis complete", map[string]interface{}{
		"rating":      fb.Rating,
		"gaps":        len(fb.Gaps),
		"reliability": fb.AiReliabilityScore,
	})
}

func (r *Reviewer) Validate(ctx context.Context, st *State) {
	if st.Content == nil {
		return
	}

	response, err := r.provider.Generate(ctx, buildValidationPrompt(st.Content.Content), llm.WithTemperature(0.0))
	if err != nil {
		r.logger.Error("workflow.post_validate", "Validation call failed, keeping prior result", map[string]interface{}{"error": err.Error()})
		return
	}

	vr, err := decodeValidationResult(response)
	if err != nil {
		r.logger.Warn("workflow.post_validate", "Malformed validation output, keeping prior result", map[string]interface{}{"error": err.Error()})
		return
	}

	st.ValidationResult = vr
	r.logger.Info("workflow.post_validate", "Draft validated", map[string]interface{}{
		"is_valid":   vr.IsValid,
		"violations": len(vr.Violations),
	})
}
