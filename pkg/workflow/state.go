package workflow

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"ai-coursegen-be/pkg/crawler"
)

// Route is the chosen content-generation strategy.
type Route string

const (
	RouteLesson Route = "LESSON"
	RouteBlog   Route = "BLOG"
)

// Valid reports whether the route is one of the two known tags.
func (r Route) Valid() bool {
	return r == RouteLesson || r == RouteBlog
}

// ContentType is the kind of content the caller asked for.
type ContentType string

const (
	ContentTypeLesson    ContentType = "lesson"
	ContentTypeQuiz      ContentType = "quiz"
	ContentTypeProject   ContentType = "project"
	ContentTypePractical ContentType = "practical"
)

// UserInfo is the requesting principal. Immutable identity; only the Summary
// field is rewritten by the profile stage.
type UserInfo struct {
	ID          string `json:"id" validate:"required"`
	Username    string `json:"username" validate:"required"`
	Age         string `json:"age,omitempty"`
	Grade       string `json:"grade,omitempty"`
	IsActive    bool   `json:"is_active"`
	Preferences string `json:"preferences,omitempty"`
	Summary     string `json:"user_info,omitempty"`
}

// LearningResource is the requested topic descriptor.
type LearningResource struct {
	Subject     string   `json:"subject" validate:"required"`
	Grade       int      `json:"grade" validate:"required,min=1"`
	Unit        string   `json:"unit,omitempty"`
	TopicID     string   `json:"topic_id,omitempty"`
	Topic       string   `json:"topic" validate:"required"`
	Description string   `json:"description,omitempty"`
	Elaboration string   `json:"elaboration,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Hours       int      `json:"hours,omitempty"`
	References  string   `json:"references,omitempty"`
}

// EnrichedResource has the same schema as LearningResource; enrichment may
// clarify or expand fields but never adds new ones.
type EnrichedResource LearningResource

// GeneratedContent is the current best draft.
type GeneratedContent struct {
	Content string `json:"content"`
}

// Feedback is the structured review of a draft. After gap analysis runs it is
// replaced wholesale by the gap-analysis output.
type Feedback struct {
	Rating             int      `json:"rating" validate:"min=1,max=5"`
	Comments           string   `json:"comments,omitempty"`
	Needed             bool     `json:"needed"`
	Gaps               []string `json:"gaps"`
	AiReliabilityScore float64  `json:"ai_reliability_score" validate:"min=0,max=1"`
}

// ValidationResult is the structural/compliance verdict on a draft.
type ValidationResult struct {
	IsValid    bool     `json:"is_valid"`
	Violations []string `json:"violations"`
}

// HistorySnapshot is an audit record of one refinement pass. The loop never
// reads history; it exists for display and audit only.
type HistorySnapshot struct {
	Topic     string    `json:"topic"`
	Content   string    `json:"content"`
	Feedback  *Feedback `json:"feedback,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// State is the single record threaded through every workflow node. Exactly
// one goroutine owns an instance for its whole lifetime.
type State struct {
	User             *UserInfo             `json:"user" validate:"required"`
	CurrentResource  *LearningResource     `json:"current_resource" validate:"required"`
	EnrichedResource *EnrichedResource     `json:"enriched_resource"`
	Route            Route                 `json:"route,omitempty"`
	ContentType      ContentType           `json:"content_type,omitempty"`
	Content          *GeneratedContent     `json:"content"`
	Feedback         *Feedback             `json:"feedback"`
	ValidationResult *ValidationResult     `json:"validation_result"`
	TopicData        []crawler.ScrapedPage `json:"topic_data,omitempty"`
	History          []HistorySnapshot     `json:"history"`
	Count            int                   `json:"count"`
}

var validate = validator.New()

// Validate checks the entry preconditions for a run. This is the only check
// in the pipeline whose failure is fatal to the caller.
func (s *State) Validate() error {
	if s == nil {
		return fmt.Errorf("nil state")
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("state validation: %w", err)
	}
	return nil
}

// NewState builds a fresh state for a generation request.
func NewState(user UserInfo, resource LearningResource) *State {
	return &State{
		User:            &user,
		CurrentResource: &resource,
		ContentType:     ContentTypeLesson,
	}
}

// Snapshot appends the current draft and feedback to the audit history.
func (s *State) Snapshot(now time.Time) {
	if s.Content == nil {
		return
	}
	snap := HistorySnapshot{
		Content:   s.Content.Content,
		Timestamp: now,
	}
	if s.CurrentResource != nil {
		snap.Topic = s.CurrentResource.Topic
	}
	if s.Feedback != nil {
		fb := *s.Feedback
		snap.Feedback = &fb
	}
	s.History = append(s.History, snap)
}
