package dto

import (
	"time"

	"github.com/google/uuid"

	"ai-coursegen-be/pkg/workflow"
)

type GenerateCourseRequest struct {
	Subject     string `json:"subject" validate:"required"`
	Grade       int    `json:"grade" validate:"required,min=1"`
	Unit        string `json:"unit"`
	TopicID     string `json:"topic_id"`
	Topic       string `json:"topic" validate:"required"`
	Description string `json:"description"`
	Hours       int    `json:"hours"`
	ContentType string `json:"content_type" validate:"omitempty,oneof=lesson quiz project practical"`
}

type GenerateCourseResponse struct {
	Id         uuid.UUID          `json:"id"`
	Route      string             `json:"route"`
	Style      string             `json:"style"`
	Content    string             `json:"content"`
	Iterations int                `json:"iterations"`
	Feedback   *workflow.Feedback `json:"feedback,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

type CourseResponse struct {
	Id         uuid.UUID `json:"id"`
	Subject    string    `json:"subject"`
	Grade      int       `json:"grade"`
	Unit       string    `json:"unit,omitempty"`
	Topic      string    `json:"topic"`
	Route      string    `json:"route"`
	Style      string    `json:"style,omitempty"`
	Content    string    `json:"content"`
	Iterations int       `json:"iterations"`
	CreatedAt  time.Time `json:"created_at"`
}

type SearchSimilarRequest struct {
	Query string `json:"query" validate:"required"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=50"`
}

type SearchSimilarResponse struct {
	CourseId       uuid.UUID `json:"course_id"`
	Topic          string    `json:"topic"`
	Document       string    `json:"document"`
	RelevanceScore float64   `json:"relevance_score"`
}

type LearningStateResponse struct {
	State     *workflow.State `json:"state"`
	UpdatedAt time.Time       `json:"updated_at"`
}
