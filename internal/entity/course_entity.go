package entity

import (
	"time"

	"github.com/google/uuid"

	"ai-coursegen-be/pkg/workflow"
)

// Course is one generated content record, appended per workflow run.
type Course struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Subject    string
	Grade      int
	Unit       string
	Topic      string
	Route      string
	Style      string
	Content    string
	Iterations int
	Feedback   *workflow.Feedback
	CreatedAt  time.Time
}
