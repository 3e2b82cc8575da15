package entity

import (
	"time"

	"github.com/google/uuid"

	"ai-coursegen-be/pkg/workflow"
)

// LearningState is the persisted workflow state blob, one document per user.
type LearningState struct {
	UserId    uuid.UUID
	State     *workflow.State
	UpdatedAt time.Time
}
