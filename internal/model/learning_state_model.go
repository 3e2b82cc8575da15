package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LearningState holds the serialized workflow state, one row per user.
type LearningState struct {
	UserId    uuid.UUID      `gorm:"type:uuid;primaryKey"`
	State     datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (LearningState) TableName() string {
	return "learning_states"
}
