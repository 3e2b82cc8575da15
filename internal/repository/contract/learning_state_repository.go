package contract

import (
	"context"

	"github.com/google/uuid"

	"ai-coursegen-be/internal/entity"
)

type LearningStateRepository interface {
	// Upsert writes the state blob for a user, inserting or replacing.
	Upsert(ctx context.Context, state *entity.LearningState) error
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.LearningState, error)
	DeleteByUserId(ctx context.Context, userId uuid.UUID) error
}
