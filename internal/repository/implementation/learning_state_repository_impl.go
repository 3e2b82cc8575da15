package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ai-coursegen-be/internal/entity"
	"ai-coursegen-be/internal/mapper"
	"ai-coursegen-be/internal/model"
	"ai-coursegen-be/internal/repository/contract"
)

type LearningStateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LearningStateMapper
}

func NewLearningStateRepository(db *gorm.DB) contract.LearningStateRepository {
	return &LearningStateRepositoryImpl{
		db:     db,
		mapper: mapper.NewLearningStateMapper(),
	}
}

func (r *LearningStateRepositoryImpl) Upsert(ctx context.Context, state *entity.LearningState) error {
	m := r.mapper.ToModel(state)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*state = *r.mapper.ToEntity(m)
	return nil
}

func (r *LearningStateRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.LearningState, error) {
	var m model.LearningState
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LearningStateRepositoryImpl) DeleteByUserId(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.LearningState{}).Error
}
