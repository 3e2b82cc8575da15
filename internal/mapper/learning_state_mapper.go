package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"ai-coursegen-be/internal/entity"
	"ai-coursegen-be/internal/model"
	"ai-coursegen-be/pkg/workflow"
)

type LearningStateMapper struct{}

func NewLearningStateMapper() *LearningStateMapper {
	return &LearningStateMapper{}
}

func (m *LearningStateMapper) ToEntity(s *model.LearningState) *entity.LearningState {
	if s == nil {
		return nil
	}

	var state *workflow.State
	if len(s.State) > 0 {
		var st workflow.State
		if err := json.Unmarshal(s.State, &st); err == nil {
			state = &st
		}
	}

	return &entity.LearningState{
		UserId:    s.UserId,
		State:     state,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *LearningStateMapper) ToModel(s *entity.LearningState) *model.LearningState {
	if s == nil {
		return nil
	}

	var state datatypes.JSON
	if s.State != nil {
		if raw, err := json.Marshal(s.State); err == nil {
			state = datatypes.JSON(raw)
		}
	}

	return &model.LearningState{
		UserId:    s.UserId,
		State:     state,
		UpdatedAt: s.UpdatedAt,
	}
}
