package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"ai-coursegen-be/internal/entity"
	"ai-coursegen-be/internal/model"
	"ai-coursegen-be/pkg/workflow"
)

type CourseMapper struct{}

func NewCourseMapper() *CourseMapper {
	return &CourseMapper{}
}

func (m *CourseMapper) ToEntity(c *model.Course) *entity.Course {
	if c == nil {
		return nil
	}

	var feedback *workflow.Feedback
	if len(c.Feedback) > 0 {
		var fb workflow.Feedback
		if err := json.Unmarshal(c.Feedback, &fb); err == nil {
			feedback = &fb
		}
	}

	return &entity.Course{
		Id:         c.Id,
		UserId:     c.UserId,
		Subject:    c.Subject,
		Grade:      c.Grade,
		Unit:       c.Unit,
		Topic:      c.Topic,
		Route:      c.Route,
		Style:      c.Style,
		Content:    c.Content,
		Iterations: c.Iterations,
		Feedback:   feedback,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *CourseMapper) ToModel(c *entity.Course) *model.Course {
	if c == nil {
		return nil
	}

	var feedback datatypes.JSON
	if c.Feedback != nil {
		if raw, err := json.Marshal(c.Feedback); err == nil {
			feedback = datatypes.JSON(raw)
		}
	}

	return &model.Course{
		Id:         c.Id,
		UserId:     c.UserId,
		Subject:    c.Subject,
		Grade:      c.Grade,
		Unit:       c.Unit,
		Topic:      c.Topic,
		Route:      c.Route,
		Style:      c.Style,
		Content:    c.Content,
		Iterations: c.Iterations,
		Feedback:   feedback,
		CreatedAt:  c.CreatedAt,
	}
}
