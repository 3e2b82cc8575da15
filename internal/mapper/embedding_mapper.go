package mapper

import (
	"encoding/json"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"

	"ai-coursegen-be/internal/entity"
	"ai-coursegen-be/internal/model"
	"ai-coursegen-be/pkg/crawler"
	"ai-coursegen-be/pkg/workflow"
)

type LessonEmbeddingMapper struct{}

func NewLessonEmbeddingMapper() *LessonEmbeddingMapper {
	return &LessonEmbeddingMapper{}
}

func (m *LessonEmbeddingMapper) ToEntity(e *model.LessonEmbedding) *entity.LessonEmbedding {
	if e == nil {
		return nil
	}

	var resource workflow.LearningResource
	if len(e.Metadata) > 0 {
		_ = json.Unmarshal(e.Metadata, &resource)
	}

	return &entity.LessonEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		Resource:       resource,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *LessonEmbeddingMapper) ToModel(e *entity.LessonEmbedding) *model.LessonEmbedding {
	if e == nil {
		return nil
	}

	var metadata datatypes.JSON
	if raw, err := json.Marshal(e.Resource); err == nil {
		metadata = datatypes.JSON(raw)
	}

	return &model.LessonEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		Metadata:       metadata,
		CreatedAt:      e.CreatedAt,
	}
}

type ScrapedEmbeddingMapper struct{}

func NewScrapedEmbeddingMapper() *ScrapedEmbeddingMapper {
	return &ScrapedEmbeddingMapper{}
}

func (m *ScrapedEmbeddingMapper) ToEntity(e *model.ScrapedEmbedding) *entity.ScrapedEmbedding {
	if e == nil {
		return nil
	}

	var page crawler.ScrapedPage
	if len(e.Metadata) > 0 {
		_ = json.Unmarshal(e.Metadata, &page)
	}

	return &entity.ScrapedEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		Page:           page,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *ScrapedEmbeddingMapper) ToModel(e *entity.ScrapedEmbedding) *model.ScrapedEmbedding {
	if e == nil {
		return nil
	}

	var metadata datatypes.JSON
	if raw, err := json.Marshal(e.Page); err == nil {
		metadata = datatypes.JSON(raw)
	}

	return &model.ScrapedEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		Metadata:       metadata,
		CreatedAt:      e.CreatedAt,
	}
}

type CourseEmbeddingMapper struct{}

func NewCourseEmbeddingMapper() *CourseEmbeddingMapper {
	return &CourseEmbeddingMapper{}
}

func (m *CourseEmbeddingMapper) ToEntity(e *model.CourseEmbedding) *entity.CourseEmbedding {
	if e == nil {
		return nil
	}
	return &entity.CourseEmbedding{
		Id:             e.Id,
		CourseId:       e.CourseId,
		ChunkIndex:     e.ChunkIndex,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		CreatedAt:      e.CreatedAt,
	}
}

func (m *CourseEmbeddingMapper) ToModel(e *entity.CourseEmbedding) *model.CourseEmbedding {
	if e == nil {
		return nil
	}
	return &model.CourseEmbedding{
		Id:             e.Id,
		CourseId:       e.CourseId,
		ChunkIndex:     e.ChunkIndex,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		CreatedAt:      e.CreatedAt,
	}
}
