package entity

import (
	"time"

	"github.com/google/uuid"

	"ai-coursegen-be/pkg/crawler"
	"ai-coursegen-be/pkg/workflow"
)

// LessonEmbedding is one record of the curated knowledge collection.
type LessonEmbedding struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	Resource       workflow.LearningResource
	CreatedAt      time.Time
}

// ScrapedEmbedding is one record of the crawled external collection.
type ScrapedEmbedding struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	Page           crawler.ScrapedPage
	CreatedAt      time.Time
}

// CourseEmbedding is one chunk of an indexed generated course, used by
// similarity search over a user's own courses.
type CourseEmbedding struct {
	Id             uuid.UUID
	CourseId       uuid.UUID
	ChunkIndex     int
	Document       string
	EmbeddingValue []float32
	CreatedAt      time.Time
}
