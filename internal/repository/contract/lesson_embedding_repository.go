package contract

import (
	"context"

	"github.com/google/uuid"

	"ai-coursegen-be/internal/entity"
	"ai-coursegen-be/internal/repository/specification"
)

// ScoredLessonEmbedding wraps LessonEmbedding with its similarity score
type ScoredLessonEmbedding struct {
	Embedding  *entity.LessonEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type LessonEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.LessonEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.LessonEmbedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LessonEmbedding, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LessonEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns embeddings with their similarity scores, filtered by threshold
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredLessonEmbedding, error)
}
