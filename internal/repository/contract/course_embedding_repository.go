package contract

import (
	"context"

	"github.com/google/uuid"

	"ai-coursegen-be/internal/entity"
	"ai-coursegen-be/internal/repository/specification"
)

// ScoredCourseEmbedding wraps CourseEmbedding with its similarity score
type ScoredCourseEmbedding struct {
	Embedding  *entity.CourseEmbedding
	Similarity float64
}

type CourseEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.CourseEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.CourseEmbedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCourseId(ctx context.Context, courseId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CourseEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilar restricts results to courses owned by the given user.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, userId uuid.UUID, threshold float64) ([]*ScoredCourseEmbedding, error)
}
