package contract

import (
	"context"

	"github.com/google/uuid"

	"ai-coursegen-be/internal/entity"
	"ai-coursegen-be/internal/repository/specification"
)

// ScoredScrapedEmbedding wraps ScrapedEmbedding with its similarity score
type ScoredScrapedEmbedding struct {
	Embedding  *entity.ScrapedEmbedding
	Similarity float64
}

type ScrapedEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.ScrapedEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.ScrapedEmbedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ScrapedEmbedding, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ScrapedEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredScrapedEmbedding, error)
}
