package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"ai-coursegen-be/internal/entity"
	"ai-coursegen-be/internal/mapper"
	"ai-coursegen-be/internal/model"
	"ai-coursegen-be/internal/repository/contract"
	"ai-coursegen-be/internal/repository/specification"
)

type LessonEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LessonEmbeddingMapper
}

func NewLessonEmbeddingRepository(db *gorm.DB) contract.LessonEmbeddingRepository {
	return &LessonEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewLessonEmbeddingMapper(),
	}
}

func (r *LessonEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LessonEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.LessonEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *LessonEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.LessonEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := make([]*model.LessonEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = r.mapper.ToModel(e)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *LessonEmbeddingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.LessonEmbedding{}, id).Error
}

func (r *LessonEmbeddingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LessonEmbedding, error) {
	var m model.LessonEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LessonEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LessonEmbedding, error) {
	var models []*model.LessonEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.LessonEmbedding, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *LessonEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.LessonEmbedding{}), specs...)
	err := query.Count(&count).Error
	return count, err
}

// SearchSimilarWithScore returns embeddings with similarity scores, filtered by threshold.
// Cosine distance in pgvector is 1 - cosine_similarity, so similarity is
// computed as 1 - (embedding_value <=> query_vector).
func (r *LessonEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredLessonEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.LessonEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("lesson_embeddings").
		Select("lesson_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("lesson_embeddings.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredLessonEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredLessonEmbedding{
			Embedding:  r.mapper.ToEntity(&res.LessonEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
