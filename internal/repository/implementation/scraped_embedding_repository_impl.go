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

type ScrapedEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ScrapedEmbeddingMapper
}

func NewScrapedEmbeddingRepository(db *gorm.DB) contract.ScrapedEmbeddingRepository {
	return &ScrapedEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewScrapedEmbeddingMapper(),
	}
}

func (r *ScrapedEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ScrapedEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.ScrapedEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *ScrapedEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.ScrapedEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := make([]*model.ScrapedEmbedding, len(embeddings))
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

func (r *ScrapedEmbeddingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ScrapedEmbedding{}, id).Error
}

func (r *ScrapedEmbeddingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ScrapedEmbedding, error) {
	var m model.ScrapedEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ScrapedEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ScrapedEmbedding, error) {
	var models []*model.ScrapedEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ScrapedEmbedding, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ScrapedEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ScrapedEmbedding{}), specs...)
	err := query.Count(&count).Error
	return count, err
}

func (r *ScrapedEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredScrapedEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.ScrapedEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("scraped_embeddings").
		Select("scraped_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("scraped_embeddings.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredScrapedEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredScrapedEmbedding{
			Embedding:  r.mapper.ToEntity(&res.ScrapedEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
