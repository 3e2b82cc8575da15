package implementation

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"ai-coursegen-be/internal/entity"
	"ai-coursegen-be/internal/mapper"
	"ai-coursegen-be/internal/model"
	"ai-coursegen-be/internal/repository/contract"
	"ai-coursegen-be/internal/repository/specification"
)

type CourseEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CourseEmbeddingMapper
}

func NewCourseEmbeddingRepository(db *gorm.DB) contract.CourseEmbeddingRepository {
	return &CourseEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewCourseEmbeddingMapper(),
	}
}

func (r *CourseEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CourseEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.CourseEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *CourseEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.CourseEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := make([]*model.CourseEmbedding, len(embeddings))
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

func (r *CourseEmbeddingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CourseEmbedding{}, id).Error
}

func (r *CourseEmbeddingRepositoryImpl) DeleteByCourseId(ctx context.Context, courseId uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Where("course_id = ?", courseId).Delete(&model.CourseEmbedding{}).Error
}

func (r *CourseEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CourseEmbedding, error) {
	var models []*model.CourseEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.CourseEmbedding, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *CourseEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.CourseEmbedding{}), specs...)
	err := query.Count(&count).Error
	return count, err
}

// SearchSimilar joins with courses to restrict results to the given user.
func (r *CourseEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int, userId uuid.UUID, threshold float64) ([]*contract.ScoredCourseEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.CourseEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("course_embeddings").
		Select("course_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Joins("JOIN courses ON courses.id = course_embeddings.course_id").
		Where("courses.user_id = ?", userId).
		Where("course_embeddings.deleted_at IS NULL").
		Where("courses.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredCourseEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredCourseEmbedding{
			Embedding:  r.mapper.ToEntity(&res.CourseEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
