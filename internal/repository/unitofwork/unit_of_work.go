package unitofwork

import (
	"context"

	"ai-coursegen-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CourseRepository() contract.CourseRepository
	LearningStateRepository() contract.LearningStateRepository
	LessonEmbeddingRepository() contract.LessonEmbeddingRepository
	ScrapedEmbeddingRepository() contract.ScrapedEmbeddingRepository
	CourseEmbeddingRepository() contract.CourseEmbeddingRepository
}
