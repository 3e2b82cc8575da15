package unitofwork

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"ai-coursegen-be/internal/repository/contract"
	"ai-coursegen-be/internal/repository/implementation"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // the active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CourseRepository() contract.CourseRepository {
	return implementation.NewCourseRepository(u.getDB())
}

func (u *UnitOfWorkImpl) LearningStateRepository() contract.LearningStateRepository {
	return implementation.NewLearningStateRepository(u.getDB())
}

func (u *UnitOfWorkImpl) LessonEmbeddingRepository() contract.LessonEmbeddingRepository {
	return implementation.NewLessonEmbeddingRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ScrapedEmbeddingRepository() contract.ScrapedEmbeddingRepository {
	return implementation.NewScrapedEmbeddingRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CourseEmbeddingRepository() contract.CourseEmbeddingRepository {
	return implementation.NewCourseEmbeddingRepository(u.getDB())
}
