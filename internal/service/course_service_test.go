package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-coursegen-be/internal/dto"
	"ai-coursegen-be/internal/entity"
	"ai-coursegen-be/internal/pkg/logger"
	"ai-coursegen-be/internal/repository/contract"
	"ai-coursegen-be/internal/repository/specification"
	"ai-coursegen-be/internal/repository/unitofwork"
	"ai-coursegen-be/pkg/workflow"
)

// quietLogger satisfies logger.ILogger for tests.
type quietLogger struct{}

func (quietLogger) Debug(module, message string, details map[string]interface{}) {}
func (quietLogger) Info(module, message string, details map[string]interface{})  {}
func (quietLogger) Warn(module, message string, details map[string]interface{})  {}
func (quietLogger) Error(module, message string, details map[string]interface{}) {}
func (quietLogger) Sync() error                                                  { return nil }
func (quietLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (quietLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

// Repository fakes embed their contract so only the methods a test exercises
// need an implementation.

type fakeUserRepo struct {
	contract.UserRepository
	user        *entity.User
	preferences string
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	return r.user, nil
}

func (r *fakeUserRepo) UpdatePreferences(ctx context.Context, id uuid.UUID, preferences string) error {
	r.preferences = preferences
	return nil
}

type fakeCourseRepo struct {
	contract.CourseRepository
	created []*entity.Course
}

func (r *fakeCourseRepo) Create(ctx context.Context, course *entity.Course) error {
	r.created = append(r.created, course)
	return nil
}

type fakeLearningStateRepo struct {
	contract.LearningStateRepository
	upserted *entity.LearningState
}

func (r *fakeLearningStateRepo) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.LearningState, error) {
	return nil, nil
}

func (r *fakeLearningStateRepo) Upsert(ctx context.Context, state *entity.LearningState) error {
	r.upserted = state
	return nil
}

type fakeUnitOfWork struct {
	users   *fakeUserRepo
	courses *fakeCourseRepo
	states  *fakeLearningStateRepo
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (f *fakeUnitOfWork) Commit() error                   { return nil }
func (f *fakeUnitOfWork) Rollback() error                 { return nil }

func (f *fakeUnitOfWork) UserRepository() contract.UserRepository { return f.users }
func (f *fakeUnitOfWork) CourseRepository() contract.CourseRepository {
	return f.courses
}
func (f *fakeUnitOfWork) LearningStateRepository() contract.LearningStateRepository {
	return f.states
}
func (f *fakeUnitOfWork) LessonEmbeddingRepository() contract.LessonEmbeddingRepository {
	return nil
}
func (f *fakeUnitOfWork) ScrapedEmbeddingRepository() contract.ScrapedEmbeddingRepository {
	return nil
}
func (f *fakeUnitOfWork) CourseEmbeddingRepository() contract.CourseEmbeddingRepository {
	return nil
}

type fakeRepositoryFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// A run cut off by its deadline before generation carries no draft. The
// service must return the partial state without recording a course, not
// dereference the missing content.
func TestGenerateWithoutDraftPersistsPartialState(t *testing.T) {
	userId := uuid.New()
	uow := &fakeUnitOfWork{
		users: &fakeUserRepo{user: &entity.User{
			Id:          userId,
			Username:    "dina",
			Grade:       "8",
			Preferences: "prefers diagrams and worked examples",
			Status:      entity.UserStatusActive,
		}},
		courses: &fakeCourseRepo{},
		states:  &fakeLearningStateRepo{},
	}

	engine := workflow.NewEngine(workflow.DefaultConfig(), nil, nil, nil, quietLogger{})
	svc := NewCourseService(&fakeRepositoryFactory{uow: uow}, engine, nil, nil, nil, "", nil, nil, quietLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := svc.Generate(ctx, userId, &dto.GenerateCourseRequest{
		Subject: "Physics",
		Grade:   8,
		Topic:   "Magnetism",
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Empty(t, res.Content)
	assert.Empty(t, uow.courses.created, "no course row for a run without a draft")

	require.NotNil(t, uow.states.upserted, "partial state must still be persisted")
	require.NotNil(t, uow.states.upserted.State)
	assert.Nil(t, uow.states.upserted.State.Content)
	assert.Equal(t, "prefers diagrams and worked examples", uow.states.upserted.State.User.Preferences)
}

func TestUpdatePreferences(t *testing.T) {
	userId := uuid.New()
	uow := &fakeUnitOfWork{
		users: &fakeUserRepo{user: &entity.User{
			Id:       userId,
			Username: "dina",
			Email:    "dina@example.com",
			Status:   entity.UserStatusActive,
		}},
	}

	svc := NewAuthService(&fakeRepositoryFactory{uow: uow}, nil, nil, nil, "secret")

	res, err := svc.UpdatePreferences(context.Background(), userId, &dto.UpdatePreferencesRequest{
		Preferences: "short sections, lots of practice questions",
	})
	require.NoError(t, err)

	assert.Equal(t, "short sections, lots of practice questions", uow.users.preferences)
	assert.Equal(t, "short sections, lots of practice questions", res.Preferences)
}
