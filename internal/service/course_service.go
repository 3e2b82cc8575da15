package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"ai-coursegen-be/internal/dto"
	"ai-coursegen-be/internal/entity"
	"ai-coursegen-be/internal/pkg/logger"
	"ai-coursegen-be/internal/pkg/mailer"
	"ai-coursegen-be/internal/repository/specification"
	"ai-coursegen-be/internal/repository/unitofwork"
	"ai-coursegen-be/internal/websocket"
	"ai-coursegen-be/pkg/embedding"
	"ai-coursegen-be/pkg/events"
	pkgNats "ai-coursegen-be/pkg/nats"
	"ai-coursegen-be/pkg/workflow"
)

type ICourseService interface {
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateCourseRequest) (*dto.GenerateCourseResponse, error)
	ListCourses(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.CourseResponse, error)
	GetCourse(ctx context.Context, userId, courseId uuid.UUID) (*dto.CourseResponse, error)
	GetLearningState(ctx context.Context, userId uuid.UUID) (*dto.LearningStateResponse, error)
	SearchSimilar(ctx context.Context, userId uuid.UUID, req *dto.SearchSimilarRequest) ([]*dto.SearchSimilarResponse, error)
}

type courseService struct {
	uowFactory        unitofwork.RepositoryFactory
	engine            *workflow.Engine
	hub               *websocket.Hub
	eventPublisher    *pkgNats.Publisher
	pubSub            *gochannel.GoChannel
	indexTopicName    string
	emailService      mailer.IEmailService
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewCourseService(
	uowFactory unitofwork.RepositoryFactory,
	engine *workflow.Engine,
	hub *websocket.Hub,
	eventPublisher *pkgNats.Publisher,
	pubSub *gochannel.GoChannel,
	indexTopicName string,
	emailService mailer.IEmailService,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) ICourseService {
	return &courseService{
		uowFactory:        uowFactory,
		engine:            engine,
		hub:               hub,
		eventPublisher:    eventPublisher,
		pubSub:            pubSub,
		indexTopicName:    indexTopicName,
		emailService:      emailService,
		embeddingProvider: embeddingProvider,
		logger:            log,
	}
}

func (s *courseService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateCourseRequest) (*dto.GenerateCourseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	userInfo := workflow.UserInfo{
		ID:          user.Id.String(),
		Username:    user.Username,
		Age:         user.Age,
		Grade:       user.Grade,
		IsActive:    user.Status == entity.UserStatusActive,
		Preferences: user.Preferences,
	}

	resource := workflow.LearningResource{
		Subject:     req.Subject,
		Grade:       req.Grade,
		Unit:        req.Unit,
		TopicID:     req.TopicID,
		Topic:       req.Topic,
		Description: req.Description,
		Hours:       req.Hours,
	}

	st := workflow.NewState(userInfo, resource)
	if req.ContentType != "" {
		st.ContentType = workflow.ContentType(req.ContentType)
	}

	// Carry the profile summary from the last run so the summariser can
	// refine it instead of starting over.
	prior, err := uow.LearningStateRepository().FindByUserId(ctx, userId)
	if err != nil {
		s.logger.Warn("CourseService", "failed to load prior learning state", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}
	if prior != nil && prior.State != nil && prior.State.User != nil {
		st.User.Summary = prior.State.User.Summary
	}

	s.sendProgress(userId, websocket.ProgressEvent{Stage: "started", Topic: req.Topic})

	final, err := s.engine.Run(ctx, st)
	if err != nil {
		s.sendProgress(userId, websocket.ProgressEvent{Stage: "failed", Topic: req.Topic, Done: true, Message: err.Error()})
		return nil, err
	}

	// A run can end on the step budget or the deadline before generation
	// produced a draft. Persist the partial state so the next run resumes
	// from it, but record no course.
	if final.Content == nil {
		if err := uow.LearningStateRepository().Upsert(ctx, &entity.LearningState{
			UserId:    userId,
			State:     final,
			UpdatedAt: time.Now(),
		}); err != nil {
			return nil, err
		}
		s.sendProgress(userId, websocket.ProgressEvent{
			Stage:     "incomplete",
			Topic:     req.Topic,
			Iteration: final.Count,
			Done:      true,
			Message:   "run ended before content generation",
		})
		return &dto.GenerateCourseResponse{
			Route:      string(final.Route),
			Iterations: final.Count,
			Feedback:   final.Feedback,
		}, nil
	}

	style := workflow.StyleFor(final.EnrichedResource, final.ContentType)

	course := &entity.Course{
		Id:         uuid.New(),
		UserId:     userId,
		Subject:    req.Subject,
		Grade:      req.Grade,
		Unit:       req.Unit,
		Topic:      req.Topic,
		Route:      string(final.Route),
		Style:      string(style),
		Content:    final.Content.Content,
		Iterations: final.Count,
		Feedback:   final.Feedback,
		CreatedAt:  time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.CourseRepository().Create(ctx, course); err != nil {
		return nil, err
	}
	if err := uow.LearningStateRepository().Upsert(ctx, &entity.LearningState{
		UserId:    userId,
		State:     final,
		UpdatedAt: time.Now(),
	}); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.sendProgress(userId, websocket.ProgressEvent{
		Stage:     "completed",
		Topic:     req.Topic,
		Iteration: final.Count,
		Done:      true,
	})

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewCourseGenerated(course.Id, userId, course.Topic, course.Route, course.Iterations)); err != nil {
			s.logger.Warn("CourseService", "failed to publish course event", map[string]interface{}{
				"course_id": course.Id,
				"error":     err.Error(),
			})
		}
	}

	if err := s.publishIndexMessage(course.Id); err != nil {
		s.logger.Warn("CourseService", "failed to queue course indexing", map[string]interface{}{
			"course_id": course.Id,
			"error":     err.Error(),
		})
	}

	go func(email, topic string) {
		if emailErr := s.emailService.SendCourseReady(email, topic); emailErr != nil {
			s.logger.Warn("CourseService", "failed to send course-ready email", map[string]interface{}{
				"topic": topic,
				"error": emailErr.Error(),
			})
		}
	}(user.Email, course.Topic)

	return &dto.GenerateCourseResponse{
		Id:         course.Id,
		Route:      course.Route,
		Style:      course.Style,
		Content:    course.Content,
		Iterations: course.Iterations,
		Feedback:   course.Feedback,
		CreatedAt:  course.CreatedAt,
	}, nil
}

func (s *courseService) publishIndexMessage(courseId uuid.UUID) error {
	if s.pubSub == nil {
		return nil
	}
	payload, err := json.Marshal(dto.PublishIndexCourseMessage{CourseId: courseId})
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return s.pubSub.Publish(s.indexTopicName, msg)
}

func (s *courseService) sendProgress(userId uuid.UUID, event websocket.ProgressEvent) {
	if s.hub != nil {
		s.hub.SendProgress(userId, event)
	}
}

func (s *courseService) ListCourses(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.CourseResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	courses, err := uow.CourseRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.CourseResponse, len(courses))
	for i, c := range courses {
		responses[i] = toCourseResponse(c)
	}
	return responses, nil
}

func (s *courseService) GetCourse(ctx context.Context, userId, courseId uuid.UUID) (*dto.CourseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx,
		specification.ByID{ID: courseId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, errors.New("course not found")
	}
	return toCourseResponse(course), nil
}

func (s *courseService) GetLearningState(ctx context.Context, userId uuid.UUID) (*dto.LearningStateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	state, err := uow.LearningStateRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, errors.New("no learning state yet")
	}
	return &dto.LearningStateResponse{
		State:     state.State,
		UpdatedAt: state.UpdatedAt,
	}, nil
}

func (s *courseService) SearchSimilar(ctx context.Context, userId uuid.UUID, req *dto.SearchSimilarRequest) ([]*dto.SearchSimilarResponse, error) {
	resp, err := s.embeddingProvider.Generate(req.Query, "retrieval_query")
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 5
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.CourseEmbeddingRepository().SearchSimilar(ctx, resp.Embedding.Values, limit, userId, 0.3)
	if err != nil {
		return nil, err
	}

	results := make([]*dto.SearchSimilarResponse, 0, len(scored))
	for _, sc := range scored {
		topic := ""
		course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: sc.Embedding.CourseId})
		if err == nil && course != nil {
			topic = course.Topic
		}
		results = append(results, &dto.SearchSimilarResponse{
			CourseId:       sc.Embedding.CourseId,
			Topic:          topic,
			Document:       sc.Embedding.Document,
			RelevanceScore: sc.Similarity,
		})
	}
	return results, nil
}

func toCourseResponse(c *entity.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		Id:         c.Id,
		Subject:    c.Subject,
		Grade:      c.Grade,
		Unit:       c.Unit,
		Topic:      c.Topic,
		Route:      c.Route,
		Style:      c.Style,
		Content:    c.Content,
		Iterations: c.Iterations,
		CreatedAt:  c.CreatedAt,
	}
}
