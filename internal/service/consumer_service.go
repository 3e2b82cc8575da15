package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"ai-coursegen-be/internal/dto"
	"ai-coursegen-be/internal/entity"
	"ai-coursegen-be/internal/repository/specification"
	"ai-coursegen-be/internal/repository/unitofwork"
	"ai-coursegen-be/pkg/embedding"
	"ai-coursegen-be/pkg/utils"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexCourseMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal index message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Indexing course content for CourseId: %s", payload.CourseId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: payload.CourseId})
	if err != nil {
		log.Printf("[ERROR] Failed to get course %s: %v", payload.CourseId, err)
		msg.Nack()
		return
	}
	if course == nil {
		log.Printf("[ERROR] Course not found: %s", payload.CourseId)
		msg.Ack() // Course deleted? Ack.
		return
	}

	content := fmt.Sprintf(`Topic: %s
Subject: %s (grade %d)
Unit: %s

%s`,
		course.Topic,
		course.Subject,
		course.Grade,
		course.Unit,
		course.Content,
	)

	// ChunkSize 1500 chars with 200 overlap keeps chunks well inside
	// embedding context limits while preserving boundary context.
	chunks := utils.SplitText(content, 1500, 200)
	log.Printf("[INFO] Course content split into %d chunks", len(chunks))

	var newEmbeddings []*entity.CourseEmbedding

	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, "retrieval_document")
		if err != nil {
			log.Printf("[ERROR] Failed to generate embedding for chunk %d of course %s: %v", i, payload.CourseId, err)
			msg.Nack()
			return
		}

		newEmbeddings = append(newEmbeddings, &entity.CourseEmbedding{
			Id:             uuid.New(),
			CourseId:       course.Id,
			ChunkIndex:     i,
			Document:       chunk,
			EmbeddingValue: res.Embedding.Values,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.CourseEmbeddingRepository().DeleteByCourseId(ctx, course.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old course embeddings: %v", err)
		msg.Nack()
		return
	}

	if len(newEmbeddings) > 0 {
		if err := uow.CourseEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
			log.Printf("[ERROR] Failed to create bulk course embeddings: %v", err)
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Course indexed: %d chunks for CourseId: %s", len(newEmbeddings), payload.CourseId)
	msg.Ack()
}
