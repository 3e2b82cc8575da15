package retrieval

import (
	"context"
	"fmt"

	"ai-coursegen-be/internal/pkg/logger"
	"ai-coursegen-be/internal/repository/contract"
	"ai-coursegen-be/pkg/embedding"
	"ai-coursegen-be/pkg/workflow"
)

const (
	defaultLimit     = 3
	defaultThreshold = 0.45
)

// VectorRetriever resolves topic references against the curated lesson
// collection and the crawled page collection via pgvector similarity search.
type VectorRetriever struct {
	embedder    embedding.EmbeddingProvider
	lessonRepo  contract.LessonEmbeddingRepository
	scrapedRepo contract.ScrapedEmbeddingRepository
	logger      logger.ILogger
}

func NewVectorRetriever(
	embedder embedding.EmbeddingProvider,
	lessonRepo contract.LessonEmbeddingRepository,
	scrapedRepo contract.ScrapedEmbeddingRepository,
	log logger.ILogger,
) *VectorRetriever {
	return &VectorRetriever{
		embedder:    embedder,
		lessonRepo:  lessonRepo,
		scrapedRepo: scrapedRepo,
		logger:      log,
	}
}

func (r *VectorRetriever) Retrieve(ctx context.Context, topicQuery string) (*workflow.RetrievedRefs, error) {
	resp, err := r.embedder.Generate(topicQuery, "retrieval_query")
	if err != nil {
		return nil, fmt.Errorf("failed to embed topic query: %w", err)
	}
	if len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding for topic query")
	}
	vector := resp.Embedding.Values

	refs := &workflow.RetrievedRefs{
		External: map[string]interface{}{},
	}

	lessons, err := r.lessonRepo.SearchSimilarWithScore(ctx, vector, defaultLimit, defaultThreshold)
	if err != nil {
		return nil, fmt.Errorf("lesson similarity search failed: %w", err)
	}
	if len(lessons) > 0 {
		best := lessons[0]
		resource := best.Embedding.Resource
		refs.Curated = &resource
		r.logger.Debug("retrieval", "curated match found", map[string]interface{}{
			"topic":      topicQuery,
			"similarity": best.Similarity,
		})
	}

	scraped, err := r.scrapedRepo.SearchSimilarWithScore(ctx, vector, defaultLimit, defaultThreshold)
	if err != nil {
		// External references only enrich; curated results are still usable.
		r.logger.Warn("retrieval", "scraped similarity search failed", map[string]interface{}{
			"error": err.Error(),
		})
		return refs, nil
	}

	for i, s := range scraped {
		key := fmt.Sprintf("reference_%d", i+1)
		refs.External[key] = map[string]interface{}{
			"source":     s.Embedding.Page.Source,
			"title":      s.Embedding.Page.Title,
			"content":    s.Embedding.Document,
			"similarity": s.Similarity,
		}
	}

	return refs, nil
}
