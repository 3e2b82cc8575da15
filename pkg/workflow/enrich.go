package workflow

import (
	"context"

	"ai-coursegen-be/internal/pkg/logger"
	"ai-coursegen-be/pkg/llm"
)

// RetrievedRefs is the result of a vector-similarity lookup across the two
// reference collections. Either side may be nil.
type RetrievedRefs struct {
	Curated  *LearningResource
	External map[string]interface{}
}

// Retriever looks up reference records semantically similar to a topic query.
type Retriever interface {
	Retrieve(ctx context.Context, topicQuery string) (*RetrievedRefs, error)
}

// Enricher merges retrieved reference material into the target resource.
// The curated record is authoritative; external data only fills gaps. Any
// failure leaves EnrichedResource nil for downstream stages to detect.
type Enricher struct {
	retriever Retriever
	provider  llm.LLMProvider
	logger    logger.ILogger
}

func NewEnricher(retriever Retriever, provider llm.LLMProvider, log logger.ILogger) *Enricher {
	return &Enricher{retriever: retriever, provider: provider, logger: log}
}

func (e *Enricher) Run(ctx context.Context, st *State) {
	if st.CurrentResource == nil {
		return
	}

	refs, err := e.retriever.Retrieve(ctx, st.CurrentResource.Topic)
	if err != nil {
		e.logger.Error("workflow.enrich", "Reference retrieval failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if refs == nil || refs.Curated == nil {
		e.logger.Warn("workflow.enrich", "No curated reference found", map[string]interface{}{"topic": st.CurrentResource.Topic})
		return
	}

	// The curated record is merged over the requested resource before the
	// LLM pass, so request fields the knowledge base lacks survive.
	foundation := mergeResources(st.CurrentResource, refs.Curated)

	response, err := e.provider.Generate(ctx, buildEnrichmentPrompt(foundation, refs.External), llm.WithTemperature(0.2))
	if err != nil {
		e.logger.Error("workflow.enrich", "Enrichment call failed", map[string]interface{}{"error": err.Error()})
		return
	}

	enriched, err := decodeEnrichedResource(response)
	if err != nil {
		e.logger.Warn("workflow.enrich", "Malformed enrichment output", map[string]interface{}{"error": err.Error()})
		return
	}

	// Replace atomically; never partially overwrite.
	st.EnrichedResource = enriched
	e.logger.Info("workflow.enrich", "Resource enriched", map[string]interface{}{"topic": enriched.Topic})
}

// mergeResources starts from the request and lets the curated record fill any
// empty field. No field outside the resource schema is introduced.
func mergeResources(request, curated *LearningResource) *LearningResource {
	merged := *request
	if merged.Unit == "" {
		merged.Unit = curated.Unit
	}
	if merged.TopicID == "" {
		merged.TopicID = curated.TopicID
	}
	if merged.Description == "" {
		merged.Description = curated.Description
	}
	if merged.Elaboration == "" {
		merged.Elaboration = curated.Elaboration
	}
	if len(merged.Keywords) == 0 {
		merged.Keywords = curated.Keywords
	}
	if merged.References == "" {
		merged.References = curated.References
	}
	if merged.Hours == 0 {
		merged.Hours = curated.Hours
	}
	return &merged
}
