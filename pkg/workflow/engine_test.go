package workflow

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-coursegen-be/pkg/crawler"
)

func magnetismState() *State {
	return NewState(
		UserInfo{ID: "u-1", Username: "asha", Grade: "11"},
		LearningResource{Subject: "physics", Grade: 11, Topic: "Magnetism", Hours: 7},
	)
}

func curatedMagnetism() *LearningResource {
	return &LearningResource{
		Subject:     "physics",
		Grade:       11,
		Unit:        "Electricity and Magnetism",
		Topic:       "Magnetism",
		Description: "Magnetic fields, forces and electromagnetic induction",
		Keywords:    []string{"field", "flux", "induction"},
		Hours:       7,
	}
}

func fullScript() *scriptedProvider {
	return newScriptedProvider().
		on("summarise_user", `{"id": "u-1", "username": "asha", "grade": "11", "is_active": true, "user_info": "grade 11 physics student"}`).
		on("content_enrichment", `{"subject": "physics", "grade": 11, "unit": "Electricity and Magnetism", "topic": "Magnetism", "description": "Magnetic fields, forces and induction", "keywords": ["field", "flux"], "hours": 7}`).
		on("route_select", `{"route": "LESSON"}`).
		on("generate_lesson", "# Magnetism\n\nA magnetic field surrounds moving charges.").
		on("generate_blog", "# Magnetism in Everyday Life\n\nFrom compasses to MRI machines.").
		on("seo_adjust", "# Magnetism\n\nA magnetic field surrounds moving charges.").
		on("collect_feedback", `{"rating": 3, "comments": "needs examples", "needed": true, "gaps": ["worked examples"], "ai_reliability_score": 0.7}`).
		on("find_gaps", `{"rating": 3, "comments": "needs examples", "needed": true, "gaps": ["worked examples", "diagram"], "ai_reliability_score": 0.8}`).
		on("post_validate", `{"is_valid": false, "violations": ["missing references section"]}`).
		on("improve_content", "# Magnetism\n\nA magnetic field surrounds moving charges.\n\n## Worked example\n\nF = qvB.")
}

func newTestEngine(cfg Config, provider *scriptedProvider, retriever Retriever, crawl CrawlService) *Engine {
	return NewEngine(cfg, provider, retriever, crawl, nopLogger{})
}

func TestEngineRunMagnetismEndToEnd(t *testing.T) {
	provider := fullScript()
	retriever := &stubRetriever{refs: &RetrievedRefs{Curated: curatedMagnetism()}}
	crawl := &stubCrawl{pages: []crawler.ScrapedPage{
		{URL: "https://example.org/magnetism", Status: crawler.StatusSuccess},
		{URL: "https://example.org/broken", Status: crawler.StatusFailed},
	}}

	cfg := DefaultConfig()
	cfg.LoopPolicy = LoopStrictCount

	engine := newTestEngine(cfg, provider, retriever, crawl)
	st, err := engine.Run(context.Background(), magnetismState())

	require.NoError(t, err)
	require.NotNil(t, st.Content)
	assert.NotEmpty(t, st.Content.Content)
	assert.Equal(t, RouteLesson, st.Route)

	// External record absent from retrieval did not block enrichment.
	require.NotNil(t, st.EnrichedResource)
	assert.Equal(t, "Electricity and Magnetism", st.EnrichedResource.Unit)

	assert.Len(t, st.TopicData, 2)
	assert.Equal(t, DefaultMaxIterations, st.Count)
	assert.Len(t, st.History, DefaultMaxIterations)
	assert.Equal(t, "grade 11 physics student", st.User.Summary)
}

func TestEngineLoopTermination(t *testing.T) {
	provider := fullScript()
	retriever := &stubRetriever{refs: &RetrievedRefs{Curated: curatedMagnetism()}}

	cfg := DefaultConfig()
	cfg.LoopPolicy = LoopStrictCount

	engine := newTestEngine(cfg, provider, retriever, nil)
	st, err := engine.Run(context.Background(), magnetismState())

	require.NoError(t, err)
	assert.LessOrEqual(t, st.Count, DefaultMaxIterations)
	assert.Equal(t, DefaultMaxIterations, provider.callCount("collect_feedback"))
}

func TestEngineEarlyExitPolicy(t *testing.T) {
	provider := fullScript().
		on("collect_feedback",
			`{"rating": 3, "needed": true, "gaps": ["worked examples"], "ai_reliability_score": 0.7}`,
			`{"rating": 5, "needed": false, "gaps": [], "ai_reliability_score": 0.95}`).
		on("find_gaps",
			`{"rating": 3, "needed": true, "gaps": ["worked examples"], "ai_reliability_score": 0.7}`,
			`{"rating": 5, "needed": false, "gaps": [], "ai_reliability_score": 0.95}`)
	retriever := &stubRetriever{refs: &RetrievedRefs{Curated: curatedMagnetism()}}

	cfg := DefaultConfig()
	cfg.LoopPolicy = LoopEarlyExit

	engine := newTestEngine(cfg, provider, retriever, nil)
	st, err := engine.Run(context.Background(), magnetismState())

	require.NoError(t, err)
	assert.Equal(t, 2, st.Count, "second pass reported no improvement needed")
	assert.NotNil(t, st.Content)
}

func TestEngineFailOpenRouting(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{name: "garbage classification", response: "I think maybe a podcast?"},
		{name: "unknown tag", response: `{"route": "PODCAST"}`},
		{name: "empty response", response: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := fullScript().on("route_select", tt.response)
			retriever := &stubRetriever{refs: &RetrievedRefs{Curated: curatedMagnetism()}}

			engine := newTestEngine(DefaultConfig(), provider, retriever, nil)
			st, err := engine.Run(context.Background(), magnetismState())

			require.NoError(t, err)
			assert.Equal(t, RouteLesson, st.Route)
		})
	}
}

func TestEngineBlogRoute(t *testing.T) {
	provider := fullScript().on("route_select", `{"route": "BLOG"}`)
	retriever := &stubRetriever{refs: &RetrievedRefs{Curated: curatedMagnetism()}}

	engine := newTestEngine(DefaultConfig(), provider, retriever, nil)
	st, err := engine.Run(context.Background(), magnetismState())

	require.NoError(t, err)
	assert.Equal(t, RouteBlog, st.Route)
	assert.Equal(t, 1, provider.callCount("generate_blog"))
	assert.Equal(t, 0, provider.callCount("generate_lesson"))
}

func TestEngineDegradesWhenEverythingFails(t *testing.T) {
	provider := newScriptedProvider()
	for _, action := range []string{
		"summarise_user", "content_enrichment", "route_select", "generate_lesson",
		"generate_blog", "seo_adjust", "collect_feedback", "find_gaps",
		"post_validate", "improve_content",
	} {
		provider.failOn(action, fmt.Errorf("llm unavailable"))
	}
	retriever := &stubRetriever{err: fmt.Errorf("vector index down")}
	crawl := &stubCrawl{err: fmt.Errorf("search api down")}

	engine := newTestEngine(DefaultConfig(), provider, retriever, crawl)
	st, err := engine.Run(context.Background(), magnetismState())

	require.NoError(t, err, "stage failures must never surface to the caller")
	assert.Nil(t, st.EnrichedResource)
	assert.Equal(t, RouteLesson, st.Route)

	// Draft is a placeholder, never nil.
	require.NotNil(t, st.Content)
	assert.Contains(t, st.Content.Content, "Magnetism")

	assert.LessOrEqual(t, st.Count, DefaultMaxIterations)
}

func TestEngineGapAnalysisSupersedesFeedback(t *testing.T) {
	gapOutput := `{"rating": 2, "comments": "gap analysis verdict", "needed": false, "gaps": ["missing history of magnets"], "ai_reliability_score": 0.6}`
	provider := fullScript().on("find_gaps", gapOutput)
	retriever := &stubRetriever{refs: &RetrievedRefs{Curated: curatedMagnetism()}}

	cfg := DefaultConfig()
	cfg.LoopPolicy = LoopEarlyExit

	engine := newTestEngine(cfg, provider, retriever, nil)
	st, err := engine.Run(context.Background(), magnetismState())

	require.NoError(t, err)
	require.NotNil(t, st.Feedback)

	want, decodeErr := decodeFeedback(gapOutput)
	require.NoError(t, decodeErr)
	assert.Equal(t, want, st.Feedback, "feedback must equal the gap-analysis output exactly")
}

func TestEngineMonotonicIterationCount(t *testing.T) {
	provider := fullScript()
	retriever := &stubRetriever{refs: &RetrievedRefs{Curated: curatedMagnetism()}}

	cfg := DefaultConfig()
	cfg.LoopPolicy = LoopStrictCount

	engine := newTestEngine(cfg, provider, retriever, nil)
	st, err := engine.Run(context.Background(), magnetismState())
	require.NoError(t, err)

	// History is snapshotted once per loop pass, in order; the count at exit
	// matches the number of passes.
	assert.Equal(t, len(st.History), st.Count)
	for i := 1; i < len(st.History); i++ {
		assert.False(t, st.History[i].Timestamp.Before(st.History[i-1].Timestamp))
	}
}

func TestEngineStepBudget(t *testing.T) {
	provider := fullScript()
	retriever := &stubRetriever{refs: &RetrievedRefs{Curated: curatedMagnetism()}}

	cfg := DefaultConfig()
	cfg.LoopPolicy = LoopStrictCount
	cfg.StepBudget = 7 // enough to generate a draft, not enough to finish the loop

	engine := newTestEngine(cfg, provider, retriever, nil)
	st, err := engine.Run(context.Background(), magnetismState())

	require.NoError(t, err, "budget exhaustion is a graceful return, not an error")
	assert.NotNil(t, st.Content)
	assert.Less(t, st.Count, DefaultMaxIterations)
}

func TestEngineEntryValidationIsFatal(t *testing.T) {
	engine := newTestEngine(DefaultConfig(), fullScript(), &stubRetriever{}, nil)

	_, err := engine.Run(context.Background(), &State{})
	require.Error(t, err)

	var nilState *State
	_, err = engine.Run(context.Background(), nilState)
	require.Error(t, err)
}

func TestEngineRunTimeout(t *testing.T) {
	provider := fullScript()
	retriever := &stubRetriever{refs: &RetrievedRefs{Curated: curatedMagnetism()}}

	cfg := DefaultConfig()
	cfg.RunTimeout = time.Nanosecond

	engine := newTestEngine(cfg, provider, retriever, nil)
	st, err := engine.Run(context.Background(), magnetismState())

	require.NoError(t, err, "deadline expiry returns the best available state")
	require.NotNil(t, st)
}
