package workflow

import (
	"context"
	"fmt"
	"time"

	"ai-coursegen-be/internal/pkg/logger"
	"ai-coursegen-be/pkg/crawler"
	"ai-coursegen-be/pkg/llm"
)

// Node names the workflow graph nodes.
type Node string

const (
	NodeUserInfo        Node = "user_info"
	NodeCrawler         Node = "crawler"
	NodeEnrichResource  Node = "enrich_resource"
	NodeRouteSelect     Node = "route_select"
	NodeLessonGen       Node = "lesson_gen"
	NodeBlogGen         Node = "blog_gen"
	NodeSeoAdjust       Node = "seo_adjust"
	NodeCollectFeedback Node = "collect_feedback"
	NodeFindGaps        Node = "find_gaps"
	NodePostValidate    Node = "post_validate"
	NodeImprove         Node = "improve"
	NodeLoopControl     Node = "loop_control"
	NodeEnd             Node = "end"
)

// DefaultStepBudget caps total node visits per run, independently of the
// refinement loop's own iteration cap.
const DefaultStepBudget = 40

// DefaultRunTimeout bounds the whole run across all collaborator calls.
const DefaultRunTimeout = 5 * time.Minute

// Config tunes a workflow engine.
type Config struct {
	MaxIterations int
	StepBudget    int
	RunTimeout    time.Duration
	LoopPolicy    LoopPolicy
}

func DefaultConfig() Config {
	return Config{
		MaxIterations: DefaultMaxIterations,
		StepBudget:    DefaultStepBudget,
		RunTimeout:    DefaultRunTimeout,
		LoopPolicy:    LoopEarlyExit,
	}
}

func (c Config) stepBudget() int {
	if c.StepBudget <= 0 {
		return DefaultStepBudget
	}
	return c.StepBudget
}

func (c Config) runTimeout() time.Duration {
	if c.RunTimeout <= 0 {
		return DefaultRunTimeout
	}
	return c.RunTimeout
}

// CrawlService feeds external topic data into the pipeline. The engine treats
// it as optional: a nil service or a failed crawl just leaves TopicData empty.
type CrawlService interface {
	Crawl(ctx context.Context, topic crawler.Topic) ([]crawler.ScrapedPage, error)
}

type transition struct {
	handler func(ctx context.Context, st *State)
	next    func(st *State) Node
}

// Engine drives a State through the static node graph:
//
//	user_info → crawler → enrich_resource → route_select →
//	{lesson_gen | blog_gen} → seo_adjust → collect_feedback →
//	find_gaps → post_validate → improve → loop_control →
//	(collect_feedback | end)
//
// The topology is fixed at construction. One goroutine owns the state for the
// whole run; only the crawler fans out internally.
type Engine struct {
	cfg  Config
	loop LoopConfig

	profile   *ProfileSummarizer
	crawl     CrawlService
	enricher  *Enricher
	router    *Router
	generator *Generator
	seo       *SeoAdjuster
	reviewer  *Reviewer
	improver  *Improver

	transitions map[Node]transition
	logger      logger.ILogger
}

func NewEngine(
	cfg Config,
	provider llm.LLMProvider,
	retriever Retriever,
	crawl CrawlService,
	log logger.ILogger,
) *Engine {
	e := &Engine{
		cfg:       cfg,
		loop:      LoopConfig{Policy: cfg.LoopPolicy, MaxIterations: cfg.MaxIterations},
		profile:   NewProfileSummarizer(provider, log),
		crawl:     crawl,
		enricher:  NewEnricher(retriever, provider, log),
		router:    NewRouter(provider, log),
		generator: NewGenerator(provider, log),
		seo:       NewSeoAdjuster(provider, log),
		reviewer:  NewReviewer(provider, log),
		improver:  NewImprover(provider, log),
		logger:    log,
	}
	e.transitions = e.buildTransitions()
	return e
}

func (e *Engine) buildTransitions() map[Node]transition {
	always := func(next Node) func(*State) Node {
		return func(*State) Node { return next }
	}

	return map[Node]transition{
		NodeUserInfo: {handler: e.profile.Run, next: always(NodeCrawler)},
		NodeCrawler:  {handler: e.runCrawl, next: always(NodeEnrichResource)},
		NodeEnrichResource: {
			handler: e.enricher.Run,
			next:    always(NodeRouteSelect),
		},
		NodeRouteSelect: {
			handler: e.router.Run,
			next: func(st *State) Node {
				if st.Route == RouteBlog {
					return NodeBlogGen
				}
				return NodeLessonGen
			},
		},
		NodeLessonGen:       {handler: e.generator.GenerateLesson, next: always(NodeSeoAdjust)},
		NodeBlogGen:         {handler: e.generator.GenerateBlog, next: always(NodeSeoAdjust)},
		NodeSeoAdjust:       {handler: e.seo.Run, next: always(NodeCollectFeedback)},
		NodeCollectFeedback: {handler: e.reviewer.CollectFeedback, next: always(NodeFindGaps)},
		NodeFindGaps:        {handler: e.reviewer.FindGaps, next: always(NodePostValidate)},
		NodePostValidate:    {handler: e.reviewer.Validate, next: always(NodeImprove)},
		NodeImprove:         {handler: e.improver.Run, next: always(NodeLoopControl)},
		NodeLoopControl: {
			handler: e.runLoopControl,
			next: func(st *State) Node {
				if e.loop.Continue(st) {
					return NodeCollectFeedback
				}
				return NodeEnd
			},
		},
	}
}

// Run drives the state to completion. The only fatal case is entry
// validation; every other failure degrades into a partial result.
func (e *Engine) Run(ctx context.Context, st *State) (*State, error) {
	if err := st.Validate(); err != nil {
		return nil, fmt.Errorf("workflow entry: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.runTimeout())
	defer cancel()

	node := NodeUserInfo
	for steps := 0; node != NodeEnd; steps++ {
		if steps >= e.cfg.stepBudget() {
			e.logger.Warn("workflow.engine", "Step budget exhausted, returning current state", map[string]interface{}{
				"node":  string(node),
				"steps": steps,
			})
			break
		}
		if ctx.Err() != nil {
			e.logger.Warn("workflow.engine", "Run deadline reached, returning current state", map[string]interface{}{
				"node": string(node),
			})
			break
		}

		t, ok := e.transitions[node]
		if !ok {
			e.logger.Error("workflow.engine", "Unknown node, stopping", map[string]interface{}{"node": string(node)})
			break
		}

		e.step(ctx, node, t.handler, st)
		node = t.next(st)
	}

	return st, nil
}

// step runs one node handler with panic isolation. A panicking node is
// treated like any other absorbed stage failure.
func (e *Engine) step(ctx context.Context, node Node, handler func(context.Context, *State), st *State) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("workflow.engine", "Node panicked, continuing with current state", map[string]interface{}{
				"node":  string(node),
				"panic": fmt.Sprintf("%v", r),
			})
		}
	}()
	handler(ctx, st)
}

func (e *Engine) runCrawl(ctx context.Context, st *State) {
	if e.crawl == nil || st.CurrentResource == nil {
		return
	}

	topic := crawler.Topic{
		Subject: st.CurrentResource.Subject,
		Grade:   st.CurrentResource.Grade,
		Unit:    st.CurrentResource.Unit,
		Topic:   st.CurrentResource.Topic,
	}

	pages, err := e.crawl.Crawl(ctx, topic)
	if err != nil {
		e.logger.Error("workflow.crawler", "Crawl failed, continuing without topic data", map[string]interface{}{"error": err.Error()})
		return
	}
	if len(pages) == 0 {
		e.logger.Warn("workflow.crawler", "Crawl returned no pages", map[string]interface{}{"topic": topic.Topic})
		return
	}

	st.TopicData = pages
}

func (e *Engine) runLoopControl(ctx context.Context, st *State) {
	st.Count++
	st.Snapshot(time.Now())
	e.logger.Info("workflow.loop_control", "Iteration complete", map[string]interface{}{
		"count": st.Count,
	})
}
