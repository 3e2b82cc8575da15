package workflow

import (
	"context"

	"ai-coursegen-be/internal/pkg/logger"
	"ai-coursegen-be/pkg/llm"
)

// Router classifies the content strategy. Routing is deliberately fail-open:
// a mistake costs only content shape, so any invalid or missing response
// resolves to LESSON rather than failing the workflow.
type Router struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewRouter(provider llm.LLMProvider, log logger.ILogger) *Router {
	return &Router{provider: provider, logger: log}
}

func (r *Router) Run(ctx context.Context, st *State) {
	if st.EnrichedResource == nil {
		st.Route = RouteLesson
		r.logger.Warn("workflow.route_select", "No enriched resource, defaulting route", map[string]interface{}{"route": string(RouteLesson)})
		return
	}

	response, err := r.provider.Generate(ctx, buildRoutePrompt(st.EnrichedResource), llm.WithTemperature(0.0))
	if err != nil {
		st.Route = RouteLesson
		r.logger.Error("workflow.route_select", "Route classification failed, defaulting", map[string]interface{}{"error": err.Error()})
		return
	}

	route, err := decodeRoute(response)
	if err != nil {
		st.Route = RouteLesson
		r.logger.Warn("workflow.route_select", "Invalid route output, defaulting", map[string]interface{}{"error": err.Error()})
		return
	}

	st.Route = route
	r.logger.Info("workflow.route_select", "Route selected", map[string]interface{}{"route": string(route)})
}
