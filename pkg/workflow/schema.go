package workflow

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Every LLM boundary passes through one of these decoders. Output that does
// not conform maps to an error, which the calling stage turns into its
// fail-open behavior; raw model text never flows past this file untyped.

func decodeFeedback(response string) (*Feedback, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var fb Feedback
	if err := json.Unmarshal([]byte(jsonContent), &fb); err != nil {
		return nil, fmt.Errorf("JSON unmarshal failed: %w", err)
	}
	if fb.Gaps == nil {
		fb.Gaps = []string{}
	}
	if err := validate.Struct(&fb); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}
	return &fb, nil
}

func decodeValidationResult(response string) (*ValidationResult, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var vr ValidationResult
	if err := json.Unmarshal([]byte(jsonContent), &vr); err != nil {
		return nil, fmt.Errorf("JSON unmarshal failed: %w", err)
	}
	if vr.Violations == nil {
		vr.Violations = []string{}
	}
	return &vr, nil
}

func decodeEnrichedResource(response string) (*EnrichedResource, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var res EnrichedResource
	if err := json.Unmarshal([]byte(jsonContent), &res); err != nil {
		return nil, fmt.Errorf("JSON unmarshal failed: %w", err)
	}
	if err := validate.Struct((*LearningResource)(&res)); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}
	return &res, nil
}

func decodeUserInfo(response string) (*UserInfo, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var user UserInfo
	if err := json.Unmarshal([]byte(jsonContent), &user); err != nil {
		return nil, fmt.Errorf("JSON unmarshal failed: %w", err)
	}
	if err := validate.Struct(&user); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}
	return &user, nil
}

// decodeRoute maps a classification response to one of the two known tags.
// Anything else is an error; the caller defaults to LESSON.
func decodeRoute(response string) (Route, error) {
	normalized := strings.ToUpper(strings.TrimSpace(response))

	if jsonContent := extractJSON(response); jsonContent != "" {
		var parsed struct {
			Route string `json:"route"`
		}
		if err := json.Unmarshal([]byte(jsonContent), &parsed); err == nil && parsed.Route != "" {
			normalized = strings.ToUpper(strings.TrimSpace(parsed.Route))
		}
	}

	switch {
	case normalized == string(RouteLesson) || normalized == string(RouteBlog):
		return Route(normalized), nil
	case strings.Contains(normalized, string(RouteBlog)) && !strings.Contains(normalized, string(RouteLesson)):
		return RouteBlog, nil
	case strings.Contains(normalized, string(RouteLesson)) && !strings.Contains(normalized, string(RouteBlog)):
		return RouteLesson, nil
	default:
		return "", fmt.Errorf("unrecognized route %q", strings.TrimSpace(response))
	}
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}
