package workflow

import "testing"

func TestDecodeRoute(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     Route
		wantErr  bool
	}{
		{name: "plain lesson", response: "LESSON", want: RouteLesson},
		{name: "lowercase blog", response: "blog", want: RouteBlog},
		{name: "json payload", response: `{"route": "BLOG"}`, want: RouteBlog},
		{name: "json with commentary", response: "Sure, here you go: {\"route\": \"LESSON\"}", want: RouteLesson},
		{name: "embedded tag", response: "The best route is BLOG here", want: RouteBlog},
		{name: "both tags is ambiguous", response: "LESSON or BLOG", wantErr: true},
		{name: "garbage", response: "bananas", wantErr: true},
		{name: "empty", response: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeRoute(tt.response)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("decodeRoute(%q) expected error, got %q", tt.response, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeRoute(%q) unexpected error: %v", tt.response, err)
			}
			if got != tt.want {
				t.Errorf("decodeRoute(%q) = %q, want %q", tt.response, got, tt.want)
			}
		})
	}
}

func TestDecodeFeedback(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantErr  bool
		check    func(t *testing.T, fb *Feedback)
	}{
		{
			name:     "valid feedback",
			response: `{"rating": 4, "comments": "solid", "needed": true, "gaps": ["more examples"], "ai_reliability_score": 0.8}`,
			check: func(t *testing.T, fb *Feedback) {
				if fb.Rating != 4 || !fb.Needed || len(fb.Gaps) != 1 {
					t.Errorf("unexpected feedback: %+v", fb)
				}
			},
		},
		{
			name:     "json wrapped in prose",
			response: "Here is my review:\n{\"rating\": 2, \"needed\": true, \"gaps\": [], \"ai_reliability_score\": 0.5}\nHope that helps.",
			check: func(t *testing.T, fb *Feedback) {
				if fb.Rating != 2 {
					t.Errorf("rating = %d, want 2", fb.Rating)
				}
			},
		},
		{
			name:     "missing gaps becomes empty slice",
			response: `{"rating": 3, "needed": false, "ai_reliability_score": 1}`,
			check: func(t *testing.T, fb *Feedback) {
				if fb.Gaps == nil {
					t.Error("gaps should be initialized, got nil")
				}
			},
		},
		{name: "rating out of range", response: `{"rating": 9, "needed": true, "ai_reliability_score": 0.5}`, wantErr: true},
		{name: "reliability out of range", response: `{"rating": 3, "needed": true, "ai_reliability_score": 1.5}`, wantErr: true},
		{name: "no json", response: "the content looks fine to me", wantErr: true},
		{name: "broken json", response: `{"rating": `, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, err := decodeFeedback(tt.response)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("decodeFeedback expected error, got %+v", fb)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeFeedback unexpected error: %v", err)
			}
			tt.check(t, fb)
		})
	}
}

func TestDecodeValidationResult(t *testing.T) {
	vr, err := decodeValidationResult(`{"is_valid": false, "violations": ["missing title"]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vr.IsValid || len(vr.Violations) != 1 {
		t.Errorf("unexpected result: %+v", vr)
	}

	if _, err := decodeValidationResult("not json at all"); err == nil {
		t.Error("expected error for non-JSON response")
	}
}

func TestDecodeEnrichedResource(t *testing.T) {
	res, err := decodeEnrichedResource(`{"subject": "physics", "grade": 11, "topic": "Magnetism", "keywords": ["field"], "hours": 7}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Topic != "Magnetism" || res.Grade != 11 {
		t.Errorf("unexpected resource: %+v", res)
	}

	if _, err := decodeEnrichedResource(`{"subject": "physics"}`); err == nil {
		t.Error("expected validation error for incomplete resource")
	}
}
