package workflow

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"ai-coursegen-be/pkg/crawler"
)

func TestStateRoundTrip(t *testing.T) {
	now := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)

	original := &State{
		User: &UserInfo{
			ID:       "u-1",
			Username: "asha",
			Age:      "16",
			Grade:    "11",
			IsActive: true,
			Summary:  "visual learner, strong in math",
		},
		CurrentResource: &LearningResource{
			Subject:  "physics",
			Grade:    11,
			Unit:     "Electricity and Magnetism",
			Topic:    "Magnetism",
			Keywords: []string{"field", "flux"},
			Hours:    7,
		},
		EnrichedResource: &EnrichedResource{
			Subject:     "physics",
			Grade:       11,
			Unit:        "Electricity and Magnetism",
			Topic:       "Magnetism",
			Description: "Magnetic fields, forces and induction",
			Keywords:    []string{"field", "flux", "induction"},
			Hours:       7,
		},
		Route:       RouteLesson,
		ContentType: ContentTypeLesson,
		Content:     &GeneratedContent{Content: "# Magnetism\n\nA field is..."},
		Feedback: &Feedback{
			Rating:             4,
			Comments:           "good depth",
			Needed:             true,
			Gaps:               []string{"add worked examples"},
			AiReliabilityScore: 0.9,
		},
		ValidationResult: &ValidationResult{
			IsValid:    false,
			Violations: []string{"missing references section"},
		},
		TopicData: []crawler.ScrapedPage{
			{
				URL:       "https://example.org/magnetism",
				Source:    "example.org",
				Subject:   "physics",
				Grade:     11,
				Headings:  []string{"Fields", "Forces"},
				Findings:  []string{"field lines never cross"},
				Keywords:  []string{"magnetism"},
				Status:    crawler.StatusSuccess,
				ScrapedAt: now,
			},
		},
		History: []HistorySnapshot{
			{
				Topic:     "Magnetism",
				Content:   "# Magnetism (v1)",
				Feedback:  &Feedback{Rating: 3, Needed: true, Gaps: []string{}},
				Timestamp: now,
			},
		},
		Count: 2,
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var restored State
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(original, &restored) {
		t.Errorf("round trip mismatch:\noriginal: %+v\nrestored: %+v", original, &restored)
	}
}

func TestStateValidate(t *testing.T) {
	tests := []struct {
		name    string
		state   *State
		wantErr bool
	}{
		{
			name: "valid entry state",
			state: NewState(
				UserInfo{ID: "u-1", Username: "asha"},
				LearningResource{Subject: "physics", Grade: 11, Topic: "Magnetism", Hours: 7},
			),
		},
		{
			name:    "missing user",
			state:   &State{CurrentResource: &LearningResource{Subject: "physics", Grade: 11, Topic: "Magnetism"}},
			wantErr: true,
		},
		{
			name:    "missing resource",
			state:   &State{User: &UserInfo{ID: "u-1", Username: "asha"}},
			wantErr: true,
		},
		{
			name: "resource without topic",
			state: NewState(
				UserInfo{ID: "u-1", Username: "asha"},
				LearningResource{Subject: "physics", Grade: 11},
			),
			wantErr: true,
		},
		{name: "nil state", state: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.state.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSnapshotCopiesFeedback(t *testing.T) {
	st := NewState(
		UserInfo{ID: "u-1", Username: "asha"},
		LearningResource{Subject: "physics", Grade: 11, Topic: "Magnetism"},
	)
	st.Content = &GeneratedContent{Content: "# Draft"}
	st.Feedback = &Feedback{Rating: 3, Needed: true, Gaps: []string{"examples"}}

	st.Snapshot(time.Now())
	st.Feedback.Rating = 5

	if len(st.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(st.History))
	}
	if st.History[0].Feedback.Rating != 3 {
		t.Errorf("snapshot feedback mutated: rating = %d, want 3", st.History[0].Feedback.Rating)
	}
}
