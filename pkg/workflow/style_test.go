package workflow

import "testing"

func TestStyleFor(t *testing.T) {
	tests := []struct {
		name        string
		res         *EnrichedResource
		contentType ContentType
		want        Style
	}{
		{
			name: "evaluation unit wins first",
			res:  &EnrichedResource{Unit: "Unit Evaluation", Topic: "Derive the lens formula"},
			want: StyleEvaluation,
		},
		{
			name: "experiment in description",
			res:  &EnrichedResource{Unit: "Optics", Topic: "Refraction", Description: "Hands-on experiment with prisms"},
			want: StyleExperimental,
		},
		{
			name: "practical in topic id",
			res:  &EnrichedResource{Unit: "Chemistry", TopicID: "practical-3", Topic: "Titration"},
			want: StyleExperimental,
		},
		{
			name: "derive and formula resolve to problem solving",
			res:  &EnrichedResource{Unit: "Mechanics", Topic: "Derive the formula for centripetal force", Description: ""},
			want: StyleProblemSolving,
		},
		{
			name: "application based from description",
			res:  &EnrichedResource{Unit: "Electromagnetism", Topic: "Transformers", Description: "How transformers are used in power grids"},
			want: StyleApplicationBased,
		},
		{
			name: "revision summary",
			res:  &EnrichedResource{Unit: "Mechanics", Topic: "Revision of Newton's laws"},
			want: StyleRevisionSummary,
		},
		{
			name:        "quiz content type",
			res:         &EnrichedResource{Unit: "Biology", Topic: "Cell structure"},
			contentType: ContentTypeQuiz,
			want:        StyleInteractiveQuiz,
		},
		{
			name: "enrichment from context in description",
			res:  &EnrichedResource{Unit: "History of science", Topic: "Galileo", Description: "Historical context of the telescope"},
			want: StyleEnrichment,
		},
		{
			name: "default conceptual focus",
			res:  &EnrichedResource{Unit: "Waves", Topic: "Sound propagation"},
			want: StyleConceptualFocus,
		},
		{
			name: "nil resource defaults",
			res:  nil,
			want: StyleConceptualFocus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StyleFor(tt.res, tt.contentType)
			if got != tt.want {
				t.Errorf("StyleFor() = %q, want %q", got, tt.want)
			}
		})
	}
}
