package mapper

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"ai-coursegen-be/internal/entity"
	"ai-coursegen-be/pkg/workflow"
)

func TestUserMapperRoundTrip(t *testing.T) {
	m := NewUserMapper()
	hash := "$2a$10$abcdefghijklmnopqrstuv"

	original := &entity.User{
		Id:            uuid.New(),
		Username:      "dina",
		Email:         "dina@example.com",
		PasswordHash:  &hash,
		Age:           "13",
		Grade:         "8",
		Preferences:   "prefers diagrams and worked examples",
		Status:        entity.UserStatusActive,
		EmailVerified: true,
		CreatedAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}

	got := m.ToEntity(m.ToModel(original))
	if !reflect.DeepEqual(original, got) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, original)
	}
}

func TestCourseMapperRoundTrip(t *testing.T) {
	m := NewCourseMapper()

	original := &entity.Course{
		Id:         uuid.New(),
		UserId:     uuid.New(),
		Subject:    "Physics",
		Grade:      8,
		Unit:       "Electricity and Magnetism",
		Topic:      "Magnetism",
		Route:      "LESSON",
		Style:      "conceptual_focus",
		Content:    "# Magnetism\n\nBody.",
		Iterations: 3,
		Feedback: &workflow.Feedback{
			Rating:             4,
			Comments:           "solid draft",
			Needed:             false,
			Gaps:               []string{"more examples"},
			AiReliabilityScore: 0.9,
		},
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	got := m.ToEntity(m.ToModel(original))
	if !reflect.DeepEqual(original, got) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, original)
	}
}

func TestCourseMapperNilFeedback(t *testing.T) {
	m := NewCourseMapper()

	original := &entity.Course{
		Id:      uuid.New(),
		UserId:  uuid.New(),
		Subject: "Physics",
		Grade:   8,
		Topic:   "Magnetism",
		Route:   "BLOG",
	}

	got := m.ToEntity(m.ToModel(original))
	if got.Feedback != nil {
		t.Errorf("expected nil feedback after round trip, got %+v", got.Feedback)
	}
}

func TestLearningStateMapperRoundTrip(t *testing.T) {
	m := NewLearningStateMapper()

	state := &workflow.State{
		User: &workflow.UserInfo{
			ID:       uuid.NewString(),
			Username: "dina",
			Grade:    "8",
			IsActive: true,
			Summary:  "Grade 8 student, prefers visual explanations.",
		},
		CurrentResource: &workflow.LearningResource{
			Subject: "Physics",
			Grade:   8,
			Topic:   "Magnetism",
		},
		Content: &workflow.GeneratedContent{Content: "# Magnetism"},
		Count:   2,
	}

	original := &entity.LearningState{
		UserId:    uuid.New(),
		State:     state,
		UpdatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	got := m.ToEntity(m.ToModel(original))
	if got.State == nil {
		t.Fatal("state lost in round trip")
	}
	if !reflect.DeepEqual(original.State.User, got.State.User) {
		t.Errorf("user mismatch: got %+v want %+v", got.State.User, original.State.User)
	}
	if got.State.Count != 2 {
		t.Errorf("count mismatch: got %d", got.State.Count)
	}
}

func TestLessonEmbeddingMapperRoundTrip(t *testing.T) {
	m := NewLessonEmbeddingMapper()

	original := &entity.LessonEmbedding{
		Id:             uuid.New(),
		Document:       "Subject: Physics (grade 8)",
		EmbeddingValue: []float32{0.1, 0.2, 0.3},
		Resource: workflow.LearningResource{
			Subject: "Physics",
			Grade:   8,
			Unit:    "Electricity and Magnetism",
			Topic:   "Magnetism",
		},
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	got := m.ToEntity(m.ToModel(original))
	if !reflect.DeepEqual(original, got) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, original)
	}
}
