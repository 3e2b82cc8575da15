package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeUserRegistered  = "USER_REGISTERED"
	TypeCourseGenerated = "COURSE_GENERATED"
)

// NewUserRegistered is emitted after a successful signup.
func NewUserRegistered(userId uuid.UUID, email string) Event {
	return BaseEvent{
		Type: TypeUserRegistered,
		Data: map[string]interface{}{
			"user_id": userId.String(),
			"email":   email,
		},
		OccurredAt: time.Now(),
	}
}

// NewCourseGenerated is emitted after a workflow run persists a course.
func NewCourseGenerated(courseId, userId uuid.UUID, topic, route string, iterations int) Event {
	return BaseEvent{
		Type: TypeCourseGenerated,
		Data: map[string]interface{}{
			"course_id":  courseId.String(),
			"user_id":    userId.String(),
			"topic":      topic,
			"route":      route,
			"iterations": iterations,
		},
		OccurredAt: time.Now(),
	}
}
