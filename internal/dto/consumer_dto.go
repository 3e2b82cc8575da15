package dto

import "github.com/google/uuid"

// PublishIndexCourseMessage asks the consumer to (re)index a course's content
// into the course embedding collection.
type PublishIndexCourseMessage struct {
	CourseId uuid.UUID `json:"course_id"`
}
