package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Course struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Subject    string         `gorm:"type:varchar(100);not null"`
	Grade      int            `gorm:"not null"`
	Unit       string         `gorm:"type:varchar(255)"`
	Topic      string         `gorm:"type:varchar(255);not null;index"`
	Route      string         `gorm:"type:varchar(20);not null"`
	Style      string         `gorm:"type:varchar(50)"`
	Content    string         `gorm:"type:text"`
	Iterations int            `gorm:"default:0"`
	Feedback   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Course) TableName() string {
	return "courses"
}
