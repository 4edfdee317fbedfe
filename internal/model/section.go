package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	QuestionTypeMCQ     = "MCQ"
	QuestionTypeInteger = "INTEGER"
)

type Section struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	TestID       uint           `json:"test_id" gorm:"not null;index;uniqueIndex:idx_test_section_order"`
	Name         string         `json:"name" gorm:"not null"`
	QuestionType string         `json:"question_type" gorm:"not null"` // MCQ or INTEGER
	Order        int            `json:"order" gorm:"not null;uniqueIndex:idx_test_section_order"`
	Questions    []Question     `json:"questions,omitempty" gorm:"foreignKey:SectionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
