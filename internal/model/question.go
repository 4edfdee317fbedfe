package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	SectionID      uint           `json:"section_id" gorm:"not null;index;uniqueIndex:idx_section_question_number"`
	QuestionNumber int            `json:"question_number" gorm:"not null;uniqueIndex:idx_section_question_number"` // 1-based, scoring/display order
	QuestionImage  string         `json:"question_image" gorm:"not null"`
	SolutionImage  *string        `json:"solution_image,omitempty"`
	CorrectOption  *string        `json:"correct_option,omitempty"`  // MCQ sections
	CorrectInteger *int           `json:"correct_integer,omitempty"` // INTEGER sections
	Marks          int            `json:"marks" gorm:"not null"`
	NegativeMarks  int            `json:"negative_marks"` // non-positive, applied on incorrect attempts
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
