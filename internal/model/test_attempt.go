package model

import (
	"time"

	"gorm.io/gorm"
)

type TestAttempt struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	TestID            uint           `json:"test_id" gorm:"not null;index"`
	Test              Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	CandidateName     string         `json:"candidate_name" gorm:"not null;index"`
	CandidateImage    *string        `json:"candidate_image,omitempty"` // proctoring snapshot reference
	StartTime         time.Time      `json:"start_time"`
	EndTime           *time.Time     `json:"end_time,omitempty"`
	TotalMarks        int            `json:"total_marks"` // 0 until submit
	IsCompleted       bool           `json:"is_completed" gorm:"default:false;index"`
	WarningCount      int            `json:"warning_count" gorm:"default:0"`
	NeedsResume       bool           `json:"needs_resume" gorm:"default:false"`
	CanResume         bool           `json:"can_resume" gorm:"default:false"`
	ResumeRequestedAt *time.Time     `json:"resume_requested_at,omitempty"`
	Answers           []Answer       `json:"answers,omitempty" gorm:"foreignKey:TestAttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
