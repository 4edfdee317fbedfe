package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusNotVisited      = "NOT_VISITED"
	StatusNotAnswered     = "NOT_ANSWERED"
	StatusAnswered        = "ANSWERED"
	StatusMarkedForReview = "MARKED_FOR_REVIEW"
)

// Answer holds one candidate's state for one question of an attempt. All rows
// for an attempt are created together at attempt start and mutated in place;
// the (test_attempt_id, question_id) unique index is the upsert key.
type Answer struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	TestAttemptID  uint           `json:"test_attempt_id" gorm:"not null;index;uniqueIndex:idx_attempt_question"`
	QuestionID     uint           `json:"question_id" gorm:"not null;index;uniqueIndex:idx_attempt_question"`
	Question       Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	SelectedOption *string        `json:"selected_option,omitempty"`
	IntegerAnswer  *int           `json:"integer_answer,omitempty"`
	Status         string         `json:"status" gorm:"not null;default:'NOT_VISITED'"`
	IsCorrect      *bool          `json:"is_correct,omitempty"` // nil until scored; stays nil for unattempted
	MarksAwarded   int            `json:"marks_awarded"`
	TimeSpent      int            `json:"time_spent"` // cumulative seconds
	VisitCount     int            `json:"visit_count"`
	FirstVisitTime *time.Time     `json:"first_visit_time,omitempty"`
	LastVisitTime  *time.Time     `json:"last_visit_time,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsScorable reports whether the declared status makes the answer eligible
// for marking at all.
func (a *Answer) IsScorable() bool {
	return a.Status == StatusAnswered || a.Status == StatusMarkedForReview
}

// HasValue reports whether the candidate actually supplied an answer value,
// independent of what the status claims.
func (a *Answer) HasValue() bool {
	if a.SelectedOption != nil && *a.SelectedOption != "" {
		return true
	}
	return a.IntegerAnswer != nil
}
