package dto

import "time"

// ErrorResponse is the wire shape for all non-2xx replies.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Details []string `json:"details,omitempty"`
}

// QuestionDTO is the candidate-facing question view. Answer keys and solution
// images are deliberately absent; copier skips fields the DTO does not carry.
type QuestionDTO struct {
	ID             uint   `json:"id"`
	SectionID      uint   `json:"section_id"`
	QuestionNumber int    `json:"question_number"`
	QuestionImage  string `json:"question_image"`
	Marks          int    `json:"marks"`
	NegativeMarks  int    `json:"negative_marks"`
}

type SectionDTO struct {
	ID           uint          `json:"id"`
	TestID       uint          `json:"test_id"`
	Name         string        `json:"name"`
	QuestionType string        `json:"question_type"`
	Order        int           `json:"order"`
	Questions    []QuestionDTO `json:"questions,omitempty"`
}

type TestDTO struct {
	ID         uint         `json:"id"`
	Name       string       `json:"name"`
	Duration   int          `json:"duration"`
	TotalMarks int          `json:"total_marks"`
	IsLive     bool         `json:"is_live"`
	IsDraft    bool         `json:"is_draft"`
	Sections   []SectionDTO `json:"sections,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

type TestSummaryDTO struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Duration   int       `json:"duration"`
	TotalMarks int       `json:"total_marks"`
	IsLive     bool      `json:"is_live"`
	IsDraft    bool      `json:"is_draft"`
	CreatedAt  time.Time `json:"created_at"`
}

type AnswerDTO struct {
	ID             uint       `json:"id"`
	QuestionID     uint       `json:"question_id"`
	SelectedOption *string    `json:"selected_option,omitempty"`
	IntegerAnswer  *int       `json:"integer_answer,omitempty"`
	Status         string     `json:"status"`
	IsCorrect      *bool      `json:"is_correct,omitempty"`
	MarksAwarded   int        `json:"marks_awarded"`
	TimeSpent      int        `json:"time_spent"`
	VisitCount     int        `json:"visit_count"`
	FirstVisitTime *time.Time `json:"first_visit_time,omitempty"`
	LastVisitTime  *time.Time `json:"last_visit_time,omitempty"`
}

type AttemptDTO struct {
	ID                uint        `json:"id"`
	TestID            uint        `json:"test_id"`
	CandidateName     string      `json:"candidate_name"`
	CandidateImage    *string     `json:"candidate_image,omitempty"`
	StartTime         time.Time   `json:"start_time"`
	EndTime           *time.Time  `json:"end_time,omitempty"`
	TotalMarks        int         `json:"total_marks"`
	IsCompleted       bool        `json:"is_completed"`
	WarningCount      int         `json:"warning_count"`
	NeedsResume       bool        `json:"needs_resume"`
	CanResume         bool        `json:"can_resume"`
	ResumeRequestedAt *time.Time  `json:"resume_requested_at,omitempty"`
	Test              *TestDTO    `json:"test,omitempty"`
	Answers           []AnswerDTO `json:"answers,omitempty"`
}

// ResumeGateResponse is the 403 body when a fresh start is blocked pending
// examiner approval.
type ResumeGateResponse struct {
	NeedsResume bool   `json:"needs_resume"`
	AttemptID   uint   `json:"attempt_id"`
	Error       string `json:"error"`
	Code        string `json:"code"`
}

type SyncAnswersResponse struct {
	Success bool `json:"success"`
	Synced  int  `json:"synced"`
}

type WarningResponse struct {
	WarningCount  int         `json:"warning_count"`
	AutoSubmitted bool        `json:"auto_submitted"`
	Attempt       *AttemptDTO `json:"attempt,omitempty"`
}

type QuestionTimeResponse struct {
	Success    bool `json:"success"`
	TimeSpent  int  `json:"time_spent"`
	VisitCount int  `json:"visit_count"`
}

type BulkTimeSyncResponse struct {
	Success          bool `json:"success"`
	UpdatedQuestions int  `json:"updated_questions"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type QuestionTimeAnalyticsDTO struct {
	QuestionID     uint       `json:"question_id"`
	QuestionNumber int        `json:"question_number"`
	TimeSpent      int        `json:"time_spent"`
	VisitCount     int        `json:"visit_count"`
	Status         string     `json:"status"`
	FirstVisitTime *time.Time `json:"first_visit_time,omitempty"`
	LastVisitTime  *time.Time `json:"last_visit_time,omitempty"`
}

type SectionTimeAnalyticsDTO struct {
	SectionID      uint                       `json:"section_id"`
	Name           string                     `json:"name"`
	QuestionType   string                     `json:"question_type"`
	TotalTimeSpent int                        `json:"total_time_spent"`
	TotalVisits    int                        `json:"total_visits"`
	AttemptedCount int                        `json:"attempted_count"`
	Questions      []QuestionTimeAnalyticsDTO `json:"questions"`
}

type TimeAnalyticsResponse struct {
	AttemptID      uint                      `json:"attempt_id"`
	TotalTimeSpent int                       `json:"total_time_spent"`
	Sections       []SectionTimeAnalyticsDTO `json:"sections"`
}
