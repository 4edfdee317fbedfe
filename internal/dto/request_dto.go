package dto

// StartAttemptRequest begins (or resume-checks) an attempt for a candidate.
type StartAttemptRequest struct {
	TestID         uint    `json:"test_id" binding:"required"`
	CandidateName  string  `json:"candidate_name" binding:"required"`
	CandidateImage *string `json:"candidate_image"`
}

// SyncAnswerEntry is one in-progress answer state, keyed by question.
type SyncAnswerEntry struct {
	QuestionID     uint    `json:"question_id" binding:"required"`
	SelectedOption *string `json:"selected_option"`
	IntegerAnswer  *int    `json:"integer_answer"`
	Status         string  `json:"status" binding:"required,oneof=NOT_VISITED NOT_ANSWERED ANSWERED MARKED_FOR_REVIEW"`
}

type SyncAnswersRequest struct {
	AttemptID uint              `json:"attempt_id" binding:"required"`
	Answers   []SyncAnswerEntry `json:"answers" binding:"required,min=1,dive"`
}

type SubmitAttemptRequest struct {
	AttemptID uint              `json:"attempt_id" binding:"required"`
	Answers   []SyncAnswerEntry `json:"answers" binding:"dive"`
}

type WarningRequest struct {
	AttemptID uint `json:"attempt_id" binding:"required"`
}

// QuestionTimeRequest is the incremental time-tracking entry point. Action
// "visit" counts a navigation onto the question; "update" is the continuous
// tick and never bumps the visit counter.
type QuestionTimeRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	TimeSpent  *int   `json:"time_spent" binding:"required"`
	Action     string `json:"action" binding:"omitempty,oneof=visit update"`
}

// BulkTimeSyncRequest carries cumulative deltas per question id.
type BulkTimeSyncRequest struct {
	QuestionTimes map[uint]int `json:"question_times" binding:"required"`
}

type ResumeRequest struct {
	AttemptID uint `json:"attempt_id" binding:"required"`
}
