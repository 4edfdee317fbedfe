package dto

import "time"

// CreateQuestionRequest is used within CreateTestRequest. Exactly one of
// CorrectOption/CorrectInteger must be set, matching the section's type;
// the service enforces that cross-field rule.
type CreateQuestionRequest struct {
	QuestionNumber int     `json:"question_number" binding:"required,min=1"`
	QuestionImage  string  `json:"question_image" binding:"required"`
	SolutionImage  *string `json:"solution_image"`
	CorrectOption  *string `json:"correct_option"`
	CorrectInteger *int    `json:"correct_integer"`
	Marks          int     `json:"marks" binding:"required,gt=0"`
	NegativeMarks  int     `json:"negative_marks" binding:"lte=0"`
}

type CreateSectionRequest struct {
	Name         string                  `json:"name" binding:"required"`
	QuestionType string                  `json:"question_type" binding:"required,oneof=MCQ INTEGER"`
	Order        int                     `json:"order" binding:"required,min=1"`
	Questions    []CreateQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

type CreateTestRequest struct {
	Name     string                 `json:"name" binding:"required"`
	Duration int                    `json:"duration" binding:"required,gt=0"`
	Sections []CreateSectionRequest `json:"sections" binding:"required,min=1,dive"`
}

type SetTestLiveRequest struct {
	IsLive *bool `json:"is_live" binding:"required"`
}

// AdminQuestionDTO includes the answer key and solution; admin surface only.
type AdminQuestionDTO struct {
	ID             uint    `json:"id"`
	SectionID      uint    `json:"section_id"`
	QuestionNumber int     `json:"question_number"`
	QuestionImage  string  `json:"question_image"`
	SolutionImage  *string `json:"solution_image,omitempty"`
	CorrectOption  *string `json:"correct_option,omitempty"`
	CorrectInteger *int    `json:"correct_integer,omitempty"`
	Marks          int     `json:"marks"`
	NegativeMarks  int     `json:"negative_marks"`
}

type AdminSectionDTO struct {
	ID           uint               `json:"id"`
	TestID       uint               `json:"test_id"`
	Name         string             `json:"name"`
	QuestionType string             `json:"question_type"`
	Order        int                `json:"order"`
	Questions    []AdminQuestionDTO `json:"questions,omitempty"`
}

type AdminTestDTO struct {
	ID         uint              `json:"id"`
	Name       string            `json:"name"`
	Duration   int               `json:"duration"`
	TotalMarks int               `json:"total_marks"`
	IsLive     bool              `json:"is_live"`
	IsDraft    bool              `json:"is_draft"`
	Sections   []AdminSectionDTO `json:"sections,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}
