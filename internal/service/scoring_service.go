package service

import (
	"github.com/proctorly/exam-engine/internal/model"
)

// ScoringService marks a set of submitted answers against the question
// catalog. It is a pure computation: no storage access, no mutation of its
// inputs. Both the explicit submit path and the warning auto-submit go
// through here, so the three-way outcome (correct / incorrect / unattempted)
// is decided in exactly one place.
type ScoringService interface {
	Score(questions map[uint]model.Question, answers []model.Answer) ScoreResult
}

type ScoreResult struct {
	Answers    []model.Answer
	TotalMarks int
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

func (s *scoringService) Score(questions map[uint]model.Question, answers []model.Answer) ScoreResult {
	result := ScoreResult{Answers: make([]model.Answer, 0, len(answers))}
	for _, answer := range answers {
		question, ok := questions[answer.QuestionID]
		if !ok {
			// Answer for a question outside the catalog; skip rather than fail
			// the whole submission.
			continue
		}
		answer.IsCorrect, answer.MarksAwarded = scoreAnswer(question, answer)
		result.Answers = append(result.Answers, answer)
		result.TotalMarks += answer.MarksAwarded
	}
	return result
}

// scoreAnswer applies the marking rules for one answer:
//
//  1. statuses other than ANSWERED/MARKED_FOR_REVIEW are never scored;
//  2. an MCQ match against a non-empty correct option is correct;
//  3. otherwise an integer match against a set correct integer is correct;
//  4. otherwise any supplied value is incorrect and draws negative marks;
//  5. no value at all stays unattempted (nil, 0) even if the status claims
//     the question was answered.
func scoreAnswer(question model.Question, answer model.Answer) (*bool, int) {
	if !answer.IsScorable() {
		return nil, 0
	}
	if question.CorrectOption != nil && *question.CorrectOption != "" &&
		answer.SelectedOption != nil && *answer.SelectedOption == *question.CorrectOption {
		return boolPtr(true), question.Marks
	}
	if question.CorrectInteger != nil &&
		answer.IntegerAnswer != nil && *answer.IntegerAnswer == *question.CorrectInteger {
		return boolPtr(true), question.Marks
	}
	if answer.HasValue() {
		return boolPtr(false), question.NegativeMarks
	}
	return nil, 0
}

func boolPtr(b bool) *bool { return &b }
