package service

import (
	"time"

	"github.com/proctorly/exam-engine/internal/apperror"
	"github.com/proctorly/exam-engine/internal/dto"
	"github.com/proctorly/exam-engine/internal/model"
	"github.com/proctorly/exam-engine/internal/repository"
	"github.com/rs/zerolog/log"
)

const actionVisit = "visit"

// TimeTrackerService accumulates per-question time and visit counts. Both
// entry points share one rule: time only ever increases, and visit counts
// move on first contact or an explicit visit action, never on continuous
// update ticks.
type TimeTrackerService interface {
	UpdateQuestionTime(attemptID uint, req dto.QuestionTimeRequest) (*dto.QuestionTimeResponse, error)
	BulkSyncTimes(attemptID uint, questionTimes map[uint]int) (int, error)
	GetTimeAnalytics(attemptID uint) (*dto.TimeAnalyticsResponse, error)
}

type timeTrackerService struct {
	testRepo    repository.TestRepository
	attemptRepo repository.TestAttemptRepository
	answerRepo  repository.AnswerRepository
}

func NewTimeTrackerService(
	testRepo repository.TestRepository,
	attemptRepo repository.TestAttemptRepository,
	answerRepo repository.AnswerRepository,
) TimeTrackerService {
	return &timeTrackerService{testRepo: testRepo, attemptRepo: attemptRepo, answerRepo: answerRepo}
}

func (s *timeTrackerService) UpdateQuestionTime(attemptID uint, req dto.QuestionTimeRequest) (*dto.QuestionTimeResponse, error) {
	if req.TimeSpent == nil || *req.TimeSpent < 0 {
		return nil, apperror.Validation("INVALID_TIME", "time_spent must be a non-negative number of seconds")
	}
	if err := s.requireIncomplete(attemptID); err != nil {
		return nil, err
	}

	answer, err := s.answerRepo.FindByAttemptAndQuestion(attemptID, req.QuestionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	answer.TimeSpent += *req.TimeSpent
	answer.LastVisitTime = &now
	if answer.FirstVisitTime == nil {
		answer.FirstVisitTime = &now
		answer.VisitCount = 1
	} else if req.Action == actionVisit {
		answer.VisitCount++
	}

	if err := s.answerRepo.Save(answer); err != nil {
		return nil, err
	}
	return &dto.QuestionTimeResponse{
		Success:    true,
		TimeSpent:  answer.TimeSpent,
		VisitCount: answer.VisitCount,
	}, nil
}

func (s *timeTrackerService) BulkSyncTimes(attemptID uint, questionTimes map[uint]int) (int, error) {
	for questionID, delta := range questionTimes {
		if delta < 0 {
			return 0, apperror.Validation("INVALID_TIME", "negative time delta for question %d", questionID)
		}
	}
	if err := s.requireIncomplete(attemptID); err != nil {
		return 0, err
	}

	updated := 0
	now := time.Now()
	for questionID, delta := range questionTimes {
		if delta == 0 {
			continue
		}
		answer, err := s.answerRepo.FindByAttemptAndQuestion(attemptID, questionID)
		if err != nil {
			if apperror.IsNotFound(err) {
				fresh := model.Answer{
					TestAttemptID:  attemptID,
					QuestionID:     questionID,
					Status:         model.StatusNotVisited,
					TimeSpent:      delta,
					VisitCount:     1,
					FirstVisitTime: &now,
					LastVisitTime:  &now,
				}
				if err := s.answerRepo.Create(&fresh); err != nil {
					log.Warn().Err(err).Uint("attemptID", attemptID).Uint("questionID", questionID).
						Msg("BulkSyncTimes: failed to create missing answer row, skipping entry")
					continue
				}
				updated++
				continue
			}
			return updated, err
		}
		answer.TimeSpent += delta
		answer.LastVisitTime = &now
		if err := s.answerRepo.Save(answer); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

func (s *timeTrackerService) GetTimeAnalytics(attemptID uint) (*dto.TimeAnalyticsResponse, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, err
	}
	test, err := s.testRepo.FindByIDWithQuestions(attempt.TestID)
	if err != nil {
		return nil, err
	}
	answers, err := s.answerRepo.FindByAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	byQuestion := make(map[uint]model.Answer, len(answers))
	for _, answer := range answers {
		byQuestion[answer.QuestionID] = answer
	}

	resp := dto.TimeAnalyticsResponse{AttemptID: attemptID}
	for _, section := range test.Sections {
		sectionDTO := dto.SectionTimeAnalyticsDTO{
			SectionID:    section.ID,
			Name:         section.Name,
			QuestionType: section.QuestionType,
			Questions:    make([]dto.QuestionTimeAnalyticsDTO, 0, len(section.Questions)),
		}
		for _, question := range section.Questions {
			answer := byQuestion[question.ID]
			sectionDTO.Questions = append(sectionDTO.Questions, dto.QuestionTimeAnalyticsDTO{
				QuestionID:     question.ID,
				QuestionNumber: question.QuestionNumber,
				TimeSpent:      answer.TimeSpent,
				VisitCount:     answer.VisitCount,
				Status:         answer.Status,
				FirstVisitTime: answer.FirstVisitTime,
				LastVisitTime:  answer.LastVisitTime,
			})
			sectionDTO.TotalTimeSpent += answer.TimeSpent
			sectionDTO.TotalVisits += answer.VisitCount
			if answer.IsScorable() {
				sectionDTO.AttemptedCount++
			}
		}
		resp.TotalTimeSpent += sectionDTO.TotalTimeSpent
		resp.Sections = append(resp.Sections, sectionDTO)
	}
	return &resp, nil
}

func (s *timeTrackerService) requireIncomplete(attemptID uint) error {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return err
	}
	if attempt.IsCompleted {
		return apperror.PreconditionFailed("ALREADY_COMPLETED", "attempt %d is already completed", attemptID)
	}
	return nil
}
