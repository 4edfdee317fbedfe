package service

import (
	"time"

	"github.com/proctorly/exam-engine/internal/apperror"
	"github.com/proctorly/exam-engine/internal/dto"
	"github.com/proctorly/exam-engine/internal/repository"
	"github.com/rs/zerolog/log"
)

// ResumeService is the examiner-facing half of the resume gate. A candidate
// who disconnected requests permission; until an examiner allows it, Start
// refuses to hand out a fresh attempt for that slot.
type ResumeService interface {
	RequestResume(attemptID uint) error
	AllowResume(attemptID uint) error
	ListPending() ([]dto.AttemptDTO, error)
}

type resumeService struct {
	attemptRepo repository.TestAttemptRepository
}

func NewResumeService(attemptRepo repository.TestAttemptRepository) ResumeService {
	return &resumeService{attemptRepo: attemptRepo}
}

func (s *resumeService) RequestResume(attemptID uint) error {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return err
	}
	if attempt.IsCompleted {
		return apperror.PreconditionFailed("ALREADY_COMPLETED", "attempt %d is already completed", attemptID)
	}
	now := time.Now()
	if err := s.attemptRepo.UpdateResumeFlags(attemptID, true, false, &now); err != nil {
		return err
	}
	log.Info().Uint("attemptID", attemptID).Msg("RequestResume: attempt gated pending examiner approval")
	return nil
}

func (s *resumeService) AllowResume(attemptID uint) error {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return err
	}
	if attempt.IsCompleted {
		return apperror.PreconditionFailed("ALREADY_COMPLETED", "attempt %d is already completed", attemptID)
	}
	if err := s.attemptRepo.UpdateResumeFlags(attemptID, false, true, attempt.ResumeRequestedAt); err != nil {
		return err
	}
	log.Info().Uint("attemptID", attemptID).Msg("AllowResume: resume granted")
	return nil
}

func (s *resumeService) ListPending() ([]dto.AttemptDTO, error) {
	attempts, err := s.attemptRepo.FindPendingResume()
	if err != nil {
		return nil, err
	}
	dtos := make([]dto.AttemptDTO, 0, len(attempts))
	for i := range attempts {
		dtos = append(dtos, *toAttemptDTO(&attempts[i]))
	}
	return dtos, nil
}
