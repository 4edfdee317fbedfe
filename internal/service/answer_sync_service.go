package service

import (
	"github.com/proctorly/exam-engine/internal/apperror"
	"github.com/proctorly/exam-engine/internal/dto"
	"github.com/proctorly/exam-engine/internal/repository"
	"github.com/rs/zerolog/log"
)

// AnswerSyncService applies the client's periodic answer batches. Each entry
// is a plain field overwrite keyed by (attempt, question); no scoring happens
// here. Entries target disjoint keys, so a missing row never aborts the rest
// of the batch.
type AnswerSyncService interface {
	SyncAnswers(req dto.SyncAnswersRequest) (int, error)
}

type answerSyncService struct {
	attemptRepo repository.TestAttemptRepository
	answerRepo  repository.AnswerRepository
}

func NewAnswerSyncService(attemptRepo repository.TestAttemptRepository, answerRepo repository.AnswerRepository) AnswerSyncService {
	return &answerSyncService{attemptRepo: attemptRepo, answerRepo: answerRepo}
}

func (s *answerSyncService) SyncAnswers(req dto.SyncAnswersRequest) (int, error) {
	attempt, err := s.attemptRepo.FindByID(req.AttemptID)
	if err != nil {
		return 0, err
	}
	if attempt.IsCompleted {
		// Scored fields must never be clobbered by a late sync tick.
		return 0, apperror.PreconditionFailed("ALREADY_COMPLETED", "attempt %d is already completed", req.AttemptID)
	}

	synced := 0
	for _, entry := range req.Answers {
		err := s.answerRepo.UpdateSyncFields(req.AttemptID, entry.QuestionID,
			entry.SelectedOption, entry.IntegerAnswer, entry.Status)
		if err != nil {
			if apperror.IsNotFound(err) {
				// Rows are pre-created at attempt start; a miss is caller
				// error on this one entry, not a batch failure.
				log.Warn().Uint("attemptID", req.AttemptID).Uint("questionID", entry.QuestionID).
					Msg("SyncAnswers: no answer row for entry, skipping")
				continue
			}
			return synced, err
		}
		synced++
	}
	return synced, nil
}
