package service

import (
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/proctorly/exam-engine/internal/apperror"
	"github.com/proctorly/exam-engine/internal/dto"
	"github.com/proctorly/exam-engine/internal/model"
	"github.com/proctorly/exam-engine/internal/repository"
	"github.com/rs/zerolog/log"
)

// WarningAutoSubmitThreshold is the proctoring violation count at which an
// attempt is force-submitted.
const WarningAutoSubmitThreshold = 5

// ResumeRequiredError blocks a fresh start while an examiner decision is
// pending. It carries the gated attempt so the client can poll it.
type ResumeRequiredError struct {
	AttemptID uint
}

func (e *ResumeRequiredError) Error() string {
	return fmt.Sprintf("resume permission required for attempt %d", e.AttemptID)
}

// AttemptLifecycleService owns the attempt state machine: start with its
// resume gate, submission with scoring, and the warning counter with its
// auto-submit threshold.
type AttemptLifecycleService interface {
	Start(req dto.StartAttemptRequest) (*dto.AttemptDTO, error)
	// Submit scores and completes the attempt. A nil answers slice means
	// "use the persisted answer rows as the submission payload", which is
	// how the warning auto-submit reuses this path.
	Submit(attemptID uint, answers []dto.SyncAnswerEntry) (*dto.AttemptDTO, error)
	RecordWarning(attemptID uint) (*dto.WarningResponse, error)
	GetAttempt(attemptID uint) (*dto.AttemptDTO, error)
	GetAttemptsByCandidate(candidateName string) ([]dto.AttemptDTO, error)
}

type attemptLifecycleService struct {
	testRepo    repository.TestRepository
	attemptRepo repository.TestAttemptRepository
	answerRepo  repository.AnswerRepository
	scoring     ScoringService
}

func NewAttemptLifecycleService(
	testRepo repository.TestRepository,
	attemptRepo repository.TestAttemptRepository,
	answerRepo repository.AnswerRepository,
	scoring ScoringService,
) AttemptLifecycleService {
	return &attemptLifecycleService{
		testRepo:    testRepo,
		attemptRepo: attemptRepo,
		answerRepo:  answerRepo,
		scoring:     scoring,
	}
}

func (s *attemptLifecycleService) Start(req dto.StartAttemptRequest) (*dto.AttemptDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(req.TestID)
	if err != nil {
		return nil, err
	}
	if !test.IsLive {
		return nil, apperror.PreconditionFailed("TEST_NOT_LIVE", "test %d is not live", test.ID)
	}

	var replaceID *uint
	existing, err := s.attemptRepo.FindLatestByTestAndCandidate(test.ID, req.CandidateName)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		if existing.IsCompleted {
			return nil, apperror.PreconditionFailed("ALREADY_COMPLETED",
				"candidate %s already completed test %d", req.CandidateName, test.ID)
		}
		if existing.NeedsResume && !existing.CanResume {
			return nil, &ResumeRequiredError{AttemptID: existing.ID}
		}
		// Stale or resume-approved incomplete attempt: its slot is replaced
		// by a fresh attempt atomically.
		replaceID = &existing.ID
		log.Info().Uint("staleAttemptID", existing.ID).Str("candidate", req.CandidateName).
			Msg("Start: replacing prior incomplete attempt")
	}

	attempt := model.TestAttempt{
		TestID:         test.ID,
		CandidateName:  req.CandidateName,
		CandidateImage: req.CandidateImage,
		StartTime:      time.Now(),
	}
	for _, section := range test.Sections {
		for _, question := range section.Questions {
			attempt.Answers = append(attempt.Answers, model.Answer{
				QuestionID: question.ID,
				Status:     model.StatusNotVisited,
			})
		}
	}

	if err := s.attemptRepo.CreateReplacing(&attempt, replaceID); err != nil {
		log.Error().Err(err).Uint("testID", test.ID).Str("candidate", req.CandidateName).
			Msg("Start: failed to create attempt")
		return nil, err
	}

	resp := toAttemptDTO(&attempt)
	var testDTO dto.TestDTO
	if err := copier.Copy(&testDTO, test); err != nil {
		return nil, apperror.Internal("error preparing start response", err)
	}
	resp.Test = &testDTO
	return resp, nil
}

func (s *attemptLifecycleService) Submit(attemptID uint, answers []dto.SyncAnswerEntry) (*dto.AttemptDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithAnswers(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.IsCompleted {
		return nil, apperror.PreconditionFailed("ALREADY_COMPLETED", "attempt %d is already completed", attemptID)
	}

	test, err := s.testRepo.FindByIDWithQuestions(attempt.TestID)
	if err != nil {
		return nil, err
	}
	questionMap := make(map[uint]model.Question)
	for _, section := range test.Sections {
		for _, question := range section.Questions {
			questionMap[question.ID] = question
		}
	}

	// The submission payload overlays the persisted rows; rows the payload
	// does not mention keep their last synced state.
	byQuestion := make(map[uint]*model.Answer, len(attempt.Answers))
	for i := range attempt.Answers {
		byQuestion[attempt.Answers[i].QuestionID] = &attempt.Answers[i]
	}
	for _, entry := range answers {
		row, ok := byQuestion[entry.QuestionID]
		if !ok {
			log.Warn().Uint("attemptID", attemptID).Uint("questionID", entry.QuestionID).
				Msg("Submit: payload references question outside this attempt, skipping")
			continue
		}
		row.SelectedOption = entry.SelectedOption
		row.IntegerAnswer = entry.IntegerAnswer
		row.Status = entry.Status
	}

	scored := s.scoring.Score(questionMap, attempt.Answers)
	now := time.Now()
	attempt.Answers = scored.Answers
	attempt.TotalMarks = scored.TotalMarks
	attempt.EndTime = &now
	attempt.IsCompleted = true

	if err := s.attemptRepo.FinalizeSubmission(attempt); err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("Submit: failed to finalize submission")
		return nil, err
	}

	// Reload so the response reflects the authoritative stored state.
	final, err := s.attemptRepo.FindByIDWithAnswers(attemptID)
	if err != nil {
		log.Warn().Err(err).Uint("attemptID", attemptID).
			Msg("Submit: reload after finalize failed, responding from in-memory state")
		return toAttemptDTO(attempt), nil
	}
	return toAttemptDTO(final), nil
}

func (s *attemptLifecycleService) RecordWarning(attemptID uint) (*dto.WarningResponse, error) {
	count, err := s.attemptRepo.IncrementWarning(attemptID)
	if err != nil {
		return nil, err
	}
	if count < WarningAutoSubmitThreshold {
		return &dto.WarningResponse{WarningCount: count}, nil
	}

	log.Info().Uint("attemptID", attemptID).Int("warningCount", count).
		Msg("RecordWarning: threshold reached, forcing submit")
	scored, err := s.Submit(attemptID, nil)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindPreconditionFailed {
			// A manual submit already completed the attempt; the warning is
			// recorded but nothing more to do.
			return &dto.WarningResponse{WarningCount: count}, nil
		}
		return nil, err
	}
	return &dto.WarningResponse{WarningCount: count, AutoSubmitted: true, Attempt: scored}, nil
}

func (s *attemptLifecycleService) GetAttempt(attemptID uint) (*dto.AttemptDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithAnswers(attemptID)
	if err != nil {
		return nil, err
	}
	return toAttemptDTO(attempt), nil
}

func (s *attemptLifecycleService) GetAttemptsByCandidate(candidateName string) ([]dto.AttemptDTO, error) {
	attempts, err := s.attemptRepo.FindAllByCandidate(candidateName)
	if err != nil {
		return nil, err
	}
	dtos := make([]dto.AttemptDTO, 0, len(attempts))
	for i := range attempts {
		dtos = append(dtos, *toAttemptDTO(&attempts[i]))
	}
	return dtos, nil
}

func toAttemptDTO(attempt *model.TestAttempt) *dto.AttemptDTO {
	var resp dto.AttemptDTO
	if err := copier.Copy(&resp, attempt); err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("failed to copy attempt to DTO")
	}
	if attempt.Test.ID == 0 {
		resp.Test = nil
	}
	return &resp
}
