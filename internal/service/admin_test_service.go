package service

import (
	"github.com/jinzhu/copier"
	"github.com/proctorly/exam-engine/internal/apperror"
	"github.com/proctorly/exam-engine/internal/dto"
	"github.com/proctorly/exam-engine/internal/model"
	"github.com/proctorly/exam-engine/internal/repository"
	"github.com/rs/zerolog/log"
)

// AdminTestService creates and publishes test definitions. The attempt engine
// only reads tests; this is the seeding surface that makes an exam exist.
// Incremental editing of a published test is deliberately absent.
type AdminTestService interface {
	CreateTest(req dto.CreateTestRequest) (*dto.AdminTestDTO, error)
	SetTestLive(testID uint, live bool) error
	GetAllTests() ([]dto.TestSummaryDTO, error)
	GetTestDetails(testID uint) (*dto.TestDTO, error)
}

type adminTestService struct {
	testRepo repository.TestRepository
}

func NewAdminTestService(testRepo repository.TestRepository) AdminTestService {
	return &adminTestService{testRepo: testRepo}
}

func (s *adminTestService) CreateTest(req dto.CreateTestRequest) (*dto.AdminTestDTO, error) {
	testModel := model.Test{
		Name:     req.Name,
		Duration: req.Duration,
		IsDraft:  true,
	}

	sectionOrders := make(map[int]bool)
	for _, sectionReq := range req.Sections {
		if sectionOrders[sectionReq.Order] {
			return nil, apperror.Validation("DUPLICATE_SECTION_ORDER",
				"duplicate section order %d", sectionReq.Order)
		}
		sectionOrders[sectionReq.Order] = true

		sectionModel := model.Section{
			Name:         sectionReq.Name,
			QuestionType: sectionReq.QuestionType,
			Order:        sectionReq.Order,
		}
		questionNumbers := make(map[int]bool)
		for _, questionReq := range sectionReq.Questions {
			if questionNumbers[questionReq.QuestionNumber] {
				return nil, apperror.Validation("DUPLICATE_QUESTION_NUMBER",
					"duplicate question number %d in section %q", questionReq.QuestionNumber, sectionReq.Name)
			}
			questionNumbers[questionReq.QuestionNumber] = true

			if err := validateAnswerKey(sectionReq, questionReq); err != nil {
				return nil, err
			}

			var questionModel model.Question
			copier.Copy(&questionModel, &questionReq)
			sectionModel.Questions = append(sectionModel.Questions, questionModel)
			testModel.TotalMarks += questionReq.Marks
		}
		testModel.Sections = append(testModel.Sections, sectionModel)
	}

	if err := s.testRepo.Create(&testModel); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("CreateTest: failed to create test")
		return nil, err
	}

	created, err := s.testRepo.FindByIDWithQuestions(testModel.ID)
	if err != nil {
		log.Warn().Err(err).Uint("testID", testModel.ID).
			Msg("CreateTest: reload failed, responding from in-memory state")
		created = &testModel
	}
	var resp dto.AdminTestDTO
	if err := copier.Copy(&resp, created); err != nil {
		return nil, apperror.Internal("error preparing test response", err)
	}
	return &resp, nil
}

// validateAnswerKey enforces that exactly one answer key is set and that it
// matches the section's question type.
func validateAnswerKey(section dto.CreateSectionRequest, question dto.CreateQuestionRequest) error {
	hasOption := question.CorrectOption != nil && *question.CorrectOption != ""
	hasInteger := question.CorrectInteger != nil
	switch section.QuestionType {
	case model.QuestionTypeMCQ:
		if !hasOption || hasInteger {
			return apperror.Validation("INVALID_ANSWER_KEY",
				"question %d in MCQ section %q must set correct_option and nothing else",
				question.QuestionNumber, section.Name)
		}
	case model.QuestionTypeInteger:
		if !hasInteger || hasOption {
			return apperror.Validation("INVALID_ANSWER_KEY",
				"question %d in INTEGER section %q must set correct_integer and nothing else",
				question.QuestionNumber, section.Name)
		}
	}
	return nil
}

func (s *adminTestService) SetTestLive(testID uint, live bool) error {
	if err := s.testRepo.SetLive(testID, live); err != nil {
		return err
	}
	log.Info().Uint("testID", testID).Bool("live", live).Msg("SetTestLive: test publish state changed")
	return nil
}

func (s *adminTestService) GetAllTests() ([]dto.TestSummaryDTO, error) {
	tests, err := s.testRepo.FindAll()
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.TestSummaryDTO, 0, len(tests))
	for i := range tests {
		var summary dto.TestSummaryDTO
		if err := copier.Copy(&summary, &tests[i]); err != nil {
			log.Error().Err(err).Uint("testID", tests[i].ID).Msg("GetAllTests: failed to copy summary")
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *adminTestService) GetTestDetails(testID uint) (*dto.TestDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		return nil, err
	}
	var resp dto.TestDTO
	if err := copier.Copy(&resp, test); err != nil {
		return nil, apperror.Internal("error preparing test details response", err)
	}
	return &resp, nil
}
