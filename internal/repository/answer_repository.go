package repository

import (
	"github.com/proctorly/exam-engine/internal/apperror"
	"github.com/proctorly/exam-engine/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	FindByAttempt(attemptID uint) ([]model.Answer, error)
	FindByAttemptAndQuestion(attemptID, questionID uint) (*model.Answer, error)
	Create(answer *model.Answer) error
	Save(answer *model.Answer) error
	// UpdateSyncFields overwrites only the client-synced fields of the row
	// keyed by (attemptID, questionID). Scored fields are never touched here.
	UpdateSyncFields(attemptID, questionID uint, selectedOption *string, integerAnswer *int, status string) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func answerNotFound(attemptID, questionID uint) *apperror.Error {
	return apperror.NotFound("ANSWER_NOT_FOUND", "no answer row for attempt %d question %d", attemptID, questionID)
}

func (r *answerRepository) FindByAttempt(attemptID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := apperror.Retry(func() error {
		return wrap(r.db.
			Where("test_attempt_id = ?", attemptID).
			Order("question_id ASC").
			Find(&answers).Error, nil)
	})
	return answers, err
}

func (r *answerRepository) FindByAttemptAndQuestion(attemptID, questionID uint) (*model.Answer, error) {
	var answer model.Answer
	err := apperror.Retry(func() error {
		return wrap(r.db.
			Where("test_attempt_id = ? AND question_id = ?", attemptID, questionID).
			First(&answer).Error, answerNotFound(attemptID, questionID))
	})
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) Create(answer *model.Answer) error {
	err := r.db.Create(answer).Error
	if err != nil && isDuplicateKey(err) {
		// A concurrent upsert on the same (attempt, question) key won the
		// race; the unique index serialized it. Surface as transient so the
		// caller's next sync tick lands on the existing row.
		return apperror.Transient("ANSWER_CONFLICT", "concurrent create on answer key", err)
	}
	return wrap(err, nil)
}

func (r *answerRepository) Save(answer *model.Answer) error {
	return wrap(r.db.Save(answer).Error, nil)
}

func (r *answerRepository) UpdateSyncFields(attemptID, questionID uint, selectedOption *string, integerAnswer *int, status string) error {
	var res *gorm.DB
	err := apperror.Retry(func() error {
		res = r.db.Model(&model.Answer{}).
			Where("test_attempt_id = ? AND question_id = ?", attemptID, questionID).
			Updates(map[string]interface{}{
				"selected_option": selectedOption,
				"integer_answer":  integerAnswer,
				"status":          status,
			})
		return wrap(res.Error, nil)
	})
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return answerNotFound(attemptID, questionID)
	}
	return nil
}
