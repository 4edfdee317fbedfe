package repository

import (
	"time"

	"github.com/proctorly/exam-engine/internal/apperror"
	"github.com/proctorly/exam-engine/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TestAttemptRepository interface {
	// CreateReplacing creates attempt (with its pre-materialized answers) and,
	// when replaceID is set, deletes the stale incomplete attempt in the same
	// transaction so the one-incomplete-attempt invariant holds throughout.
	CreateReplacing(attempt *model.TestAttempt, replaceID *uint) error
	FindByID(id uint) (*model.TestAttempt, error)
	FindByIDWithAnswers(id uint) (*model.TestAttempt, error)
	// FindLatestByTestAndCandidate returns the most recent attempt for the
	// pair, completed or not. NotFound when the candidate never started.
	FindLatestByTestAndCandidate(testID uint, candidateName string) (*model.TestAttempt, error)
	FindAllByCandidate(candidateName string) ([]model.TestAttempt, error)
	FindPendingResume() ([]model.TestAttempt, error)
	// IncrementWarning bumps warning_count atomically and returns the
	// post-increment value.
	IncrementWarning(id uint) (int, error)
	Update(attempt *model.TestAttempt) error
	UpdateResumeFlags(id uint, needsResume, canResume bool, requestedAt *time.Time) error
	// FinalizeSubmission writes scored answers, completion fields and the
	// owning test's is_live=false in one transaction. Fails with
	// ALREADY_COMPLETED if another submission won the race.
	FinalizeSubmission(attempt *model.TestAttempt) error
}

type testAttemptRepository struct {
	db *gorm.DB
}

func NewTestAttemptRepository(db *gorm.DB) TestAttemptRepository {
	return &testAttemptRepository{db: db}
}

func attemptNotFound(id uint) *apperror.Error {
	return apperror.NotFound("ATTEMPT_NOT_FOUND", "attempt %d not found", id)
}

func (r *testAttemptRepository) CreateReplacing(attempt *model.TestAttempt, replaceID *uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if replaceID != nil {
			if err := tx.Where("test_attempt_id = ?", *replaceID).Delete(&model.Answer{}).Error; err != nil {
				return wrap(err, nil)
			}
			if err := tx.Delete(&model.TestAttempt{}, *replaceID).Error; err != nil {
				return wrap(err, nil)
			}
		}
		// Creates the attempt and one answer row per question in one go.
		if err := tx.Create(attempt).Error; err != nil {
			return wrap(err, nil)
		}
		return nil
	})
}

func (r *testAttemptRepository) FindByID(id uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := apperror.Retry(func() error {
		return wrap(r.db.First(&attempt, id).Error, attemptNotFound(id))
	})
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindByIDWithAnswers(id uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := apperror.Retry(func() error {
		return wrap(r.db.
			Preload("Answers").
			Preload("Answers.Question").
			First(&attempt, id).Error, attemptNotFound(id))
	})
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindLatestByTestAndCandidate(testID uint, candidateName string) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := apperror.Retry(func() error {
		return wrap(r.db.
			Where("test_id = ? AND candidate_name = ?", testID, candidateName).
			Order("created_at DESC").
			First(&attempt).Error,
			apperror.NotFound("ATTEMPT_NOT_FOUND", "no attempt for test %d by %s", testID, candidateName))
	})
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindAllByCandidate(candidateName string) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := apperror.Retry(func() error {
		return wrap(r.db.
			Preload("Test").
			Where("candidate_name = ?", candidateName).
			Order("created_at DESC").
			Find(&attempts).Error, nil)
	})
	return attempts, err
}

func (r *testAttemptRepository) FindPendingResume() ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := apperror.Retry(func() error {
		return wrap(r.db.
			Preload("Test").
			Where("is_completed = ? AND needs_resume = ? AND can_resume = ?", false, true, false).
			Order("resume_requested_at DESC").
			Find(&attempts).Error, nil)
	})
	return attempts, err
}

func (r *testAttemptRepository) IncrementWarning(id uint) (int, error) {
	attempt := model.TestAttempt{ID: id}
	res := r.db.Model(&attempt).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "warning_count"}}}).
		Where("id = ?", id).
		UpdateColumn("warning_count", gorm.Expr("warning_count + 1"))
	if res.Error != nil {
		return 0, wrap(res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return 0, attemptNotFound(id)
	}
	return attempt.WarningCount, nil
}

func (r *testAttemptRepository) Update(attempt *model.TestAttempt) error {
	return wrap(r.db.Save(attempt).Error, nil)
}

func (r *testAttemptRepository) UpdateResumeFlags(id uint, needsResume, canResume bool, requestedAt *time.Time) error {
	res := r.db.Model(&model.TestAttempt{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"needs_resume":        needsResume,
			"can_resume":          canResume,
			"resume_requested_at": requestedAt,
		})
	if res.Error != nil {
		return wrap(res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return attemptNotFound(id)
	}
	return nil
}

func (r *testAttemptRepository) FinalizeSubmission(attempt *model.TestAttempt) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var current model.TestAttempt
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&current, attempt.ID).Error; err != nil {
			return wrap(err, attemptNotFound(attempt.ID))
		}
		if current.IsCompleted {
			return apperror.PreconditionFailed("ALREADY_COMPLETED", "attempt %d is already completed", attempt.ID)
		}
		for i := range attempt.Answers {
			ans := &attempt.Answers[i]
			if err := tx.Model(&model.Answer{}).
				Where("test_attempt_id = ? AND question_id = ?", attempt.ID, ans.QuestionID).
				Updates(map[string]interface{}{
					"selected_option": ans.SelectedOption,
					"integer_answer":  ans.IntegerAnswer,
					"status":          ans.Status,
					"is_correct":      ans.IsCorrect,
					"marks_awarded":   ans.MarksAwarded,
				}).Error; err != nil {
				return wrap(err, nil)
			}
		}
		if err := tx.Model(&model.TestAttempt{}).Where("id = ?", attempt.ID).
			Updates(map[string]interface{}{
				"is_completed": true,
				"end_time":     attempt.EndTime,
				"total_marks":  attempt.TotalMarks,
			}).Error; err != nil {
			return wrap(err, nil)
		}
		// Completion ends the single live session on the owning test.
		if err := tx.Model(&model.Test{}).Where("id = ?", attempt.TestID).
			Update("is_live", false).Error; err != nil {
			return wrap(err, nil)
		}
		return nil
	})
}
