package repository

import (
	"github.com/proctorly/exam-engine/internal/apperror"
	"github.com/proctorly/exam-engine/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	Create(test *model.Test) error
	FindByID(id uint) (*model.Test, error)
	FindByIDWithQuestions(id uint) (*model.Test, error)
	FindAll() ([]model.Test, error)
	SetLive(id uint, live bool) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func testNotFound(id uint) *apperror.Error {
	return apperror.NotFound("TEST_NOT_FOUND", "test %d not found", id)
}

func (r *testRepository) Create(test *model.Test) error {
	// Creates the whole tree: sections and questions ride along via the
	// association foreign keys.
	return wrap(r.db.Create(test).Error, nil)
}

func (r *testRepository) FindByID(id uint) (*model.Test, error) {
	var test model.Test
	err := apperror.Retry(func() error {
		return wrap(r.db.First(&test, id).Error, testNotFound(id))
	})
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByIDWithQuestions(id uint) (*model.Test, error) {
	var test model.Test
	err := apperror.Retry(func() error {
		return wrap(r.db.
			Preload("Sections", func(db *gorm.DB) *gorm.DB {
				return db.Order("sections.\"order\" ASC")
			}).
			Preload("Sections.Questions", func(db *gorm.DB) *gorm.DB {
				return db.Order("questions.question_number ASC")
			}).
			First(&test, id).Error, testNotFound(id))
	})
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindAll() ([]model.Test, error) {
	var tests []model.Test
	err := apperror.Retry(func() error {
		return wrap(r.db.Order("created_at DESC").Find(&tests).Error, nil)
	})
	return tests, err
}

func (r *testRepository) SetLive(id uint, live bool) error {
	res := r.db.Model(&model.Test{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_live": live, "is_draft": false})
	if res.Error != nil {
		return wrap(res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return testNotFound(id)
	}
	return nil
}
