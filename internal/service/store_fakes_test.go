package service

import (
	"sort"
	"time"

	"github.com/proctorly/exam-engine/internal/apperror"
	"github.com/proctorly/exam-engine/internal/model"
)

// fakeStore is the in-memory backing state for the three repository fakes.
// The fakes stay faithful to the real contracts: taxonomy errors, the
// one-row-per-(attempt,question) key, and the transactional semantics of
// CreateReplacing/FinalizeSubmission.
type fakeStore struct {
	tests    map[uint]*model.Test
	attempts map[uint]*model.TestAttempt
	answers  map[uint]map[uint]*model.Answer // attemptID -> questionID -> row
	nextTest uint
	nextAtt  uint
	nextAns  uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tests:    make(map[uint]*model.Test),
		attempts: make(map[uint]*model.TestAttempt),
		answers:  make(map[uint]map[uint]*model.Answer),
	}
}

func (s *fakeStore) attemptByID(id uint) (*model.TestAttempt, error) {
	attempt, ok := s.attempts[id]
	if !ok {
		return nil, apperror.NotFound("ATTEMPT_NOT_FOUND", "attempt %d not found", id)
	}
	return attempt, nil
}

func (s *fakeStore) answerRows(attemptID uint) []model.Answer {
	rows := s.answers[attemptID]
	out := make([]model.Answer, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out
}

// --- TestRepository fake ---

type fakeTestRepo struct{ s *fakeStore }

func (f *fakeTestRepo) Create(test *model.Test) error {
	f.s.nextTest++
	test.ID = f.s.nextTest
	var qid uint
	for si := range test.Sections {
		test.Sections[si].ID = uint(si + 1)
		test.Sections[si].TestID = test.ID
		for qi := range test.Sections[si].Questions {
			qid++
			test.Sections[si].Questions[qi].ID = qid
			test.Sections[si].Questions[qi].SectionID = test.Sections[si].ID
		}
	}
	f.s.tests[test.ID] = test
	return nil
}

func (f *fakeTestRepo) FindByID(id uint) (*model.Test, error) {
	test, ok := f.s.tests[id]
	if !ok {
		return nil, apperror.NotFound("TEST_NOT_FOUND", "test %d not found", id)
	}
	cp := *test
	return &cp, nil
}

func (f *fakeTestRepo) FindByIDWithQuestions(id uint) (*model.Test, error) {
	return f.FindByID(id)
}

func (f *fakeTestRepo) FindAll() ([]model.Test, error) {
	var tests []model.Test
	for _, t := range f.s.tests {
		tests = append(tests, *t)
	}
	sort.Slice(tests, func(i, j int) bool { return tests[i].ID < tests[j].ID })
	return tests, nil
}

func (f *fakeTestRepo) SetLive(id uint, live bool) error {
	test, ok := f.s.tests[id]
	if !ok {
		return apperror.NotFound("TEST_NOT_FOUND", "test %d not found", id)
	}
	test.IsLive = live
	test.IsDraft = false
	return nil
}

// --- TestAttemptRepository fake ---

type fakeAttemptRepo struct{ s *fakeStore }

func (f *fakeAttemptRepo) CreateReplacing(attempt *model.TestAttempt, replaceID *uint) error {
	if replaceID != nil {
		delete(f.s.attempts, *replaceID)
		delete(f.s.answers, *replaceID)
	}
	f.s.nextAtt++
	attempt.ID = f.s.nextAtt
	attempt.CreatedAt = time.Now()
	rows := make(map[uint]*model.Answer)
	for i := range attempt.Answers {
		f.s.nextAns++
		attempt.Answers[i].ID = f.s.nextAns
		attempt.Answers[i].TestAttemptID = attempt.ID
		cp := attempt.Answers[i]
		rows[cp.QuestionID] = &cp
	}
	stored := *attempt
	stored.Answers = nil
	f.s.attempts[attempt.ID] = &stored
	f.s.answers[attempt.ID] = rows
	return nil
}

func (f *fakeAttemptRepo) FindByID(id uint) (*model.TestAttempt, error) {
	attempt, err := f.s.attemptByID(id)
	if err != nil {
		return nil, err
	}
	cp := *attempt
	return &cp, nil
}

func (f *fakeAttemptRepo) FindByIDWithAnswers(id uint) (*model.TestAttempt, error) {
	attempt, err := f.s.attemptByID(id)
	if err != nil {
		return nil, err
	}
	cp := *attempt
	cp.Answers = f.s.answerRows(id)
	return &cp, nil
}

func (f *fakeAttemptRepo) FindLatestByTestAndCandidate(testID uint, candidateName string) (*model.TestAttempt, error) {
	var latest *model.TestAttempt
	for _, attempt := range f.s.attempts {
		if attempt.TestID == testID && attempt.CandidateName == candidateName {
			if latest == nil || attempt.ID > latest.ID {
				latest = attempt
			}
		}
	}
	if latest == nil {
		return nil, apperror.NotFound("ATTEMPT_NOT_FOUND", "no attempt for test %d by %s", testID, candidateName)
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeAttemptRepo) FindAllByCandidate(candidateName string) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	for _, attempt := range f.s.attempts {
		if attempt.CandidateName == candidateName {
			attempts = append(attempts, *attempt)
		}
	}
	sort.Slice(attempts, func(i, j int) bool { return attempts[i].ID > attempts[j].ID })
	return attempts, nil
}

func (f *fakeAttemptRepo) FindPendingResume() ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	for _, attempt := range f.s.attempts {
		if !attempt.IsCompleted && attempt.NeedsResume && !attempt.CanResume {
			attempts = append(attempts, *attempt)
		}
	}
	sort.Slice(attempts, func(i, j int) bool {
		return attempts[i].ResumeRequestedAt.After(*attempts[j].ResumeRequestedAt)
	})
	return attempts, nil
}

func (f *fakeAttemptRepo) IncrementWarning(id uint) (int, error) {
	attempt, err := f.s.attemptByID(id)
	if err != nil {
		return 0, err
	}
	attempt.WarningCount++
	return attempt.WarningCount, nil
}

func (f *fakeAttemptRepo) Update(attempt *model.TestAttempt) error {
	stored := *attempt
	stored.Answers = nil
	f.s.attempts[attempt.ID] = &stored
	return nil
}

func (f *fakeAttemptRepo) UpdateResumeFlags(id uint, needsResume, canResume bool, requestedAt *time.Time) error {
	attempt, err := f.s.attemptByID(id)
	if err != nil {
		return err
	}
	attempt.NeedsResume = needsResume
	attempt.CanResume = canResume
	attempt.ResumeRequestedAt = requestedAt
	return nil
}

func (f *fakeAttemptRepo) FinalizeSubmission(attempt *model.TestAttempt) error {
	current, err := f.s.attemptByID(attempt.ID)
	if err != nil {
		return err
	}
	if current.IsCompleted {
		return apperror.PreconditionFailed("ALREADY_COMPLETED", "attempt %d is already completed", attempt.ID)
	}
	rows := f.s.answers[attempt.ID]
	for i := range attempt.Answers {
		scored := attempt.Answers[i]
		if row, ok := rows[scored.QuestionID]; ok {
			row.SelectedOption = scored.SelectedOption
			row.IntegerAnswer = scored.IntegerAnswer
			row.Status = scored.Status
			row.IsCorrect = scored.IsCorrect
			row.MarksAwarded = scored.MarksAwarded
		}
	}
	current.IsCompleted = true
	current.EndTime = attempt.EndTime
	current.TotalMarks = attempt.TotalMarks
	if test, ok := f.s.tests[current.TestID]; ok {
		test.IsLive = false
	}
	return nil
}

// --- AnswerRepository fake ---

type fakeAnswerRepo struct{ s *fakeStore }

func (f *fakeAnswerRepo) FindByAttempt(attemptID uint) ([]model.Answer, error) {
	return f.s.answerRows(attemptID), nil
}

func (f *fakeAnswerRepo) FindByAttemptAndQuestion(attemptID, questionID uint) (*model.Answer, error) {
	row, ok := f.s.answers[attemptID][questionID]
	if !ok {
		return nil, apperror.NotFound("ANSWER_NOT_FOUND", "no answer row for attempt %d question %d", attemptID, questionID)
	}
	cp := *row
	return &cp, nil
}

func (f *fakeAnswerRepo) Create(answer *model.Answer) error {
	if _, ok := f.s.answers[answer.TestAttemptID][answer.QuestionID]; ok {
		return apperror.Transient("ANSWER_CONFLICT", "concurrent create on answer key", nil)
	}
	if f.s.answers[answer.TestAttemptID] == nil {
		f.s.answers[answer.TestAttemptID] = make(map[uint]*model.Answer)
	}
	f.s.nextAns++
	answer.ID = f.s.nextAns
	cp := *answer
	f.s.answers[answer.TestAttemptID][answer.QuestionID] = &cp
	return nil
}

func (f *fakeAnswerRepo) Save(answer *model.Answer) error {
	cp := *answer
	f.s.answers[answer.TestAttemptID][answer.QuestionID] = &cp
	return nil
}

func (f *fakeAnswerRepo) UpdateSyncFields(attemptID, questionID uint, selectedOption *string, integerAnswer *int, status string) error {
	row, ok := f.s.answers[attemptID][questionID]
	if !ok {
		return apperror.NotFound("ANSWER_NOT_FOUND", "no answer row for attempt %d question %d", attemptID, questionID)
	}
	row.SelectedOption = selectedOption
	row.IntegerAnswer = integerAnswer
	row.Status = status
	return nil
}

// --- shared test fixture ---

type fixture struct {
	store       *fakeStore
	testRepo    *fakeTestRepo
	attemptRepo *fakeAttemptRepo
	answerRepo  *fakeAnswerRepo
	lifecycle   AttemptLifecycleService
	answerSync  AnswerSyncService
	timeTracker TimeTrackerService
	resume      ResumeService
}

func newFixture() *fixture {
	store := newFakeStore()
	testRepo := &fakeTestRepo{s: store}
	attemptRepo := &fakeAttemptRepo{s: store}
	answerRepo := &fakeAnswerRepo{s: store}
	return &fixture{
		store:       store,
		testRepo:    testRepo,
		attemptRepo: attemptRepo,
		answerRepo:  answerRepo,
		lifecycle:   NewAttemptLifecycleService(testRepo, attemptRepo, answerRepo, NewScoringService()),
		answerSync:  NewAnswerSyncService(attemptRepo, answerRepo),
		timeTracker: NewTimeTrackerService(testRepo, attemptRepo, answerRepo),
		resume:      NewResumeService(attemptRepo),
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// seedLiveTest creates a two-section test: an MCQ section (q1: 4/-1 key "B",
// q2: 4/-1 key "C") and an INTEGER section (q3: 3/0 key 42).
func (fx *fixture) seedLiveTest() *model.Test {
	test := &model.Test{
		Name:     "JEE Mock 1",
		Duration: 180,
		Sections: []model.Section{
			{
				Name:         "Physics MCQ",
				QuestionType: model.QuestionTypeMCQ,
				Order:        1,
				Questions: []model.Question{
					{QuestionNumber: 1, QuestionImage: "img/q1.png", CorrectOption: strPtr("B"), Marks: 4, NegativeMarks: -1},
					{QuestionNumber: 2, QuestionImage: "img/q2.png", CorrectOption: strPtr("C"), Marks: 4, NegativeMarks: -1},
				},
			},
			{
				Name:         "Maths Integer",
				QuestionType: model.QuestionTypeInteger,
				Order:        2,
				Questions: []model.Question{
					{QuestionNumber: 1, QuestionImage: "img/q3.png", CorrectInteger: intPtr(42), Marks: 3, NegativeMarks: 0},
				},
			},
		},
	}
	test.TotalMarks = 11
	fx.testRepo.Create(test)
	test.IsLive = true
	test.IsDraft = false
	return test
}
