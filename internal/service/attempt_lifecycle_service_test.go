package service

import (
	"errors"
	"testing"

	"github.com/proctorly/exam-engine/internal/apperror"
	"github.com/proctorly/exam-engine/internal/dto"
	"github.com/proctorly/exam-engine/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startRequest(testID uint) dto.StartAttemptRequest {
	return dto.StartAttemptRequest{TestID: testID, CandidateName: "asha"}
}

func TestStart_CreatesAttemptWithAnswerRows(t *testing.T) {
	fx := newFixture()
	test := fx.seedLiveTest()

	attempt, err := fx.lifecycle.Start(startRequest(test.ID))
	require.NoError(t, err)

	assert.Equal(t, "asha", attempt.CandidateName)
	assert.False(t, attempt.IsCompleted)
	require.NotNil(t, attempt.Test)
	assert.Len(t, attempt.Test.Sections, 2)

	require.Len(t, attempt.Answers, 3)
	for _, answer := range attempt.Answers {
		assert.Equal(t, model.StatusNotVisited, answer.Status)
		assert.Nil(t, answer.IsCorrect)
	}
}

func TestStart_TestNotFound(t *testing.T) {
	fx := newFixture()
	_, err := fx.lifecycle.Start(startRequest(99))
	assert.True(t, apperror.IsNotFound(err))
}

func TestStart_TestNotLive(t *testing.T) {
	fx := newFixture()
	test := fx.seedLiveTest()
	fx.store.tests[test.ID].IsLive = false

	_, err := fx.lifecycle.Start(startRequest(test.ID))
	assert.Equal(t, apperror.KindPreconditionFailed, apperror.KindOf(err))
	assert.Equal(t, "TEST_NOT_LIVE", apperror.CodeOf(err))
}

func TestStart_ReplacesStaleIncompleteAttempt(t *testing.T) {
	fx := newFixture()
	test := fx.seedLiveTest()

	first, err := fx.lifecycle.Start(startRequest(test.ID))
	require.NoError(t, err)

	second, err := fx.lifecycle.Start(startRequest(test.ID))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	_, err = fx.lifecycle.GetAttempt(first.ID)
	assert.True(t, apperror.IsNotFound(err), "stale attempt should be gone")
	assert.Len(t, fx.store.attempts, 1, "never two incomplete attempts for one slot")
}

func TestStart_BlockedByResumeGate(t *testing.T) {
	fx := newFixture()
	test := fx.seedLiveTest()

	first, err := fx.lifecycle.Start(startRequest(test.ID))
	require.NoError(t, err)
	require.NoError(t, fx.resume.RequestResume(first.ID))

	_, err = fx.lifecycle.Start(startRequest(test.ID))
	var resumeErr *ResumeRequiredError
	require.True(t, errors.As(err, &resumeErr))
	assert.Equal(t, first.ID, resumeErr.AttemptID)
}

func TestStart_ResumeHandshakeReopensSlot(t *testing.T) {
	fx := newFixture()
	test := fx.seedLiveTest()

	first, err := fx.lifecycle.Start(startRequest(test.ID))
	require.NoError(t, err)
	require.NoError(t, fx.resume.RequestResume(first.ID))

	pending, err := fx.resume.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, first.ID, pending[0].ID)

	require.NoError(t, fx.resume.AllowResume(first.ID))

	pending, err = fx.resume.ListPending()
	require.NoError(t, err)
	assert.Empty(t, pending)

	reopened, err := fx.lifecycle.Start(startRequest(test.ID))
	require.NoError(t, err)
	assert.False(t, reopened.NeedsResume)
	assert.Len(t, fx.store.attempts, 1)
}

func TestStart_CompletedAttemptBlocksForever(t *testing.T) {
	fx := newFixture()
	test := fx.seedLiveTest()

	attempt, err := fx.lifecycle.Start(startRequest(test.ID))
	require.NoError(t, err)
	_, err = fx.lifecycle.Submit(attempt.ID, nil)
	require.NoError(t, err)

	// Completion ends the live session; re-arm the test to prove the block
	// is the completed attempt, not the live flag.
	fx.store.tests[test.ID].IsLive = true

	_, err = fx.lifecycle.Start(startRequest(test.ID))
	assert.Equal(t, "ALREADY_COMPLETED", apperror.CodeOf(err))
}

func TestSubmit_ScoresAndCompletes(t *testing.T) {
	fx := newFixture()
	test := fx.seedLiveTest()
	attempt, err := fx.lifecycle.Start(startRequest(test.ID))
	require.NoError(t, err)

	answers := attempt.Answers
	payload := []dto.SyncAnswerEntry{
		{QuestionID: answers[0].QuestionID, SelectedOption: strPtr("B"), Status: model.StatusAnswered}, // correct, +4
		{QuestionID: answers[1].QuestionID, SelectedOption: strPtr("A"), Status: model.StatusAnswered}, // wrong, -1
		{QuestionID: answers[2].QuestionID, Status: model.StatusNotAnswered},                           // unattempted
	}

	scored, err := fx.lifecycle.Submit(attempt.ID, payload)
	require.NoError(t, err)

	assert.True(t, scored.IsCompleted)
	require.NotNil(t, scored.EndTime)
	assert.Equal(t, 3, scored.TotalMarks)

	sum := 0
	for _, answer := range scored.Answers {
		sum += answer.MarksAwarded
	}
	assert.Equal(t, scored.TotalMarks, sum)

	assert.False(t, fx.store.tests[test.ID].IsLive, "completion ends the live session")
}

func TestSubmit_ScenarioSingleMCQ(t *testing.T) {
	tests := []struct {
		name       string
		entry      dto.SyncAnswerEntry
		isCorrect  *bool
		totalMarks int
	}{
		{
			name:       "wrong option",
			entry:      dto.SyncAnswerEntry{SelectedOption: strPtr("A"), Status: model.StatusAnswered},
			isCorrect:  boolPtr(false),
			totalMarks: -1,
		},
		{
			name:       "correct option",
			entry:      dto.SyncAnswerEntry{SelectedOption: strPtr("B"), Status: model.StatusAnswered},
			isCorrect:  boolPtr(true),
			totalMarks: 4,
		},
		{
			name:       "not answered",
			entry:      dto.SyncAnswerEntry{Status: model.StatusNotAnswered},
			isCorrect:  nil,
			totalMarks: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fx := newFixture()
			test := &model.Test{
				Name:     "Single MCQ",
				Duration: 30,
				Sections: []model.Section{{
					Name: "S1", QuestionType: model.QuestionTypeMCQ, Order: 1,
					Questions: []model.Question{
						{QuestionNumber: 1, QuestionImage: "img/q.png", CorrectOption: strPtr("B"), Marks: 4, NegativeMarks: -1},
					},
				}},
				TotalMarks: 4,
			}
			fx.testRepo.Create(test)
			test.IsLive = true

			attempt, err := fx.lifecycle.Start(startRequest(test.ID))
			require.NoError(t, err)

			tc.entry.QuestionID = attempt.Answers[0].QuestionID
			scored, err := fx.lifecycle.Submit(attempt.ID, []dto.SyncAnswerEntry{tc.entry})
			require.NoError(t, err)

			require.Len(t, scored.Answers, 1)
			if tc.isCorrect == nil {
				assert.Nil(t, scored.Answers[0].IsCorrect)
			} else {
				require.NotNil(t, scored.Answers[0].IsCorrect)
				assert.Equal(t, *tc.isCorrect, *scored.Answers[0].IsCorrect)
			}
			assert.Equal(t, tc.totalMarks, scored.TotalMarks)
		})
	}
}

func TestSubmit_AttemptNotFound(t *testing.T) {
	fx := newFixture()
	_, err := fx.lifecycle.Submit(123, nil)
	assert.True(t, apperror.IsNotFound(err))
}

func TestSubmit_SecondSubmitFails(t *testing.T) {
	fx := newFixture()
	test := fx.seedLiveTest()
	attempt, err := fx.lifecycle.Start(startRequest(test.ID))
	require.NoError(t, err)

	_, err = fx.lifecycle.Submit(attempt.ID, nil)
	require.NoError(t, err)

	_, err = fx.lifecycle.Submit(attempt.ID, nil)
	assert.Equal(t, apperror.KindPreconditionFailed, apperror.KindOf(err))
	assert.Equal(t, "ALREADY_COMPLETED", apperror.CodeOf(err))
}

func TestSubmit_UsesPersistedAnswersWhenPayloadIsNil(t *testing.T) {
	fx := newFixture()
	test := fx.seedLiveTest()
	attempt, err := fx.lifecycle.Start(startRequest(test.ID))
	require.NoError(t, err)

	// The client synced a correct answer earlier; warning auto-submit sends
	// no payload and must score from the stored rows.
	q1 := attempt.Answers[0].QuestionID
	_, err = fx.answerSync.SyncAnswers(dto.SyncAnswersRequest{
		AttemptID: attempt.ID,
		Answers: []dto.SyncAnswerEntry{
			{QuestionID: q1, SelectedOption: strPtr("B"), Status: model.StatusAnswered},
		},
	})
	require.NoError(t, err)

	scored, err := fx.lifecycle.Submit(attempt.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, scored.TotalMarks)
}

func TestRecordWarning_BelowThresholdJustCounts(t *testing.T) {
	fx := newFixture()
	test := fx.seedLiveTest()
	attempt, err := fx.lifecycle.Start(startRequest(test.ID))
	require.NoError(t, err)

	for want := 1; want < WarningAutoSubmitThreshold; want++ {
		resp, err := fx.lifecycle.RecordWarning(attempt.ID)
		require.NoError(t, err)
		assert.Equal(t, want, resp.WarningCount)
		assert.False(t, resp.AutoSubmitted)
	}

	current, err := fx.lifecycle.GetAttempt(attempt.ID)
	require.NoError(t, err)
	assert.False(t, current.IsCompleted)
}

func TestRecordWarning_ThresholdForcesSingleSubmit(t *testing.T) {
	fx := newFixture()
	test := fx.seedLiveTest()
	attempt, err := fx.lifecycle.Start(startRequest(test.ID))
	require.NoError(t, err)

	var resp *dto.WarningResponse
	for i := 0; i < WarningAutoSubmitThreshold; i++ {
		resp, err = fx.lifecycle.RecordWarning(attempt.ID)
		require.NoError(t, err)
	}

	assert.Equal(t, WarningAutoSubmitThreshold, resp.WarningCount)
	assert.True(t, resp.AutoSubmitted)
	require.NotNil(t, resp.Attempt)
	assert.True(t, resp.Attempt.IsCompleted)

	// A manual submit after the forced one must not score again.
	_, err = fx.lifecycle.Submit(attempt.ID, nil)
	assert.Equal(t, "ALREADY_COMPLETED", apperror.CodeOf(err))
}

func TestRecordWarning_AfterCompletionOnlyCounts(t *testing.T) {
	fx := newFixture()
	test := fx.seedLiveTest()
	attempt, err := fx.lifecycle.Start(startRequest(test.ID))
	require.NoError(t, err)

	for i := 0; i < WarningAutoSubmitThreshold; i++ {
		_, err = fx.lifecycle.RecordWarning(attempt.ID)
		require.NoError(t, err)
	}

	resp, err := fx.lifecycle.RecordWarning(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, WarningAutoSubmitThreshold+1, resp.WarningCount)
	assert.False(t, resp.AutoSubmitted, "no second submission once completed")
}

func TestGetAttemptsByCandidate(t *testing.T) {
	fx := newFixture()
	test := fx.seedLiveTest()
	attempt, err := fx.lifecycle.Start(startRequest(test.ID))
	require.NoError(t, err)

	attempts, err := fx.lifecycle.GetAttemptsByCandidate("asha")
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, attempt.ID, attempts[0].ID)

	attempts, err = fx.lifecycle.GetAttemptsByCandidate("nobody")
	require.NoError(t, err)
	assert.Empty(t, attempts)
}
