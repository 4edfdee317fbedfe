package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/proctorly/exam-engine/internal/controller"
	"github.com/proctorly/exam-engine/internal/dto"
	"github.com/proctorly/exam-engine/internal/service"
	"github.com/rs/zerolog/log"
)

// AttemptController is the candidate-facing surface: the attempt lifecycle,
// the periodic sync endpoints and the resume handshake.
type AttemptController struct {
	lifecycle   service.AttemptLifecycleService
	answerSync  service.AnswerSyncService
	timeTracker service.TimeTrackerService
	resume      service.ResumeService
	catalog     service.AdminTestService
}

func NewAttemptController(
	lifecycle service.AttemptLifecycleService,
	answerSync service.AnswerSyncService,
	timeTracker service.TimeTrackerService,
	resume service.ResumeService,
	catalog service.AdminTestService,
) *AttemptController {
	return &AttemptController{
		lifecycle:   lifecycle,
		answerSync:  answerSync,
		timeTracker: timeTracker,
		resume:      resume,
		catalog:     catalog,
	}
}

func (c *AttemptController) RegisterRoutes(api *gin.RouterGroup) {
	attempts := api.Group("/attempts")
	{
		attempts.POST("/start", c.StartAttempt)
		attempts.POST("/sync", c.SyncAnswers)
		attempts.POST("/submit", c.SubmitAttempt)
		attempts.POST("/warning", c.RecordWarning)
		attempts.POST("/request-resume", c.RequestResume)
		attempts.POST("/allow-resume", c.AllowResume)
		attempts.GET("/resume-requests", c.ListResumeRequests)
		attempts.PUT("/:attempt_id/question-time", c.UpdateQuestionTime)
		attempts.PUT("/:attempt_id/sync-times", c.BulkSyncTimes)
		attempts.GET("/:attempt_id/time-analytics", c.GetTimeAnalytics)
		attempts.GET("/:attempt_id", c.GetAttempt)
		attempts.GET("/user/:candidate_name", c.GetAttemptsByCandidate)
	}

	tests := api.Group("/tests")
	{
		tests.GET("", c.GetAllTests)
		tests.GET("/:test_id", c.GetTestDetails)
	}
}

// StartAttempt godoc
// @Summary Start a test attempt
// @Description Starts a fresh attempt for the candidate, or refuses with the resume gate when an examiner decision is pending.
// @Tags attempts
// @Accept json
// @Produce json
// @Param request body dto.StartAttemptRequest true "Test and candidate"
// @Success 201 {object} dto.AttemptDTO "Attempt with nested test and pre-created answers"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ResumeGateResponse "Resume permission required"
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/start [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	var req dto.StartAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(ctx, err)
		return
	}
	attempt, err := c.lifecycle.Start(req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	log.Info().Uint("attemptID", attempt.ID).Str("candidate", req.CandidateName).Msg("attempt started")
	ctx.JSON(http.StatusCreated, attempt)
}

// SyncAnswers godoc
// @Summary Sync in-progress answers
// @Tags attempts
// @Accept json
// @Produce json
// @Param request body dto.SyncAnswersRequest true "Answer batch"
// @Success 200 {object} dto.SyncAnswersResponse
// @Failure 403 {object} dto.ErrorResponse "Attempt already completed"
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/sync [post]
func (c *AttemptController) SyncAnswers(ctx *gin.Context) {
	var req dto.SyncAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(ctx, err)
		return
	}
	synced, err := c.answerSync.SyncAnswers(req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SyncAnswersResponse{Success: true, Synced: synced})
}

// SubmitAttempt godoc
// @Summary Submit an attempt for scoring
// @Tags attempts
// @Accept json
// @Produce json
// @Param request body dto.SubmitAttemptRequest true "Final answers"
// @Success 200 {object} dto.AttemptDTO "Scored attempt"
// @Failure 403 {object} dto.ErrorResponse "Attempt already completed"
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/submit [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	var req dto.SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(ctx, err)
		return
	}
	attempt, err := c.lifecycle.Submit(req.AttemptID, req.Answers)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	log.Info().Uint("attemptID", req.AttemptID).Int("totalMarks", attempt.TotalMarks).Msg("attempt submitted")
	ctx.JSON(http.StatusOK, attempt)
}

// RecordWarning godoc
// @Summary Record a proctoring warning
// @Description Increments the warning counter; at the threshold the attempt is force-submitted through the normal scoring path.
// @Tags attempts
// @Accept json
// @Produce json
// @Param request body dto.WarningRequest true "Attempt"
// @Success 200 {object} dto.WarningResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/warning [post]
func (c *AttemptController) RecordWarning(ctx *gin.Context) {
	var req dto.WarningRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(ctx, err)
		return
	}
	resp, err := c.lifecycle.RecordWarning(req.AttemptID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateQuestionTime godoc
// @Summary Add time spent on a question
// @Tags time-tracking
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param request body dto.QuestionTimeRequest true "Time delta and action"
// @Success 200 {object} dto.QuestionTimeResponse
// @Failure 400 {object} dto.ErrorResponse "Negative or missing time value"
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/question-time [put]
func (c *AttemptController) UpdateQuestionTime(ctx *gin.Context) {
	attemptID, ok := parseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}
	var req dto.QuestionTimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(ctx, err)
		return
	}
	resp, err := c.timeTracker.UpdateQuestionTime(attemptID, req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// BulkSyncTimes godoc
// @Summary Bulk-sync per-question time deltas
// @Tags time-tracking
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param request body dto.BulkTimeSyncRequest true "Question time deltas"
// @Success 200 {object} dto.BulkTimeSyncResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/sync-times [put]
func (c *AttemptController) BulkSyncTimes(ctx *gin.Context) {
	attemptID, ok := parseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}
	var req dto.BulkTimeSyncRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(ctx, err)
		return
	}
	updated, err := c.timeTracker.BulkSyncTimes(attemptID, req.QuestionTimes)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.BulkTimeSyncResponse{Success: true, UpdatedQuestions: updated})
}

// GetTimeAnalytics godoc
// @Summary Per-section time analytics for an attempt
// @Tags time-tracking
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.TimeAnalyticsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/time-analytics [get]
func (c *AttemptController) GetTimeAnalytics(ctx *gin.Context) {
	attemptID, ok := parseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}
	resp, err := c.timeTracker.GetTimeAnalytics(attemptID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RequestResume godoc
// @Summary Request resume permission for a disconnected attempt
// @Tags resume
// @Accept json
// @Produce json
// @Param request body dto.ResumeRequest true "Attempt"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/request-resume [post]
func (c *AttemptController) RequestResume(ctx *gin.Context) {
	var req dto.ResumeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(ctx, err)
		return
	}
	if err := c.resume.RequestResume(req.AttemptID); err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// AllowResume godoc
// @Summary Grant resume permission (examiner)
// @Tags resume
// @Accept json
// @Produce json
// @Param request body dto.ResumeRequest true "Attempt"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/allow-resume [post]
func (c *AttemptController) AllowResume(ctx *gin.Context) {
	var req dto.ResumeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(ctx, err)
		return
	}
	if err := c.resume.AllowResume(req.AttemptID); err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// ListResumeRequests godoc
// @Summary List attempts waiting on a resume decision
// @Tags resume
// @Produce json
// @Success 200 {array} dto.AttemptDTO
// @Router /attempts/resume-requests [get]
func (c *AttemptController) ListResumeRequests(ctx *gin.Context) {
	pending, err := c.resume.ListPending()
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pending)
}

// GetAttempt godoc
// @Summary Get one attempt with its answers
// @Tags attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	attemptID, ok := parseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}
	attempt, err := c.lifecycle.GetAttempt(attemptID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// GetAttemptsByCandidate godoc
// @Summary List a candidate's attempts
// @Tags attempts
// @Produce json
// @Param candidate_name path string true "Candidate name"
// @Success 200 {array} dto.AttemptDTO
// @Router /attempts/user/{candidate_name} [get]
func (c *AttemptController) GetAttemptsByCandidate(ctx *gin.Context) {
	candidateName := ctx.Param("candidate_name")
	attempts, err := c.lifecycle.GetAttemptsByCandidate(candidateName)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// GetAllTests godoc
// @Summary List available tests
// @Tags tests
// @Produce json
// @Success 200 {array} dto.TestSummaryDTO
// @Router /tests [get]
func (c *AttemptController) GetAllTests(ctx *gin.Context) {
	tests, err := c.catalog.GetAllTests()
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTestDetails godoc
// @Summary Get a test with ordered sections and questions
// @Tags tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{test_id} [get]
func (c *AttemptController) GetTestDetails(ctx *gin.Context) {
	testID, ok := parseIDParam(ctx, "test_id")
	if !ok {
		return
	}
	test, err := c.catalog.GetTestDetails(testID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, test)
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "invalid " + name,
			Code:  "VALIDATION_ERROR",
		})
		return 0, false
	}
	return uint(val), true
}
