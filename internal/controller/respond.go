// Package controller carries plumbing shared by the admin and user HTTP
// surfaces.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/proctorly/exam-engine/internal/apperror"
	"github.com/proctorly/exam-engine/internal/dto"
	"github.com/proctorly/exam-engine/internal/service"
	"github.com/rs/zerolog/log"
)

// WriteError maps a service error onto the wire. The resume gate gets its
// dedicated 403 body so clients can show the blocked attempt; everything else
// follows the taxonomy's status mapping.
func WriteError(ctx *gin.Context, err error) {
	var resumeErr *service.ResumeRequiredError
	if errors.As(err, &resumeErr) {
		ctx.JSON(http.StatusForbidden, dto.ResumeGateResponse{
			NeedsResume: true,
			AttemptID:   resumeErr.AttemptID,
			Error:       resumeErr.Error(),
			Code:        "RESUME_REQUIRED",
		})
		return
	}

	status := apperror.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("unhandled error")
	}
	if status == http.StatusServiceUnavailable {
		ctx.Header("Retry-After", "1")
	}
	ctx.JSON(status, dto.ErrorResponse{
		Error: apperror.MessageOf(err),
		Code:  apperror.CodeOf(err),
	})
}

// WriteBindError reports a malformed request body or parameter.
func WriteBindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "invalid request",
		Code:    "VALIDATION_ERROR",
		Details: []string{err.Error()},
	})
}
