package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/proctorly/exam-engine/internal/controller"
	"github.com/proctorly/exam-engine/internal/dto"
	"github.com/proctorly/exam-engine/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminTestController struct {
	adminTestService service.AdminTestService
}

func NewAdminTestController(adminTestService service.AdminTestService) *AdminTestController {
	return &AdminTestController{adminTestService: adminTestService}
}

func (c *AdminTestController) RegisterRoutes(api *gin.RouterGroup) {
	tests := api.Group("/tests")
	{
		tests.POST("", c.CreateTest)
		tests.PUT("/:test_id/live", c.SetTestLive)
	}
}

// CreateTest godoc
// @Summary (Admin) Create a test with sections and questions
// @Tags admin
// @Accept json
// @Produce json
// @Param test body dto.CreateTestRequest true "Test definition"
// @Success 201 {object} dto.AdminTestDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/tests [post]
func (c *AdminTestController) CreateTest(ctx *gin.Context) {
	var req dto.CreateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateTest: failed to bind request")
		controller.WriteBindError(ctx, err)
		return
	}
	test, err := c.adminTestService.CreateTest(req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, test)
}

// SetTestLive godoc
// @Summary (Admin) Publish or unpublish a test
// @Tags admin
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param request body dto.SetTestLiveRequest true "Live flag"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tests/{test_id}/live [put]
func (c *AdminTestController) SetTestLive(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid test_id", Code: "VALIDATION_ERROR"})
		return
	}
	var req dto.SetTestLiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(ctx, err)
		return
	}
	if err := c.adminTestService.SetTestLive(uint(testID), *req.IsLive); err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
