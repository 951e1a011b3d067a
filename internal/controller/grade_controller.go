package controller

import (
	"school_records_backend/internal/service"
	"school_records_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GradeController struct {
	GradeService *service.GradeService
}

func NewGradeController(gradeService *service.GradeService) *GradeController {
	return &GradeController{GradeService: gradeService}
}

// SaveGrade godoc
// @Summary Save the marks of a component
// @Description Stores b1..b4 and recovery marks of one enrollment in one curriculum component. Null clears a mark; 0 is a real zero.
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "enrollment id"
// @Param componentId path int true "curriculum component id"
// @Param body body service.GradeEntryRequest true "marks"
// @Success 200 {object} util.Response{data=service.GradeEntryView}
// @Failure 400 {object} util.Response "mark out of range"
// @Failure 404 {object} util.Response "enrollment or component not found"
// @Failure 409 {object} util.Response "enrollment not active"
// @Router /api/enrollments/{id}/grades/{componentId} [put]
func (c *GradeController) SaveGrade(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	enrollmentID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	componentID, ok := pathID(ctx, "componentId")
	if !ok {
		return
	}

	var req service.GradeEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.GradeService.SaveGrade(ctx.Request.Context(), enrollmentID, componentID, req, user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// PreviewAverage godoc
// @Summary Preview a component average
// @Description Computes the average and status the grade-entry form would save, without storing anything
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.PreviewRequest true "marks"
// @Success 200 {object} util.Response{data=service.GradeEntryView}
// @Failure 400 {object} util.Response "mark out of range"
// @Router /api/grades/preview [post]
func (c *GradeController) PreviewAverage(ctx *gin.Context) {
	var req service.PreviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.GradeService.PreviewAverage(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// ListEnrollmentGrades godoc
// @Summary Report-card marks of an enrollment
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param id path int true "enrollment id"
// @Success 200 {object} util.Response{data=[]service.GradeLine}
// @Failure 404 {object} util.Response "enrollment not found"
// @Router /api/enrollments/{id}/grades [get]
func (c *GradeController) ListEnrollmentGrades(ctx *gin.Context) {
	enrollmentID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	lines, err := c.GradeService.ListEnrollmentGrades(ctx.Request.Context(), enrollmentID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, lines)
}
