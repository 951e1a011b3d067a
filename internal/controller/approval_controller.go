package controller

import (
	"school_records_backend/internal/service"
	"school_records_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ApprovalController struct {
	ApprovalService *service.ApprovalService
	ExportService   *service.ExportService
}

func NewApprovalController(approvalService *service.ApprovalService, exportService *service.ExportService) *ApprovalController {
	return &ApprovalController{
		ApprovalService: approvalService,
		ExportService:   exportService,
	}
}

// StudentResult godoc
// @Summary Final result of an enrollment
// @Description Verdict, failed components and rationale. Inactive enrollments report their status instead.
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path int true "enrollment id"
// @Success 200 {object} util.Response{data=service.StudentResultView}
// @Failure 404 {object} util.Response "enrollment not found"
// @Router /api/enrollments/{id}/result [get]
func (c *ApprovalController) StudentResult(ctx *gin.Context) {
	enrollmentID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	view, err := c.ApprovalService.StudentResult(ctx.Request.Context(), enrollmentID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// ClassResults godoc
// @Summary Final results of a class
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path int true "class id"
// @Success 200 {object} util.Response{data=[]service.StudentResultView}
// @Failure 404 {object} util.Response "class not found"
// @Router /api/classes/{id}/results [get]
func (c *ApprovalController) ClassResults(ctx *gin.Context) {
	classID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	views, err := c.ApprovalService.ClassResults(ctx.Request.Context(), classID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// ExportClassResults godoc
// @Summary Export class results
// @Description Writes the class results with formatted marks to object storage
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path int true "class id"
// @Success 201 {object} util.Response{data=model.ResultExport}
// @Failure 404 {object} util.Response "class not found"
// @Router /api/classes/{id}/results/export [post]
func (c *ApprovalController) ExportClassResults(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	classID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	res, err := c.ExportService.ExportClassResults(ctx.Request.Context(), classID, user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, res)
}

// ListExports godoc
// @Summary Previous exports of a class
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path int true "class id"
// @Success 200 {object} util.Response{data=[]model.ResultExport}
// @Router /api/classes/{id}/results/exports [get]
func (c *ApprovalController) ListExports(ctx *gin.Context) {
	classID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	exports, err := c.ExportService.ListExports(ctx.Request.Context(), classID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, exports)
}
