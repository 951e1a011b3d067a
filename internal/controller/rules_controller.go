package controller

import (
	"school_records_backend/internal/grading"
	"school_records_backend/internal/service"
	"school_records_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RulesController struct {
	RulesService *service.RulesService
}

func NewRulesController(rulesService *service.RulesService) *RulesController {
	return &RulesController{RulesService: rulesService}
}

// GetRules godoc
// @Summary Effective approval rules
// @Description Rules applied to a school and education level: the school override or the network defaults
// @Tags rules
// @Produce json
// @Security BearerAuth
// @Param schoolId query int true "school id"
// @Param level query string true "educacao_infantil, fundamental, medio or eja"
// @Success 200 {object} util.Response{data=grading.ApprovalRules}
// @Failure 400 {object} util.Response "invalid query"
// @Router /api/approval-rules [get]
func (c *RulesController) GetRules(ctx *gin.Context) {
	schoolID, ok := util.ParseID(ctx.Query("schoolId"))
	if !ok {
		util.BadRequest(ctx, "invalid schoolId")
		return
	}
	level, err := grading.ParseEducationLevel(ctx.Query("level"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rules, err := c.RulesService.Resolve(ctx.Request.Context(), schoolID, level)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, rules)
}

// SaveRules godoc
// @Summary Override approval rules
// @Description Stores the approval rules of one school and education level
// @Tags rules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ApprovalRulesRequest true "override"
// @Success 200 {object} util.Response{data=model.ApprovalRuleSet}
// @Failure 400 {object} util.Response "invalid rules"
// @Failure 403 {object} util.Response "other school"
// @Router /api/approval-rules [put]
func (c *RulesController) SaveRules(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ApprovalRulesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	// secretaries manage their own school only
	if user.SchoolID != nil && *user.SchoolID != req.SchoolID {
		respondError(ctx, util.ErrPermissionDenied)
		return
	}

	rs, err := c.RulesService.SaveOverride(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, rs)
}
