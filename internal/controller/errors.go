package controller

import (
	"errors"
	"net/http"

	"school_records_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to the response envelope.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrEnrollmentNotFound),
		errors.Is(err, util.ErrClassNotFound),
		errors.Is(err, util.ErrComponentNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrInvalidMark),
		errors.Is(err, util.ErrInvalidRules),
		errors.Is(err, util.ErrComponentNotInClass):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrEnrollmentInactive):
		util.Error(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Error(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, ok := util.ParseID(ctx.Param(name))
	if !ok {
		util.BadRequest(ctx, "invalid "+name)
	}
	return id, ok
}
