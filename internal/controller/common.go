package controller

import (
	"errors"
	"strconv"

	"learning_path_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

func pagination(ctx *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return page, limit
}

func parseUintParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	return uint(id), err
}

func paramID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// respondError maps the service sentinels onto the HTTP surface. Anything
// unrecognized is logged and reported as a 500.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrCategoryNotFound),
		errors.Is(err, util.ErrPathNotFound),
		errors.Is(err, util.ErrProgressNotFound),
		errors.Is(err, util.ErrReviewNotFound),
		errors.Is(err, util.ErrSkillNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrUsernameTaken),
		errors.Is(err, util.ErrPasswordMismatch),
		errors.Is(err, util.ErrWrongPassword),
		errors.Is(err, util.ErrDuplicateReview),
		errors.Is(err, util.ErrDuplicateSkill),
		errors.Is(err, util.ErrCourseInPath),
		errors.Is(err, util.ErrCourseNotInPath),
		errors.Is(err, util.ErrAlreadyStarted),
		errors.Is(err, util.ErrAlreadyCompleted),
		errors.Is(err, util.ErrProgressOutOfRange),
		errors.Is(err, util.ErrTimeSpentNegative),
		errors.Is(err, util.ErrRatingOutOfRange):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
