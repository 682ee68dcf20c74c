package controller

import (
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/service"
	"learning_path_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningPathController struct {
	PathService *service.LearningPathService
}

func NewLearningPathController(pathService *service.LearningPathService) *LearningPathController {
	return &LearningPathController{PathService: pathService}
}

func pathFilterFromQuery(ctx *gin.Context) repository.PathFilter {
	return repository.PathFilter{
		DifficultyLevel: ctx.Query("difficulty_level"),
		Status:          ctx.Query("status"),
		Search:          ctx.Query("search"),
		OrderBy:         ctx.Query("order_by"),
	}
}

// ListPaths godoc
// @Summary List visible learning paths
// @Description Anonymous callers see public published paths; authenticated callers also see their own
// @Tags learning-paths
// @Produce json
// @Param difficulty_level query string false "Filter by difficulty"
// @Param status query string false "Filter by status"
// @Param search query string false "Search in title, description, tags and objectives"
// @Param order_by query string false "Sort key" Enums(created_at, updated_at, title, estimated_duration_hours)
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/learning-paths [get]
func (c *LearningPathController) ListPaths(ctx *gin.Context) {
	page, limit := pagination(ctx)
	paths, total, err := c.PathService.ListPaths(util.ViewerID(ctx), pathFilterFromQuery(ctx), page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: paths, Total: total, Page: page, Limit: limit})
}

// ListMyPaths godoc
// @Summary List the current user's learning paths
// @Tags learning-paths
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 401 {object} util.Response
// @Router /api/learning-paths/my [get]
func (c *LearningPathController) ListMyPaths(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pagination(ctx)
	paths, total, err := c.PathService.ListMyPaths(user.UserID, pathFilterFromQuery(ctx), page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: paths, Total: total, Page: page, Limit: limit})
}

// GetPath godoc
// @Summary Get learning path detail
// @Description Courses come back in their path order
// @Tags learning-paths
// @Produce json
// @Param id path int true "Path ID"
// @Success 200 {object} util.Response{data=service.PathView}
// @Failure 404 {object} util.Response
// @Router /api/learning-paths/{id} [get]
func (c *LearningPathController) GetPath(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	path, err := c.PathService.GetPath(id, util.ViewerID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, path)
}

// CreatePath godoc
// @Summary Create a learning path
// @Description Unknown course ids in the payload are skipped and reported back
// @Tags learning-paths
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.PathInput true "Path payload"
// @Success 201 {object} util.Response{data=service.PathResult}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/learning-paths [post]
func (c *LearningPathController) CreatePath(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.PathInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.PathService.CreatePath(user.UserID, input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// UpdatePath godoc
// @Summary Update a learning path
// @Description Only the creator may update; submitting course_ids replaces the full course set
// @Tags learning-paths
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Path ID"
// @Param body body service.PathInput true "Path payload"
// @Success 200 {object} util.Response{data=service.PathResult}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/learning-paths/{id} [put]
func (c *LearningPathController) UpdatePath(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var input service.PathInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.PathService.UpdatePath(id, util.ViewerID(ctx), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// DeletePath godoc
// @Summary Delete a learning path
// @Tags learning-paths
// @Produce json
// @Security BearerAuth
// @Param id path int true "Path ID"
// @Success 204 "No Content"
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/learning-paths/{id} [delete]
func (c *LearningPathController) DeletePath(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	if err := c.PathService.DeletePath(id, util.ViewerID(ctx)); err != nil {
		respondError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// AddCourse godoc
// @Summary Add a course to a learning path
// @Tags learning-paths
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Path ID"
// @Param body body service.PathCourseInput true "Course entry"
// @Success 201 {object} util.Response{data=model.LearningPathCourse}
// @Failure 400 {object} util.Response "Course already in path"
// @Failure 404 {object} util.Response "Path or course not found"
// @Router /api/learning-paths/{id}/courses [post]
func (c *LearningPathController) AddCourse(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var input service.PathCourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.PathService.AddCourse(id, util.ViewerID(ctx), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, entry)
}

// RemoveCourse godoc
// @Summary Remove a course from a learning path
// @Tags learning-paths
// @Produce json
// @Security BearerAuth
// @Param id path int true "Path ID"
// @Param courseId path int true "Course ID"
// @Success 204 "No Content"
// @Failure 400 {object} util.Response "Course not in path"
// @Failure 404 {object} util.Response
// @Router /api/learning-paths/{id}/courses/{courseId} [delete]
func (c *LearningPathController) RemoveCourse(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	courseID, err := parseUintParam(ctx, "courseId")
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	if err := c.PathService.RemoveCourse(id, util.ViewerID(ctx), courseID); err != nil {
		respondError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
