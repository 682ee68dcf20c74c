package controller

import (
	"learning_path_backend/internal/service"
	"learning_path_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// --- course progress ---

// ListCourseProgress godoc
// @Summary List the current user's course progress records
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 401 {object} util.Response
// @Router /api/progress/courses [get]
func (c *ProgressController) ListCourseProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pagination(ctx)
	records, total, err := c.ProgressService.ListCourseProgress(user.UserID, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: records, Total: total, Page: page, Limit: limit})
}

// GetCourseProgress godoc
// @Summary Get one of the current user's course progress records
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path int true "Progress ID"
// @Success 200 {object} util.Response{data=model.UserCourseProgress}
// @Failure 404 {object} util.Response "Not found, including records owned by others"
// @Router /api/progress/courses/{id} [get]
func (c *ProgressController) GetCourseProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := paramID(ctx)
	if !ok {
		return
	}

	progress, err := c.ProgressService.GetCourseProgress(id, user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// swagger:model StartCourseRequest
type StartCourseRequest struct {
	CourseID uint `json:"course_id" binding:"required"`
}

// StartCourse godoc
// @Summary Start a course
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body StartCourseRequest true "Course to start"
// @Success 201 {object} util.Response{data=model.UserCourseProgress}
// @Failure 400 {object} util.Response "Already started"
// @Failure 404 {object} util.Response "Course not visible"
// @Router /api/progress/courses [post]
func (c *ProgressController) StartCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.StartCourse(user.UserID, req.CourseID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, progress)
}

// UpdateCourseProgress godoc
// @Summary Update a course progress record
// @Description Percentage must stay within 0-100; reaching 100 marks the course completed
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Progress ID"
// @Param body body service.CourseProgressUpdate true "Progress fields"
// @Success 200 {object} util.Response{data=model.UserCourseProgress}
// @Failure 400 {object} util.Response "Percentage out of range or negative time spent"
// @Failure 404 {object} util.Response
// @Router /api/progress/courses/{id} [put]
func (c *ProgressController) UpdateCourseProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var update service.CourseProgressUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.UpdateCourseProgress(id, user.UserID, update)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// CompleteCourse godoc
// @Summary Mark a course completed
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path int true "Progress ID"
// @Success 200 {object} util.Response{data=model.UserCourseProgress}
// @Failure 400 {object} util.Response "Already completed"
// @Failure 404 {object} util.Response
// @Router /api/progress/courses/{id}/complete [post]
func (c *ProgressController) CompleteCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := paramID(ctx)
	if !ok {
		return
	}

	progress, err := c.ProgressService.MarkCourseCompleted(id, user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// --- learning path progress ---

// ListPathProgress godoc
// @Summary List the current user's learning path progress
// @Description Each record carries a completion percentage derived from required course completions
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 401 {object} util.Response
// @Router /api/progress/paths [get]
func (c *ProgressController) ListPathProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pagination(ctx)
	records, total, err := c.ProgressService.ListPathProgress(user.UserID, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: records, Total: total, Page: page, Limit: limit})
}

// GetPathProgress godoc
// @Summary Get one of the current user's path progress records
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path int true "Progress ID"
// @Success 200 {object} util.Response{data=service.PathProgressView}
// @Failure 404 {object} util.Response
// @Router /api/progress/paths/{id} [get]
func (c *ProgressController) GetPathProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := paramID(ctx)
	if !ok {
		return
	}

	progress, err := c.ProgressService.GetPathProgress(id, user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// swagger:model StartPathRequest
type StartPathRequest struct {
	LearningPathID uint `json:"learning_path_id" binding:"required"`
}

// StartPath godoc
// @Summary Start a learning path
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body StartPathRequest true "Path to start"
// @Success 201 {object} util.Response{data=service.PathProgressView}
// @Failure 400 {object} util.Response "Already started"
// @Failure 404 {object} util.Response "Path not visible"
// @Router /api/progress/paths [post]
func (c *ProgressController) StartPath(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartPathRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.StartPath(user.UserID, req.LearningPathID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, progress)
}

// UpdatePathProgress godoc
// @Summary Update a path progress record
// @Description Moves the current-course bookmark; the course must belong to the path
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Progress ID"
// @Param body body service.PathProgressUpdate true "Progress fields"
// @Success 200 {object} util.Response{data=service.PathProgressView}
// @Failure 400 {object} util.Response "Course not in path"
// @Failure 404 {object} util.Response
// @Router /api/progress/paths/{id} [put]
func (c *ProgressController) UpdatePathProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var update service.PathProgressUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.UpdatePathProgress(id, user.UserID, update)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// CompletePath godoc
// @Summary Mark a learning path completed
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path int true "Progress ID"
// @Success 200 {object} util.Response{data=service.PathProgressView}
// @Failure 400 {object} util.Response "Already completed"
// @Failure 404 {object} util.Response
// @Router /api/progress/paths/{id}/complete [post]
func (c *ProgressController) CompletePath(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := paramID(ctx)
	if !ok {
		return
	}

	progress, err := c.ProgressService.MarkPathCompleted(id, user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
