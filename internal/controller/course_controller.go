package controller

import (
	"strconv"

	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/service"
	"learning_path_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

func courseFilterFromQuery(ctx *gin.Context) repository.CourseFilter {
	categoryID, _ := strconv.ParseUint(ctx.Query("category_id"), 10, 32)
	return repository.CourseFilter{
		DifficultyLevel: ctx.Query("difficulty_level"),
		CourseType:      ctx.Query("course_type"),
		Status:          ctx.Query("status"),
		CategoryID:      uint(categoryID),
		Platform:        ctx.Query("platform"),
		FreeOnly:        ctx.Query("free") == "true",
		Search:          ctx.Query("search"),
		OrderBy:         ctx.Query("order_by"),
	}
}

// ListCourses godoc
// @Summary List visible courses
// @Description Anonymous callers see public published courses; authenticated callers also see their own
// @Tags courses
// @Produce json
// @Param difficulty_level query string false "Filter by difficulty"
// @Param course_type query string false "Filter by type"
// @Param category_id query int false "Filter by category"
// @Param platform query string false "Filter by platform"
// @Param free query bool false "Only free courses"
// @Param search query string false "Search in title, description, tags and instructor"
// @Param order_by query string false "Sort key" Enums(created_at, updated_at, title, duration_hours, price, rating)
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, limit := pagination(ctx)
	courses, total, err := c.CourseService.ListCourses(util.ViewerID(ctx), courseFilterFromQuery(ctx), page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// ListMyCourses godoc
// @Summary List the current user's courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 401 {object} util.Response
// @Router /api/courses/my [get]
func (c *CourseController) ListMyCourses(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pagination(ctx)
	courses, total, err := c.CourseService.ListMyCourses(user.UserID, courseFilterFromQuery(ctx), page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// ListFeatured godoc
// @Summary List featured courses
// @Description Highly rated courses with enough ratings to be trustworthy
// @Tags courses
// @Produce json
// @Success 200 {object} util.Response{data=[]service.CourseView}
// @Router /api/courses/featured [get]
func (c *CourseController) ListFeatured(ctx *gin.Context) {
	courses, err := c.CourseService.ListFeatured(util.ViewerID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// ListFree godoc
// @Summary List free courses
// @Tags courses
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses/free [get]
func (c *CourseController) ListFree(ctx *gin.Context) {
	page, limit := pagination(ctx)
	courses, total, err := c.CourseService.ListFree(util.ViewerID(ctx), courseFilterFromQuery(ctx), page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// GetCourse godoc
// @Summary Get course detail
// @Description Includes recent reviews plus the caller's own progress and review when authenticated
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response{data=service.CourseDetail}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	detail, err := c.CourseService.GetCourse(id, util.ViewerID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// CreateCourse godoc
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CourseInput true "Course payload"
// @Success 201 {object} util.Response{data=service.CourseView}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.CourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(user.UserID, input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary Update a course
// @Description Only the creator may update; everyone else gets 403 (or 404 when they cannot even see it)
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param body body service.CourseInput true "Course payload"
// @Success 200 {object} util.Response{data=service.CourseView}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var input service.CourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(id, util.ViewerID(ctx), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 204 "No Content"
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	if err := c.CourseService.DeleteCourse(id, util.ViewerID(ctx)); err != nil {
		respondError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
