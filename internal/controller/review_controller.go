package controller

import (
	"strconv"

	"learning_path_backend/internal/service"
	"learning_path_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	ReviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{ReviewService: reviewService}
}

// ListReviews godoc
// @Summary List visible reviews
// @Description Staff see every review, others see their own plus reviews of public published courses
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param course_id query int false "Filter by course"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 401 {object} util.Response
// @Router /api/reviews [get]
func (c *ReviewController) ListReviews(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, _ := strconv.ParseUint(ctx.Query("course_id"), 10, 32)
	page, limit := pagination(ctx)
	reviews, total, err := c.ReviewService.ListReviews(user.UserID, user.IsStaff, uint(courseID), page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: reviews, Total: total, Page: page, Limit: limit})
}

// GetReview godoc
// @Summary Get a review
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Success 200 {object} util.Response{data=model.CourseReview}
// @Failure 404 {object} util.Response
// @Router /api/reviews/{id} [get]
func (c *ReviewController) GetReview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := paramID(ctx)
	if !ok {
		return
	}

	review, err := c.ReviewService.GetReview(id, user.UserID, user.IsStaff)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, review)
}

// swagger:model ReviewRequest
type ReviewRequest struct {
	CourseID   uint   `json:"course_id" binding:"required"`
	Rating     int    `json:"rating" binding:"required,gte=1,lte=5"`
	ReviewText string `json:"review_text"`
}

// CreateReview godoc
// @Summary Review a course
// @Description One review per user and course; the course rating aggregate updates atomically
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ReviewRequest true "Review payload"
// @Success 201 {object} util.Response{data=model.CourseReview}
// @Failure 400 {object} util.Response "Rating out of range or duplicate review"
// @Failure 404 {object} util.Response "Course not visible"
// @Router /api/reviews [post]
func (c *ReviewController) CreateReview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	review, err := c.ReviewService.CreateReview(user.UserID, req.CourseID, req.Rating, req.ReviewText)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, review)
}

// UpdateReview godoc
// @Summary Update one of the current user's reviews
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Param body body service.ReviewUpdate true "Review fields"
// @Success 200 {object} util.Response{data=model.CourseReview}
// @Failure 404 {object} util.Response "Not found, including reviews owned by others"
// @Router /api/reviews/{id} [put]
func (c *ReviewController) UpdateReview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var update service.ReviewUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	review, err := c.ReviewService.UpdateReview(id, user.UserID, update)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, review)
}

// DeleteReview godoc
// @Summary Delete one of the current user's reviews
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Success 204 "No Content"
// @Failure 404 {object} util.Response
// @Router /api/reviews/{id} [delete]
func (c *ReviewController) DeleteReview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := paramID(ctx)
	if !ok {
		return
	}

	if err := c.ReviewService.DeleteReview(id, user.UserID); err != nil {
		respondError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
