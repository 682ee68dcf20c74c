package controller

import (
	"learning_path_backend/internal/service"
	"learning_path_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
	StatsService     *service.StatsService
}

func NewDashboardController(dashboardService *service.DashboardService, statsService *service.StatsService) *DashboardController {
	return &DashboardController{
		DashboardService: dashboardService,
		StatsService:     statsService,
	}
}

// GetDashboard godoc
// @Summary Get the current user's dashboard
// @Description Activity counts, average progress and the five most recent paths and courses
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.DashboardData}
// @Failure 401 {object} util.Response
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	data, err := c.DashboardService.GetDashboard(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, data)
}

// GetPublicStats godoc
// @Summary Get public platform statistics
// @Description Cached totals of published content and registered users
// @Tags dashboard
// @Produce json
// @Success 200 {object} util.Response{data=service.PublicStats}
// @Router /api/stats [get]
func (c *DashboardController) GetPublicStats(ctx *gin.Context) {
	stats, err := c.StatsService.GetPublicStats(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
