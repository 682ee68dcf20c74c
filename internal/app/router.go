package app

import (
	"learning_path_backend/docs"
	"learning_path_backend/internal/config"
	"learning_path_backend/internal/middleware"
	"learning_path_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c, cfg)
	a.registerAuthRoutes(router, c, cfg)
	a.registerStaffRoutes(router, c, cfg)
}

// Public and optionally-authenticated routes. The catalog endpoints accept a
// token but do not require one; visibility depends on who is asking.
func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.GET("/stats", c.dashboard.GetPublicStats)
		public.GET("/categories", c.category.ListCategories)
		public.GET("/categories/:id", c.category.GetCategory)
	}

	catalog := router.Group("/api")
	catalog.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		catalog.GET("/courses", c.course.ListCourses)
		catalog.GET("/courses/featured", c.course.ListFeatured)
		catalog.GET("/courses/free", c.course.ListFree)
		catalog.GET("/courses/:id", c.course.GetCourse)

		catalog.GET("/learning-paths", c.learningPath.ListPaths)
		catalog.GET("/learning-paths/:id", c.learningPath.GetPath)
	}
}

func (a *App) registerAuthRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.POST("/auth/change-password", c.auth.ChangePassword)

		authGroup.GET("/profiles", c.profile.ListProfiles)
		authGroup.GET("/profiles/me", c.profile.GetMyProfile)
		authGroup.PUT("/profiles/me", c.profile.UpdateMyProfile)
		authGroup.POST("/profiles/me/avatar", c.profile.UploadAvatar)
		authGroup.GET("/profiles/:id", c.profile.GetProfile)

		authGroup.GET("/skills", c.skill.ListSkills)
		authGroup.POST("/skills", c.skill.CreateSkill)
		authGroup.PUT("/skills/:id", c.skill.UpdateSkill)
		authGroup.DELETE("/skills/:id", c.skill.DeleteSkill)

		authGroup.GET("/courses/my", c.course.ListMyCourses)
		authGroup.POST("/courses", c.course.CreateCourse)
		authGroup.PUT("/courses/:id", c.course.UpdateCourse)
		authGroup.DELETE("/courses/:id", c.course.DeleteCourse)

		authGroup.GET("/reviews", c.review.ListReviews)
		authGroup.POST("/reviews", c.review.CreateReview)
		authGroup.GET("/reviews/:id", c.review.GetReview)
		authGroup.PUT("/reviews/:id", c.review.UpdateReview)
		authGroup.DELETE("/reviews/:id", c.review.DeleteReview)

		authGroup.GET("/learning-paths/my", c.learningPath.ListMyPaths)
		authGroup.POST("/learning-paths", c.learningPath.CreatePath)
		authGroup.PUT("/learning-paths/:id", c.learningPath.UpdatePath)
		authGroup.DELETE("/learning-paths/:id", c.learningPath.DeletePath)
		authGroup.POST("/learning-paths/:id/courses", c.learningPath.AddCourse)
		authGroup.DELETE("/learning-paths/:id/courses/:courseId", c.learningPath.RemoveCourse)

		authGroup.GET("/progress/courses", c.progress.ListCourseProgress)
		authGroup.POST("/progress/courses", c.progress.StartCourse)
		authGroup.GET("/progress/courses/:id", c.progress.GetCourseProgress)
		authGroup.PUT("/progress/courses/:id", c.progress.UpdateCourseProgress)
		authGroup.POST("/progress/courses/:id/complete", c.progress.CompleteCourse)

		authGroup.GET("/progress/paths", c.progress.ListPathProgress)
		authGroup.POST("/progress/paths", c.progress.StartPath)
		authGroup.GET("/progress/paths/:id", c.progress.GetPathProgress)
		authGroup.PUT("/progress/paths/:id", c.progress.UpdatePathProgress)
		authGroup.POST("/progress/paths/:id/complete", c.progress.CompletePath)

		authGroup.GET("/dashboard", c.dashboard.GetDashboard)
	}
}

// Category management is the one staff-only surface.
func (a *App) registerStaffRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	staff := router.Group("/api")
	staff.Use(middleware.AuthMiddleware(cfg), middleware.StaffMiddleware())
	{
		staff.POST("/categories", c.category.CreateCategory)
		staff.PUT("/categories/:id", c.category.UpdateCategory)
		staff.DELETE("/categories/:id", c.category.DeleteCategory)
	}
}
