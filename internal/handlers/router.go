package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/pensacomp/lms-service/internal/auth"
	"github.com/pensacomp/lms-service/internal/cache"
	"github.com/pensacomp/lms-service/internal/models"
	"github.com/pensacomp/lms-service/internal/repositories"
	"github.com/pensacomp/lms-service/internal/services"
	"github.com/pensacomp/lms-service/internal/utils"
)

type HandlerManager struct {
	userHandler    *UserHandler
	courseHandler  *CourseHandler
	orderHandler   *OrderHandler
	postHandler    *PostHandler
	authMiddleware *AuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens *auth.TokenManager,
	sessions *cache.SessionStore,
	userRepo repositories.UserRepository,
	cookies CookieConfig,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		userHandler:    NewUserHandler(serviceManager.User(), cookies, logger),
		courseHandler:  NewCourseHandler(serviceManager.Course(), logger),
		orderHandler:   NewOrderHandler(serviceManager.Order(), serviceManager.Report(), logger),
		postHandler:    NewPostHandler(serviceManager.Post(), logger),
		authMiddleware: NewAuthMiddleware(tokens, sessions, userRepo, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	adminOnly := hm.authMiddleware.RequireRole(models.RoleAdmin)

	v1 := router.Group("/api/v1")
	{
		// Account lifecycle - no session required
		v1.POST("/registration", hm.userHandler.Registration)
		v1.POST("/activate-user", hm.userHandler.ActivateUser)
		v1.POST("/login", hm.userHandler.Login)
		v1.POST("/social-auth", hm.userHandler.SocialAuth)
		v1.GET("/refresh", hm.userHandler.RefreshToken)

		// Profile routes
		authed := v1.Group("")
		authed.Use(hm.authMiddleware.RequireAuth())
		{
			authed.GET("/logout", hm.userHandler.Logout)
			authed.GET("/me", hm.userHandler.Me)
			authed.PUT("/update-user-info", hm.userHandler.UpdateUserInfo)
			authed.PUT("/update-user-password", hm.userHandler.UpdatePassword)
			authed.PUT("/update-user-avatar", hm.userHandler.UpdateAvatar)

			// Paid course material and interactions
			authed.GET("/get-course-content/:id", hm.courseHandler.GetCourseContent)
			authed.PUT("/add-question", hm.courseHandler.AddQuestion)
			authed.PUT("/add-answer", hm.courseHandler.AddAnswer)
			authed.PUT("/add-review/:id", hm.courseHandler.AddReview)
			authed.PUT("/add-reply", adminOnly, hm.courseHandler.AddReply)

			// Orders
			authed.POST("/create-order", hm.orderHandler.CreateOrder)
			authed.GET("/get-orders", adminOnly, hm.orderHandler.GetOrders)
			authed.GET("/get-orders-report", adminOnly, hm.orderHandler.GetOrdersReport)

			// Catalog management - Admins only
			authed.POST("/create-course", adminOnly, hm.courseHandler.CreateCourse)
			authed.PUT("/edit-course/:id", adminOnly, hm.courseHandler.EditCourse)
		}

		// Public catalog
		v1.GET("/get-course/:id", hm.courseHandler.GetCourse)
		v1.GET("/get-courses", hm.courseHandler.GetCourses)
	}

	// Blog routes; reads are public, writes are admin only
	posts := router.Group("/api/posts")
	{
		posts.GET("", hm.postHandler.ListPosts)
		posts.GET("/:slug", hm.postHandler.GetPost)

		posts.POST("", hm.authMiddleware.RequireAuth(), adminOnly, hm.postHandler.CreatePost)
		posts.PUT("/:slug", hm.authMiddleware.RequireAuth(), adminOnly, hm.postHandler.UpdatePost)
		posts.DELETE("/:slug", hm.authMiddleware.RequireAuth(), adminOnly, hm.postHandler.DeletePost)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "lms-service",
		})
	})
}
