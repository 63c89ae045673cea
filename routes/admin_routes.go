package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fundmehub/fundme_backend/controllers"
	"github.com/fundmehub/fundme_backend/middleware"
	"github.com/fundmehub/fundme_backend/repositories"
	"github.com/fundmehub/fundme_backend/websocket"
)

// RegisterAdminRoutes sets up all admin-related routes
func RegisterAdminRoutes(e *echo.Echo, db *mongo.Database, userRepo *repositories.UserRepository, hub *websocket.Hub) {
	adminController := controllers.NewAdminController(db)
	approvalController := controllers.NewApprovalController(db, userRepo, hub)

	// Admin routes group
	admin := e.Group("/api/admin")

	// Public routes (no auth required)
	admin.POST("/login", adminController.Login)

	// Protected routes (require admin authentication)
	protected := admin.Group("")
	protected.Use(middleware.AdminJWT())

	protected.POST("/generate-code", adminController.GenerateAdminCode)

	protected.GET("/requests", approvalController.GetAllRequests)
	protected.POST("/requests", approvalController.CreateRequest)
	protected.PUT("/requests/:id", approvalController.ProcessRequest)

	// Live dashboard feed
	protected.GET("/ws", func(c echo.Context) error {
		return websocket.HandleWebSocket(c, hub, middleware.GetAdminEmail(c))
	})
}
