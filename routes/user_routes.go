package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fundmehub/fundme_backend/controllers"
	"github.com/fundmehub/fundme_backend/repositories"
)

// RegisterUserRoutes sets up donor profile routes
func RegisterUserRoutes(e *echo.Echo, db *mongo.Database, userRepo *repositories.UserRepository) {
	userController := controllers.NewUserController(db, userRepo)

	e.GET("/api/users/donations", userController.GetUserDonations)
}
