package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fundmehub/fundme_backend/controllers"
	"github.com/fundmehub/fundme_backend/repositories"
	"github.com/fundmehub/fundme_backend/websocket"
)

// RegisterFundraiserRoutes sets up fundraiser listing, creation and donation routes
func RegisterFundraiserRoutes(e *echo.Echo, db *mongo.Database, userRepo *repositories.UserRepository, hub *websocket.Hub) {
	fundraiserController := controllers.NewFundraiserController(db, userRepo, hub)

	fundraisers := e.Group("/api/fundraisers")

	fundraisers.GET("", fundraiserController.GetFundraisers)
	fundraisers.POST("", fundraiserController.CreateFundraiser)
	fundraisers.GET("/:id", fundraiserController.GetFundraiser)
	fundraisers.POST("/:id/donate", fundraiserController.Donate)
}
