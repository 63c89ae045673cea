package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fundmehub/fundme_backend/controllers"
	"github.com/fundmehub/fundme_backend/repositories"
	"github.com/fundmehub/fundme_backend/websocket"
)

// RegisterWalletRoutes sets up the platform wallet and top-up routes
func RegisterWalletRoutes(e *echo.Echo, db *mongo.Database, userRepo *repositories.UserRepository, hub *websocket.Hub) {
	walletController := controllers.NewWalletController(db, userRepo, hub)

	wallet := e.Group("/api/wallet")

	wallet.GET("", walletController.GetPlatformWallet)
	wallet.POST("", walletController.CreateTopUpRequest)
}
