package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fundmehub/fundme_backend/config"
	"github.com/fundmehub/fundme_backend/models"
	"github.com/fundmehub/fundme_backend/repositories"
	"github.com/fundmehub/fundme_backend/utils"
	"github.com/fundmehub/fundme_backend/websocket"
)

// WalletController handles the platform wallet singleton and wallet top-up
// submissions
type WalletController struct {
	DB       *mongo.Database
	userRepo *repositories.UserRepository
	hub      *websocket.Hub
}

func NewWalletController(db *mongo.Database, userRepo *repositories.UserRepository, hub *websocket.Hub) *WalletController {
	return &WalletController{DB: db, userRepo: userRepo, hub: hub}
}

// GetPlatformWallet returns the singleton platform wallet, lazily creating
// it on first access.
func (wc *WalletController) GetPlatformWallet(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var wallet models.PlatformWallet
	if utils.CacheGet(ctx, utils.PlatformWalletCacheKey, &wallet) {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Platform wallet retrieved successfully",
			Data:    wallet,
		})
	}

	// Upsert-on-read keeps the collection a singleton
	err := wc.DB.Collection(config.PlatformWalletCollection).FindOneAndUpdate(ctx,
		bson.M{},
		bson.M{"$setOnInsert": bson.M{
			"totalTips":      0.0,
			"totalDonations": 0.0,
			"lastUpdated":    time.Now(),
			"createdAt":      time.Now(),
		}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&wallet)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve platform wallet",
		})
	}

	utils.CacheSet(ctx, utils.PlatformWalletCacheKey, wallet, utils.WalletCacheTTL)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Platform wallet retrieved successfully",
		Data:    wallet,
	})
}

// CreateTopUpRequest submits a wallet top-up for approval. The balance is
// only credited once an administrator approves the request.
func (wc *WalletController) CreateTopUpRequest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.TopUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Missing required fields",
		})
	}
	if req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Amount must be greater than 0",
		})
	}

	if _, err := wc.userRepo.FindByClerkID(ctx, req.UserID); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "User not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to look up user",
		})
	}

	approvalRequest := models.ApprovalRequest{
		Type:      models.RequestTypeWalletTopup,
		UserID:    req.UserID,
		UserEmail: req.UserEmail,
		Status:    models.RequestStatusPending,
		Amount:    req.Amount,
		Reason:    utils.SanitizeInput(req.Reason),
		CreatedAt: time.Now(),
	}

	result, err := wc.DB.Collection(config.ApprovalRequestsCollection).InsertOne(ctx, approvalRequest)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create top-up request",
		})
	}
	approvalRequest.ID = result.InsertedID.(primitive.ObjectID)

	wc.hub.NotifyRequestCreated(approvalRequest)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Wallet top-up request submitted for approval",
		Data:    approvalRequest,
	})
}
