package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fundmehub/fundme_backend/config"
	"github.com/fundmehub/fundme_backend/models"
	"github.com/fundmehub/fundme_backend/repositories"
)

// UserController serves donor-facing profile data
type UserController struct {
	DB       *mongo.Database
	userRepo *repositories.UserRepository
}

func NewUserController(db *mongo.Database, userRepo *repositories.UserRepository) *UserController {
	return &UserController{DB: db, userRepo: userRepo}
}

// GetUserDonations returns a user's donation aggregates along with their
// most recent donation records.
func (uc *UserController) GetUserDonations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clerkID := c.QueryParam("clerkId")
	if clerkID == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "User ID is required",
		})
	}

	user, err := uc.userRepo.FindByClerkID(ctx, clerkID)
	if err != nil {
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

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(20)
	cursor, err := uc.DB.Collection(config.DonationsCollection).Find(ctx, bson.M{"donorId": clerkID}, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve donations",
		})
	}
	defer cursor.Close(ctx)

	donations := []models.Donation{}
	if err = cursor.All(ctx, &donations); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode donations",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "User donations retrieved successfully",
		Data: map[string]interface{}{
			"user": map[string]interface{}{
				"email":           user.Email,
				"firstName":       user.FirstName,
				"lastName":        user.LastName,
				"walletBalance":   user.WalletBalance,
				"totalDonations":  user.TotalDonations,
				"totalTipsEarned": user.TotalTipsEarned,
			},
			"donations": donations,
		},
	})
}
