package controllers

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
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

// FundraiserController handles fundraiser CRUD and donations
type FundraiserController struct {
	DB       *mongo.Database
	userRepo *repositories.UserRepository
	hub      *websocket.Hub
}

func NewFundraiserController(db *mongo.Database, userRepo *repositories.UserRepository, hub *websocket.Hub) *FundraiserController {
	return &FundraiserController{DB: db, userRepo: userRepo, hub: hub}
}

// GetFundraisers lists active fundraisers with category/search/creator
// filters and limit/skip pagination, newest first.
func (fc *FundraiserController) GetFundraisers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := bson.M{"status": models.FundraiserStatusActive}

	if category := c.QueryParam("category"); category != "" && category != "all" {
		query["category"] = category
	}
	if search := c.QueryParam("search"); search != "" {
		escaped := regexp.QuoteMeta(search)
		query["$or"] = []bson.M{
			{"title": bson.M{"$regex": escaped, "$options": "i"}},
			{"description": bson.M{"$regex": escaped, "$options": "i"}},
		}
	}
	if creator := c.QueryParam("creator"); creator != "" {
		query["creator"] = creator
	}

	limit := int64(10)
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.ParseInt(limitStr, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	skip := int64(0)
	if skipStr := c.QueryParam("skip"); skipStr != "" {
		if parsed, err := strconv.ParseInt(skipStr, 10, 64); err == nil && parsed >= 0 {
			skip = parsed
		}
	}

	collection := fc.DB.Collection(config.FundraisersCollection)
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetSkip(skip)

	cursor, err := collection.Find(ctx, query, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve fundraisers",
		})
	}
	defer cursor.Close(ctx)

	fundraisers := []models.Fundraiser{}
	if err = cursor.All(ctx, &fundraisers); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode fundraisers",
		})
	}

	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to count fundraisers",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Fundraisers retrieved successfully",
		Data: models.FundraiserListResponse{
			Fundraisers: fundraisers,
			Total:       total,
		},
	})
}

// GetFundraiser returns a single fundraiser by ID
func (fc *FundraiserController) GetFundraiser(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id := c.Param("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid fundraiser ID format",
		})
	}

	var fundraiser models.Fundraiser
	if utils.CacheGet(ctx, utils.FundraiserCacheKey(id), &fundraiser) {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Fundraiser retrieved successfully",
			Data:    fundraiser,
		})
	}

	err = fc.DB.Collection(config.FundraisersCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&fundraiser)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Fundraiser not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve fundraiser",
		})
	}

	utils.CacheSet(ctx, utils.FundraiserCacheKey(id), fundraiser, utils.FundraiserCacheTTL)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Fundraiser retrieved successfully",
		Data:    fundraiser,
	})
}

// CreateFundraiser submits a new campaign for approval: a pending fundraiser
// plus a linked approval request. If the second write fails the fundraiser is
// deleted again, so no orphaned pending campaign is left behind.
func (fc *FundraiserController) CreateFundraiser(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.CreateFundraiserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Missing or invalid required fields",
		})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	// The creator must already exist in the user store
	if _, err := fc.userRepo.FindByClerkID(ctx, req.Creator); err != nil {
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

	now := time.Now()
	fundraiser := models.Fundraiser{
		Title:       utils.SanitizeInput(req.Title),
		Description: utils.SanitizeInput(req.Description),
		Goal:        req.Goal,
		Category:    req.Category,
		Image:       req.Image,
		ForWhom:     req.ForWhom,
		Creator:     req.Creator,
		Raised:      0,
		Status:      models.FundraiserStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	fundraiserColl := fc.DB.Collection(config.FundraisersCollection)
	result, err := fundraiserColl.InsertOne(ctx, fundraiser)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create fundraiser",
		})
	}
	fundraiser.ID = result.InsertedID.(primitive.ObjectID)

	approvalRequest := models.ApprovalRequest{
		Type:         models.RequestTypeFundraiser,
		UserID:       req.Creator,
		UserEmail:    req.UserEmail,
		Status:       models.RequestStatusPending,
		FundraiserID: fundraiser.ID.Hex(),
		Reason:       "New fundraiser: " + fundraiser.Title,
		CreatedAt:    now,
	}

	requestResult, err := fc.DB.Collection(config.ApprovalRequestsCollection).InsertOne(ctx, approvalRequest)
	if err != nil {
		// Compensating delete so the dual write doesn't leave an orphan
		if _, delErr := fundraiserColl.DeleteOne(ctx, bson.M{"_id": fundraiser.ID}); delErr != nil {
			log.Printf("Failed to roll back orphaned fundraiser %s: %v", fundraiser.ID.Hex(), delErr)
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create approval request",
		})
	}
	approvalRequest.ID = requestResult.InsertedID.(primitive.ObjectID)

	fc.hub.NotifyRequestCreated(approvalRequest)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Fundraiser submitted for approval",
		Data: map[string]interface{}{
			"fundraiser":      fundraiser,
			"approvalRequest": approvalRequest,
		},
	})
}

// Donate applies a donation to an active fundraiser. The raised counter is
// incremented atomically with a filter on status=active, so donations to
// pending, rejected, paused or completed campaigns are refused and
// concurrent donations never lose updates.
func (fc *FundraiserController) Donate(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id := c.Param("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid fundraiser ID format",
		})
	}

	var req models.DonationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid donation amount",
		})
	}
	if req.Tip < 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid tip amount",
		})
	}
	if req.DonorID == "" || req.DonorEmail == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Donor information is required",
		})
	}

	fundraiserColl := fc.DB.Collection(config.FundraisersCollection)

	// Atomic increment; only the donation itself counts toward the goal
	var fundraiser models.Fundraiser
	err = fundraiserColl.FindOneAndUpdate(ctx,
		bson.M{"_id": objectID, "status": models.FundraiserStatusActive},
		bson.M{
			"$inc": bson.M{"raised": req.Amount},
			"$set": bson.M{"updatedAt": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&fundraiser)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			count, countErr := fundraiserColl.CountDocuments(ctx, bson.M{"_id": objectID})
			if countErr == nil && count > 0 {
				return c.JSON(http.StatusConflict, models.Response{
					Status:  http.StatusConflict,
					Message: "Fundraiser is not active",
				})
			}
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Fundraiser not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to process donation",
		})
	}

	// Goal reached: conditional transition so concurrent donations can't
	// flip the status twice
	if fundraiser.GoalReached() {
		_, err = fundraiserColl.UpdateOne(ctx,
			bson.M{"_id": objectID, "status": models.FundraiserStatusActive},
			bson.M{"$set": bson.M{"status": models.FundraiserStatusCompleted, "updatedAt": time.Now()}},
		)
		if err != nil {
			log.Printf("Failed to mark fundraiser %s completed: %v", id, err)
		} else {
			fundraiser.Status = models.FundraiserStatusCompleted
		}
	}

	// Tips go to the platform, never to the fundraiser's own total
	if req.Tip > 0 {
		if err := fc.creditPlatformWallet(ctx, req.Amount, req.Tip); err != nil {
			log.Printf("Failed to update platform wallet: %v", err)
		}
	}

	if err := fc.userRepo.IncrementTotalDonations(ctx, req.DonorID, req.Amount); err != nil {
		log.Printf("Failed to update donor totals for %s: %v", req.DonorID, err)
	}

	now := time.Now()
	donation := models.Donation{
		FundraiserID: objectID,
		DonorID:      req.DonorID,
		DonorEmail:   req.DonorEmail,
		Amount:       req.Amount,
		Tip:          req.Tip,
		Reference:    uuid.NewString(),
		CreatedAt:    now,
	}
	if _, err := fc.DB.Collection(config.DonationsCollection).InsertOne(ctx, donation); err != nil {
		log.Printf("Failed to record donation audit entry: %v", err)
	}

	utils.CacheInvalidate(ctx, utils.FundraiserCacheKey(id), utils.PlatformWalletCacheKey)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Donation processed successfully",
		Data: map[string]interface{}{
			"donation": models.DonationReceipt{
				Reference:    donation.Reference,
				FundraiserID: id,
				DonorEmail:   req.DonorEmail,
				Amount:       req.Amount,
				Tip:          req.Tip,
				Total:        req.Amount + req.Tip,
				Timestamp:    now,
			},
			"fundraiser": fundraiser,
		},
	})
}

// creditPlatformWallet lazily upserts the singleton wallet document and
// bumps its aggregates atomically.
func (fc *FundraiserController) creditPlatformWallet(ctx context.Context, amount, tip float64) error {
	_, err := fc.DB.Collection(config.PlatformWalletCollection).UpdateOne(ctx,
		bson.M{},
		bson.M{
			"$inc":         bson.M{"totalTips": tip, "totalDonations": amount},
			"$set":         bson.M{"lastUpdated": time.Now()},
			"$setOnInsert": bson.M{"createdAt": time.Now()},
		},
		options.Update().SetUpsert(true),
	)
	return err
}
