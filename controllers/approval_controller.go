package controllers

import (
	"context"
	"fmt"
	"log"
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

// ApprovalController handles listing, creating and deciding approval requests
type ApprovalController struct {
	DB       *mongo.Database
	userRepo *repositories.UserRepository
	hub      *websocket.Hub
}

func NewApprovalController(db *mongo.Database, userRepo *repositories.UserRepository, hub *websocket.Hub) *ApprovalController {
	return &ApprovalController{DB: db, userRepo: userRepo, hub: hub}
}

// GetAllRequests retrieves all approval requests, newest first, with
// requester details joined in where the user record exists.
func (ac *ApprovalController) GetAllRequests(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := ac.DB.Collection(config.ApprovalRequestsCollection)
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve approval requests",
		})
	}
	defer cursor.Close(ctx)

	var requests []models.ApprovalRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode approval requests",
		})
	}

	enriched := make([]models.EnrichedApprovalRequest, 0, len(requests))
	for _, req := range requests {
		item := models.EnrichedApprovalRequest{ApprovalRequest: req}
		if user, err := ac.userRepo.FindByClerkID(ctx, req.UserID); err == nil {
			item.Requester = &models.RequesterInfo{
				Email:     user.Email,
				FirstName: user.FirstName,
				LastName:  user.LastName,
			}
		}
		enriched = append(enriched, item)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Approval requests retrieved successfully",
		Data:    enriched,
	})
}

// CreateRequest handles the generic creation endpoint. Fundraiser and wallet
// top-up submissions normally go through their own endpoints; this one exists
// for administrative resubmission.
func (ac *ApprovalController) CreateRequest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.CreateApprovalRequest
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
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	doc := models.ApprovalRequest{
		Type:         req.Type,
		UserID:       req.UserID,
		UserEmail:    req.UserEmail,
		Status:       models.RequestStatusPending,
		FundraiserID: req.FundraiserID,
		Amount:       req.Amount,
		Reason:       req.Reason,
		CreatedAt:    time.Now(),
	}

	result, err := ac.DB.Collection(config.ApprovalRequestsCollection).InsertOne(ctx, doc)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create approval request",
		})
	}
	doc.ID = result.InsertedID.(primitive.ObjectID)

	ac.hub.NotifyRequestCreated(doc)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Request submitted successfully",
		Data:    doc,
	})
}

// ProcessRequest applies an administrator decision to a pending approval
// request. The transition is a conditional update keyed on status=pending,
// so a second decision attempt on the same request fails with a conflict
// and never re-mutates the linked entity.
func (ac *ApprovalController) ProcessRequest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	requestID := c.Param("id")
	requestObjectID, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request ID format",
		})
	}

	var decision models.DecisionRequest
	if err := c.Bind(&decision); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	// Validation happens before any mutation; a reject without a reason
	// leaves the request pending.
	if err := decision.ValidateDecision(); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	now := time.Now()
	var setFields bson.M
	if decision.Action == models.ActionApprove {
		setFields = bson.M{
			"status":     models.RequestStatusApproved,
			"approvedAt": now,
			"approvedBy": decision.AdminEmail,
		}
	} else {
		setFields = bson.M{
			"status":          models.RequestStatusRejected,
			"rejectedAt":      now,
			"rejectedBy":      decision.AdminEmail,
			"rejectionReason": decision.RejectionReason,
		}
	}

	collection := ac.DB.Collection(config.ApprovalRequestsCollection)
	var updated models.ApprovalRequest
	err = collection.FindOneAndUpdate(ctx,
		bson.M{"_id": requestObjectID, "status": models.RequestStatusPending},
		bson.M{"$set": setFields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Distinguish a missing request from one already decided
			count, countErr := collection.CountDocuments(ctx, bson.M{"_id": requestObjectID})
			if countErr == nil && count > 0 {
				return c.JSON(http.StatusConflict, models.Response{
					Status:  http.StatusConflict,
					Message: "Request has already been processed",
				})
			}
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Request not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to process approval request",
		})
	}

	ac.applyDecisionSideEffects(ctx, &updated)

	ac.hub.NotifyRequestProcessed(updated)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: fmt.Sprintf("Request %s successfully", updated.Status),
		Data:    updated,
	})
}

// applyDecisionSideEffects mutates the entity linked to a decided request.
// The request transition and the entity write are not one transaction; the
// conditional claim above guarantees the side effect runs at most once, and
// a failure here is logged rather than surfaced.
func (ac *ApprovalController) applyDecisionSideEffects(ctx context.Context, req *models.ApprovalRequest) {
	switch req.Type {
	case models.RequestTypeFundraiser:
		fundraiserID, err := primitive.ObjectIDFromHex(req.FundraiserID)
		if err != nil {
			log.Printf("Approval request %s has invalid fundraiser ID %q", req.ID.Hex(), req.FundraiserID)
			return
		}

		newStatus := models.FundraiserStatusActive
		if req.Status == models.RequestStatusRejected {
			newStatus = models.FundraiserStatusRejected
		}

		// A missing fundraiser record is tolerated silently
		_, err = ac.DB.Collection(config.FundraisersCollection).UpdateOne(ctx,
			bson.M{"_id": fundraiserID},
			bson.M{"$set": bson.M{"status": newStatus, "updatedAt": time.Now()}},
		)
		if err != nil {
			log.Printf("Failed to update fundraiser %s status: %v", req.FundraiserID, err)
		}
		utils.CacheInvalidate(ctx, utils.FundraiserCacheKey(req.FundraiserID))

	case models.RequestTypeWalletTopup:
		// Rejection of a top-up has no side effect beyond recording it
		if req.Status != models.RequestStatusApproved {
			return
		}
		if err := ac.userRepo.IncrementWalletBalance(ctx, req.UserID, req.Amount); err != nil {
			log.Printf("Failed to credit wallet for user %s: %v", req.UserID, err)
		}
	}
}
