package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fundmehub/fundme_backend/config"
	"github.com/fundmehub/fundme_backend/middleware"
	"github.com/fundmehub/fundme_backend/models"
	"github.com/fundmehub/fundme_backend/utils"
)

// AdminController handles admin authentication and credential provisioning
type AdminController struct {
	DB *mongo.Database
}

func NewAdminController(db *mongo.Database) *AdminController {
	return &AdminController{DB: db}
}

// Login validates an (email, adminCode) pair against stored admin
// credentials and returns the admin payload plus a session token.
func (ac *AdminController) Login(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var loginReq models.AdminLoginRequest
	if err := c.Bind(&loginReq); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if loginReq.Email == "" || loginReq.AdminCode == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email and admin code are required",
		})
	}

	email, err := utils.SanitizeEmail(loginReq.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid email format",
		})
	}

	// Wrong email, wrong code and inactive credential all produce the same
	// response so the outcome doesn't reveal which field was wrong.
	var admin models.Admin
	err = ac.DB.Collection(config.AdminsCollection).FindOne(ctx, bson.M{
		"email":    email,
		"isActive": true,
	}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Invalid admin credentials",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to verify credentials",
		})
	}

	if !utils.CheckAdminCode(admin.AdminCode, loginReq.AdminCode) {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid admin credentials",
		})
	}

	token, err := middleware.GenerateAdminToken(admin.Email, admin.AssignedBy)
	if err != nil {
		log.Printf("Failed to generate admin token: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Admin login successful",
		Data: map[string]interface{}{
			"token": token,
			"admin": models.AdminPayload{
				Email:      admin.Email,
				AssignedBy: admin.AssignedBy,
				AssignedAt: admin.AssignedAt,
			},
		},
	})
}

// GenerateAdminCode provisions a new admin credential. The plaintext code is
// emailed to the new admin and returned exactly once in the response; only
// its bcrypt hash is stored.
func (ac *AdminController) GenerateAdminCode(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.GenerateCodeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if req.Email == "" || req.AssignedBy == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email and assignedBy are required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid email format",
		})
	}

	adminColl := ac.DB.Collection(config.AdminsCollection)

	// Check if admin already exists
	count, err := adminColl.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to check existing admins",
		})
	}
	if count > 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Admin already exists",
		})
	}

	code, err := utils.GenerateAdminCode()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate admin code",
		})
	}

	hash, err := utils.HashAdminCode(code)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to secure admin code",
		})
	}

	now := time.Now()
	admin := models.Admin{
		Email:      email,
		AdminCode:  hash,
		IsActive:   true,
		AssignedBy: req.AssignedBy,
		AssignedAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := adminColl.InsertOne(ctx, admin); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create admin",
		})
	}

	// Best-effort delivery; the code is returned in the response regardless
	if err := utils.SendAdminCodeEmail(email, code); err != nil {
		log.Printf("Admin code email not sent to %s: %v", email, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Admin code generated successfully",
		Data: map[string]interface{}{
			"adminCode": code,
			"admin": models.AdminPayload{
				Email:      admin.Email,
				AssignedBy: admin.AssignedBy,
				AssignedAt: admin.AssignedAt,
			},
		},
	})
}
