// models/admin.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin holds an administrator credential. The admin code is stored as a
// bcrypt hash; the plaintext code is only ever returned once, at generation.
type Admin struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email      string             `json:"email" bson:"email"`
	AdminCode  string             `json:"-" bson:"adminCode"`
	IsActive   bool               `json:"isActive" bson:"isActive"`
	AssignedBy string             `json:"assignedBy" bson:"assignedBy"`
	AssignedAt time.Time          `json:"assignedAt" bson:"assignedAt"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// AdminLoginRequest is the body for admin login
type AdminLoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	AdminCode string `json:"adminCode" validate:"required"`
}

// AdminPayload is the session-identifying payload returned on login
type AdminPayload struct {
	Email      string    `json:"email"`
	AssignedBy string    `json:"assignedBy"`
	AssignedAt time.Time `json:"assignedAt"`
}

// GenerateCodeRequest is the body for provisioning a new admin credential
type GenerateCodeRequest struct {
	Email      string `json:"email" validate:"required,email"`
	AssignedBy string `json:"assignedBy" validate:"required"`
}
