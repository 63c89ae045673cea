// models/platform_wallet.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlatformWallet is the singleton aggregate of tips and donation volume
// collected platform-wide. At most one document exists; it is lazily
// upserted on first access.
type PlatformWallet struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	TotalTips      float64            `json:"totalTips" bson:"totalTips"`
	TotalDonations float64            `json:"totalDonations" bson:"totalDonations"`
	LastUpdated    time.Time          `json:"lastUpdated" bson:"lastUpdated"`
	CreatedAt      time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

// TopUpRequest is the body for submitting a wallet top-up for approval
type TopUpRequest struct {
	UserID    string  `json:"userId" validate:"required"`
	UserEmail string  `json:"userEmail" validate:"required,email"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Reason    string  `json:"reason" validate:"required,max=500"`
}
