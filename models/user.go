// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User model. Identity provisioning happens in the Clerk webhook flow;
// this backend only reads and mutates wallet/donation counters.
type User struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ClerkID         string             `json:"clerkId" bson:"clerkId"`
	Email           string             `json:"email" bson:"email"`
	FirstName       string             `json:"firstName" bson:"firstName"`
	LastName        string             `json:"lastName" bson:"lastName"`
	WalletBalance   float64            `json:"walletBalance" bson:"walletBalance"`
	TotalDonations  float64            `json:"totalDonations" bson:"totalDonations"`
	TotalTipsEarned float64            `json:"totalTipsEarned" bson:"totalTipsEarned"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// RequesterInfo is the subset of user fields joined into approval request listings
type RequesterInfo struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Response represents the standard API response envelope
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
