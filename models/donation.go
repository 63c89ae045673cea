// models/donation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation is the audit record kept for every processed donation. Aggregate
// counters alone cannot reconstruct individual donation history, so each
// donation is persisted alongside the counter updates.
type Donation struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FundraiserID primitive.ObjectID `json:"fundraiserId" bson:"fundraiserId"`
	DonorID      string             `json:"donorId" bson:"donorId"` // Clerk user ID
	DonorEmail   string             `json:"donorEmail" bson:"donorEmail"`
	Amount       float64            `json:"amount" bson:"amount"`
	Tip          float64            `json:"tip" bson:"tip"`
	Reference    string             `json:"reference" bson:"reference"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

// DonationRequest is the body for donating to a fundraiser
type DonationRequest struct {
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Tip        float64 `json:"tip" validate:"gte=0"`
	DonorID    string  `json:"donorId" validate:"required"`
	DonorEmail string  `json:"donorEmail" validate:"required,email"`
}

// DonationReceipt summarizes a processed donation for the caller
type DonationReceipt struct {
	Reference    string    `json:"reference"`
	FundraiserID string    `json:"fundraiserId"`
	DonorEmail   string    `json:"donorEmail"`
	Amount       float64   `json:"amount"`
	Tip          float64   `json:"tip"`
	Total        float64   `json:"total"`
	Timestamp    time.Time `json:"timestamp"`
}
