package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fundraiser lifecycle. New campaigns start pending and only become active
// once an administrator approves the linked request.
const (
	FundraiserStatusPending   = "pending"
	FundraiserStatusActive    = "active"
	FundraiserStatusCompleted = "completed"
	FundraiserStatusRejected  = "rejected"
	FundraiserStatusPaused    = "paused"
)

const (
	ForWhomMyself      = "myself"
	ForWhomSomeoneElse = "someone_else"
)

// FundraiserCategories is the fixed set of campaign categories. Matching is
// exact and case-sensitive.
var FundraiserCategories = []string{
	"medical", "memorial", "emergency", "nonprofit", "education",
	"animals", "environment", "business", "community", "creative",
	"event", "faith", "family", "sports", "travel", "volunteer",
	"wishes", "competition", "other",
}

// IsValidCategory reports whether category is one of FundraiserCategories.
func IsValidCategory(category string) bool {
	for _, c := range FundraiserCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Fundraiser represents a fundraising campaign
type Fundraiser struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Goal        float64            `json:"goal" bson:"goal"`
	Category    string             `json:"category" bson:"category"`
	Image       string             `json:"image,omitempty" bson:"image,omitempty"`
	ForWhom     string             `json:"forWhom" bson:"forWhom"`
	Creator     string             `json:"creator" bson:"creator"` // Clerk user ID
	Raised      float64            `json:"raised" bson:"raised"`
	Status      string             `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// GoalReached reports whether the campaign collected its goal amount.
func (f *Fundraiser) GoalReached() bool {
	return f.Raised >= f.Goal
}

// CreateFundraiserRequest is the campaign submission payload
type CreateFundraiserRequest struct {
	Title       string  `json:"title" validate:"required,min=5,max=100"`
	Description string  `json:"description" validate:"required,min=20,max=2000"`
	Goal        float64 `json:"goal" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required"`
	Image       string  `json:"image,omitempty"`
	ForWhom     string  `json:"forWhom" validate:"required,oneof=myself someone_else"`
	Creator     string  `json:"creator" validate:"required"`
	UserEmail   string  `json:"userEmail" validate:"required,email"`
}

// Validate covers the checks the validate tags can't express.
func (r *CreateFundraiserRequest) Validate() error {
	if !IsValidCategory(r.Category) {
		return errors.New("invalid fundraiser category")
	}
	return nil
}

// FundraiserListResponse is the paginated listing payload
type FundraiserListResponse struct {
	Fundraisers []Fundraiser `json:"fundraisers"`
	Total       int64        `json:"total"`
}
