// models/approval_request.go
package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Approval request types
const (
	RequestTypeFundraiser  = "fundraiser"
	RequestTypeWalletTopup = "wallet_topup"
)

// Approval request statuses
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// Decision actions
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// ApprovalRequest gates either a fundraiser publication or a wallet credit.
// Exactly one of FundraiserID/Amount is populated, determined by Type.
type ApprovalRequest struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Type            string             `json:"type" bson:"type"`
	UserID          string             `json:"userId" bson:"userId"` // Clerk user ID
	UserEmail       string             `json:"userEmail" bson:"userEmail"`
	Status          string             `json:"status" bson:"status"`
	FundraiserID    string             `json:"fundraiserId,omitempty" bson:"fundraiserId,omitempty"`
	Amount          float64            `json:"amount,omitempty" bson:"amount,omitempty"`
	Reason          string             `json:"reason" bson:"reason"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	ApprovedAt      *time.Time         `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	ApprovedBy      string             `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	RejectedAt      *time.Time         `json:"rejectedAt,omitempty" bson:"rejectedAt,omitempty"`
	RejectedBy      string             `json:"rejectedBy,omitempty" bson:"rejectedBy,omitempty"`
	RejectionReason string             `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
}

// CreateApprovalRequest is the body for the generic admin creation endpoint
type CreateApprovalRequest struct {
	Type         string  `json:"type" validate:"required,oneof=fundraiser wallet_topup"`
	UserID       string  `json:"userId" validate:"required"`
	UserEmail    string  `json:"userEmail" validate:"required,email"`
	FundraiserID string  `json:"fundraiserId,omitempty"`
	Amount       float64 `json:"amount,omitempty"`
	Reason       string  `json:"reason" validate:"required,max=500"`
}

// DecisionRequest is the body for processing an approval request
type DecisionRequest struct {
	Action          string `json:"action"`
	AdminEmail      string `json:"adminEmail"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

// EnrichedApprovalRequest pairs a request with its requester's details
type EnrichedApprovalRequest struct {
	ApprovalRequest `bson:",inline"`
	Requester       *RequesterInfo `json:"requester,omitempty" bson:"-"`
}

// Validate enforces the type-dependent field requirements
func (r *CreateApprovalRequest) Validate() error {
	switch r.Type {
	case RequestTypeFundraiser:
		if r.FundraiserID == "" {
			return errors.New("fundraiser ID is required for fundraiser requests")
		}
	case RequestTypeWalletTopup:
		if r.Amount <= 0 {
			return errors.New("valid amount is required for wallet top-up requests")
		}
	}
	return nil
}

// ValidateDecision checks a decision body before any mutation happens
func (d *DecisionRequest) ValidateDecision() error {
	if d.Action == "" || d.AdminEmail == "" {
		return errors.New("action and admin email are required")
	}
	if d.Action != ActionApprove && d.Action != ActionReject {
		return errors.New("invalid action, must be 'approve' or 'reject'")
	}
	if d.Action == ActionReject && d.RejectionReason == "" {
		return errors.New("rejection reason is required")
	}
	return nil
}
