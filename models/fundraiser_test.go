package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory("medical"))
	assert.True(t, IsValidCategory("other"))
	assert.False(t, IsValidCategory("Medical"), "categories are matched exactly")
	assert.False(t, IsValidCategory("crypto"))
	assert.False(t, IsValidCategory(""))
}

func TestCreateFundraiserRequestValidate(t *testing.T) {
	req := CreateFundraiserRequest{
		Title:       "Help rebuild the shelter",
		Description: "The local animal shelter burned down and needs rebuilding.",
		Goal:        5000,
		Category:    "animals",
		ForWhom:     "someone_else",
		Creator:     "user_123",
		UserEmail:   "user@example.com",
	}
	assert.NoError(t, req.Validate())

	req.Category = "not-a-category"
	assert.Error(t, req.Validate())
}

func TestGoalReached(t *testing.T) {
	f := Fundraiser{Raised: 100, Goal: 200}
	assert.False(t, f.GoalReached())

	f.Raised = 200
	assert.True(t, f.GoalReached())

	f.Raised = 250
	assert.True(t, f.GoalReached())
}
