package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/fundmehub/fundme_backend/repositories"
	"github.com/fundmehub/fundme_backend/websocket"
)

func newFundraiserController(mt *mtest.T) *FundraiserController {
	userRepo := repositories.NewUserRepository(mt.Client)
	return NewFundraiserController(mt.Client.Database("fundme"), userRepo, websocket.NewHub())
}

func fundraiserDoc(id primitive.ObjectID, raised, goal float64, status string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: "Help rebuild the shelter"},
		{Key: "description", Value: "The local animal shelter burned down and needs rebuilding."},
		{Key: "goal", Value: goal},
		{Key: "category", Value: "animals"},
		{Key: "forWhom", Value: "someone_else"},
		{Key: "creator", Value: "user_1"},
		{Key: "raised", Value: raised},
		{Key: "status", Value: status},
		{Key: "createdAt", Value: time.Now()},
		{Key: "updatedAt", Value: time.Now()},
	}
}

func TestDonate(t *testing.T) {
	t.Setenv("DB_NAME", "fundme")

	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("donation excludes tip from raised and reports both", func(mt *mtest.T) {
		fundraiserID := primitive.NewObjectID()
		mt.AddMockResponses(
			// Atomic raised increment, returns the post-increment document
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: fundraiserDoc(fundraiserID, 100, 200, "active")}),
			// Platform wallet upsert (tip present)
			mtest.CreateSuccessResponse(),
			// Donor totalDonations increment
			mtest.CreateSuccessResponse(),
			// Donation audit record insert
			mtest.CreateSuccessResponse(),
		)

		fc := newFundraiserController(mt)
		c, rec := newTestContext(http.MethodPost, "/api/fundraisers/"+fundraiserID.Hex()+"/donate",
			`{"amount":100,"tip":10,"donorId":"user_2","donorEmail":"donor@example.com"}`)
		c.SetParamNames("id")
		c.SetParamValues(fundraiserID.Hex())

		require.NoError(mt.T, fc.Donate(c))
		assert.Equal(mt.T, http.StatusCreated, rec.Code)

		body := decodeResponse(mt.T, rec)
		data := body["data"].(map[string]interface{})
		donation := data["donation"].(map[string]interface{})
		assert.Equal(mt.T, 100.0, donation["amount"])
		assert.Equal(mt.T, 10.0, donation["tip"])
		assert.Equal(mt.T, 110.0, donation["total"])
		assert.NotEmpty(mt.T, donation["reference"])

		fundraiser := data["fundraiser"].(map[string]interface{})
		assert.Equal(mt.T, 100.0, fundraiser["raised"])
		assert.Equal(mt.T, "active", fundraiser["status"], "100 of 200 keeps the campaign active")
	})

	mt.Run("reaching the goal completes the fundraiser", func(mt *mtest.T) {
		fundraiserID := primitive.NewObjectID()
		mt.AddMockResponses(
			// raised already includes the 50 increment: 150 + 50 = 200
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: fundraiserDoc(fundraiserID, 200, 200, "active")}),
			// Conditional active -> completed transition
			mtest.CreateSuccessResponse(),
			// Donor totalDonations increment (no tip, wallet untouched)
			mtest.CreateSuccessResponse(),
			// Donation audit record insert
			mtest.CreateSuccessResponse(),
		)

		fc := newFundraiserController(mt)
		c, rec := newTestContext(http.MethodPost, "/api/fundraisers/"+fundraiserID.Hex()+"/donate",
			`{"amount":50,"donorId":"user_2","donorEmail":"donor@example.com"}`)
		c.SetParamNames("id")
		c.SetParamValues(fundraiserID.Hex())

		require.NoError(mt.T, fc.Donate(c))
		assert.Equal(mt.T, http.StatusCreated, rec.Code)

		body := decodeResponse(mt.T, rec)
		data := body["data"].(map[string]interface{})
		fundraiser := data["fundraiser"].(map[string]interface{})
		assert.Equal(mt.T, "completed", fundraiser["status"])
	})

	mt.Run("donating to a non-active fundraiser conflicts", func(mt *mtest.T) {
		fundraiserID := primitive.NewObjectID()
		mt.AddMockResponses(
			// No document matched {_id, status: active}
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			// The fundraiser exists, so this is a conflict rather than a 404
			mtest.CreateCursorResponse(0, "fundme.fundraisers", mtest.FirstBatch,
				bson.D{{Key: "n", Value: int32(1)}}),
		)

		fc := newFundraiserController(mt)
		c, rec := newTestContext(http.MethodPost, "/api/fundraisers/"+fundraiserID.Hex()+"/donate",
			`{"amount":100,"donorId":"user_2","donorEmail":"donor@example.com"}`)
		c.SetParamNames("id")
		c.SetParamValues(fundraiserID.Hex())

		require.NoError(mt.T, fc.Donate(c))
		assert.Equal(mt.T, http.StatusConflict, rec.Code)
	})

	mt.Run("invalid amount fails before any storage access", func(mt *mtest.T) {
		fundraiserID := primitive.NewObjectID()
		fc := newFundraiserController(mt)
		c, rec := newTestContext(http.MethodPost, "/api/fundraisers/"+fundraiserID.Hex()+"/donate",
			`{"amount":0,"donorId":"user_2","donorEmail":"donor@example.com"}`)
		c.SetParamNames("id")
		c.SetParamValues(fundraiserID.Hex())

		require.NoError(mt.T, fc.Donate(c))
		assert.Equal(mt.T, http.StatusBadRequest, rec.Code)
	})

	mt.Run("missing donor information fails validation", func(mt *mtest.T) {
		fundraiserID := primitive.NewObjectID()
		fc := newFundraiserController(mt)
		c, rec := newTestContext(http.MethodPost, "/api/fundraisers/"+fundraiserID.Hex()+"/donate",
			`{"amount":100}`)
		c.SetParamNames("id")
		c.SetParamValues(fundraiserID.Hex())

		require.NoError(mt.T, fc.Donate(c))
		assert.Equal(mt.T, http.StatusBadRequest, rec.Code)
	})
}

func TestGetFundraisers(t *testing.T) {
	t.Setenv("DB_NAME", "fundme")

	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("lists active fundraisers with total", func(mt *mtest.T) {
		first := primitive.NewObjectID()
		second := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "fundme.fundraisers", mtest.FirstBatch,
				fundraiserDoc(first, 50, 200, "active"),
				fundraiserDoc(second, 10, 1000, "active")),
			mtest.CreateCursorResponse(0, "fundme.fundraisers", mtest.FirstBatch,
				bson.D{{Key: "n", Value: int32(2)}}),
		)

		fc := newFundraiserController(mt)
		c, rec := newTestContext(http.MethodGet, "/api/fundraisers?category=animals", "")

		require.NoError(mt.T, fc.GetFundraisers(c))
		assert.Equal(mt.T, http.StatusOK, rec.Code)

		body := decodeResponse(mt.T, rec)
		data := body["data"].(map[string]interface{})
		assert.Equal(mt.T, 2.0, data["total"])
		assert.Len(mt.T, data["fundraisers"], 2)
	})

	mt.Run("single fundraiser 404s when absent", func(mt *mtest.T) {
		fundraiserID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "fundme.fundraisers", mtest.FirstBatch))

		fc := newFundraiserController(mt)
		c, rec := newTestContext(http.MethodGet, "/api/fundraisers/"+fundraiserID.Hex(), "")
		c.SetParamNames("id")
		c.SetParamValues(fundraiserID.Hex())

		require.NoError(mt.T, fc.GetFundraiser(c))
		assert.Equal(mt.T, http.StatusNotFound, rec.Code)
	})
}

func TestCreateFundraiser(t *testing.T) {
	t.Setenv("DB_NAME", "fundme")

	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	validBody := `{"title":"Help rebuild the shelter",` +
		`"description":"The local animal shelter burned down and needs rebuilding.",` +
		`"goal":5000,"category":"animals","forWhom":"someone_else",` +
		`"creator":"user_1","userEmail":"user@example.com"}`

	mt.Run("submission creates a pending fundraiser and a linked request", func(mt *mtest.T) {
		userDoc := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "clerkId", Value: "user_1"},
			{Key: "email", Value: "user@example.com"},
			{Key: "firstName", Value: "Sam"},
			{Key: "lastName", Value: "Doe"},
		}
		mt.AddMockResponses(
			// Creator lookup
			mtest.CreateCursorResponse(0, "fundme.users", mtest.FirstBatch, userDoc),
			// Fundraiser insert
			mtest.CreateSuccessResponse(),
			// Linked approval request insert
			mtest.CreateSuccessResponse(),
		)

		fc := newFundraiserController(mt)
		c, rec := newTestContext(http.MethodPost, "/api/fundraisers", validBody)

		require.NoError(mt.T, fc.CreateFundraiser(c))
		assert.Equal(mt.T, http.StatusCreated, rec.Code)

		body := decodeResponse(mt.T, rec)
		data := body["data"].(map[string]interface{})

		fundraiser := data["fundraiser"].(map[string]interface{})
		assert.Equal(mt.T, "pending", fundraiser["status"])
		assert.Equal(mt.T, 0.0, fundraiser["raised"])

		request := data["approvalRequest"].(map[string]interface{})
		assert.Equal(mt.T, "fundraiser", request["type"])
		assert.Equal(mt.T, "pending", request["status"])
		assert.Equal(mt.T, fundraiser["id"], request["fundraiserId"])
		assert.Equal(mt.T, "New fundraiser: Help rebuild the shelter", request["reason"])
	})

	mt.Run("unknown creator is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "fundme.users", mtest.FirstBatch))

		fc := newFundraiserController(mt)
		c, rec := newTestContext(http.MethodPost, "/api/fundraisers", validBody)

		require.NoError(mt.T, fc.CreateFundraiser(c))
		assert.Equal(mt.T, http.StatusNotFound, rec.Code)
	})

	mt.Run("short title fails validation", func(mt *mtest.T) {
		fc := newFundraiserController(mt)
		c, rec := newTestContext(http.MethodPost, "/api/fundraisers",
			`{"title":"Hey","description":"The local animal shelter burned down and needs rebuilding.",`+
				`"goal":5000,"category":"animals","forWhom":"someone_else","creator":"user_1","userEmail":"user@example.com"}`)

		require.NoError(mt.T, fc.CreateFundraiser(c))
		assert.Equal(mt.T, http.StatusBadRequest, rec.Code)
	})

	mt.Run("invalid category fails validation", func(mt *mtest.T) {
		fc := newFundraiserController(mt)
		c, rec := newTestContext(http.MethodPost, "/api/fundraisers",
			`{"title":"Help rebuild the shelter","description":"The local animal shelter burned down and needs rebuilding.",`+
				`"goal":5000,"category":"crypto","forWhom":"someone_else","creator":"user_1","userEmail":"user@example.com"}`)

		require.NoError(mt.T, fc.CreateFundraiser(c))
		assert.Equal(mt.T, http.StatusBadRequest, rec.Code)
	})
}
