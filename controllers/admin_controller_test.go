package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/fundmehub/fundme_backend/utils"
)

type testValidator struct {
	validator *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.validator.Struct(i)
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func adminDoc(t *testing.T, email, code string, isActive bool) bson.D {
	t.Helper()
	hash, err := utils.HashAdminCode(code)
	require.NoError(t, err)
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "email", Value: email},
		{Key: "adminCode", Value: hash},
		{Key: "isActive", Value: isActive},
		{Key: "assignedBy", Value: "system"},
		{Key: "assignedAt", Value: time.Now()},
		{Key: "createdAt", Value: time.Now()},
		{Key: "updatedAt", Value: time.Now()},
	}
}

func TestAdminLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_NAME", "fundme")

	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("successful login returns admin payload and token", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "fundme.admins", mtest.FirstBatch,
			adminDoc(mt.T, "admin@fundme.io", "CODE1234", true)))

		ac := NewAdminController(mt.Client.Database("fundme"))
		c, rec := newTestContext(http.MethodPost, "/api/admin/login",
			`{"email":"admin@fundme.io","adminCode":"CODE1234"}`)

		require.NoError(mt.T, ac.Login(c))
		assert.Equal(mt.T, http.StatusOK, rec.Code)

		body := decodeResponse(mt.T, rec)
		data := body["data"].(map[string]interface{})
		assert.NotEmpty(mt.T, data["token"])
		admin := data["admin"].(map[string]interface{})
		assert.Equal(mt.T, "admin@fundme.io", admin["email"])
		assert.Equal(mt.T, "system", admin["assignedBy"])
	})

	mt.Run("wrong code is unauthorized", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "fundme.admins", mtest.FirstBatch,
			adminDoc(mt.T, "admin@fundme.io", "CODE1234", true)))

		ac := NewAdminController(mt.Client.Database("fundme"))
		c, rec := newTestContext(http.MethodPost, "/api/admin/login",
			`{"email":"admin@fundme.io","adminCode":"WRONG999"}`)

		require.NoError(mt.T, ac.Login(c))
		assert.Equal(mt.T, http.StatusUnauthorized, rec.Code)

		body := decodeResponse(mt.T, rec)
		assert.Nil(mt.T, body["data"], "no admin payload may leak on failed login")
	})

	mt.Run("unknown or inactive admin is unauthorized", func(mt *mtest.T) {
		// Lookup filters on isActive, so an inactive record behaves like a
		// missing one
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "fundme.admins", mtest.FirstBatch))

		ac := NewAdminController(mt.Client.Database("fundme"))
		c, rec := newTestContext(http.MethodPost, "/api/admin/login",
			`{"email":"ghost@fundme.io","adminCode":"CODE1234"}`)

		require.NoError(mt.T, ac.Login(c))
		assert.Equal(mt.T, http.StatusUnauthorized, rec.Code)
	})

	mt.Run("missing fields fail validation", func(mt *mtest.T) {
		ac := NewAdminController(mt.Client.Database("fundme"))
		c, rec := newTestContext(http.MethodPost, "/api/admin/login", `{"email":"admin@fundme.io"}`)

		require.NoError(mt.T, ac.Login(c))
		assert.Equal(mt.T, http.StatusBadRequest, rec.Code)
	})
}
