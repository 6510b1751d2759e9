package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hostelworks/hostel-admin-api/internal/middleware"
	"github.com/hostelworks/hostel-admin-api/internal/models"
)

type fakeRequestSrv struct {
	submitResp  *models.RoomRequest
	submitErr   error
	pending     []models.PendingRequest
	approveErr  error
	lastApprove struct {
		actorID   string
		requestID string
		roomID    string
	}
}

func (f *fakeRequestSrv) Submit(_ context.Context, requesterID string) (*models.RoomRequest, error) {
	return f.submitResp, f.submitErr
}

func (f *fakeRequestSrv) ListMine(context.Context, string) ([]models.RoomRequest, error) {
	return nil, nil
}

func (f *fakeRequestSrv) ListPending(context.Context) ([]models.PendingRequest, error) {
	return f.pending, nil
}

func (f *fakeRequestSrv) Approve(_ context.Context, actorID, requestID, roomID string) error {
	f.lastApprove.actorID = actorID
	f.lastApprove.requestID = requestID
	f.lastApprove.roomID = roomID
	return f.approveErr
}

func (f *fakeRequestSrv) Reject(context.Context, string, string) error {
	return nil
}

func TestRoomRequestHandlerSubmit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewRoomRequestHandler(&fakeRequestSrv{
		submitResp: &models.RoomRequest{ID: "req-1", Status: models.RequestPending},
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/room-requests", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u1", Role: models.RoleStudent})

	h.Submit(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRoomRequestHandlerApprove(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeRequestSrv{}
	h := NewRoomRequestHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/room-requests/req-1/approve", strings.NewReader(`{"room_id":"room-9"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "req-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})

	h.Approve(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "admin-1", srv.lastApprove.actorID)
	assert.Equal(t, "req-1", srv.lastApprove.requestID)
	assert.Equal(t, "room-9", srv.lastApprove.roomID)
}

func TestRoomRequestHandlerApproveMissingRoom(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewRoomRequestHandler(&fakeRequestSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/room-requests/req-1/approve", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "req-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})

	h.Approve(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoomRequestHandlerSubmitMissingClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewRoomRequestHandler(&fakeRequestSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/room-requests", nil)

	h.Submit(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
