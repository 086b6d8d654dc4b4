package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	bookingserrors "roomly/internal/bookings/errors"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

type mockBookingService struct {
	createFn   func(ctx context.Context, booking *model.Booking) error
	getByIDFn  func(ctx context.Context, id string) (*model.Booking, error)
	getAllFn   func(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
}

func (m *mockBookingService) Create(ctx context.Context, booking *model.Booking) error {
	return m.createFn(ctx, booking)
}

func (m *mockBookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockBookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	return m.getAllFn(ctx, limit, offset)
}

func newTestRouter(svc *mockBookingService) *httprouter.Router {
	log := logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
	router := httprouter.New()
	NewBookingHandler(svc, log).RegisterRoutes(router)
	return router
}

const createBody = `{
	"userId": "665f1f77bcf86cd799439011",
	"roomId": "665f1f77bcf86cd799439022",
	"checkInDate": "2024-06-01",
	"checkOutDate": "2024-06-05",
	"guests": 2,
	"totalPrice": 480
}`

func decodeMessage(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return payload
}

func TestCreateBookingEndpoint(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(_ context.Context, booking *model.Booking) error {
			booking.ID = "665f1f77bcf86cd799439033"
			return nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(createBody))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	var resp CreatedResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Message != bookingserrors.MsgBookingPlaced {
		t.Errorf("message = %q, want %q", resp.Message, bookingserrors.MsgBookingPlaced)
	}
	if resp.Booking == nil || resp.Booking.ID != "665f1f77bcf86cd799439033" {
		t.Errorf("unexpected booking in response: %+v", resp.Booking)
	}
	if resp.Booking.CheckInDate.String() != "2024-06-01" {
		t.Errorf("checkInDate = %q, want %q", resp.Booking.CheckInDate.String(), "2024-06-01")
	}
}

func TestCreateBookingEndpointErrors(t *testing.T) {
	tests := []struct {
		name        string
		serviceErr  error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "unknown user",
			serviceErr:  apperrors.New(apperrors.CodeNotFound, bookingserrors.MsgUserNotFound, http.StatusNotFound),
			wantStatus:  http.StatusNotFound,
			wantMessage: bookingserrors.MsgUserNotFound,
		},
		{
			name:        "unknown room",
			serviceErr:  apperrors.New(apperrors.CodeNotFound, bookingserrors.MsgRoomNotFound, http.StatusNotFound),
			wantStatus:  http.StatusNotFound,
			wantMessage: bookingserrors.MsgRoomNotFound,
		},
		{
			name:        "dates conflict",
			serviceErr:  apperrors.New(apperrors.CodeConflict, bookingserrors.MsgRoomConflict, http.StatusBadRequest),
			wantStatus:  http.StatusBadRequest,
			wantMessage: bookingserrors.MsgRoomConflict,
		},
		{
			name:        "storage failure",
			serviceErr:  apperrors.Internal("Failed to create booking", io.ErrUnexpectedEOF),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Failed to create booking",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				createFn: func(context.Context, *model.Booking) error { return tt.serviceErr },
			}
			router := newTestRouter(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(createBody))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			payload := decodeMessage(t, rec.Body)
			if payload["message"] != tt.wantMessage {
				t.Errorf("message = %q, want %q", payload["message"], tt.wantMessage)
			}
		})
	}
}

func TestCreateBookingEndpointMalformedBody(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(context.Context, *model.Booking) error {
			t.Error("service should not be called for a malformed body")
			return nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{"userId":`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	payload := decodeMessage(t, rec.Body)
	if payload["message"] != "Invalid request body" {
		t.Errorf("message = %q, want %q", payload["message"], "Invalid request body")
	}
}

func TestGetBookingByIDEndpoint(t *testing.T) {
	checkIn, _ := model.ParseDate("2024-06-01")
	checkOut, _ := model.ParseDate("2024-06-05")
	svc := &mockBookingService{
		getByIDFn: func(_ context.Context, id string) (*model.Booking, error) {
			return &model.Booking{
				ID:           id,
				UserID:       "665f1f77bcf86cd799439011",
				RoomID:       "665f1f77bcf86cd799439022",
				CheckInDate:  checkIn,
				CheckOutDate: checkOut,
			}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/id/665f1f77bcf86cd799439033", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Data *model.Booking `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Data == nil || resp.Data.ID != "665f1f77bcf86cd799439033" {
		t.Errorf("unexpected booking: %+v", resp.Data)
	}
}

func TestGetAllBookingsEndpoint(t *testing.T) {
	svc := &mockBookingService{
		getAllFn: func(_ context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
			if limit != 100 || offset != 0 {
				t.Errorf("limit, offset = %d, %d; want defaults 100, 0", limit, offset)
			}
			return []*model.Booking{{ID: "665f1f77bcf86cd799439033"}}, 1, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Data       []*model.Booking `json:"data"`
		TotalCount int64            `json:"total_count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.TotalCount != 1 || len(resp.Data) != 1 {
		t.Errorf("total = %d, len = %d; want 1, 1", resp.TotalCount, len(resp.Data))
	}
}
