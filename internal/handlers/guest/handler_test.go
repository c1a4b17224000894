package guest_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	otelMocks "hotel/infras/otel/mocks"
	bookingDto "hotel/internal/domains/booking/model/dto"
	bookingMocks "hotel/internal/domains/booking/service/mocks"
	"hotel/internal/domains/guest/model"
	"hotel/internal/domains/guest/model/dto"
	guestMocks "hotel/internal/domains/guest/service/mocks"
	roomDto "hotel/internal/domains/room/model/dto"
	"hotel/internal/handlers/guest"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const guestID = "64b7f0c2a1b2c3d4e5f60719"

type body struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	Data       json.RawMessage  `json:"data"`
	Pagination *gDto.Pagination `json:"pagination"`
}

type fixture struct {
	handler  http.Handler
	guests   *guestMocks.MockGuest
	bookings *bookingMocks.MockBooking
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		guests:   guestMocks.NewMockGuest(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
	}

	handler := guest.New(f.guests, f.bookings, otelMocks.NewOtel())

	r := chi.NewRouter()
	r.Route("/api", handler.Router)
	f.handler = r

	return f
}

func (f fixture) serve(t *testing.T, method, target, payload string) (int, body) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	var res body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	return rec.Code, res
}

func TestGetGuests_IgnoresStatus(t *testing.T) {
	f := newFixture(t)

	f.guests.EXPECT().
		GetAll(gomock.Any(), gDto.QueryParams{Page: 1, Limit: 10}, gomock.Any()).
		Return(dto.GetGuestsResponse{
			Guests:     []dto.GuestResponse{},
			Pagination: &gDto.Pagination{Total: 0, Page: 1, Limit: 10, Pages: 0},
		}, nil)

	code, res := f.serve(t, http.MethodGet, "/api/guests?status=vip", "")

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, res.Success)
	assert.JSONEq(t, `[]`, string(res.Data))
}

func TestCreateGuest(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		setup    func(f fixture)
		wantCode int
		wantMsg  string
	}{
		{
			name:    "created",
			payload: `{"name":"John Doe","email":"John@Example.com","phone":"123","address":"Main St"}`,
			setup: func(f fixture) {
				f.guests.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(dto.GuestResponse{ID: guestID, Email: "john@example.com"}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name:     "missing fields",
			payload:  `{"name":"John Doe"}`,
			setup:    func(fixture) {},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Missing required fields: email, phone, address",
		},
		{
			name:     "invalid email",
			payload:  `{"name":"John Doe","email":"john","phone":"123","address":"Main St"}`,
			setup:    func(fixture) {},
			wantCode: http.StatusBadRequest,
			wantMsg:  model.MessageInvalidEmail,
		},
		{
			name:    "duplicate email",
			payload: `{"name":"John Doe","email":"john@example.com","phone":"123","address":"Main St"}`,
			setup: func(f fixture) {
				f.guests.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(dto.GuestResponse{}, failure.Conflict("Email john@example.com already exists"))
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Email john@example.com already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			code, res := f.serve(t, http.MethodPost, "/api/guests", tt.payload)

			assert.Equal(t, tt.wantCode, code)

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, res.Message)
			}
		})
	}
}

func TestGetGuestBookings(t *testing.T) {
	f := newFixture(t)

	checkIn := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	f.bookings.EXPECT().GetByGuest(gomock.Any(), guestID).Return([]bookingDto.GuestBooking{
		{
			ID:       "64b7f0c2a1b2c3d4e5f60720",
			GuestID:  guestID,
			RoomID:   &roomDto.RoomResponse{ID: "64b7f0c2a1b2c3d4e5f60718", Number: "101"},
			CheckIn:  checkIn,
			CheckOut: checkIn.AddDate(0, 0, 2),
			Status:   "pending",
		},
	}, nil)

	code, res := f.serve(t, http.MethodGet, "/api/guests/"+guestID+"/bookings", "")

	assert.Equal(t, http.StatusOK, code)

	var bookings []bookingDto.GuestBooking
	require.NoError(t, json.Unmarshal(res.Data, &bookings))
	require.Len(t, bookings, 1)
	assert.Equal(t, guestID, bookings[0].GuestID)
	assert.Equal(t, "101", bookings[0].RoomID.Number)
}

func TestGetGuestBookings_Empty(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().GetByGuest(gomock.Any(), guestID).Return([]bookingDto.GuestBooking{}, nil)

	code, res := f.serve(t, http.MethodGet, "/api/guests/"+guestID+"/bookings", "")

	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(res.Data))
}

func TestDeleteGuest_NotFound(t *testing.T) {
	f := newFixture(t)

	f.guests.EXPECT().Delete(gomock.Any(), guestID).Return(dto.GuestResponse{}, failure.NotFound(model.MessageNotFound))

	code, res := f.serve(t, http.MethodDelete, "/api/guests/"+guestID, "")

	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, res.Success)
	assert.Equal(t, model.MessageNotFound, res.Message)
}
