package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	models "github.com/albarakah/voyages/internal"
	"github.com/albarakah/voyages/internal/api"
	"github.com/albarakah/voyages/internal/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validRequestBody() []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"trip_id":         uuid.New(),
		"first_name":      "Amina",
		"last_name":       "Benali",
		"email":           "amina@example.com",
		"phone":           "+33612345678",
		"address":         "12 rue de la Paix, Paris",
		"passport_number": "19AB12345",
		"meal_preference": "halal",
		"card_number":     "4111111111111111",
		"card_expiry":     "12/27",
		"card_cvc":        "123",
		"card_name":       "AMINA BENALI",
	})
	return body
}

func TestCreateBookingHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(mocks.MockBookingService)
		booking := &models.Booking{
			ID:            uuid.New(),
			Reference:     "BK-A1B2C3D4",
			TotalPrice:    3000,
			PaymentStatus: models.StatusCompleted,
		}
		svc.On("CreateBooking", mock.Anything, mock.AnythingOfType("*models.BookingRequest")).
			Return(booking, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/bookings", bytes.NewReader(validRequestBody()))
		w := httptest.NewRecorder()
		api.BookingHandler(svc)(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var got models.Booking
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "BK-A1B2C3D4", got.Reference)
		assert.Equal(t, models.StatusCompleted, got.PaymentStatus)
	})

	t.Run("stale trip returns 404", func(t *testing.T) {
		svc := new(mocks.MockBookingService)
		svc.On("CreateBooking", mock.Anything, mock.AnythingOfType("*models.BookingRequest")).
			Return(nil, models.ErrTripNotFound)

		req := httptest.NewRequest(http.MethodPost, "/v1/bookings", bytes.NewReader(validRequestBody()))
		w := httptest.NewRecorder()
		api.BookingHandler(svc)(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("persistence failure surfaces a generic retry message", func(t *testing.T) {
		svc := new(mocks.MockBookingService)
		svc.On("CreateBooking", mock.Anything, mock.AnythingOfType("*models.BookingRequest")).
			Return(nil, assert.AnError)

		req := httptest.NewRequest(http.MethodPost, "/v1/bookings", bytes.NewReader(validRequestBody()))
		w := httptest.NewRecorder()
		api.BookingHandler(svc)(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "please try again")
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	})

	t.Run("invalid payload returns 400 before the service runs", func(t *testing.T) {
		svc := new(mocks.MockBookingService)

		var payload map[string]interface{}
		require.NoError(t, json.Unmarshal(validRequestBody(), &payload))
		payload["card_number"] = "123"
		body, _ := json.Marshal(payload)

		req := httptest.NewRequest(http.MethodPost, "/v1/bookings", bytes.NewReader(body))
		w := httptest.NewRecorder()
		api.BookingHandler(svc)(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	})

	t.Run("malformed json returns 400", func(t *testing.T) {
		svc := new(mocks.MockBookingService)

		req := httptest.NewRequest(http.MethodPost, "/v1/bookings", bytes.NewReader([]byte("{")))
		w := httptest.NewRecorder()
		api.BookingHandler(svc)(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetBookingHandler(t *testing.T) {
	t.Run("found by reference", func(t *testing.T) {
		svc := new(mocks.MockBookingService)
		booking := &models.Booking{Reference: "BK-A1B2C3D4", PaymentStatus: models.StatusCompleted}
		svc.On("GetBookingByReference", mock.Anything, "BK-A1B2C3D4").Return(booking, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/bookings?ref=BK-A1B2C3D4", nil)
		w := httptest.NewRecorder()
		api.BookingHandler(svc)(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing ref parameter", func(t *testing.T) {
		svc := new(mocks.MockBookingService)

		req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
		w := httptest.NewRecorder()
		api.BookingHandler(svc)(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown reference", func(t *testing.T) {
		svc := new(mocks.MockBookingService)
		svc.On("GetBookingByReference", mock.Anything, "BK-UNKNOWN1").Return(nil, models.ErrBookingNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/bookings?ref=BK-UNKNOWN1", nil)
		w := httptest.NewRecorder()
		api.BookingHandler(svc)(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTripsHandler(t *testing.T) {
	svc := new(mocks.MockBookingService)
	trips := []models.Trip{{
		ID:            uuid.New(),
		Name:          "Omra Ramadan",
		Price:         3000,
		DepartureDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}}
	svc.On("ListTrips", mock.Anything).Return(trips, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/trips", nil)
	w := httptest.NewRecorder()
	api.TripsHandler(svc)(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Omra Ramadan")
}

func TestContactHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(mocks.MockBookingService)
		svc.On("SubmitContactMessage", mock.Anything, mock.AnythingOfType("*models.ContactMessage")).Return(nil)

		body, _ := json.Marshal(models.ContactMessage{
			Name: "Karim", Email: "karim@example.com", Message: "Bonjour",
		})
		req := httptest.NewRequest(http.MethodPost, "/v1/contact", bytes.NewReader(body))
		w := httptest.NewRecorder()
		api.ContactHandler(svc)(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("missing message returns 400", func(t *testing.T) {
		svc := new(mocks.MockBookingService)

		body, _ := json.Marshal(models.ContactMessage{Name: "Karim", Email: "karim@example.com"})
		req := httptest.NewRequest(http.MethodPost, "/v1/contact", bytes.NewReader(body))
		w := httptest.NewRecorder()
		api.ContactHandler(svc)(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "SubmitContactMessage", mock.Anything, mock.Anything)
	})
}
