package service_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	models "github.com/albarakah/voyages/internal"
	"github.com/albarakah/voyages/internal/mocks"
	"github.com/albarakah/voyages/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var referencePattern = regexp.MustCompile(`^BK-[A-Z0-9]{8}$`)

func validTrip(price float64) *models.Trip {
	return &models.Trip{
		ID:             uuid.New(),
		Name:           "Omra Ramadan",
		AgencyName:     "Al-Barakah Voyages",
		Price:          price,
		DepartureDate:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		ReturnDate:     time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC),
		AvailableSpots: 20,
	}
}

func validRequest(tripID uuid.UUID) *models.BookingRequest {
	return &models.BookingRequest{
		TripID:         tripID,
		FirstName:      "Amina",
		LastName:       "Benali",
		Email:          "amina@example.com",
		Phone:          "+33612345678",
		Address:        "12 rue de la Paix, Paris",
		PassportNumber: "19AB12345",
		MealPreference: models.MealHalal,
		CardNumber:     "4111111111111111",
		CardExpiry:     "12/27",
		CardCvc:        "123",
		CardName:       "AMINA BENALI",
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("successful booking without insurance", func(t *testing.T) {
		trip := validTrip(3000)
		request := validRequest(trip.ID)

		mockRepo := new(mocks.MockBookingRepository)
		mockNotifier := new(mocks.MockNotificationClient)
		svc := service.NewBookingService(mockRepo, mockNotifier)

		mockRepo.On("GetTripByID", ctx, trip.ID).Return(trip, nil)
		mockRepo.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).
			Return(func(_ context.Context, b *models.Booking) *models.Booking { return b }, nil)
		mockNotifier.On("SendConfirmation", ctx, mock.AnythingOfType("models.BookingConfirmation")).Return(nil)
		mockRepo.On("UpdatePaymentStatus", ctx, mock.AnythingOfType("string"), models.StatusCompleted).Return(nil)

		booking, err := svc.CreateBooking(ctx, request)

		require.NoError(t, err)
		require.NotNil(t, booking)
		assert.Regexp(t, referencePattern, booking.Reference)
		assert.Equal(t, 3000.0, booking.TotalPrice)
		assert.Equal(t, models.StatusCompleted, booking.PaymentStatus)
		assert.Equal(t, "amina@example.com", booking.Customer.Email)
		assert.Equal(t, models.MealHalal, booking.MealPreference)
		assert.NotEmpty(t, booking.PaymentID)
		mockRepo.AssertExpectations(t)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("insurance adds 150 to the total", func(t *testing.T) {
		trip := validTrip(3000)
		request := validRequest(trip.ID)
		request.TravelInsurance = true

		mockRepo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockRepo, &mocks.MockNotificationClientOK{})

		// the service finalises the booking in place after persisting it,
		// so snapshot the status at persist time rather than the pointer
		var persistedStatus models.PaymentStatus
		mockRepo.On("GetTripByID", ctx, trip.ID).Return(trip, nil)
		mockRepo.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).
			Run(func(args mock.Arguments) {
				persistedStatus = args.Get(1).(*models.Booking).PaymentStatus
			}).
			Return(func(_ context.Context, b *models.Booking) *models.Booking { return b }, nil)
		mockRepo.On("UpdatePaymentStatus", ctx, mock.AnythingOfType("string"), models.StatusCompleted).Return(nil)

		booking, err := svc.CreateBooking(ctx, request)

		require.NoError(t, err)
		assert.Equal(t, 3150.0, booking.TotalPrice)
		assert.Equal(t, models.StatusPending, persistedStatus)
		mockRepo.AssertExpectations(t)
	})

	t.Run("trip deleted between listing and submission", func(t *testing.T) {
		trip := validTrip(3000)
		request := validRequest(trip.ID)

		mockRepo := new(mocks.MockBookingRepository)
		mockNotifier := new(mocks.MockNotificationClient)
		svc := service.NewBookingService(mockRepo, mockNotifier)

		mockRepo.On("GetTripByID", ctx, trip.ID).Return(nil, models.ErrTripNotFound)

		booking, err := svc.CreateBooking(ctx, request)

		assert.ErrorIs(t, err, models.ErrTripNotFound)
		assert.Nil(t, booking)
		// no write side effects before the trip check passes
		mockRepo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything)
		mockNotifier.AssertNotCalled(t, "SendConfirmation", mock.Anything, mock.Anything)
	})

	t.Run("persistence failure aborts the flow", func(t *testing.T) {
		trip := validTrip(3000)
		request := validRequest(trip.ID)

		mockRepo := new(mocks.MockBookingRepository)
		mockNotifier := new(mocks.MockNotificationClient)
		svc := service.NewBookingService(mockRepo, mockNotifier)

		mockRepo.On("GetTripByID", ctx, trip.ID).Return(trip, nil)
		mockRepo.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).Return(nil, assert.AnError)

		booking, err := svc.CreateBooking(ctx, request)

		assert.Error(t, err)
		assert.Nil(t, booking)
		assert.Contains(t, err.Error(), "error creating booking")
		mockNotifier.AssertNotCalled(t, "SendConfirmation", mock.Anything, mock.Anything)
	})

	t.Run("notification failure does not block completion", func(t *testing.T) {
		trip := validTrip(3000)
		request := validRequest(trip.ID)

		mockRepo := new(mocks.MockBookingRepository)
		mockPublisher := new(mocks.MockEventPublisher)
		svc := service.NewBookingService(
			mockRepo,
			&mocks.MockNotificationClientError{},
			service.WithRetryPublisher(mockPublisher, "confirmations-retry"),
		)

		mockRepo.On("GetTripByID", ctx, trip.ID).Return(trip, nil)
		mockRepo.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).
			Return(func(_ context.Context, b *models.Booking) *models.Booking { return b }, nil)
		mockRepo.On("UpdatePaymentStatus", ctx, mock.AnythingOfType("string"), models.StatusCompleted).Return(nil)
		mockPublisher.On("Publish", ctx, "confirmations-retry", mock.AnythingOfType("string"),
			mock.AnythingOfType("models.BookingConfirmation")).Return(nil)

		booking, err := svc.CreateBooking(ctx, request)

		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, booking.PaymentStatus)
		mockPublisher.AssertExpectations(t)
	})

	t.Run("dispatch success publishes nothing", func(t *testing.T) {
		trip := validTrip(3000)
		request := validRequest(trip.ID)

		mockRepo := new(mocks.MockBookingRepository)
		mockPublisher := new(mocks.MockEventPublisher)
		svc := service.NewBookingService(
			mockRepo,
			&mocks.MockNotificationClientOK{},
			service.WithRetryPublisher(mockPublisher, "confirmations-retry"),
		)

		mockRepo.On("GetTripByID", ctx, trip.ID).Return(trip, nil)
		mockRepo.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).
			Return(func(_ context.Context, b *models.Booking) *models.Booking { return b }, nil)
		mockRepo.On("UpdatePaymentStatus", ctx, mock.AnythingOfType("string"), models.StatusCompleted).Return(nil)

		_, err := svc.CreateBooking(ctx, request)

		require.NoError(t, err)
		mockPublisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("status update failure surfaces an error", func(t *testing.T) {
		trip := validTrip(3000)
		request := validRequest(trip.ID)

		mockRepo := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockRepo, &mocks.MockNotificationClientOK{})

		mockRepo.On("GetTripByID", ctx, trip.ID).Return(trip, nil)
		mockRepo.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).
			Return(func(_ context.Context, b *models.Booking) *models.Booking { return b }, nil)
		mockRepo.On("UpdatePaymentStatus", ctx, mock.AnythingOfType("string"), models.StatusCompleted).Return(assert.AnError)

		booking, err := svc.CreateBooking(ctx, request)

		assert.Error(t, err)
		assert.Nil(t, booking)
		assert.Contains(t, err.Error(), "finalising booking")
	})
}

func TestListTrips(t *testing.T) {
	ctx := context.Background()
	trips := []models.Trip{*validTrip(2500), *validTrip(3000)}

	t.Run("cache hit skips the repository", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		mockCache := new(mocks.MockTripCache)
		svc := service.NewBookingService(mockRepo, &mocks.MockNotificationClientOK{},
			service.WithTripCache(mockCache))

		mockCache.On("GetTrips", ctx).Return(trips, nil)

		got, err := svc.ListTrips(ctx)

		require.NoError(t, err)
		assert.Equal(t, trips, got)
		mockRepo.AssertNotCalled(t, "GetTrips", mock.Anything)
	})

	t.Run("cache miss falls through and repopulates", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		mockCache := new(mocks.MockTripCache)
		svc := service.NewBookingService(mockRepo, &mocks.MockNotificationClientOK{},
			service.WithTripCache(mockCache))

		mockCache.On("GetTrips", ctx).Return(nil, nil)
		mockRepo.On("GetTrips", ctx).Return(trips, nil)
		mockCache.On("SetTrips", ctx, trips).Return(nil)

		got, err := svc.ListTrips(ctx)

		require.NoError(t, err)
		assert.Equal(t, trips, got)
		mockCache.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
	})

	t.Run("cached empty catalog still counts as a hit", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		mockCache := new(mocks.MockTripCache)
		svc := service.NewBookingService(mockRepo, &mocks.MockNotificationClientOK{},
			service.WithTripCache(mockCache))

		mockCache.On("GetTrips", ctx).Return([]models.Trip{}, nil)

		got, err := svc.ListTrips(ctx)

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		mockRepo.AssertNotCalled(t, "GetTrips", mock.Anything)
	})

	t.Run("cache failure is non-fatal", func(t *testing.T) {
		mockRepo := new(mocks.MockBookingRepository)
		mockCache := new(mocks.MockTripCache)
		svc := service.NewBookingService(mockRepo, &mocks.MockNotificationClientOK{},
			service.WithTripCache(mockCache))

		mockCache.On("GetTrips", ctx).Return(nil, assert.AnError)
		mockRepo.On("GetTrips", ctx).Return(trips, nil)
		mockCache.On("SetTrips", ctx, trips).Return(assert.AnError)

		got, err := svc.ListTrips(ctx)

		require.NoError(t, err)
		assert.Equal(t, trips, got)
	})
}

func TestNewBookingReference(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		ref := service.NewBookingReference()
		assert.Regexp(t, referencePattern, ref)
		seen[ref] = true
	}
	// no collisions expected over a small sample of a 36^8 space
	assert.Len(t, seen, 1000)
}
