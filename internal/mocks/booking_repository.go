package mocks

import (
	"context"

	models "github.com/albarakah/voyages/internal"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetTripByID(ctx context.Context, id uuid.UUID) (*models.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockBookingRepository) GetTrips(ctx context.Context) ([]models.Trip, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Trip), args.Error(1)
}

func (m *MockBookingRepository) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	args := m.Called(ctx, booking)
	switch ret := args.Get(0).(type) {
	case nil:
		return nil, args.Error(1)
	case func(context.Context, *models.Booking) *models.Booking:
		// passthrough variant so tests can observe the booking the
		// service actually built
		return ret(ctx, booking), args.Error(1)
	default:
		return ret.(*models.Booking), args.Error(1)
	}
}

func (m *MockBookingRepository) UpdatePaymentStatus(ctx context.Context, reference string, status models.PaymentStatus) error {
	args := m.Called(ctx, reference, status)
	return args.Error(0)
}

func (m *MockBookingRepository) GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
