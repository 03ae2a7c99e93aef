package ports

import (
	"context"

	models "github.com/albarakah/voyages/internal"
	"github.com/google/uuid"
)

type BookingRepository interface {
	GetTripByID(ctx context.Context, id uuid.UUID) (*models.Trip, error)
	GetTrips(ctx context.Context) ([]models.Trip, error)
	CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	UpdatePaymentStatus(ctx context.Context, reference string, status models.PaymentStatus) error
	GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error)
	CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, request *models.BookingRequest) (*models.Booking, error)
	GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error)
	ListTrips(ctx context.Context) ([]models.Trip, error)
	SubmitContactMessage(ctx context.Context, msg *models.ContactMessage) error
}

// NotificationClient talks to the external collaborator that renders and
// delivers the booking confirmation.
type NotificationClient interface {
	SendConfirmation(ctx context.Context, confirmation models.BookingConfirmation) error
}

// EventPublisher is the out-of-band channel failed dispatches are parked
// on for the retry worker.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

type TripCache interface {
	GetTrips(ctx context.Context) ([]models.Trip, error)
	SetTrips(ctx context.Context, trips []models.Trip) error
}
