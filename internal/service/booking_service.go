package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	models "github.com/albarakah/voyages/internal"
	"github.com/albarakah/voyages/internal/ports"
	"github.com/google/uuid"
)

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type bookingService struct {
	repo       ports.BookingRepository
	notifier   ports.NotificationClient
	cache      ports.TripCache
	publisher  ports.EventPublisher
	retryTopic string
}

type Option func(*bookingService)

func WithTripCache(cache ports.TripCache) Option {
	return func(s *bookingService) {
		s.cache = cache
	}
}

func WithRetryPublisher(publisher ports.EventPublisher, topic string) Option {
	return func(s *bookingService) {
		s.publisher = publisher
		s.retryTopic = topic
	}
}

func NewBookingService(repo ports.BookingRepository, notifier ports.NotificationClient, opts ...Option) *bookingService {
	s := &bookingService{
		repo:     repo,
		notifier: notifier,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBooking runs the whole submission sequence: re-fetch the trip,
// upsert the customer and insert the pending booking in one transaction,
// attempt the confirmation dispatch, then finalise the payment status.
// No step is retried here; a dispatch failure is logged and parked on the
// retry topic without blocking completion.
func (s *bookingService) CreateBooking(ctx context.Context, request *models.BookingRequest) (*models.Booking, error) {
	// defensive re-check against stale listings
	trip, err := s.repo.GetTripByID(ctx, request.TripID)
	if err != nil {
		if errors.Is(err, models.ErrTripNotFound) {
			return nil, models.ErrTripNotFound
		}
		return nil, fmt.Errorf("fetching trip: %w", err)
	}

	booking := &models.Booking{
		ID:        uuid.New(),
		Reference: NewBookingReference(),
		Customer: models.Customer{
			ID:             uuid.New(),
			FirstName:      request.FirstName,
			LastName:       request.LastName,
			Email:          request.Email,
			Phone:          request.Phone,
			Address:        request.Address,
			PassportNumber: request.PassportNumber,
		},
		Trip:            *trip,
		TravelInsurance: request.TravelInsurance,
		MealPreference:  request.MealPreference,
		SpecialRequests: request.SpecialRequests,
		TotalPrice:      models.TotalPrice(trip.Price, request.TravelInsurance),
		PaymentStatus:   models.StatusPending,
		PaymentID:       newPaymentID(),
	}

	saved, err := s.repo.CreateBooking(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("error creating booking: %w", err)
	}

	confirmation := saved.Confirmation()
	if err := s.notifier.SendConfirmation(ctx, confirmation); err != nil {
		log.Printf("confirmation dispatch failed for %s: %v", saved.Reference, err)
		s.publishRetry(ctx, confirmation)
	}

	if err := s.repo.UpdatePaymentStatus(ctx, saved.Reference, models.StatusCompleted); err != nil {
		return nil, fmt.Errorf("finalising booking %s: %w", saved.Reference, err)
	}
	saved.PaymentStatus = models.StatusCompleted

	return saved, nil
}

func (s *bookingService) GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error) {
	return s.repo.GetBookingByReference(ctx, reference)
}

// ListTrips serves the catalog from the cache when possible and falls
// through to the database on a miss. Cache errors never fail the listing.
func (s *bookingService) ListTrips(ctx context.Context) ([]models.Trip, error) {
	if s.cache != nil {
		trips, err := s.cache.GetTrips(ctx)
		if err != nil {
			log.Printf("trips cache read failed: %v", err)
		} else if trips != nil {
			return trips, nil
		}
	}

	trips, err := s.repo.GetTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching trips: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetTrips(ctx, trips); err != nil {
			log.Printf("trips cache write failed: %v", err)
		}
	}
	return trips, nil
}

func (s *bookingService) SubmitContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	if err := s.repo.CreateContactMessage(ctx, msg); err != nil {
		return fmt.Errorf("error saving contact message: %w", err)
	}
	return nil
}

func (s *bookingService) publishRetry(ctx context.Context, confirmation models.BookingConfirmation) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, s.retryTopic, confirmation.BookingReference, confirmation); err != nil {
		log.Printf("publishing confirmation retry for %s: %v", confirmation.BookingReference, err)
	}
}

// NewBookingReference returns "BK-" followed by 8 characters drawn
// uniformly from [A-Z0-9]. References are generated without a database
// round trip; a collision surfaces as a unique-constraint insert failure.
func NewBookingReference() string {
	buf := make([]byte, 0, 11)
	buf = append(buf, "BK-"...)
	max := big.NewInt(int64(len(referenceAlphabet)))
	for i := 0; i < 8; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(fmt.Sprintf("reading random source: %v", err))
		}
		buf = append(buf, referenceAlphabet[n.Int64()])
	}
	return string(buf)
}

// newPaymentID mints the placeholder correlation id recorded in place of
// a real payment-gateway transaction.
func newPaymentID() string {
	return fmt.Sprintf("PAY-%d", time.Now().UnixMilli())
}
