package mocks

import (
	"context"
	"errors"

	models "github.com/albarakah/voyages/internal"
	"github.com/stretchr/testify/mock"
)

type MockNotificationClient struct {
	mock.Mock
}

func (m *MockNotificationClient) SendConfirmation(ctx context.Context, confirmation models.BookingConfirmation) error {
	args := m.Called(ctx, confirmation)
	return args.Error(0)
}

type MockNotificationClientOK struct{}

func (m *MockNotificationClientOK) SendConfirmation(ctx context.Context, confirmation models.BookingConfirmation) error {
	return nil
}

type MockNotificationClientError struct{}

func (m *MockNotificationClientError) SendConfirmation(ctx context.Context, confirmation models.BookingConfirmation) error {
	return errors.New("notification service error")
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	args := m.Called(ctx, topic, key, payload)
	return args.Error(0)
}

type MockTripCache struct {
	mock.Mock
}

func (m *MockTripCache) GetTrips(ctx context.Context) ([]models.Trip, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Trip), args.Error(1)
}

func (m *MockTripCache) SetTrips(ctx context.Context, trips []models.Trip) error {
	args := m.Called(ctx, trips)
	return args.Error(0)
}
