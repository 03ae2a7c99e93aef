package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TravelInsurancePrice is the flat supplement added to the trip price
// when the traveller opts in to the complementary insurance.
const TravelInsurancePrice = 150.0

var (
	ErrTripNotFound    = errors.New("trip not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrInvalidUUID     = errors.New("invalid uuid")
)

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusCompleted PaymentStatus = "completed"
	// StatusFailed is declared in the schema but the orchestration never
	// assigns it; failed dispatches go to the retry topic instead.
	StatusFailed PaymentStatus = "failed"
)

type MealPreference string

const (
	MealHalal      MealPreference = "halal"
	MealVegetarian MealPreference = "vegetarian"
	MealNoPork     MealPreference = "no-pork"
	MealSpecial    MealPreference = "special"
)

type Trip struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	AgencyName     string    `json:"agency_name"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	DepartureDate  time.Time `json:"departure_date"`
	ReturnDate     time.Time `json:"return_date"`
	AvailableSpots int       `json:"available_spots"`
	ImageURL       string    `json:"image_url,omitempty"`
	Includes       []string  `json:"includes,omitempty"`
}

type Customer struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	PassportNumber string    `json:"passport_number"`
}

func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

type Booking struct {
	ID              uuid.UUID      `json:"id"`
	Reference       string         `json:"booking_reference"`
	Customer        Customer       `json:"customer"`
	Trip            Trip           `json:"trip"`
	TravelInsurance bool           `json:"travel_insurance"`
	MealPreference  MealPreference `json:"meal_preference"`
	SpecialRequests string         `json:"special_requests,omitempty"`
	TotalPrice      float64        `json:"total_price"`
	PaymentStatus   PaymentStatus  `json:"payment_status"`
	PaymentID       string         `json:"payment_id,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// BookingRequest is the wizard submission payload. Card details are
// collected for the simulated charge step and never persisted.
type BookingRequest struct {
	TripID          uuid.UUID      `json:"trip_id" validate:"required"`
	FirstName       string         `json:"first_name" validate:"required,max=50"`
	LastName        string         `json:"last_name" validate:"required,max=50"`
	Email           string         `json:"email" validate:"required,email"`
	Phone           string         `json:"phone" validate:"required"`
	Address         string         `json:"address" validate:"required"`
	PassportNumber  string         `json:"passport_number" validate:"required"`
	TravelInsurance bool           `json:"travel_insurance"`
	MealPreference  MealPreference `json:"meal_preference" validate:"required,meal_preference"`
	SpecialRequests string         `json:"special_requests"`
	CardNumber      string         `json:"card_number" validate:"required,card_number"`
	CardExpiry      string         `json:"card_expiry" validate:"required,card_expiry"`
	CardCvc         string         `json:"card_cvc" validate:"required,card_cvc"`
	CardName        string         `json:"card_name" validate:"required"`
}

// BookingConfirmation is the payload sent to the external notification
// collaborator, which renders and delivers the confirmation email.
type BookingConfirmation struct {
	BookingReference string    `json:"bookingReference"`
	CustomerEmail    string    `json:"customerEmail"`
	CustomerName     string    `json:"customerName"`
	TripName         string    `json:"tripName"`
	DepartureDate    time.Time `json:"departureDate"`
	ReturnDate       time.Time `json:"returnDate"`
	TotalPrice       float64   `json:"totalPrice"`
	TravelInsurance  bool      `json:"travelInsurance"`
	MealPreference   string    `json:"mealPreference"`
}

func (b *Booking) Confirmation() BookingConfirmation {
	return BookingConfirmation{
		BookingReference: b.Reference,
		CustomerEmail:    b.Customer.Email,
		CustomerName:     b.Customer.FullName(),
		TripName:         b.Trip.Name,
		DepartureDate:    b.Trip.DepartureDate,
		ReturnDate:       b.Trip.ReturnDate,
		TotalPrice:       b.TotalPrice,
		TravelInsurance:  b.TravelInsurance,
		MealPreference:   string(b.MealPreference),
	}
}

// TotalPrice is the authoritative price formula, recomputed server-side
// at write time regardless of what the client submitted.
func TotalPrice(tripPrice float64, travelInsurance bool) float64 {
	if travelInsurance {
		return tripPrice + TravelInsurancePrice
	}
	return tripPrice
}

type ContactMessage struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name" validate:"required,max=100"`
	Email   string    `json:"email" validate:"required,email"`
	Phone   string    `json:"phone"`
	Message string    `json:"message" validate:"required"`
}
