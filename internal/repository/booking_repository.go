package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	models "github.com/albarakah/voyages/internal"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBConn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

type BookingRepository struct {
	db DBConn
}

func NewBookingRepository(db DBConn) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) GetTripByID(ctx context.Context, id uuid.UUID) (*models.Trip, error) {
	query := `
        SELECT id, name, agency_name, description, price,
               departure_date, return_date, available_spots, image_url, includes
        FROM trips
        WHERE id = $1
    `
	var trip models.Trip
	var imageURL *string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&trip.ID, &trip.Name, &trip.AgencyName, &trip.Description, &trip.Price,
		&trip.DepartureDate, &trip.ReturnDate, &trip.AvailableSpots, &imageURL, &trip.Includes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrTripNotFound
		}
		return nil, err
	}
	if imageURL != nil {
		trip.ImageURL = *imageURL
	}
	return &trip, nil
}

func (r *BookingRepository) GetTrips(ctx context.Context) ([]models.Trip, error) {
	query := `
        SELECT id, name, agency_name, description, price,
               departure_date, return_date, available_spots, image_url, includes
        FROM trips
        ORDER BY departure_date
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		var trip models.Trip
		var imageURL *string
		err := rows.Scan(
			&trip.ID, &trip.Name, &trip.AgencyName, &trip.Description, &trip.Price,
			&trip.DepartureDate, &trip.ReturnDate, &trip.AvailableSpots, &imageURL, &trip.Includes,
		)
		if err != nil {
			return nil, err
		}
		if imageURL != nil {
			trip.ImageURL = *imageURL
		}
		trips = append(trips, trip)
	}
	return trips, rows.Err()
}

// CreateBooking runs the customer upsert and the booking insert in a
// single transaction so a booking-insert failure leaves no orphaned
// customer mutation behind.
func (r *BookingRepository) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err = r.upsertCustomerTx(ctx, tx, &booking.Customer); err != nil {
		return nil, err
	}

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.CreatedAt = time.Now().UTC()
	if err = r.insertBookingTx(ctx, tx, booking); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return booking, nil
}

// upsertCustomerTx deduplicates on email in a single atomic statement:
// a second booking from the same address overwrites every contact field
// (last-write-wins) and keeps the original customer id.
func (r *BookingRepository) upsertCustomerTx(ctx context.Context, tx pgx.Tx, customer *models.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	query := `
        INSERT INTO customers (id, first_name, last_name, email, phone, address, passport_number)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (email) DO UPDATE SET
            first_name = EXCLUDED.first_name,
            last_name = EXCLUDED.last_name,
            phone = EXCLUDED.phone,
            address = EXCLUDED.address,
            passport_number = EXCLUDED.passport_number
        RETURNING id
    `
	return tx.QueryRow(ctx, query,
		customer.ID, customer.FirstName, customer.LastName, customer.Email,
		customer.Phone, customer.Address, customer.PassportNumber,
	).Scan(&customer.ID)
}

func (r *BookingRepository) insertBookingTx(ctx context.Context, tx pgx.Tx, booking *models.Booking) error {
	query := `
        INSERT INTO bookings (id, booking_reference, customer_id, trip_id, travel_insurance,
            meal_preference, special_requests, total_price, payment_status, payment_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `
	_, err := tx.Exec(ctx, query,
		booking.ID, booking.Reference, booking.Customer.ID, booking.Trip.ID,
		booking.TravelInsurance, booking.MealPreference, nullIfEmpty(booking.SpecialRequests),
		booking.TotalPrice, booking.PaymentStatus, booking.PaymentID, booking.CreatedAt,
	)
	return err
}

func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, reference string, status models.PaymentStatus) error {
	query := `
        UPDATE bookings SET payment_status = $1, updated_at = now()
        WHERE booking_reference = $2
    `
	tag, err := r.db.Exec(ctx, query, status, reference)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error) {
	query := `
        SELECT
            B.id, B.booking_reference, B.travel_insurance, B.meal_preference,
            B.special_requests, B.total_price, B.payment_status, B.payment_id, B.created_at,
            C.id, C.first_name, C.last_name, C.email, C.phone, C.address, C.passport_number,
            T.id, T.name, T.agency_name, T.price, T.departure_date, T.return_date
        FROM bookings B
        JOIN customers C ON C.id = B.customer_id
        JOIN trips T ON T.id = B.trip_id
        WHERE B.booking_reference = $1
    `
	var booking models.Booking
	var specialRequests, paymentID *string
	err := r.db.QueryRow(ctx, query, reference).Scan(
		&booking.ID, &booking.Reference, &booking.TravelInsurance, &booking.MealPreference,
		&specialRequests, &booking.TotalPrice, &booking.PaymentStatus, &paymentID, &booking.CreatedAt,
		&booking.Customer.ID, &booking.Customer.FirstName, &booking.Customer.LastName,
		&booking.Customer.Email, &booking.Customer.Phone, &booking.Customer.Address,
		&booking.Customer.PassportNumber,
		&booking.Trip.ID, &booking.Trip.Name, &booking.Trip.AgencyName, &booking.Trip.Price,
		&booking.Trip.DepartureDate, &booking.Trip.ReturnDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrBookingNotFound
		}
		return nil, fmt.Errorf("fetching booking %s: %w", reference, err)
	}
	if specialRequests != nil {
		booking.SpecialRequests = *specialRequests
	}
	if paymentID != nil {
		booking.PaymentID = *paymentID
	}
	return &booking, nil
}

func (r *BookingRepository) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	query := `
        INSERT INTO contact_messages (id, name, email, phone, message)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.db.Exec(ctx, query, msg.ID, msg.Name, msg.Email, nullIfEmpty(msg.Phone), msg.Message)
	return err
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
