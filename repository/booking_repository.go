package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"busbooking-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no row matches the lookup
var ErrNotFound = errors.New("record not found")

const bookingColumns = `
			id, name, phone, bus_provider, from_district, to_district,
			dropping_point, price, travel_date, travel_time, booking_date, status`

// BookingRepository handles database operations for bookings
type BookingRepository struct {
	db *pgxpool.Pool
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

func scanBooking(row pgx.Row) (*models.Booking, error) {
	booking := &models.Booking{}
	err := row.Scan(
		&booking.ID,
		&booking.Name,
		&booking.Phone,
		&booking.BusProvider,
		&booking.FromDistrict,
		&booking.ToDistrict,
		&booking.DroppingPoint,
		&booking.Price,
		&booking.TravelDate,
		&booking.TravelTime,
		&booking.BookingDate,
		&booking.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return booking, nil
}

// Create inserts a new booking and fills its id, booking date and status
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (
			name, phone, bus_provider, from_district, to_district,
			dropping_point, price, travel_date, travel_time, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING id, booking_date`

	if booking.Status == "" {
		booking.Status = models.BookingStatusConfirmed
	}

	err := r.db.QueryRow(
		ctx, query,
		booking.Name,
		booking.Phone,
		booking.BusProvider,
		booking.FromDistrict,
		booking.ToDistrict,
		booking.DroppingPoint,
		booking.Price,
		booking.TravelDate,
		booking.TravelTime,
		booking.Status,
	).Scan(&booking.ID, &booking.BookingDate)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM bookings
		WHERE id = $1`

	return scanBooking(r.db.QueryRow(ctx, query, id))
}

// ListConfirmedByPhone retrieves confirmed bookings for a phone number, newest first
func (r *BookingRepository) ListConfirmedByPhone(ctx context.Context, phone string) ([]models.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM bookings
		WHERE phone = $1 AND status = $2
		ORDER BY booking_date DESC`

	rows, err := r.db.Query(ctx, query, phone, models.BookingStatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

// ExistsConfirmed reports whether a confirmed booking with the same passenger,
// provider, route and travel date already exists
func (r *BookingRepository) ExistsConfirmed(ctx context.Context, booking *models.Booking) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE phone = $1
				AND bus_provider = $2
				AND from_district = $3
				AND to_district = $4
				AND travel_date = $5
				AND status = $6
		)`

	var exists bool
	err := r.db.QueryRow(
		ctx, query,
		booking.Phone,
		booking.BusProvider,
		booking.FromDistrict,
		booking.ToDistrict,
		booking.TravelDate,
		models.BookingStatusConfirmed,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check duplicate booking: %w", err)
	}

	return exists, nil
}

// FindForCancellation retrieves the confirmed booking matching the lookup
func (r *BookingRepository) FindForCancellation(ctx context.Context, lookup models.CancellationLookup) (*models.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM bookings
		WHERE phone = $1
			AND travel_date = $2
			AND LOWER(bus_provider) = LOWER($3)
			AND LOWER(from_district) = LOWER($4)
			AND LOWER(to_district) = LOWER($5)
			AND status = $6
		ORDER BY booking_date DESC
		LIMIT 1`

	return scanBooking(r.db.QueryRow(
		ctx, query,
		lookup.Phone,
		lookup.TravelDate,
		lookup.BusProvider,
		lookup.FromDistrict,
		lookup.ToDistrict,
		models.BookingStatusConfirmed,
	))
}

// UpdateStatus sets the status of a booking
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status models.BookingStatus) error {
	tag, err := r.db.Exec(ctx, "UPDATE bookings SET status = $2 WHERE id = $1", id, status)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DateOnly truncates t to a calendar date in UTC, the granularity of travel_date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
