package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"busbooking-backend/models"
	"busbooking-backend/repository"
)

var (
	ErrInvalidBooking         = errors.New("invalid booking")
	ErrInvalidPhoneNumber     = errors.New("invalid phone number")
	ErrBookingNotFound        = errors.New("booking not found")
	ErrBookingAlreadyCanceled = errors.New("booking already canceled")
	ErrDuplicateBooking       = errors.New("duplicate booking")
)

const travelDateLayout = "2006-01-02"

var phoneRe = regexp.MustCompile(`^(01[3-9]\d{8}|880\d{10}|\+880\d{10})$`)

// ValidatePhone reports whether phone is a valid Bangladeshi mobile number
func ValidatePhone(phone string) error {
	if !phoneRe.MatchString(phone) {
		return fmt.Errorf("%w: %q", ErrInvalidPhoneNumber, phone)
	}
	return nil
}

// BookingStore persists bookings
type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
	ListConfirmedByPhone(ctx context.Context, phone string) ([]models.Booking, error)
	ExistsConfirmed(ctx context.Context, booking *models.Booking) (bool, error)
	FindForCancellation(ctx context.Context, lookup models.CancellationLookup) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status models.BookingStatus) error
}

// RouteChecker confirms that a provider serves a dropping point
type RouteChecker interface {
	HasRoute(provider, from, to, droppingPoint string) bool
}

// BookingService handles business logic for bookings
type BookingService struct {
	bookingRepo BookingStore
	routes      RouteChecker
	logger      *zap.Logger
	now         func() time.Time
}

// BookingServiceOption is a functional option for BookingService
type BookingServiceOption func(*BookingService)

// WithBookingStore sets the booking repository
func WithBookingStore(store BookingStore) BookingServiceOption {
	return func(s *BookingService) {
		s.bookingRepo = store
	}
}

// WithRouteChecker enables route validation on create
func WithRouteChecker(routes RouteChecker) BookingServiceOption {
	return func(s *BookingService) {
		s.routes = routes
	}
}

// WithBookingLogger sets the logger
func WithBookingLogger(logger *zap.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.logger = logger
	}
}

// WithClock overrides the time source used to reject past travel dates
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

// NewBookingService creates a new booking service
func NewBookingService(opts ...BookingServiceOption) *BookingService {
	s := &BookingService{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBookingRequest represents a request to create a booking
type CreateBookingRequest struct {
	Name          string
	Phone         string
	BusProvider   string
	FromDistrict  string
	ToDistrict    string
	DroppingPoint string
	Price         float64
	TravelDate    string // YYYY-MM-DD
	TravelTime    string
}

// CreateBookingResult represents the result of creating a booking
type CreateBookingResult struct {
	Booking *models.Booking
}

// CreateBooking validates and stores a confirmed booking
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResult, error) {
	if s.bookingRepo == nil {
		return nil, errors.New("booking repository not set")
	}

	booking, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	exists, err := s.bookingRepo.ExistsConfirmed(ctx, booking)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s already has a %s booking from %s to %s on %s",
			ErrDuplicateBooking, booking.Phone, booking.BusProvider,
			booking.FromDistrict, booking.ToDistrict, req.TravelDate)
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", booking.ID),
		zap.String("provider", booking.BusProvider),
	)
	return &CreateBookingResult{Booking: booking}, nil
}

func (s *BookingService) validate(req CreateBookingRequest) (*models.Booking, error) {
	name := strings.TrimSpace(req.Name)
	if utf8.RuneCountInString(name) < 2 {
		return nil, fmt.Errorf("%w: name must be at least 2 characters", ErrInvalidBooking)
	}

	phone := strings.TrimSpace(req.Phone)
	if err := ValidatePhone(phone); err != nil {
		return nil, err
	}

	required := []struct{ name, value string }{
		{"bus_provider", req.BusProvider},
		{"from_district", req.FromDistrict},
		{"to_district", req.ToDistrict},
		{"dropping_point", req.DroppingPoint},
		{"travel_time", req.TravelTime},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrInvalidBooking, field.name)
		}
	}

	if req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidBooking)
	}

	travelDate, err := time.Parse(travelDateLayout, req.TravelDate)
	if err != nil {
		return nil, fmt.Errorf("%w: travel_date must be YYYY-MM-DD", ErrInvalidBooking)
	}
	if travelDate.Before(repository.DateOnly(s.now())) {
		return nil, fmt.Errorf("%w: travel_date is in the past", ErrInvalidBooking)
	}

	if s.routes != nil && !s.routes.HasRoute(req.BusProvider, req.FromDistrict, req.ToDistrict, req.DroppingPoint) {
		return nil, fmt.Errorf("%w: %s does not serve %s from %s to %s", ErrInvalidBooking,
			req.BusProvider, req.DroppingPoint, req.FromDistrict, req.ToDistrict)
	}

	return &models.Booking{
		Name:          name,
		Phone:         phone,
		BusProvider:   req.BusProvider,
		FromDistrict:  req.FromDistrict,
		ToDistrict:    req.ToDistrict,
		DroppingPoint: req.DroppingPoint,
		Price:         req.Price,
		TravelDate:    travelDate,
		TravelTime:    req.TravelTime,
		Status:        models.BookingStatusConfirmed,
	}, nil
}

// GetBooking retrieves a booking by ID
func (s *BookingService) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	if s.bookingRepo == nil {
		return nil, errors.New("booking repository not set")
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrBookingNotFound, id)
	}
	return booking, err
}

// ListBookingsByPhone retrieves confirmed bookings for a phone number
func (s *BookingService) ListBookingsByPhone(ctx context.Context, phone string) ([]models.Booking, error) {
	if s.bookingRepo == nil {
		return nil, errors.New("booking repository not set")
	}
	if err := ValidatePhone(phone); err != nil {
		return nil, err
	}
	return s.bookingRepo.ListConfirmedByPhone(ctx, phone)
}

// CancelBooking cancels a booking by ID
func (s *BookingService) CancelBooking(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.cancel(ctx, booking)
}

// CancelBookingRequest identifies a booking by the details a passenger knows
type CancelBookingRequest struct {
	Phone        string
	TravelDate   string // YYYY-MM-DD
	BusProvider  string
	FromDistrict string
	ToDistrict   string
}

// CancelBookingByDetails cancels the confirmed booking matching the request
func (s *BookingService) CancelBookingByDetails(ctx context.Context, req CancelBookingRequest) (*models.Booking, error) {
	if s.bookingRepo == nil {
		return nil, errors.New("booking repository not set")
	}
	if err := ValidatePhone(req.Phone); err != nil {
		return nil, err
	}
	travelDate, err := time.Parse(travelDateLayout, req.TravelDate)
	if err != nil {
		return nil, fmt.Errorf("%w: travel_date must be YYYY-MM-DD", ErrInvalidBooking)
	}
	if req.BusProvider == "" || req.FromDistrict == "" || req.ToDistrict == "" {
		return nil, fmt.Errorf("%w: bus_provider, from_district and to_district are required", ErrInvalidBooking)
	}

	booking, err := s.bookingRepo.FindForCancellation(ctx, models.CancellationLookup{
		Phone:        req.Phone,
		TravelDate:   travelDate,
		BusProvider:  req.BusProvider,
		FromDistrict: req.FromDistrict,
		ToDistrict:   req.ToDistrict,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: no confirmed booking matches", ErrBookingNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s.cancel(ctx, booking)
}

func (s *BookingService) cancel(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if booking.IsCanceled() {
		return nil, fmt.Errorf("%w: %d", ErrBookingAlreadyCanceled, booking.ID)
	}
	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, models.BookingStatusCanceled); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrBookingNotFound, booking.ID)
		}
		return nil, err
	}
	booking.Status = models.BookingStatusCanceled

	s.logger.Info("booking canceled", zap.Int64("booking_id", booking.ID))
	return booking, nil
}
