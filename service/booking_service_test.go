package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busbooking-backend/models"
	"busbooking-backend/repository"
)

// memoryBookingStore is an in-memory BookingStore
type memoryBookingStore struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*models.Booking
	err      error
}

func newMemoryBookingStore() *memoryBookingStore {
	return &memoryBookingStore{bookings: make(map[int64]*models.Booking)}
}

func (m *memoryBookingStore) Create(ctx context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextID++
	b.ID = m.nextID
	b.BookingDate = time.Now()
	stored := *b
	m.bookings[b.ID] = &stored
	return nil
}

func (m *memoryBookingStore) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *memoryBookingStore) ListConfirmedByPhone(ctx context.Context, phone string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Booking{}
	for id := int64(1); id <= m.nextID; id++ {
		if b, ok := m.bookings[id]; ok && b.Phone == phone && !b.IsCanceled() {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memoryBookingStore) ExistsConfirmed(ctx context.Context, booking *models.Booking) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.Phone == booking.Phone && b.BusProvider == booking.BusProvider &&
			b.FromDistrict == booking.FromDistrict && b.ToDistrict == booking.ToDistrict &&
			b.TravelDate.Equal(booking.TravelDate) && !b.IsCanceled() {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryBookingStore) FindForCancellation(ctx context.Context, l models.CancellationLookup) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.Phone == l.Phone && b.BusProvider == l.BusProvider && b.FromDistrict == l.FromDistrict &&
			b.ToDistrict == l.ToDistrict && b.TravelDate.Equal(l.TravelDate) && !b.IsCanceled() {
			copied := *b
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryBookingStore) UpdateStatus(ctx context.Context, id int64, status models.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.Status = status
	return nil
}

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestBookingService(store BookingStore) *BookingService {
	return NewBookingService(
		WithBookingStore(store),
		WithRouteChecker(testStore()),
		WithClock(func() time.Time { return fixedNow }),
	)
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		Name:          "Rahim Uddin",
		Phone:         "01712345678",
		BusProvider:   "Hanif",
		FromDistrict:  "Dhaka",
		ToDistrict:    "Rajshahi",
		DroppingPoint: "Shaheb Bazar",
		Price:         350,
		TravelDate:    "2026-03-10",
		TravelTime:    "08:30",
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"01712345678", "01312345678", "8801712345678", "+8801712345678"}
	invalid := []string{"", "0171234567", "01212345678", "017123456789", "+880171234567", "phone"}

	for _, p := range valid {
		assert.NoError(t, ValidatePhone(p), p)
	}
	for _, p := range invalid {
		assert.ErrorIs(t, ValidatePhone(p), ErrInvalidPhoneNumber, p)
	}
}

func TestBookingService_CreateBooking(t *testing.T) {
	store := newMemoryBookingStore()
	svc := newTestBookingService(store)

	result, err := svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	b := result.Booking
	assert.Equal(t, int64(1), b.ID)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), b.TravelDate)
	assert.False(t, b.BookingDate.IsZero())
}

func TestBookingService_CreateBookingValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateBookingRequest)
		want   error
	}{
		{"short name", func(r *CreateBookingRequest) { r.Name = " A " }, ErrInvalidBooking},
		{"bad phone", func(r *CreateBookingRequest) { r.Phone = "12345" }, ErrInvalidPhoneNumber},
		{"missing provider", func(r *CreateBookingRequest) { r.BusProvider = "" }, ErrInvalidBooking},
		{"missing travel time", func(r *CreateBookingRequest) { r.TravelTime = " " }, ErrInvalidBooking},
		{"zero price", func(r *CreateBookingRequest) { r.Price = 0 }, ErrInvalidBooking},
		{"bad date", func(r *CreateBookingRequest) { r.TravelDate = "10/03/2026" }, ErrInvalidBooking},
		{"past date", func(r *CreateBookingRequest) { r.TravelDate = "2026-02-28" }, ErrInvalidBooking},
		{"route not offered", func(r *CreateBookingRequest) { r.BusProvider = "Green Line" }, ErrInvalidBooking},
		{"unknown dropping point", func(r *CreateBookingRequest) { r.DroppingPoint = "Nowhere" }, ErrInvalidBooking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestBookingService(newMemoryBookingStore())
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.CreateBooking(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBookingService_TodayIsBookable(t *testing.T) {
	svc := newTestBookingService(newMemoryBookingStore())
	req := validRequest()
	req.TravelDate = "2026-03-01"

	_, err := svc.CreateBooking(context.Background(), req)
	assert.NoError(t, err)
}

func TestBookingService_DuplicateBooking(t *testing.T) {
	svc := newTestBookingService(newMemoryBookingStore())
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, validRequest())
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, validRequest())
	assert.ErrorIs(t, err, ErrDuplicateBooking)

	other := validRequest()
	other.TravelDate = "2026-03-11"
	_, err = svc.CreateBooking(ctx, other)
	assert.NoError(t, err)
}

func TestBookingService_StoreFailure(t *testing.T) {
	store := newMemoryBookingStore()
	store.err = errors.New("db down")
	svc := newTestBookingService(store)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	assert.EqualError(t, err, "db down")
}

func TestBookingService_MissingRepository(t *testing.T) {
	svc := NewBookingService()
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, validRequest())
	assert.Error(t, err)
	_, err = svc.GetBooking(ctx, 1)
	assert.Error(t, err)
	_, err = svc.ListBookingsByPhone(ctx, "01712345678")
	assert.Error(t, err)
}

func TestBookingService_GetAndList(t *testing.T) {
	svc := newTestBookingService(newMemoryBookingStore())
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, validRequest())
	require.NoError(t, err)

	got, err := svc.GetBooking(ctx, created.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rahim Uddin", got.Name)

	_, err = svc.GetBooking(ctx, 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	list, err := svc.ListBookingsByPhone(ctx, "01712345678")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListBookingsByPhone(ctx, "123")
	assert.ErrorIs(t, err, ErrInvalidPhoneNumber)
}

func TestBookingService_CancelBooking(t *testing.T) {
	svc := newTestBookingService(newMemoryBookingStore())
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, validRequest())
	require.NoError(t, err)

	canceled, err := svc.CancelBooking(ctx, created.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCanceled, canceled.Status)

	_, err = svc.CancelBooking(ctx, created.Booking.ID)
	assert.ErrorIs(t, err, ErrBookingAlreadyCanceled)

	_, err = svc.CancelBooking(ctx, 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	list, err := svc.ListBookingsByPhone(ctx, "01712345678")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBookingService_CancelBookingByDetails(t *testing.T) {
	svc := newTestBookingService(newMemoryBookingStore())
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, validRequest())
	require.NoError(t, err)

	req := CancelBookingRequest{
		Phone:        "01712345678",
		TravelDate:   "2026-03-10",
		BusProvider:  "Hanif",
		FromDistrict: "Dhaka",
		ToDistrict:   "Rajshahi",
	}

	canceled, err := svc.CancelBookingByDetails(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, created.Booking.ID, canceled.ID)
	assert.True(t, canceled.IsCanceled())

	_, err = svc.CancelBookingByDetails(ctx, req)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	bad := req
	bad.Phone = "1"
	_, err = svc.CancelBookingByDetails(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidPhoneNumber)

	bad = req
	bad.TravelDate = "tomorrow"
	_, err = svc.CancelBookingByDetails(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidBooking)

	bad = req
	bad.BusProvider = ""
	_, err = svc.CancelBookingByDetails(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidBooking)
}
