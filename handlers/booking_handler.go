package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"busbooking-backend/models"
	"busbooking-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingManager creates, lists and cancels bookings
type BookingManager interface {
	CreateBooking(ctx context.Context, req service.CreateBookingRequest) (*service.CreateBookingResult, error)
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	ListBookingsByPhone(ctx context.Context, phone string) ([]models.Booking, error)
	CancelBooking(ctx context.Context, id int64) (*models.Booking, error)
	CancelBookingByDetails(ctx context.Context, req service.CancelBookingRequest) (*models.Booking, error)
}

// BookingHandler handles HTTP requests for bookings
type BookingHandler struct {
	bookings BookingManager
	logger   *zap.Logger
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookings BookingManager, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{bookings: bookings, logger: logger}
}

// CreateBookingRequest represents the request body for creating a booking
type CreateBookingRequest struct {
	Name          string  `json:"name" binding:"required"`
	Phone         string  `json:"phone" binding:"required"`
	BusProvider   string  `json:"bus_provider" binding:"required"`
	FromDistrict  string  `json:"from_district" binding:"required"`
	ToDistrict    string  `json:"to_district" binding:"required"`
	DroppingPoint string  `json:"dropping_point" binding:"required"`
	Price         float64 `json:"price" binding:"required"`
	TravelDate    string  `json:"travel_date" binding:"required"`
	TravelTime    string  `json:"travel_time" binding:"required"`
}

// CancelBookingRequest represents the request body for cancelling by travel details
type CancelBookingRequest struct {
	Phone        string `json:"phone" binding:"required"`
	TravelDate   string `json:"travel_date" binding:"required"`
	BusProvider  string `json:"bus_provider" binding:"required"`
	FromDistrict string `json:"from_district" binding:"required"`
	ToDistrict   string `json:"to_district" binding:"required"`
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.bookings.CreateBooking(c.Request.Context(), service.CreateBookingRequest{
		Name:          req.Name,
		Phone:         req.Phone,
		BusProvider:   req.BusProvider,
		FromDistrict:  req.FromDistrict,
		ToDistrict:    req.ToDistrict,
		DroppingPoint: req.DroppingPoint,
		Price:         req.Price,
		TravelDate:    req.TravelDate,
		TravelTime:    req.TravelTime,
	})
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, result.Booking)
}

// ListBookings handles GET /api/bookings?phone=
func (h *BookingHandler) ListBookings(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "phone query parameter is required")
		return
	}

	bookings, err := h.bookings.ListBookingsByPhone(c.Request.Context(), phone)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	respondOK(c, http.StatusOK, bookings)
}

// GetBooking handles GET /api/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := parseBookingID(c)
	if !ok {
		return
	}

	booking, err := h.bookings.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	respondOK(c, http.StatusOK, booking)
}

// CancelBooking handles DELETE /api/bookings/:id
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, ok := parseBookingID(c)
	if !ok {
		return
	}

	booking, err := h.bookings.CancelBooking(c.Request.Context(), id)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	respondOK(c, http.StatusOK, booking)
}

// CancelByDetails handles POST /api/bookings/cancel
func (h *BookingHandler) CancelByDetails(c *gin.Context) {
	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	booking, err := h.bookings.CancelBookingByDetails(c.Request.Context(), service.CancelBookingRequest{
		Phone:        req.Phone,
		TravelDate:   req.TravelDate,
		BusProvider:  req.BusProvider,
		FromDistrict: req.FromDistrict,
		ToDistrict:   req.ToDistrict,
	})
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	respondOK(c, http.StatusOK, booking)
}

func parseBookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID format")
		return 0, false
	}
	return id, true
}

func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidPhoneNumber):
		respondError(c, http.StatusBadRequest, "INVALID_PHONE", err.Error())
	case errors.Is(err, service.ErrInvalidBooking):
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, service.ErrBookingAlreadyCanceled):
		respondError(c, http.StatusBadRequest, "ALREADY_CANCELED", err.Error())
	case errors.Is(err, service.ErrBookingNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, service.ErrDuplicateBooking):
		respondError(c, http.StatusConflict, "DUPLICATE_BOOKING", err.Error())
	default:
		h.logger.Error("booking operation failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error has occurred")
	}
}
