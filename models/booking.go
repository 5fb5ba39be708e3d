package models

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCanceled  BookingStatus = "canceled"
)

// Booking represents a booking entity
type Booking struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Phone         string        `json:"phone"`
	BusProvider   string        `json:"bus_provider"`
	FromDistrict  string        `json:"from_district"`
	ToDistrict    string        `json:"to_district"`
	DroppingPoint string        `json:"dropping_point"`
	Price         float64       `json:"price"`
	TravelDate    time.Time     `json:"travel_date"`
	TravelTime    string        `json:"travel_time"`
	BookingDate   time.Time     `json:"booking_date"`
	Status        BookingStatus `json:"status"`
}

// IsCanceled reports whether the booking was already canceled
func (b *Booking) IsCanceled() bool {
	return b.Status == BookingStatusCanceled
}

// CancellationLookup identifies a confirmed booking by its travel details
type CancellationLookup struct {
	Phone        string
	TravelDate   time.Time
	BusProvider  string
	FromDistrict string
	ToDistrict   string
}
