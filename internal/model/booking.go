package model

import "time"

// BookingStatus is the lifecycle status of a booking request.
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusAccepted  BookingStatus = "ACCEPTED"
	StatusDenied    BookingStatus = "DENIED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// ParseBookingStatus normalizes a stored status string. Older records
// used REJECTED for owner denials.
func ParseBookingStatus(s string) BookingStatus {
	if s == "REJECTED" {
		return StatusDenied
	}
	return BookingStatus(s)
}

// Blocks reports whether a booking with this status blocks further
// scheduling on its date. Pending requests are shown to owners but do
// not block customer selection.
func (s BookingStatus) Blocks() bool {
	return s == StatusAccepted
}

// Booking is a customer's request for a service on a specific day,
// optionally at a specific time slot. Dates and times are stored as
// strings exactly as the clients send them.
type Booking struct {
	ID              string        `json:"id"`
	CustomerID      string        `json:"customer_id"`
	ShopID          string        `json:"shop_id"`
	ServiceID       string        `json:"service_id"`
	ServiceName     string        `json:"service_name"`
	ShopName        string        `json:"shop_name"`
	ShopOwnerID     string        `json:"shop_owner_id"`
	CustomerName    string        `json:"customer_name"`
	CustomerEmail   string        `json:"customer_email"`
	RequestedDate   string        `json:"requested_date"` // "2006-01-02"
	RequestedTime   string        `json:"requested_time"` // "15:04"
	Status          BookingStatus `json:"status"`
	Notes           string        `json:"notes,omitempty"`
	ResponseMessage string        `json:"response_message,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
