package model

import "time"

// Shop is the subset of a marketplace shop record the scheduling core
// needs: identity plus the daily operating window. Times are "HH:mm"
// 24-hour strings; either may be empty when the owner never set them.
type Shop struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	OpenTime24  string    `json:"open_time_24"`
	CloseTime24 string    `json:"close_time_24"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Service is a bookable offering inside a shop.
type Service struct {
	ID                    string    `json:"id"`
	ShopID                string    `json:"shop_id"`
	Name                  string    `json:"name"`
	Price                 string    `json:"price,omitempty"`
	EstimatedDuration     int       `json:"estimated_duration"` // minutes
	AllowsMultiDayBooking bool      `json:"allows_multi_day_booking"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
