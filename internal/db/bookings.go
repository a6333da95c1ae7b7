package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"marketbook/internal/model"
)

const bookingColumns = `id, customer_id, shop_id, service_id, service_name, shop_name,
	shop_owner_id, customer_name, customer_email, requested_date, requested_time,
	status, notes, response_message, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
	var b model.Booking
	var status string
	err := row.Scan(
		&b.ID, &b.CustomerID, &b.ShopID, &b.ServiceID, &b.ServiceName, &b.ShopName,
		&b.ShopOwnerID, &b.CustomerName, &b.CustomerEmail, &b.RequestedDate, &b.RequestedTime,
		&status, &b.Notes, &b.ResponseMessage, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Status = model.ParseBookingStatus(status)
	return &b, nil
}

// CreateBooking inserts a new booking request. The caller assigns the
// id and status before calling.
func (db *DB) CreateBooking(ctx context.Context, b *model.Booking) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := db.ExecContext(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.CustomerID, b.ShopID, b.ServiceID, b.ServiceName, b.ShopName,
		b.ShopOwnerID, b.CustomerName, b.CustomerEmail, b.RequestedDate, b.RequestedTime,
		string(b.Status), b.Notes, b.ResponseMessage, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// GetBooking returns one booking by id.
func (db *DB) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", id, err)
	}
	return b, nil
}

// ListBookingsForShop returns all bookings of a shop, newest date last.
func (db *DB) ListBookingsForShop(ctx context.Context, shopID string) ([]model.Booking, error) {
	return db.listBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE shop_id = ?
		 ORDER BY requested_date, requested_time`, shopID)
}

// ListConfirmedBookings returns the shop bookings that participate in
// blocking logic plus the pending ones the clients render. Terminal
// statuses are filtered out at the query.
func (db *DB) ListConfirmedBookings(ctx context.Context, shopID string) ([]model.Booking, error) {
	return db.listBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings
		 WHERE shop_id = ? AND status IN ('ACCEPTED', 'PENDING')
		 ORDER BY requested_date, requested_time`, shopID)
}

// ListBookingsForOwner returns every booking across an owner's shops.
func (db *DB) ListBookingsForOwner(ctx context.Context, ownerID string) ([]model.Booking, error) {
	return db.listBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE shop_owner_id = ?
		 ORDER BY requested_date, requested_time`, ownerID)
}

// ListBookingsForCustomer returns a customer's booking history.
func (db *DB) ListBookingsForCustomer(ctx context.Context, customerID string) ([]model.Booking, error) {
	return db.listBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE customer_id = ?
		 ORDER BY requested_date, requested_time`, customerID)
}

func (db *DB) listBookings(ctx context.Context, query string, arg any) ([]model.Booking, error) {
	rows, err := db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// UpdateBookingStatus applies an owner decision (or a lifecycle
// transition) to a booking.
func (db *DB) UpdateBookingStatus(ctx context.Context, id string, status model.BookingStatus, responseMessage string) error {
	res, err := db.ExecContext(ctx, `
		UPDATE bookings
		SET status = ?, response_message = ?, updated_at = ?
		WHERE id = ?`,
		string(status), responseMessage, time.Now(), id)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
