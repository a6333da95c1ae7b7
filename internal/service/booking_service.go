// Package service orchestrates the scheduling core against the store,
// cache and conversation sink.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"marketbook/internal/cache"
	"marketbook/internal/metrics"
	"marketbook/internal/model"
	"marketbook/internal/notify"
	"marketbook/internal/report"
	"marketbook/internal/schedule"
)

// ErrInvalidSelection is returned when a booking request targets a
// blocked date or range. The clients disable such selections up
// front; this is the server-side backstop.
var ErrInvalidSelection = errors.New("selected dates conflict with an existing booking")

// BookingStore is the persistence contract the service needs.
type BookingStore interface {
	GetShop(ctx context.Context, id string) (*model.Shop, error)
	GetService(ctx context.Context, id string) (*model.Service, error)
	GetBooking(ctx context.Context, id string) (*model.Booking, error)
	CreateBooking(ctx context.Context, b *model.Booking) error
	UpdateBookingStatus(ctx context.Context, id string, status model.BookingStatus, responseMessage string) error
	ListBookingsForShop(ctx context.Context, shopID string) ([]model.Booking, error)
	ListConfirmedBookings(ctx context.Context, shopID string) ([]model.Booking, error)
	ListBookingsForOwner(ctx context.Context, ownerID string) ([]model.Booking, error)
	ListBookingsForCustomer(ctx context.Context, customerID string) ([]model.Booking, error)
}

type BookingService struct {
	store  BookingStore
	cache  *cache.BookingCache
	sink   notify.Sink
	logger zerolog.Logger
}

func New(store BookingStore, snapshots *cache.BookingCache, sink notify.Sink, logger zerolog.Logger) *BookingService {
	if sink == nil {
		sink = notify.NoopSink{}
	}
	return &BookingService{
		store:  store,
		cache:  snapshots,
		sink:   sink,
		logger: logger.With().Str("component", "booking_service").Logger(),
	}
}

// ConfirmedBookings returns the point-in-time snapshot the scheduling
// core consumes, read through the cache.
func (s *BookingService) ConfirmedBookings(ctx context.Context, shopID string) ([]model.Booking, error) {
	if cached, ok := s.cache.Get(ctx, shopID); ok {
		metrics.IncSnapshotCache(true)
		return cached, nil
	}
	metrics.IncSnapshotCache(false)

	bookings, err := s.store.ListConfirmedBookings(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("load confirmed bookings: %w", err)
	}
	s.cache.Set(ctx, shopID, bookings)
	return bookings, nil
}

// AvailableSlots generates the bookable slots for a shop service on
// one day.
func (s *BookingService) AvailableSlots(ctx context.Context, shopID, serviceID string, date time.Time) ([]schedule.TimeSlot, error) {
	shop, err := s.store.GetShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("load shop: %w", err)
	}
	svc, err := s.store.GetService(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("load service: %w", err)
	}
	bookings, err := s.ConfirmedBookings(ctx, shopID)
	if err != nil {
		return nil, err
	}

	metrics.IncSlotQuery()
	window := schedule.ParseWindow(shop.OpenTime24, shop.CloseTime24)
	slots := schedule.GenerateSlots(date, window, svc.EstimatedDuration, bookings)
	for i := range slots {
		slots[i].Price = svc.Price
	}
	return slots, nil
}

// CustomerCalendar builds the month grid for the customer booking
// flow, with the current selection applied.
func (s *BookingService) CustomerCalendar(ctx context.Context, shopID string, year int, month time.Month, sel schedule.Selection) ([]schedule.CalendarDay, error) {
	bookings, err := s.ConfirmedBookings(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return schedule.BuildCustomerMonth(year, month, time.Now(), sel, bookings), nil
}

// OwnerCalendar builds the owner month grid plus the per-day status
// indicators.
func (s *BookingService) OwnerCalendar(ctx context.Context, shopID string, year int, month time.Month) ([]schedule.CalendarDay, map[string]schedule.Indicators, error) {
	bookings, err := s.store.ListBookingsForShop(ctx, shopID)
	if err != nil {
		return nil, nil, fmt.Errorf("load shop bookings: %w", err)
	}

	days := schedule.BuildOwnerMonth(year, month, time.Now())
	indicators := make(map[string]schedule.Indicators)
	for _, d := range days {
		if !d.CurrentMonth {
			continue
		}
		if ind := schedule.DayIndicators(d.Date, bookings); ind.HasAny() {
			indicators[schedule.DateKey(d.Date)] = ind
		}
	}
	return days, indicators, nil
}

// CreateBookingInput carries a customer's booking request.
type CreateBookingInput struct {
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	ShopID        string
	ServiceID     string
	StartDate     time.Time
	EndDate       time.Time
	TimeSlot24    string // empty for multi-day bookings
	Notes         string
}

// CreateBooking validates the selection against the current snapshot
// and persists a PENDING request. Creation is fire-and-forget with no
// optimistic locking: two racing customers can both succeed, which is
// why slot availability is re-derived on every render.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*model.Booking, error) {
	shop, err := s.store.GetShop(ctx, in.ShopID)
	if err != nil {
		return nil, fmt.Errorf("load shop: %w", err)
	}
	svc, err := s.store.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("load service: %w", err)
	}

	end := in.EndDate
	if end.IsZero() {
		end = in.StartDate
	}
	if end.Before(in.StartDate) {
		return nil, ErrInvalidSelection
	}
	if !in.StartDate.Equal(end) && !svc.AllowsMultiDayBooking {
		return nil, ErrInvalidSelection
	}

	bookings, err := s.ConfirmedBookings(ctx, in.ShopID)
	if err != nil {
		return nil, err
	}
	if schedule.IsRangeBlocked(in.StartDate, end, bookings) {
		return nil, ErrInvalidSelection
	}

	requestedTime := in.TimeSlot24
	if requestedTime == "" {
		requestedTime = schedule.DefaultRequestTime
	}

	b := &model.Booking{
		ID:            uuid.New().String(),
		CustomerID:    in.CustomerID,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		ShopID:        shop.ID,
		ShopName:      shop.Name,
		ShopOwnerID:   shop.OwnerID,
		ServiceID:     svc.ID,
		ServiceName:   svc.Name,
		RequestedDate: schedule.DateKey(in.StartDate),
		RequestedTime: requestedTime,
		Status:        model.StatusPending,
		Notes:         in.Notes,
	}
	if err := s.store.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, in.ShopID)
	metrics.IncBookingCreated(string(b.Status))
	s.logger.Info().
		Str("booking_id", b.ID).
		Str("shop_id", b.ShopID).
		Str("date", b.RequestedDate).
		Str("time", b.RequestedTime).
		Msg("booking request created")
	return b, nil
}

// DecideBooking applies an owner's accept/deny decision and opens the
// notification conversation with the customer. Conversation failures
// are logged but do not undo the decision.
func (s *BookingService) DecideBooking(ctx context.Context, bookingID string, accept bool, message string) (*model.Booking, error) {
	b, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	status := model.StatusDenied
	decision := "deny"
	if accept {
		status = model.StatusAccepted
		decision = "accept"
	}
	if message == "" {
		message = DefaultDecisionMessage(b, accept)
	}

	if err := s.store.UpdateBookingStatus(ctx, bookingID, status, message); err != nil {
		return nil, err
	}
	b.Status = status
	b.ResponseMessage = message

	s.cache.Invalidate(ctx, b.ShopID)
	metrics.IncOwnerDecision(decision)

	conv := notify.Conversation{
		Participants: []string{b.CustomerID, b.ShopOwnerID},
		ParticipantNames: map[string]string{
			b.CustomerID:  b.CustomerName,
			b.ShopOwnerID: b.ShopName,
		},
		InitialMessage: message,
		ShopID:         b.ShopID,
		ShopName:       b.ShopName,
	}
	if err := s.sink.CreateConversation(ctx, conv); err != nil {
		s.logger.Error().Err(err).Str("booking_id", bookingID).Msg("conversation creation failed")
	}

	s.logger.Info().
		Str("booking_id", bookingID).
		Str("decision", decision).
		Msg("owner decision applied")
	return b, nil
}

// ExportBookings writes the shop's booking workbook to w.
func (s *BookingService) ExportBookings(ctx context.Context, shopID string, w io.Writer) error {
	bookings, err := s.store.ListBookingsForShop(ctx, shopID)
	if err != nil {
		return fmt.Errorf("load shop bookings: %w", err)
	}
	return report.WriteBookings(w, bookings)
}

// ShopBookings lists all bookings of a shop.
func (s *BookingService) ShopBookings(ctx context.Context, shopID string) ([]model.Booking, error) {
	return s.store.ListBookingsForShop(ctx, shopID)
}

// CustomerBookings lists a customer's booking history.
func (s *BookingService) CustomerBookings(ctx context.Context, customerID string) ([]model.Booking, error) {
	return s.store.ListBookingsForCustomer(ctx, customerID)
}

// OwnerBookings lists bookings across an owner's shops.
func (s *BookingService) OwnerBookings(ctx context.Context, ownerID string) ([]model.Booking, error) {
	return s.store.ListBookingsForOwner(ctx, ownerID)
}

// DefaultDecisionMessage composes the conversation opener used when
// the owner does not type a custom response.
func DefaultDecisionMessage(b *model.Booking, accepted bool) string {
	if accepted {
		return fmt.Sprintf("✅ Your booking for %q at %s on %s at %s has been ACCEPTED. Looking forward to seeing you!",
			b.ServiceName, b.ShopName, b.RequestedDate, b.RequestedTime)
	}
	return fmt.Sprintf("❌ Your booking for %q at %s on %s at %s has been DECLINED. Sorry for any inconvenience.",
		b.ServiceName, b.ShopName, b.RequestedDate, b.RequestedTime)
}
