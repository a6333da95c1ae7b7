package service

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketbook/internal/model"
	"marketbook/internal/notify"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetShop(ctx context.Context, id string) (*model.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Shop), args.Error(1)
}

func (m *mockStore) GetService(ctx context.Context, id string) (*model.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *mockStore) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *mockStore) CreateBooking(ctx context.Context, b *model.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockStore) UpdateBookingStatus(ctx context.Context, id string, status model.BookingStatus, responseMessage string) error {
	return m.Called(ctx, id, status, responseMessage).Error(0)
}

func (m *mockStore) ListBookingsForShop(ctx context.Context, shopID string) ([]model.Booking, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *mockStore) ListConfirmedBookings(ctx context.Context, shopID string) ([]model.Booking, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *mockStore) ListBookingsForOwner(ctx context.Context, ownerID string) ([]model.Booking, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *mockStore) ListBookingsForCustomer(ctx context.Context, customerID string) ([]model.Booking, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]model.Booking), args.Error(1)
}

type recordingSink struct {
	conversations []notify.Conversation
}

func (r *recordingSink) CreateConversation(_ context.Context, conv notify.Conversation) error {
	r.conversations = append(r.conversations, conv)
	return nil
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testShop() *model.Shop {
	return &model.Shop{
		ID:          "shop-1",
		OwnerID:     "owner-1",
		Name:        "Fade Factory",
		OpenTime24:  "09:00",
		CloseTime24: "17:00",
	}
}

func testService(multiDay bool) *model.Service {
	return &model.Service{
		ID:                    "svc-1",
		ShopID:                "shop-1",
		Name:                  "Haircut",
		EstimatedDuration:     60,
		AllowsMultiDayBooking: multiDay,
	}
}

func TestAvailableSlots(t *testing.T) {
	store := new(mockStore)
	store.On("GetShop", mock.Anything, "shop-1").Return(testShop(), nil)
	store.On("GetService", mock.Anything, "svc-1").Return(testService(false), nil)
	store.On("ListConfirmedBookings", mock.Anything, "shop-1").Return([]model.Booking{
		{RequestedDate: "2025-06-10", RequestedTime: "13:00", Status: model.StatusAccepted},
	}, nil)

	svc := New(store, nil, nil, testLogger())
	slots, err := svc.AvailableSlots(context.Background(), "shop-1", "svc-1",
		time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, slots, 8)
	for _, s := range slots {
		assert.Equal(t, s.Time24 != "13:00", s.Available, "slot %s", s.Time24)
	}
}

func TestCreateBooking(t *testing.T) {
	store := new(mockStore)
	store.On("GetShop", mock.Anything, "shop-1").Return(testShop(), nil)
	store.On("GetService", mock.Anything, "svc-1").Return(testService(false), nil)
	store.On("ListConfirmedBookings", mock.Anything, "shop-1").Return([]model.Booking{}, nil)
	store.On("CreateBooking", mock.Anything, mock.AnythingOfType("*model.Booking")).Return(nil)

	svc := New(store, nil, nil, testLogger())
	b, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		CustomerID: "cust-1",
		ShopID:     "shop-1",
		ServiceID:  "svc-1",
		StartDate:  time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		TimeSlot24: "10:00",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, model.StatusPending, b.Status)
	assert.Equal(t, "2025-06-10", b.RequestedDate)
	assert.Equal(t, "10:00", b.RequestedTime)
	assert.Equal(t, "owner-1", b.ShopOwnerID)
	assert.Equal(t, "Fade Factory", b.ShopName)
	store.AssertExpectations(t)
}

func TestCreateBookingDefaultsRequestTime(t *testing.T) {
	store := new(mockStore)
	store.On("GetShop", mock.Anything, "shop-1").Return(testShop(), nil)
	store.On("GetService", mock.Anything, "svc-1").Return(testService(true), nil)
	store.On("ListConfirmedBookings", mock.Anything, "shop-1").Return([]model.Booking{}, nil)
	store.On("CreateBooking", mock.Anything, mock.AnythingOfType("*model.Booking")).Return(nil)

	svc := New(store, nil, nil, testLogger())
	b, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		CustomerID: "cust-1",
		ShopID:     "shop-1",
		ServiceID:  "svc-1",
		StartDate:  time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "09:00", b.RequestedTime)
}

func TestCreateBookingRejectsBlockedDate(t *testing.T) {
	store := new(mockStore)
	store.On("GetShop", mock.Anything, "shop-1").Return(testShop(), nil)
	store.On("GetService", mock.Anything, "svc-1").Return(testService(false), nil)
	store.On("ListConfirmedBookings", mock.Anything, "shop-1").Return([]model.Booking{
		{RequestedDate: "2025-06-10", RequestedTime: "10:00", Status: model.StatusAccepted},
	}, nil)

	svc := New(store, nil, nil, testLogger())
	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		CustomerID: "cust-1",
		ShopID:     "shop-1",
		ServiceID:  "svc-1",
		StartDate:  time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrInvalidSelection)
	store.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestCreateBookingRejectsRangeWithoutMultiDay(t *testing.T) {
	store := new(mockStore)
	store.On("GetShop", mock.Anything, "shop-1").Return(testShop(), nil)
	store.On("GetService", mock.Anything, "svc-1").Return(testService(false), nil)

	svc := New(store, nil, nil, testLogger())
	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		CustomerID: "cust-1",
		ShopID:     "shop-1",
		ServiceID:  "svc-1",
		StartDate:  time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestDecideBooking(t *testing.T) {
	booking := &model.Booking{
		ID:            "bk-1",
		CustomerID:    "cust-1",
		CustomerName:  "Ada",
		ShopID:        "shop-1",
		ShopName:      "Fade Factory",
		ShopOwnerID:   "owner-1",
		ServiceName:   "Haircut",
		RequestedDate: "2025-06-10",
		RequestedTime: "10:00",
		Status:        model.StatusPending,
	}

	store := new(mockStore)
	store.On("GetBooking", mock.Anything, "bk-1").Return(booking, nil)
	store.On("UpdateBookingStatus", mock.Anything, "bk-1", model.StatusAccepted, mock.AnythingOfType("string")).Return(nil)

	sink := &recordingSink{}
	svc := New(store, nil, sink, testLogger())

	updated, err := svc.DecideBooking(context.Background(), "bk-1", true, "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, updated.Status)
	assert.Contains(t, updated.ResponseMessage, "ACCEPTED")

	require.Len(t, sink.conversations, 1)
	conv := sink.conversations[0]
	assert.ElementsMatch(t, []string{"cust-1", "owner-1"}, conv.Participants)
	assert.Equal(t, updated.ResponseMessage, conv.InitialMessage)
	store.AssertExpectations(t)
}

func TestOwnerCalendar(t *testing.T) {
	store := new(mockStore)
	store.On("ListBookingsForShop", mock.Anything, "shop-1").Return([]model.Booking{
		{RequestedDate: "2025-06-10", Status: model.StatusAccepted},
		{RequestedDate: "2025-06-10", Status: model.StatusPending},
		{RequestedDate: "2025-06-11", Status: model.StatusDenied},
	}, nil)

	svc := New(store, nil, nil, testLogger())
	days, indicators, err := svc.OwnerCalendar(context.Background(), "shop-1", 2025, time.June)

	require.NoError(t, err)
	assert.Equal(t, 0, len(days)%7)

	ind := indicators["2025-06-10"]
	assert.Equal(t, 1, ind.Accepted)
	assert.Equal(t, 1, ind.Pending)
	assert.Equal(t, 1, indicators["2025-06-11"].Denied)
	_, ok := indicators["2025-06-12"]
	assert.False(t, ok)
}

func TestExportBookings(t *testing.T) {
	store := new(mockStore)
	store.On("ListBookingsForShop", mock.Anything, "shop-1").Return([]model.Booking{
		{ID: "bk-1", RequestedDate: "2025-06-10", RequestedTime: "10:00", Status: model.StatusAccepted, ServiceName: "Haircut"},
		{ID: "bk-2", RequestedDate: "2025-06-11", RequestedTime: "11:00", Status: model.StatusPending, ServiceName: "Haircut"},
	}, nil)

	svc := New(store, nil, nil, testLogger())
	var buf bytes.Buffer
	require.NoError(t, svc.ExportBookings(context.Background(), "shop-1", &buf))
	assert.NotZero(t, buf.Len())
}
