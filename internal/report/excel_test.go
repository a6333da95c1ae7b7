package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"marketbook/internal/model"
)

func TestWriteBookingsGroupsByStatus(t *testing.T) {
	bookings := []model.Booking{
		{ID: "bk-1", RequestedDate: "2025-06-10", RequestedTime: "10:00", Status: model.StatusAccepted, ServiceName: "Haircut", CustomerName: "Dana"},
		{ID: "bk-2", RequestedDate: "2025-06-11", RequestedTime: "11:00", Status: model.StatusPending, ServiceName: "Haircut", CustomerName: "Riley"},
		{ID: "bk-3", RequestedDate: "2025-06-12", RequestedTime: "12:00", Status: model.StatusPending, ServiceName: "Beard Trim", CustomerName: "Sam"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBookings(&buf, bookings))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"PENDING", "ACCEPTED"}, f.GetSheetList())

	rows, err := f.GetRows("PENDING")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "bk-2", rows[1][0])
	assert.Equal(t, "bk-3", rows[2][0])

	rows, err = f.GetRows("ACCEPTED")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Dana", rows[1][5])
}

func TestWriteBookingsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBookings(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Bookings"}, f.GetSheetList())
	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
