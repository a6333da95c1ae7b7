// Package report renders owner-facing booking exports as Excel
// workbooks.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"marketbook/internal/model"
)

var bookingColumns = []string{
	"ID", "Date", "Time", "Status", "Service", "Customer", "Email", "Notes", "Response",
}

// statusOrder fixes the sheet order in the workbook.
var statusOrder = []model.BookingStatus{
	model.StatusPending,
	model.StatusAccepted,
	model.StatusDenied,
	model.StatusCompleted,
	model.StatusCancelled,
}

// WriteBookings writes one sheet per booking status to w. Statuses
// with no bookings are omitted; an empty booking list produces a
// single "Bookings" sheet with only the header.
func WriteBookings(w io.Writer, bookings []model.Booking) error {
	byStatus := make(map[model.BookingStatus][]model.Booking)
	for _, b := range bookings {
		byStatus[b.Status] = append(byStatus[b.Status], b)
	}

	f := excelize.NewFile()
	defer f.Close()

	wrote := false
	for _, status := range statusOrder {
		group := byStatus[status]
		if len(group) == 0 {
			continue
		}
		if err := writeSheet(f, string(status), group, !wrote); err != nil {
			return err
		}
		wrote = true
	}
	if !wrote {
		if err := writeSheet(f, "Bookings", nil, true); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, bookings []model.Booking, first bool) error {
	// Excel caps sheet names at 31 chars.
	if len(name) > 31 {
		name = name[:31]
	}

	if first {
		f.SetSheetName("Sheet1", name)
	} else {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	for i, col := range bookingColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, col); err != nil {
			return err
		}
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		start, _ := excelize.CoordinatesToCellName(1, 1)
		end, _ := excelize.CoordinatesToCellName(len(bookingColumns), 1)
		_ = f.SetCellStyle(name, start, end, style)
	}

	for row, b := range bookings {
		values := []any{
			b.ID, b.RequestedDate, b.RequestedTime, string(b.Status),
			b.ServiceName, b.CustomerName, b.CustomerEmail, b.Notes, b.ResponseMessage,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(name, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
