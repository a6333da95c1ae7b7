package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"marketbook/internal/db"
	"marketbook/internal/schedule"
	"marketbook/internal/service"
)

const dateLayout = "2006-01-02"

// GET /api/v1/shops/{shopID}/slots?service=&date=
func (s *Server) handleSlots(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopID"]
	serviceID := r.URL.Query().Get("service")
	if serviceID == "" {
		s.writeError(w, http.StatusBadRequest, "service is required")
		return
	}
	date, err := time.Parse(dateLayout, r.URL.Query().Get("date"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "date must be yyyy-MM-dd")
		return
	}

	slots, err := s.svc.AvailableSlots(r.Context(), shopID, serviceID, date)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"date": date.Format(dateLayout), "slots": slots})
}

// GET /api/v1/shops/{shopID}/calendar?year=&month=&start=&end=
// start/end carry the client's current selection so range highlighting
// happens server-side too.
func (s *Server) handleCustomerCalendar(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopID"]
	year, month, err := parseYearMonth(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var sel schedule.Selection
	if v := r.URL.Query().Get("start"); v != "" {
		if sel.StartDate, err = time.Parse(dateLayout, v); err != nil {
			s.writeError(w, http.StatusBadRequest, "start must be yyyy-MM-dd")
			return
		}
	}
	if v := r.URL.Query().Get("end"); v != "" {
		if sel.EndDate, err = time.Parse(dateLayout, v); err != nil {
			s.writeError(w, http.StatusBadRequest, "end must be yyyy-MM-dd")
			return
		}
	}
	if !sel.EndDate.IsZero() && sel.EndDate.Before(sel.StartDate) {
		s.writeError(w, http.StatusBadRequest, "end must not be before start")
		return
	}

	days, err := s.svc.CustomerCalendar(r.Context(), shopID, year, month, sel)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"days": days})
}

// GET /api/v1/shops/{shopID}/calendar/owner?year=&month=
func (s *Server) handleOwnerCalendar(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopID"]
	year, month, err := parseYearMonth(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	days, indicators, err := s.svc.OwnerCalendar(r.Context(), shopID, year, month)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"days": days, "indicators": indicators})
}

// GET /api/v1/shops/{shopID}/bookings
func (s *Server) handleShopBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.svc.ShopBookings(r.Context(), mux.Vars(r)["shopID"])
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

// GET /api/v1/customers/{customerID}/bookings
func (s *Server) handleCustomerBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.svc.CustomerBookings(r.Context(), mux.Vars(r)["customerID"])
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

// GET /api/v1/owners/{ownerID}/bookings
func (s *Server) handleOwnerBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.svc.OwnerBookings(r.Context(), mux.Vars(r)["ownerID"])
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

type createBookingRequest struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	ShopID        string `json:"shop_id"`
	ServiceID     string `json:"service_id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date,omitempty"`
	TimeSlot      string `json:"time_slot,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// POST /api/v1/bookings
func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CustomerID == "" || req.ShopID == "" || req.ServiceID == "" {
		s.writeError(w, http.StatusBadRequest, "customer_id, shop_id and service_id are required")
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "start_date must be yyyy-MM-dd")
		return
	}
	var end time.Time
	if req.EndDate != "" {
		if end, err = time.Parse(dateLayout, req.EndDate); err != nil {
			s.writeError(w, http.StatusBadRequest, "end_date must be yyyy-MM-dd")
			return
		}
	}

	b, err := s.svc.CreateBooking(r.Context(), service.CreateBookingInput{
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		ShopID:        req.ShopID,
		ServiceID:     req.ServiceID,
		StartDate:     start,
		EndDate:       end,
		TimeSlot24:    req.TimeSlot,
		Notes:         req.Notes,
	})
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, b)
}

type decideBookingRequest struct {
	Accept  bool   `json:"accept"`
	Message string `json:"message,omitempty"`
}

// PATCH /api/v1/bookings/{bookingID}/status
func (s *Server) handleDecideBooking(w http.ResponseWriter, r *http.Request) {
	var req decideBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := s.svc.DecideBooking(r.Context(), mux.Vars(r)["bookingID"], req.Accept, req.Message)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, b)
}

// GET /api/v1/shops/{shopID}/bookings/export
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopID"]
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "bookings-"+shopID+".xlsx"))

	if err := s.svc.ExportBookings(r.Context(), shopID, w); err != nil {
		// Headers are already out; log and give up on the body.
		s.logger.Error().Err(err).Str("shop_id", shopID).Msg("bookings export failed")
	}
}

func parseYearMonth(r *http.Request) (int, time.Month, error) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1 {
		return 0, 0, errors.New("year is required")
	}
	m, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || m < 1 || m > 12 {
		return 0, 0, errors.New("month must be 1-12")
	}
	return year, time.Month(m), nil
}

func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrInvalidSelection):
		s.writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		s.writeError(w, http.StatusInternalServerError, "internal error, try again")
	}
}
