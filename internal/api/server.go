// Package api is the JSON surface the web and Android clients call.
// Handlers stay thin: parse, delegate to the booking service, encode.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"marketbook/internal/service"
)

type Server struct {
	svc    *service.BookingService
	logger zerolog.Logger
}

func NewServer(svc *service.BookingService, logger zerolog.Logger) *Server {
	return &Server{
		svc:    svc,
		logger: logger.With().Str("component", "api").Logger(),
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	v1 := r.PathPrefix("/api/v1").Subrouter()

	v1.HandleFunc("/shops/{shopID}/slots", s.handleSlots).Methods(http.MethodGet)
	v1.HandleFunc("/shops/{shopID}/calendar", s.handleCustomerCalendar).Methods(http.MethodGet)
	v1.HandleFunc("/shops/{shopID}/calendar/owner", s.handleOwnerCalendar).Methods(http.MethodGet)
	v1.HandleFunc("/shops/{shopID}/bookings", s.handleShopBookings).Methods(http.MethodGet)
	v1.HandleFunc("/shops/{shopID}/bookings/export", s.handleExport).Methods(http.MethodGet)
	v1.HandleFunc("/bookings", s.handleCreateBooking).Methods(http.MethodPost)
	v1.HandleFunc("/bookings/{bookingID}/status", s.handleDecideBooking).Methods(http.MethodPatch)
	v1.HandleFunc("/customers/{customerID}/bookings", s.handleCustomerBookings).Methods(http.MethodGet)
	v1.HandleFunc("/owners/{ownerID}/bookings", s.handleOwnerBookings).Methods(http.MethodGet)

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("encode response failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
