// internal/api/bookings/handlers.go
package bookings

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"tourdesk/internal/api/apiutil"
	appdb "tourdesk/internal/db"
)

// Read-only listings over the booking snapshot. Bookings and availabilities
// are written by the external booking source import, never through this API.

const (
	startDateQueryKey = "start_date"
	endDateQueryKey   = "end_date"
	pageQueryKey      = "page"

	listPageSize = 200
)

var queries *appdb.Queries

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB) {
	if database == nil {
		return
	}
	queries = database.Queries
}

func pageFromQuery(r *http.Request) int64 {
	page, err := strconv.ParseInt(r.URL.Query().Get(pageQueryKey), 10, 64)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

type bookingResponse struct {
	ID              int64   `json:"id"`
	BookingRef      string  `json:"booking_ref"`
	AvailabilityID  int64   `json:"availability_id"`
	ActivityID      int64   `json:"activity_id"`
	TravelDate      string  `json:"travel_date"`
	Status          string  `json:"status"`
	TotalPriceGross float64 `json:"total_price_gross"`
	TotalPriceNet   float64 `json:"total_price_net"`
	Pax             int64   `json:"pax"`
}

// GET /api/v1/bookings
func HandleListBookings(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if apiutil.RequireSession(w, r) == nil {
		return
	}

	startDate, endDate, err := apiutil.ParseDateRange(
		r.URL.Query().Get(startDateQueryKey),
		r.URL.Query().Get(endDateQueryKey),
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	page := pageFromQuery(r)

	rows, err := queries.ListBookingsInRange(r.Context(), appdb.ListBookingsInRangeParams{
		StartDate: startDate,
		EndDate:   endDate,
		Statuses:  []string{"CONFIRMED", "COMPLETED", "CANCELLED"},
		Limit:     listPageSize,
		Offset:    (page - 1) * listPageSize,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list bookings")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	items := make([]bookingResponse, 0, len(rows))
	for _, b := range rows {
		items = append(items, bookingResponse{
			ID:              b.ID,
			BookingRef:      b.BookingRef,
			AvailabilityID:  b.AvailabilityID,
			ActivityID:      b.ActivityID,
			TravelDate:      b.TravelDate,
			Status:          b.Status,
			TotalPriceGross: b.TotalPriceGross,
			TotalPriceNet:   b.TotalPriceNet,
			Pax:             b.Pax,
		})
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"page":  page,
	})
}

type availabilityResponse struct {
	ID          int64  `json:"id"`
	ActivityID  int64  `json:"activity_id"`
	LocalDate   string `json:"local_date"`
	LocalTime   string `json:"local_time"`
	VacancySold int64  `json:"vacancy_sold"`
}

// GET /api/v1/availabilities
func HandleListAvailabilities(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if apiutil.RequireSession(w, r) == nil {
		return
	}

	startDate, endDate, err := apiutil.ParseDateRange(
		r.URL.Query().Get(startDateQueryKey),
		r.URL.Query().Get(endDateQueryKey),
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	page := pageFromQuery(r)

	rows, err := queries.ListAvailabilitiesInRange(r.Context(), appdb.ListAvailabilitiesInRangeParams{
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     listPageSize,
		Offset:    (page - 1) * listPageSize,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list availabilities")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	items := make([]availabilityResponse, 0, len(rows))
	for _, s := range rows {
		items = append(items, availabilityResponse{
			ID:          s.ID,
			ActivityID:  s.ActivityID,
			LocalDate:   s.LocalDate,
			LocalTime:   s.LocalTime,
			VacancySold: s.VacancySold,
		})
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"page":  page,
	})
}
