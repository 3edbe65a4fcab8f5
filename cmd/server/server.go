// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"tourdesk/internal/api"
	"tourdesk/internal/api/auditlog"
	"tourdesk/internal/api/auth"
	"tourdesk/internal/api/bookings"
	"tourdesk/internal/api/costs"
	"tourdesk/internal/api/partners"
	"tourdesk/internal/api/reports"
	"tourdesk/internal/api/staffing"
	"tourdesk/internal/config"
)

func newServer(cfg *config.Config) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithAuth,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	)

	// Register routes
	registerRoutes(router)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth routes
	mux.HandleFunc("POST /api/v1/auth/login", auth.HandleLogin)
	mux.HandleFunc("POST /api/v1/auth/logout", auth.HandleLogout)

	// Report routes
	mux.HandleFunc("GET /api/v1/reports/profitability", reports.HandleProfitabilityReport)

	// Booking snapshot routes (read-only)
	mux.HandleFunc("GET /api/v1/bookings", bookings.HandleListBookings)
	mux.HandleFunc("GET /api/v1/availabilities", bookings.HandleListAvailabilities)

	// Staffing routes
	mux.HandleFunc("GET /api/v1/staffing/{type}", staffing.HandleListResources)
	mux.HandleFunc("POST /api/v1/staffing/{type}", staffing.HandleCreateResource)
	mux.HandleFunc("PUT /api/v1/staffing/{type}/{id}", staffing.HandleUpdateResource)
	mux.HandleFunc("DELETE /api/v1/staffing/{type}/{id}", staffing.HandleDeleteResource)
	mux.HandleFunc("POST /api/v1/staffing/assignments", staffing.HandleCreateAssignment)
	mux.HandleFunc("DELETE /api/v1/staffing/assignments/{type}/{id}", staffing.HandleDeleteAssignment)
	mux.HandleFunc("POST /api/v1/staffing/service-groups", staffing.HandleCreateServiceGroup)

	// Cost configuration routes
	mux.HandleFunc("GET /api/v1/costs/seasons", costs.HandleListSeasons)
	mux.HandleFunc("POST /api/v1/costs/seasons", costs.HandleCreateSeason)
	mux.HandleFunc("DELETE /api/v1/costs/seasons/{id}", costs.HandleDeleteSeason)
	mux.HandleFunc("GET /api/v1/costs/special-dates", costs.HandleListSpecialDates)
	mux.HandleFunc("POST /api/v1/costs/special-dates", costs.HandleCreateSpecialDate)
	mux.HandleFunc("DELETE /api/v1/costs/special-dates/{id}", costs.HandleDeleteSpecialDate)
	mux.HandleFunc("GET /api/v1/costs/activity-costs", costs.HandleListActivityCosts)
	mux.HandleFunc("POST /api/v1/costs/activity-costs", costs.HandleCreateActivityCost)
	mux.HandleFunc("DELETE /api/v1/costs/activity-costs/{id}", costs.HandleDeleteActivityCost)
	mux.HandleFunc("POST /api/v1/costs/season-costs", costs.HandleCreateSeasonCost)
	mux.HandleFunc("DELETE /api/v1/costs/season-costs/{id}", costs.HandleDeleteSeasonCost)
	mux.HandleFunc("DELETE /api/v1/costs/guide-season-costs/{id}", costs.HandleDeleteGuideSeasonCost)
	mux.HandleFunc("POST /api/v1/costs/special-date-costs", costs.HandleCreateSpecialDateCost)
	mux.HandleFunc("DELETE /api/v1/costs/special-date-costs/{id}", costs.HandleDeleteSpecialDateCost)
	mux.HandleFunc("DELETE /api/v1/costs/guide-special-date-costs/{id}", costs.HandleDeleteGuideSpecialDateCost)
	mux.HandleFunc("GET /api/v1/costs/special-guide-rules", costs.HandleListSpecialGuideRules)
	mux.HandleFunc("POST /api/v1/costs/special-guide-rules", costs.HandleCreateSpecialGuideRule)
	mux.HandleFunc("DELETE /api/v1/costs/special-guide-rules/{id}", costs.HandleDeleteSpecialGuideRule)
	mux.HandleFunc("GET /api/v1/costs/rates", costs.HandleListRates)
	mux.HandleFunc("PUT /api/v1/costs/rates", costs.HandleUpsertRate)
	mux.HandleFunc("DELETE /api/v1/costs/rates/{type}/{id}", costs.HandleDeleteRate)
	mux.HandleFunc("PUT /api/v1/costs/overrides", costs.HandleUpsertOverride)
	mux.HandleFunc("DELETE /api/v1/costs/overrides/{type}/{id}", costs.HandleDeleteOverride)

	// Partner routes
	mux.HandleFunc("GET /api/v1/partners", partners.HandleListPartners)
	mux.HandleFunc("POST /api/v1/partners", partners.HandleCreatePartner)
	mux.HandleFunc("DELETE /api/v1/partners/{id}", partners.HandleDeletePartner)
	mux.HandleFunc("GET /api/v1/partners/vouchers", partners.HandleListVouchers)
	mux.HandleFunc("POST /api/v1/partners/vouchers", partners.HandleCreateVoucher)

	// Audit trail (admin only)
	mux.HandleFunc("GET /api/v1/audit", auditlog.HandleListEntries)
}
