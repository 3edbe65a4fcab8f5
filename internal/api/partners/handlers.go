// internal/api/partners/handlers.go
package partners

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"tourdesk/internal/api/apiutil"
	"tourdesk/internal/audit"
	appdb "tourdesk/internal/db"
)

const idPathKey = "id"

var queries *appdb.Queries

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB) {
	if database == nil {
		return
	}
	queries = database.Queries
}

type partnerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type partnerResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// GET /api/v1/partners
func HandleListPartners(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if apiutil.RequireSession(w, r) == nil {
		return
	}

	rows, err := queries.ListPartners(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list partners")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	items := make([]partnerResponse, 0, len(rows))
	for _, p := range rows {
		items = append(items, partnerResponse{ID: p.ID, Name: p.Name, Email: p.Email, Phone: p.Phone})
	}
	apiutil.WriteJSON(w, http.StatusOK, items)
}

// POST /api/v1/partners
func HandleCreatePartner(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	principal := apiutil.RequireSession(w, r)
	if principal == nil {
		return
	}

	var req partnerRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	partner, err := queries.CreatePartner(r.Context(), appdb.CreatePartnerParams{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create partner")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	audit.Record(r.Context(), queries, principal.ID, "create", "partner", partner.ID)
	apiutil.WriteJSON(w, http.StatusCreated, partnerResponse{ID: partner.ID, Name: partner.Name, Email: partner.Email, Phone: partner.Phone})
}

// DELETE /api/v1/partners/{id}
func HandleDeletePartner(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	principal := apiutil.RequireSession(w, r)
	if principal == nil {
		return
	}

	id, err := strconv.ParseInt(r.PathValue(idPathKey), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	if err := queries.DeletePartner(r.Context(), id); err != nil {
		logger.Error().Err(err).Int64("partner_id", id).Msg("Failed to delete partner")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	audit.Record(r.Context(), queries, principal.ID, "delete", "partner", id)
	w.WriteHeader(http.StatusNoContent)
}

type voucherRequest struct {
	PartnerID   int64   `json:"partnerId"`
	Reference   string  `json:"reference"`
	Amount      float64 `json:"amount"`
	ExchangedOn string  `json:"exchangedOn"`
}

type voucherResponse struct {
	ID          int64   `json:"id"`
	PartnerID   int64   `json:"partner_id"`
	Reference   string  `json:"reference"`
	Amount      float64 `json:"amount"`
	ExchangedOn string  `json:"exchanged_on"`
}

// GET /api/v1/partners/vouchers
func HandleListVouchers(w http.ResponseWriter, r *http.Request) {
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
		r.URL.Query().Get("start_date"),
		r.URL.Query().Get("end_date"),
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var partnerID int64
	if raw := r.URL.Query().Get("partner_id"); raw != "" {
		partnerID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || partnerID <= 0 {
			http.Error(w, "Invalid partner_id", http.StatusBadRequest)
			return
		}
	}

	rows, err := queries.ListVoucherExchanges(r.Context(), appdb.ListVoucherExchangesParams{
		PartnerID: partnerID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list voucher exchanges")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	items := make([]voucherResponse, 0, len(rows))
	for _, v := range rows {
		items = append(items, voucherResponse{ID: v.ID, PartnerID: v.PartnerID, Reference: v.Reference, Amount: v.Amount, ExchangedOn: v.ExchangedOn})
	}
	apiutil.WriteJSON(w, http.StatusOK, items)
}

// POST /api/v1/partners/vouchers
func HandleCreateVoucher(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	principal := apiutil.RequireSession(w, r)
	if principal == nil {
		return
	}

	var req voucherRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.PartnerID <= 0 || req.Reference == "" {
		http.Error(w, "partnerId and reference are required", http.StatusBadRequest)
		return
	}
	exchangedOn, err := apiutil.ParseDate("exchangedOn", req.ExchangedOn)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := queries.CreateVoucherExchange(r.Context(), appdb.CreateVoucherExchangeParams{
		PartnerID:   req.PartnerID,
		Reference:   req.Reference,
		Amount:      req.Amount,
		ExchangedOn: exchangedOn,
	})
	if err != nil {
		logger.Error().Err(err).Int64("partner_id", req.PartnerID).Msg("Failed to create voucher exchange")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	audit.Record(r.Context(), queries, principal.ID, "create", "voucher_exchange", id)
	apiutil.WriteJSON(w, http.StatusCreated, voucherResponse{
		ID:          id,
		PartnerID:   req.PartnerID,
		Reference:   req.Reference,
		Amount:      req.Amount,
		ExchangedOn: exchangedOn,
	})
}
