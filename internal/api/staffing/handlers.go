// internal/api/staffing/handlers.go
package staffing

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/nyaruka/phonenumbers"
	"github.com/rs/zerolog/log"

	"tourdesk/internal/api/apiutil"
	"tourdesk/internal/audit"
	appdb "tourdesk/internal/db"
)

const (
	resourceTypePathKey = "type"
	resourceIDPathKey   = "id"
	defaultPhoneRegion  = "IT"
)

var queries *appdb.Queries

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB) {
	if database == nil {
		return
	}
	queries = database.Queries
}

type resourceRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	PaidInCash bool   `json:"paidInCash"`
	Active     *bool  `json:"active"`
}

type guideResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	PaidInCash bool   `json:"paid_in_cash"`
	Active     bool   `json:"active"`
}

type contactResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Active bool   `json:"active"`
}

func validResourceType(resourceType string) bool {
	switch resourceType {
	case appdb.ResourceGuide, appdb.ResourceEscort, appdb.ResourceHeadphone, appdb.ResourcePrinting:
		return true
	}
	return false
}

// validPhone accepts empty phones; non-empty ones must parse as a valid
// number, defaulting to the operator's home region when no country code is
// given.
func validPhone(phone string) bool {
	if phone == "" {
		return true
	}
	num, err := phonenumbers.Parse(phone, defaultPhoneRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}

func validateResourceRequest(req resourceRequest) error {
	if req.Name == "" {
		return apiutil.FieldError{Field: "name", Reason: "is required"}
	}
	if !validPhone(req.Phone) {
		return apiutil.FieldError{Field: "phone", Reason: "is not a valid phone number"}
	}
	return nil
}

func guideToResponse(g appdb.Guide) guideResponse {
	return guideResponse{ID: g.ID, Name: g.Name, Email: g.Email, Phone: g.Phone, PaidInCash: g.PaidInCash, Active: g.Active}
}

func contactToResponse(c appdb.Contact) contactResponse {
	return contactResponse{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, Active: c.Active}
}

func resourceTypeFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	resourceType := r.PathValue(resourceTypePathKey)
	if !validResourceType(resourceType) {
		http.Error(w, "Unknown resource type", http.StatusNotFound)
		return "", false
	}
	return resourceType, true
}

func idFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(resourceIDPathKey), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// GET /api/v1/staffing/{type}
func HandleListResources(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if apiutil.RequireSession(w, r) == nil {
		return
	}
	resourceType, ok := resourceTypeFromPath(w, r)
	if !ok {
		return
	}

	if resourceType == appdb.ResourceGuide {
		guides, err := queries.ListGuides(r.Context())
		if err != nil {
			logger.Error().Err(err).Msg("Failed to list guides")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		items := make([]guideResponse, 0, len(guides))
		for _, g := range guides {
			items = append(items, guideToResponse(g))
		}
		apiutil.WriteJSON(w, http.StatusOK, items)
		return
	}

	contacts, err := queries.ListContacts(r.Context(), resourceType)
	if err != nil {
		logger.Error().Err(err).Str("resource_type", resourceType).Msg("Failed to list contacts")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	items := make([]contactResponse, 0, len(contacts))
	for _, c := range contacts {
		items = append(items, contactToResponse(c))
	}
	apiutil.WriteJSON(w, http.StatusOK, items)
}

// POST /api/v1/staffing/{type}
func HandleCreateResource(w http.ResponseWriter, r *http.Request) {
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
	resourceType, ok := resourceTypeFromPath(w, r)
	if !ok {
		return
	}

	var req resourceRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validateResourceRequest(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if resourceType == appdb.ResourceGuide {
		guide, err := queries.CreateGuide(r.Context(), appdb.CreateGuideParams{
			Name:       req.Name,
			Email:      req.Email,
			Phone:      req.Phone,
			PaidInCash: req.PaidInCash,
		})
		if err != nil {
			logger.Error().Err(err).Msg("Failed to create guide")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		audit.Record(r.Context(), queries, principal.ID, "create", "guide", guide.ID)
		apiutil.WriteJSON(w, http.StatusCreated, guideToResponse(guide))
		return
	}

	contact, err := queries.CreateContact(r.Context(), appdb.CreateContactParams{
		ResourceType: resourceType,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
	})
	if err != nil {
		logger.Error().Err(err).Str("resource_type", resourceType).Msg("Failed to create contact")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	audit.Record(r.Context(), queries, principal.ID, "create", resourceType, contact.ID)
	apiutil.WriteJSON(w, http.StatusCreated, contactToResponse(contact))
}

// PUT /api/v1/staffing/{type}/{id}
func HandleUpdateResource(w http.ResponseWriter, r *http.Request) {
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
	resourceType, ok := resourceTypeFromPath(w, r)
	if !ok {
		return
	}
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}

	var req resourceRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validateResourceRequest(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	if resourceType == appdb.ResourceGuide {
		guide, err := queries.UpdateGuide(r.Context(), appdb.UpdateGuideParams{
			ID:         id,
			Name:       req.Name,
			Email:      req.Email,
			Phone:      req.Phone,
			PaidInCash: req.PaidInCash,
			Active:     active,
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "Not Found", http.StatusNotFound)
				return
			}
			logger.Error().Err(err).Int64("guide_id", id).Msg("Failed to update guide")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		audit.Record(r.Context(), queries, principal.ID, "update", "guide", id)
		apiutil.WriteJSON(w, http.StatusOK, guideToResponse(guide))
		return
	}

	contact, err := queries.UpdateContact(r.Context(), appdb.UpdateContactParams{
		ResourceType: resourceType,
		ID:           id,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Active:       active,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("resource_type", resourceType).Int64("id", id).Msg("Failed to update contact")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	audit.Record(r.Context(), queries, principal.ID, "update", resourceType, id)
	apiutil.WriteJSON(w, http.StatusOK, contactToResponse(contact))
}

// DELETE /api/v1/staffing/{type}/{id}
func HandleDeleteResource(w http.ResponseWriter, r *http.Request) {
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
	resourceType, ok := resourceTypeFromPath(w, r)
	if !ok {
		return
	}
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}

	var err error
	if resourceType == appdb.ResourceGuide {
		err = queries.DeleteGuide(r.Context(), id)
	} else {
		err = queries.DeleteContact(r.Context(), resourceType, id)
	}
	if err != nil {
		logger.Error().Err(err).Str("resource_type", resourceType).Int64("id", id).Msg("Failed to delete resource")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	audit.Record(r.Context(), queries, principal.ID, "delete", resourceType, id)
	w.WriteHeader(http.StatusNoContent)
}
