// internal/api/staffing/assignments.go
package staffing

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"tourdesk/internal/api/apiutil"
	"tourdesk/internal/audit"
	appdb "tourdesk/internal/db"
)

type assignmentRequest struct {
	ResourceType   string `json:"resourceType"`
	ResourceID     int64  `json:"resourceId"`
	AvailabilityID int64  `json:"availabilityId"`
}

type assignmentResponse struct {
	ID             int64  `json:"id"`
	ResourceType   string `json:"resource_type"`
	ResourceID     int64  `json:"resource_id"`
	AvailabilityID int64  `json:"availability_id"`
}

// POST /api/v1/staffing/assignments
func HandleCreateAssignment(w http.ResponseWriter, r *http.Request) {
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

	var req assignmentRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !validResourceType(req.ResourceType) {
		http.Error(w, "Unknown resource type", http.StatusBadRequest)
		return
	}
	if req.ResourceID <= 0 || req.AvailabilityID <= 0 {
		http.Error(w, "resourceId and availabilityId are required", http.StatusBadRequest)
		return
	}

	// The slot must exist before a resource can be assigned to it.
	if _, err := queries.GetAvailability(r.Context(), req.AvailabilityID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Unknown availability", http.StatusBadRequest)
			return
		}
		logger.Error().Err(err).Int64("availability_id", req.AvailabilityID).Msg("Failed to look up availability")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	id, err := queries.CreateAssignment(r.Context(), appdb.CreateAssignmentParams{
		ResourceType:   req.ResourceType,
		ResourceID:     req.ResourceID,
		AvailabilityID: req.AvailabilityID,
	})
	if err != nil {
		logger.Error().Err(err).Str("resource_type", req.ResourceType).Msg("Failed to create assignment")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	audit.Record(r.Context(), queries, principal.ID, "assign", req.ResourceType+"_assignment", id)
	apiutil.WriteJSON(w, http.StatusCreated, assignmentResponse{
		ID:             id,
		ResourceType:   req.ResourceType,
		ResourceID:     req.ResourceID,
		AvailabilityID: req.AvailabilityID,
	})
}

// DELETE /api/v1/staffing/assignments/{type}/{id}
func HandleDeleteAssignment(w http.ResponseWriter, r *http.Request) {
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

	if err := queries.DeleteAssignment(r.Context(), resourceType, id); err != nil {
		logger.Error().Err(err).Str("resource_type", resourceType).Int64("id", id).Msg("Failed to delete assignment")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	audit.Record(r.Context(), queries, principal.ID, "unassign", resourceType+"_assignment", id)
	w.WriteHeader(http.StatusNoContent)
}

type serviceGroupRequest struct {
	GuideID           int64   `json:"guideId"`
	MemberAssignments []int64 `json:"memberAssignments"`
	PrimaryAssignment int64   `json:"primaryAssignment"`
}

// POST /api/v1/staffing/service-groups
//
// Bundles guide assignments (typically simultaneous half-capacity slots)
// under one group so the guide is billed once, via the primary assignment.
func HandleCreateServiceGroup(w http.ResponseWriter, r *http.Request) {
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

	var req serviceGroupRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.GuideID <= 0 || len(req.MemberAssignments) < 2 {
		http.Error(w, "guideId and at least two member assignments are required", http.StatusBadRequest)
		return
	}
	primaryIsMember := false
	for _, assignmentID := range req.MemberAssignments {
		if assignmentID == req.PrimaryAssignment {
			primaryIsMember = true
			break
		}
	}
	if !primaryIsMember {
		http.Error(w, "primaryAssignment must be one of the member assignments", http.StatusBadRequest)
		return
	}

	groupID, err := queries.CreateServiceGroup(r.Context(), appdb.CreateServiceGroupParams{
		GuideID:           req.GuideID,
		MemberAssignments: req.MemberAssignments,
		PrimaryAssignment: req.PrimaryAssignment,
	})
	if err != nil {
		logger.Error().Err(err).Int64("guide_id", req.GuideID).Msg("Failed to create service group")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	audit.Record(r.Context(), queries, principal.ID, "create", "service_group", groupID)
	apiutil.WriteJSON(w, http.StatusCreated, map[string]int64{"id": groupID})
}
