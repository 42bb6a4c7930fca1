package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/capturedesk/capturedesk/internal/api/middleware"
	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/capturedesk/capturedesk/internal/service"
)

type CaptureHandler struct {
	svc *service.CaptureService
}

func NewCaptureHandler(svc *service.CaptureService) *CaptureHandler {
	return &CaptureHandler{svc: svc}
}

type captureRequest struct {
	OpportunityID uuid.UUID `json:"opportunity_id"`
	Phase         string    `json:"phase"`
	WinThemes     string    `json:"win_themes"`
	Notes         string    `json:"notes"`
}

func (h *CaptureHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req captureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.OpportunityID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "opportunity_id is required")
		return
	}
	if req.Phase != "" && !domain.ValidPhase(req.Phase) {
		writeError(w, http.StatusBadRequest, "Invalid phase")
		return
	}

	c, err := h.svc.Create(r.Context(), *ident, service.CreateCaptureInput{
		OpportunityID: req.OpportunityID,
		Phase:         req.Phase,
		WinThemes:     req.WinThemes,
		Notes:         req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrOpportunityNotFound) {
			writeError(w, http.StatusNotFound, "Opportunity not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create capture")
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

func (h *CaptureHandler) List(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var opportunityID *uuid.UUID
	if raw := r.URL.Query().Get("opportunity_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid opportunity_id")
			return
		}
		opportunityID = &id
	}

	captures, err := h.svc.List(r.Context(), ident.TenantID, opportunityID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list captures")
		return
	}
	if captures == nil {
		captures = []domain.Capture{}
	}

	writeJSON(w, http.StatusOK, captures)
}

func (h *CaptureHandler) Get(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid capture ID")
		return
	}

	c, err := h.svc.GetByID(r.Context(), id, ident.TenantID)
	if err != nil {
		if errors.Is(err, service.ErrCaptureNotFound) {
			writeError(w, http.StatusNotFound, "Capture not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get capture")
		return
	}

	writeJSON(w, http.StatusOK, c)
}

type captureUpdateRequest struct {
	Phase     *string `json:"phase"`
	Status    *string `json:"status"`
	WinThemes *string `json:"win_themes"`
	Notes     *string `json:"notes"`
}

func (h *CaptureHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid capture ID")
		return
	}

	var req captureUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Phase != nil && !domain.ValidPhase(*req.Phase) {
		writeError(w, http.StatusBadRequest, "Invalid phase")
		return
	}
	if req.Status != nil && !domain.ValidCaptureStatus(*req.Status) {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	c, err := h.svc.Update(r.Context(), *ident, id, service.UpdateCaptureInput{
		Phase:     req.Phase,
		Status:    req.Status,
		WinThemes: req.WinThemes,
		Notes:     req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrCaptureNotFound) {
			writeError(w, http.StatusNotFound, "Capture not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update capture")
		return
	}

	writeJSON(w, http.StatusOK, c)
}
