package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/capturedesk/capturedesk/internal/api/middleware"
	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/capturedesk/capturedesk/internal/service"
)

type OpportunityHandler struct {
	svc *service.OpportunityService
}

func NewOpportunityHandler(svc *service.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{svc: svc}
}

type opportunityRequest struct {
	CompanyID          *uuid.UUID `json:"company_id"`
	Name               string     `json:"name"`
	Agency             string     `json:"agency"`
	SolicitationNumber string     `json:"solicitation_number"`
	NAICSCode          string     `json:"naics_code"`
	Stage              string     `json:"stage"`
	Amount             float64    `json:"amount"`
	Probability        int        `json:"probability"`
	CloseDate          *time.Time `json:"close_date"`
	OwnerID            *uuid.UUID `json:"owner_id"`
}

func (h *OpportunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req opportunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Stage != "" && !domain.ValidStage(req.Stage) {
		writeError(w, http.StatusBadRequest, "Invalid stage")
		return
	}
	if req.Amount < 0 {
		writeError(w, http.StatusBadRequest, "amount must not be negative")
		return
	}
	if req.Probability < 0 || req.Probability > 100 {
		writeError(w, http.StatusBadRequest, "probability must be between 0 and 100")
		return
	}

	o, err := h.svc.Create(r.Context(), *ident, service.CreateOpportunityInput{
		CompanyID:          req.CompanyID,
		Name:               req.Name,
		Agency:             req.Agency,
		SolicitationNumber: req.SolicitationNumber,
		NAICSCode:          req.NAICSCode,
		Stage:              req.Stage,
		Amount:             req.Amount,
		Probability:        req.Probability,
		CloseDate:          req.CloseDate,
		OwnerID:            req.OwnerID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create opportunity")
		return
	}

	writeJSON(w, http.StatusCreated, o)
}

func (h *OpportunityHandler) List(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var filter domain.OpportunityFilter
	if stage := r.URL.Query().Get("stage"); stage != "" {
		if !domain.ValidStage(stage) {
			writeError(w, http.StatusBadRequest, "Invalid stage")
			return
		}
		filter.Stage = stage
	}
	if owner := r.URL.Query().Get("owner_id"); owner != "" {
		id, err := uuid.Parse(owner)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid owner_id")
			return
		}
		filter.OwnerID = &id
	}

	opps, err := h.svc.List(r.Context(), ident.TenantID, filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list opportunities")
		return
	}
	if opps == nil {
		opps = []domain.Opportunity{}
	}

	writeJSON(w, http.StatusOK, opps)
}

func (h *OpportunityHandler) Get(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid opportunity ID")
		return
	}

	o, err := h.svc.GetByID(r.Context(), id, ident.TenantID)
	if err != nil {
		if errors.Is(err, service.ErrOpportunityNotFound) {
			writeError(w, http.StatusNotFound, "Opportunity not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get opportunity")
		return
	}

	writeJSON(w, http.StatusOK, o)
}

type opportunityUpdateRequest struct {
	CompanyID          *uuid.UUID `json:"company_id"`
	Name               *string    `json:"name"`
	Agency             *string    `json:"agency"`
	SolicitationNumber *string    `json:"solicitation_number"`
	NAICSCode          *string    `json:"naics_code"`
	Stage              *string    `json:"stage"`
	Amount             *float64   `json:"amount"`
	Probability        *int       `json:"probability"`
	CloseDate          *time.Time `json:"close_date"`
	OwnerID            *uuid.UUID `json:"owner_id"`
}

func (h *OpportunityHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid opportunity ID")
		return
	}

	var req opportunityUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name must not be empty")
		return
	}
	if req.Stage != nil && !domain.ValidStage(*req.Stage) {
		writeError(w, http.StatusBadRequest, "Invalid stage")
		return
	}
	if req.Amount != nil && *req.Amount < 0 {
		writeError(w, http.StatusBadRequest, "amount must not be negative")
		return
	}
	if req.Probability != nil && (*req.Probability < 0 || *req.Probability > 100) {
		writeError(w, http.StatusBadRequest, "probability must be between 0 and 100")
		return
	}

	o, err := h.svc.Update(r.Context(), *ident, id, service.UpdateOpportunityInput{
		CompanyID:          req.CompanyID,
		Name:               req.Name,
		Agency:             req.Agency,
		SolicitationNumber: req.SolicitationNumber,
		NAICSCode:          req.NAICSCode,
		Stage:              req.Stage,
		Amount:             req.Amount,
		Probability:        req.Probability,
		CloseDate:          req.CloseDate,
		OwnerID:            req.OwnerID,
	})
	if err != nil {
		if errors.Is(err, service.ErrOpportunityNotFound) {
			writeError(w, http.StatusNotFound, "Opportunity not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update opportunity")
		return
	}

	writeJSON(w, http.StatusOK, o)
}
