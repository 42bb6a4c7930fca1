package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/capturedesk/capturedesk/internal/api/middleware"
	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/capturedesk/capturedesk/internal/service"
)

type CompanyHandler struct {
	svc *service.CompanyService
}

func NewCompanyHandler(svc *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

type companyRequest struct {
	Name       string `json:"name"`
	DUNSNumber string `json:"duns_number"`
	CageCode   string `json:"cage_code"`
	Website    string `json:"website"`
	Notes      string `json:"notes"`
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	c, err := h.svc.Create(r.Context(), *ident, service.CreateCompanyInput{
		Name:       req.Name,
		DUNSNumber: req.DUNSNumber,
		CageCode:   req.CageCode,
		Website:    req.Website,
		Notes:      req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrCompanyExists) {
			writeError(w, http.StatusBadRequest, "Company with this name already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create company")
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	companies, err := h.svc.List(r.Context(), ident.TenantID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list companies")
		return
	}
	if companies == nil {
		companies = []domain.Company{}
	}

	writeJSON(w, http.StatusOK, companies)
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	c, err := h.svc.GetByID(r.Context(), id, ident.TenantID)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			writeError(w, http.StatusNotFound, "Company not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get company")
		return
	}

	writeJSON(w, http.StatusOK, c)
}
