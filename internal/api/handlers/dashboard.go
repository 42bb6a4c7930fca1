package handlers

import (
	"net/http"

	"github.com/capturedesk/capturedesk/internal/api/middleware"
	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/capturedesk/capturedesk/internal/service"
)

type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) KPIs(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	kpis, err := h.svc.KPIs(r.Context(), ident.TenantID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute KPIs")
		return
	}

	writeJSON(w, http.StatusOK, kpis)
}

func (h *DashboardHandler) PipelineByStage(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summary, err := h.svc.PipelineByStage(r.Context(), ident.TenantID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute pipeline summary")
		return
	}
	if summary == nil {
		summary = []domain.StageSummary{}
	}

	writeJSON(w, http.StatusOK, summary)
}
