package handlers

import (
	"net/http"
	"strconv"

	"github.com/capturedesk/capturedesk/internal/api/middleware"
	"github.com/capturedesk/capturedesk/internal/domain"
	"github.com/capturedesk/capturedesk/internal/service"
)

type ActivityHandler struct {
	svc *service.ActivityService
}

func NewActivityHandler(svc *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

func (h *ActivityHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	activities, err := h.svc.ListRecent(r.Context(), ident.TenantID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list activities")
		return
	}
	if activities == nil {
		activities = []domain.Activity{}
	}

	writeJSON(w, http.StatusOK, activities)
}
