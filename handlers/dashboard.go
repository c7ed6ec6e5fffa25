package handlers

import (
	"net/http"
	"time"

	"projecthub/database"
	"projecthub/respond"
)

type DashboardHandler struct {
	store *database.Store
	now   func() time.Time
}

func NewDashboardHandler(store *database.Store, now func() time.Time) *DashboardHandler {
	if now == nil {
		now = time.Now
	}
	return &DashboardHandler{
		store: store,
		now:   now,
	}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.store.Summary(r.Context(), h.now())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, summary)
}
