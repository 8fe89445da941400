package handlers

import (
	"context"
	"net/http"
	"time"
)

func (h *Handler) GetHoldings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromContext(r.Context())
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	holdings, err := h.HoldingsController.GetHoldings(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, holdings, http.StatusOK)
}
