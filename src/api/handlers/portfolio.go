package handlers

import (
	"context"
	"net/http"
	"time"
)

func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromContext(r.Context())
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	portfolio, err := h.PortfolioController.GetPortfolio(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, portfolio, http.StatusOK)
}

func (h *Handler) RefreshPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromContext(r.Context())
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	portfolio, err := h.PortfolioController.RefreshPortfolio(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, portfolio, http.StatusOK)
}
