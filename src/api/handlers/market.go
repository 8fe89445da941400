package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetMarkets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("perPage"))

	markets, err := h.MarketController.GetMarkets(ctx, page, perPage)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, markets, http.StatusOK)
}

func (h *Handler) GetCoinDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	detail, err := h.MarketController.GetCoinDetail(ctx, chi.URLParam(r, "coinId"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, detail, http.StatusOK)
}

func (h *Handler) SearchCoins(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := h.MarketController.SearchCoins(ctx, r.URL.Query().Get("query"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, result, http.StatusOK)
}
