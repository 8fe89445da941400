package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"cryptofolio/src/schemas"
	"cryptofolio/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromContext(r.Context())
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	coinID := r.URL.Query().Get("coinId")

	var transactions []schemas.TransactionResponse
	if coinID != "" {
		transactions, err = h.TransactionsController.GetTransactionsByCoin(ctx, userID, coinID)
	} else {
		transactions, err = h.TransactionsController.GetTransactions(ctx, userID)
	}
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, transactions, http.StatusOK)
}

func (h *Handler) GetTransactionByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromContext(r.Context())
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	id, err := transactionID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	transaction, err := h.TransactionsController.GetTransactionByID(ctx, userID, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, transaction, http.StatusOK)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromContext(r.Context())
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	transaction, err := h.TransactionsController.CreateTransaction(ctx, userID, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, transaction, http.StatusCreated)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromContext(r.Context())
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	id, err := transactionID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	transaction, err := h.TransactionsController.UpdateTransaction(ctx, userID, id, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, transaction, http.StatusOK)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromContext(r.Context())
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	id, err := transactionID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	transaction, err := h.TransactionsController.DeleteTransaction(ctx, userID, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, transaction, http.StatusOK)
}

func transactionID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, utils.UnprocessableEntity("invalid transaction id")
	}
	return id, nil
}
