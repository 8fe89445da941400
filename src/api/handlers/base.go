package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"cryptofolio/src/api/controllers"
	"cryptofolio/src/utils"

	"github.com/go-chi/jwtauth"
)

type Handler struct {
	TransactionsController controllers.TransactionsControllerI
	HoldingsController     controllers.HoldingsControllerI
	PortfolioController    controllers.PortfolioControllerI
	MarketController       controllers.MarketControllerI
	AuthController         controllers.AuthControllerI
}

func NewHandler(
	transactionsController controllers.TransactionsControllerI,
	holdingsController controllers.HoldingsControllerI,
	portfolioController controllers.PortfolioControllerI,
	marketController controllers.MarketControllerI,
	authController controllers.AuthControllerI,
) *Handler {
	return &Handler{
		TransactionsController: transactionsController,
		HoldingsController:     holdingsController,
		PortfolioController:    portfolioController,
		MarketController:       marketController,
		AuthController:         authController,
	}
}

func Healthcheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	if errors.Is(err, context.DeadlineExceeded) {
		h.respond(w, nil, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	} else if errors.As(err, &httpErr) {
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	} else if err != nil {
		h.respond(w, nil, map[string]string{"error": err.Error()}, http.StatusInternalServerError)
	} else {
		h.respond(w, nil, map[string]string{"error": "Unhandled error"}, http.StatusInternalServerError)
	}
}

// userIDFromContext reads the authenticated user id placed in the request
// context by the jwtauth verifier.
func userIDFromContext(ctx context.Context) (int, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return 0, utils.Unauthorized("invalid token")
	}

	switch id := claims["user_id"].(type) {
	case float64:
		return int(id), nil
	case int64:
		return int(id), nil
	case int:
		return id, nil
	default:
		return 0, utils.Unauthorized("token carries no user id")
	}
}
