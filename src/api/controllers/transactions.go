package controllers

import (
	"context"
	"fmt"
	"time"

	"cryptofolio/src/models"
	"cryptofolio/src/repositories"
	"cryptofolio/src/schemas"
	"cryptofolio/src/services"
	"cryptofolio/src/utils"
)

type TransactionsControllerI interface {
	GetTransactions(ctx context.Context, userID int) ([]schemas.TransactionResponse, error)
	GetTransactionsByCoin(ctx context.Context, userID int, coinID string) ([]schemas.TransactionResponse, error)
	GetTransactionByID(ctx context.Context, userID, id int) (*schemas.TransactionResponse, error)
	CreateTransaction(ctx context.Context, userID int, req *schemas.CreateTransactionRequest) (*schemas.TransactionResponse, error)
	UpdateTransaction(ctx context.Context, userID, id int, req *schemas.UpdateTransactionRequest) (*schemas.TransactionResponse, error)
	DeleteTransaction(ctx context.Context, userID, id int) (*schemas.TransactionResponse, error)
}

// TransactionsController owns the transaction write path: validation, the
// sell-side balance guard, persistence and the mandatory reconciliation
// that follows every mutation.
type TransactionsController struct {
	transactionRepository repositories.TransactionRepository
	holdingRepository     repositories.HoldingRepository
	reconciler            services.ReconcileServiceI
}

func NewTransactionsController(transactionRepository repositories.TransactionRepository, holdingRepository repositories.HoldingRepository, reconciler services.ReconcileServiceI) *TransactionsController {
	return &TransactionsController{
		transactionRepository: transactionRepository,
		holdingRepository:     holdingRepository,
		reconciler:            reconciler,
	}
}

func (c *TransactionsController) GetTransactions(ctx context.Context, userID int) ([]schemas.TransactionResponse, error) {
	transactions, err := c.transactionRepository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(transactions), nil
}

func (c *TransactionsController) GetTransactionsByCoin(ctx context.Context, userID int, coinID string) ([]schemas.TransactionResponse, error) {
	transactions, err := c.transactionRepository.GetByCoinID(ctx, userID, coinID)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(transactions), nil
}

func (c *TransactionsController) GetTransactionByID(ctx context.Context, userID, id int) (*schemas.TransactionResponse, error) {
	transaction, err := c.ownedTransaction(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	response := toTransactionResponse(transaction, "")
	return &response, nil
}

func (c *TransactionsController) CreateTransaction(ctx context.Context, userID int, req *schemas.CreateTransactionRequest) (*schemas.TransactionResponse, error) {
	if req.CoinID == "" {
		return nil, utils.BadRequest("please select a coin")
	}
	if err := validateTransactionInput(req.Type, req.Amount, req.Price); err != nil {
		return nil, err
	}

	if req.Type == models.TransactionTypeSell {
		if err := c.checkSellBalance(ctx, userID, req.CoinID, req.CoinSymbol, req.Amount); err != nil {
			return nil, err
		}
	}

	transaction := &models.Transaction{
		UserID:     userID,
		CoinID:     req.CoinID,
		CoinSymbol: req.CoinSymbol,
		CoinName:   req.CoinName,
		Type:       req.Type,
		Amount:     req.Amount,
		Price:      req.Price,
		Date:       dateFromMillis(req.Date),
		Notes:      req.Notes,
	}
	if err := c.transactionRepository.Create(ctx, transaction); err != nil {
		return nil, err
	}

	response := toTransactionResponse(transaction, c.reconcile(ctx, transaction))
	return &response, nil
}

func (c *TransactionsController) UpdateTransaction(ctx context.Context, userID, id int, req *schemas.UpdateTransactionRequest) (*schemas.TransactionResponse, error) {
	original, err := c.ownedTransaction(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := validateTransactionInput(req.Type, req.Amount, req.Price); err != nil {
		return nil, err
	}

	// The owning user and coin never change on edit.
	updated := *original
	updated.Type = req.Type
	updated.Amount = req.Amount
	updated.Price = req.Price
	updated.Notes = req.Notes
	if req.Date != 0 {
		updated.Date = dateFromMillis(req.Date)
	}

	if err := c.transactionRepository.Update(ctx, &updated); err != nil {
		return nil, err
	}

	response := toTransactionResponse(&updated, c.reconcile(ctx, &updated))
	return &response, nil
}

func (c *TransactionsController) DeleteTransaction(ctx context.Context, userID, id int) (*schemas.TransactionResponse, error) {
	transaction, err := c.ownedTransaction(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := c.transactionRepository.Delete(ctx, id); err != nil {
		return nil, err
	}

	response := toTransactionResponse(transaction, c.reconcile(ctx, transaction))
	return &response, nil
}

// checkSellBalance rejects a SELL that exceeds the current holding before
// anything is persisted. History already written is trusted as-is.
func (c *TransactionsController) checkSellBalance(ctx context.Context, userID int, coinID, coinSymbol string, amount float64) error {
	holding, err := c.holdingRepository.GetByCoinID(ctx, userID, coinID)
	if err != nil {
		return err
	}
	if holding == nil {
		return utils.BadRequest(fmt.Sprintf("you don't own any %s to sell", coinSymbol))
	}
	if holding.Amount < amount {
		return utils.BadRequest(fmt.Sprintf("insufficient balance: only %g %s available", holding.Amount, coinSymbol))
	}
	return nil
}

// reconcile runs after every mutation. A failure never rolls back the
// transaction write; it is surfaced as a warning on the response.
func (c *TransactionsController) reconcile(ctx context.Context, t *models.Transaction) string {
	if err := c.reconciler.Reconcile(ctx, t.UserID, t.CoinID, t.CoinSymbol, t.CoinName); err != nil {
		return "transaction saved, but the holding could not be reconciled; it will be corrected on the next change"
	}
	return ""
}

func (c *TransactionsController) ownedTransaction(ctx context.Context, userID, id int) (*models.Transaction, error) {
	transaction, err := c.transactionRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if transaction == nil || transaction.UserID != userID {
		return nil, utils.NotFound("transaction not found")
	}
	return transaction, nil
}

func validateTransactionInput(transactionType string, amount, price float64) error {
	if transactionType != models.TransactionTypeBuy && transactionType != models.TransactionTypeSell {
		return utils.BadRequest("transaction type must be BUY or SELL")
	}
	if amount <= 0 {
		return utils.BadRequest("please enter a valid amount")
	}
	if price <= 0 {
		return utils.BadRequest("please enter a valid price")
	}
	return nil
}

func dateFromMillis(millis int64) time.Time {
	if millis == 0 {
		return time.Now()
	}
	return time.UnixMilli(millis)
}

func toTransactionResponse(t *models.Transaction, warning string) schemas.TransactionResponse {
	return schemas.TransactionResponse{
		ID:         t.ID,
		CoinID:     t.CoinID,
		CoinSymbol: t.CoinSymbol,
		CoinName:   t.CoinName,
		Type:       t.Type,
		Amount:     t.Amount,
		Price:      t.Price,
		Date:       t.Date,
		Notes:      t.Notes,
		Warning:    warning,
	}
}

func toTransactionResponses(transactions []models.Transaction) []schemas.TransactionResponse {
	responses := make([]schemas.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, toTransactionResponse(&transactions[i], ""))
	}
	return responses
}
