package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cryptofolio/src/models"
	"cryptofolio/src/repositories"
	"cryptofolio/src/utils"

	"github.com/sethvargo/go-retry"
)

// ClosedPositionEpsilon compensates for floating point residue left by
// repeated buy/sell arithmetic: any replayed amount at or below it counts
// as a fully closed position.
const ClosedPositionEpsilon = 1e-8

const recalculatedNote = "Calculated from history"

// ErrReconcileFailed reports that a holding could not be brought in line
// with its transaction history. The transaction mutation that triggered
// reconciliation has already been persisted; the holding is stale until
// the next attempt.
var ErrReconcileFailed = errors.New("holding reconciliation failed")

type ReconcileServiceI interface {
	Reconcile(ctx context.Context, userID int, coinID, coinSymbol, coinName string) error
}

// ReconcileService recomputes and persists the holding for one
// (user, coin) pair from its transaction history. Runs for the same pair
// are serialized; different pairs proceed in parallel.
type ReconcileService struct {
	transactionRepository repositories.TransactionRepository
	holdingRepository     repositories.HoldingRepository
	ledger                LedgerServiceI

	keyLocks map[string]*sync.Mutex
	mapMutex sync.RWMutex
}

func NewReconcileService(transactionRepository repositories.TransactionRepository, holdingRepository repositories.HoldingRepository, ledger LedgerServiceI) *ReconcileService {
	return &ReconcileService{
		transactionRepository: transactionRepository,
		holdingRepository:     holdingRepository,
		ledger:                ledger,
		keyLocks:              make(map[string]*sync.Mutex),
	}
}

// Reconcile must be called after every transaction create, update and
// delete for the pair. It is idempotent: a second call with unchanged
// history performs no further mutation. Store failures are retried with
// backoff before the error is surfaced.
func (s *ReconcileService) Reconcile(ctx context.Context, userID int, coinID, coinSymbol, coinName string) error {
	lock := s.lockFor(userID, coinID)
	lock.Lock()
	defer lock.Unlock()

	backoff, err := retry.NewExponential(200 * time.Millisecond)
	if err != nil {
		return err
	}

	err = retry.Do(ctx, retry.WithMaxRetries(2, backoff), func(ctx context.Context) error {
		if err := s.reconcileOnce(ctx, userID, coinID, coinSymbol, coinName); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		utils.LoggerFromContext(ctx).WithError(err).WithFields(map[string]interface{}{
			"userId": userID,
			"coinId": coinID,
		}).Warn("holding left stale after reconciliation retries")
		return fmt.Errorf("%w: %v", ErrReconcileFailed, err)
	}
	return nil
}

func (s *ReconcileService) reconcileOnce(ctx context.Context, userID int, coinID, coinSymbol, coinName string) error {
	transactions, err := s.transactionRepository.GetByCoinID(ctx, userID, coinID)
	if err != nil {
		return err
	}

	amount, avgPrice := s.ledger.Recalculate(transactions)

	existing, err := s.holdingRepository.GetByCoinID(ctx, userID, coinID)
	if err != nil {
		return err
	}

	if amount <= ClosedPositionEpsilon {
		if amount < 0 {
			utils.LoggerFromContext(ctx).WithFields(map[string]interface{}{
				"userId": userID,
				"coinId": coinID,
				"amount": amount,
			}).Warn("transaction history replays to a negative amount, treating position as closed")
		}
		if existing != nil {
			return s.holdingRepository.Delete(ctx, existing.ID)
		}
		return nil
	}

	if existing != nil {
		existing.Amount = amount
		existing.AvgPrice = avgPrice
		existing.Notes = recalculatedNote
		return s.holdingRepository.Update(ctx, existing)
	}

	holding := &models.Holding{
		UserID:     userID,
		CoinID:     coinID,
		CoinSymbol: coinSymbol,
		CoinName:   coinName,
		Amount:     amount,
		AvgPrice:   avgPrice,
		OpenedAt:   time.Now(),
		Notes:      recalculatedNote,
	}
	return s.holdingRepository.Create(ctx, holding)
}

func (s *ReconcileService) lockFor(userID int, coinID string) *sync.Mutex {
	key := fmt.Sprintf("%d:%s", userID, coinID)

	s.mapMutex.RLock()
	lock, ok := s.keyLocks[key]
	s.mapMutex.RUnlock()
	if ok {
		return lock
	}

	s.mapMutex.Lock()
	defer s.mapMutex.Unlock()
	if lock, ok := s.keyLocks[key]; ok {
		return lock
	}
	lock = &sync.Mutex{}
	s.keyLocks[key] = lock
	return lock
}
