package ledger

import (
	"context"
	"cryptodesk/internal/adapters"
	"cryptodesk/internal/platform/metrics"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DepositWorkerName = "deposit-confirmations"
	autoConfirmSuffix = " | Auto-confirmed"
)

// TaskSupervisor runs named background tasks, at most one per name.
type TaskSupervisor interface {
	StartOnce(name string, every time.Duration, task func(ctx context.Context)) (bool, error)
}

// DepositWorker matures pending deposits into confirmed balance credits.
type DepositWorker struct {
	repo         adapters.LedgerRepository
	supervisor   TaskSupervisor
	maturation   time.Duration
	pollInterval time.Duration
	now          func() time.Time
}

func NewDepositWorker(repo adapters.LedgerRepository, supervisor TaskSupervisor, maturation, pollInterval time.Duration, now func() time.Time) *DepositWorker {
	if maturation <= 0 {
		maturation = 15 * time.Second
	}
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}
	if now == nil {
		now = time.Now
	}
	return &DepositWorker{repo: repo, supervisor: supervisor, maturation: maturation, pollInterval: pollInterval, now: now}
}

// EnsureStarted starts the polling task unless it already runs.
func (w *DepositWorker) EnsureStarted() error {
	started, err := w.supervisor.StartOnce(DepositWorkerName, w.pollInterval, w.run)
	if err != nil {
		return fmt.Errorf("failed to start deposit worker: %w", err)
	}
	if started {
		logrus.Infof("Deposit worker started, maturation %s", w.maturation)
	}
	return nil
}

// StartIfPending starts the worker at boot when deposits were left pending by a previous process.
func (w *DepositWorker) StartIfPending(ctx context.Context) error {
	pending, err := w.repo.GetPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to check pending deposits: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}
	logrus.Infof("%d pending deposits left from a previous run", len(pending))
	return w.EnsureStarted()
}

func (w *DepositWorker) run(ctx context.Context) {
	execID := uuid.NewString()
	if err := ConfirmMatureDeposits(ctx, execID, w.repo, w.maturation, w.now()); err != nil {
		metrics.DepositErrors.Inc()
		logrus.Errorf("Confirm deposits job %s failed: %v", execID, err)
	}
}

// ConfirmMatureDeposits confirms and credits every pending deposit at least maturation old.
// A row that fails stays pending and is retried on the next pass.
func ConfirmMatureDeposits(ctx context.Context, execID string, repo adapters.LedgerRepository, maturation time.Duration, now time.Time) error {
	// STEP 1: getting pending deposits from DB
	pending, err := repo.GetPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pending deposits: %w", err)
	}
	metrics.DepositsPending.Set(float64(len(pending)))

	if len(pending) == 0 {
		logrus.Debugf("Nothing to confirm this time; execID: %s", execID)
		return nil
	}

	// STEP 2: confirming the mature ones one by one. Each confirmation flips the
	// status and credits the balance in its own database transaction, so a failure
	// in the middle leaves already confirmed rows intact.
	confirmed, skipped := 0, 0
	for _, tx := range pending {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if now.Sub(tx.CreatedAt) < maturation {
			continue
		}

		ok, confirmErr := repo.ConfirmDeposit(ctx, tx.ID, autoConfirmSuffix)
		if confirmErr != nil {
			metrics.DepositErrors.Inc()
			logrus.WithError(confirmErr).WithFields(logrus.Fields{"execID": execID, "txID": tx.ID}).Error("deposit wasn't confirmed, retrying next pass")
			continue
		}
		if !ok {
			// confirmed by someone else between STEP 1 and now
			skipped++
			continue
		}
		confirmed++
		metrics.DepositsConfirmed.Inc()
	}

	if confirmed > 0 || skipped > 0 {
		logrus.Infof("%d deposits confirmed, %d already confirmed; execID: %s", confirmed, skipped, execID)
	}
	return nil
}
