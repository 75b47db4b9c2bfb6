package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/itimpact/spendx/internal/db"
	apperrors "github.com/itimpact/spendx/internal/errors"
	"github.com/itimpact/spendx/internal/logger"
	"github.com/itimpact/spendx/internal/models"
)

type recordResult struct {
	resp *models.CreateInvestmentResponse
	err  error
}

type recordRequest struct {
	ctx      context.Context
	req      models.CreateInvestmentRequest
	resultCh chan recordResult // buffered so a worker never blocks on a gone caller
}

// InvestmentRecorder inserts investments through a fixed worker pool.
// Writes for one user are serialized; different users proceed in parallel.
type InvestmentRecorder struct {
	db       db.TxBeginner
	workers  int
	queue    chan recordRequest
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	// mu orders enqueues against Stop: Submit holds it shared while sending,
	// Stop takes it exclusively to mark the recorder stopped.
	mu      sync.RWMutex
	stopped bool

	locks *models.UserLockManager
}

func NewInvestmentRecorder(conn db.TxBeginner, workers, queueSize int) *InvestmentRecorder {
	return &InvestmentRecorder{
		db:      conn,
		workers: workers,
		queue:   make(chan recordRequest, queueSize),
		stopCh:  make(chan struct{}),
		locks:   models.NewUserLockManager(),
	}
}

// Start launches the workers.
func (r *InvestmentRecorder) Start() {
	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
	logger.Get().Infow("investment recorder started", "workers", r.workers)
}

// Stop signals the workers and waits for them. Requests still queued are
// answered with ErrUnavailable.
func (r *InvestmentRecorder) Stop() {
	r.stopOnce.Do(func() {
		r.mu.Lock()
		r.stopped = true
		close(r.stopCh)
		r.mu.Unlock()

		r.wg.Wait()

		for {
			select {
			case pending := <-r.queue:
				pending.resultCh <- recordResult{err: apperrors.ErrUnavailable}
			default:
				logger.Get().Info("investment recorder stopped")
				return
			}
		}
	})
}

// Submit queues req and waits for its result or for ctx to end.
func (r *InvestmentRecorder) Submit(ctx context.Context, req models.CreateInvestmentRequest) (*models.CreateInvestmentResponse, error) {
	resultCh := make(chan recordResult, 1)

	if err := r.enqueue(ctx, recordRequest{ctx: ctx, req: req, resultCh: resultCh}); err != nil {
		return nil, err
	}

	select {
	case res := <-resultCh:
		return res.resp, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// enqueue hands rr to the workers unless the recorder is stopped. Once Stop
// has marked the recorder, nothing else reaches the queue, so its drain
// answers every request that did.
func (r *InvestmentRecorder) enqueue(ctx context.Context, rr recordRequest) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.stopped {
		return apperrors.ErrUnavailable
	}

	select {
	case r.queue <- rr:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *InvestmentRecorder) worker(id int) {
	defer r.wg.Done()

	for {
		select {
		case <-r.stopCh:
			return
		case rr := <-r.queue:
			if err := rr.ctx.Err(); err != nil {
				rr.resultCh <- recordResult{err: err}
				continue
			}
			resp, err := r.record(rr.ctx, rr.req)
			if err != nil {
				logger.Get().Debugw("investment not recorded", "worker", id, "user_id", rr.req.UserID, "error", err)
			}
			rr.resultCh <- recordResult{resp: resp, err: err}
		}
	}
}

// record runs one insert under the user's lock.
func (r *InvestmentRecorder) record(ctx context.Context, req models.CreateInvestmentRequest) (*models.CreateInvestmentResponse, error) {
	unlock := r.locks.Lock(req.UserID)
	defer unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("begin transaction: %w", err))
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE userId = $1 FOR SHARE", req.UserID,
	).Scan(&exists)
	if isNoRows(err) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("check user %d: %w", req.UserID, err))
	}

	var resp models.CreateInvestmentResponse
	err = tx.QueryRowContext(ctx, `
		INSERT INTO investments (userId, type, amount, currentValue, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING investmentId, createdAt`,
		req.UserID, req.Type, req.Amount, req.CurrentValue, strings.TrimSpace(req.Description),
	).Scan(&resp.InvestmentID, &resp.CreatedAt)
	if db.IsForeignKeyViolation(err) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("insert investment: %w", err))
	}

	if err = tx.Commit(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("commit investment: %w", err))
	}

	logger.Get().Infow("investment recorded",
		"investment_id", resp.InvestmentID,
		"user_id", req.UserID,
		"type", req.Type,
		"amount", req.Amount.String(),
	)
	return &resp, nil
}
