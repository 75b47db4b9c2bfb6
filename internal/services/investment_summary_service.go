package services

import (
	"context"
	"fmt"

	"github.com/itimpact/spendx/internal/db"
	apperrors "github.com/itimpact/spendx/internal/errors"
	"github.com/itimpact/spendx/internal/logger"
	"github.com/itimpact/spendx/internal/models"
)

// Sums are COALESCEd so a user without investments yields a row with a zero
// count rather than NULL totals.
const investmentTotalsQuery = `
	SELECT
		COALESCE(SUM(amount), 0)                AS totalInvestment,
		COALESCE(SUM(currentValue - amount), 0) AS totalReturn,
		COALESCE(SUM(currentValue), 0)          AS totalCurrentValue,
		COUNT(*)                                AS totalTransactions
	FROM investments
	WHERE userId = $1`

const investmentRecordsQuery = `
	SELECT investmentId, userId, type, amount, currentValue, createdAt, description
	FROM investments
	WHERE userId = $1
	ORDER BY createdAt, investmentId`

type investmentSummaryService struct {
	db db.Querier
}

func NewInvestmentSummaryService(q db.Querier) InvestmentSummaryServicer {
	return &investmentSummaryService{db: q}
}

// GetInvestmentSummary returns the user's totals and every investment
// annotated with the return rate of those totals. The rate is the same for
// all rows, as with SUM(..) OVER (PARTITION BY userId).
func (s *investmentSummaryService) GetInvestmentSummary(ctx context.Context, userID int64) (*models.InvestmentSummary, error) {
	totals, err := s.fetchTotals(ctx, userID)
	if err != nil {
		return nil, err
	}

	records, err := s.fetchRecords(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Rows deleted between the two queries.
	if len(records) == 0 {
		return nil, apperrors.SummaryNotFound(userID)
	}

	summary := models.NewInvestmentSummary(*totals, records)

	logger.Get().Debugw("investment summary generated",
		"user_id", userID,
		"transactions", len(records),
		"total_investment", summary.TotalInvestment.String(),
		"return_rate", summary.ReturnRate().String(),
	)
	return summary, nil
}

func (s *investmentSummaryService) fetchTotals(ctx context.Context, userID int64) (*models.InvestmentTotals, error) {
	var t models.InvestmentTotals
	err := s.db.QueryRowContext(ctx, investmentTotalsQuery, userID).Scan(
		&t.TotalInvestment,
		&t.TotalReturn,
		&t.TotalCurrentValue,
		&t.TotalTransactions,
	)
	if isNoRows(err) {
		return nil, apperrors.SummaryNotFound(userID)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("query investment totals: %w", err))
	}
	if t.TotalTransactions == 0 {
		return nil, apperrors.SummaryNotFound(userID)
	}
	return &t, nil
}

func (s *investmentSummaryService) fetchRecords(ctx context.Context, userID int64) ([]models.InvestmentRecord, error) {
	rows, err := s.db.QueryContext(ctx, investmentRecordsQuery, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("query investments: %w", err))
	}
	defer rows.Close()

	records := make([]models.InvestmentRecord, 0)
	for rows.Next() {
		var r models.InvestmentRecord
		if err := rows.Scan(
			&r.InvestmentID, &r.UserID, &r.Type, &r.Amount,
			&r.CurrentValue, &r.CreatedAt, &r.Description,
		); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("scan investment: %w", err))
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("iterate investments: %w", err))
	}
	return records, nil
}
