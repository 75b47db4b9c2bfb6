package services

import (
	"context"
	"fmt"

	"github.com/itimpact/spendx/internal/db"
	apperrors "github.com/itimpact/spendx/internal/errors"
	"github.com/itimpact/spendx/internal/models"
)

const userSummaryQuery = `
	SELECT userId, totalIncome, totalSpent, totalInvestment, totalSubscriptions, availableBalance
	FROM usersummary
	WHERE userId = $1`

type userSummaryService struct {
	db db.Querier
}

func NewUserSummaryService(q db.Querier) UserSummaryServicer {
	return &userSummaryService{db: q}
}

func (s *userSummaryService) GetUserSummary(ctx context.Context, userID int64) (*models.UserSummary, error) {
	var us models.UserSummary
	err := s.db.QueryRowContext(ctx, userSummaryQuery, userID).Scan(
		&us.UserID,
		&us.TotalIncome,
		&us.TotalSpent,
		&us.TotalInvestment,
		&us.TotalSubscriptions,
		&us.AvailableBalance,
	)
	if isNoRows(err) {
		return nil, apperrors.SummaryNotFound(userID)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("query user summary: %w", err))
	}
	return &us, nil
}
