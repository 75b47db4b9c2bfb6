package services

import (
	"context"

	"github.com/itimpact/spendx/internal/models"
)

// InvestmentSummaryServicer builds the per-user investment summary.
type InvestmentSummaryServicer interface {
	GetInvestmentSummary(ctx context.Context, userID int64) (*models.InvestmentSummary, error)
}

// UserSummaryServicer reads the precomputed usersummary row.
type UserSummaryServicer interface {
	GetUserSummary(ctx context.Context, userID int64) (*models.UserSummary, error)
}

// UserServicer defines user CRUD.
type UserServicer interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// InvestmentRecorderer records new investments.
type InvestmentRecorderer interface {
	Submit(ctx context.Context, req models.CreateInvestmentRequest) (*models.CreateInvestmentResponse, error)
}
