package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/itimpact/spendx/internal/db"
	apperrors "github.com/itimpact/spendx/internal/errors"
	"github.com/itimpact/spendx/internal/logger"
	"github.com/itimpact/spendx/internal/models"
)

type userService struct {
	db         db.Querier
	bcryptCost int
}

// NewUserService returns a UserServicer. A zero cost selects bcrypt.DefaultCost.
func NewUserService(q db.Querier, bcryptCost int) UserServicer {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{db: q, bcryptCost: bcryptCost}
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT userId, username, email, passwordHash FROM users ORDER BY userId")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("list users: %w", err))
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("scan user: %w", err))
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("iterate users: %w", err))
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT userId, username, email, passwordHash FROM users WHERE userId = $1", id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash)
	if isNoRows(err) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("get user %d: %w", id, err))
	}
	return &u, nil
}

func (s *userService) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("hash password: %w", err))
	}

	u := models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hash),
	}

	err = s.db.QueryRowContext(ctx,
		"INSERT INTO users (username, email, passwordHash) VALUES ($1, $2, $3) RETURNING userId",
		u.Username, u.Email, u.PasswordHash,
	).Scan(&u.ID)
	if db.IsUniqueViolation(err) {
		return nil, apperrors.ErrDuplicateEmail
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("insert user: %w", err))
	}

	logger.Get().Infow("user created", "user_id", u.ID)
	return &u, nil
}

// UpdateUser changes username and email. The password hash is left alone.
func (s *userService) UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		UPDATE users SET username = $1, email = $2
		WHERE userId = $3
		RETURNING userId, username, email, passwordHash`,
		strings.TrimSpace(req.Username), normalizeEmail(req.Email), id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash)
	if isNoRows(err) {
		return nil, apperrors.ErrUserNotFound
	}
	if db.IsUniqueViolation(err) {
		return nil, apperrors.ErrDuplicateEmail
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("update user %d: %w", id, err))
	}
	return &u, nil
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE userId = $1", id)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("delete user %d: %w", id, err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("delete user %d: %w", id, err))
	}
	if n == 0 {
		return apperrors.ErrUserNotFound
	}

	logger.Get().Infow("user deleted", "user_id", id)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
