package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// CreateUser сохраняет нового пользователя и возвращает его ID.
// Повторный email возвращает models.ErrAlreadyExists.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (int64, error) {
	const op = "storage.CreateUser"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	var newID int64
	query := `INSERT INTO users (email, password_hash, is_admin)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.IsAdmin).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, translate(err))
	}
	return newID, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, email, password_hash, is_admin
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	if err := s.DB.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsAdmin); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return u, nil
}
