// Package auth содержит регистрацию и вход пользователей, а также проверку
// прав администратора для операций, которые их требуют.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/shop-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/shop-backend/internal/lib/password"
	"github.com/magabrotheeeer/shop-backend/internal/lib/sl"
	"github.com/magabrotheeeer/shop-backend/internal/lib/validation"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int64, error)
	// GetUserByEmail возвращает пользователя по email или models.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Options настраивает регистрацию.
type Options struct {
	// DisableAdminSignup запрещает регистрацию с флагом администратора.
	DisableAdminSignup bool
}

// AuthService отвечает за регистрацию и вход.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	opts     Options
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, opts Options, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		opts:     opts,
		log:      log,
	}
}

// NormalizeEmail обрезает пробелы и приводит email к нижнему регистру.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup регистрирует пользователя и возвращает сохранённый email.
// Занятый email возвращает models.ErrAlreadyExists.
func (s *AuthService) Signup(ctx context.Context, in models.SignupInput) (string, error) {
	const op = "services.auth.Signup"

	if in.IsAdmin && s.opts.DisableAdminSignup {
		return "", fmt.Errorf("%s: %w", op, models.ErrForbidden)
	}

	in.Email = NormalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(in.Password)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.users.CreateUser(ctx, models.User{
		Email:        in.Email,
		PasswordHash: hashed,
		IsAdmin:      in.IsAdmin,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user signed up", slog.Int64("id", id), slog.Bool("is_admin", in.IsAdmin))
	return in.Email, nil
}

// Login проверяет пароль и выпускает токен доступа.
// Неизвестный email и неверный пароль неразличимы: models.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in models.LoginInput) (string, error) {
	const op = "services.auth.Login"

	in.Email = NormalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, models.ErrNotFound) {
		return "", fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(user.PasswordHash, in.Password); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			s.log.Error("stored password hash is unusable", slog.Int64("id", user.ID), sl.Err(err))
		}
		return "", fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}

	token, err := s.jwtMaker.GenerateToken(user.Email, user.IsAdmin)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}
