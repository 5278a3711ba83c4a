package auth

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/shop-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// TokenParser проверяет токен и возвращает его утверждения.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.CustomClaims, error)
}

// Gate проверяет права администратора по токену доступа.
type Gate struct {
	tokens TokenParser
}

// NewGate создает Gate.
func NewGate(tokens TokenParser) *Gate {
	return &Gate{tokens: tokens}
}

// RequireAdmin требует валидный токен администратора.
// Ошибки токена (jwt.ErrTokenRequired, jwt.ErrTokenExpired, jwt.ErrTokenInvalid)
// возвращаются как есть, валидный токен без прав администратора даёт models.ErrForbidden.
func (g *Gate) RequireAdmin(ctx context.Context, token string) (*jwt.CustomClaims, error) {
	const op = "services.auth.RequireAdmin"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	claims, err := g.tokens.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !claims.IsAdmin {
		return nil, fmt.Errorf("%s: %w", op, models.ErrForbidden)
	}
	return claims, nil
}
