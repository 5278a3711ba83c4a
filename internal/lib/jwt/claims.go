package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims описывает данные, зашитые в токен.
type CustomClaims struct {
	IsAdmin              bool `json:"is_admin"`
	jwt.RegisteredClaims      // sub = email, iat, exp
}

// Email возвращает владельца токена.
func (c *CustomClaims) Email() string {
	return c.Subject
}

// GenerateToken создаёт токен с sub=email и is_admin, срок действия tokenTTL от текущего момента.
func (j *MakerImpl) GenerateToken(email string, isAdmin bool) (string, error) {
	const op = "jwt.GenerateToken"
	now := j.now()
	claims := CustomClaims{
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken проверяет токен и возвращает claims.
//
// Ошибки сводятся к трём видам: ErrTokenRequired, ErrTokenExpired и ErrTokenInvalid.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	if tokenStr == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrTokenRequired)
	}

	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}
		return nil, fmt.Errorf("%s: %w: %v", op, ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrTokenInvalid)
	}
	return claims, nil
}
