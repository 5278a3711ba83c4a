// Package jwt реализует выпуск и проверку подписанных токенов доступа магазина.
//
// Токен содержит email пользователя (sub), признак администратора (is_admin)
// и срок действия (exp). Состояние на сервере не хранится: валидность определяется
// только подписью и exp, поэтому утёкший токен действует до истечения срока.
package jwt

import (
	"errors"
	"time"
)

// DefaultTTL — время жизни токена по умолчанию.
const DefaultTTL = 24 * time.Hour

var (
	// ErrTokenRequired возвращается, если токен не передан.
	ErrTokenRequired = errors.New("token required")
	// ErrTokenExpired возвращается для корректно подписанного, но просроченного токена.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid возвращается для повреждённого токена или токена с чужой подписью.
	ErrTokenInvalid = errors.New("invalid token")
)

// Maker описывает выпуск и разбор токенов.
type Maker interface {
	// GenerateToken выпускает токен для email и признака администратора.
	GenerateToken(email string, isAdmin bool) (string, error)
	// ParseToken проверяет подпись и срок действия и возвращает claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker на HMAC-SHA256 с общим секретом.
type MakerImpl struct {
	secretKey []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewJWTMaker создаёт MakerImpl. Нулевой ttl заменяется на DefaultTTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &MakerImpl{
		secretKey: []byte(secretKey),
		tokenTTL:  ttl,
		now:       time.Now,
	}
}

// TTL возвращает время жизни выпускаемых токенов.
func (j *MakerImpl) TTL() time.Duration {
	return j.tokenTTL
}
