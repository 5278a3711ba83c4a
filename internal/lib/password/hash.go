// Package password реализует одностороннее хеширование паролей пользователей магазина.
//
// GetHash создаёт bcrypt-хеш со свежей солью, поэтому два вызова с одним паролем дают
// разные строки. Сравнивать хеши между собой нельзя, только через CompareHash.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// Cost — стоимость bcrypt, подобранная для защиты от перебора.
const Cost = bcrypt.DefaultCost

// MaxBytes — предел bcrypt на длину пароля в байтах, не в символах.
const MaxBytes = 72

// ErrMismatch возвращается, если пароль не соответствует хешу.
var ErrMismatch = errors.New("password does not match")

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хеш.
// Пароль длиннее MaxBytes байт возвращает models.ErrInvalidInput.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	if len(password) > MaxBytes {
		return "", fmt.Errorf("%s: %w: field password must be at most %d bytes", op, models.ErrInvalidInput, MaxBytes)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// CompareHash сравнивает сохранённый bcrypt‑хеш с введённым паролем.
//
// Возвращает nil при совпадении, ErrMismatch при неверном пароле
// и обёрнутую ошибку bcrypt, если хеш повреждён.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
