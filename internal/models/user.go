// Package models содержит доменные структуры магазина: пользователей, категории,
// товары и заказы, а также входные данные операций и виды ошибок.
// Структуры используются в бизнес‑логике, хранилище и HTTP-слое.
package models

// User представляет зарегистрированного пользователя магазина.
type User struct {
	ID           int64  // Идентификатор пользователя
	Email        string // Электронная почта (уникальная, в нижнем регистре)
	PasswordHash string // bcrypt-хеш пароля
	IsAdmin      bool   // Признак администратора
}

// SignupInput — данные регистрации.
type SignupInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	IsAdmin  bool   `json:"is_admin"`
}

// LoginInput — данные входа.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
