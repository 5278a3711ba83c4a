package models

import "errors"

// Виды ошибок домена. HTTP-слой сопоставляет каждому виду свой код ответа.
var (
	// ErrNotFound: запрошенная сущность отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists: нарушение уникальности (email, имя категории, товар в категории).
	ErrAlreadyExists = errors.New("already exists")
	// ErrInUse: сущность нельзя удалить, на неё ссылаются другие записи.
	ErrInUse = errors.New("still referenced")
	// ErrInsufficientStock: запрошено больше товара, чем есть на складе.
	ErrInsufficientStock = errors.New("not enough stock")
	// ErrForbidden: токен валиден, но прав администратора нет.
	ErrForbidden = errors.New("admin privileges required")
	// ErrInvalidCredentials: неверный email или пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidInput: входные данные не прошли проверку.
	ErrInvalidInput = errors.New("invalid input")
)
