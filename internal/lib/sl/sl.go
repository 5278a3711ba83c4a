// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель — единообразно формировать структурированные поля лога
// для ошибок и идентификаторов операций.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
// Для nil-ошибки возвращается пустая строка, чтобы логирование не падало.
//
// Пример:
//
//	log.Error("failed to accept order", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Op возвращает slog.Attr с именем операции.
func Op(op string) slog.Attr {
	return slog.String("op", op)
}
