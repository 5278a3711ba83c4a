// Package validation проверяет входные структуры по тегам validate
// и приводит нарушения к models.ErrInvalidInput с читаемым текстом.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/shop-backend/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// В сообщениях используются имена полей из json-тегов.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct проверяет s. Нарушения возвращаются как models.ErrInvalidInput.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return fmt.Errorf("%w: %s", models.ErrInvalidInput, Message(errs))
	}
	return fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
}

// Message формирует текст из ошибок валидации, по одному фрагменту на поле.
func Message(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s characters", err.Field(), err.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s characters", err.Field(), err.Param()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("field %s must not be less than %s", err.Field(), err.Param()))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("field %s must not be greater than %s", err.Field(), err.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}
