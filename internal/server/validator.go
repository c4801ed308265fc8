package server

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"example.com/mood-insight-engine/internal/models"
)

type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator создает валидатор на базе go-playground/validator.
func NewValidator() *CustomValidator {
	v := validator.New()
	return &CustomValidator{validator: v}
}

// Validate запускает проверку структуры по тегам. Ошибки переводятся
// в ValidationError с машиночитаемым списком полей.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		fields := make([]string, 0, len(fieldErrors))
		for _, fieldError := range fieldErrors {
			fields = append(fields, snakeCase(fieldError.Field()))
		}
		return &models.ValidationError{Fields: fields}
	}

	return err
}

func snakeCase(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
