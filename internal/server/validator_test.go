package server

import (
	"errors"
	"testing"

	"example.com/mood-insight-engine/internal/models"
)

// TestSnakeCase проверяет перевод имен полей в snake_case.
func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"Mood":      "mood",
		"ExpiresAt": "expires_at",
		"IsRead":    "is_read",
	}

	for in, want := range cases {
		if got := snakeCase(in); got != want {
			t.Fatalf("snakeCase(%s) = %s, want %s", in, got, want)
		}
	}
}

// TestValidateReturnsFieldList проверяет типизированную ошибку валидатора.
func TestValidateReturnsFieldList(t *testing.T) {
	type request struct {
		Mood      string `validate:"required"`
		Intensity int    `validate:"required,min=1,max=10"`
	}

	cv := NewValidator()

	if err := cv.Validate(request{Mood: "happy", Intensity: 5}); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}

	err := cv.Validate(request{Intensity: 11})
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	if len(verr.Fields) != 2 || verr.Fields[0] != "mood" || verr.Fields[1] != "intensity" {
		t.Fatalf("expected fields [mood intensity], got %v", verr.Fields)
	}
}
