package config

import (
	"testing"
	"time"
)

// TestParseIntEnv проверяет разбор целочисленной переменной окружения.
func TestParseIntEnv(t *testing.T) {
	t.Setenv("TEST_INT_ENV", "42")

	got, err := parseIntEnv("TEST_INT_ENV", 7)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

// TestParseIntEnvInvalid проверяет ошибки при неверном значении.
func TestParseIntEnvInvalid(t *testing.T) {
	t.Setenv("TEST_INT_ENV", "not-a-number")
	if _, err := parseIntEnv("TEST_INT_ENV", 7); err == nil {
		t.Fatal("expected error for non-integer value")
	}

	t.Setenv("TEST_INT_ENV", "0")
	if _, err := parseIntEnv("TEST_INT_ENV", 7); err == nil {
		t.Fatal("expected error for non-positive value")
	}
}

// TestParseIntEnvFallback проверяет значение по умолчанию.
func TestParseIntEnvFallback(t *testing.T) {
	got, err := parseIntEnv("MISSING_INT_ENV", 7)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
}

// TestParseDurationEnv проверяет разбор длительности.
func TestParseDurationEnv(t *testing.T) {
	t.Setenv("TEST_DURATION_ENV", "90s")

	got, err := parseDurationEnv("TEST_DURATION_ENV", time.Minute)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}

	t.Setenv("TEST_DURATION_ENV", "yesterday")
	if _, err := parseDurationEnv("TEST_DURATION_ENV", time.Minute); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}
