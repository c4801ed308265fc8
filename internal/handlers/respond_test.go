package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newContext(t *testing.T, target string) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

// TestParseWindowDays проверяет окно по умолчанию и границы 1–365.
func TestParseWindowDays(t *testing.T) {
	days, err := parseWindowDays(newContext(t, "/"))
	if err != nil {
		t.Fatalf("expected default window, got %v", err)
	}
	if days != defaultWindow {
		t.Fatalf("expected %d, got %d", defaultWindow, days)
	}

	days, err = parseWindowDays(newContext(t, "/?days=365"))
	if err != nil {
		t.Fatalf("expected valid window, got %v", err)
	}
	if days != 365 {
		t.Fatalf("expected 365, got %d", days)
	}

	if _, err := parseWindowDays(newContext(t, "/?days=0")); err == nil {
		t.Fatal("expected error for days=0")
	}
	if _, err := parseWindowDays(newContext(t, "/?days=366")); err == nil {
		t.Fatal("expected error for days=366")
	}
	if _, err := parseWindowDays(newContext(t, "/?days=soon")); err == nil {
		t.Fatal("expected error for non-numeric days")
	}
}

// TestParsePagination проверяет расчет limit/offset из page и page_size.
func TestParsePagination(t *testing.T) {
	limit, offset, err := parsePagination(newContext(t, "/"))
	if err != nil {
		t.Fatalf("expected defaults, got %v", err)
	}
	if limit != defaultPageSize || offset != 0 {
		t.Fatalf("unexpected defaults: limit=%d offset=%d", limit, offset)
	}

	limit, offset, err = parsePagination(newContext(t, "/?page=3&page_size=50"))
	if err != nil {
		t.Fatalf("expected valid pagination, got %v", err)
	}
	if limit != 50 || offset != 100 {
		t.Fatalf("expected limit=50 offset=100, got limit=%d offset=%d", limit, offset)
	}

	limit, _, err = parsePagination(newContext(t, "/?page_size=500"))
	if err != nil {
		t.Fatalf("expected capped page_size, got %v", err)
	}
	if limit != maxPageSize {
		t.Fatalf("expected cap %d, got %d", maxPageSize, limit)
	}

	if _, _, err := parsePagination(newContext(t, "/?page=-1")); err == nil {
		t.Fatal("expected error for negative page")
	}
}

// TestMoodEventFilterFromQuery проверяет разбор фильтров списка наблюдений.
func TestMoodEventFilterFromQuery(t *testing.T) {
	filter, err := moodEventFilterFromQuery(newContext(t, "/?mood=happy&context=budget_review&from=2025-06-01&to=2025-06-10"))
	if err != nil {
		t.Fatalf("expected valid filter, got %v", err)
	}

	if filter.Mood == nil || string(*filter.Mood) != "happy" {
		t.Fatalf("unexpected mood filter: %+v", filter.Mood)
	}
	if filter.From == nil || filter.To == nil {
		t.Fatal("expected date range to be set")
	}
	// Верхняя граница превращается в эксклюзивное начало следующего дня.
	if !filter.To.After(*filter.From) {
		t.Fatalf("expected to after from, got %v / %v", filter.From, filter.To)
	}

	if _, err := moodEventFilterFromQuery(newContext(t, "/?mood=giddy")); err == nil {
		t.Fatal("expected error for unknown mood")
	}
	if _, err := moodEventFilterFromQuery(newContext(t, "/?from=06/01/2025")); err == nil {
		t.Fatal("expected error for invalid date format")
	}
}
