package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/mood-insight-engine/internal/analytics"
	"example.com/mood-insight-engine/internal/auth"
	"example.com/mood-insight-engine/internal/repository"
)

// TrendHandler отдает статистические срезы истории настроений.
// Только чтение: агрегатор ничего не записывает.
type TrendHandler struct {
	Events *repository.MoodEventRepository
}

// NewTrendHandler создает обработчик трендов.
func NewTrendHandler(events *repository.MoodEventRepository) *TrendHandler {
	return &TrendHandler{Events: events}
}

// Daily возвращает дневные корзины (дата, настроение).
func (h *TrendHandler) Daily(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	days, err := parseWindowDays(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	events, err := h.Events.ListWindow(c.Request().Context(), userID, analytics.WindowStart(time.Now(), days))
	if err != nil {
		return repositoryError(c, err, "mood events not found")
	}

	return c.JSON(http.StatusOK, map[string]any{"trend": analytics.DailyTrend(events)})
}

// Patterns возвращает пары (контекст, настроение) по частоте.
func (h *TrendHandler) Patterns(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	days, err := parseWindowDays(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	events, err := h.Events.ListWindow(c.Request().Context(), userID, analytics.WindowStart(time.Now(), days))
	if err != nil {
		return repositoryError(c, err, "mood events not found")
	}

	return c.JSON(http.StatusOK, map[string]any{"patterns": analytics.PatternsByContext(events)})
}

// Weekly возвращает средние оценки по ISO-неделям.
func (h *TrendHandler) Weekly(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	days, err := parseWindowDays(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	events, err := h.Events.ListWindow(c.Request().Context(), userID, analytics.WindowStart(time.Now(), days))
	if err != nil {
		return repositoryError(c, err, "mood events not found")
	}

	return c.JSON(http.StatusOK, map[string]any{"weeks": analytics.WeeklyScores(events)})
}

// Summary возвращает сводку окна; пустое окно дает нулевую сводку
// с dominant_mood = neutral.
func (h *TrendHandler) Summary(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	days, err := parseWindowDays(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	events, err := h.Events.ListWindow(c.Request().Context(), userID, analytics.WindowStart(time.Now(), days))
	if err != nil {
		return repositoryError(c, err, "mood events not found")
	}

	return c.JSON(http.StatusOK, analytics.Summarize(events))
}
