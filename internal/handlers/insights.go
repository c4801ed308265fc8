package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/mood-insight-engine/internal/auth"
	"example.com/mood-insight-engine/internal/models"
	"example.com/mood-insight-engine/internal/repository"
)

type InsightHandler struct {
	Insights *repository.InsightRepository
	Queries  *repository.InsightQueryRepository
}

// NewInsightHandler создает обработчик инсайтов.
func NewInsightHandler(insights *repository.InsightRepository, queries *repository.InsightQueryRepository) *InsightHandler {
	return &InsightHandler{Insights: insights, Queries: queries}
}

type InsightRequest struct {
	Type         string          `json:"type" validate:"required"`
	Category     string          `json:"category" validate:"required"`
	Title        string          `json:"title" validate:"required"`
	Description  string          `json:"description" validate:"required"`
	Confidence   float64         `json:"confidence"`
	Priority     string          `json:"priority"`
	IsActionable bool            `json:"is_actionable"`
	ExpiresAt    time.Time       `json:"expires_at" validate:"required"`
	Data         json.RawMessage `json:"data"`
	Source       string          `json:"source"`
	Tags         []string        `json:"tags"`
}

// Ingest принимает инсайт от внешнего продюсера.
func (h *InsightHandler) Ingest(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req InsightRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return requestValidationError(c, err)
	}

	input := models.InsightInput{
		Type:         models.InsightType(req.Type),
		Category:     models.InsightCategory(req.Category),
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Confidence:   req.Confidence,
		Priority:     models.InsightPriority(req.Priority),
		IsActionable: req.IsActionable,
		ExpiresAt:    req.ExpiresAt,
		Data:         req.Data,
		Source:       strings.TrimSpace(req.Source),
		Tags:         req.Tags,
	}

	insight, err := h.Insights.Ingest(c.Request().Context(), userID, input)
	if err != nil {
		return repositoryError(c, err, "insight not found")
	}

	return c.JSON(http.StatusCreated, insight)
}

// Get возвращает инсайт по id, в том числе логически истекший.
func (h *InsightHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	insightID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid insight id")
	}

	insight, err := h.Insights.GetByID(c.Request().Context(), userID, insightID)
	if err != nil {
		return repositoryError(c, err, "insight not found")
	}

	return c.JSON(http.StatusOK, insight)
}

// MarkRead помечает инсайт прочитанным. Повторный вызов идемпотентен.
func (h *InsightHandler) MarkRead(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	insightID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid insight id")
	}

	insight, err := h.Insights.MarkRead(c.Request().Context(), userID, insightID)
	if err != nil {
		return repositoryError(c, err, "insight not found")
	}

	return c.JSON(http.StatusOK, insight)
}

// MarkActionTaken фиксирует выполнение действия по инсайту.
func (h *InsightHandler) MarkActionTaken(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	insightID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid insight id")
	}

	insight, err := h.Insights.MarkActionTaken(c.Request().Context(), userID, insightID)
	if err != nil {
		return repositoryError(c, err, "insight not found")
	}

	return c.JSON(http.StatusOK, insight)
}

// Delete удаляет инсайт пользователя.
func (h *InsightHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	insightID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid insight id")
	}

	if err := h.Insights.Delete(c.Request().Context(), userID, insightID); err != nil {
		return repositoryError(c, err, "insight not found")
	}

	return c.NoContent(http.StatusNoContent)
}

// List возвращает страницу живых инсайтов с фильтрами.
func (h *InsightHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	limit, offset, err := parsePagination(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	filter, err := insightFilterFromQuery(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	insights, total, err := h.Queries.List(c.Request().Context(), userID, filter, limit, offset,
		c.QueryParam("sort"), c.QueryParam("order"))
	if err != nil {
		return repositoryError(c, err, "insight not found")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"insights": insights,
		"total":    total,
	})
}

// Actionable возвращает приоритетную выдачу неисполненных инсайтов.
func (h *InsightHandler) Actionable(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	limit := 10
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return badRequest(c, "invalid limit")
		}
		if parsed > maxPageSize {
			parsed = maxPageSize
		}
		limit = parsed
	}

	insights, err := h.Queries.Actionable(c.Request().Context(), userID, limit)
	if err != nil {
		return repositoryError(c, err, "insight not found")
	}

	return c.JSON(http.StatusOK, map[string]any{"insights": insights})
}

// Summary агрегирует живые инсайты трейлинг-окна.
func (h *InsightHandler) Summary(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	days, err := parseWindowDays(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	summary, err := h.Queries.Summary(c.Request().Context(), userID, days)
	if err != nil {
		return repositoryError(c, err, "insight not found")
	}

	return c.JSON(http.StatusOK, summary)
}

func insightFilterFromQuery(c echo.Context) (repository.InsightFilter, error) {
	var filter repository.InsightFilter

	if raw := c.QueryParam("type"); raw != "" {
		insightType := models.InsightType(raw)
		if !insightType.Valid() {
			return filter, errInvalidFilter("type")
		}
		filter.Type = &insightType
	}

	if raw := c.QueryParam("category"); raw != "" {
		category := models.InsightCategory(raw)
		if !category.Valid() {
			return filter, errInvalidFilter("category")
		}
		filter.Category = &category
	}

	if raw := c.QueryParam("priority"); raw != "" {
		priority := models.InsightPriority(raw)
		if !priority.Valid() {
			return filter, errInvalidFilter("priority")
		}
		filter.Priority = &priority
	}

	isRead, err := parseBoolParam(c, "is_read")
	if err != nil {
		return filter, err
	}
	filter.IsRead = isRead

	isActionable, err := parseBoolParam(c, "is_actionable")
	if err != nil {
		return filter, err
	}
	filter.IsActionable = isActionable

	return filter, nil
}

func parseBoolParam(c echo.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}

	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errInvalidFilter(name)
	}

	return &parsed, nil
}
