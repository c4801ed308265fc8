package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/mood-insight-engine/internal/auth"
	"example.com/mood-insight-engine/internal/models"
	"example.com/mood-insight-engine/internal/repository"
)

type MoodHandler struct {
	Events *repository.MoodEventRepository
}

// NewMoodHandler создает обработчик наблюдений настроения.
func NewMoodHandler(events *repository.MoodEventRepository) *MoodHandler {
	return &MoodHandler{Events: events}
}

type MoodEventRequest struct {
	Mood           string   `json:"mood" validate:"required"`
	Intensity      int      `json:"intensity" validate:"required,min=1,max=10"`
	Context        string   `json:"context"`
	TransactionRef *string  `json:"transaction_ref"`
	Notes          *string  `json:"notes"`
	Triggers       []string `json:"triggers"`
}

type MoodEventPatchRequest struct {
	Mood      *string  `json:"mood"`
	Intensity *int     `json:"intensity"`
	Context   *string  `json:"context"`
	Notes     *string  `json:"notes"`
	Triggers  []string `json:"triggers"`
}

// Create записывает новое наблюдение настроения.
func (h *MoodHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req MoodEventRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return requestValidationError(c, err)
	}

	input := models.MoodEventInput{
		Mood:           models.Mood(req.Mood),
		Intensity:      req.Intensity,
		Context:        models.MoodContext(req.Context),
		TransactionRef: req.TransactionRef,
		Notes:          req.Notes,
		Triggers:       toTriggerTags(req.Triggers),
	}

	event, err := h.Events.Create(c.Request().Context(), userID, input)
	if err != nil {
		return repositoryError(c, err, "mood event not found")
	}

	return c.JSON(http.StatusCreated, event)
}

// Update меняет изменяемые поля наблюдения.
func (h *MoodHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid mood event id")
	}

	var req MoodEventPatchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	patch := models.MoodEventPatch{
		Intensity: req.Intensity,
		Notes:     req.Notes,
	}
	if req.Mood != nil {
		mood := models.Mood(*req.Mood)
		patch.Mood = &mood
	}
	if req.Context != nil {
		context := models.MoodContext(*req.Context)
		patch.Context = &context
	}
	if req.Triggers != nil {
		patch.Triggers = toTriggerTags(req.Triggers)
	}

	event, err := h.Events.Update(c.Request().Context(), userID, eventID, patch)
	if err != nil {
		return repositoryError(c, err, "mood event not found")
	}

	return c.JSON(http.StatusOK, event)
}

// Delete удаляет наблюдение. Удаление несуществующего дает not found.
func (h *MoodHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid mood event id")
	}

	if err := h.Events.Delete(c.Request().Context(), userID, eventID); err != nil {
		return repositoryError(c, err, "mood event not found")
	}

	return c.NoContent(http.StatusNoContent)
}

// List возвращает страницу наблюдений с фильтрами и сортировкой.
func (h *MoodHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	limit, offset, err := parsePagination(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	filter, err := moodEventFilterFromQuery(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	events, total, err := h.Events.List(c.Request().Context(), userID, filter, limit, offset,
		c.QueryParam("sort"), c.QueryParam("order"))
	if err != nil {
		return repositoryError(c, err, "mood event not found")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"events": events,
		"total":  total,
	})
}

func moodEventFilterFromQuery(c echo.Context) (repository.MoodEventFilter, error) {
	var filter repository.MoodEventFilter

	if raw := c.QueryParam("mood"); raw != "" {
		mood := models.Mood(raw)
		if !mood.Valid() {
			return filter, errInvalidFilter("mood")
		}
		filter.Mood = &mood
	}

	if raw := c.QueryParam("context"); raw != "" {
		context := models.MoodContext(raw)
		if !context.Valid() {
			return filter, errInvalidFilter("context")
		}
		filter.Context = &context
	}

	from, err := parseDateParam(c, "from")
	if err != nil {
		return filter, err
	}
	filter.From = from

	to, err := parseDateParam(c, "to")
	if err != nil {
		return filter, err
	}
	if to != nil {
		// Верхняя граница включает весь день.
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}

	return filter, nil
}

func toTriggerTags(values []string) []models.TriggerTag {
	tags := make([]models.TriggerTag, 0, len(values))
	for _, value := range values {
		tags = append(tags, models.TriggerTag(value))
	}
	return tags
}
