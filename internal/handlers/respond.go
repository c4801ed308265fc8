package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/mood-insight-engine/internal/models"
	"example.com/mood-insight-engine/internal/repository"
)

const (
	dateLayout      = "2006-01-02"
	defaultPageSize = 20
	maxPageSize     = 100
	defaultWindow   = 30
	maxWindowDays   = 365
)

// repositoryError переводит ошибки ядра в HTTP-ответы.
// Таксономия фиксированная: validation → 400, not found → 404,
// storage timeout → 504, storage unavailable → 503.
func repositoryError(c echo.Context, err error, notFoundMessage string) error {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return validationFailed(c, verr)
	case errors.Is(err, repository.ErrNotFound):
		return notFound(c, notFoundMessage)
	case errors.Is(err, repository.ErrInvalid):
		return badRequest(c, "invalid input")
	case errors.Is(err, repository.ErrTimeout):
		return c.JSON(http.StatusGatewayTimeout, map[string]string{"error": "storage timeout"})
	case errors.Is(err, repository.ErrUnavailable):
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "storage unavailable"})
	default:
		return serverError(c)
	}
}

// requestValidationError отдает 400 со списком полей, если валидатор
// запроса вернул типизированную ошибку.
func requestValidationError(c echo.Context, err error) error {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return validationFailed(c, verr)
	}
	return badRequest(c, "validation failed")
}

func errInvalidFilter(name string) error {
	return errors.New("invalid " + name)
}

func validationFailed(c echo.Context, verr *models.ValidationError) error {
	return c.JSON(http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"fields": verr.Fields,
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": message})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
}

func notFound(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, map[string]string{"error": message})
}

func serverError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// parsePagination разбирает page и page_size из строки запроса.
func parsePagination(c echo.Context) (limit, offset int, err error) {
	page := 1
	if raw := strings.TrimSpace(c.QueryParam("page")); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil || parsed <= 0 {
			return 0, 0, errors.New("invalid page")
		}
		page = parsed
	}

	size := defaultPageSize
	if raw := strings.TrimSpace(c.QueryParam("page_size")); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil || parsed <= 0 {
			return 0, 0, errors.New("invalid page_size")
		}
		if parsed > maxPageSize {
			parsed = maxPageSize
		}
		size = parsed
	}

	return size, (page - 1) * size, nil
}

// parseWindowDays разбирает параметр days; допустимое окно 1–365 суток.
func parseWindowDays(c echo.Context) (int, error) {
	raw := strings.TrimSpace(c.QueryParam("days"))
	if raw == "" {
		return defaultWindow, nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > maxWindowDays {
		return 0, errors.New("days must be between 1 and 365")
	}

	return days, nil
}

// parseDateParam разбирает дату формата YYYY-MM-DD из строки запроса.
func parseDateParam(c echo.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, errors.New("invalid " + name)
	}

	return &parsed, nil
}
