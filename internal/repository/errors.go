package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalid     = errors.New("invalid input")
	ErrTimeout     = errors.New("storage timeout")
	ErrUnavailable = errors.New("storage unavailable")
)

// classify переводит ошибки драйвера в сентинелы слоя хранения.
// Таймаут никогда не маскируется под пустой результат.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return ErrTimeout
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 57014 query_canceled; класс 08 покрывает ошибки соединения.
		if pgErr.Code == "57014" {
			return ErrTimeout
		}
		if strings.HasPrefix(pgErr.Code, "08") {
			return ErrUnavailable
		}
		return err
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return ErrUnavailable
	}

	return err
}

// deleteOutcome переводит число затронутых строк в результат удаления:
// ноль строк значит, что записи нет или она чужая.
func deleteOutcome(rowsAffected int64) error {
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
