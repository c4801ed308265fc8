package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/mood-insight-engine/internal/models"
)

type InsightRepository struct {
	db *pgxpool.Pool
}

// NewInsightRepository создает хранилище инсайтов.
func NewInsightRepository(db *pgxpool.Pool) *InsightRepository {
	return &InsightRepository{db: db}
}

const insightColumns = `id, user_id, type, category, title, description, confidence, priority,
	is_actionable, action_taken, action_taken_at, is_read, expires_at, data, source, tags,
	created_at, updated_at`

// Ingest принимает инсайт внешнего продюсера в состоянии active-unread.
// Дедупликация лежит на продюсере.
func (r *InsightRepository) Ingest(ctx context.Context, userID uuid.UUID, in models.InsightInput) (models.Insight, error) {
	var insight models.Insight

	if err := in.Validate(time.Now()); err != nil {
		return insight, err
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO insights (id, user_id, type, category, title, description, confidence, priority,
		                       is_actionable, expires_at, data, source, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING `+insightColumns,
		uuid.New(), userID, in.Type, in.Category, in.Title, in.Description, in.Confidence, in.Priority,
		in.IsActionable, in.ExpiresAt, in.Data, in.Source, in.Tags,
	).Scan(insightDest(&insight)...)
	if err != nil {
		return insight, classify(err)
	}

	return insight, nil
}

// GetByID возвращает инсайт по id, включая логически истекшие.
func (r *InsightRepository) GetByID(ctx context.Context, userID, insightID uuid.UUID) (models.Insight, error) {
	var insight models.Insight

	err := r.db.QueryRow(ctx,
		`SELECT `+insightColumns+`
		 FROM insights
		 WHERE id = $1 AND user_id = $2`,
		insightID, userID,
	).Scan(insightDest(&insight)...)
	if err != nil {
		return insight, classify(err)
	}

	return insight, nil
}

// Оба перехода идемпотентны на уровне SQL: выражения CASE и COALESCE
// сохраняют прежние штампы, когда флаг уже выставлен, так что повторный
// вызов возвращает ту же запись.
const markReadSQL = `UPDATE insights
	 SET is_read = TRUE,
	     updated_at = CASE WHEN is_read THEN updated_at ELSE NOW() END
	 WHERE id = $1 AND user_id = $2
	 RETURNING ` + insightColumns

const markActionTakenSQL = `UPDATE insights
	 SET action_taken = TRUE,
	     action_taken_at = COALESCE(action_taken_at, NOW()),
	     updated_at = CASE WHEN action_taken THEN updated_at ELSE NOW() END
	 WHERE id = $1 AND user_id = $2
	 RETURNING ` + insightColumns

// MarkRead переводит инсайт в прочитанные. Повторный вызов ничего не меняет.
func (r *InsightRepository) MarkRead(ctx context.Context, userID, insightID uuid.UUID) (models.Insight, error) {
	var insight models.Insight

	err := r.db.QueryRow(ctx, markReadSQL, insightID, userID).Scan(insightDest(&insight)...)
	if err != nil {
		return insight, classify(err)
	}

	return insight, nil
}

// MarkActionTaken фиксирует выполнение действия. Штамп времени ставится однажды.
func (r *InsightRepository) MarkActionTaken(ctx context.Context, userID, insightID uuid.UUID) (models.Insight, error) {
	var insight models.Insight

	err := r.db.QueryRow(ctx, markActionTakenSQL, insightID, userID).Scan(insightDest(&insight)...)
	if err != nil {
		return insight, classify(err)
	}

	return insight, nil
}

// Delete удаляет инсайт пользователя, в том числе истекший.
func (r *InsightRepository) Delete(ctx context.Context, userID, insightID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM insights
		 WHERE id = $1 AND user_id = $2`,
		insightID, userID,
	)
	if err != nil {
		return classify(err)
	}

	return deleteOutcome(cmd.RowsAffected())
}

// PurgeExpired физически удаляет инсайты, истекшие дольше retention назад.
// Корректность чтений от этого не зависит: фильтр expires_at > now
// применяется на каждом запросе.
func (r *InsightRepository) PurgeExpired(ctx context.Context, retention time.Duration) (int64, error) {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM insights
		 WHERE expires_at < NOW() - make_interval(secs => $1)`,
		retention.Seconds(),
	)
	if err != nil {
		return 0, classify(err)
	}

	return cmd.RowsAffected(), nil
}

func insightDest(i *models.Insight) []any {
	return []any{
		&i.ID, &i.UserID, &i.Type, &i.Category, &i.Title, &i.Description, &i.Confidence, &i.Priority,
		&i.IsActionable, &i.ActionTaken, &i.ActionTakenAt, &i.IsRead, &i.ExpiresAt, &i.Data, &i.Source, &i.Tags,
		&i.CreatedAt, &i.UpdatedAt,
	}
}
