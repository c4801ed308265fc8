package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/mood-insight-engine/internal/analytics"
	"example.com/mood-insight-engine/internal/models"
)

// InsightQueryRepository отвечает за read-side доступ к инсайтам.
// Каждый его запрос отсекает истекшие записи фильтром expires_at > NOW().
type InsightQueryRepository struct {
	db *pgxpool.Pool
}

// NewInsightQueryRepository создает read-side репозиторий инсайтов.
func NewInsightQueryRepository(db *pgxpool.Pool) *InsightQueryRepository {
	return &InsightQueryRepository{db: db}
}

type InsightFilter struct {
	Type         *models.InsightType
	Category     *models.InsightCategory
	Priority     *models.InsightPriority
	IsRead       *bool
	IsActionable *bool
}

// List возвращает страницу живых инсайтов и общее число под фильтром.
func (r *InsightQueryRepository) List(ctx context.Context, userID uuid.UUID, filter InsightFilter, limit, offset int, sortField, sortOrder string) ([]models.Insight, int, error) {
	if limit <= 0 || offset < 0 {
		return nil, 0, ErrInvalid
	}

	orderBy, err := insightOrderBy(sortField, sortOrder)
	if err != nil {
		return nil, 0, err
	}

	where, args := buildInsightWhere(userID, filter)

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM insights `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, classify(err)
	}

	args = append(args, limit, offset)
	rows, err := r.db.Query(ctx,
		`SELECT `+insightColumns+`
		 FROM insights `+where+`
		 ORDER BY `+orderBy+`
		 LIMIT $`+fmt.Sprint(len(args)-1)+` OFFSET $`+fmt.Sprint(len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, classify(err)
	}
	defer rows.Close()

	insights, err := scanInsights(rows)
	if err != nil {
		return nil, 0, err
	}

	return insights, total, nil
}

const actionableSQL = `SELECT ` + insightColumns + `
	 FROM insights
	 WHERE user_id = $1
	   AND is_actionable
	   AND NOT action_taken
	   AND expires_at > NOW()`

// Actionable возвращает живые неисполненные actionable-инсайты в порядке
// priority desc, confidence desc, created_at desc.
func (r *InsightQueryRepository) Actionable(ctx context.Context, userID uuid.UUID, limit int) ([]models.Insight, error) {
	if limit <= 0 {
		return nil, ErrInvalid
	}

	rows, err := r.db.Query(ctx, actionableSQL, userID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	insights, err := scanInsights(rows)
	if err != nil {
		return nil, err
	}

	analytics.SortActionable(insights)
	if len(insights) > limit {
		insights = insights[:limit]
	}

	return insights, nil
}

// Summary агрегирует живые инсайты, созданные в трейлинг-окне.
func (r *InsightQueryRepository) Summary(ctx context.Context, userID uuid.UUID, windowDays int) (analytics.InsightSummary, error) {
	if windowDays < 1 || windowDays > 365 {
		return analytics.InsightSummary{}, ErrInvalid
	}

	from := time.Now().AddDate(0, 0, -windowDays)

	rows, err := r.db.Query(ctx,
		`SELECT `+insightColumns+`
		 FROM insights
		 WHERE user_id = $1
		   AND created_at >= $2
		   AND expires_at > NOW()`,
		userID, from,
	)
	if err != nil {
		return analytics.InsightSummary{}, classify(err)
	}
	defer rows.Close()

	insights, err := scanInsights(rows)
	if err != nil {
		return analytics.InsightSummary{}, err
	}

	return analytics.SummarizeInsights(insights), nil
}

func scanInsights(rows pgx.Rows) ([]models.Insight, error) {
	insights := make([]models.Insight, 0)
	for rows.Next() {
		var insight models.Insight
		if err := rows.Scan(insightDest(&insight)...); err != nil {
			return nil, classify(err)
		}
		insights = append(insights, insight)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}

	return insights, nil
}

func buildInsightWhere(userID uuid.UUID, filter InsightFilter) (string, []any) {
	clauses := []string{"user_id = $1", "expires_at > NOW()"}
	args := []any{userID}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("priority = $%d", len(args)))
	}
	if filter.IsRead != nil {
		args = append(args, *filter.IsRead)
		clauses = append(clauses, fmt.Sprintf("is_read = $%d", len(args)))
	}
	if filter.IsActionable != nil {
		args = append(args, *filter.IsActionable)
		clauses = append(clauses, fmt.Sprintf("is_actionable = $%d", len(args)))
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

// priorityRank переводит текстовый приоритет в числовой ранг для сортировки.
// Лексикографический порядок колонки ставил бы medium выше high.
const priorityRank = `CASE priority WHEN 'urgent' THEN 3 WHEN 'high' THEN 2 WHEN 'medium' THEN 1 ELSE 0 END`

func insightOrderBy(sortField, sortOrder string) (string, error) {
	column, ok := map[string]string{
		"":           "created_at",
		"created_at": "created_at",
		"confidence": "confidence",
		"priority":   priorityRank,
		"expires_at": "expires_at",
	}[sortField]
	if !ok {
		return "", ErrInvalid
	}

	direction, ok := map[string]string{
		"":     "DESC",
		"asc":  "ASC",
		"desc": "DESC",
	}[sortOrder]
	if !ok {
		return "", ErrInvalid
	}

	return column + " " + direction + ", id", nil
}
