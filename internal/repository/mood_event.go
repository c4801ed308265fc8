package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/mood-insight-engine/internal/models"
)

type MoodEventRepository struct {
	db *pgxpool.Pool
}

// NewMoodEventRepository создает хранилище наблюдений настроения.
func NewMoodEventRepository(db *pgxpool.Pool) *MoodEventRepository {
	return &MoodEventRepository{db: db}
}

type MoodEventFilter struct {
	Mood    *models.Mood
	Context *models.MoodContext
	From    *time.Time
	To      *time.Time
}

const moodEventColumns = `id, user_id, mood, intensity, context, transaction_ref, notes, triggers, recorded_at, updated_at`

// Create сохраняет новое наблюдение и возвращает его с производной оценкой.
func (r *MoodEventRepository) Create(ctx context.Context, userID uuid.UUID, in models.MoodEventInput) (models.MoodEvent, error) {
	var event models.MoodEvent

	if err := in.Validate(); err != nil {
		return event, err
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO mood_events (id, user_id, mood, intensity, context, transaction_ref, notes, triggers)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+moodEventColumns,
		uuid.New(), userID, in.Mood, in.Intensity, in.Context, in.TransactionRef, in.Notes, triggerStrings(in.Triggers),
	).Scan(moodEventDest(&event)...)
	if err != nil {
		return event, classify(err)
	}

	event.DerivedMoodScore = models.MoodScore(event.Mood, event.Intensity)
	return event, nil
}

// Update меняет изменяемые поля наблюдения; id, user_id и recorded_at неизменны.
func (r *MoodEventRepository) Update(ctx context.Context, userID, eventID uuid.UUID, patch models.MoodEventPatch) (models.MoodEvent, error) {
	var event models.MoodEvent

	if err := patch.Validate(); err != nil {
		return event, err
	}

	if patch.Empty() {
		return r.GetByID(ctx, userID, eventID)
	}

	set, args := buildMoodEventSet(patch, eventID, userID)

	err := r.db.QueryRow(ctx,
		`UPDATE mood_events
		 SET `+set+`
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+moodEventColumns,
		args...,
	).Scan(moodEventDest(&event)...)
	if err != nil {
		return event, classify(err)
	}

	event.DerivedMoodScore = models.MoodScore(event.Mood, event.Intensity)
	return event, nil
}

// Delete удаляет наблюдение пользователя.
func (r *MoodEventRepository) Delete(ctx context.Context, userID, eventID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM mood_events
		 WHERE id = $1 AND user_id = $2`,
		eventID, userID,
	)
	if err != nil {
		return classify(err)
	}

	return deleteOutcome(cmd.RowsAffected())
}

// GetByID возвращает наблюдение по id в пределах владельца.
func (r *MoodEventRepository) GetByID(ctx context.Context, userID, eventID uuid.UUID) (models.MoodEvent, error) {
	var event models.MoodEvent

	err := r.db.QueryRow(ctx,
		`SELECT `+moodEventColumns+`
		 FROM mood_events
		 WHERE id = $1 AND user_id = $2`,
		eventID, userID,
	).Scan(moodEventDest(&event)...)
	if err != nil {
		return event, classify(err)
	}

	event.DerivedMoodScore = models.MoodScore(event.Mood, event.Intensity)
	return event, nil
}

// List возвращает страницу наблюдений и общее число записей под фильтром.
func (r *MoodEventRepository) List(ctx context.Context, userID uuid.UUID, filter MoodEventFilter, limit, offset int, sortField, sortOrder string) ([]models.MoodEvent, int, error) {
	if limit <= 0 || offset < 0 {
		return nil, 0, ErrInvalid
	}

	orderBy, err := moodEventOrderBy(sortField, sortOrder)
	if err != nil {
		return nil, 0, err
	}

	where, args := buildMoodEventWhere(userID, filter)

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM mood_events `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, classify(err)
	}

	args = append(args, limit, offset)
	rows, err := r.db.Query(ctx,
		`SELECT `+moodEventColumns+`
		 FROM mood_events `+where+`
		 ORDER BY `+orderBy+`
		 LIMIT $`+fmt.Sprint(len(args)-1)+` OFFSET $`+fmt.Sprint(len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, classify(err)
	}
	defer rows.Close()

	events := make([]models.MoodEvent, 0)
	for rows.Next() {
		var event models.MoodEvent
		if err := rows.Scan(moodEventDest(&event)...); err != nil {
			return nil, 0, classify(err)
		}
		event.DerivedMoodScore = models.MoodScore(event.Mood, event.Intensity)
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, classify(err)
	}

	return events, total, nil
}

// ListWindow возвращает наблюдения пользователя начиная с момента from,
// по возрастанию recorded_at. Диапазонный скан по (user_id, recorded_at).
func (r *MoodEventRepository) ListWindow(ctx context.Context, userID uuid.UUID, from time.Time) ([]models.MoodEvent, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+moodEventColumns+`
		 FROM mood_events
		 WHERE user_id = $1 AND recorded_at >= $2
		 ORDER BY recorded_at`,
		userID, from,
	)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	events := make([]models.MoodEvent, 0)
	for rows.Next() {
		var event models.MoodEvent
		if err := rows.Scan(moodEventDest(&event)...); err != nil {
			return nil, classify(err)
		}
		event.DerivedMoodScore = models.MoodScore(event.Mood, event.Intensity)
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}

	return events, nil
}

func moodEventDest(e *models.MoodEvent) []any {
	return []any{
		&e.ID, &e.UserID, &e.Mood, &e.Intensity, &e.Context,
		&e.TransactionRef, &e.Notes, &e.Triggers, &e.RecordedAt, &e.UpdatedAt,
	}
}

func buildMoodEventWhere(userID uuid.UUID, filter MoodEventFilter) (string, []any) {
	clauses := []string{"user_id = $1"}
	args := []any{userID}

	if filter.Mood != nil {
		args = append(args, *filter.Mood)
		clauses = append(clauses, fmt.Sprintf("mood = $%d", len(args)))
	}
	if filter.Context != nil {
		args = append(args, *filter.Context)
		clauses = append(clauses, fmt.Sprintf("context = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		clauses = append(clauses, fmt.Sprintf("recorded_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clauses = append(clauses, fmt.Sprintf("recorded_at < $%d", len(args)))
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

func buildMoodEventSet(patch models.MoodEventPatch, eventID, userID uuid.UUID) (string, []any) {
	set := []string{"updated_at = NOW()"}
	args := []any{eventID, userID}

	if patch.Mood != nil {
		args = append(args, *patch.Mood)
		set = append(set, fmt.Sprintf("mood = $%d", len(args)))
	}
	if patch.Intensity != nil {
		args = append(args, *patch.Intensity)
		set = append(set, fmt.Sprintf("intensity = $%d", len(args)))
	}
	if patch.Context != nil {
		args = append(args, *patch.Context)
		set = append(set, fmt.Sprintf("context = $%d", len(args)))
	}
	if patch.Notes != nil {
		args = append(args, *patch.Notes)
		set = append(set, fmt.Sprintf("notes = $%d", len(args)))
	}
	if patch.Triggers != nil {
		args = append(args, triggerStrings(patch.Triggers))
		set = append(set, fmt.Sprintf("triggers = $%d", len(args)))
	}

	return strings.Join(set, ", "), args
}

func moodEventOrderBy(sortField, sortOrder string) (string, error) {
	column, ok := map[string]string{
		"":            "recorded_at",
		"recorded_at": "recorded_at",
		"intensity":   "intensity",
		"mood":        "mood",
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

func triggerStrings(triggers []models.TriggerTag) []string {
	out := make([]string, 0, len(triggers))
	for _, trigger := range triggers {
		out = append(out, string(trigger))
	}
	return out
}
