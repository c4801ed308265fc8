package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxNotesLen       = 1000
	maxTitleLen       = 200
	maxDescriptionLen = 1000
	maxSourceLen      = 100
	maxTags           = 10
	maxTagLen         = 50
	maxDataBytes      = 16 * 1024
)

// ValidationError перечисляет поля, не прошедшие проверку.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, ", ")
}

func newValidationError(fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

type MoodEventInput struct {
	Mood           Mood
	Intensity      int
	Context        MoodContext
	TransactionRef *string
	Notes          *string
	Triggers       []TriggerTag
}

// Validate проверяет входные данные наблюдения и подставляет контекст по умолчанию.
func (in *MoodEventInput) Validate() error {
	var fields []string

	if !in.Mood.Valid() {
		fields = append(fields, "mood")
	}
	if in.Intensity < 1 || in.Intensity > 10 {
		fields = append(fields, "intensity")
	}
	if in.Context == "" {
		in.Context = ContextGeneral
	}
	if !in.Context.Valid() {
		fields = append(fields, "context")
	}
	if in.Notes != nil && utf8.RuneCountInString(*in.Notes) > maxNotesLen {
		fields = append(fields, "notes")
	}
	if !validTriggerSet(in.Triggers) {
		fields = append(fields, "triggers")
	}

	return newValidationError(fields)
}

type MoodEventPatch struct {
	Mood      *Mood
	Intensity *int
	Context   *MoodContext
	Notes     *string
	Triggers  []TriggerTag
}

// Validate проверяет изменяемые поля наблюдения; nil-поля не трогаются.
func (p *MoodEventPatch) Validate() error {
	var fields []string

	if p.Mood != nil && !p.Mood.Valid() {
		fields = append(fields, "mood")
	}
	if p.Intensity != nil && (*p.Intensity < 1 || *p.Intensity > 10) {
		fields = append(fields, "intensity")
	}
	if p.Context != nil && !p.Context.Valid() {
		fields = append(fields, "context")
	}
	if p.Notes != nil && utf8.RuneCountInString(*p.Notes) > maxNotesLen {
		fields = append(fields, "notes")
	}
	if p.Triggers != nil && !validTriggerSet(p.Triggers) {
		fields = append(fields, "triggers")
	}

	return newValidationError(fields)
}

// Empty сообщает, меняет ли патч хоть одно поле.
func (p *MoodEventPatch) Empty() bool {
	return p.Mood == nil && p.Intensity == nil && p.Context == nil && p.Notes == nil && p.Triggers == nil
}

type InsightInput struct {
	Type         InsightType
	Category     InsightCategory
	Title        string
	Description  string
	Confidence   float64
	Priority     InsightPriority
	IsActionable bool
	ExpiresAt    time.Time
	Data         []byte
	Source       string
	Tags         []string
}

// Validate проверяет контракт приема инсайта и подставляет приоритет по умолчанию.
func (in *InsightInput) Validate(now time.Time) error {
	var fields []string

	if !in.Type.Valid() {
		fields = append(fields, "type")
	}
	if !in.Category.Valid() {
		fields = append(fields, "category")
	}
	if strings.TrimSpace(in.Title) == "" || utf8.RuneCountInString(in.Title) > maxTitleLen {
		fields = append(fields, "title")
	}
	if strings.TrimSpace(in.Description) == "" || utf8.RuneCountInString(in.Description) > maxDescriptionLen {
		fields = append(fields, "description")
	}
	if in.Confidence < 0 || in.Confidence > 1 {
		fields = append(fields, "confidence")
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if !in.Priority.Valid() {
		fields = append(fields, "priority")
	}
	if !in.ExpiresAt.After(now) {
		fields = append(fields, "expires_at")
	}
	if len(in.Data) > maxDataBytes {
		fields = append(fields, "data")
	}
	if utf8.RuneCountInString(in.Source) > maxSourceLen {
		fields = append(fields, "source")
	}
	if len(in.Tags) > maxTags {
		fields = append(fields, "tags")
	} else {
		for _, tag := range in.Tags {
			if strings.TrimSpace(tag) == "" || utf8.RuneCountInString(tag) > maxTagLen {
				fields = append(fields, "tags")
				break
			}
		}
	}

	return newValidationError(fields)
}

func validTriggerSet(triggers []TriggerTag) bool {
	if len(triggers) > maxTags {
		return false
	}

	seen := make(map[TriggerTag]struct{}, len(triggers))
	for _, trigger := range triggers {
		if !trigger.Valid() {
			return false
		}
		if _, dup := seen[trigger]; dup {
			return false
		}
		seen[trigger] = struct{}{}
	}

	return true
}
