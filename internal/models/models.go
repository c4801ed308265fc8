package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Mood string

type MoodContext string

type TriggerTag string

type InsightType string

type InsightCategory string

type InsightPriority string

const (
	MoodHappy    Mood = "happy"
	MoodExcited  Mood = "excited"
	MoodContent  Mood = "content"
	MoodCalm     Mood = "calm"
	MoodNeutral  Mood = "neutral"
	MoodWorried  Mood = "worried"
	MoodSad      Mood = "sad"
	MoodAnxious  Mood = "anxious"
	MoodStressed Mood = "stressed"
	MoodAngry    Mood = "angry"

	ContextBeforeTransaction MoodContext = "before_transaction"
	ContextAfterTransaction  MoodContext = "after_transaction"
	ContextGeneral           MoodContext = "general"
	ContextBudgetReview      MoodContext = "budget_review"
	ContextGoalCheck         MoodContext = "goal_check"

	TriggerWork     TriggerTag = "work"
	TriggerFamily   TriggerTag = "family"
	TriggerHealth   TriggerTag = "health"
	TriggerFinances TriggerTag = "finances"
	TriggerSocial   TriggerTag = "social"
	TriggerSleep    TriggerTag = "sleep"
	TriggerFood     TriggerTag = "food"
	TriggerExercise TriggerTag = "exercise"
	TriggerWeather  TriggerTag = "weather"
	TriggerOther    TriggerTag = "other"

	InsightSpendingPattern   InsightType = "spending_pattern"
	InsightMoodCorrelation   InsightType = "mood_correlation"
	InsightBudget            InsightType = "budget_insight"
	InsightGoalProgress      InsightType = "goal_progress"
	InsightBehavioralTrigger InsightType = "behavioral_trigger"
	InsightRecommendation    InsightType = "recommendation"
	InsightForecast          InsightType = "forecast"

	CategoryFinancial  InsightCategory = "financial"
	CategoryEmotional  InsightCategory = "emotional"
	CategoryBehavioral InsightCategory = "behavioral"
	CategoryPredictive InsightCategory = "predictive"
	CategoryActionable InsightCategory = "actionable"

	PriorityLow    InsightPriority = "low"
	PriorityMedium InsightPriority = "medium"
	PriorityHigh   InsightPriority = "high"
	PriorityUrgent InsightPriority = "urgent"
)

// moodBaseScores задает базовую валентность каждого настроения.
// Совпадения (anxious и stressed) намеренные.
var moodBaseScores = map[Mood]float64{
	MoodHappy:    9,
	MoodExcited:  8,
	MoodContent:  7,
	MoodCalm:     6,
	MoodNeutral:  5,
	MoodWorried:  4,
	MoodSad:      3,
	MoodAnxious:  2,
	MoodStressed: 2,
	MoodAngry:    1,
}

func (m Mood) Valid() bool {
	_, ok := moodBaseScores[m]
	return ok
}

func (c MoodContext) Valid() bool {
	switch c {
	case ContextBeforeTransaction, ContextAfterTransaction, ContextGeneral, ContextBudgetReview, ContextGoalCheck:
		return true
	}
	return false
}

func (t TriggerTag) Valid() bool {
	switch t {
	case TriggerWork, TriggerFamily, TriggerHealth, TriggerFinances, TriggerSocial,
		TriggerSleep, TriggerFood, TriggerExercise, TriggerWeather, TriggerOther:
		return true
	}
	return false
}

func (t InsightType) Valid() bool {
	switch t {
	case InsightSpendingPattern, InsightMoodCorrelation, InsightBudget, InsightGoalProgress,
		InsightBehavioralTrigger, InsightRecommendation, InsightForecast:
		return true
	}
	return false
}

func (c InsightCategory) Valid() bool {
	switch c {
	case CategoryFinancial, CategoryEmotional, CategoryBehavioral, CategoryPredictive, CategoryActionable:
		return true
	}
	return false
}

func (p InsightPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Rank возвращает позицию приоритета для сортировки: urgent выше всех.
func (p InsightPriority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// MoodScore вычисляет производную оценку настроения: база × интенсивность/10.
// Значение всегда пересчитывается, в БД не хранится.
func MoodScore(mood Mood, intensity int) float64 {
	return moodBaseScores[mood] * float64(intensity) / 10
}

type MoodEvent struct {
	ID               uuid.UUID    `json:"id"`
	UserID           uuid.UUID    `json:"user_id"`
	Mood             Mood         `json:"mood"`
	Intensity        int          `json:"intensity"`
	Context          MoodContext  `json:"context"`
	TransactionRef   *string      `json:"transaction_ref,omitempty"`
	Notes            *string      `json:"notes,omitempty"`
	Triggers         []TriggerTag `json:"triggers"`
	DerivedMoodScore float64      `json:"derived_mood_score"`
	RecordedAt       time.Time    `json:"recorded_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

type Insight struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	Type          InsightType     `json:"type"`
	Category      InsightCategory `json:"category"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Confidence    float64         `json:"confidence"`
	Priority      InsightPriority `json:"priority"`
	IsActionable  bool            `json:"is_actionable"`
	ActionTaken   bool            `json:"action_taken"`
	ActionTakenAt *time.Time      `json:"action_taken_at,omitempty"`
	IsRead        bool            `json:"is_read"`
	ExpiresAt     time.Time       `json:"expires_at"`
	Data          json.RawMessage `json:"data,omitempty"`
	Source        string          `json:"source,omitempty"`
	Tags          []string        `json:"tags"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
