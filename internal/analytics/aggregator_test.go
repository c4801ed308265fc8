package analytics

import (
	"math"
	"testing"
	"time"

	"example.com/mood-insight-engine/internal/models"
)

const epsilon = 1e-9

func event(mood models.Mood, intensity int, context models.MoodContext, recordedAt time.Time) models.MoodEvent {
	return models.MoodEvent{
		Mood:       mood,
		Intensity:  intensity,
		Context:    context,
		RecordedAt: recordedAt,
	}
}

// TestDailyTrendSingleDay проверяет корзины одного дня по примеру спецификации поведения.
func TestDailyTrendSingleDay(t *testing.T) {
	today := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	trend := DailyTrend([]models.MoodEvent{
		event(models.MoodHappy, 10, models.ContextGeneral, today),
		event(models.MoodHappy, 6, models.ContextGeneral, today.Add(time.Hour)),
		event(models.MoodStressed, 4, models.ContextGeneral, today.Add(2*time.Hour)),
	})

	if len(trend) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(trend))
	}

	if trend[0].Mood != models.MoodHappy || trend[0].Count != 2 || math.Abs(trend[0].AvgIntensity-8) > epsilon {
		t.Fatalf("unexpected happy entry: %+v", trend[0])
	}
	if trend[1].Mood != models.MoodStressed || trend[1].Count != 1 || math.Abs(trend[1].AvgIntensity-4) > epsilon {
		t.Fatalf("unexpected stressed entry: %+v", trend[1])
	}
	if trend[0].Date != "2025-06-10" {
		t.Fatalf("unexpected date: %s", trend[0].Date)
	}
}

// TestDailyTrendOrdering проверяет порядок: дата по возрастанию, затем имя настроения.
func TestDailyTrendOrdering(t *testing.T) {
	day1 := time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

	trend := DailyTrend([]models.MoodEvent{
		event(models.MoodSad, 5, models.ContextGeneral, day2),
		event(models.MoodAngry, 5, models.ContextGeneral, day2),
		event(models.MoodHappy, 5, models.ContextGeneral, day1),
	})

	if len(trend) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(trend))
	}
	if trend[0].Date != "2025-06-09" || trend[0].Mood != models.MoodHappy {
		t.Fatalf("unexpected first entry: %+v", trend[0])
	}
	if trend[1].Mood != models.MoodAngry || trend[2].Mood != models.MoodSad {
		t.Fatalf("expected angry before sad on shared date, got %+v then %+v", trend[1], trend[2])
	}
}

// TestPatternsByContextOrdering проверяет сортировку: count, avgIntensity, контекст.
func TestPatternsByContextOrdering(t *testing.T) {
	now := time.Now()

	patterns := PatternsByContext([]models.MoodEvent{
		event(models.MoodAnxious, 8, models.ContextBeforeTransaction, now),
		event(models.MoodAnxious, 8, models.ContextBeforeTransaction, now),
		event(models.MoodCalm, 9, models.ContextGoalCheck, now),
		event(models.MoodCalm, 3, models.ContextBudgetReview, now),
	})

	if len(patterns) != 3 {
		t.Fatalf("expected 3 patterns, got %d", len(patterns))
	}

	if patterns[0].Context != models.ContextBeforeTransaction || patterns[0].Count != 2 {
		t.Fatalf("expected (before_transaction, anxious) first, got %+v", patterns[0])
	}
	// Равный count: выше средняя интенсивность.
	if patterns[1].Context != models.ContextGoalCheck {
		t.Fatalf("expected goal_check before budget_review, got %+v", patterns[1])
	}
}

// TestPatternsByContextNameTieBreak проверяет разрыв по имени контекста.
func TestPatternsByContextNameTieBreak(t *testing.T) {
	now := time.Now()

	patterns := PatternsByContext([]models.MoodEvent{
		event(models.MoodCalm, 5, models.ContextGoalCheck, now),
		event(models.MoodCalm, 5, models.ContextBudgetReview, now),
	})

	if patterns[0].Context != models.ContextBudgetReview {
		t.Fatalf("expected budget_review first on full tie, got %+v", patterns[0])
	}
}

// TestWeeklyScores проверяет группировку по ISO-неделям в хронологическом порядке.
func TestWeeklyScores(t *testing.T) {
	// 2024-12-30 приходится на понедельник ISO-недели 1 2025 года.
	week1 := time.Date(2024, 12, 30, 12, 0, 0, 0, time.UTC)
	week52 := time.Date(2024, 12, 25, 12, 0, 0, 0, time.UTC)

	scores := WeeklyScores([]models.MoodEvent{
		event(models.MoodHappy, 10, models.ContextGeneral, week1),
		event(models.MoodNeutral, 10, models.ContextGeneral, week1),
		event(models.MoodCalm, 10, models.ContextGeneral, week52),
	})

	if len(scores) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(scores))
	}

	if scores[0].ISOYear != 2024 || scores[0].ISOWeek != 52 {
		t.Fatalf("expected 2024-W52 first, got %+v", scores[0])
	}
	if scores[1].ISOYear != 2025 || scores[1].ISOWeek != 1 {
		t.Fatalf("expected 2025-W01 second, got %+v", scores[1])
	}

	if math.Abs(scores[1].AvgMoodScore-7) > epsilon {
		t.Fatalf("expected avg score 7 for week 1, got %v", scores[1].AvgMoodScore)
	}
}

// TestSummarizeEmptyWindow проверяет нулевую сводку пустого окна.
func TestSummarizeEmptyWindow(t *testing.T) {
	summary := Summarize(nil)

	if summary.TotalEvents != 0 {
		t.Fatalf("expected 0 events, got %d", summary.TotalEvents)
	}
	if summary.AvgMoodScore != 0 {
		t.Fatalf("expected avg 0, got %v", summary.AvgMoodScore)
	}
	if summary.DominantMood != models.MoodNeutral {
		t.Fatalf("expected neutral dominant mood, got %s", summary.DominantMood)
	}
	if len(summary.ByMood) != 0 {
		t.Fatalf("expected empty distribution, got %v", summary.ByMood)
	}
}

// TestSummarizeExample проверяет сводку трех наблюдений.
func TestSummarizeExample(t *testing.T) {
	now := time.Now()

	summary := Summarize([]models.MoodEvent{
		event(models.MoodHappy, 10, models.ContextGeneral, now),
		event(models.MoodHappy, 6, models.ContextGeneral, now),
		event(models.MoodStressed, 4, models.ContextGeneral, now),
	})

	if summary.TotalEvents != 3 {
		t.Fatalf("expected 3 events, got %d", summary.TotalEvents)
	}
	if summary.DominantMood != models.MoodHappy {
		t.Fatalf("expected happy dominant, got %s", summary.DominantMood)
	}

	// (9 + 5.4 + 0.8) / 3
	if math.Abs(summary.AvgMoodScore-15.2/3) > epsilon {
		t.Fatalf("unexpected avg score %v", summary.AvgMoodScore)
	}

	happy := summary.ByMood[models.MoodHappy]
	if happy.Count != 2 || math.Abs(happy.AvgIntensity-8) > epsilon {
		t.Fatalf("unexpected happy stat: %+v", happy)
	}
	stressed := summary.ByMood[models.MoodStressed]
	if stressed.Count != 1 || math.Abs(stressed.AvgScore-0.8) > epsilon {
		t.Fatalf("unexpected stressed stat: %+v", stressed)
	}
}

// TestDominantMoodVarianceTieBreak: при равном числе наблюдений побеждает
// меньшая дисперсия интенсивности.
func TestDominantMoodVarianceTieBreak(t *testing.T) {
	now := time.Now()

	summary := Summarize([]models.MoodEvent{
		event(models.MoodSad, 5, models.ContextGeneral, now),
		event(models.MoodSad, 5, models.ContextGeneral, now),
		event(models.MoodHappy, 1, models.ContextGeneral, now),
		event(models.MoodHappy, 9, models.ContextGeneral, now),
	})

	if summary.DominantMood != models.MoodSad {
		t.Fatalf("expected sad (zero variance) to win tie, got %s", summary.DominantMood)
	}
}

// TestDominantMoodAlphabeticalTieBreak: полный паритет разрешается алфавитом.
func TestDominantMoodAlphabeticalTieBreak(t *testing.T) {
	now := time.Now()

	summary := Summarize([]models.MoodEvent{
		event(models.MoodWorried, 5, models.ContextGeneral, now),
		event(models.MoodCalm, 5, models.ContextGeneral, now),
	})

	if summary.DominantMood != models.MoodCalm {
		t.Fatalf("expected calm by alphabetical tie-break, got %s", summary.DominantMood)
	}
}

// TestWindowStartUTC: рамка окна считается в UTC, в той же зоне, что и
// дневные корзины, чтобы членство в окне и корзина дня совпадали у полуночи.
func TestWindowStartUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	now := time.Date(2025, 6, 10, 1, 30, 0, 0, loc)

	from := WindowStart(now, 7)

	if from.Location() != time.UTC {
		t.Fatalf("expected UTC window start, got %v", from.Location())
	}

	want := time.Date(2025, 6, 2, 20, 30, 0, 0, time.UTC)
	if !from.Equal(want) {
		t.Fatalf("expected %v, got %v", want, from)
	}
}
