package analytics

import (
	"math"
	"testing"
	"time"

	"example.com/mood-insight-engine/internal/models"
)

func insight(priority models.InsightPriority, confidence float64, createdAt time.Time) models.Insight {
	return models.Insight{
		Type:       models.InsightRecommendation,
		Category:   models.CategoryActionable,
		Priority:   priority,
		Confidence: confidence,
		CreatedAt:  createdAt,
	}
}

// TestSortActionableTotalOrder проверяет полный порядок выдачи:
// priority desc, затем confidence desc.
func TestSortActionableTotalOrder(t *testing.T) {
	now := time.Now()

	insights := []models.Insight{
		insight(models.PriorityLow, 0.9, now),
		insight(models.PriorityUrgent, 0.5, now),
		insight(models.PriorityHigh, 0.9, now),
		insight(models.PriorityUrgent, 0.9, now),
	}

	SortActionable(insights)

	wantPriorities := []models.InsightPriority{
		models.PriorityUrgent, models.PriorityUrgent, models.PriorityHigh, models.PriorityLow,
	}
	for i, want := range wantPriorities {
		if insights[i].Priority != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, insights[i].Priority)
		}
	}

	if insights[0].Confidence != 0.9 || insights[1].Confidence != 0.5 {
		t.Fatalf("expected urgent/0.9 before urgent/0.5, got %v then %v",
			insights[0].Confidence, insights[1].Confidence)
	}
}

// TestSortActionableCreatedAtTieBreak: при равных priority и confidence
// свежий инсайт идет первым.
func TestSortActionableCreatedAtTieBreak(t *testing.T) {
	older := time.Now().Add(-time.Hour)
	newer := time.Now()

	insights := []models.Insight{
		insight(models.PriorityHigh, 0.7, older),
		insight(models.PriorityHigh, 0.7, newer),
	}

	SortActionable(insights)

	if !insights[0].CreatedAt.Equal(newer) {
		t.Fatalf("expected newest first, got %v", insights[0].CreatedAt)
	}
}

// TestSummarizeInsights проверяет счетчики и округление средней уверенности.
func TestSummarizeInsights(t *testing.T) {
	now := time.Now()

	a := insight(models.PriorityUrgent, 0.333, now)
	a.Type = models.InsightSpendingPattern
	a.Category = models.CategoryFinancial
	a.IsActionable = true

	b := insight(models.PriorityHigh, 0.666, now)
	b.IsActionable = true
	b.ActionTaken = true

	c := insight(models.PriorityLow, 0.5, now)

	summary := SummarizeInsights([]models.Insight{a, b, c})

	if summary.TotalInsights != 3 {
		t.Fatalf("expected 3 insights, got %d", summary.TotalInsights)
	}
	if summary.HighPriorityCount != 2 {
		t.Fatalf("expected 2 high-priority, got %d", summary.HighPriorityCount)
	}
	if summary.ActionableCount != 1 {
		t.Fatalf("expected 1 actionable (acted one excluded), got %d", summary.ActionableCount)
	}

	// (0.333 + 0.666 + 0.5) / 3 = 0.4996(6) → 0.5
	if math.Abs(summary.AvgConfidence-0.5) > 1e-9 {
		t.Fatalf("expected avg confidence 0.5, got %v", summary.AvgConfidence)
	}

	if summary.ByType[models.InsightSpendingPattern] != 1 || summary.ByType[models.InsightRecommendation] != 2 {
		t.Fatalf("unexpected type breakdown: %v", summary.ByType)
	}
	if summary.ByCategory[models.CategoryFinancial] != 1 || summary.ByCategory[models.CategoryActionable] != 2 {
		t.Fatalf("unexpected category breakdown: %v", summary.ByCategory)
	}
}

// TestSummarizeInsightsEmpty проверяет нулевую сводку.
func TestSummarizeInsightsEmpty(t *testing.T) {
	summary := SummarizeInsights(nil)

	if summary.TotalInsights != 0 || summary.AvgConfidence != 0 {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
	if len(summary.ByType) != 0 || len(summary.ByCategory) != 0 {
		t.Fatalf("expected empty breakdowns, got %+v", summary)
	}
}
