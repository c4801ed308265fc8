package analytics

import (
	"math"
	"sort"

	"example.com/mood-insight-engine/internal/models"
)

type InsightSummary struct {
	TotalInsights     int                            `json:"total_insights"`
	HighPriorityCount int                            `json:"high_priority_count"`
	ActionableCount   int                            `json:"actionable_count"`
	AvgConfidence     float64                        `json:"avg_confidence"`
	ByType            map[models.InsightType]int     `json:"by_type"`
	ByCategory        map[models.InsightCategory]int `json:"by_category"`
}

// SortActionable упорядочивает инсайты по контракту actionable-выдачи:
// priority desc, затем confidence desc, затем created_at desc.
func SortActionable(insights []models.Insight) {
	sort.SliceStable(insights, func(i, j int) bool {
		a, b := insights[i], insights[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() > b.Priority.Rank()
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

// SummarizeInsights агрегирует живые инсайты окна для дашборда.
// Средняя уверенность невзвешенная, округляется до двух знаков.
func SummarizeInsights(insights []models.Insight) InsightSummary {
	summary := InsightSummary{
		ByType:     make(map[models.InsightType]int),
		ByCategory: make(map[models.InsightCategory]int),
	}

	var confidenceSum float64
	for _, insight := range insights {
		summary.TotalInsights++
		summary.ByType[insight.Type]++
		summary.ByCategory[insight.Category]++
		confidenceSum += insight.Confidence

		if insight.Priority == models.PriorityHigh || insight.Priority == models.PriorityUrgent {
			summary.HighPriorityCount++
		}
		if insight.IsActionable && !insight.ActionTaken {
			summary.ActionableCount++
		}
	}

	if summary.TotalInsights > 0 {
		summary.AvgConfidence = roundTo2(confidenceSum / float64(summary.TotalInsights))
	}

	return summary
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
