package analytics

import (
	"sort"
	"time"

	"example.com/mood-insight-engine/internal/models"
)

type DailyTrendEntry struct {
	Date         string      `json:"date"`
	Mood         models.Mood `json:"mood"`
	AvgIntensity float64     `json:"avg_intensity"`
	Count        int         `json:"count"`
}

type ContextPattern struct {
	Context      models.MoodContext `json:"context"`
	Mood         models.Mood        `json:"mood"`
	Count        int                `json:"count"`
	AvgIntensity float64            `json:"avg_intensity"`
}

type WeeklyScore struct {
	ISOYear      int     `json:"iso_year"`
	ISOWeek      int     `json:"iso_week"`
	AvgMoodScore float64 `json:"avg_mood_score"`
	Count        int     `json:"count"`
}

type MoodStat struct {
	Count        int     `json:"count"`
	AvgIntensity float64 `json:"avg_intensity"`
	AvgScore     float64 `json:"avg_score"`
}

type MoodSummary struct {
	TotalEvents  int                      `json:"total_events"`
	AvgMoodScore float64                  `json:"avg_mood_score"`
	DominantMood models.Mood              `json:"dominant_mood"`
	ByMood       map[models.Mood]MoodStat `json:"distribution_by_mood"`
}

const dateLayout = "2006-01-02"

// DailyTrend группирует наблюдения по календарному дню и настроению.
// Порядок: дата по возрастанию, внутри даты по имени настроения.
func DailyTrend(events []models.MoodEvent) []DailyTrendEntry {
	type key struct {
		date string
		mood models.Mood
	}

	counts := make(map[key]int)
	intensitySums := make(map[key]int)
	for _, event := range events {
		k := key{date: event.RecordedAt.UTC().Format(dateLayout), mood: event.Mood}
		counts[k]++
		intensitySums[k] += event.Intensity
	}

	entries := make([]DailyTrendEntry, 0, len(counts))
	for k, count := range counts {
		entries = append(entries, DailyTrendEntry{
			Date:         k.date,
			Mood:         k.mood,
			AvgIntensity: float64(intensitySums[k]) / float64(count),
			Count:        count,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].Mood < entries[j].Mood
	})

	return entries
}

// PatternsByContext группирует по паре (контекст, настроение).
// Порядок: count по убыванию, затем средняя интенсивность по убыванию,
// затем имя контекста.
func PatternsByContext(events []models.MoodEvent) []ContextPattern {
	type key struct {
		context models.MoodContext
		mood    models.Mood
	}

	counts := make(map[key]int)
	intensitySums := make(map[key]int)
	for _, event := range events {
		k := key{context: event.Context, mood: event.Mood}
		counts[k]++
		intensitySums[k] += event.Intensity
	}

	patterns := make([]ContextPattern, 0, len(counts))
	for k, count := range counts {
		patterns = append(patterns, ContextPattern{
			Context:      k.context,
			Mood:         k.mood,
			Count:        count,
			AvgIntensity: float64(intensitySums[k]) / float64(count),
		})
	}

	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].Count != patterns[j].Count {
			return patterns[i].Count > patterns[j].Count
		}
		if patterns[i].AvgIntensity != patterns[j].AvgIntensity {
			return patterns[i].AvgIntensity > patterns[j].AvgIntensity
		}
		if patterns[i].Context != patterns[j].Context {
			return patterns[i].Context < patterns[j].Context
		}
		return patterns[i].Mood < patterns[j].Mood
	})

	return patterns
}

// WeeklyScores усредняет производные оценки по неделям ISO-календаря,
// в хронологическом порядке.
func WeeklyScores(events []models.MoodEvent) []WeeklyScore {
	type key struct {
		year int
		week int
	}

	counts := make(map[key]int)
	scoreSums := make(map[key]float64)
	for _, event := range events {
		year, week := event.RecordedAt.UTC().ISOWeek()
		k := key{year: year, week: week}
		counts[k]++
		scoreSums[k] += models.MoodScore(event.Mood, event.Intensity)
	}

	scores := make([]WeeklyScore, 0, len(counts))
	for k, count := range counts {
		scores = append(scores, WeeklyScore{
			ISOYear:      k.year,
			ISOWeek:      k.week,
			AvgMoodScore: scoreSums[k] / float64(count),
			Count:        count,
		})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].ISOYear != scores[j].ISOYear {
			return scores[i].ISOYear < scores[j].ISOYear
		}
		return scores[i].ISOWeek < scores[j].ISOWeek
	})

	return scores
}

// Summarize строит сводку окна. Пустое окно дает нулевую сводку
// с dominant_mood = neutral, чтобы потребители оставались total-safe.
func Summarize(events []models.MoodEvent) MoodSummary {
	summary := MoodSummary{
		DominantMood: models.MoodNeutral,
		ByMood:       make(map[models.Mood]MoodStat),
	}

	if len(events) == 0 {
		return summary
	}

	intensities := make(map[models.Mood][]int)
	scoreSums := make(map[models.Mood]float64)
	var totalScore float64

	for _, event := range events {
		score := models.MoodScore(event.Mood, event.Intensity)
		intensities[event.Mood] = append(intensities[event.Mood], event.Intensity)
		scoreSums[event.Mood] += score
		totalScore += score
	}

	summary.TotalEvents = len(events)
	summary.AvgMoodScore = totalScore / float64(len(events))

	for mood, values := range intensities {
		var sum int
		for _, v := range values {
			sum += v
		}
		summary.ByMood[mood] = MoodStat{
			Count:        len(values),
			AvgIntensity: float64(sum) / float64(len(values)),
			AvgScore:     scoreSums[mood] / float64(len(values)),
		}
	}

	summary.DominantMood = dominantMood(intensities)
	return summary
}

// dominantMood выбирает настроение с наибольшим числом наблюдений.
// При равенстве побеждает меньшая дисперсия интенсивности, затем алфавит.
func dominantMood(intensities map[models.Mood][]int) models.Mood {
	moods := make([]models.Mood, 0, len(intensities))
	for mood := range intensities {
		moods = append(moods, mood)
	}

	sort.Slice(moods, func(i, j int) bool {
		a, b := intensities[moods[i]], intensities[moods[j]]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		va, vb := intensityVariance(a), intensityVariance(b)
		if va != vb {
			return va < vb
		}
		return moods[i] < moods[j]
	})

	return moods[0]
}

func intensityVariance(values []int) float64 {
	var sum int
	for _, v := range values {
		sum += v
	}
	mean := float64(sum) / float64(len(values))

	var variance float64
	for _, v := range values {
		d := float64(v) - mean
		variance += d * d
	}
	return variance / float64(len(values))
}

// WindowStart возвращает начало трейлинг-окна в windowDays суток от now.
// Считается в UTC, в той же зоне, что и дневные корзины DailyTrend.
func WindowStart(now time.Time, windowDays int) time.Time {
	return now.UTC().AddDate(0, 0, -windowDays)
}
