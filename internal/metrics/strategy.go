package metrics

import (
	"slices"
	"time"

	"github.com/sjperalta/clientpulse-api/internal/models"
	"github.com/sjperalta/clientpulse-api/internal/period"
)

// GoalCompletionStrategy decides which goals count as completed within a window
type GoalCompletionStrategy interface {
	CompletedGoals(data models.Dataset, w period.Window) []models.Goal
}

// AllGoalsCompleted counts every supplied goal as completed regardless of progress.
// TODO: replace with progress-against-target once goal progress is recorded per frequency window.
type AllGoalsCompleted struct{}

// CompletedGoals returns all goals
func (AllGoalsCompleted) CompletedGoals(data models.Dataset, _ period.Window) []models.Goal {
	return data.Goals
}

// Streak reports activity streaks as of now using the configured strategy
func (e *Engine) Streak(data models.Dataset) models.GoalStreakData {
	return e.streak.Streak(data, e.clock())
}

// StreakStrategy computes streak data as of now
type StreakStrategy interface {
	Streak(data models.Dataset, now time.Time) models.GoalStreakData
}

// SameDayStreak only looks at today: a client created today makes the streak 1.
type SameDayStreak struct{}

// Streak implements StreakStrategy
func (SameDayStreak) Streak(data models.Dataset, now time.Time) models.GoalStreakData {
	streak := models.GoalStreakData{StreakDates: []time.Time{}}

	for _, c := range data.Clients {
		if period.SameDay(now, c.CreatedAt) {
			streak.IsActiveToday = true
			break
		}
	}

	if streak.IsActiveToday {
		today := period.StartOfDay(now)
		streak.CurrentStreak = 1
		streak.StreakDates = append(streak.StreakDates, today)
		streak.LastActiveDate = &today
	}
	streak.LongestStreak = max(streak.CurrentStreak, streak.LongestStreak)

	return streak
}

// ConsecutiveDayStreak walks back over calendar days. A day is active when a
// client, a visit or a confirmed payment was recorded on it. An inactive
// today does not break the current streak until the day is over.
type ConsecutiveDayStreak struct{}

// Streak implements StreakStrategy
func (ConsecutiveDayStreak) Streak(data models.Dataset, now time.Time) models.GoalStreakData {
	streak := models.GoalStreakData{StreakDates: []time.Time{}}
	loc := now.Location()

	active := make(map[string]time.Time)
	mark := func(t time.Time) {
		if t.IsZero() {
			return
		}
		day := period.StartOfDay(t.In(loc))
		active[dayKey(day)] = day
	}
	for _, c := range data.Clients {
		mark(c.CreatedAt)
	}
	for _, v := range data.Visits {
		mark(v.CreatedAt)
	}
	for _, p := range data.Payments {
		if p.IsConfirmed() {
			mark(p.PaymentDate)
		}
	}
	if len(active) == 0 {
		return streak
	}

	days := make([]time.Time, 0, len(active))
	for _, d := range active {
		days = append(days, d)
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })

	today := period.StartOfDay(now)
	_, streak.IsActiveToday = active[dayKey(today)]

	last := days[len(days)-1]
	streak.LastActiveDate = &last

	cursor := today
	if !streak.IsActiveToday {
		cursor = today.AddDate(0, 0, -1)
	}
	for {
		if _, ok := active[dayKey(cursor)]; !ok {
			break
		}
		streak.StreakDates = append(streak.StreakDates, cursor)
		cursor = cursor.AddDate(0, 0, -1)
	}
	slices.Reverse(streak.StreakDates)
	streak.CurrentStreak = len(streak.StreakDates)

	run := 1
	streak.LongestStreak = 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			run++
		} else {
			run = 1
		}
		streak.LongestStreak = max(streak.LongestStreak, run)
	}
	streak.LongestStreak = max(streak.LongestStreak, streak.CurrentStreak)

	return streak
}

func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
