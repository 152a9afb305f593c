// Package metrics turns client, payment, visit and goal snapshots into
// period summaries, retention figures, streaks and trend series. Every
// function is pure: inputs are never modified and empty inputs produce
// zero-valued results.
package metrics

import (
	"time"

	"github.com/sjperalta/clientpulse-api/internal/period"
)

// DefaultTrendDays is the length of a trend series when none is requested
const DefaultTrendDays = 30

// Engine computes analytics against a clock and pluggable business rules
type Engine struct {
	clock  period.Clock
	goals  GoalCompletionStrategy
	streak StreakStrategy
}

// Option configures an Engine
type Option func(*Engine)

// WithClock sets the source of "now"
func WithClock(clock period.Clock) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithGoalCompletion replaces the goal completion rule
func WithGoalCompletion(s GoalCompletionStrategy) Option {
	return func(e *Engine) {
		if s != nil {
			e.goals = s
		}
	}
}

// WithStreak replaces the streak rule
func WithStreak(s StreakStrategy) Option {
	return func(e *Engine) {
		if s != nil {
			e.streak = s
		}
	}
}

// NewEngine creates an engine using the system clock, AllGoalsCompleted and SameDayStreak unless overridden
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		clock:  period.SystemClock,
		goals:  AllGoalsCompleted{},
		streak: SameDayStreak{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now returns the engine's current time
func (e *Engine) Now() time.Time {
	return e.clock()
}
