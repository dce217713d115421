package models

// MaxGoals caps how many goals may exist at creation time. The cap is
// enforced by callers before any store write; the store itself appends
// unconditionally.
const MaxGoals = 3

// GoalProgress is one point in a goal's history. History is append-only and
// never reordered.
type GoalProgress struct {
	Date   string  `json:"date"` // RFC3339
	Amount float64 `json:"amount"`
}

type Goal struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	TargetAmount  float64        `json:"targetAmount"`
	CurrentAmount float64        `json:"currentAmount"`
	Deadline      string         `json:"deadline,omitempty"` // YYYY-MM-DD
	CreatedAt     string         `json:"createdAt,omitempty"`
	History       []GoalProgress `json:"history"`
}

// Percent returns completion as 0-100, clamped at 100.
func (g Goal) Percent() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount * 100
	if p > 100 {
		return 100
	}
	return p
}

// Remaining returns the amount still needed, never negative.
func (g Goal) Remaining() float64 {
	r := g.TargetAmount - g.CurrentAmount
	if r < 0 {
		return 0
	}
	return r
}

// RecentHistory returns the trailing n history entries. The progress chart
// consumes only the last 10.
func (g Goal) RecentHistory(n int) []GoalProgress {
	if len(g.History) <= n {
		return g.History
	}
	return g.History[len(g.History)-n:]
}
