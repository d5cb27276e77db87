package goals

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aristath/ledgerfolio/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Progress is the derived completion state of one goal. DaysRemaining
// and IsOverdue are absent when the goal has no target date; defaulting
// them to 0/false would be indistinguishable from "on time".
type Progress struct {
	GoalID          uuid.UUID       `json:"goal_id"`
	Category        domain.Category `json:"category"`
	Nickname        string          `json:"nickname,omitempty"`
	TargetAmount    decimal.Decimal `json:"target_amount"`
	CurrentAmount   decimal.Decimal `json:"current_amount"`
	ProgressPercent decimal.Decimal `json:"progress_percent"`
	IsComplete      bool            `json:"is_complete"`
	TargetDate      *time.Time      `json:"target_date,omitempty"`
	DaysRemaining   *int            `json:"days_remaining,omitempty"`
	IsOverdue       *bool           `json:"is_overdue,omitempty"`
}

// ComputeProgress derives the completion state of a goal from the
// current invested amount of its category. The amount comes from the
// pre-folding aggregation totals, so a goal tracks its category even
// when the category sits inside the Others bucket.
//
// ProgressPercent is unclamped; clamping is a render-time concern for
// progress-bar widths. A valid goal has a positive target (enforced at
// creation), so no division guard is needed here.
func ComputeProgress(goal domain.Goal, currentAmount decimal.Decimal, today time.Time) Progress {
	progress := Progress{
		GoalID:          goal.ID,
		Category:        goal.Category,
		Nickname:        goal.Nickname,
		TargetAmount:    goal.TargetAmount,
		CurrentAmount:   currentAmount,
		ProgressPercent: currentAmount.Div(goal.TargetAmount).Mul(hundred),
		IsComplete:      currentAmount.GreaterThanOrEqual(goal.TargetAmount),
		TargetDate:      goal.TargetDate,
	}

	if goal.TargetDate == nil {
		return progress
	}

	target := midnightUTC(*goal.TargetDate)
	now := midnightUTC(today)

	overdue := target.Before(now) && !progress.IsComplete
	progress.IsOverdue = &overdue

	if !progress.IsComplete {
		// May be negative when the target date has passed.
		days := int(target.Sub(now).Hours() / 24)
		progress.DaysRemaining = &days
	}

	return progress
}

func midnightUTC(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
