package domain

import "time"

// DailyScheduleItem is one day's allocation. DayIndex is 1-based and
// contiguous across the whole plan; StepOrder is nil for items not tied
// to a specific step.
type DailyScheduleItem struct {
	DayIndex         int       `json:"day_index"`
	Date             time.Time `json:"date"`
	AllocatedMinutes int       `json:"allocated_minutes"`
	StepOrder        *int      `json:"step_order,omitempty"`
	Tasks            []string  `json:"tasks"`
}
