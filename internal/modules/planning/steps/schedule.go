package steps

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/planweave/planweave-backend/internal/domain"
)

const (
	// minDailyCapacityMin keeps a near-zero daily preference from
	// stalling the plan.
	minDailyCapacityMin = 45
	// minStepMinutes keeps a zero-length step from stalling the day
	// counter.
	minStepMinutes = 30
	// maxTasksPerStep bounds the key topics named in a day's task line.
	maxTasksPerStep = 3
)

// AllocateDailySchedule converts hour-denominated steps into a
// contiguous day-by-day schedule. Days increment globally across the
// whole plan: a new step continues on the day where the previous step
// stopped consuming capacity, never on a fresh day.
func AllocateDailySchedule(startDate time.Time, dailyCapacityMin int, steps []domain.EnrichedStep) []domain.DailyScheduleItem {
	if len(steps) == 0 {
		return []domain.DailyScheduleItem{}
	}

	capacity := dailyCapacityMin
	if capacity < minDailyCapacityMin {
		capacity = minDailyCapacityMin
	}

	ordered := make([]domain.EnrichedStep, len(steps))
	copy(ordered, steps)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	var schedule []domain.DailyScheduleItem
	dayIndex := 0
	for _, step := range ordered {
		remaining := step.EstimatedHours * 60
		if remaining < minStepMinutes {
			remaining = minStepMinutes
		}
		for remaining > 0 {
			dayIndex++
			allocated := capacity
			if remaining < allocated {
				allocated = remaining
			}
			stepOrder := step.Order
			schedule = append(schedule, domain.DailyScheduleItem{
				DayIndex:         dayIndex,
				Date:             startDate.AddDate(0, 0, dayIndex-1),
				AllocatedMinutes: allocated,
				StepOrder:        &stepOrder,
				Tasks:            dayTasks(step),
			})
			remaining -= allocated
		}
	}
	return schedule
}

func dayTasks(step domain.EnrichedStep) []string {
	if len(step.KeyTopics) == 0 {
		return []string{}
	}
	topics := step.KeyTopics
	if len(topics) > maxTasksPerStep {
		topics = topics[:maxTasksPerStep]
	}
	task := fmt.Sprintf("%s: %s", step.Title, strings.Join(topics, ", "))
	return []string{task}
}
