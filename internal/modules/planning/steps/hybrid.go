package steps

import (
	"fmt"

	"github.com/planweave/planweave-backend/internal/domain"
	"github.com/planweave/planweave-backend/internal/modules/planning"
)

// ComposeHybrid assembles a curriculum by concatenating fixed-shape
// segments for each tag in the mix, then appending the learning-style
// bonus, the optional localized review and the closing capstone. Order
// values are assigned strictly in append order; the mix order is the
// pedagogical order and is never re-sorted.
func ComposeHybrid(techName string, mix []planning.CurriculumMode, weeklyHours int, prefersKorean bool, style domain.LearningStyle) []domain.StepBlueprint {
	var steps []domain.StepBlueprint
	order := 0
	appendStep := func(title, description string, hours int, topics []string) {
		order++
		steps = append(steps, domain.StepBlueprint{
			Order:          order,
			Title:          title,
			Description:    description,
			EstimatedHours: hours,
			Prerequisites:  []string{},
			KeyTopics:      topics,
		})
	}

	for _, tag := range mix {
		switch tag {
		case planning.CurriculumQuick:
			appendStep(
				fmt.Sprintf("%s orientation", techName),
				fmt.Sprintf("Get a working mental model of %s: what it is for, core vocabulary, and a first hands-on run.", techName),
				3,
				[]string{"overview", "setup", "first run"},
			)
		case planning.CurriculumDetailed:
			appendStep(
				fmt.Sprintf("%s foundations", techName),
				fmt.Sprintf("Work through the core architecture and primitives of %s in depth.", techName),
				10,
				[]string{"architecture", "core primitives", "internals"},
			)
			appendStep(
				fmt.Sprintf("%s performance and operations", techName),
				fmt.Sprintf("Profiling, tuning and operating %s under realistic load.", techName),
				12,
				[]string{"profiling", "tuning", "operations"},
			)
		default: // standard
			appendStep(
				fmt.Sprintf("%s core concepts", techName),
				fmt.Sprintf("Learn the main concepts and idioms of %s with worked examples.", techName),
				8,
				[]string{"core concepts", "idioms", "examples"},
			)
			projectHours := clampHours(weeklyHours*2, 12)
			appendStep(
				fmt.Sprintf("%s mini project", techName),
				fmt.Sprintf("Build a small end-to-end project with %s to consolidate the concepts.", techName),
				projectHours,
				[]string{"project", "practice"},
			)
		}
	}

	switch style {
	case domain.StyleHandsOn:
		hours := clampHours(weeklyHours, 8)
		appendStep(
			fmt.Sprintf("%s practice lab", techName),
			"Focused hands-on lab exercises tailored to a project-first learning style.",
			hours,
			[]string{"exercises", "labs"},
		)
	case domain.StyleVideo:
		hours := clampHours(weeklyHours, 6)
		appendStep(
			fmt.Sprintf("%s video sprint", techName),
			"A curated video course sprint covering the material end to end.",
			hours,
			[]string{"video course"},
		)
	case domain.StyleReading:
		hours := clampHours(weeklyHours, 6)
		appendStep(
			fmt.Sprintf("%s reading sprint", techName),
			"Official documentation and reference reading in a structured pass.",
			hours,
			[]string{"official docs", "reference"},
		)
	}

	if prefersKorean {
		appendStep(
			fmt.Sprintf("%s 한국어 자료 복습", techName),
			"Review the material with curated Korean-language articles and talks.",
			2,
			[]string{"korean resources", "review"},
		)
	}

	appendStep(
		fmt.Sprintf("%s capstone", techName),
		fmt.Sprintf("Integrate everything into a capstone exercise that exercises %s across the topics covered.", techName),
		6,
		[]string{"capstone", "integration"},
	)

	return steps
}

// clampHours caps hours at max and floors at 1 so a zero weekly
// capacity never produces a zero-length step.
func clampHours(hours, max int) int {
	if hours > max {
		hours = max
	}
	if hours < 1 {
		hours = 1
	}
	return hours
}
