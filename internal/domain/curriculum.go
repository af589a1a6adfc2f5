package domain

import "fmt"

// CurriculumDepth sizes a curriculum. Each depth carries a hard step
// count range; constructions outside the range are rejected.
type CurriculumDepth string

const (
	CurriculumBasic    CurriculumDepth = "basic"
	CurriculumStandard CurriculumDepth = "standard"
	CurriculumDetailed CurriculumDepth = "detailed"
	// CurriculumHybrid tags a curriculum spliced from mixed-size
	// segments; its length is decided by the mix, not a fixed range.
	CurriculumHybrid CurriculumDepth = "hybrid"
)

// StepRange returns the inclusive step count bounds for a depth.
func (d CurriculumDepth) StepRange() (min, max int) {
	switch d {
	case CurriculumBasic:
		return 3, 4
	case CurriculumDetailed:
		return 8, 12
	default:
		return 5, 7
	}
}

// StepBlueprint is one curriculum step before resource enrichment.
type StepBlueprint struct {
	Order          int      `json:"order"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	EstimatedHours int      `json:"estimated_hours"`
	Prerequisites  []string `json:"prerequisites"`
	KeyTopics      []string `json:"key_topics"`
}

type Curriculum struct {
	Depth CurriculumDepth `json:"depth"`
	Steps []StepBlueprint `json:"steps"`
}

// NewCurriculum validates the depth's step count range plus the
// per-step invariants (contiguous 1-based order, positive hours).
func NewCurriculum(depth CurriculumDepth, steps []StepBlueprint) (*Curriculum, error) {
	if depth != CurriculumHybrid {
		min, max := depth.StepRange()
		if len(steps) < min || len(steps) > max {
			return nil, fmt.Errorf("%s curriculum requires %d-%d steps, got %d", depth, min, max, len(steps))
		}
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("curriculum requires at least one step")
	}
	for i, s := range steps {
		if s.Order != i+1 {
			return nil, fmt.Errorf("step order must be contiguous from 1: step %d has order %d", i+1, s.Order)
		}
		if s.EstimatedHours <= 0 {
			return nil, fmt.Errorf("step %d has non-positive estimated hours %d", s.Order, s.EstimatedHours)
		}
	}
	return &Curriculum{Depth: depth, Steps: steps}, nil
}

func (c *Curriculum) TotalHours() int {
	total := 0
	for _, s := range c.Steps {
		total += s.EstimatedHours
	}
	return total
}

type LearningResource struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// EnrichedStep is a blueprint plus its resources. An empty resource
// list is a valid degraded state, not an error.
type EnrichedStep struct {
	StepBlueprint
	LearningResources []LearningResource `json:"learning_resources"`
}

type EnrichedCurriculum struct {
	Depth CurriculumDepth `json:"depth"`
	Steps []EnrichedStep  `json:"steps"`
}

func (c *EnrichedCurriculum) TotalHours() int {
	total := 0
	for _, s := range c.Steps {
		total += s.EstimatedHours
	}
	return total
}
