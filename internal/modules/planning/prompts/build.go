package prompts

import (
	"fmt"
	"strings"

	"github.com/planweave/planweave-backend/internal/domain"
)

// Prompt is one fully-built oracle request: system/user text plus the
// strict JSON schema the response must satisfy.
type Prompt struct {
	Name       PromptName
	System     string
	User       string
	SchemaName string
	Schema     map[string]any
}

func profileLine(p domain.LearnerProfile) string {
	return fmt.Sprintf("Learner: experience=%s, weekly_capacity_min=%d, preferred_style=%s, prefers_korean=%t, known_skills=%d.",
		p.ExperienceLevel, p.WeeklyCapacityMin, p.PreferredStyle, p.PrefersKoreanContent, p.KnownSkillCount)
}

func techLine(t domain.TechnologyDescriptor) string {
	return fmt.Sprintf("Technology: %s (key=%s, category=%s, ecosystem=%s).", t.DisplayName, t.Key, t.Category, t.Ecosystem)
}

func TechContext(tech domain.TechnologyDescriptor, depth domain.ContextDepth) Prompt {
	name := PromptTechContextSimple
	detail := "Give a brief orientation: a 2-3 sentence summary, the 3 most important prerequisites, closely related technologies, overall difficulty and the main use cases."
	if depth == domain.ContextDeep {
		name = PromptTechContextDeep
		detail = "Give a comprehensive analysis: an in-depth summary, the full prerequisite list, the surrounding technology landscape, difficulty with justification and concrete production use cases."
	}
	return Prompt{
		Name:       name,
		System:     "You are a senior engineer who writes precise technology briefings for curriculum planning.",
		User:       techLine(tech) + "\n" + detail,
		SchemaName: string(name),
		Schema:     TechContextSchema(),
	}
}

func GapAnalysis(profile domain.LearnerProfile, tech domain.TechnologyDescriptor, techCtx *domain.TechContext, detailed bool) Prompt {
	prereqs := ""
	if techCtx != nil {
		prereqs = "Known prerequisites: " + strings.Join(techCtx.Prerequisites, ", ") + "."
	}
	if detailed {
		return Prompt{
			Name:       PromptGapDetailed,
			System:     "You assess how ready a learner is for a technology and what preparation closes the gaps.",
			User:       profileLine(profile) + "\n" + techLine(tech) + "\n" + prereqs + "\nProduce a detailed readiness assessment with critical gaps (severity, description, action), minor gaps, strengths, ordered preparation steps and a prep-weeks estimate.",
			SchemaName: string(PromptGapDetailed),
			Schema:     GapDetailedSchema(),
		}
	}
	return Prompt{
		Name:       PromptGapQuick,
		System:     "You assess how ready a learner is for a technology and what preparation closes the gaps.",
		User:       profileLine(profile) + "\n" + techLine(tech) + "\n" + prereqs + "\nProduce a quick gap check: whether gaps exist, at most 5 gaps, at most 3 strengths and one line of preparation advice.",
		SchemaName: string(PromptGapQuick),
		Schema:     GapQuickSchema(),
	}
}

func Curriculum(profile domain.LearnerProfile, tech domain.TechnologyDescriptor, techCtx *domain.TechContext, gap domain.GapAnalysis, depth domain.CurriculumDepth) Prompt {
	min, max := depth.StepRange()
	gapLine := "No gap analysis is available."
	switch gap.Kind {
	case domain.GapQuick:
		gapLine = "Quick gap check: gaps=" + strings.Join(gap.Gaps, ", ") + "; strengths=" + strings.Join(gap.Strengths, ", ") + "."
	case domain.GapDetailed:
		areas := make([]string, 0, len(gap.CriticalGaps))
		for _, g := range gap.CriticalGaps {
			areas = append(areas, g.Area)
		}
		gapLine = fmt.Sprintf("Detailed gap analysis: readiness=%s; critical gaps=%s; prep steps=%s.",
			gap.ReadinessTier, strings.Join(areas, ", "), strings.Join(gap.PreparationSteps, "; "))
	}
	ctxLine := ""
	if techCtx != nil {
		ctxLine = "Background: " + techCtx.Summary
	}
	return Prompt{
		Name:   PromptCurriculum,
		System: "You design step-by-step technology curricula sized to a learner's capacity.",
		User: fmt.Sprintf("%s\n%s\n%s\n%s\nDesign a curriculum of %d to %d steps. Steps use contiguous 1-based order, positive estimated hours, prerequisites and key topics.",
			profileLine(profile), techLine(tech), ctxLine, gapLine, min, max),
		SchemaName: string(PromptCurriculum),
		Schema:     CurriculumSchema(),
	}
}

func StepResources(tech domain.TechnologyDescriptor, step domain.StepBlueprint, prefersKorean bool) Prompt {
	langLine := "Prefer widely-recommended English resources."
	if prefersKorean {
		langLine = "Prefer Korean-language resources where good ones exist; fall back to English."
	}
	return Prompt{
		Name:   PromptStepResources,
		System: "You curate high-quality learning resources for a single curriculum step.",
		User: fmt.Sprintf("%s\nStep %d: %s — %s\nKey topics: %s.\n%s\nName 2-4 concrete resources (type, title, url, one-line description).",
			techLine(tech), step.Order, step.Title, step.Description, strings.Join(step.KeyTopics, ", "), langLine),
		SchemaName: string(PromptStepResources),
		Schema:     ResourceListSchema(),
	}
}

func HybridMix(profile domain.LearnerProfile, tech domain.TechnologyDescriptor) Prompt {
	return Prompt{
		Name:   PromptHybridMix,
		System: "You choose how to splice differently-sized curriculum segments for a learner.",
		User: profileLine(profile) + "\n" + techLine(tech) +
			"\nChoose an ordered mix of 1-3 segment tags from quick/standard/detailed that best fits this learner. The order is the teaching order.",
		SchemaName: string(PromptHybridMix),
		Schema:     HybridMixSchema(),
	}
}
