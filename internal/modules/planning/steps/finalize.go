package steps

import (
	"fmt"
	"time"

	"github.com/planweave/planweave-backend/internal/domain"
)

type FinalizeInput struct {
	Profile    domain.LearnerProfile
	Tech       domain.TechnologyDescriptor
	Curriculum *domain.EnrichedCurriculum
	Schedule   []domain.DailyScheduleItem
	TechCtx    *domain.TechContext
	StartDate  time.Time

	PathTaken         string
	DepthLabel        string
	GapAnalysisRan    bool
	ResourcesEnriched bool
}

// FinalizePlan computes the aggregate totals and assembles the
// immutable plan artifact. Metadata reflects what actually executed,
// not what the depth plan originally requested.
func FinalizePlan(in FinalizeInput) domain.GeneratedLearningPlan {
	totalHours := in.Curriculum.TotalHours()

	weeklyHours := in.Profile.WeeklyHours()
	if weeklyHours < 1 {
		weeklyHours = 1
	}
	estimatedWeeks := (totalHours + weeklyHours - 1) / weeklyHours
	if estimatedWeeks < 1 {
		estimatedWeeks = 1
	}

	return domain.GeneratedLearningPlan{
		MemberID:       in.Profile.MemberID,
		TechnologyKey:  in.Tech.Key,
		TechnologyName: in.Tech.DisplayName,
		Title:          fmt.Sprintf("%s learning plan", in.Tech.DisplayName),
		Description: fmt.Sprintf("A %d-step plan for learning %s over roughly %d week(s), sized to about %d hour(s) per week.",
			len(in.Curriculum.Steps), in.Tech.DisplayName, estimatedWeeks, weeklyHours),
		BackgroundAnalysis: backgroundNarrative(in),
		TotalHours:         totalHours,
		EstimatedWeeks:     estimatedWeeks,
		StartDate:          in.StartDate,
		TargetEndDate:      in.StartDate.AddDate(0, 0, estimatedWeeks*7),
		Steps:              in.Curriculum.Steps,
		Schedule:           in.Schedule,
		Metadata: domain.PlanMetadata{
			PathTaken:          in.PathTaken,
			DepthLabel:         in.DepthLabel,
			GapAnalysisRan:     in.GapAnalysisRan,
			ResourcesEnriched:  in.ResourcesEnriched,
			TechnologyFellBack: in.Tech.IsFallback,
		},
	}
}

func backgroundNarrative(in FinalizeInput) string {
	if in.TechCtx == nil {
		return fmt.Sprintf("%s plan generated without background analysis.", in.Tech.DisplayName)
	}
	narrative := in.TechCtx.Summary
	if in.GapAnalysisRan {
		narrative += " The curriculum accounts for the learner's identified skill gaps."
	}
	if in.ResourcesEnriched {
		narrative += " Each step carries curated learning resources."
	}
	return narrative
}
