package prompts

type PromptName string

const (
	PromptTechContextSimple PromptName = "tech_context_simple"
	PromptTechContextDeep   PromptName = "tech_context_deep"
	PromptGapQuick          PromptName = "gap_quick"
	PromptGapDetailed       PromptName = "gap_detailed"
	PromptCurriculum        PromptName = "curriculum"
	PromptStepResources     PromptName = "step_resources"
	PromptHybridMix         PromptName = "hybrid_mix"
)
