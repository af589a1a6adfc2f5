package steps

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/planweave/planweave-backend/internal/domain"
	"github.com/planweave/planweave-backend/internal/modules/planning"
	"github.com/planweave/planweave-backend/internal/pkg/parallel"
)

// fakeOracle records every call so the tests can assert which artifacts
// a stage materialized and with what inputs.
type fakeOracle struct {
	mu sync.Mutex

	simpleCalls int
	deepCalls   int
	deepErr     error

	gapDetailedFlags []bool
	gapErr           error

	curriculumCtxDepths []domain.ContextDepth
	curriculumGapKinds  []domain.GapKind
	curriculumDepths    []domain.CurriculumDepth

	resourceOrders  []int
	failResourceFor int
}

func (f *fakeOracle) TechContext(ctx context.Context, tech domain.TechnologyDescriptor, depth domain.ContextDepth) (*domain.TechContext, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if depth == domain.ContextSimple {
		f.simpleCalls++
	} else {
		f.deepCalls++
		if f.deepErr != nil {
			return nil, f.deepErr
		}
	}
	return &domain.TechContext{Depth: depth, Summary: tech.DisplayName + " summary"}, nil
}

func (f *fakeOracle) GapAnalysis(ctx context.Context, profile domain.LearnerProfile, tech domain.TechnologyDescriptor, deepCtx *domain.TechContext, detailed bool) (domain.GapAnalysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gapDetailedFlags = append(f.gapDetailedFlags, detailed)
	if f.gapErr != nil {
		return domain.GapAnalysis{}, f.gapErr
	}
	if detailed {
		return domain.GapAnalysis{
			Kind:             domain.GapDetailed,
			ReadinessTier:    "ready_with_prep",
			CriticalGaps:     []domain.CriticalGap{{Area: "concurrency", Severity: "high"}},
			PreparationSteps: []string{"review goroutines"},
		}, nil
	}
	return domain.GapAnalysis{
		Kind:    domain.GapQuick,
		HasGaps: true,
		Gaps:    []string{"concurrency"},
	}, nil
}

func (f *fakeOracle) Curriculum(ctx context.Context, profile domain.LearnerProfile, tech domain.TechnologyDescriptor, techCtx *domain.TechContext, gap domain.GapAnalysis, depth domain.CurriculumDepth) (*domain.Curriculum, error) {
	f.mu.Lock()
	f.curriculumCtxDepths = append(f.curriculumCtxDepths, techCtx.Depth)
	f.curriculumGapKinds = append(f.curriculumGapKinds, gap.Kind)
	f.curriculumDepths = append(f.curriculumDepths, depth)
	f.mu.Unlock()

	min, _ := depth.StepRange()
	steps := make([]domain.StepBlueprint, min)
	for i := range steps {
		steps[i] = domain.StepBlueprint{Order: i + 1, Title: "step", EstimatedHours: 2, KeyTopics: []string{"topic"}}
	}
	return domain.NewCurriculum(depth, steps)
}

func (f *fakeOracle) StepResources(ctx context.Context, tech domain.TechnologyDescriptor, step domain.StepBlueprint, prefersKorean bool) ([]domain.LearningResource, error) {
	f.mu.Lock()
	f.resourceOrders = append(f.resourceOrders, step.Order)
	fail := f.failResourceFor == step.Order
	f.mu.Unlock()
	if fail {
		return nil, errors.New("resource lookup failed")
	}
	return []domain.LearningResource{{Type: "documentation", Title: "docs", URL: "https://example.com"}}, nil
}

func testRun(oracle *fakeOracle, depth planning.DepthPlan, profile domain.LearnerProfile) *Run {
	tech := domain.TechnologyDescriptor{Key: "go", DisplayName: "Go"}
	return NewRun(RunDeps{Oracle: oracle}, profile, tech, depth)
}

func TestRunAnalysisQuickUsesSimpleContext(t *testing.T) {
	oracle := &fakeOracle{}
	run := testRun(oracle, planning.DepthPlan{Analysis: planning.AnalysisQuick}, domain.LearnerProfile{})
	tc, err := run.RunAnalysis(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tc.Depth != domain.ContextSimple {
		t.Fatalf("expected simple context, got %s", tc.Depth)
	}
	if oracle.simpleCalls != 1 || oracle.deepCalls != 0 {
		t.Fatalf("expected 1 simple / 0 deep calls, got %d/%d", oracle.simpleCalls, oracle.deepCalls)
	}
}

func TestRunAnalysisSkipStillFetchesDeepContext(t *testing.T) {
	oracle := &fakeOracle{}
	run := testRun(oracle, planning.DepthPlan{Analysis: planning.AnalysisSkip}, domain.LearnerProfile{})
	tc, err := run.RunAnalysis(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tc.Depth != domain.ContextDeep {
		t.Fatalf("skip mode must still produce the deep context, got %s", tc.Depth)
	}
	if oracle.deepCalls != 1 {
		t.Fatalf("expected 1 deep call, got %d", oracle.deepCalls)
	}
}

func TestRunMemoizesDeepContext(t *testing.T) {
	oracle := &fakeOracle{}
	depth := planning.DepthPlan{
		Analysis:   planning.AnalysisDetailed,
		Gap:        planning.GapModeDetailed,
		Curriculum: planning.CurriculumDetailed,
	}
	run := testRun(oracle, depth, domain.LearnerProfile{KnownSkillCount: 3})
	ctx := context.Background()
	if _, err := run.RunAnalysis(ctx); err != nil {
		t.Fatalf("analysis: %v", err)
	}
	if _, err := run.RunGap(ctx); err != nil {
		t.Fatalf("gap: %v", err)
	}
	if _, err := run.RunCurriculum(ctx); err != nil {
		t.Fatalf("curriculum: %v", err)
	}
	if oracle.deepCalls != 1 {
		t.Fatalf("deep context must be computed once, got %d calls", oracle.deepCalls)
	}
}

func TestRunGapOnDemandDeepContext(t *testing.T) {
	oracle := &fakeOracle{}
	depth := planning.DepthPlan{Analysis: planning.AnalysisQuick, Gap: planning.GapModeQuick}
	run := testRun(oracle, depth, domain.LearnerProfile{KnownSkillCount: 2})
	// Gap stage materializes the deep context without the analysis
	// stage having run at all.
	gap, err := run.RunGap(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gap.Kind != domain.GapQuick {
		t.Fatalf("expected quick gap, got %s", gap.Kind)
	}
	if oracle.deepCalls != 1 {
		t.Fatalf("expected on-demand deep materialization, got %d calls", oracle.deepCalls)
	}
	if !run.GapRan() {
		t.Fatalf("gap stage should mark execution")
	}
	if len(oracle.gapDetailedFlags) != 1 || oracle.gapDetailedFlags[0] {
		t.Fatalf("expected one non-detailed gap call, got %v", oracle.gapDetailedFlags)
	}
}

func TestRunGapSkippedWithReason(t *testing.T) {
	oracle := &fakeOracle{}
	run := testRun(oracle, planning.DepthPlan{Gap: planning.GapModeNone}, domain.LearnerProfile{KnownSkillCount: 0})
	gap, err := run.RunGap(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gap.Kind != domain.GapNone {
		t.Fatalf("expected no-gap result, got %s", gap.Kind)
	}
	if !strings.Contains(gap.SkipReason, "no known skills") {
		t.Fatalf("expected the no-skills reason, got %q", gap.SkipReason)
	}
	if run.GapRan() {
		t.Fatalf("a skipped gap stage must not count as ran")
	}
	if oracle.simpleCalls != 1 {
		t.Fatalf("skipped gap still needs the simple context, got %d calls", oracle.simpleCalls)
	}
}

func TestRunCurriculumStandardNarrowsDetailedGap(t *testing.T) {
	oracle := &fakeOracle{}
	depth := planning.DepthPlan{Gap: planning.GapModeDetailed, Curriculum: planning.CurriculumStandard}
	run := testRun(oracle, depth, domain.LearnerProfile{KnownSkillCount: 3})
	ctx := context.Background()
	if _, err := run.RunGap(ctx); err != nil {
		t.Fatalf("gap: %v", err)
	}
	if _, err := run.RunCurriculum(ctx); err != nil {
		t.Fatalf("curriculum: %v", err)
	}
	// The detailed result is narrowed in place, never recomputed.
	if len(oracle.gapDetailedFlags) != 1 {
		t.Fatalf("expected no gap recompute, got %d calls", len(oracle.gapDetailedFlags))
	}
	if oracle.curriculumGapKinds[0] != domain.GapQuick {
		t.Fatalf("standard curriculum must see the narrowed gap, got %s", oracle.curriculumGapKinds[0])
	}
	if oracle.curriculumCtxDepths[0] != domain.ContextDeep {
		t.Fatalf("standard curriculum must work from the deep context")
	}
}

func TestRunCurriculumDetailedUpgradesGap(t *testing.T) {
	oracle := &fakeOracle{}
	depth := planning.DepthPlan{Gap: planning.GapModeQuick, Curriculum: planning.CurriculumDetailed}
	run := testRun(oracle, depth, domain.LearnerProfile{KnownSkillCount: 3})
	ctx := context.Background()
	if _, err := run.RunGap(ctx); err != nil {
		t.Fatalf("gap: %v", err)
	}
	if _, err := run.RunCurriculum(ctx); err != nil {
		t.Fatalf("curriculum: %v", err)
	}
	// Widening is a real re-generation, unlike narrowing.
	if len(oracle.gapDetailedFlags) != 2 || !oracle.gapDetailedFlags[1] {
		t.Fatalf("expected a detailed recompute, got %v", oracle.gapDetailedFlags)
	}
	if oracle.curriculumGapKinds[0] != domain.GapDetailed {
		t.Fatalf("detailed curriculum must see the upgraded gap, got %s", oracle.curriculumGapKinds[0])
	}
	if !run.GapRan() {
		t.Fatalf("the upgrade counts as a real gap analysis")
	}
}

func TestRunCurriculumQuickDropsGap(t *testing.T) {
	oracle := &fakeOracle{}
	depth := planning.DepthPlan{Gap: planning.GapModeQuick, Curriculum: planning.CurriculumQuick}
	run := testRun(oracle, depth, domain.LearnerProfile{KnownSkillCount: 3})
	ctx := context.Background()
	if _, err := run.RunGap(ctx); err != nil {
		t.Fatalf("gap: %v", err)
	}
	cur, err := run.RunCurriculum(ctx)
	if err != nil {
		t.Fatalf("curriculum: %v", err)
	}
	if oracle.curriculumGapKinds[0] != domain.GapNone {
		t.Fatalf("quick curriculum must ignore the gap result, got %s", oracle.curriculumGapKinds[0])
	}
	if oracle.curriculumCtxDepths[0] != domain.ContextSimple {
		t.Fatalf("quick curriculum must work from the simple context")
	}
	if cur.Depth != domain.CurriculumBasic {
		t.Fatalf("expected basic curriculum, got %s", cur.Depth)
	}
}

func TestRunAnalysisMaterializationFailure(t *testing.T) {
	oracle := &fakeOracle{deepErr: errors.New("upstream timeout")}
	run := testRun(oracle, planning.DepthPlan{Analysis: planning.AnalysisStandard}, domain.LearnerProfile{})
	_, err := run.RunAnalysis(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "materialize deep tech context") {
		t.Fatalf("error must name the failed prerequisite, got %v", err)
	}
}

func TestRunResourcesSkipPassthrough(t *testing.T) {
	oracle := &fakeOracle{}
	run := testRun(oracle, planning.DepthPlan{Resource: planning.ResourceSkip}, domain.LearnerProfile{})
	cur, err := domain.NewCurriculum(domain.CurriculumBasic, []domain.StepBlueprint{
		{Order: 1, Title: "a", EstimatedHours: 2},
		{Order: 2, Title: "b", EstimatedHours: 2},
		{Order: 3, Title: "c", EstimatedHours: 2},
	})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	enrichedCur, err := run.RunResources(context.Background(), cur)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enrichedCur.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(enrichedCur.Steps))
	}
	for _, s := range enrichedCur.Steps {
		if s.LearningResources == nil || len(s.LearningResources) != 0 {
			t.Fatalf("skip mode must produce empty resource lists, got %+v", s)
		}
	}
	if run.ResourcesEnriched() {
		t.Fatalf("skip mode must not count as enrichment")
	}
	if len(oracle.resourceOrders) != 0 {
		t.Fatalf("skip mode must not call the oracle, got %v", oracle.resourceOrders)
	}
}

func TestRunResourcesDetailedEnrichment(t *testing.T) {
	pool := parallel.NewPool(4)
	defer pool.Shutdown()

	oracle := &fakeOracle{failResourceFor: 2}
	depth := planning.DepthPlan{Resource: planning.ResourceDetailed}
	tech := domain.TechnologyDescriptor{Key: "go", DisplayName: "Go"}
	run := NewRun(RunDeps{Oracle: oracle, Pool: pool}, domain.LearnerProfile{}, tech, depth)

	cur, err := domain.NewCurriculum(domain.CurriculumBasic, []domain.StepBlueprint{
		{Order: 1, Title: "a", EstimatedHours: 2},
		{Order: 2, Title: "b", EstimatedHours: 2},
		{Order: 3, Title: "c", EstimatedHours: 2},
	})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	enrichedCur, err := run.RunResources(context.Background(), cur)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enrichedCur.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(enrichedCur.Steps))
	}
	for i, s := range enrichedCur.Steps {
		if s.Order != i+1 {
			t.Fatalf("enrichment must preserve step order, got %+v", s)
		}
	}
	if len(enrichedCur.Steps[1].LearningResources) != 0 {
		t.Fatalf("failed step must degrade to empty resources, got %+v", enrichedCur.Steps[1].LearningResources)
	}
	if len(enrichedCur.Steps[0].LearningResources) == 0 || len(enrichedCur.Steps[2].LearningResources) == 0 {
		t.Fatalf("successful steps must keep their resources")
	}
	if !run.ResourcesEnriched() {
		t.Fatalf("detailed mode must count as enrichment")
	}
}
