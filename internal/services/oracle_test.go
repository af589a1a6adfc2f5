package services

import (
	"context"
	"errors"
	"testing"

	"github.com/planweave/planweave-backend/internal/domain"
	"github.com/planweave/planweave-backend/internal/modules/planning"
	"github.com/planweave/planweave-backend/internal/platform/logger"
)

// fakeAI returns a canned structured output keyed by schema name.
type fakeAI struct {
	responses map[string]map[string]any
	err       error
}

func (f *fakeAI) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	resp, ok := f.responses[schemaName]
	if !ok {
		return nil, errors.New("no canned response for " + schemaName)
	}
	return resp, nil
}

func (f *fakeAI) GenerateText(ctx context.Context, system, user string) (string, error) {
	return "", errors.New("not used")
}

func testOracle(t *testing.T, ai *fakeAI) ContentOracle {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewContentOracle(log, ai)
}

func TestOracleTechContextSetsDepth(t *testing.T) {
	ai := &fakeAI{responses: map[string]map[string]any{
		"tech_context_deep": {
			"summary":       "Go is a compiled language.",
			"prerequisites": []any{"programming basics"},
			"related_tech":  []any{},
			"difficulty":    "moderate",
			"use_cases":     []any{"services"},
		},
	}}
	o := testOracle(t, ai)
	tc, err := o.TechContext(context.Background(), domain.TechnologyDescriptor{Key: "go"}, domain.ContextDeep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tc.Depth != domain.ContextDeep {
		t.Fatalf("depth must be stamped by the oracle, got %s", tc.Depth)
	}
	if tc.Summary != "Go is a compiled language." {
		t.Fatalf("unexpected summary %q", tc.Summary)
	}
}

func TestOracleQuickGapBounds(t *testing.T) {
	ai := &fakeAI{responses: map[string]map[string]any{
		"gap_quick": {
			"has_gaps":    false, // recomputed from the gap list
			"gaps":        []any{"g1", "g2", "g3", "g4", "g5", "g6", "g7"},
			"strengths":   []any{"s1", "s2", "s3", "s4"},
			"prep_advice": "review basics",
		},
	}}
	o := testOracle(t, ai)
	gap, err := o.GapAnalysis(context.Background(), domain.LearnerProfile{}, domain.TechnologyDescriptor{Key: "go"}, &domain.TechContext{Depth: domain.ContextDeep}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gap.Kind != domain.GapQuick {
		t.Fatalf("expected quick kind, got %s", gap.Kind)
	}
	if len(gap.Gaps) != 5 || len(gap.Strengths) != 3 {
		t.Fatalf("quick bounds not enforced: %d gaps, %d strengths", len(gap.Gaps), len(gap.Strengths))
	}
	if !gap.HasGaps {
		t.Fatalf("HasGaps must be recomputed from the gap list")
	}
}

func TestOracleCurriculumRenumbersSteps(t *testing.T) {
	ai := &fakeAI{responses: map[string]map[string]any{
		"curriculum": {
			"steps": []any{
				map[string]any{"order": 10, "title": "c", "description": "", "estimated_hours": 2},
				map[string]any{"order": 1, "title": "a", "description": "", "estimated_hours": 3},
				map[string]any{"order": 4, "title": "b", "description": "", "estimated_hours": 2},
			},
		},
	}}
	o := testOracle(t, ai)
	cur, err := o.Curriculum(context.Background(), domain.LearnerProfile{}, domain.TechnologyDescriptor{Key: "go"}, &domain.TechContext{}, domain.NoGapAnalysis("test"), domain.CurriculumBasic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	titles := []string{cur.Steps[0].Title, cur.Steps[1].Title, cur.Steps[2].Title}
	if titles[0] != "a" || titles[1] != "b" || titles[2] != "c" {
		t.Fatalf("steps must keep model ordering intent: %v", titles)
	}
	for i, s := range cur.Steps {
		if s.Order != i+1 {
			t.Fatalf("steps must be renumbered contiguously: %+v", s)
		}
		if s.Prerequisites == nil || s.KeyTopics == nil {
			t.Fatalf("nil slices must be normalized: %+v", s)
		}
	}
}

func TestOracleCurriculumRejectsOutOfRange(t *testing.T) {
	ai := &fakeAI{responses: map[string]map[string]any{
		"curriculum": {
			"steps": []any{
				map[string]any{"order": 1, "title": "only", "description": "", "estimated_hours": 2},
			},
		},
	}}
	o := testOracle(t, ai)
	_, err := o.Curriculum(context.Background(), domain.LearnerProfile{}, domain.TechnologyDescriptor{Key: "go"}, &domain.TechContext{}, domain.NoGapAnalysis("test"), domain.CurriculumBasic)
	if err == nil {
		t.Fatalf("a one-step basic curriculum must be rejected")
	}
}

func TestOracleHybridMix(t *testing.T) {
	ai := &fakeAI{responses: map[string]map[string]any{
		"hybrid_mix": {"mix": []any{"quick", "bogus", "detailed"}},
	}}
	o := testOracle(t, ai)
	mix, err := o.HybridMix(context.Background(), domain.LearnerProfile{}, domain.TechnologyDescriptor{Key: "go"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []planning.CurriculumMode{planning.CurriculumQuick, planning.CurriculumDetailed}
	if len(mix) != 2 || mix[0] != want[0] || mix[1] != want[1] {
		t.Fatalf("mix = %v, want %v", mix, want)
	}
}

func TestOracleHybridMixEmpty(t *testing.T) {
	ai := &fakeAI{responses: map[string]map[string]any{
		"hybrid_mix": {"mix": []any{"bogus"}},
	}}
	o := testOracle(t, ai)
	if _, err := o.HybridMix(context.Background(), domain.LearnerProfile{}, domain.TechnologyDescriptor{Key: "go"}); err == nil {
		t.Fatalf("an unusable mix must be an error")
	}
}
