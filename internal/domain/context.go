package domain

// ContextDepth distinguishes the brief tech context from the
// comprehensive one. A stage that needs the deep variant must not
// accept the simple one in its place (the reverse substitution is
// equally disallowed).
type ContextDepth string

const (
	ContextSimple ContextDepth = "simple"
	ContextDeep   ContextDepth = "deep"
)

// TechContext is the oracle-produced background on a technology.
type TechContext struct {
	Depth         ContextDepth `json:"depth"`
	Summary       string       `json:"summary"`
	Prerequisites []string     `json:"prerequisites"`
	RelatedTech   []string     `json:"related_tech"`
	Difficulty    string       `json:"difficulty"`
	UseCases      []string     `json:"use_cases"`
}

func (c *TechContext) IsDeep() bool {
	return c != nil && c.Depth == ContextDeep
}
