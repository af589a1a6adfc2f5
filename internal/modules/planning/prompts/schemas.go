package prompts

// ---------- shared fragments ----------

func StringArraySchema() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
}

func EnumSchema(values ...string) map[string]any {
	return map[string]any{"type": "string", "enum": values}
}

// ---------- artifact schemas ----------
//
// Strict structured outputs: every object requires all listed keys and
// forbids additional properties; optionality is expressed as empty
// strings/arrays and enforced in the parser.

func TechContextSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary":       map[string]any{"type": "string"},
			"prerequisites": StringArraySchema(),
			"related_tech":  StringArraySchema(),
			"difficulty":    EnumSchema("beginner", "intermediate", "advanced"),
			"use_cases":     StringArraySchema(),
		},
		"required":             []string{"summary", "prerequisites", "related_tech", "difficulty", "use_cases"},
		"additionalProperties": false,
	}
}

func GapQuickSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"has_gaps":    map[string]any{"type": "boolean"},
			"gaps":        StringArraySchema(),
			"strengths":   StringArraySchema(),
			"prep_advice": map[string]any{"type": "string"},
		},
		"required":             []string{"has_gaps", "gaps", "strengths", "prep_advice"},
		"additionalProperties": false,
	}
}

func CriticalGapSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"area":        map[string]any{"type": "string"},
			"severity":    EnumSchema("low", "medium", "high"),
			"description": map[string]any{"type": "string"},
			"action":      map[string]any{"type": "string"},
		},
		"required":             []string{"area", "severity", "description", "action"},
		"additionalProperties": false,
	}
}

func GapDetailedSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"readiness_tier":    EnumSchema("ready", "nearly_ready", "needs_preparation"),
			"critical_gaps":     map[string]any{"type": "array", "items": CriticalGapSchema()},
			"minor_gaps":        StringArraySchema(),
			"strengths":         StringArraySchema(),
			"preparation_steps": StringArraySchema(),
			"prep_weeks":        map[string]any{"type": "integer"},
		},
		"required":             []string{"readiness_tier", "critical_gaps", "minor_gaps", "strengths", "preparation_steps", "prep_weeks"},
		"additionalProperties": false,
	}
}

func CurriculumStepSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"order":           map[string]any{"type": "integer"},
			"title":           map[string]any{"type": "string"},
			"description":     map[string]any{"type": "string"},
			"estimated_hours": map[string]any{"type": "integer"},
			"prerequisites":   StringArraySchema(),
			"key_topics":      StringArraySchema(),
		},
		"required":             []string{"order", "title", "description", "estimated_hours", "prerequisites", "key_topics"},
		"additionalProperties": false,
	}
}

func CurriculumSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"steps": map[string]any{"type": "array", "items": CurriculumStepSchema()},
		},
		"required":             []string{"steps"},
		"additionalProperties": false,
	}
}

func ResourceSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type":        EnumSchema("video", "article", "documentation", "course", "book"),
			"title":       map[string]any{"type": "string"},
			"url":         map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
		},
		"required":             []string{"type", "title", "url", "description"},
		"additionalProperties": false,
	}
}

func ResourceListSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"resources": map[string]any{"type": "array", "items": ResourceSchema()},
		},
		"required":             []string{"resources"},
		"additionalProperties": false,
	}
}

func HybridMixSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mix": map[string]any{
				"type":  "array",
				"items": EnumSchema("quick", "standard", "detailed"),
			},
		},
		"required":             []string{"mix"},
		"additionalProperties": false,
	}
}
