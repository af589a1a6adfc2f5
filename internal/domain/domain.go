// Package domain holds the persisted rows and the core value types that
// flow through the plan generation pipeline. Persisted rows carry gorm
// tags; value types are plain structs and are never mutated after the
// stage that produced them returns.
package domain
