package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/planweave/planweave-backend/internal/domain"
	"github.com/planweave/planweave-backend/internal/platform/logger"
)

// CatalogLookup is the piece of the technology catalog this stage
// needs. A nil row with a nil error means no match.
type CatalogLookup interface {
	FindByKey(ctx context.Context, key string) (*domain.Technology, error)
}

type TechResolveDeps struct {
	Log     *logger.Logger
	Catalog CatalogLookup
}

// TechResolve normalizes a free-text technology reference into a
// canonical descriptor. Candidate keys are tried against the catalog in
// order (raw trimmed, lowercase, slug); on a total miss a fallback
// descriptor is synthesized from the raw input. No oracle calls happen
// here.
func TechResolve(ctx context.Context, deps TechResolveDeps, rawInput string) (domain.TechnologyDescriptor, error) {
	trimmed := strings.TrimSpace(rawInput)
	if trimmed == "" {
		return domain.TechnologyDescriptor{}, fmt.Errorf("technology reference must not be blank")
	}

	for _, key := range candidateKeys(trimmed) {
		row, err := deps.Catalog.FindByKey(ctx, key)
		if err != nil {
			return domain.TechnologyDescriptor{}, fmt.Errorf("catalog lookup %q: %w", key, err)
		}
		if row != nil {
			return row.Descriptor(), nil
		}
	}

	if deps.Log != nil {
		deps.Log.Debug("no catalog match, synthesizing descriptor", "raw_input", trimmed)
	}
	return domain.TechnologyDescriptor{
		Key:         Slugify(trimmed),
		DisplayName: titleizeReference(trimmed),
		Category:    "Framework",
		Ecosystem:   "General",
		IsFallback:  true,
	}, nil
}

// candidateKeys builds the deduplicated lookup key sequence: the
// trimmed input, its lowercase form, and its slug form, in that order.
func candidateKeys(trimmed string) []string {
	keys := make([]string, 0, 3)
	seen := map[string]bool{}
	for _, k := range []string{trimmed, strings.ToLower(trimmed), Slugify(trimmed)} {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}

// Slugify lowercases the input, collapses non-alphanumeric runs into
// single hyphens and strips leading/trailing hyphens.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// titleizeReference turns a raw reference like "kotlin-coroutines" into
// a display name like "Kotlin Coroutines". Falls back to the trimmed
// input when splitting leaves nothing.
func titleizeReference(trimmed string) string {
	parts := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		runes := []rune(strings.ToLower(p))
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		words = append(words, string(runes))
	}
	if len(words) == 0 {
		return trimmed
	}
	return strings.Join(words, " ")
}
