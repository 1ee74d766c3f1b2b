package pipeline

import (
	"sheetnorm/internal"
	"sheetnorm/internal/schema"
	"sheetnorm/internal/util"
)

// MapResult is the per-table outcome of column mapping: one entry per
// original column, plus the unmapped list and any score ties.
type MapResult struct {
	Entries     []internal.MappingEntry
	Unmapped    []string
	Ambiguities []internal.AmbiguityWarning
}

// MapColumns maps every header to a canonical name or marks it unmapped.
// Candidates are scored against every schema entry; the maximum wins when it
// reaches the threshold. Equal maxima are resolved by match tier, then by
// schema order, and recorded as an ambiguity.
func MapColumns(headers []string, s *schema.Schema, threshold int) (MapResult, error) {
	if threshold < 0 || threshold > 100 {
		return MapResult{}, internal.Configf("threshold must be in 0-100, got %d", threshold)
	}
	if s == nil || s.Len() == 0 {
		return MapResult{}, internal.Configf("mapping needs a non-empty schema")
	}

	matcher := NewMatcher(threshold)
	res := MapResult{Entries: make([]internal.MappingEntry, 0, len(headers))}

	for pos, header := range headers {
		entry := internal.MappingEntry{Original: header, Position: pos}

		if util.CleanHeader(header) == "" {
			res.Entries = append(res.Entries, entry)
			res.Unmapped = append(res.Unmapped, header)
			continue
		}

		scores := make([]entryScore, s.Len())
		bestIdx := -1
		for i, candidate := range s.Entries() {
			scores[i] = matcher.score(header, candidate)
			if bestIdx < 0 || scores[i].beats(scores[bestIdx]) {
				bestIdx = i
			}
		}

		best := scores[bestIdx]
		if best.Score < threshold {
			res.Entries = append(res.Entries, entry)
			res.Unmapped = append(res.Unmapped, header)
			continue
		}

		chosen := s.Entries()[bestIdx].Name
		entry.Canonical = &chosen
		entry.Score = best.Score
		entry.Method = internal.MethodFuzzy
		if best.Tier == tierExactName || best.Tier == tierExactSynonym {
			entry.Method = internal.MethodExact
		}
		res.Entries = append(res.Entries, entry)

		var contenders []string
		for i, sc := range scores {
			if i != bestIdx && sc.Score == best.Score {
				contenders = append(contenders, s.Entries()[i].Name)
			}
		}
		if len(contenders) > 0 {
			res.Ambiguities = append(res.Ambiguities, internal.AmbiguityWarning{
				Original:   header,
				Chosen:     chosen,
				Contenders: contenders,
				Score:      best.Score,
			})
		}
	}

	return res, nil
}

// RenameHeaders applies a mapping to a header list: mapped columns take their
// canonical name, unmapped ones pass through unchanged.
func RenameHeaders(headers []string, entries []internal.MappingEntry) []string {
	out := make([]string, len(headers))
	copy(out, headers)
	for _, e := range entries {
		if e.Mapped() && e.Position < len(out) {
			out[e.Position] = *e.Canonical
		}
	}
	return out
}
