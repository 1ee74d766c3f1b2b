package pipeline

import (
	"fmt"

	"sheetnorm/internal"
	"sheetnorm/internal/config"
	"sheetnorm/internal/schema"
)

// ReviewFunc lets a host inspect the mapping between the mapped and merged
// stages and hand back overrides keyed by original header. An override to a
// canonical name remaps the column as a manual decision; an override to the
// empty string drops the mapping. A nil ReviewFunc accepts everything as-is.
type ReviewFunc func(entries []internal.MappingEntry) (map[string]string, error)

// Engine runs one table through map → merge → annotate. The schema is
// read-only shared state, so a single Engine is safe to use for concurrent
// runs on different tables.
type Engine struct {
	cfg    config.Config
	schema *schema.Schema
}

func NewEngine(cfg config.Config, s *schema.Schema) (*Engine, error) {
	if s == nil || s.Len() == 0 {
		return nil, internal.Configf("engine needs a non-empty schema")
	}
	if cfg.MatchThreshold < 0 || cfg.MatchThreshold > 100 {
		return nil, internal.Configf("threshold must be in 0-100, got %d", cfg.MatchThreshold)
	}
	return &Engine{cfg: cfg, schema: s}, nil
}

// RunResult carries the finalized table and the report for one input. The
// stage is StageFinalized on success; failures surface as errors instead of
// partially transformed tables.
type RunResult struct {
	Table  *internal.Table
	Report internal.Report
	Stage  internal.Stage
}

// Run executes the full pipeline on one table. Row count and row order are
// preserved through every stage; only column identity and count change.
func (e *Engine) Run(t *internal.Table, review ReviewFunc) (*RunResult, error) {
	if t == nil {
		return nil, fmt.Errorf("load: no table")
	}
	inputRows := t.RowCount()

	mapped, err := MapColumns(t.Headers, e.schema, e.cfg.MatchThreshold)
	if err != nil {
		return nil, fmt.Errorf("map: %w", err)
	}

	if review != nil {
		overrides, err := review(mapped.Entries)
		if err != nil {
			return nil, fmt.Errorf("review: %w", err)
		}
		applyOverrides(&mapped, e.schema, overrides)
	}

	renamed := &internal.Table{
		Headers: RenameHeaders(t.Headers, mapped.Entries),
		Rows:    t.Rows,
	}

	merged, conflicts := MergeDuplicates(renamed, e.cfg.MergeSeparator)

	annotated := merged
	if e.cfg.ManufacturerValue != "" {
		annotated = AnnotateManufacturer(annotated, e.cfg.ManufacturerValue)
		if e.cfg.AddManufacturerReal {
			annotated = AddManufacturerReal(annotated, e.cfg.ManufacturerValue)
		}
	}

	if annotated.RowCount() != inputRows {
		return nil, fmt.Errorf("finalize: row count changed from %d to %d", inputRows, annotated.RowCount())
	}
	seen := map[string]bool{}
	for _, h := range annotated.Headers {
		if seen[h] {
			return nil, fmt.Errorf("finalize: duplicate header %q after merge", h)
		}
		seen[h] = true
	}

	report := internal.Report{
		Entries:     mapped.Entries,
		Unmapped:    mapped.Unmapped,
		Ambiguities: mapped.Ambiguities,
		Conflicts:   conflicts,
	}
	for _, entry := range mapped.Entries {
		if entry.Mapped() {
			report.MappedCount++
		}
	}

	return &RunResult{Table: annotated, Report: report, Stage: internal.StageFinalized}, nil
}

func applyOverrides(res *MapResult, s *schema.Schema, overrides map[string]string) {
	if len(overrides) == 0 {
		return
	}

	for i, entry := range res.Entries {
		canonical, ok := overrides[entry.Original]
		if !ok {
			continue
		}
		if canonical == "" {
			res.Entries[i].Canonical = nil
			res.Entries[i].Score = 0
			res.Entries[i].Method = ""
			continue
		}
		if _, known := s.Lookup(canonical); !known {
			continue
		}
		name := canonical
		res.Entries[i].Canonical = &name
		res.Entries[i].Score = 100
		res.Entries[i].Method = internal.MethodManual
	}

	res.Unmapped = res.Unmapped[:0]
	for _, entry := range res.Entries {
		if !entry.Mapped() {
			res.Unmapped = append(res.Unmapped, entry.Original)
		}
	}
}
