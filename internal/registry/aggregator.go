package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrNoRecords is returned when the record directory holds no staged
// files. Callers treat it as "nothing to do", distinct from a missing
// directory or a parse failure.
var ErrNoRecords = errors.New("no staged record files")

// Aggregator composes staged records into one registry document.
// The registry is recomputed wholesale on every run, never patched.
type Aggregator struct {
	meta ListMeta
	now  func() time.Time // injectable clock for deterministic output
}

// NewAggregator creates an aggregator stamping meta onto its output.
func NewAggregator(meta ListMeta) *Aggregator {
	return &Aggregator{
		meta: meta,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// Build reads every staged record in dir, in filename order, and
// assembles the registry document. A single unparsable file aborts the
// whole build: a partial registry is worse than none.
func (a *Aggregator) Build(dir string) (*Registry, error) {
	files, err := ListRecordFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoRecords, dir)
	}

	tokens := make([]TokenRecord, 0, len(files))
	for _, f := range files {
		rec, err := DecodeRecordFile(f)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, *rec)
	}

	return &Registry{
		Name:      a.meta.Name,
		LogoURI:   a.meta.LogoURI,
		Keywords:  a.meta.Keywords,
		Timestamp: a.now().UTC().Format(time.RFC3339),
		Tokens:    tokens,
		Version:   a.meta.Version,
	}, nil
}

// WriteFile serializes the registry with 4-space indentation and a
// trailing newline.
func (r *Registry) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}
