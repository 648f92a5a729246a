// Package catalog maintains the persistent, deduplicated-by-URL collection
// of harvested RFP metadata.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Record is one catalog entry describing a single harvested document. Dates
// are freeform text or "n/a"; Source is the primary key within the catalog.
type Record struct {
	Posted   string `json:"posted"`
	Deadline string `json:"deadline"`
	Snippet  string `json:"snippet"`
	Portal   string `json:"portal"`
	Source   string `json:"source"`
}

// CorruptError marks a catalog file that exists but is not valid JSON. The
// harvester treats it as an empty catalog; the file is left untouched until
// the next successful write.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("catalog %s is not valid JSON: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// Load reads the catalog at path. A missing or empty file is an empty
// catalog with no error. A malformed file is an empty catalog with a
// *CorruptError, so callers can warn without aborting.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from config
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}
	return records, nil
}

// Merge overlays fresh records on top of existing ones, keyed by Source.
// Later fresh entries win, so a re-harvested URL refreshes its metadata
// without duplicating the entry. Output is sorted by Source for stable
// files; ordering is not part of the contract.
func Merge(existing, fresh []Record) []Record {
	merged := make(map[string]Record, len(existing)+len(fresh))
	for _, r := range existing {
		merged[r.Source] = r
	}
	for _, r := range fresh {
		merged[r.Source] = r
	}

	out := make([]Record, 0, len(merged))
	for _, r := range merged {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}

// Save writes the records as an indented JSON array. An empty catalog still
// writes "[]" so every run ends with a well-formed file.
func Save(path string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write catalog %s: %w", path, err)
	}
	return nil
}
