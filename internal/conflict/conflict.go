// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

// Package conflict defines the core domain types for rrcluster: the
// input record format, the persisted cluster data model, and the rows
// written to the statistics and result logs.
package conflict

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Record is a single input item read from the dataset. Only Conflict and
// Resolution participate in similarity scoring; the remaining fields are
// carried through for reporting and for the worker bridge.
type Record struct {
	ID          int    `json:"id"`
	Conflict    string `json:"conflict"`
	Resolution  string `json:"resolution"`
	V1          string `json:"v1"`
	V2          string `json:"v2"`
	DevDecision string `json:"devdecision"`
}

// MultiLine reports whether either side of the record spans more than one
// line after trimming. Multi-line records are rejected before assignment,
// though they are still reported to the applier.
func (r Record) MultiLine() bool {
	return strings.Contains(strings.TrimSpace(r.Conflict), "\n") ||
		strings.Contains(strings.TrimSpace(r.Resolution), "\n")
}

// Pair is a stored (conflict, resolution) pair: the unit of membership in a
// Cluster. Both sides are single-line strings.
type Pair struct {
	Conflict   string `json:"conflict"`
	Resolution string `json:"resolution"`
}

// Empty reports whether both sides of the pair are empty after trimming.
func (p Pair) Empty() bool {
	return strings.TrimSpace(p.Conflict) == "" && strings.TrimSpace(p.Resolution) == ""
}

// Equal reports whether two pairs hold the same conflict and resolution text.
func (p Pair) Equal(other Pair) bool {
	return p.Conflict == other.Conflict && p.Resolution == other.Resolution
}

// Cluster is an ordered sequence of Pair. Order is insertion order and is
// observable: the Statistics module's distance-to-latest metric depends on
// which element was inserted last.
type Cluster []Pair

// Last returns the most recently inserted pair. It panics if the cluster is
// empty; callers must check length first.
func (c Cluster) Last() Pair {
	return c[len(c)-1]
}

// Dataset is the top-level shape of the input document: a mapping from
// arbitrary group names to arrays of Records. Only the arrays are read; key
// names are ignored. Group order as written in the source document is
// preserved so the pipeline driver can process records in document order —
// a plain map[string][]Record would not preserve that, since Go randomizes
// map iteration order.
type Dataset struct {
	groups []group
}

type group struct {
	name    string
	records []Record
}

// UnmarshalJSON decodes a JSON object whose values are arrays of Records,
// preserving key order via the token stream rather than unmarshalling into
// a map.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return fmt.Errorf("conflict: dataset must be a JSON object, got %v", tok)
	}

	var groups []group
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("conflict: dataset key must be a string, got %v", keyTok)
		}

		var records []Record
		if err := dec.Decode(&records); err != nil {
			return fmt.Errorf("conflict: dataset group %q: %w", key, err)
		}
		groups = append(groups, group{name: key, records: records})
	}

	if _, err := dec.Token(); err != nil { // closing '}'
		return err
	}

	d.groups = groups
	return nil
}

// Flatten returns every record in the dataset in document order: groups in
// the order they appear in the source document, records in array order
// within each group.
func (d Dataset) Flatten() []Record {
	var out []Record
	for _, g := range d.groups {
		out = append(out, g.records...)
	}
	return out
}
