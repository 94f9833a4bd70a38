// Package compaction is a structural placeholder for segment merging and
// stale-record reclamation. The engine never calls into it: compaction is
// an explicit non-goal of the current storage engine, but the teacher
// codebase this module grew from already carved out the package boundary,
// and a future compaction pass would live here rather than inside the
// engine facade.
package compaction

import "github.com/iamNilotpal/ignite/internal/segment"

// Compaction holds whatever state a future compaction pass would need to
// walk frozen segments and rewrite live records into a new generation.
type Compaction struct{}

// New constructs a Compaction. It does nothing yet.
func New() *Compaction {
	return &Compaction{}
}

// Compact is unimplemented. It would read frozen segments, drop records
// shadowed by newer writes or tombstones, and write the survivors into a
// fresh segment set.
func (c *Compaction) Compact(segments []*segment.Segment) error {
	panic("compaction: not implemented")
}
