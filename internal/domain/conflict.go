package domain

import "time"

type ConflictKind string

const (
	// Two activities whose [start, end) intervals intersect.
	ConflictOverlap ConflictKind = "overlap"
	// Two consecutive activities separated by less than the configured gap.
	ConflictTooClose ConflictKind = "too_close"
)

// Conflict is a scheduling warning between two activities of the same day.
// A precedes B by start time. Start and End delimit the overlapping window,
// or the gap between the two activities for ConflictTooClose.
// A Conflict is read-only planning output.
type Conflict struct {
	A       *Activity
	B       *Activity
	Kind    ConflictKind
	Start   time.Time
	End     time.Time
	Message string
}
