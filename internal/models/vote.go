package models

// VoteCounts is the refreshed tally the vote subsystem pushes for a post or
// reply. The core consumes these as already-materialized inputs and never
// issues vote queries itself.
type VoteCounts struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

// Clamped returns a copy with negative tallies raised to zero. Malformed
// counts are treated as zero rather than propagated into scoring.
func (v VoteCounts) Clamped() VoteCounts {
	if v.Upvotes < 0 {
		v.Upvotes = 0
	}
	if v.Downvotes < 0 {
		v.Downvotes = 0
	}
	return v
}
