package poll

import "time"

// IsEffectivelyClosed is the single expiry predicate shared by the read side
// and the vote path. Stored status is never flipped by readers; a poll whose
// ends_at has passed is treated as closed wherever this is evaluated.
func IsEffectivelyClosed(p *Poll, now time.Time) bool {
	if p.Status == StatusClosed {
		return true
	}
	return now.After(p.EndsAt)
}

// EffectiveStatus returns the status a reader should present at the given time.
func EffectiveStatus(p *Poll, now time.Time) string {
	if IsEffectivelyClosed(p, now) {
		return StatusClosed
	}
	return StatusActive
}
