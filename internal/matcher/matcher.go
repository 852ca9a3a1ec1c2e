// Package matcher decides whether a presented attempt reproduces a stored
// credential. Every function here is pure and total.
package matcher

import (
	"math"

	"github.com/dmitrijs2005/graphauth/internal/credential"
)

// MatchClicks reports whether every attempted click lies within
// credential.ToleranceRadius of the stored click at the same position and
// on the same image. Sequences of different length never match.
func MatchClicks(attempt, stored credential.ClickSequence) bool {
	if len(attempt) != len(stored) {
		return false
	}

	for i := range attempt {
		a, s := attempt[i], stored[i]
		if a.ImageIndex != s.ImageIndex {
			return false
		}
		if distance(a, s) > credential.ToleranceRadius {
			return false
		}
	}

	return true
}

func distance(a, b credential.ClickPoint) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// MatchSequence reports whether attempt equals stored element by element.
func MatchSequence(attempt, stored credential.ImageSelection) bool {
	if len(attempt) != len(stored) {
		return false
	}

	for i := range attempt {
		if attempt[i] != stored[i] {
			return false
		}
	}

	return true
}

// Match routes to the matcher of the stored credential's variant. An
// attempt of the other variant never matches.
func Match(attempt, stored credential.Credential) bool {
	switch s := stored.(type) {
	case credential.ClickCredential:
		a, ok := attempt.(credential.ClickCredential)
		return ok && MatchClicks(a.Points, s.Points)
	case credential.SequenceCredential:
		a, ok := attempt.(credential.SequenceCredential)
		return ok && MatchSequence(a.Images, s.Images)
	default:
		return false
	}
}
