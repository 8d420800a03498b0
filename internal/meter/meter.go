// Package meter implements the four-tier verdict scale used in place of
// numeric star ratings, plus the aggregate statistics derived from it.
package meter

import "strings"

// Rating is a Meter verdict. The four values are ordered worst to best.
type Rating string

const (
	Disaster   Rating = "disaster"
	Timepass   Rating = "timepass"
	GoForIt    Rating = "go_for_it"
	Perfection Rating = "perfection"
)

// All lists every rating in canonical order, worst first.
var All = []Rating{Disaster, Timepass, GoForIt, Perfection}

// Parse returns the Rating for s, or false if s is not a valid verdict.
func Parse(s string) (Rating, bool) {
	r := Rating(s)
	return r, r.Valid()
}

func (r Rating) Valid() bool {
	switch r {
	case Disaster, Timepass, GoForIt, Perfection:
		return true
	}
	return false
}

func (r Rating) String() string { return string(r) }

// Rank returns the canonical position of r, 0 = worst. Invalid ratings rank
// after every valid one.
func (r Rating) Rank() int {
	for i, v := range All {
		if v == r {
			return i
		}
	}
	return len(All)
}

// Counts tallies ratings per verdict. All four keys are always present so
// callers can render a complete gauge without nil checks.
func Counts(ratings []Rating) map[Rating]int {
	counts := make(map[Rating]int, len(All))
	for _, v := range All {
		counts[v] = 0
	}
	for _, r := range ratings {
		if r.Valid() {
			counts[r]++
		}
	}
	return counts
}

// Mode returns the most frequent rating. Ties break toward the worse verdict
// so the community consensus never reads better than the vote split supports.
// The second return is false when there are no valid ratings.
func Mode(ratings []Rating) (Rating, bool) {
	counts := Counts(ratings)
	var best Rating
	bestCount := 0
	for _, v := range All {
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	if bestCount == 0 {
		return "", false
	}
	return best, true
}

// SplitList parses a comma-joined rating list as stored on aggregated title
// rows. Unknown tokens are dropped.
func SplitList(csv string) []Rating {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	ratings := make([]Rating, 0, len(parts))
	for _, p := range parts {
		if r, ok := Parse(strings.TrimSpace(p)); ok {
			ratings = append(ratings, r)
		}
	}
	return ratings
}

// JoinList renders ratings back to the comma-joined storage form.
func JoinList(ratings []Rating) string {
	parts := make([]string, len(ratings))
	for i, r := range ratings {
		parts[i] = string(r)
	}
	return strings.Join(parts, ",")
}
