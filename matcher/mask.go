package matcher

import "student-aid-matcher/models"

// MaskedPlaceholder is shown for identity numbers too short to mask partially.
const MaskedPlaceholder = "******"

const (
	keepHead = 3
	keepTail = 3
	maskFill = "****"
)

// MaskIDNumber renders an identity number for display: the first and last
// three characters survive, the middle becomes "****".
func MaskIDNumber(id string) string {
	r := []rune(id)
	if len(r) < keepHead+keepTail {
		return MaskedPlaceholder
	}
	return string(r[:keepHead]) + maskFill + string(r[len(r)-keepTail:])
}

// MaskMatches returns a copy of matches with every identity number masked.
func MaskMatches(matches []models.MatchResult) []models.MatchResult {
	out := make([]models.MatchResult, len(matches))
	for i, m := range matches {
		m.Student.IDNumber = MaskIDNumber(m.Student.IDNumber)
		m.Record.IDNumber = MaskIDNumber(m.Record.IDNumber)
		out[i] = m
	}
	return out
}
