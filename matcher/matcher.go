// Package matcher joins a student roster with difficulty-type records on the
// identity number.
//
// Identity numbers are compared exactly; normalization is the reader's job.
// Matches come out in the order the difficulty records were scanned, so a
// repeated call over the same tables returns the same sequence.
package matcher

import (
	"student-aid-matcher/models"
)

// Run performs the join once and returns both the matches and their
// statistics. An unknown category yields no matches and is not an error.
func Run(students []models.Student, records []models.DifficultyRecord, category models.DifficultyType) ([]models.MatchResult, models.MatchStatistics) {
	stats := models.MatchStatistics{
		TotalStudents:        len(students),
		DifficultyTypeCounts: map[models.DifficultyType]int{},
	}
	matches := []models.MatchResult{}
	if !category.IsValid() {
		return matches, stats
	}

	// Last student wins when an identity number repeats.
	byID := make(map[string]models.Student, len(students))
	for _, s := range students {
		byID[s.IDNumber] = s
	}

	for _, r := range records {
		if r.DifficultyType != category {
			continue
		}
		s, ok := byID[r.IDNumber]
		if !ok {
			continue
		}
		matches = append(matches, models.MatchResult{Student: s, Record: r})
		stats.DifficultyTypeCounts[r.DifficultyType]++
	}
	stats.TotalMatches = len(matches)
	return matches, stats
}

// FindMatches returns the students whose identity number appears among the
// records of the given category.
func FindMatches(students []models.Student, records []models.DifficultyRecord, category models.DifficultyType) []models.MatchResult {
	matches, _ := Run(students, records, category)
	return matches
}

// ComputeStatistics tallies the matches FindMatches would return.
func ComputeStatistics(students []models.Student, records []models.DifficultyRecord, category models.DifficultyType) models.MatchStatistics {
	_, stats := Run(students, records, category)
	return stats
}

// StatisticsOf aggregates an existing match list.
func StatisticsOf(totalStudents int, matches []models.MatchResult) models.MatchStatistics {
	stats := models.MatchStatistics{
		TotalStudents:        totalStudents,
		TotalMatches:         len(matches),
		DifficultyTypeCounts: map[models.DifficultyType]int{},
	}
	for _, m := range matches {
		stats.DifficultyTypeCounts[m.Record.DifficultyType]++
	}
	return stats
}

// DuplicateIDs lists identity numbers held by more than one roster row, in
// first-seen order.
func DuplicateIDs(students []models.Student) []string {
	counts := make(map[string]int, len(students))
	var dups []string
	for _, s := range students {
		counts[s.IDNumber]++
		if counts[s.IDNumber] == 2 {
			dups = append(dups, s.IDNumber)
		}
	}
	return dups
}
