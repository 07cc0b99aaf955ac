package models

import "time"

// Session keeps the outcome of one query so the result table can be paged
// and exported without re-reading the spreadsheets. Sessions expire.
type Session struct {
	ID             string           `json:"id"`
	Category       DifficultyType   `json:"category"`
	StudentFile    string           `json:"studentFile"`
	DifficultyFile string           `json:"difficultyFile"`
	Matches        []MatchResult    `json:"matches"`
	Statistics     *MatchStatistics `json:"statistics,omitempty"` // nil when the statistics could not be computed
	CreatedAt      time.Time        `json:"createdAt"`
}

// SessionSummary is the list view of a session, without its matches
type SessionSummary struct {
	ID           string         `json:"id"`
	Category     DifficultyType `json:"category"`
	TotalMatches int            `json:"totalMatches"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// Summary returns the list view of s
func (s Session) Summary() SessionSummary {
	return SessionSummary{
		ID:           s.ID,
		Category:     s.Category,
		TotalMatches: len(s.Matches),
		CreatedAt:    s.CreatedAt,
	}
}
