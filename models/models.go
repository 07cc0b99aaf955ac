package models

// Student represents one row of the student roster
type Student struct {
	Name      string `json:"name"`                // Student name (column A)
	IDNumber  string `json:"idNumber"`            // Normalized identity number, the join key (column B)
	StudentID string `json:"studentId,omitempty"` // National student number (column K)
	Class     string `json:"class,omitempty"`     // Class (column J)
	Grade     string `json:"grade,omitempty"`     // Grade (column I)
	School    string `json:"school,omitempty"`    // School name (column E)
}

// RecordSource locates the cell a difficulty record was read from
type RecordSource struct {
	File   string `json:"file"`
	Sheet  string `json:"sheet"`
	Row    int    `json:"row"`    // 1-based, as shown by office software
	Column int    `json:"column"` // 1-based
}

// DifficultyRecord is one identity number listed in a difficulty-type table
type DifficultyRecord struct {
	IDNumber       string         `json:"idNumber"`
	DifficultyType DifficultyType `json:"difficultyType"`
	Source         RecordSource   `json:"source"`
}

// MatchResult pairs a student with the difficulty record sharing their identity number
type MatchResult struct {
	Student Student          `json:"student"`
	Record  DifficultyRecord `json:"record"`
}

// MatchStatistics aggregates a set of matches
type MatchStatistics struct {
	TotalStudents        int                    `json:"totalStudents"`
	TotalMatches         int                    `json:"totalMatches"`
	DifficultyTypeCounts map[DifficultyType]int `json:"difficultyTypeCounts"` // Only types present among matches
}

// FileInfo describes a spreadsheet chosen by the user
type FileInfo struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	SizeText  string `json:"sizeText"`  // Human readable size, e.g. "12 kB"
	Extension string `json:"extension"` // Lower-case, without the dot
}

// CategoryOption is one entry of the category dropdown
type CategoryOption struct {
	Label string         `json:"label"`
	Value DifficultyType `json:"value"`
}
