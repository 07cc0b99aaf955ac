package sheets

import "student-aid-matcher/models"

// Layout says where the identity numbers live in a difficulty-type table.
// All indexes are 0-based.
type Layout struct {
	Sheets    []int // sheets to scan, in order
	SkipRows  int   // title and header rows at the top of each sheet
	IDColumns []int // every column holding an identity number
}

// Household registers list the applicant and then each family member, so
// the minimum-living and special-difficulty tables carry several ID columns.
var layouts = map[models.DifficultyType]Layout{
	models.PovertyAlleviatedContinuePolicy:        {Sheets: []int{0}, SkipRows: 1, IDColumns: []int{7}},
	models.PovertyAlleviatedNoPolicy:              {Sheets: []int{0}, SkipRows: 1, IDColumns: []int{7}},
	models.DisabledWithCertificate:                {Sheets: []int{0}, SkipRows: 1, IDColumns: []int{1}},
	models.RuralMinimumLiving:                     {Sheets: []int{1}, SkipRows: 2, IDColumns: []int{6, 15, 17, 19, 21, 23, 25, 27, 29}},
	models.UrbanMinimumLiving:                     {Sheets: []int{1}, SkipRows: 2, IDColumns: []int{6, 16, 18, 20, 22, 24}},
	models.RuralSpecialDifficulty:                 {Sheets: []int{1}, SkipRows: 3, IDColumns: []int{5, 26, 31, 33, 35, 37, 39, 41}},
	models.AntiPovertyMonitoringRiskNotEliminated: {Sheets: []int{0}, SkipRows: 1, IDColumns: []int{11}},
	models.AntiPovertyMonitoringRiskEliminated:    {Sheets: []int{0}, SkipRows: 1, IDColumns: []int{11}},
	models.OrphansAndFactuallyUnsupportedChildren: {Sheets: []int{0, 2}, SkipRows: 3, IDColumns: []int{2}},
	models.LowIncomePopulation:                    {Sheets: []int{0}, SkipRows: 1, IDColumns: []int{3}},
}

// LayoutFor returns the table layout of a category.
func LayoutFor(dt models.DifficultyType) (Layout, bool) {
	l, ok := layouts[dt]
	return l, ok
}
