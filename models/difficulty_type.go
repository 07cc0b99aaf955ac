package models

// DifficultyType is a social-assistance category. The values are the labels
// used by the civil affairs spreadsheets and are sent over the wire as-is.
type DifficultyType string

const (
	PovertyAlleviatedContinuePolicy        DifficultyType = "脱贫户(继续享受政策)"
	PovertyAlleviatedNoPolicy              DifficultyType = "脱贫户(不享受政策)"
	DisabledWithCertificate                DifficultyType = "持证残疾人"
	RuralMinimumLiving                     DifficultyType = "农村低保"
	UrbanMinimumLiving                     DifficultyType = "城镇低保"
	RuralSpecialDifficulty                 DifficultyType = "城乡特困"
	AntiPovertyMonitoringRiskNotEliminated DifficultyType = "防返贫监测对象(风险未消除)"
	AntiPovertyMonitoringRiskEliminated    DifficultyType = "防返贫监测对象(风险已消除)"
	OrphansAndFactuallyUnsupportedChildren DifficultyType = "孤儿及事实无人抚养儿童"
	LowIncomePopulation                    DifficultyType = "低收入人口"
)

var allDifficultyTypes = []DifficultyType{
	PovertyAlleviatedContinuePolicy,
	PovertyAlleviatedNoPolicy,
	DisabledWithCertificate,
	RuralMinimumLiving,
	UrbanMinimumLiving,
	RuralSpecialDifficulty,
	AntiPovertyMonitoringRiskNotEliminated,
	AntiPovertyMonitoringRiskEliminated,
	OrphansAndFactuallyUnsupportedChildren,
	LowIncomePopulation,
}

// AllDifficultyTypes returns the categories in dropdown order
func AllDifficultyTypes() []DifficultyType {
	out := make([]DifficultyType, len(allDifficultyTypes))
	copy(out, allDifficultyTypes)
	return out
}

// ParseDifficultyType reports whether s names a known category
func ParseDifficultyType(s string) (DifficultyType, bool) {
	t := DifficultyType(s)
	return t, t.IsValid()
}

// IsValid reports whether t is one of the ten categories
func (t DifficultyType) IsValid() bool {
	for _, known := range allDifficultyTypes {
		if t == known {
			return true
		}
	}
	return false
}

// String returns the category label
func (t DifficultyType) String() string { return string(t) }
