package detector

import "github.com/vulnverified/sweep/internal/catalog"

// verdictFor buckets confidence into the six-level lattice. It is the
// only place thresholds are encoded; Stage 2's early SAFE exit and the
// panic-recovery ERROR path both bypass it deliberately.
func verdictFor(confidence int, providerKnown bool) (Verdict, catalog.RiskLevel) {
	switch {
	case confidence >= 80:
		return VerdictConfirmed, catalog.RiskCritical
	case confidence >= 60:
		return VerdictHighlyLikely, catalog.RiskHigh
	case confidence >= 40:
		return VerdictLikely, catalog.RiskMedium
	case confidence >= 20:
		return VerdictPossible, catalog.RiskLow
	case confidence > 0 && providerKnown:
		return VerdictUnlikely, catalog.RiskInfo
	default:
		return VerdictSafe, catalog.RiskInfo
	}
}
