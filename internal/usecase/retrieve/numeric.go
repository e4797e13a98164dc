package retrieve

import "github.com/sellside/comps/internal/domain"

// filterNumeric enforces numeric-character consistency between the input
// and candidates. Inputs without digits keep candidates whose SLD digit
// fraction is strictly below the threshold; inputs with digits keep
// candidates at or above it. Pure and stateless; it only narrows.
func filterNumeric(cands []domain.Candidate, inputHasNumbers bool, threshold float64) []domain.Candidate {
	kept := make([]domain.Candidate, 0, len(cands))
	for _, c := range cands {
		frac := domain.DigitFraction(domain.ParseFeatures(c.Metadata.Domain).SLD)
		if inputHasNumbers {
			if frac >= threshold {
				kept = append(kept, c)
			}
		} else if frac < threshold {
			kept = append(kept, c)
		}
	}
	return kept
}
