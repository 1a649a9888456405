package driven

import "github.com/custodia-labs/prospector/internal/core/domain"

// ICPMatcher estimates how closely a prospect fits the ICP, in [0,1].
type ICPMatcher interface {
	ICPMatch(p *domain.Prospect, icp domain.ICP) float64
}

// AccessibilityEstimator estimates the likelihood that outreach reaches the
// prospect, in [0,1].
type AccessibilityEstimator interface {
	Accessibility(p *domain.Prospect) float64
}

// BuyingSignalDetector detects indicators that the prospect's organisation
// currently needs the offering, in [0,1].
type BuyingSignalDetector interface {
	BuyingSignal(p *domain.Prospect, icp domain.ICP) float64
}
