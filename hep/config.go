package hep

// SelectionCuts groups the kinematic acceptance parameters shared by
// the sampling predicates.
type SelectionCuts struct {
	Onia         []int   // resonance species accepted for the lepton-pair cut
	LeptonPID    int     // target lepton flavor (13 = muon)
	MinLeptonPt  float64 // GeV
	MaxLeptonEta float64 // |eta| window
	MinPhiPt     float64 // companion phi pT floor (enriched mode only)
}

// DefaultCuts returns the production selection: J/psi or Upsilon(nS)
// into muon pairs with pT > 2.5 GeV inside |eta| < 2.4.
func DefaultCuts() SelectionCuts {
	return SelectionCuts{
		Onia:         []int{PIDJpsi, PIDUpsilon1, PIDUpsilon2, PIDUpsilon3},
		LeptonPID:    PIDMuon,
		MinLeptonPt:  2.5,
		MaxLeptonEta: 2.4,
	}
}

// ShowerConfig groups the sampling-run parameters.
type ShowerConfig struct {
	MaxEvents int  // partonic configurations to process (0 = all)
	MaxRetry  int  // hadronization attempts per configuration
	MaxAbort  int  // upstream generation glitches tolerated before aborting
	Enriched  bool // require a companion phi and bias strange production
	Seed      int64

	Cuts SelectionCuts
}

// DefaultShowerConfig returns the production defaults for a standard
// (non-enriched) sampling run.
func DefaultShowerConfig() ShowerConfig {
	return ShowerConfig{
		MaxRetry: 1000,
		MaxAbort: 10,
		Seed:     42,
		Cuts:     DefaultCuts(),
	}
}

// MixConfig groups the merge-job parameters.
type MixConfig struct {
	MaxEvents int // compound events to produce (0 = until a source runs out)
}
