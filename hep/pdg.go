package hep

// PDG Monte Carlo particle numbering (subset used by the pipeline).
const (
	PIDElectron = 11
	PIDMuon     = 13 // mu-; -13 is mu+
	PIDGluon    = 21
	PIDPhoton   = 22
	PIDPiPlus   = 211
	PIDPiZero   = 111
	PIDKPlus    = 321
	PIDKZero    = 311
	PIDRhoZero  = 113
	PIDKStar    = 313
	PIDEta      = 221
	PIDPhi      = 333 // phi(1020)
	PIDJpsi     = 443
	PIDUpsilon1 = 553    // Upsilon(1S)
	PIDUpsilon2 = 100553 // Upsilon(2S)
	PIDUpsilon3 = 200553 // Upsilon(3S)
)

// Generator status codes, Pythia-like: positive for surviving particles,
// negated when a particle has decayed.
const (
	StatusFinal     = 1
	StatusResonance = 2
	StatusDecayed   = -2
)

// Masses in GeV, PDG 2024 values.
var pdgMass = map[int]float64{
	PIDElectron: 0.000511,
	PIDMuon:     0.1056584,
	PIDPiPlus:   0.1395704,
	PIDPiZero:   0.1349768,
	PIDKPlus:    0.493677,
	PIDKZero:    0.497611,
	PIDRhoZero:  0.77526,
	PIDKStar:    0.89555,
	PIDEta:      0.547862,
	PIDPhi:      1.019461,
	PIDJpsi:     3.096900,
	PIDUpsilon1: 9.46040,
	PIDUpsilon2: 10.02326,
	PIDUpsilon3: 10.3552,
}

// Mass returns the rest mass of the species in GeV, or 0 for species
// outside the table (massless approximation).
func Mass(pid int) float64 {
	return pdgMass[abs(pid)]
}

// IsOnium reports whether pid is one of the quarkonium resonances the
// pipeline selects on (J/psi or the Upsilon family).
func IsOnium(pid int) bool {
	switch abs(pid) {
	case PIDJpsi, PIDUpsilon1, PIDUpsilon2, PIDUpsilon3:
		return true
	}
	return false
}

// IsUpsilon reports whether pid is an Upsilon(1S/2S/3S).
func IsUpsilon(pid int) bool {
	switch abs(pid) {
	case PIDUpsilon1, PIDUpsilon2, PIDUpsilon3:
		return true
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
