package hep

// Predicate decides whether a hadronized candidate event is kept.
type Predicate interface {
	Accept(ev *Event) bool
}

// LeptonPairCut accepts events in which at least one resonance from the
// configured species set decays to an oppositely-charged lepton pair of
// the target flavor, with both legs above the pT floor and inside the
// pseudorapidity window. This is the standard-mode predicate.
type LeptonPairCut struct {
	Onia      []int
	LeptonPID int
	MinPt     float64
	MaxEta    float64
}

// Accept implements Predicate.
func (c *LeptonPairCut) Accept(ev *Event) bool {
	for _, p := range ev.Particles() {
		if !c.isTargetOnium(p.PID) {
			continue
		}
		if !p.Decayed() {
			continue
		}
		if c.validPair(ev, p) {
			return true
		}
	}
	return false
}

func (c *LeptonPairCut) isTargetOnium(pid int) bool {
	pid = abs(pid)
	for _, want := range c.Onia {
		if pid == want {
			return true
		}
	}
	return false
}

// validPair checks the resonance's daughters for a lepton and an
// antilepton that both pass the kinematic cuts. Negative PDG id is the
// positively-charged antilepton.
func (c *LeptonPairCut) validPair(ev *Event, res *Particle) bool {
	var plusOK, minusOK bool
	for _, d := range ev.Daughters(res) {
		switch d.PID {
		case c.LeptonPID:
			if c.passes(d) {
				minusOK = true
			}
		case -c.LeptonPID:
			if c.passes(d) {
				plusOK = true
			}
		}
	}
	return plusOK && minusOK
}

func (c *LeptonPairCut) passes(p *Particle) bool {
	eta := p.P.Eta()
	if eta < 0 {
		eta = -eta
	}
	return p.P.Pt() > c.MinPt && eta < c.MaxEta
}

// CompanionPhiCut accepts events containing at least one phi meson
// (decayed or final) above the pT floor.
type CompanionPhiCut struct {
	MinPt float64
}

// Accept implements Predicate.
func (c *CompanionPhiCut) Accept(ev *Event) bool {
	for _, p := range ev.Particles() {
		if abs(p.PID) != PIDPhi {
			continue
		}
		if !p.Decayed() {
			continue
		}
		if p.P.Pt() > c.MinPt {
			return true
		}
	}
	return false
}

// EnrichedCut is the enriched-mode predicate: the standard lepton-pair
// cut AND a companion phi. Any event it accepts also satisfies the
// standalone lepton-pair cut.
type EnrichedCut struct {
	Leptons LeptonPairCut
	Phi     CompanionPhiCut
}

// Accept implements Predicate.
func (c *EnrichedCut) Accept(ev *Event) bool {
	return c.Leptons.Accept(ev) && c.Phi.Accept(ev)
}

// NewPredicate builds the acceptance predicate for the given cuts,
// enriched or standard.
func NewPredicate(cuts SelectionCuts, enriched bool) Predicate {
	leptons := LeptonPairCut{
		Onia:      cuts.Onia,
		LeptonPID: cuts.LeptonPID,
		MinPt:     cuts.MinLeptonPt,
		MaxEta:    cuts.MaxLeptonEta,
	}
	if !enriched {
		return &leptons
	}
	return &EnrichedCut{
		Leptons: leptons,
		Phi:     CompanionPhiCut{MinPt: cuts.MinPhiPt},
	}
}
