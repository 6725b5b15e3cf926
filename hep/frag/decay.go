package frag

import (
	"math"
	"math/rand"

	"go-hep.org/x/hep/fmom"

	"github.com/oniamix/oniamix/hep"
)

// Forced two-body decay channels, matching the generator cards of the
// production configs: quarkonia to muon pairs, light vectors to their
// dominant hadronic mode.
var forcedDecays = map[int][2]int{
	hep.PIDJpsi:     {hep.PIDMuon, -hep.PIDMuon},
	hep.PIDUpsilon1: {hep.PIDMuon, -hep.PIDMuon},
	hep.PIDUpsilon2: {hep.PIDMuon, -hep.PIDMuon},
	hep.PIDUpsilon3: {hep.PIDMuon, -hep.PIDMuon},
	hep.PIDPhi:      {hep.PIDKPlus, -hep.PIDKPlus},
	hep.PIDRhoZero:  {hep.PIDPiPlus, -hep.PIDPiPlus},
	hep.PIDKStar:    {hep.PIDKZero, hep.PIDPiZero},
	hep.PIDPiZero:   {hep.PIDPhoton, hep.PIDPhoton},
}

// decayChannel returns the forced channel for pid, if any.
func decayChannel(pid int) ([2]int, bool) {
	ch, ok := forcedDecays[pid]
	if !ok {
		ch, ok = forcedDecays[-pid]
	}
	return ch, ok
}

// twoBody splits a parent four-momentum into two daughters of masses m1
// and m2, isotropic in the parent rest frame, boosted back to the lab.
// The parent's invariant mass must exceed m1+m2; callers guarantee this
// through the mass table.
func twoBody(parent fmom.PxPyPzE, m1, m2 float64, rng *rand.Rand) (fmom.PxPyPzE, fmom.PxPyPzE) {
	M := parent.M()
	if M < m1+m2 {
		// Off-shell parent from accumulated float error: decay at
		// threshold so the channel stays open.
		M = m1 + m2
	}

	// Momentum magnitude of either daughter in the rest frame.
	a := M*M - (m1+m2)*(m1+m2)
	b := M*M - (m1-m2)*(m1-m2)
	pstar := math.Sqrt(a*b) / (2 * M)

	cosTheta := 2*rng.Float64() - 1
	sinTheta := math.Sqrt(1 - cosTheta*cosTheta)
	phi := 2 * math.Pi * rng.Float64()

	px := pstar * sinTheta * math.Cos(phi)
	py := pstar * sinTheta * math.Sin(phi)
	pz := pstar * cosTheta
	e1 := math.Sqrt(pstar*pstar + m1*m1)
	e2 := math.Sqrt(pstar*pstar + m2*m2)

	d1 := boost(parent, fmom.NewPxPyPzE(px, py, pz, e1))
	d2 := boost(parent, fmom.NewPxPyPzE(-px, -py, -pz, e2))
	return d1, d2
}

// boost transforms p from the rest frame of frame into the lab frame.
func boost(frame, p fmom.PxPyPzE) fmom.PxPyPzE {
	e := frame.E()
	if e <= 0 {
		return p
	}
	bx := frame.Px() / e
	by := frame.Py() / e
	bz := frame.Pz() / e
	b2 := bx*bx + by*by + bz*bz
	if b2 <= 0 {
		return p
	}
	if b2 >= 1 {
		// Degenerate (massless) frame; leave p untouched rather than
		// produce NaNs.
		return p
	}
	gamma := 1 / math.Sqrt(1-b2)
	bp := bx*p.Px() + by*p.Py() + bz*p.Pz()
	k := gamma * (gamma*bp/(gamma+1) + p.E())

	return fmom.NewPxPyPzE(
		p.Px()+k*bx,
		p.Py()+k*by,
		p.Pz()+k*bz,
		gamma*(p.E()+bp),
	)
}
