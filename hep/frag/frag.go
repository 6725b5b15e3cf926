// Package frag is a self-contained stochastic hadronizer: a Lund-like
// string fragmentation stand-in for the external shower engine the
// production pipeline binds. It carries hard-process quarkonia through
// to the final state, fragments the light-parton system into hadrons,
// and applies the forced decay channels of the production generator
// cards. Draws are independent and deterministic under a fixed seed,
// which is what the retry-based sampler needs.
package frag

import (
	"errors"
	"math"
	"math/rand"
	randv2 "math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"go-hep.org/x/hep/fmom"

	"github.com/oniamix/oniamix/hep"
)

// ErrBelowThreshold reports a fragmentation draw whose light-parton
// system has too little invariant mass to produce any hadron pair. The
// sampler treats it as a failed attempt.
var ErrBelowThreshold = errors.New("frag: string mass below two-pion threshold")

// Fragmenter implements hep.Hadronizer.
type Fragmenter struct {
	tune Tune

	frag  *rand.Rand // uniform draws: flavor, eta, phi
	decay *rand.Rand // decay orientation draws
	src   randv2.Source
}

// New builds a Fragmenter with the given tune and partitioned RNG. The
// tune is fixed for the lifetime of the Fragmenter: enrichment is
// applied by constructing with EnrichedTune, once per run.
func New(tune Tune, rng *hep.PartitionedRNG) *Fragmenter {
	fragRNG := rng.ForSubsystem(hep.SubsystemFragmentation)
	return &Fragmenter{
		tune:  tune,
		frag:  fragRNG,
		decay: rng.ForSubsystem(hep.SubsystemDecay),
		src:   randv2.NewPCG(uint64(fragRNG.Int63()), uint64(fragRNG.Int63())),
	}
}

// Hadronize implements hep.Hadronizer. Each call is one independent
// draw from the frozen baseline; pe is never mutated.
func (f *Fragmenter) Hadronize(pe *hep.PartonEvent) (*hep.Event, error) {
	ev := hep.NewEvent(pe.Number)
	ev.Weights = []float64{pe.Weight}

	b := builder{ev: ev}
	primary := b.newVertex(hep.FourPosition{})

	var (
		onia   []*hep.Particle
		system fmom.PxPyPzE
		nlight int
	)
	for _, parton := range pe.Partons {
		if parton.Status < 0 {
			// Beam-side parton: flows into the primary vertex.
			in := b.addParticle(parton.PID, parton.P, parton.Status)
			b.connectIn(primary, in)
			continue
		}
		if hep.IsOnium(parton.PID) {
			p := b.addParticle(parton.PID, parton.P, hep.StatusResonance)
			b.connectOut(primary, p)
			onia = append(onia, p)
			continue
		}
		// Light outgoing parton: absorbed into the fragmenting string.
		// Status 23 marks it as hard-process output, not final state.
		p := b.addParticle(parton.PID, parton.P, 23)
		b.connectOut(primary, p)
		system = fmom.NewPxPyPzE(
			system.Px()+parton.P.Px(),
			system.Py()+parton.P.Py(),
			system.Pz()+parton.P.Pz(),
			system.E()+parton.P.E(),
		)
		nlight++
	}

	if nlight > 0 {
		if err := f.fragment(&b, system); err != nil {
			return nil, err
		}
	}

	for _, p := range onia {
		f.decayParticle(&b, p)
	}
	return ev, nil
}

// fragment turns the light-parton system into hadrons attached to a
// fragmentation vertex. Longitudinal phase space is sampled, not
// exactly conserved; the toy trades conservation for independence of
// draws.
func (f *Fragmenter) fragment(b *builder, system fmom.PxPyPzE) error {
	mass := system.M()
	if mass < 2*hep.Mass(hep.PIDPiPlus) {
		return ErrBelowThreshold
	}

	fragVtx := b.newVertex(hep.FourPosition{})
	// Reroute the string partons into the fragmentation vertex.
	for _, p := range b.ev.Particles() {
		if p.Status == 23 {
			p.Status = -23
			b.connectIn(fragVtx, p)
		}
	}

	lambda := f.tune.MeanMultiplicity * math.Log(math.Max(mass*mass, math.E))
	n := int(distuv.Poisson{Lambda: lambda, Src: f.src}.Rand())
	if n < 2 {
		n = 2
	}

	for i := 0; i < n; i++ {
		pid := f.drawSpecies()
		mom := f.drawMomentum(hep.Mass(pid))
		h := b.addParticle(pid, mom, hep.StatusFinal)
		b.connectOut(fragVtx, h)
		f.decayParticle(b, h)
	}
	return nil
}

// drawSpecies picks a meson species from two independent string-break
// flavor draws plus a vector/pseudoscalar draw, using the tune's
// StringFlav-style probabilities.
func (f *Fragmenter) drawSpecies() int {
	ps := f.tune.ProbStoUD / (2 + f.tune.ProbStoUD)
	s1 := f.frag.Float64() < ps
	s2 := f.frag.Float64() < ps

	switch {
	case s1 && s2:
		if f.frag.Float64() < f.tune.MesonSVector {
			return hep.PIDPhi
		}
		return hep.PIDEta
	case s1 || s2:
		if f.frag.Float64() < f.tune.MesonSVector {
			return hep.PIDKStar
		}
		return f.chargedOrNeutral(hep.PIDKPlus, hep.PIDKZero)
	default:
		if f.frag.Float64() < f.tune.MesonUDVector {
			return hep.PIDRhoZero
		}
		return f.chargedOrNeutral(hep.PIDPiPlus, hep.PIDPiZero)
	}
}

func (f *Fragmenter) chargedOrNeutral(charged, neutral int) int {
	switch f.frag.Intn(3) {
	case 0:
		return neutral
	case 1:
		return charged
	default:
		return -charged
	}
}

// drawMomentum samples an exponential pT, uniform azimuth and uniform
// pseudorapidity inside the tune window.
func (f *Fragmenter) drawMomentum(mass float64) fmom.PxPyPzE {
	pt := distuv.Exponential{Rate: 1 / f.tune.MeanPt, Src: f.src}.Rand()
	phi := 2 * math.Pi * f.frag.Float64()
	eta := (2*f.frag.Float64() - 1) * f.tune.MaxEta

	px := pt * math.Cos(phi)
	py := pt * math.Sin(phi)
	pz := pt * math.Sinh(eta)
	e := math.Sqrt(px*px + py*py + pz*pz + mass*mass)
	return fmom.NewPxPyPzE(px, py, pz, e)
}

// decayParticle applies the forced decay channel for p, if one exists,
// recursively decaying the daughters.
func (f *Fragmenter) decayParticle(b *builder, p *hep.Particle) {
	ch, ok := decayChannel(p.PID)
	if !ok {
		return
	}
	d1, d2 := twoBody(p.P, hep.Mass(ch[0]), hep.Mass(ch[1]), f.decay)

	vtx := b.newVertex(hep.FourPosition{})
	p.Status = hep.StatusDecayed
	b.connectIn(vtx, p)

	q1 := b.addParticle(ch[0], d1, hep.StatusFinal)
	b.connectOut(vtx, q1)
	q2 := b.addParticle(ch[1], d2, hep.StatusFinal)
	b.connectOut(vtx, q2)

	f.decayParticle(b, q1)
	f.decayParticle(b, q2)
}

// builder allocates sequential particle and vertex ids while keeping
// the cross-references consistent.
type builder struct {
	ev    *hep.Event
	nextP int
	nextV int
}

func (b *builder) addParticle(pid int, p fmom.PxPyPzE, status int) *hep.Particle {
	b.nextP++
	part := &hep.Particle{ID: b.nextP, PID: pid, P: p, Status: status}
	b.ev.AddParticle(part)
	return part
}

func (b *builder) newVertex(pos hep.FourPosition) *hep.Vertex {
	b.nextV++
	v := &hep.Vertex{ID: -b.nextV, Pos: pos}
	b.ev.AddVertex(v)
	return v
}

func (b *builder) connectIn(v *hep.Vertex, p *hep.Particle) {
	v.In = append(v.In, p.ID)
	p.EndVertex = v.ID
}

func (b *builder) connectOut(v *hep.Vertex, p *hep.Particle) {
	v.Out = append(v.Out, p.ID)
	p.ProdVertex = v.ID
}
