package hep

import (
	"go-hep.org/x/hep/fmom"
)

// FourPosition is a space-time point (x, y, z, t) attached to a vertex.
// Units follow the upstream generator (mm, mm/c).
type FourPosition struct {
	X, Y, Z, T float64
}

// Particle is one node of an event's particle/vertex graph. Particles
// reference their production and decay vertices by vertex id; a zero
// reference means "none". A particle is owned by the Event that holds it.
type Particle struct {
	ID         int          // unique within one event, positive by convention
	PID        int          // PDG species code
	P          fmom.PxPyPzE // four-momentum (GeV)
	Status     int          // generator status; <0 or IsFinal means done
	ProdVertex int          // id of producing vertex, 0 = none
	EndVertex  int          // id of decay vertex, 0 = none
}

// IsFinal reports whether the particle is part of the final state.
// Decayed resonances carry a negative status (Pythia convention).
func (p *Particle) IsFinal() bool {
	return p.Status == StatusFinal
}

// Decayed reports whether the particle has decayed or is final, i.e. it
// reached the end of its generator history.
func (p *Particle) Decayed() bool {
	return p.Status < 0 || p.IsFinal()
}

// Vertex is an interaction or decay point. In/Out hold particle ids in
// insertion order; resolving them against the owning event is the
// consumer's job (see ToLegacy for the lenient resolution rules).
type Vertex struct {
	ID  int // unique within one event, negative by convention
	Pos FourPosition
	In  []int // ids of incoming particles
	Out []int // ids of outgoing particles
}

// Event is one simulated physics event: a particle/vertex DAG plus one
// or more weights. Lookup by id is O(1); iteration follows insertion
// order. No graph validation happens here — consumers check lazily.
type Event struct {
	Number  int
	Weights []float64

	particles []*Particle
	vertices  []*Vertex
	pindex    map[int]*Particle
	vindex    map[int]*Vertex
}

// NewEvent constructs an empty event with the given sequence number.
func NewEvent(number int) *Event {
	return &Event{
		Number: number,
		pindex: make(map[int]*Particle),
		vindex: make(map[int]*Vertex),
	}
}

// AddParticle inserts p into the event. A particle with a duplicate id
// replaces the index entry but both remain in iteration order; callers
// are expected to keep ids unique within one event.
func (ev *Event) AddParticle(p *Particle) {
	ev.particles = append(ev.particles, p)
	ev.pindex[p.ID] = p
}

// AddVertex inserts v into the event.
func (ev *Event) AddVertex(v *Vertex) {
	ev.vertices = append(ev.vertices, v)
	ev.vindex[v.ID] = v
}

// Particle returns the particle with the given id, or nil.
func (ev *Event) Particle(id int) *Particle {
	return ev.pindex[id]
}

// Vertex returns the vertex with the given id, or nil.
func (ev *Event) Vertex(id int) *Vertex {
	return ev.vindex[id]
}

// Particles returns the particles in insertion order. The slice is the
// event's own storage; callers must not mutate it.
func (ev *Event) Particles() []*Particle {
	return ev.particles
}

// Vertices returns the vertices in insertion order.
func (ev *Event) Vertices() []*Vertex {
	return ev.vertices
}

// Weight returns the event's first weight, or 1.0 when no weight was
// supplied.
func (ev *Event) Weight() float64 {
	if len(ev.Weights) == 0 {
		return 1.0
	}
	return ev.Weights[0]
}

// Daughters returns the particles produced at p's decay vertex, in the
// vertex's outgoing order. Unresolvable ids are skipped. Returns nil
// when p has not decayed through a vertex in this event.
func (ev *Event) Daughters(p *Particle) []*Particle {
	if p.EndVertex == 0 {
		return nil
	}
	v := ev.Vertex(p.EndVertex)
	if v == nil {
		return nil
	}
	out := make([]*Particle, 0, len(v.Out))
	for _, id := range v.Out {
		if d := ev.Particle(id); d != nil {
			out = append(out, d)
		}
	}
	return out
}
