package hep

import (
	"testing"

	"go-hep.org/x/hep/fmom"
)

// sourceEvent builds a small consistent record: one vertex producing a
// J/psi that decays at a second vertex into a muon pair.
func sourceEvent(number int, weights ...float64) *Event {
	ev := NewEvent(number)
	ev.Weights = weights
	ev.AddParticle(&Particle{ID: 1, PID: PIDJpsi, P: fmom.NewPxPyPzE(0, 0, 10, 10.5), Status: StatusDecayed, ProdVertex: -1, EndVertex: -2})
	ev.AddParticle(&Particle{ID: 2, PID: PIDMuon, P: fmom.NewPxPyPzE(1, 0, 5, 5.1), Status: StatusFinal, ProdVertex: -2})
	ev.AddParticle(&Particle{ID: 3, PID: -PIDMuon, P: fmom.NewPxPyPzE(-1, 0, 5, 5.1), Status: StatusFinal, ProdVertex: -2})
	ev.AddVertex(&Vertex{ID: -1, Out: []int{1}})
	ev.AddVertex(&Vertex{ID: -2, In: []int{1}, Out: []int{2, 3}})
	return ev
}

func TestToLegacy_OffsetsIDsAndKeepsTopology(t *testing.T) {
	// GIVEN a source record and a barcode offset
	src := sourceEvent(3, 0.5)

	// WHEN converting with offset 100000
	got := ToLegacy(src, 11, 100000)

	// THEN ids shift by +offset (particles) and -offset (vertices)
	if got.Number != 11 {
		t.Errorf("Number: got %d, want 11", got.Number)
	}
	p := got.Particle(100001)
	if p == nil || p.PID != PIDJpsi {
		t.Fatalf("particle 1 not found at offset id")
	}
	if p.ProdVertex != -100001 || p.EndVertex != -100002 {
		t.Errorf("vertex refs: got (%d, %d), want (-100001, -100002)", p.ProdVertex, p.EndVertex)
	}
	v := got.Vertex(-100002)
	if v == nil {
		t.Fatal("decay vertex not found at offset id")
	}
	if len(v.In) != 1 || v.In[0] != 100001 {
		t.Errorf("vertex In: got %v, want [100001]", v.In)
	}
	if len(v.Out) != 2 || v.Out[0] != 100002 || v.Out[1] != 100003 {
		t.Errorf("vertex Out: got %v, want [100002 100003]", v.Out)
	}
}

func TestToLegacy_CopiesKinematicsUnchanged(t *testing.T) {
	src := sourceEvent(0, 2.0)

	got := ToLegacy(src, 0, 50)

	p := got.Particle(52)
	if p == nil {
		t.Fatal("muon not found")
	}
	if p.P != src.Particle(2).P {
		t.Errorf("momentum altered: got %v, want %v", p.P, src.Particle(2).P)
	}
	if p.Status != StatusFinal {
		t.Errorf("status altered: got %d", p.Status)
	}
}

func TestToLegacy_WeightHandling(t *testing.T) {
	// First weight wins, extras dropped.
	got := ToLegacy(sourceEvent(0, 0.5, 9.0), 0, 0)
	if len(got.Weights) != 1 || got.Weights[0] != 0.5 {
		t.Errorf("weights: got %v, want [0.5]", got.Weights)
	}

	// No weight defaults to 1.0.
	got = ToLegacy(sourceEvent(0), 0, 0)
	if len(got.Weights) != 1 || got.Weights[0] != 1.0 {
		t.Errorf("weights: got %v, want [1.0]", got.Weights)
	}
}

func TestToLegacy_DanglingReferencesDropped(t *testing.T) {
	// GIVEN a vertex referencing a particle id absent from the record
	src := sourceEvent(0, 1.0)
	src.Vertex(-2).Out = append(src.Vertex(-2).Out, 777)

	// WHEN converting
	got := ToLegacy(src, 0, 0)

	// THEN the conversion succeeds and the dangling reference is gone
	v := got.Vertex(-2)
	if len(v.Out) != 2 {
		t.Errorf("dangling reference survived: Out=%v", v.Out)
	}
	for _, id := range v.Out {
		if got.Particle(id) == nil {
			t.Errorf("output vertex holds unresolvable id %d", id)
		}
	}
}

func TestToLegacy_GraphIsomorphicWithoutOffset(t *testing.T) {
	src := sourceEvent(5, 1.5)

	got := ToLegacy(src, 5, 0)

	if len(got.Particles()) != len(src.Particles()) || len(got.Vertices()) != len(src.Vertices()) {
		t.Fatalf("entity counts changed: %d/%d particles, %d/%d vertices",
			len(got.Particles()), len(src.Particles()), len(got.Vertices()), len(src.Vertices()))
	}
	for _, p := range src.Particles() {
		q := got.Particle(p.ID)
		if q == nil || q.PID != p.PID || q.ProdVertex != p.ProdVertex || q.EndVertex != p.EndVertex {
			t.Errorf("particle %d not preserved: %+v", p.ID, q)
		}
	}
}
