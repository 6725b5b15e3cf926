package frag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oniamix/oniamix/hep"
)

// baseline builds a partonic configuration: two beam partons, a hard
// J/psi and a light two-parton system of ~100 GeV.
func baseline() *hep.PartonEvent {
	return &hep.PartonEvent{
		Number: 0,
		Weight: 0.5,
		Partons: []hep.Parton{
			{PID: 2, Status: -1, P: onShell(0, 0, 500, 0)},
			{PID: -2, Status: -1, P: onShell(0, 0, -500, 0)},
			{PID: hep.PIDJpsi, Status: 1, P: onShell(1, 0.5, 10, hep.Mass(hep.PIDJpsi)), Mass: hep.Mass(hep.PIDJpsi)},
			{PID: 21, Status: 1, P: onShell(0.3, -0.2, 50, 0)},
			{PID: 21, Status: 1, P: onShell(-0.3, 0.2, -50, 0)},
		},
	}
}

func newFragmenter(seed int64) *Fragmenter {
	return New(DefaultTune(), hep.NewPartitionedRNG(hep.NewRunKey(seed)))
}

func TestFragmenter_CarriesOniumToMuonPair(t *testing.T) {
	f := newFragmenter(42)

	ev, err := f.Hadronize(baseline())
	require.NoError(t, err)

	// The J/psi must be present, decayed, with a mu+mu- pair at its
	// decay vertex.
	var jpsi *hep.Particle
	for _, p := range ev.Particles() {
		if p.PID == hep.PIDJpsi {
			jpsi = p
			break
		}
	}
	require.NotNil(t, jpsi)
	assert.True(t, jpsi.Decayed())

	ds := ev.Daughters(jpsi)
	require.Len(t, ds, 2)
	pids := []int{ds[0].PID, ds[1].PID}
	assert.ElementsMatch(t, []int{hep.PIDMuon, -hep.PIDMuon}, pids)
}

func TestFragmenter_EventWeightCarried(t *testing.T) {
	f := newFragmenter(42)

	ev, err := f.Hadronize(baseline())
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5}, ev.Weights)
}

func TestFragmenter_GraphConsistent(t *testing.T) {
	f := newFragmenter(7)

	ev, err := f.Hadronize(baseline())
	require.NoError(t, err)

	// Every vertex reference must resolve and agree with the particle's
	// own prod/end fields.
	for _, v := range ev.Vertices() {
		for _, id := range v.In {
			p := ev.Particle(id)
			require.NotNil(t, p, "vertex %d In ref %d", v.ID, id)
			assert.Equal(t, v.ID, p.EndVertex)
		}
		for _, id := range v.Out {
			p := ev.Particle(id)
			require.NotNil(t, p, "vertex %d Out ref %d", v.ID, id)
			assert.Equal(t, v.ID, p.ProdVertex)
		}
	}

	// Particle ids unique.
	seen := map[int]bool{}
	for _, p := range ev.Particles() {
		require.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
	}
}

func TestFragmenter_DeterministicUnderSeed(t *testing.T) {
	// GIVEN two fragmenters with the same seed
	a, err := newFragmenter(99).Hadronize(baseline())
	require.NoError(t, err)
	b, err := newFragmenter(99).Hadronize(baseline())
	require.NoError(t, err)

	// THEN the draws are identical particle by particle
	require.Equal(t, len(a.Particles()), len(b.Particles()))
	for i, p := range a.Particles() {
		q := b.Particles()[i]
		assert.Equal(t, p.PID, q.PID)
		assert.Equal(t, p.P, q.P)
	}
}

func TestFragmenter_IndependentDrawsDiffer(t *testing.T) {
	f := newFragmenter(1)
	a, err := f.Hadronize(baseline())
	require.NoError(t, err)
	b, err := f.Hadronize(baseline())
	require.NoError(t, err)

	// Two draws from the same frozen baseline should not coincide
	// (different multiplicity or kinematics).
	same := len(a.Particles()) == len(b.Particles())
	if same {
		for i := range a.Particles() {
			if a.Particles()[i].P != b.Particles()[i].P {
				same = false
				break
			}
		}
	}
	assert.False(t, same, "independent draws produced identical events")
}

func TestFragmenter_BelowThresholdFails(t *testing.T) {
	// GIVEN a light system with essentially no invariant mass
	pe := &hep.PartonEvent{
		Number: 0,
		Partons: []hep.Parton{
			{PID: 21, Status: 1, P: onShell(0, 0, 10, 0)},
		},
	}
	f := newFragmenter(3)

	_, err := f.Hadronize(pe)
	assert.ErrorIs(t, err, ErrBelowThreshold)
}

func TestFragmenter_NoLightPartonsNoFragmentation(t *testing.T) {
	// A pure-onium configuration hadronizes without a string system.
	pe := &hep.PartonEvent{
		Number: 0,
		Partons: []hep.Parton{
			{PID: hep.PIDJpsi, Status: 1, P: onShell(0, 0, 5, hep.Mass(hep.PIDJpsi)), Mass: hep.Mass(hep.PIDJpsi)},
		},
	}
	f := newFragmenter(3)

	ev, err := f.Hadronize(pe)
	require.NoError(t, err)
	// J/psi plus its two muons.
	assert.Len(t, ev.Particles(), 3)
}

func TestFragmenter_EnrichmentRaisesPhiYield(t *testing.T) {
	// GIVEN many draws under the default and the enriched tune
	countPhi := func(f *Fragmenter) int {
		n := 0
		for i := 0; i < 300; i++ {
			ev, err := f.Hadronize(baseline())
			if err != nil {
				continue
			}
			for _, p := range ev.Particles() {
				if abs(p.PID) == hep.PIDPhi {
					n++
				}
			}
		}
		return n
	}

	def := countPhi(New(DefaultTune(), hep.NewPartitionedRNG(hep.NewRunKey(5))))
	enr := countPhi(New(EnrichedTune(DefaultTune()), hep.NewPartitionedRNG(hep.NewRunKey(5))))

	// THEN the biased tune produces more phi mesons
	assert.Greater(t, enr, def)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
