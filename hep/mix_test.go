package hep

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceReader serves a fixed list of events, then io.EOF.
type sliceReader struct {
	events []*Event
	pos    int
}

func (r *sliceReader) Read() (*Event, error) {
	if r.pos >= len(r.events) {
		return nil, io.EOF
	}
	ev := r.events[r.pos]
	r.pos++
	return ev, nil
}

// collectWriter records every written event.
type collectWriter struct {
	events []*Event
	err    error
}

func (w *collectWriter) WriteEvent(ev *Event) error {
	if w.err != nil {
		return w.err
	}
	w.events = append(w.events, ev)
	return nil
}

func nEvents(n int, weights ...float64) []*Event {
	out := make([]*Event, n)
	for i := range out {
		out[i] = sourceEvent(i, weights...)
	}
	return out
}

func TestMerge_WeightProduct(t *testing.T) {
	// GIVEN sources with weights 0.5, 2.0 and none (=> 1.0)
	evs := []*Event{
		sourceEvent(0, 0.5),
		sourceEvent(0, 2.0),
		sourceEvent(0),
	}

	// WHEN merging
	merged := Merge(evs, 0)

	// THEN the compound weight is the exact product
	require.Len(t, merged.Weights, 1)
	assert.Equal(t, 1.0, merged.Weights[0])
}

func TestMerge_DisjointIDRanges(t *testing.T) {
	// GIVEN three sources with identical id spaces
	evs := nEvents(1, 1.0)
	evs = append(evs, sourceEvent(0, 1.0), sourceEvent(0, 1.0))

	// WHEN merging
	merged := Merge(evs, 4)

	// THEN the compound record holds the sum of the per-source counts
	// with no id collisions
	require.Len(t, merged.Particles(), 9)
	require.Len(t, merged.Vertices(), 6)
	seen := map[int]bool{}
	for _, p := range merged.Particles() {
		require.False(t, seen[p.ID], "duplicate particle id %d", p.ID)
		seen[p.ID] = true
	}
	seenV := map[int]bool{}
	for _, v := range merged.Vertices() {
		require.False(t, seenV[v.ID], "duplicate vertex id %d", v.ID)
		seenV[v.ID] = true
	}
	assert.Equal(t, 4, merged.Number)
}

func TestMerge_SubgraphsStayDisjoint(t *testing.T) {
	evs := []*Event{sourceEvent(0, 1.0), sourceEvent(0, 1.0)}

	merged := Merge(evs, 0)

	// Source 1's decay vertex must reference only source 1's particles.
	v := merged.Vertex(-2 - BarcodeStep)
	require.NotNil(t, v)
	for _, id := range append(append([]int{}, v.In...), v.Out...) {
		assert.Greater(t, id, BarcodeStep, "cross-source reference %d", id)
	}
}

func TestMixer_LengthIsMinOfSources(t *testing.T) {
	// GIVEN sources of length 5, 5 and 3
	w := &collectWriter{}
	m := &Mixer{
		Sources: []RecordReader{
			&sliceReader{events: nEvents(5, 1.0)},
			&sliceReader{events: nEvents(5, 1.0)},
			&sliceReader{events: nEvents(3, 1.0)},
		},
		Writer: w,
	}

	// WHEN running the merge job
	require.NoError(t, m.Run())

	// THEN exactly 3 compound events are emitted, numbered 0..2
	require.Len(t, w.events, 3)
	for k, ev := range w.events {
		assert.Equal(t, k, ev.Number)
	}
	assert.Equal(t, 3, m.Metrics.Merged)
}

func TestMixer_SingleSourceIsPureConversion(t *testing.T) {
	// GIVEN one source with weight 0.75
	w := &collectWriter{}
	m := &Mixer{
		Sources: []RecordReader{&sliceReader{events: nEvents(2, 0.75)}},
		Writer:  w,
	}

	require.NoError(t, m.Run())

	// THEN counts and weight survive unchanged, ids unshifted
	require.Len(t, w.events, 2)
	ev := w.events[0]
	assert.Len(t, ev.Particles(), 3)
	assert.Len(t, ev.Vertices(), 2)
	assert.Equal(t, 0.75, ev.Weight())
	assert.NotNil(t, ev.Particle(1))
}

func TestMixer_MaxEventsCap(t *testing.T) {
	w := &collectWriter{}
	m := &Mixer{
		Sources: []RecordReader{&sliceReader{events: nEvents(10, 1.0)}},
		Writer:  w,
		Config:  MixConfig{MaxEvents: 4},
	}

	require.NoError(t, m.Run())
	assert.Len(t, w.events, 4)
}

func TestMixer_WriteErrorAborts(t *testing.T) {
	w := &collectWriter{err: io.ErrClosedPipe}
	m := &Mixer{
		Sources: []RecordReader{&sliceReader{events: nEvents(3, 1.0)}},
		Writer:  w,
	}

	assert.Error(t, m.Run())
}
