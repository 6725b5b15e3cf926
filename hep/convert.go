package hep

// ToLegacy converts an extended-schema event into an equivalent
// legacy-schema event: a single weight slot and barcode ids shifted by
// offset. Particle ids become originalId + offset and vertex ids become
// originalId - offset, which preserves the positive/negative sign
// convention while moving a whole source into a disjoint barcode range.
//
// Vertex particle references are resolved against the source event's own
// particle map. References that do not resolve are dropped without
// error; this lenient mode tolerates slightly malformed upstream records
// at the cost of silent edge loss (see DESIGN.md). ToLegacy never fails.
//
// Momenta, positions, species codes and status flags are copied
// unchanged. The output carries exactly one weight: the source's first
// weight, or 1.0 when the source has none.
func ToLegacy(ev *Event, number, offset int) *Event {
	out := NewEvent(number)
	out.Weights = []float64{ev.Weight()}
	copyShifted(ev, out, offset)
	return out
}

// MergeInto copies ev's particles and vertices into dst with the given
// barcode offset, applying the same lenient reference resolution as
// ToLegacy. Used by the mixer to union several sources into one
// compound event; the copied sub-graph stays disjoint from everything
// already in dst as long as offsets are spaced by more than any single
// source's entity count.
func MergeInto(dst, ev *Event, offset int) {
	copyShifted(ev, dst, offset)
}

func copyShifted(src, dst *Event, offset int) {
	for _, p := range src.Particles() {
		q := &Particle{
			ID:     p.ID + offset,
			PID:    p.PID,
			P:      p.P,
			Status: p.Status,
		}
		if p.ProdVertex != 0 {
			q.ProdVertex = p.ProdVertex - offset
		}
		if p.EndVertex != 0 {
			q.EndVertex = p.EndVertex - offset
		}
		dst.AddParticle(q)
	}
	for _, v := range src.Vertices() {
		w := &Vertex{
			ID:  v.ID - offset,
			Pos: v.Pos,
		}
		for _, id := range v.In {
			if src.Particle(id) != nil {
				w.In = append(w.In, id+offset)
			}
		}
		for _, id := range v.Out {
			if src.Particle(id) != nil {
				w.Out = append(w.Out, id+offset)
			}
		}
		dst.AddVertex(w)
	}
}
