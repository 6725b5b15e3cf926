package hep

import (
	"io"

	"github.com/sirupsen/logrus"
)

// BarcodeStep is the id offset between consecutive sources in a
// compound event. Any single source whose particle or vertex count
// reaches this value silently collides with its neighbour; keeping
// counts below it is a precondition on the inputs, not enforced here.
const BarcodeStep = 100000

// RecordReader yields event records from one source, front to back,
// never rewinding. io.EOF signals exhaustion.
type RecordReader interface {
	Read() (*Event, error)
}

// Merge combines one record from each of N independent sources into a
// single compound legacy-schema event. Source i's sub-graph is shifted
// by i*BarcodeStep, so the N sub-graphs stay disjoint; no cross-source
// vertices are created. The compound weight is the product of the
// per-source first weights, with a missing weight contributing 1.0.
func Merge(events []*Event, number int) *Event {
	merged := NewEvent(number)
	weight := 1.0
	for _, ev := range events {
		weight *= ev.Weight()
	}
	merged.Weights = []float64{weight}

	for i, ev := range events {
		MergeInto(merged, ev, i*BarcodeStep)
	}
	return merged
}

// Mixer drives a merge job: one compound event per iteration, one
// record read from every source per iteration, stopping at the first
// exhausted source. The compound-event count is therefore the minimum
// of the source lengths.
type Mixer struct {
	Sources []RecordReader
	Writer  EventWriter
	Config  MixConfig

	Metrics MixMetrics
}

// Run executes the merge loop. A read error other than io.EOF, or a
// write error, aborts the run; plain exhaustion of any source is a
// normal stop.
func (m *Mixer) Run() error {
	for k := 0; ; k++ {
		if m.Config.MaxEvents > 0 && k >= m.Config.MaxEvents {
			return nil
		}

		events := make([]*Event, 0, len(m.Sources))
		for i, src := range m.Sources {
			ev, err := src.Read()
			if err == io.EOF {
				logrus.Infof("source %d exhausted after %d events; stopping", i, k)
				return nil
			}
			if err != nil {
				return err
			}
			events = append(events, ev)
		}

		var merged *Event
		if len(events) == 1 {
			// Single source: pure schema conversion, no offset.
			merged = ToLegacy(events[0], k, 0)
		} else {
			merged = Merge(events, k)
		}

		if err := m.Writer.WriteEvent(merged); err != nil {
			return err
		}
		m.Metrics.Merged++
		m.Metrics.Species.Count(merged)

		if (k+1)%progressInterval == 0 {
			logrus.Infof("merged %d events...", k+1)
		}
	}
}

// progressInterval is how often the run loops report progress.
const progressInterval = 100
