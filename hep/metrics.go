// Tracks run-wide production statistics for the shower and mix commands.

package hep

import "fmt"

// SpeciesTally counts selected resonances and leptons across the
// records written by a run.
type SpeciesTally struct {
	Jpsi    int
	Upsilon int
	Phi     int
	Muon    int
}

// Count adds the resonances of one event to the tally. Only particles
// that completed their generator history (decayed or final) are
// counted, matching how downstream analysis sees them.
func (t *SpeciesTally) Count(ev *Event) {
	for _, p := range ev.Particles() {
		if !p.Decayed() {
			continue
		}
		switch abs(p.PID) {
		case PIDJpsi:
			t.Jpsi++
		case PIDUpsilon1, PIDUpsilon2, PIDUpsilon3:
			t.Upsilon++
		case PIDPhi:
			t.Phi++
		case PIDMuon:
			t.Muon++
		}
	}
}

// ShowerMetrics aggregates statistics for one sampling run. Purely
// additive: it never influences control flow.
type ShowerMetrics struct {
	Processed     int // partonic configurations seen
	Accepted      int // events that passed the predicate and were written
	Skipped       int // events that exhausted the retry budget
	Aborts        int // upstream generation glitches recovered from
	TotalAttempts int // hadronization draws across all events

	Species SpeciesTally // tallies over written events only
}

// Efficiency returns accepted/processed as an exact ratio of the two
// counters; 0 when nothing has been processed.
func (m *ShowerMetrics) Efficiency() float64 {
	if m.Processed == 0 {
		return 0
	}
	return float64(m.Accepted) / float64(m.Processed)
}

// AvgRetries returns the mean number of hadronization draws per
// processed event.
func (m *ShowerMetrics) AvgRetries() float64 {
	if m.Processed == 0 {
		return 0
	}
	return float64(m.TotalAttempts) / float64(m.Processed)
}

// Snapshot returns a copy of the current counters.
func (m *ShowerMetrics) Snapshot() ShowerMetrics {
	return *m
}

// Print displays the end-of-run summary for a sampling run.
func (m *ShowerMetrics) Print(output string) {
	fmt.Println("======================================================")
	fmt.Println("Processing Summary:")
	fmt.Println("------------------------------------------------------")
	fmt.Printf("Partonic events processed:  %d\n", m.Processed)
	fmt.Printf("Events written:             %d (%.1f%%)\n", m.Accepted, 100*m.Efficiency())
	fmt.Printf("Events skipped:             %d\n", m.Skipped)
	fmt.Printf("Total hadronization tries:  %d\n", m.TotalAttempts)
	fmt.Printf("Average retries per event:  %.2f\n", m.AvgRetries())
	fmt.Println("------------------------------------------------------")
	fmt.Println("Particle counts (in written events):")
	fmt.Printf("  Total J/psi:   %d\n", m.Species.Jpsi)
	fmt.Printf("  Total Upsilon: %d\n", m.Species.Upsilon)
	fmt.Printf("  Total phi:     %d\n", m.Species.Phi)
	fmt.Printf("  Total muons:   %d\n", m.Species.Muon)
	fmt.Println("------------------------------------------------------")
	fmt.Printf("Output file: %s\n", output)
	fmt.Println("======================================================")
}

// MixMetrics aggregates statistics for one mixing run.
type MixMetrics struct {
	Merged  int // compound events written
	Species SpeciesTally
}

// Snapshot returns a copy of the current counters.
func (m *MixMetrics) Snapshot() MixMetrics {
	return *m
}

// Print displays the end-of-run summary for a mixing run.
func (m *MixMetrics) Print(output string) {
	fmt.Println("========================================")
	fmt.Println("Mixing Summary:")
	fmt.Println("----------------------------------------")
	fmt.Printf("Total events merged: %d\n", m.Merged)
	fmt.Println("Particle counts:")
	fmt.Printf("  Total J/psi:   %d\n", m.Species.Jpsi)
	fmt.Printf("  Total Upsilon: %d\n", m.Species.Upsilon)
	fmt.Printf("  Total phi:     %d\n", m.Species.Phi)
	fmt.Println("----------------------------------------")
	fmt.Printf("Output file: %s\n", output)
	fmt.Println("========================================")
}
