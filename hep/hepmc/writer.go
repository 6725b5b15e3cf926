// Package hepmc implements the two ASCII stream schemas of the
// pipeline: the extended v2 schema (arbitrary ids, multiple weight
// slots) produced by the shower stage, and the legacy v1 schema
// (barcode ids, single weight slot) consumed by downstream simulation.
//
// Both schemas are line oriented, one event per contiguous block,
// bracketed by explicit stream markers so a truncated file is
// distinguishable from a complete one.
package hepmc

import (
	"bufio"
	"fmt"
	"io"

	"github.com/oniamix/oniamix/hep"
)

// Stream markers. The version suffix is part of the marker so readers
// reject streams written by an incompatible schema.
const (
	extBegin    = "ASCII-v2 BEGIN"
	extEnd      = "ASCII-v2 END"
	legacyBegin = "ASCII-v1 BEGIN"
	legacyEnd   = "ASCII-v1 END"
)

// Writer emits events in the extended v2 schema.
type Writer struct {
	w      *bufio.Writer
	opened bool
}

// NewWriter returns a Writer targeting w. The stream header is written
// lazily on the first event so an empty run leaves an empty file.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteEvent implements hep.EventWriter.
func (w *Writer) WriteEvent(ev *hep.Event) error {
	if !w.opened {
		if _, err := fmt.Fprintln(w.w, extBegin); err != nil {
			return err
		}
		w.opened = true
	}

	fmt.Fprintf(w.w, "E %d %d %d\n", ev.Number, len(ev.Vertices()), len(ev.Particles()))

	fmt.Fprint(w.w, "W")
	weights := ev.Weights
	if len(weights) == 0 {
		weights = []float64{1.0}
	}
	for _, wt := range weights {
		fmt.Fprintf(w.w, " %g", wt)
	}
	fmt.Fprintln(w.w)

	if err := writeGraph(w.w, ev); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close terminates the stream with the end marker. Events written after
// Close are undefined.
func (w *Writer) Close() error {
	if w.opened {
		if _, err := fmt.Fprintln(w.w, extEnd); err != nil {
			return err
		}
	}
	return w.w.Flush()
}

// LegacyWriter emits events in the legacy v1 schema: a single weight
// slot on the E line, barcode ids on the V/P lines.
type LegacyWriter struct {
	w      *bufio.Writer
	opened bool
}

// NewLegacyWriter returns a LegacyWriter targeting w.
func NewLegacyWriter(w io.Writer) *LegacyWriter {
	return &LegacyWriter{w: bufio.NewWriter(w)}
}

// WriteEvent implements hep.EventWriter. Only the first weight is
// representable; extra weight slots are dropped by schema design.
func (w *LegacyWriter) WriteEvent(ev *hep.Event) error {
	if !w.opened {
		if _, err := fmt.Fprintln(w.w, legacyBegin); err != nil {
			return err
		}
		w.opened = true
	}

	fmt.Fprintf(w.w, "E %d %g\n", ev.Number, ev.Weight())
	if err := writeGraph(w.w, ev); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close terminates the stream with the end marker.
func (w *LegacyWriter) Close() error {
	if w.opened {
		if _, err := fmt.Fprintln(w.w, legacyEnd); err != nil {
			return err
		}
	}
	return w.w.Flush()
}

// writeGraph emits the V/P lines shared by both schemas.
func writeGraph(w io.Writer, ev *hep.Event) error {
	for _, v := range ev.Vertices() {
		fmt.Fprintf(w, "V %d %g %g %g %g %d %d",
			v.ID, v.Pos.X, v.Pos.Y, v.Pos.Z, v.Pos.T, len(v.In), len(v.Out))
		for _, id := range v.In {
			fmt.Fprintf(w, " %d", id)
		}
		for _, id := range v.Out {
			fmt.Fprintf(w, " %d", id)
		}
		fmt.Fprintln(w)
	}
	for _, p := range ev.Particles() {
		if _, err := fmt.Fprintf(w, "P %d %d %g %g %g %g %d %d %d\n",
			p.ID, p.PID, p.P.Px(), p.P.Py(), p.P.Pz(), p.P.E(),
			p.Status, p.ProdVertex, p.EndVertex); err != nil {
			return err
		}
	}
	return nil
}
