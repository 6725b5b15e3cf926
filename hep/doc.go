// Package hep provides the core of the oniamix event-production
// pipeline: the event record model, the schema adapter, the
// multi-source mixer and the retry-based acceptance sampler.
//
// # Reading Guide
//
// Start with these three files to understand the pipeline kernel:
//   - event.go: the particle/vertex graph and its arena-backed Event
//   - shower.go: the frozen-baseline retry loop and its collaborator interfaces
//   - mix.go: the N-source merge loop and the barcode offset scheme
//
// # Architecture
//
// The hep package defines interfaces and pure data types;
// implementations live in sub-packages:
//   - hep/hepmc: ASCII stream schemas (extended v2, legacy v1)
//   - hep/frag: the stochastic string-fragmentation hadronizer
//
// # Key Interfaces
//
// The extension points are single-method or small interfaces:
//   - PartonSource: next perturbative configuration (io.EOF on clean end)
//   - Hadronizer: one stochastic draw from a frozen baseline
//   - EventWriter: downstream record sink
//   - RecordReader: one source stream of a merge job
//   - Predicate: acceptance decision over a candidate event
package hep
