package hep

import (
	"fmt"
	"io"

	"go-hep.org/x/hep/fmom"
	"go-hep.org/x/hep/lhef"
)

// LHESource adapts a Les Houches event file to PartonSource. One LHE
// event block becomes one frozen partonic configuration. Decode errors
// other than io.EOF are surfaced as transient generation failures and
// count toward the runner's abort budget.
type LHESource struct {
	dec *lhef.Decoder
	num int
}

// NewLHESource wraps an LHE stream. The decoder consumes the run header
// eagerly, so a malformed header fails here rather than on first Next.
func NewLHESource(r io.Reader) (*LHESource, error) {
	dec, err := lhef.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("reading LHE header: %w", err)
	}
	return &LHESource{dec: dec}, nil
}

// Next implements PartonSource.
func (s *LHESource) Next() (*PartonEvent, error) {
	evt, err := s.dec.Decode()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("decoding LHE event: %w", err)
	}

	pe := &PartonEvent{
		Number:  s.num,
		Weight:  evt.XWGTUP,
		Partons: make([]Parton, 0, evt.NUP),
	}
	s.num++

	for i := int32(0); i < evt.NUP; i++ {
		p := evt.PUP[i]
		pe.Partons = append(pe.Partons, Parton{
			PID:    int(evt.IDUP[i]),
			Status: int(evt.ISTUP[i]),
			P:      fmom.NewPxPyPzE(p[0], p[1], p[2], p[3]),
			Mass:   p[4],
		})
	}
	return pe, nil
}
