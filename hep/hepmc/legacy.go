package hepmc

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/oniamix/oniamix/hep"
)

// LegacyReader consumes a legacy v1 stream. The downstream simulation
// stage owns the production read path for this schema; this reader
// exists for verification of mixed output.
type LegacyReader struct {
	sc      *bufio.Scanner
	opened  bool
	done    bool
	pending string
}

// NewLegacyReader wraps a legacy v1 stream.
func NewLegacyReader(r io.Reader) *LegacyReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &LegacyReader{sc: sc}
}

// Read implements hep.RecordReader.
func (r *LegacyReader) Read() (*hep.Event, error) {
	if r.done {
		return nil, io.EOF
	}
	if !r.opened {
		line, err := r.nextLine()
		if err != nil {
			return nil, err
		}
		if line != legacyBegin {
			return nil, fmt.Errorf("hepmc: bad legacy stream header %q", line)
		}
		r.opened = true
	}

	eline := r.pending
	r.pending = ""
	if eline == "" {
		line, err := r.nextLine()
		if err != nil {
			return nil, err
		}
		if line == legacyEnd {
			r.done = true
			return nil, io.EOF
		}
		eline = line
	}

	var (
		number int
		weight float64
	)
	if _, err := fmt.Sscanf(eline, "E %d %g", &number, &weight); err != nil {
		return nil, fmt.Errorf("hepmc: bad legacy E line %q: %w", eline, err)
	}
	ev := hep.NewEvent(number)
	ev.Weights = []float64{weight}

	for {
		line, err := r.nextLine()
		if err == io.EOF {
			return ev, nil
		}
		if err != nil {
			return nil, err
		}
		switch {
		case line == legacyEnd:
			r.done = true
			return ev, nil
		case strings.HasPrefix(line, "E "):
			r.pending = line
			return ev, nil
		case strings.HasPrefix(line, "V "):
			v, err := parseVertex(line)
			if err != nil {
				return nil, err
			}
			ev.AddVertex(v)
		case strings.HasPrefix(line, "P "):
			p, err := parseParticle(line)
			if err != nil {
				return nil, err
			}
			ev.AddParticle(p)
		default:
			return nil, fmt.Errorf("hepmc: unexpected line %q", line)
		}
	}
}

func (r *LegacyReader) nextLine() (string, error) {
	for r.sc.Scan() {
		line := strings.TrimSpace(r.sc.Text())
		if line == "" {
			continue
		}
		return line, nil
	}
	if err := r.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
