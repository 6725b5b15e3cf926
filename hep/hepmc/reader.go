package hepmc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go-hep.org/x/hep/fmom"

	"github.com/oniamix/oniamix/hep"
)

// Reader consumes an extended v2 stream, one event per Read, front to
// back. Read returns io.EOF at the stream end marker (or a clean
// physical EOF); any other condition is a parse error.
type Reader struct {
	sc     *bufio.Scanner
	opened bool
	done   bool

	// pending holds the E line of the next event when the previous
	// Read stopped at it.
	pending string
}

// NewReader wraps an extended v2 stream.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &Reader{sc: sc}
}

// Read implements hep.RecordReader.
func (r *Reader) Read() (*hep.Event, error) {
	if r.done {
		return nil, io.EOF
	}
	if !r.opened {
		line, err := r.nextLine()
		if err != nil {
			return nil, err
		}
		if line != extBegin {
			return nil, fmt.Errorf("hepmc: bad stream header %q", line)
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
		if line == extEnd {
			r.done = true
			return nil, io.EOF
		}
		eline = line
	}

	var number, nvtx, npart int
	if _, err := fmt.Sscanf(eline, "E %d %d %d", &number, &nvtx, &npart); err != nil {
		return nil, fmt.Errorf("hepmc: bad E line %q: %w", eline, err)
	}
	ev := hep.NewEvent(number)

	wline, err := r.nextLine()
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(wline)
	if len(fields) < 2 || fields[0] != "W" {
		return nil, fmt.Errorf("hepmc: bad W line %q", wline)
	}
	for _, f := range fields[1:] {
		wt, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("hepmc: bad weight %q: %w", f, err)
		}
		ev.Weights = append(ev.Weights, wt)
	}

	for {
		line, err := r.nextLine()
		if err == io.EOF {
			// Truncated stream: surface what we have.
			return ev, nil
		}
		if err != nil {
			return nil, err
		}
		switch {
		case line == extEnd:
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

func (r *Reader) nextLine() (string, error) {
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

func parseVertex(line string) (*hep.Vertex, error) {
	fields := strings.Fields(line)
	if len(fields) < 8 {
		return nil, fmt.Errorf("hepmc: short V line %q", line)
	}
	ints := func(s string) (int, error) { return strconv.Atoi(s) }
	id, err := ints(fields[1])
	if err != nil {
		return nil, fmt.Errorf("hepmc: bad vertex id %q: %w", fields[1], err)
	}
	var pos [4]float64
	for i := 0; i < 4; i++ {
		pos[i], err = strconv.ParseFloat(fields[2+i], 64)
		if err != nil {
			return nil, fmt.Errorf("hepmc: bad vertex position in %q: %w", line, err)
		}
	}
	nin, err := ints(fields[6])
	if err != nil {
		return nil, fmt.Errorf("hepmc: bad vertex in-count in %q: %w", line, err)
	}
	nout, err := ints(fields[7])
	if err != nil {
		return nil, fmt.Errorf("hepmc: bad vertex out-count in %q: %w", line, err)
	}
	if len(fields) != 8+nin+nout {
		return nil, fmt.Errorf("hepmc: V line %q wants %d refs, has %d", line, nin+nout, len(fields)-8)
	}
	v := &hep.Vertex{
		ID:  id,
		Pos: hep.FourPosition{X: pos[0], Y: pos[1], Z: pos[2], T: pos[3]},
	}
	for i := 0; i < nin; i++ {
		ref, err := ints(fields[8+i])
		if err != nil {
			return nil, fmt.Errorf("hepmc: bad particle ref in %q: %w", line, err)
		}
		v.In = append(v.In, ref)
	}
	for i := 0; i < nout; i++ {
		ref, err := ints(fields[8+nin+i])
		if err != nil {
			return nil, fmt.Errorf("hepmc: bad particle ref in %q: %w", line, err)
		}
		v.Out = append(v.Out, ref)
	}
	return v, nil
}

func parseParticle(line string) (*hep.Particle, error) {
	var (
		p   hep.Particle
		kin [4]float64
	)
	n, err := fmt.Sscanf(line, "P %d %d %g %g %g %g %d %d %d",
		&p.ID, &p.PID, &kin[0], &kin[1], &kin[2], &kin[3],
		&p.Status, &p.ProdVertex, &p.EndVertex)
	if err != nil || n != 9 {
		if err == nil {
			err = fmt.Errorf("want 9 fields, got %d", n)
		}
		return nil, fmt.Errorf("hepmc: bad P line %q: %w", line, err)
	}
	p.P = fmom.NewPxPyPzE(kin[0], kin[1], kin[2], kin[3])
	return &p, nil
}
