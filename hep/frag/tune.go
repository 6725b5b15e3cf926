package frag

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tune holds the flavor and kinematic parameters of the fragmentation
// draw. The names mirror the Lund string-flavor parameters so enriched
// production reads like the generator card it replaces.
type Tune struct {
	// ProbStoUD is the s-quark suppression relative to u/d at string
	// breaks. Raising it raises the strange-hadron (and phi) yield.
	ProbStoUD float64 `yaml:"prob_s_to_ud"`

	// MesonUDVector is the vector fraction for light-quark mesons
	// (rho vs pi).
	MesonUDVector float64 `yaml:"meson_ud_vector"`

	// MesonSVector is the vector fraction for strange mesons
	// (K*/phi vs K/eta).
	MesonSVector float64 `yaml:"meson_s_vector"`

	// MeanMultiplicity scales the Poisson mean of the light-hadron
	// multiplicity per unit log of the string mass squared.
	MeanMultiplicity float64 `yaml:"mean_multiplicity"`

	// MeanPt is the mean transverse momentum (GeV) of fragmented
	// hadrons.
	MeanPt float64 `yaml:"mean_pt"`

	// MaxEta bounds the pseudorapidity window hadrons are drawn in.
	MaxEta float64 `yaml:"max_eta"`
}

// DefaultTune returns the baseline fragmentation parameters (Monash-like
// flavor values).
func DefaultTune() Tune {
	return Tune{
		ProbStoUD:        0.217,
		MesonUDVector:    0.50,
		MesonSVector:     0.55,
		MeanMultiplicity: 2.0,
		MeanPt:           0.6,
		MaxEta:           5.0,
	}
}

// EnrichedTune returns the phi-enrichment bias applied on top of t:
// strange production and the strange-vector fraction are raised. The
// bias is a static, once-per-run tuning, never a per-retry adjustment.
func EnrichedTune(t Tune) Tune {
	t.ProbStoUD = 0.30
	t.MesonUDVector = 0.60
	t.MesonSVector = 0.60
	return t
}

// LoadTune reads tune parameters from a YAML file. Omitted fields keep
// their values from base.
func LoadTune(path string, base Tune) (Tune, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading tune file: %w", err)
	}
	t := base
	if err := yaml.Unmarshal(data, &t); err != nil {
		return base, fmt.Errorf("parsing tune file %s: %w", path, err)
	}
	return t, nil
}
