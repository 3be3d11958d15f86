package internal

import (
	"io"
	"os"

	"github.com/osuushi/bigon/projective"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Options are the numeric knobs of the engine. They are plain values; nothing
// in the engine reads global configuration.
type Options struct {
	// Scale-normalized determinant below which inversions and projective lifts
	// report a singular matrix.
	SingularEpsilon float64 `yaml:"singular_epsilon"`
	// Threshold for the normalized 5x5 determinant of IsLinearlyIndependent.
	IndependenceEpsilon float64 `yaml:"independence_epsilon"`
	// Relative |z| below which an intersection is a point at infinity.
	AffineEpsilon float64 `yaml:"affine_epsilon"`
	// Relative tolerance under which the six image vertices of a step count as
	// collinear, in which case the image bigon has collapsed.
	CollapseEpsilon float64 `yaml:"collapse_epsilon"`
	// Largest diagonal parameter l for which vertices are reconstructed from
	// the closed formula. Larger l go through the monodromy.
	DirectFormulaMaxL int `yaml:"direct_formula_max_l"`
}

func DefaultOptions() Options {
	return Options{
		SingularEpsilon:     projective.DefaultTolerances.Singular,
		IndependenceEpsilon: projective.DefaultTolerances.Independence,
		AffineEpsilon:       projective.DefaultTolerances.Affine,
		CollapseEpsilon:     1e-9,
		DirectFormulaMaxL:   3,
	}
}

func (o Options) Tolerances() projective.Tolerances {
	return projective.Tolerances{
		Singular:     o.SingularEpsilon,
		Independence: o.IndependenceEpsilon,
		Affine:       o.AffineEpsilon,
	}
}

func (o Options) Validate() error {
	for name, eps := range map[string]float64{
		"singular_epsilon":     o.SingularEpsilon,
		"independence_epsilon": o.IndependenceEpsilon,
		"affine_epsilon":       o.AffineEpsilon,
		"collapse_epsilon":     o.CollapseEpsilon,
	} {
		if !projective.IsFinite(eps) || eps < 0 || eps >= 1 {
			return errors.Errorf("%s must be in [0, 1), got %g", name, eps)
		}
	}
	if o.DirectFormulaMaxL < 0 {
		return errors.Errorf("direct_formula_max_l must be non-negative, got %d", o.DirectFormulaMaxL)
	}
	return nil
}

// StrategyFor is the reconstruction policy: the closed formula for small l,
// monodromy extension otherwise. Both produce the same vertices.
func (o Options) StrategyFor(l int) Reconstructor {
	if l <= o.DirectFormulaMaxL {
		return DirectFormula{}
	}
	return MonodromyExtension{Tolerances: o.Tolerances()}
}

// LoadOptions reads YAML options on top of the defaults. Unknown keys are an
// error. An empty document yields the defaults.
func LoadOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&opts); err != nil && err != io.EOF {
		return Options{}, errors.Wrap(err, "decoding options")
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func LoadOptionsFile(path string) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return Options{}, errors.Wrap(err, "opening options file")
	}
	defer f.Close()
	opts, err := LoadOptions(f)
	if err != nil {
		return Options{}, errors.Wrapf(err, "%s", path)
	}
	return opts, nil
}
