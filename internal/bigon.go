package internal

import (
	"fmt"
	"math"

	"github.com/osuushi/bigon/dbg"
	"github.com/osuushi/bigon/projective"
	"github.com/pkg/errors"
)

type MonodromyState int

const (
	// MonodromyUninitialized: Reconstruct has not been called.
	MonodromyUninitialized MonodromyState = iota
	// MonodromyValid: the monodromy was built and may be used.
	MonodromyValid
	// MonodromySingular: building the monodromy hit a singular matrix.
	MonodromySingular
)

func (s MonodromyState) String() string {
	switch s {
	case MonodromyUninitialized:
		return "uninitialized"
	case MonodromyValid:
		return "valid"
	case MonodromySingular:
		return "singular"
	}
	return fmt.Sprintf("MonodromyState(%d)", int(s))
}

// Bigon holds the corner coordinates of a twisted bigon together with its
// monodromy. The monodromy is derived state: it starts uninitialized and is
// filled in by Reconstruct. Coordinates never change after construction;
// applying a map yields a new Bigon.
type Bigon struct {
	coords    CornerCoords
	state     MonodromyState
	monodromy Monodromy
	err       error
}

func NewBigon(x0, x1, x2, x3 float64) *Bigon {
	return &Bigon{coords: Coords(x0, x1, x2, x3)}
}

func BigonFromCoords(c CornerCoords) *Bigon {
	return &Bigon{coords: c}
}

// DefaultBigon is the bigon cut out of a regular 9-gon: its corner
// coordinates are the first four corner invariants of the regular polygon.
func DefaultBigon() *Bigon {
	const n = 9
	vertices := make([]projective.Point, n)
	for i := range vertices {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / n)
		vertices[i] = projective.AffinePt(cos, sin)
	}
	invariants := projective.CornerInvariants(vertices)
	var c CornerCoords
	copy(c[:], invariants)
	return BigonFromCoords(c)
}

func (b *Bigon) Coords() CornerCoords {
	return b.coords
}

func (b *Bigon) State() MonodromyState {
	return b.state
}

// Reconstruct builds and validates the monodromy. It is idempotent; a singular
// result is remembered and returned again.
func (b *Bigon) Reconstruct(opts Options) error {
	if b.state != MonodromyUninitialized {
		return b.err
	}
	mono, err := MonodromyOf(b.coords, opts.Tolerances())
	if err != nil {
		b.state = MonodromySingular
		b.err = errors.Wrapf(err, "bigon %s", b.coords)
		return b.err
	}
	b.state = MonodromyValid
	b.monodromy = mono
	return nil
}

// Monodromy returns the validated monodromy, ErrMonodromyUninitialized before
// Reconstruct, or the singular matrix error Reconstruct ran into.
func (b *Bigon) Monodromy() (Monodromy, error) {
	switch b.state {
	case MonodromyValid:
		return b.monodromy, nil
	case MonodromySingular:
		return Monodromy{}, b.err
	}
	return Monodromy{}, errors.WithStack(ErrMonodromyUninitialized)
}

// Vertices returns the first count vertices, generated from the validated
// monodromy.
func (b *Bigon) Vertices(count int) ([]projective.Point, error) {
	mono, err := b.Monodromy()
	if err != nil {
		return nil, err
	}
	return extendByMonodromy(mono.T, count).Vertices(count), nil
}

// IsDegenerate reports whether the bigon sits on a known singular locus: a
// corner coordinate that is zero or not finite, a singular monodromy, or a
// monodromy with non-finite entries. It only looks at what is already known
// and has no side effects.
func (b *Bigon) IsDegenerate() bool {
	if !b.coords.Valid() {
		return true
	}
	switch b.state {
	case MonodromySingular:
		return true
	case MonodromyValid:
		return !b.monodromy.T.IsFinite() || !b.monodromy.Dual.IsFinite()
	}
	return false
}

// Invariants are the closed-form monodromy invariants of the coordinates.
func (b *Bigon) Invariants() (omega1, omega2 float64) {
	return b.coords.Invariants()
}

// Apply maps the bigon p times. The result has an uninitialized monodromy.
func (b *Bigon) Apply(m Map, p int) (*Bigon, error) {
	c, err := m.Apply(b.coords, p)
	if err != nil {
		return nil, err
	}
	return BigonFromCoords(c), nil
}

func (b *Bigon) String() string {
	return fmt.Sprintf("%s%s [%s]", dbg.Name(b.coords), b.coords, b.state)
}
