package internal

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/bigon/projective"
	"github.com/pkg/errors"
)

// CornerCoords are the four corner invariants (x0, x1, x2, x3) of a twisted
// bigon. They determine the bigon up to projective equivalence. Being an
// array, a CornerCoords is a value and is never shared between bigons.
type CornerCoords [4]float64

func Coords(x0, x1, x2, x3 float64) CornerCoords {
	return CornerCoords{x0, x1, x2, x3}
}

// Check returns the index of the first coordinate that is not finite or is
// zero, or -1 when all four are usable.
func (c CornerCoords) Check() int {
	for i, x := range c {
		if !projective.IsFinite(x) || x == 0 {
			return i
		}
	}
	return -1
}

func (c CornerCoords) Valid() bool {
	return c.Check() < 0
}

// Distance is the l2 distance between two coordinate tuples.
func (c CornerCoords) Distance(o CornerCoords) float64 {
	var sum float64
	for i := range c {
		d := c[i] - o[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Invariants returns the two monodromy invariants in closed form:
//
//	Ω₁ = (1 - x1 - x3)³ / ((x1 x3)² x0 x2)
//	Ω₂ = (1 - x0 - x2)³ / ((x0 x2)² x1 x3)
//
// They equal tr(T)³/det(T) and tr(T*)³/det(T*) for the monodromy T and its
// dual, and are preserved by the bigon maps.
func (c CornerCoords) Invariants() (omega1, omega2 float64) {
	x0, x1, x2, x3 := c[0], c[1], c[2], c[3]
	omega1 = math.Pow(1-x1-x3, 3) / (math.Pow(x1*x3, 2) * x0 * x2)
	omega2 = math.Pow(1-x0-x2, 3) / (math.Pow(x0*x2, 2) * x1 * x3)
	return omega1, omega2
}

func (c CornerCoords) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", c[0], c[1], c[2], c[3])
}

// Pretty colours usable coordinates green and degenerate ones red.
func (c CornerCoords) Pretty() string {
	parts := make([]string, len(c))
	for i, x := range c {
		if !projective.IsFinite(x) || x == 0 {
			parts[i] = aurora.Red(x).String()
		} else {
			parts[i] = aurora.Green(x).String()
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// MarshalText writes "x0,x1,x2,x3" with full precision.
func (c CornerCoords) MarshalText() ([]byte, error) {
	return []byte(c.Columns(0, 1, 2, 3)), nil
}

func (c *CornerCoords) UnmarshalText(text []byte) error {
	parsed, err := ParseCornerCoords(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Columns joins the selected coordinates with commas, e.g. Columns(2, 3)
// gives the "x2,x3" pairs of the boundary logs.
func (c CornerCoords) Columns(cols ...int) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = strconv.FormatFloat(c[col], 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// ParseCornerCoords accepts four numbers separated by commas and/or
// whitespace.
func ParseCornerCoords(s string) (CornerCoords, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	var c CornerCoords
	if len(fields) != len(c) {
		return c, errors.Errorf("expected 4 corner coordinates, got %d in %q", len(fields), s)
	}
	for i, field := range fields {
		x, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return c, errors.Wrapf(err, "corner coordinate x%d", i)
		}
		c[i] = x
	}
	return c, nil
}

// ReadCornerCoords reads one tuple per line, skipping blank lines and lines
// starting with '#'.
func ReadCornerCoords(r io.Reader) ([]CornerCoords, error) {
	var result []CornerCoords
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c, err := ParseCornerCoords(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
		result = append(result, c)
	}
	return result, errors.WithStack(scanner.Err())
}

// WriteColumns writes one line per tuple containing the selected columns, in
// the plain delimited format consumed by the plotting scripts: a single float
// per line, or "x2,x3" pairs.
func WriteColumns(w io.Writer, coords []CornerCoords, cols ...int) error {
	bw := bufio.NewWriter(w)
	for _, c := range coords {
		if _, err := fmt.Fprintln(bw, c.Columns(cols...)); err != nil {
			return errors.WithStack(err)
		}
	}
	return errors.WithStack(bw.Flush())
}

// WritePairs writes the "x2,x3" pair of every tuple.
func WritePairs(w io.Writer, coords []CornerCoords) error {
	return WriteColumns(w, coords, 2, 3)
}
