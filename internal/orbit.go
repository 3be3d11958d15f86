package internal

import (
	"context"
	"log/slog"

	"github.com/osuushi/bigon/dbg"
	"github.com/osuushi/bigon/projective"
	"github.com/pkg/errors"
)

// Trajectory is an orbit of corner coordinates. Element 0 is the starting
// point.
type Trajectory []CornerCoords

// Last returns the final point of the trajectory.
func (t Trajectory) Last() CornerCoords {
	if len(t) == 0 {
		fatalf("empty trajectory")
	}
	return t[len(t)-1]
}

// Column extracts coordinate i of every point, the single-float log format.
func (t Trajectory) Column(i int) []float64 {
	result := make([]float64, len(t))
	for j, c := range t {
		result[j] = c[i]
	}
	return result
}

// Independent reports, for every window of five consecutive points, whether
// the points are linearly independent once lifted to R^5. An orbit confined to
// a hyperplane of coordinate space shows up as a run of false.
func (t Trajectory) Independent(tol projective.Tolerances) []bool {
	if len(t) < 5 {
		return nil
	}
	result := make([]bool, len(t)-4)
	for i := range result {
		result[i] = tol.IsLinearlyIndependent(t[i], t[i+1], t[i+2], t[i+3], t[i+4])
	}
	return result
}

// Orbit applies the map one iteration at a time, up to steps iterations. On
// failure the trajectory computed so far is returned together with the error,
// so len(trajectory)-1 is the number of successful iterations.
func (m Map) Orbit(ctx context.Context, start CornerCoords, steps int) (Trajectory, error) {
	if steps < 0 {
		return nil, errors.Errorf("orbit length must be non-negative, got %d", steps)
	}
	trajectory := make(Trajectory, 1, steps+1)
	trajectory[0] = start
	c := start
	for iteration := 1; iteration <= steps; iteration++ {
		if err := ctx.Err(); err != nil {
			return trajectory, errors.WithStack(err)
		}
		next, err := m.Step(c)
		if err != nil {
			if mapErr, ok := AsMapError(err); ok {
				mapErr.Iteration = iteration
			}
			Logger().Debug("orbit degenerated",
				slog.Any("orbit", orbitName(start)),
				slog.String("map", m.String()),
				slog.Int("iteration", iteration),
				slog.Any("error", err))
			return trajectory, err
		}
		trajectory = append(trajectory, next)
		c = next
	}
	Logger().Debug("orbit complete",
		slog.Any("orbit", orbitName(start)),
		slog.String("map", m.String()),
		slog.Int("steps", steps))
	return trajectory, nil
}

// orbitName labels an orbit in debug records. The name is only looked up when
// a record is actually emitted.
type orbitName CornerCoords

func (o orbitName) LogValue() slog.Value {
	return slog.StringValue(dbg.Name(CornerCoords(o)))
}

// OrbitLength is the number of iterations that succeed from start, capped at
// steps. The error is nil when all steps succeed, otherwise it describes the
// failure that ended the orbit.
func (m Map) OrbitLength(ctx context.Context, start CornerCoords, steps int) (int, error) {
	trajectory, err := m.Orbit(ctx, start, steps)
	return len(trajectory) - 1, err
}

const sessionHistoryDepth = 20

// Session applies a fixed map interactively. Every successful Act pushes the
// previous coordinates onto a bounded history that Revert pops.
type Session struct {
	Map Map
	// Power is the number of map iterations performed by each Act.
	Power int

	current    CornerCoords
	iterations int
	history    []sessionEntry
}

type sessionEntry struct {
	coords     CornerCoords
	iterations int
}

func NewSession(m Map, start CornerCoords, power int) (*Session, error) {
	if power < 1 {
		return nil, errors.Errorf("session power must be positive, got %d", power)
	}
	return &Session{Map: m, Power: power, current: start}, nil
}

func (s *Session) Current() CornerCoords { return s.current }

// Iterations counts single map iterations applied so far, net of reverts.
func (s *Session) Iterations() int { return s.iterations }

// Act applies the map Power times. On failure the session is unchanged.
func (s *Session) Act() (CornerCoords, error) {
	next, err := s.Map.Apply(s.current, s.Power)
	if err != nil {
		return s.current, err
	}
	if len(s.history) == sessionHistoryDepth {
		s.history = append(s.history[:0], s.history[1:]...)
	}
	s.history = append(s.history, sessionEntry{coords: s.current, iterations: s.iterations})
	s.current = next
	s.iterations += s.Power
	return next, nil
}

func (s *Session) CanRevert() bool {
	return len(s.history) > 0
}

// Revert undoes the last Act. It reports false when there is nothing to undo.
func (s *Session) Revert() bool {
	if !s.CanRevert() {
		return false
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.current = last.coords
	s.iterations = last.iterations
	return true
}

func (s *Session) ClearHistory() {
	s.history = s.history[:0]
}

// Reset jumps to new coordinates, clearing history and the iteration count.
func (s *Session) Reset(c CornerCoords) {
	s.current = c
	s.iterations = 0
	s.ClearHistory()
}
