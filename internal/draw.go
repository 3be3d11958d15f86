package internal

import (
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/jbeda/geom"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/bigon/projective"
	"github.com/pkg/errors"
)

// Debug rendering of vertex sequences. Vertices at infinity break the polyline.

const (
	dbgDrawPadding = 20
	// Far vertices shrink the scale rather than grow the canvas past this.
	dbgDrawMaxSize = 4096
)

// DebugDrawEnv names the environment variable that makes tests render the
// vertex sequences they reconstruct.
const DebugDrawEnv = "BIGON_DEBUG_DRAW"

// DrawVertices renders the affine vertices as a polyline, first vertex
// highlighted, scaled by scale pixels per unit, and saves a PNG to path.
func DrawVertices(path string, vertices []projective.Point, scale float64, affineEps float64) error {
	affine := make([]geom.Coord, len(vertices))
	onPatch := make([]bool, len(vertices))
	var bounds geom.Rect
	empty := true
	for i, v := range vertices {
		x, y, ok := v.Affine(affineEps)
		if !ok {
			continue
		}
		affine[i] = geom.Coord{X: x, Y: y}
		onPatch[i] = true
		if empty {
			bounds = geom.Rect{Min: affine[i], Max: affine[i]}
			empty = false
		} else {
			bounds.ExpandToContainCoord(affine[i])
		}
	}
	if empty {
		return errors.New("no vertex lies on the affine patch")
	}

	if extent := math.Max(bounds.Width(), bounds.Height()); scale*extent > dbgDrawMaxSize {
		scale = dbgDrawMaxSize / extent
	}
	width := int(scale*bounds.Width()) + dbgDrawPadding*2
	height := int(scale*bounds.Height()) + dbgDrawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Origin at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(dbgDrawPadding, dbgDrawPadding)
	c.Scale(scale, scale)
	c.Translate(-bounds.Min.X, -bounds.Min.Y)

	c.SetLineWidth(2)
	penDown := false
	for i, p := range affine {
		if !onPatch[i] {
			penDown = false
			continue
		}
		if penDown {
			c.LineTo(p.X, p.Y)
		} else {
			c.MoveTo(p.X, p.Y)
			penDown = true
		}
	}
	c.SetRGB(0, 1, 1)
	c.Stroke()

	for i, p := range affine {
		if !onPatch[i] {
			continue
		}
		if i == 0 {
			c.SetRGB(1, 0.3, 0.3)
		} else {
			c.SetRGB(1, 1, 1)
		}
		c.DrawCircle(p.X, p.Y, 4/scale)
		c.Fill()
	}

	return errors.Wrapf(c.SavePNG(path), "saving %s", path)
}

// ShowImage writes the image at path to w with the iTerm inline image escape.
func ShowImage(path string, w io.Writer) {
	imgcat.CatFile(path, w)
}

// dbgDraw renders the vertices to a temp file and shows them on stdout.
func dbgDraw(vertices []projective.Point, scale float64) {
	const path = "/tmp/bigon_vertices.png"
	if err := DrawVertices(path, vertices, scale, DefaultOptions().AffineEpsilon); err != nil {
		Logger().Warn("debug draw failed", "error", err)
		return
	}
	ShowImage(path, os.Stdout)
}
