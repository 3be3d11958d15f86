package projective

import (
	"embed"
	"log"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
)

// This file parses the svg fixtures and outputs polygons. This is not a full
// (or even correct) svg parser. It finds the first polygon in the file and
// lifts its points to the affine patch z = 1. If anything goes wrong, it
// exits the test binary.
//
// Fixtures are available by name in the fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) []Point {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	polygons := rootEl.FindAll("polygon")
	if len(polygons) != 1 {
		log.Fatalf("Expected exactly one polygon in fixture %q, found %d", name, len(polygons))
	}

	pointStrings := strings.Fields(polygons[0].Attributes["points"])
	points := make([]Point, 0, len(pointStrings))
	for _, pointString := range pointStrings {
		parts := strings.Split(pointString, ",")
		if len(parts) != 2 {
			log.Fatalf("Invalid point string %q", pointString)
		}
		x, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			log.Fatalf("Invalid x value %q: %v", parts[0], err)
		}
		y, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			log.Fatalf("Invalid y value %q: %v", parts[1], err)
		}
		points = append(points, AffinePt(x, y))
	}
	return points
}
