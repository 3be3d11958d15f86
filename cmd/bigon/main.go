package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/kr/pretty"
	"github.com/logrusorgru/aurora"
	"github.com/osuushi/bigon/internal"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Command line front end for the bigon map engine. Coordinates are given as
// four positional numbers; results are printed as "x0,x1,x2,x3" lines so they
// can be piped into the plotting scripts.

var (
	app        = kingpin.New("bigon", "Iterate bigon maps on corner coordinates.")
	configPath = app.Flag("config", "YAML options file.").ExistingFile()
	verbose    = app.Flag("verbose", "Log engine internals to stderr.").Short('v').Bool()

	apply       = app.Command("apply", "Apply T(k,l) p times.")
	applyCoords = coordsArgs(apply)
	applyK      = apply.Flag("k", "Diagonal offset k.").Default("1").Int()
	applyL      = apply.Flag("l", "Diagonal length l.").Default("3").Int()
	applyP      = apply.Flag("p", "Number of iterations.").Default("1").Int()

	orbit       = app.Command("orbit", "Print the orbit of T(k,l), one point per line.")
	orbitCoords = coordsArgs(orbit)
	orbitK      = orbit.Flag("k", "Diagonal offset k.").Default("1").Int()
	orbitL      = orbit.Flag("l", "Diagonal length l.").Default("3").Int()
	orbitSteps  = orbit.Flag("steps", "Maximum number of iterations.").Default("100").Int()
	orbitColumn = orbit.Flag("column", "Only print this coordinate.").Default("-1").Int()
	orbitIndep  = orbit.Flag("independence", "Report which windows of five points are in general position.").Bool()

	batch  = app.Command("batch", "Apply T(k,l) p times to every tuple read from stdin.")
	batchK = batch.Flag("k", "Diagonal offset k.").Default("1").Int()
	batchL = batch.Flag("l", "Diagonal length l.").Default("3").Int()
	batchP = batch.Flag("p", "Number of iterations.").Default("1").Int()

	info       = app.Command("info", "Show monodromy, eigenvalues and invariants.")
	infoCoords = coordsArgs(info)
	infoDump   = info.Flag("dump", "Dump the raw monodromy struct.").Bool()

	scan        = app.Command("scan", "Print the (x2,x3) points whose orbit degenerates.")
	scanX0      = scan.Arg("x0", "Fixed x0.").Required().Float64()
	scanX1      = scan.Arg("x1", "Fixed x1.").Required().Float64()
	scanK       = scan.Flag("k", "Diagonal offset k.").Default("1").Int()
	scanL       = scan.Flag("l", "Diagonal length l.").Default("3").Int()
	scanSteps   = scan.Flag("steps", "Orbit length bound.").Default("20").Int()
	scanMin     = scan.Flag("min", "Lower end of the grid.").Default("-2").Float64()
	scanMax     = scan.Flag("max", "Upper end of the grid.").Default("2").Float64()
	scanN       = scan.Flag("n", "Samples per axis.").Default("100").Int()
	scanWorkers = scan.Flag("workers", "Parallel workers, 0 for one per CPU.").Default("0").Int()

	draw       = app.Command("draw", "Render reconstructed vertices to a PNG.")
	drawCoords = coordsArgs(draw)
	drawL      = draw.Flag("l", "Diagonal length used to pick the strategy.").Default("3").Int()
	drawCount  = draw.Flag("count", "Number of vertices.").Default("12").Int()
	drawScale  = draw.Flag("scale", "Pixels per unit.").Default("100").Float64()
	drawOut    = draw.Flag("out", "Output PNG path.").Default("bigon.png").String()
	drawShow   = draw.Flag("show", "Display the image inline in the terminal.").Bool()
)

func coordsArgs(cmd *kingpin.CmdClause) *[]float64 {
	return cmd.Arg("coords", "Corner coordinates x0 x1 x2 x3.").Required().Float64List()
}

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	internal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	opts := internal.DefaultOptions()
	if *configPath != "" {
		var err error
		opts, err = internal.LoadOptionsFile(*configPath)
		app.FatalIfError(err, "config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch command {
	case apply.FullCommand():
		m := newMap(*applyK, *applyL, opts)
		result, err := m.ApplyContext(ctx, parseCoords(*applyCoords), *applyP)
		exitOnMapError(err)
		fmt.Println(result.Columns(0, 1, 2, 3))

	case orbit.FullCommand():
		m := newMap(*orbitK, *orbitL, opts)
		trajectory, err := m.Orbit(ctx, parseCoords(*orbitCoords), *orbitSteps)
		var werr error
		if *orbitColumn >= 0 {
			app.FatalIfError(checkColumn(*orbitColumn), "")
			werr = internal.WriteColumns(os.Stdout, trajectory, *orbitColumn)
		} else {
			werr = internal.WriteColumns(os.Stdout, trajectory, 0, 1, 2, 3)
		}
		app.FatalIfError(werr, "writing orbit")
		if *orbitIndep {
			for i, independent := range trajectory.Independent(opts.Tolerances()) {
				fmt.Fprintf(os.Stderr, "points %d-%d independent: %t\n", i, i+4, independent)
			}
		}
		exitOnMapError(err)

	case batch.FullCommand():
		m := newMap(*batchK, *batchL, opts)
		inputs, err := internal.ReadCornerCoords(os.Stdin)
		app.FatalIfError(err, "reading coordinates")
		results, failures, err := m.ApplyEach(ctx, inputs, *batchP)
		app.FatalIfError(err, "")
		for i, err := range failures {
			if mapErr, ok := internal.AsMapError(err); ok {
				fmt.Fprintf(os.Stderr, "tuple %d: %s\n", i+1, mapErr.Pretty())
			}
		}
		app.FatalIfError(internal.WriteColumns(os.Stdout, results, 0, 1, 2, 3), "writing results")

	case info.FullCommand():
		b := internal.BigonFromCoords(parseCoords(*infoCoords))
		printInfo(b, opts, *infoDump)

	case scan.FullCommand():
		m := newMap(*scanK, *scanL, opts)
		results, err := internal.BoundaryScan(ctx, m, internal.ScanConfig{
			X0:      *scanX0,
			X1:      *scanX1,
			Min:     *scanMin,
			Max:     *scanMax,
			N:       *scanN,
			Steps:   *scanSteps,
			Workers: *scanWorkers,
		})
		app.FatalIfError(err, "scan")
		app.FatalIfError(internal.WriteBoundary(os.Stdout, results), "writing boundary")

	case draw.FullCommand():
		vertices, err := internal.Reconstruct(parseCoords(*drawCoords), *drawL, *drawCount, opts)
		app.FatalIfError(err, "reconstruct")
		app.FatalIfError(internal.DrawVertices(*drawOut, vertices, *drawScale, opts.AffineEpsilon), "draw")
		if *drawShow {
			internal.ShowImage(*drawOut, os.Stdout)
		}
	}
}

func newMap(k, l int, opts internal.Options) internal.Map {
	m, err := internal.NewMap(k, l, opts)
	app.FatalIfError(err, "map")
	return m
}

func parseCoords(values []float64) internal.CornerCoords {
	var c internal.CornerCoords
	if len(values) != len(c) {
		app.Fatalf("expected 4 corner coordinates, got %d", len(values))
	}
	copy(c[:], values)
	return c
}

func checkColumn(col int) error {
	if col > 3 {
		return errors.Errorf("column must be between 0 and 3, got %d", col)
	}
	return nil
}

func exitOnMapError(err error) {
	if err == nil {
		return
	}
	if mapErr, ok := internal.AsMapError(err); ok {
		fmt.Fprintln(os.Stderr, mapErr.Pretty())
		os.Exit(2)
	}
	app.FatalIfError(err, "")
}

func printInfo(b *internal.Bigon, opts internal.Options, dump bool) {
	c := b.Coords()
	fmt.Printf("coords      %s\n", c.Pretty())
	omega1, omega2 := b.Invariants()
	fmt.Printf("invariants  Ω₁=%g Ω₂=%g\n", omega1, omega2)
	fmt.Printf("distance    %g from the regular 9-gon\n", c.Distance(internal.DefaultBigon().Coords()))

	if err := b.Reconstruct(opts); err != nil {
		fmt.Printf("monodromy   %s: %v\n", aurora.Red("singular"), err)
		fmt.Printf("degenerate  %t\n", b.IsDegenerate())
		return
	}
	mono, _ := b.Monodromy()
	fmt.Printf("monodromy   %s\n", mono.T)
	fmt.Printf("dual        %s\n", mono.Dual)
	fmt.Printf("eigenvalues %v\n", mono.Eigenvalues)
	fromT1, fromT2 := mono.Invariants()
	fmt.Printf("from T      Ω₁=%g Ω₂=%g\n", fromT1, fromT2)
	fmt.Printf("normalized  %s\n", mono.Normalized())
	fmt.Printf("degenerate  %t\n", b.IsDegenerate())
	if dump {
		pretty.Println(mono)
	}
}
