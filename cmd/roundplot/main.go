package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/paulhankin/roundplot/cmd/roundplot/roundplot"
	"github.com/paulhankin/roundplot/corner"
	"github.com/paulhankin/roundplot/paths"
	"github.com/paulhankin/roundplot/render"
)

type flagSizeValue paths.Vec2

func (fs *flagSizeValue) String() string {
	return fmt.Sprintf("%.2f,%.2f", fs[0], fs[1])
}

func parseSizePart(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func (fs *flagSizeValue) Set(s string) error {
	var err error
	parts := strings.Split(s, ",")
	if len(parts) == 1 {
		fs[0], err = parseSizePart(parts[0])
		return err
	}
	if len(parts) > 2 {
		return fmt.Errorf("can't parse %q as size", s)
	}
	if fs[0], err = parseSizePart(parts[0]); err != nil {
		return err
	}
	if fs[1], err = parseSizePart(parts[1]); err != nil {
		return err
	}
	return nil
}

// flags
var (
	flagIn      string
	flagFullSVG bool
	flagRadius  float64
	flagOut     string

	flagDebug   bool
	flagTrace   bool
	flagColor   bool
	flagImgcat  bool
	flagVerbose bool

	flagDelta     flagSizeValue
	flagSize      flagSizeValue
	flagPaperSize flagSizeValue
	flagCenter    bool

	flagPenUp      int
	flagFeedRate   int
	flagNativeArcs bool

	flagTol      float64
	flagSimplify float64
	flagSort     bool
	flagScale    float64
)

func init() {
	flag.StringVar(&flagIn, "in", "", "input file: svg, or text with one x y [r] point per line")
	flag.BoolVar(&flagFullSVG, "svg-full", false, "parse svg input with the full parser (curves, relative paths)")
	flag.Float64Var(&flagRadius, "radius", 1, "corner radius for points that don't give one")
	flag.StringVar(&flagOut, "out", "", "output file: .svg, .png or .gcode")

	flag.BoolVar(&flagDebug, "debug", false, "draw construction geometry")
	flag.BoolVar(&flagTrace, "trace", false, "list drawn primitives on stdout")
	flag.BoolVar(&flagColor, "color", false, "colour the -trace output")
	flag.BoolVar(&flagImgcat, "imgcat", false, "show png output in the terminal")
	flag.BoolVar(&flagVerbose, "v", false, "verbose logging")

	flag.Var(&flagDelta, "offset", "displacement of 0,0 from pen origin")
	flag.Var(&flagSize, "size", "target size of image (mm)")
	flag.Var(&flagPaperSize, "paper", "target size of paper (mm)")
	flag.BoolVar(&flagCenter, "center", false, "if set, center image on paper")

	flag.IntVar(&flagPenUp, "penup", 40, "how much to lift pen when moving")
	flag.IntVar(&flagFeedRate, "feed", 800, "feed rate when drawing (mm/min)")
	flag.BoolVar(&flagNativeArcs, "native-arcs", false, "write arcs as G2/G3 rather than line segments")

	flag.Float64Var(&flagTol, "tol", render.DefaultTolerance, "maximum error when flattening arcs")
	flag.Float64Var(&flagSimplify, "simplify", 0, "if positive, simplify paths to this tolerance")
	flag.BoolVar(&flagSort, "sort", false, "reorder paths to reduce pen-up travel")
	flag.Float64Var(&flagScale, "scale", 10, "png pixels per unit")
}

func main() {
	fail := func(s string, args ...interface{}) {
		fmt.Fprintf(os.Stderr, "roundplot: "+s+"\n", args...)
		os.Exit(1)
	}

	flag.Parse()
	if flagIn == "" {
		fail("must specify -in <file>")
	}
	if flagVerbose {
		corner.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	err := roundplot.Run(&roundplot.Config{
		In:      flagIn,
		Out:     flagOut,
		FullSVG: flagFullSVG,
		Radius:  flagRadius,

		Debug:  flagDebug,
		Trace:  flagTrace,
		Color:  flagColor,
		Imgcat: flagImgcat,
		Stdout: os.Stdout,

		Delta:     paths.Vec2(flagDelta),
		Size:      paths.Vec2(flagSize),
		PaperSize: paths.Vec2(flagPaperSize),
		Center:    flagCenter,

		PenUp:      flagPenUp,
		FeedRate:   flagFeedRate,
		NativeArcs: flagNativeArcs,

		Tol:      flagTol,
		Simplify: flagSimplify,
		Sort:     flagSort,
		Scale:    flagScale,
	})
	if err != nil {
		fail("%v", err)
	}
}
