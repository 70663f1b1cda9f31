// Package gcode writes gcode for a pen plotter: a machine with a pen
// that is raised by a servo to move and lowered to draw.
package gcode

import (
	"bufio"
	"fmt"
	"io"
)

// Config describes the plotter.
type Config struct {
	PenUp    int // servo value that lifts the pen
	FeedRate int // drawing speed (mm/min)
}

// A Writer writes gcode commands. Write errors are sticky: once a
// write fails, later commands are dropped and Flush reports the error.
type Writer struct {
	w    *bufio.Writer
	cfg  Config
	err  error
	down bool
	pos  [2]float64
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer, cfg *Config) *Writer {
	return &Writer{w: bufio.NewWriter(w), cfg: *cfg}
}

func (gw *Writer) printf(f string, args ...interface{}) {
	if gw.err != nil {
		return
	}
	_, gw.err = fmt.Fprintf(gw.w, f+"\n", args...)
}

func (gw *Writer) penUp() {
	if gw.down {
		gw.printf("M3 S%d", gw.cfg.PenUp)
		gw.down = false
	}
}

func (gw *Writer) penDown() {
	if !gw.down {
		gw.printf("M3 S0")
		gw.down = true
	}
}

// Preamble sets millimetre units and absolute coordinates, and lifts
// the pen.
func (gw *Writer) Preamble() {
	gw.printf("G21")
	gw.printf("G90")
	gw.printf("M3 S%d", gw.cfg.PenUp)
	gw.down = false
}

// Move lifts the pen, if needed, and moves it to x, y.
func (gw *Writer) Move(x, y float64) {
	gw.penUp()
	gw.printf("G0 X%.3f Y%.3f", x, y)
	gw.pos = [2]float64{x, y}
}

// Line draws a straight line from the current position to x, y.
func (gw *Writer) Line(x, y float64) {
	gw.penDown()
	gw.printf("G1 X%.3f Y%.3f F%d", x, y, gw.cfg.FeedRate)
	gw.pos = [2]float64{x, y}
}

// Arc draws a circular arc from the current position to x, y around
// the centre at offset i, j from the current position. If ccw is set,
// the arc runs counterclockwise in a frame where y points up.
func (gw *Writer) Arc(x, y, i, j float64, ccw bool) {
	gw.penDown()
	g := 2
	if ccw {
		g = 3
	}
	gw.printf("G%d X%.3f Y%.3f I%.3f J%.3f F%d", g, x, y, i, j, gw.cfg.FeedRate)
	gw.pos = [2]float64{x, y}
}

// Pos returns the current position of the pen.
func (gw *Writer) Pos() (x, y float64) {
	return gw.pos[0], gw.pos[1]
}

// Postamble lifts the pen and returns it to the origin.
func (gw *Writer) Postamble() {
	gw.penUp()
	gw.printf("G0 X0 Y0")
	gw.pos = [2]float64{}
}

// Flush writes any buffered gcode, and returns the first error
// encountered while writing.
func (gw *Writer) Flush() error {
	if gw.err != nil {
		return gw.err
	}
	return gw.w.Flush()
}
