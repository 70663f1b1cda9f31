package gcode

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestWriter(t *testing.T) {
	var b bytes.Buffer
	gw := NewWriter(&b, &Config{PenUp: 40, FeedRate: 800})
	gw.Preamble()
	gw.Move(1, 2)
	gw.Line(3, 2)
	gw.Line(3, 4)
	gw.Arc(5, 6, 2, 0, true)
	gw.Move(0, 1)
	gw.Arc(1, 0, 0, -1, false)
	gw.Postamble()
	if err := gw.Flush(); err != nil {
		t.Fatalf("Flush() = %v", err)
	}
	got := strings.Split(strings.TrimSpace(b.String()), "\n")
	want := []string{
		"G21",
		"G90",
		"M3 S40",
		"G0 X1.000 Y2.000",
		"M3 S0",
		"G1 X3.000 Y2.000 F800",
		"G1 X3.000 Y4.000 F800",
		"G3 X5.000 Y6.000 I2.000 J0.000 F800",
		"M3 S40",
		"G0 X0.000 Y1.000",
		"M3 S0",
		"G2 X1.000 Y0.000 I0.000 J-1.000 F800",
		"M3 S40",
		"G0 X0 Y0",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("gcode output:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

type failWriter struct{ n int }

func (fw *failWriter) Write(p []byte) (int, error) {
	fw.n++
	return 0, errors.New("disk full")
}

func TestWriterStickyError(t *testing.T) {
	fw := &failWriter{}
	gw := NewWriter(fw, &Config{PenUp: 40, FeedRate: 800})
	gw.Preamble()
	for i := 0; i < 10000; i++ {
		gw.Line(float64(i), 0)
	}
	if err := gw.Flush(); err == nil {
		t.Errorf("Flush() succeeded writing to a failing writer")
	}
	if fw.n != 1 {
		t.Errorf("underlying writer called %d times after failure, want 1", fw.n)
	}
}
