package grid

import (
	"reflect"
	"testing"
)

func TestNormalizeLines_Horizontal(t *testing.T) {
	region := Rect{X1: 100, Y1: 200, X2: 500, Y2: 600}
	segs := []Segment{
		{X1: 10, Y1: 300, X2: 250, Y2: 300},
		{X1: 0, Y1: 100, X2: 390, Y2: 100},
	}

	got := NormalizeLines(region, segs, Horizontal, DefaultConfig())
	want := []Segment{
		{X1: 100, Y1: 300, X2: 500, Y2: 300},
		{X1: 100, Y1: 500, X2: 500, Y2: 500},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeLines: got %v, want %v", got, want)
	}
}

func TestNormalizeLines_Vertical(t *testing.T) {
	region := Rect{X1: 100, Y1: 200, X2: 500, Y2: 600}
	segs := []Segment{
		{X1: 250, Y1: 5, X2: 250, Y2: 390},
		{X1: 50, Y1: 0, X2: 50, Y2: 200},
	}

	got := NormalizeLines(region, segs, Vertical, DefaultConfig())
	want := []Segment{
		{X1: 150, Y1: 200, X2: 150, Y2: 600},
		{X1: 350, Y1: 200, X2: 350, Y2: 600},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeLines: got %v, want %v", got, want)
	}
}

func TestNormalizeLines_BoundaryRejected(t *testing.T) {
	region := Rect{X1: 0, Y1: 540, X2: 1920, Y2: 1080}

	tests := []struct {
		name string
		seg  Segment
		axis Axis
	}{
		{"top edge", Segment{X1: 0, Y1: 0, X2: 959, Y2: 0}, Horizontal},
		{"bottom edge", Segment{X1: 0, Y1: 540, X2: 959, Y2: 540}, Horizontal},
		{"left edge", Segment{X1: 0, Y1: 0, X2: 0, Y2: 539}, Vertical},
		{"right edge", Segment{X1: 1920, Y1: 0, X2: 1920, Y2: 539}, Vertical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeLines(region, []Segment{tt.seg}, tt.axis, DefaultConfig())
			if len(got) != 0 {
				t.Errorf("expected boundary line to be rejected, got %v", got)
			}
		})
	}
}

func TestNormalizeLines_Empty(t *testing.T) {
	got := NormalizeLines(Rect{X2: 10, Y2: 10}, nil, Horizontal, DefaultConfig())
	if len(got) != 0 {
		t.Errorf("expected no lines, got %v", got)
	}
}

func TestNormalizeLines_LegacyKeepsNearDuplicates(t *testing.T) {
	region := Rect{X1: 0, Y1: 0, X2: 1920, Y2: 1080}
	segs := []Segment{
		{X1: 0, Y1: 541, X2: 1900, Y2: 541},
		{X1: 0, Y1: 539, X2: 1900, Y2: 539},
		{X1: 0, Y1: 540, X2: 1900, Y2: 540},
		{X1: 0, Y1: 800, X2: 1900, Y2: 800},
	}

	got := NormalizeLines(region, segs, Horizontal, DefaultConfig())

	var ys []int
	for _, l := range got {
		ys = append(ys, l.Y1)
	}
	want := []int{539, 540, 541, 800}
	if !reflect.DeepEqual(ys, want) {
		t.Errorf("legacy normalization: got %v, want %v", ys, want)
	}
}

func TestNormalizeLines_DedupEnabled(t *testing.T) {
	region := Rect{X1: 0, Y1: 0, X2: 1920, Y2: 1080}
	segs := []Segment{
		{X1: 0, Y1: 541, X2: 1900, Y2: 541},
		{X1: 0, Y1: 539, X2: 1900, Y2: 539},
		{X1: 0, Y1: 540, X2: 1900, Y2: 540},
		{X1: 0, Y1: 542, X2: 1900, Y2: 542},
		{X1: 0, Y1: 800, X2: 1900, Y2: 800},
	}

	cfg := DefaultConfig()
	cfg.Dedup = true
	got := NormalizeLines(region, segs, Horizontal, cfg)

	var ys []int
	for _, l := range got {
		ys = append(ys, l.Y1)
	}
	// 542 is 3px past the last kept line (539) and survives.
	want := []int{539, 542, 800}
	if !reflect.DeepEqual(ys, want) {
		t.Errorf("dedup normalization: got %v, want %v", ys, want)
	}
}

func TestDedupLines_Tolerance(t *testing.T) {
	lines := []Segment{
		{X1: 10, X2: 10}, {X1: 12, X2: 12}, {X1: 13, X2: 13}, {X1: 20, X2: 20},
	}

	tests := []struct {
		tolerance int
		want      []int
	}{
		{0, []int{10, 12, 13, 20}},
		{2, []int{10, 13, 20}},
		{10, []int{10}},
	}

	for _, tt := range tests {
		got := dedupLines(lines, Vertical, tt.tolerance)
		var xs []int
		for _, l := range got {
			xs = append(xs, l.X1)
		}
		if !reflect.DeepEqual(xs, tt.want) {
			t.Errorf("tolerance %d: got %v, want %v", tt.tolerance, xs, tt.want)
		}
	}
}
