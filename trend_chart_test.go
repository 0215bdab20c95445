package main

import (
	"math"
	"strings"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestMapTrend_EmptyWindow(t *testing.T) {
	if _, ok := mapTrend(nil, 2000, 600, 240); ok {
		t.Error("expected ok=false (no data) for an empty window")
	}
}

// TestMapTrend_SinglePointCentered verifies a lone record sits in the middle of
// the plot horizontally.
func TestMapTrend_SinglePointCentered(t *testing.T) {
	chart, ok := mapTrend([]DailyRecord{record("2026-10-01", 2000)}, 2000, 600, 240)
	if !ok {
		t.Fatal("expected data")
	}
	if len(chart.Points) != 1 || chart.Points[0].X != 300 {
		t.Fatalf("points = %+v, want one point at x=300", chart.Points)
	}
	if len(chart.Segments) != 0 {
		t.Errorf("single point should have no curve segments, got %d", len(chart.Segments))
	}
	if !strings.HasPrefix(chart.LinePath, "M 300 ") {
		t.Errorf("line path = %q", chart.LinePath)
	}
}

func TestMapTrend_Scaling(t *testing.T) {
	records := []DailyRecord{
		record("2026-10-01", 1000),
		record("2026-10-02", 2000),
		record("2026-10-03", 3000),
	}
	chart, _ := mapTrend(records, 2500, 600, 230)

	wantMax := 3000 * 1.15
	if !approx(chart.MaxValue, wantMax) {
		t.Errorf("max value = %f, want %f", chart.MaxValue, wantMax)
	}
	wantX := []float64{0, 300, 600}
	for i, p := range chart.Points {
		if p.X != wantX[i] {
			t.Errorf("point %d x = %f, want %f", i, p.X, wantX[i])
		}
		wantY := 230 - float64(records[i].CaloriesIntake)/wantMax*230
		if !approx(p.Y, wantY) {
			t.Errorf("point %d y = %f, want %f", i, p.Y, wantY)
		}
		if p.Date != records[i].Date || p.Intake != records[i].CaloriesIntake {
			t.Errorf("point %d lost its source record: %+v", i, p)
		}
	}
	// Highest value plots highest (smallest y) and never touches the top edge.
	if !(chart.Points[2].Y < chart.Points[1].Y && chart.Points[1].Y < chart.Points[0].Y) {
		t.Errorf("y must be inverted: %+v", chart.Points)
	}
	if chart.Points[2].Y <= 0 {
		t.Error("peak point should keep headroom above it")
	}
	if !approx(chart.TDEEY, 230-2500/wantMax*230) {
		t.Errorf("tdee y = %f", chart.TDEEY)
	}
}

// TestMapTrend_TDEEDrivesScale verifies the reference line is included in the
// max when it exceeds every intake.
func TestMapTrend_TDEEDrivesScale(t *testing.T) {
	chart, _ := mapTrend([]DailyRecord{record("2026-10-01", 1000), record("2026-10-02", 1200)}, 4000, 100, 100)
	if !approx(chart.MaxValue, 4000*1.15) {
		t.Errorf("max value = %f, want %f", chart.MaxValue, 4000*1.15)
	}
	if chart.TDEEY <= 0 {
		t.Error("TDEE line should sit below the top edge")
	}
}

func TestMapTrend_AllZero(t *testing.T) {
	chart, ok := mapTrend([]DailyRecord{record("2026-10-01", 0), record("2026-10-02", 0)}, 0, 100, 50)
	if !ok {
		t.Fatal("zero-valued records are still data")
	}
	for _, p := range chart.Points {
		if p.Y != 50 || math.IsNaN(p.Y) {
			t.Errorf("zero values should sit on the baseline, got %+v", p)
		}
	}
}

// TestCatmullRomSegments checks the 1/6 neighbour-difference control points
// and clamped endpoints.
func TestCatmullRomSegments(t *testing.T) {
	pts := []ChartPoint{{X: 0, Y: 60}, {X: 60, Y: 0}, {X: 120, Y: 30}}
	segs := catmullRomSegments(pts)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}

	// Segment 0: p0 clamped to p1=(0,60); p2=(60,0); p3=(120,30).
	s0 := segs[0]
	if !approx(s0.C1.X, 10) || !approx(s0.C1.Y, 50) {
		t.Errorf("seg0 c1 = %+v, want (10,50)", s0.C1)
	}
	if !approx(s0.C2.X, 40) || !approx(s0.C2.Y, 5) {
		t.Errorf("seg0 c2 = %+v, want (40,5)", s0.C2)
	}
	if s0.End != (vec{60, 0}) {
		t.Errorf("seg0 end = %+v", s0.End)
	}

	// Segment 1: p0=(0,60); p1=(60,0); p2=(120,30); p3 clamped to p2.
	s1 := segs[1]
	if !approx(s1.C1.X, 80) || !approx(s1.C1.Y, -5) {
		t.Errorf("seg1 c1 = %+v, want (80,-5)", s1.C1)
	}
	if !approx(s1.C2.X, 110) || !approx(s1.C2.Y, 25) {
		t.Errorf("seg1 c2 = %+v, want (110,25)", s1.C2)
	}

	// Tangent continuity at the interior point: c2 of seg0, p1, c1 of seg1 are collinear.
	ax, ay := pts[1].X-s0.C2.X, pts[1].Y-s0.C2.Y
	bx, by := s1.C1.X-pts[1].X, s1.C1.Y-pts[1].Y
	if !approx(ax*by-ay*bx, 0) {
		t.Error("tangent is not continuous at the interior point")
	}
}

func TestMapTrend_Paths(t *testing.T) {
	chart, _ := mapTrend([]DailyRecord{record("2026-10-01", 1000), record("2026-10-02", 2000)}, 0, 100, 50)
	if strings.Count(chart.LinePath, " C ") != 1 {
		t.Errorf("line path should have one cubic segment: %q", chart.LinePath)
	}
	if !strings.HasPrefix(chart.AreaPath, chart.LinePath) {
		t.Error("area path should start with the curve")
	}
	if !strings.HasSuffix(chart.AreaPath, "L 100 50 L 0 50 Z") {
		t.Errorf("area path should close along the baseline: %q", chart.AreaPath)
	}
}

func TestNum(t *testing.T) {
	cases := map[float64]string{0: "0", 12.5: "12.5", 3.14159: "3.14", 100: "100", -0.001: "0"}
	for in, want := range cases {
		if got := num(in); got != want {
			t.Errorf("num(%v) = %q, want %q", in, got, want)
		}
	}
}
