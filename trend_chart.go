package main

import (
	"fmt"
	"strings"
)

// chartHeadroom keeps the tallest point and the TDEE line off the top edge.
const chartHeadroom = 1.15

// ChartPoint is one record mapped to plot coordinates.
type ChartPoint struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Date   string  `json:"date"`
	Intake int     `json:"intake"`
}

// vec is a bare coordinate pair.
type vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// curveSegment is one cubic Bézier piece from the previous point to End.
type curveSegment struct {
	C1  vec `json:"c1"`
	C2  vec `json:"c2"`
	End vec `json:"end"`
}

// trendChart is everything needed to draw the intake trend: the points, a
// smooth curve through them, the fill area and the TDEE reference line.
type trendChart struct {
	Width    float64        `json:"width"`
	Height   float64        `json:"height"`
	MaxValue float64        `json:"max_value"`
	TDEE     int            `json:"tdee"`
	TDEEY    float64        `json:"tdee_y"`
	Points   []ChartPoint   `json:"points"`
	Segments []curveSegment `json:"segments"`
	LinePath string         `json:"line_path"`
	AreaPath string         `json:"area_path"`
}

// mapTrend maps an ascending window of records onto a width×height plot.
// Returns ok=false for an empty window ("no data"); that is not an error.
func mapTrend(records []DailyRecord, tdee int, width, height float64) (trendChart, bool) {
	if len(records) == 0 {
		return trendChart{}, false
	}

	peak := float64(tdee)
	for _, r := range records {
		peak = max(peak, float64(r.CaloriesIntake))
	}
	maxVal := peak * chartHeadroom

	scaleY := func(v float64) float64 {
		if maxVal <= 0 {
			return height
		}
		return height - v/maxVal*height
	}

	points := make([]ChartPoint, len(records))
	for i, r := range records {
		x := width / 2
		if len(records) > 1 {
			x = float64(i) * width / float64(len(records)-1)
		}
		points[i] = ChartPoint{
			X:      x,
			Y:      scaleY(float64(r.CaloriesIntake)),
			Date:   r.Date,
			Intake: r.CaloriesIntake,
		}
	}

	segments := catmullRomSegments(points)
	return trendChart{
		Width:    width,
		Height:   height,
		MaxValue: maxVal,
		TDEE:     tdee,
		TDEEY:    scaleY(float64(tdee)),
		Points:   points,
		Segments: segments,
		LinePath: linePath(points, segments),
		AreaPath: areaPath(points, segments, height),
	}, true
}

// catmullRomSegments returns one cubic segment per consecutive point pair.
// For the segment p[i]→p[i+1] the control points are
//
//	c1 = p[i]   + (p[i+1] - p[i-1]) / 6
//	c2 = p[i+1] - (p[i+2] - p[i])   / 6
//
// with out-of-range neighbours clamped to the endpoint itself, so the curve
// passes through every point with a continuous tangent.
func catmullRomSegments(points []ChartPoint) []curveSegment {
	if len(points) < 2 {
		return []curveSegment{}
	}
	at := func(i int) vec {
		i = max(0, min(i, len(points)-1))
		return vec{points[i].X, points[i].Y}
	}
	segs := make([]curveSegment, 0, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		p0, p1, p2, p3 := at(i-1), at(i), at(i+1), at(i+2)
		segs = append(segs, curveSegment{
			C1:  vec{p1.X + (p2.X-p0.X)/6, p1.Y + (p2.Y-p0.Y)/6},
			C2:  vec{p2.X - (p3.X-p1.X)/6, p2.Y - (p3.Y-p1.Y)/6},
			End: p2,
		})
	}
	return segs
}

// linePath renders the curve as an SVG path.
func linePath(points []ChartPoint, segs []curveSegment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "M %s %s", num(points[0].X), num(points[0].Y))
	for _, s := range segs {
		fmt.Fprintf(&b, " C %s %s, %s %s, %s %s",
			num(s.C1.X), num(s.C1.Y), num(s.C2.X), num(s.C2.Y), num(s.End.X), num(s.End.Y))
	}
	return b.String()
}

// areaPath closes the curve down to the baseline for fill rendering.
func areaPath(points []ChartPoint, segs []curveSegment, baseline float64) string {
	first, last := points[0], points[len(points)-1]
	return fmt.Sprintf("%s L %s %s L %s %s Z",
		linePath(points, segs), num(last.X), num(baseline), num(first.X), num(baseline))
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
