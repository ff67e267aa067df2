// Package arrows routes dependency links between laid-out task bars.
package arrows

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/ganttd/internal/layout"
	"github.com/sandeepkv93/ganttd/internal/model"
)

type Point struct {
	X float64
	Y float64
}

// Anchor is the laid-out bar of one end of a link.
type Anchor struct {
	Bar layout.Bar
	Row int
}

type Style struct {
	Width  float64
	Color  string
	Marker string
}

var (
	CriticalStyle = Style{Width: 2.5, Color: "#e4572e", Marker: "arrow-critical"}
	NormalStyle   = Style{Width: 1.2, Color: "#8a8f98", Marker: "arrow-normal"}
)

// Curve is a cubic S-curve from a predecessor's right edge to a
// successor's left edge.
type Curve struct {
	DependencyID string
	From         string
	To           string
	Type         model.DependencyType
	Start        Point
	C1           Point
	C2           Point
	End          Point
	Critical     bool
	Style        Style
}

// Route builds the curve for dep between two anchors. Both control points
// sit at the horizontal midpoint, each at its own anchor's height.
func Route(dep model.Dependency, from, to Anchor, rowHeight float64, critical bool) Curve {
	start := Point{X: from.Bar.Right(), Y: float64(from.Row)*rowHeight + rowHeight/2}
	end := Point{X: to.Bar.Left, Y: float64(to.Row)*rowHeight + rowHeight/2}
	mid := (start.X + end.X) / 2

	style := NormalStyle
	if critical {
		style = CriticalStyle
	}
	return Curve{
		DependencyID: dep.ID,
		From:         dep.PredecessorID,
		To:           dep.SuccessorID,
		Type:         dep.Type,
		Start:        start,
		C1:           Point{X: mid, Y: start.Y},
		C2:           Point{X: mid, Y: end.Y},
		End:          end,
		Critical:     critical,
		Style:        style,
	}
}

// Path renders the curve as SVG path data.
func (c Curve) Path() string {
	var b strings.Builder
	fmt.Fprintf(&b, "M %s %s C %s %s, %s %s, %s %s",
		num(c.Start.X), num(c.Start.Y),
		num(c.C1.X), num(c.C1.Y),
		num(c.C2.X), num(c.C2.Y),
		num(c.End.X), num(c.End.Y))
	return b.String()
}

// At evaluates the curve at t in [0, 1].
func (c Curve) At(t float64) Point {
	u := 1 - t
	a, b, cc, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Point{
		X: a*c.Start.X + b*c.C1.X + cc*c.C2.X + d*c.End.X,
		Y: a*c.Start.Y + b*c.C1.Y + cc*c.C2.Y + d*c.End.Y,
	}
}

// Sample returns n+1 evenly spaced points along the curve, ends included.
func (c Curve) Sample(n int) []Point {
	if n < 1 {
		n = 1
	}
	out := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, c.At(float64(i)/float64(n)))
	}
	return out
}

// Build routes every dependency whose two ends are rendered in chart. A
// curve is emphasised when showCritical is set and both ends are on the
// critical path.
func Build(deps []model.Dependency, chart layout.Chart, critical map[string]bool, showCritical bool) []Curve {
	out := make([]Curve, 0, len(deps))
	for _, dep := range deps {
		from, ok := chart.Lookup(dep.PredecessorID)
		if !ok {
			continue
		}
		to, ok := chart.Lookup(dep.SuccessorID)
		if !ok {
			continue
		}
		emphasised := showCritical && critical[dep.PredecessorID] && critical[dep.SuccessorID]
		out = append(out, Route(dep,
			Anchor{Bar: from.Bar, Row: from.Row},
			Anchor{Bar: to.Bar, Row: to.Row},
			chart.RowHeight, emphasised))
	}
	return out
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
