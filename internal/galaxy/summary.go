package galaxy

import (
	"fmt"
	"io"
	"strings"

	"github.com/chewxy/math32"
)

// Summary holds aggregate statistics for a field.
type Summary struct {
	Archetype  Archetype
	Count      int
	Min, Max   [3]float32 // position bounds per axis
	MeanRadial float32
	MaxRadial  float32
	ColorMin   [3]float32
	ColorMax   [3]float32
}

// Summarize computes statistics over every particle in f.
func Summarize(f *Field) Summary {
	s := Summary{Count: f.Len()}
	if f == nil || s.Count == 0 {
		return s
	}
	s.Archetype = f.Archetype

	for axis := 0; axis < 3; axis++ {
		s.Min[axis] = math32.Inf(1)
		s.Max[axis] = math32.Inf(-1)
		s.ColorMin[axis] = math32.Inf(1)
		s.ColorMax[axis] = math32.Inf(-1)
	}

	var sum float64
	for i := 0; i < s.Count; i++ {
		for axis := 0; axis < 3; axis++ {
			p := f.Positions[i*3+axis]
			c := f.Colors[i*3+axis]
			s.Min[axis] = math32.Min(s.Min[axis], p)
			s.Max[axis] = math32.Max(s.Max[axis], p)
			s.ColorMin[axis] = math32.Min(s.ColorMin[axis], c)
			s.ColorMax[axis] = math32.Max(s.ColorMax[axis], c)
		}
		r := f.Radial[i]
		sum += float64(r)
		s.MaxRadial = math32.Max(s.MaxRadial, r)
	}
	s.MeanRadial = float32(sum / float64(s.Count))
	return s
}

// WriteSummary prints a summary table for the given fields.
func WriteSummary(w io.Writer, fields ...*Field) {
	fmt.Fprintf(w, "%-11s %8s %-24s %-24s %8s %8s\n",
		"Archetype", "Count", "X range", "Z range", "Mean r", "Max r")
	fmt.Fprintln(w, strings.Repeat("─", 90))

	for _, f := range fields {
		s := Summarize(f)
		fmt.Fprintf(w, "%-11s %8d %-24s %-24s %8.2f %8.2f\n",
			s.Archetype,
			s.Count,
			fmt.Sprintf("[%7.2f, %7.2f]", s.Min[0], s.Max[0]),
			fmt.Sprintf("[%7.2f, %7.2f]", s.Min[2], s.Max[2]),
			s.MeanRadial,
			s.MaxRadial,
		)
	}
}
