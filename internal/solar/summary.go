package solar

import (
	"fmt"
	"io"
	"strings"
)

// WriteSummary prints a table of every body in s.
func WriteSummary(w io.Writer, s *System) {
	if s == nil {
		fmt.Fprintln(w, "No solar system")
		return
	}

	fmt.Fprintf(w, "%s @ (%.2f, %.2f, %.2f)\n", s.Name, s.Center.X, s.Center.Y, s.Center.Z)
	fmt.Fprintln(w, strings.Repeat("─", 72))
	fmt.Fprintf(w, "%-18s %-7s %7s %9s %9s %-8s\n", "Body", "Kind", "Size", "Orbit", "Speed", "Color")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	for _, b := range s.Bodies {
		indent := ""
		if b.Kind == BodyMoon {
			indent = "  "
		}
		fmt.Fprintf(w, "%-18s %-7s %7.2f %9.2f %9.2f %-8s\n",
			truncate(indent+b.Name, 18),
			b.Kind,
			b.Size,
			b.OrbitRadius,
			b.OrbitSpeed,
			b.Color.Clamped().Hex(),
		)
	}

	fmt.Fprintf(w, "\nPlanets: %d  Moons: %d\n", len(s.Planets()), len(s.Bodies)-1-len(s.Planets()))
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}
