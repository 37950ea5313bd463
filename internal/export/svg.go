// Package export renders recorded runs to standalone files.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/storage"
)

// TraceToSVG draws the top-down (XZ) path of every traced body on a square
// canvas of size pixels. Paths are colored after the catalog entry of the
// same name. An empty trace yields an empty string.
func TraceToSVG(trace *storage.Trace, catalog []body.Entry, size int) string {
	if trace == nil || trace.Len() == 0 || size <= 0 {
		return ""
	}

	extent := 0.0
	for _, row := range trace.Positions {
		for _, p := range row {
			extent = math.Max(extent, math.Max(math.Abs(p.X), math.Abs(p.Z)))
		}
	}
	if extent == 0 {
		extent = 1
	}
	extent *= 1.1

	half := float64(size) / 2
	project := func(p r3.Vec) (float64, float64) {
		return half + p.X/extent*half, half + p.Z/extent*half
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, size, size, size, size))

	for i, name := range trace.Names {
		stroke := pathColor(catalog, name)
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
		for k, row := range trace.Positions {
			x, y := project(row[i])
			if k == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		x, y := project(trace.Positions[trace.Len()-1][i])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"><title>%s</title></circle>
`, x, y, stroke, name))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func pathColor(catalog []body.Entry, name string) string {
	c := body.Fallback
	if i := body.Find(catalog, name); i >= 0 {
		c = body.ParseColor(catalog[i].Color)
	}
	cc, _ := colorful.MakeColor(c)
	return cc.Hex()
}
