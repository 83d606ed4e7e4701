package tuner

import (
	"math"
	"strconv"
	"strings"
)

const cellWidth = 10

// drawRows renders station names and their volumes (one decimal) centered
// in fixed-width cells so each volume sits under its station.
func drawRows(names []string, volumes []float64) (nameRow, volumeRow string) {
	var nb, vb strings.Builder
	for _, n := range names {
		nb.WriteString(center(n, cellWidth))
	}
	for _, v := range volumes {
		rounded := math.Round(v*10) / 10
		vb.WriteString(center(strconv.FormatFloat(rounded, 'f', 1, 64), cellWidth))
	}
	return nb.String(), vb.String()
}

// center pads s with spaces to width, putting the extra space on the right.
// Strings longer than width are returned unchanged.
func center(s string, width int) string {
	pad := width - len([]rune(s))
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
