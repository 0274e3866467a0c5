package render

import (
	"strconv"
	"strings"
)

// FullWidth is the number of columns in the console's responsive grid.
const FullWidth = 12

// GridProps is the column span a control occupies.
type GridProps struct {
	Span int `json:"span"`
}

// ParseGridClass reads a CSS-grid-like class string ("col-6",
// "col-span-4 mt-2", "col-md-3") and returns the column span. Absence or an
// unparseable class defaults to full width.
func ParseGridClass(class string) GridProps {
	for _, token := range strings.Fields(class) {
		if !strings.HasPrefix(token, "col-") {
			continue
		}
		// Last dash-separated segment carries the span: col-6, col-span-6,
		// col-md-6 all end in the number.
		parts := strings.Split(token, "-")
		n, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil || n < 1 || n > FullWidth {
			continue
		}
		return GridProps{Span: n}
	}
	return GridProps{Span: FullWidth}
}
