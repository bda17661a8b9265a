package render

import (
	"fmt"
	"strings"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/layout"
)

// PlainText lists a laid-out day without styling, one appointment per line:
//
//	09:00-09:30  [1/2]  Haircut (Maya)
//
// The bracket is the 1-based lane and lane count.
func PlainText(date, staff string, laid []layout.Interval) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", date, staff)
	if len(laid) == 0 {
		b.WriteString("(no appointments)\n")
		return b.String()
	}
	for _, iv := range laid {
		fmt.Fprintf(&b, "%s  [%d/%d]  %s (%s)\n",
			TimeRange(iv.Interval), iv.Column+1, iv.ColumnsCount, iv.Title, iv.StaffLabel)
	}
	return b.String()
}
