// File: argmap/print.go
package argmap

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1)

// Pretty renders the Dict as a bordered box with one aligned "key : value"
// line per entry and nested mappings indented under a guide rune. With
// sortKeys the entries print alphabetically instead of in insertion order.
func (d *Dict) Pretty(sortKeys bool) string {
	lines := renderLines(d, sortKeys)
	if len(lines) == 0 {
		lines = []string{"<empty>"}
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// PrettyPrint writes the boxed rendering to stdout.
func (d *Dict) PrettyPrint(sortKeys bool) {
	fmt.Fprintln(os.Stdout, d.Pretty(sortKeys))
}

func renderLines(d *Dict, sortKeys bool) []string {
	keys := d.Keys()
	if sortKeys {
		keys = append([]string(nil), keys...)
		sort.Strings(keys)
	}

	width := 0
	for _, k := range keys {
		if w := runewidth.StringWidth(k); w > width {
			width = w
		}
	}

	var lines []string
	for _, k := range keys {
		v, _ := d.Get(k)
		if sub, ok := v.(*Dict); ok {
			lines = append(lines, k)
			for _, nested := range renderLines(sub, sortKeys) {
				lines = append(lines, "│ "+nested)
			}
			continue
		}
		pad := strings.Repeat(" ", width-runewidth.StringWidth(k))
		lines = append(lines, fmt.Sprintf("%s%s : %s", k, pad, FormatValue(v)))
	}
	return lines
}
