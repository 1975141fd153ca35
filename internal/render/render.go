// Package render draws a paginator.Result as a one-line terminal bar.
package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/eugenenazirov/pagination/internal/paginator"
)

// Colour palette for the bar.
const (
	ColorActive = lipgloss.Color("39")
	ColorPage   = lipgloss.Color("252")
	ColorMuted  = lipgloss.Color("241")
)

// Style selects the glyphs used for the bar.
type Style struct {
	// ASCII swaps the unicode arrows and ellipsis for plain characters.
	ASCII bool
}

type glyphs struct {
	prev, next, gap string
}

func (s Style) glyphs() glyphs {
	if s.ASCII {
		return glyphs{prev: "<", next: ">", gap: "..."}
	}
	return glyphs{prev: "‹", next: "›", gap: "…"}
}

var (
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorActive)
	pageStyle   = lipgloss.NewStyle().Foreground(ColorPage)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Bar renders res as "‹ 1 … 9 [10] 11 … 20 ›". The active page is bracketed
// and highlighted, separators are muted.
func Bar(res paginator.Result, style Style) string {
	if res.Empty() {
		return mutedStyle.Render("(no pages)")
	}

	g := style.glyphs()
	parts := []string{mutedStyle.Render(g.prev)}
	parts = appendPages(parts, res.LeftItems)
	if res.LeftSeparator {
		parts = append(parts, mutedStyle.Render(g.gap))
	}
	if len(res.CenterItems) > 0 {
		parts = appendPages(parts, res.CenterItems)
		if res.RightSeparator {
			parts = append(parts, mutedStyle.Render(g.gap))
		}
	} else if res.RightSeparator && !res.LeftSeparator {
		parts = append(parts, mutedStyle.Render(g.gap))
	}
	parts = appendPages(parts, res.RightItems)
	parts = append(parts, mutedStyle.Render(g.next))

	return strings.Join(parts, " ")
}

func appendPages(parts []string, entries []paginator.PageEntry) []string {
	for _, e := range entries {
		label := strconv.Itoa(e.PageNo)
		if e.IsActive {
			parts = append(parts, activeStyle.Render("["+label+"]"))
			continue
		}
		parts = append(parts, pageStyle.Render(label))
	}
	return parts
}
