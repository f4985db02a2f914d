package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	containerStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	tagStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	propStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Draw renders a terminal preview of the tree. Containers are drawn as
// bordered boxes holding their children; leaves are single lines.
func Draw(t Tree, width int) string {
	if t.Root == nil {
		return propStyle.Render("(nothing to render)")
	}
	return draw(t.Root, width)
}

func draw(inst *Instance, width int) string {
	line := tagStyle.Render(inst.Widget.Name())
	if summary := propSummary(inst.Resolved()); summary != "" {
		line += " " + propStyle.Render(summary)
	}

	if !inst.Widget.Container() {
		return line
	}

	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	parts := []string{line}
	for _, child := range inst.Children {
		parts = append(parts, draw(child, inner))
	}

	style := containerStyle
	if width > 0 {
		style = style.Width(width - 2)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// propSummary shows scalar props only; lists and maps are reported by size.
func propSummary(props map[string]any) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		if k == "id" || props[k] == nil {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		switch v := props[k].(type) {
		case []any:
			parts = append(parts, fmt.Sprintf("%s=[%d]", k, len(v)))
		case map[string]any:
			parts = append(parts, fmt.Sprintf("%s={%d}", k, len(v)))
		case string:
			parts = append(parts, fmt.Sprintf("%s=%q", k, v))
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
	}
	return strings.Join(parts, " ")
}
