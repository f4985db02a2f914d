package tui

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/uiforge/internal/render"
)

// View implements tea.Model
func (m ChatModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter send • tab switch view • /regen <text> redesign • /undo previous version • esc quit"))

	return b.String()
}

func (m ChatModel) renderHeader() string {
	title := m.styles.Title.Render("uiforge")
	versions := len(m.session.Versions())
	if versions == 0 {
		return title
	}
	return title + m.styles.Muted.Render(fmt.Sprintf("  %d version(s)", versions))
}

func (m ChatModel) renderTabs() string {
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			parts[i] = m.styles.ActiveTab.Render(name)
		} else {
			parts[i] = m.styles.Tab.Render(name)
		}
	}
	return strings.Join(parts, " ")
}

func (m ChatModel) renderStatus() string {
	if m.busy {
		return m.spinner.View() + " " + m.styles.Status.Render(m.status)
	}
	if m.failed {
		return m.styles.Error.Render("✗ " + m.status)
	}
	return m.styles.Status.Render(m.status)
}

// content is what the viewport shows for the active tab.
func (m ChatModel) content() string {
	cur := m.session.Current()
	if cur == nil {
		return m.styles.Muted.Render("No plan yet.")
	}

	switch m.tab {
	case TabCode:
		return cur.Code
	case TabDiff:
		if m.diff == "" {
			return m.styles.Muted.Render("No changes yet.")
		}
		return m.diff
	default:
		return render.Draw(render.Render(cur.Plan), m.width)
	}
}
