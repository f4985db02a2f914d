// Package codegen lowers a validated UI plan into React TSX source text.
package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/felixgeelhaar/uiforge/internal/uiplan"
)

const header = `import React from "react";
import {
  Page,
  Stack,
  Section,
  Sidebar,
  Navbar,
  Card,
  Button,
  Input,
  Textarea,
  Table,
  EmptyState,
  Chart,
  Modal
} from "@/components/ui";`

// baseIndent is the column of the root tag inside the return statement.
const baseIndent = 4

// TagFor returns the widget tag a node kind lowers to. The second result is
// false for kinds outside the supported vocabulary.
func TagFor(kind uiplan.NodeKind) (string, bool) {
	switch kind {
	case uiplan.KindPage:
		return "Page", true
	case uiplan.KindStack:
		return "Stack", true
	case uiplan.KindSection:
		return "Section", true
	case uiplan.KindSidebar:
		return "Sidebar", true
	case uiplan.KindNavbar:
		return "Navbar", true
	case uiplan.KindCard:
		return "Card", true
	case uiplan.KindButton:
		return "Button", true
	case uiplan.KindInput:
		return "Input", true
	case uiplan.KindTextarea:
		return "Textarea", true
	case uiplan.KindTable:
		return "Table", true
	case uiplan.KindEmptyState:
		return "EmptyState", true
	case uiplan.KindChart:
		return "Chart", true
	case uiplan.KindModal:
		return "Modal", true
	default:
		return "", false
	}
}

// Generate renders plan as a TSX module exporting GeneratedUI. Output is a
// pure function of the plan: props are emitted in sorted key order.
func Generate(plan uiplan.Plan) string {
	lines := []string{header, "", "export function GeneratedUI() {", "  return ("}
	lines = renderNode(plan.Root, lines, baseIndent)
	lines = append(lines, "  );", "}", "")
	return strings.Join(lines, "\n")
}

func renderNode(n uiplan.Node, lines []string, indent int) []string {
	spaces := strings.Repeat(" ", indent)

	tag, ok := TagFor(n.Kind)
	if !ok {
		return append(lines, fmt.Sprintf("%s{/* Unsupported node type: %s */}", spaces, n.Kind))
	}

	attrs := renderProps(n.Props)
	if !n.Kind.IsContainer() {
		return append(lines, fmt.Sprintf("%s<%s%s />", spaces, tag, attrs))
	}

	lines = append(lines, fmt.Sprintf("%s<%s%s>", spaces, tag, attrs))
	for _, child := range n.Children {
		lines = renderNode(child, lines, indent+2)
	}
	return append(lines, fmt.Sprintf("%s</%s>", spaces, tag))
}

// renderProps builds the attribute list, including its leading space.
func renderProps(props map[string]any) string {
	keys := AttributeKeys(props)
	if len(keys) == 0 {
		return ""
	}

	parts := make([]string, len(keys))
	for i, key := range keys {
		lit, _ := Literal(props[key])
		parts[i] = fmt.Sprintf("%s={%s}", key, lit)
	}
	return " " + strings.Join(parts, " ")
}

// AttributeKeys returns the sorted prop keys emitted as attributes: the
// structural id key and values with no literal form are excluded.
func AttributeKeys(props map[string]any) []string {
	keys := make([]string, 0, len(props))
	for key, value := range props {
		if key == "id" {
			continue
		}
		if _, ok := Literal(value); !ok {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
