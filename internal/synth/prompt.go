package synth

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/felixgeelhaar/uiforge/internal/uiplan"
)

// DefaultMaxMessageLength is the rune limit Sanitize applies by default.
const DefaultMaxMessageLength = 4000

// retryNudge is appended to the user prompt for the single retry.
const retryNudge = "\n\nYour previous response was not strict JSON. Reply again with ONLY a JSON object."

var injectionPattern = regexp.MustCompile(`(?i)ignore (all )?previous instructions`)

// Sanitize strips the most common prompt-injection phrase and truncates the
// instruction to maxLen runes. A non-positive maxLen uses the default.
func Sanitize(msg string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxMessageLength
	}

	cleaned := injectionPattern.ReplaceAllString(msg, "")
	if utf8.RuneCountInString(cleaned) <= maxLen {
		return cleaned
	}
	return string([]rune(cleaned)[:maxLen])
}

// SystemPrompt describes the closed vocabulary and the plan schema to the
// planner.
func SystemPrompt() string {
	kinds := uiplan.AllKinds()
	names := make([]string, len(kinds))
	union := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
		union[i] = `  | "` + string(k) + `"`
	}
	union[len(union)-1] += ";"

	lines := []string{
		"You are a UI planner for a deterministic React UI generator.",
		"You MUST obey these rules:",
		"- Use ONLY the allowed component kinds: " + strings.Join(names, ", ") + ".",
		"- Never invent new component kinds or props that look like CSS or style attributes.",
		"- Do NOT use inline styles, CSS, class names, or Tailwind utilities. The renderer controls all styling.",
		"- You are not allowed to change or extend the component library.",
		"- You must preserve existing layout and nodes unless the user clearly asks for a full redesign.",
		"",
		"Output format:",
		"- You MUST return a single JSON object that matches the UiPlan schema.",
		"- Do NOT include any explanations, comments, or markdown.",
		"",
		"UiPlan schema (TypeScript-style):",
		"type ComponentKind =",
	}
	lines = append(lines, union...)
	lines = append(lines,
		"",
		"type UiNode = {",
		"  id: string;",
		"  kind: ComponentKind;",
		"  props?: Record<string, unknown>;",
		"  children?: UiNode[];",
		"};",
		"",
		"type UiPlan = {",
		"  summary: string;",
		"  layout: {",
		"    hasSidebar?: boolean;",
		"    hasNavbar?: boolean;",
		`    layoutStyle: "dashboard" | "form" | "table" | "custom";`,
		"  };",
		"  root: UiNode;",
		"  changes?: {",
		`    kind: "add" | "remove" | "update";`,
		"    targetId?: string;",
		"    description: string;",
		"  }[];",
		"};",
		"",
		"Never output anything except this JSON object.",
	)
	return strings.Join(lines, "\n")
}

// UserPrompt embeds the instruction, the mode and the current plan.
func UserPrompt(mode Mode, msg string, current *uiplan.Plan) string {
	lines := []string{
		"User instruction:",
		msg,
		"",
		"Mode: " + string(mode),
		"",
		"Current plan (if any) as JSON:",
	}

	if current == nil {
		lines = append(lines, "null", "", "Create a new plan for this instruction.")
		return strings.Join(lines, "\n")
	}

	planJSON, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		// Props hold decoded JSON values, which always marshal.
		planJSON = []byte("null")
	}
	lines = append(lines,
		string(planJSON),
		"",
		"Update this plan minimally to satisfy the new instruction.",
		"Reuse existing node ids whenever possible.",
	)
	return strings.Join(lines, "\n")
}

// ExplainerSystemPrompt frames the explanation call.
func ExplainerSystemPrompt() string {
	return strings.Join([]string{
		"You are an assistant explaining UI layout decisions to a front-end engineer.",
		"Explain changes between the previous and next plan, referencing components by name.",
		"Mention what stayed the same vs what changed.",
		"Do not talk about JSON or schemas; describe the UI.",
		"Do not claim to change the component library or styling rules.",
	}, "\n")
}

// ExplainerUserPrompt carries the instruction and the diff summary.
func ExplainerUserPrompt(msg, diffSummary string) string {
	return strings.Join([]string{
		"Latest user instruction:",
		msg,
		"",
		"High-level diff between previous and next plan:",
		diffSummary,
	}, "\n")
}
