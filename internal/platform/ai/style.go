package ai

import "strings"

const styleMarker = "SHEPHERD_PROMPT_STYLE_V1"

// ApplySystem prepends shared guidance to a system prompt. Prompts that
// already carry the marker are returned unchanged.
func ApplySystem(system string) string {
	base := strings.TrimSpace(system)
	if base == "" {
		return base
	}
	if strings.Contains(base, styleMarker) {
		return base
	}

	var b strings.Builder
	b.WriteString(styleMarker)
	b.WriteString("\nYou are a careful writing assistant for church staff.")
	b.WriteString("\nFollow the system and user instructions precisely.")
	b.WriteString("\nQuote scripture only when a reference is given; do not invent citations.")
	b.WriteString("\nOutput only the requested text, with no commentary about yourself.")
	b.WriteString("\n---\n")
	b.WriteString(base)
	return b.String()
}
