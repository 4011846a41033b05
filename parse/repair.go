package parse

import "strings"

// RepairJSON salvages a JSON object from model output that wraps it in
// markdown code fences or surrounding prose. It strips fences first, then
// slices from the first '{' to the last '}'. Returns "" when no object
// boundary is found; actual JSON validity is left to the decoder.
func RepairJSON(s string) string {
	s = strings.TrimSpace(s)

	// Strip markdown code fences (```json ... ``` or plain ```).
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return ""
	}
	return s[start : end+1]
}
