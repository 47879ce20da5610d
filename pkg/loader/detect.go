package loader

import (
	"regexp"
	"strings"
)

// tomlSectionPattern matches TOML table headers such as [server],
// [[items]], [database.credentials], or [server."host.name"]. JSON arrays
// like [1, 2, 3] do not match because of the commas and spaces.
var tomlSectionPattern = regexp.MustCompile(
	`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)

// tomlKeyValuePattern matches key = value lines, including quoted and
// dotted keys. YAML uses key: value so the two do not overlap.
var tomlKeyValuePattern = regexp.MustCompile(
	`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)

// isLikelyNDJSON reports whether the input looks like newline-delimited
// JSON: more than one non-empty line, with a majority starting as a JSON
// object or array. Requiring a majority keeps YAML list files from being
// misclassified.
func isLikelyNDJSON(input string) bool {
	jsonLines, nonEmpty := 0, 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmpty++
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			jsonLines++
		}
	}
	return nonEmpty > 1 && jsonLines > nonEmpty/2
}

// isLikelyTOML reports whether the input looks like TOML: any table
// header, or a majority of key = value lines.
func isLikelyTOML(input string) bool {
	sections, keyValues, nonEmpty := 0, 0, 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmpty++
		if tomlSectionPattern.MatchString(line) {
			sections++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValues++
		}
	}
	if sections > 0 {
		return true
	}
	return nonEmpty > 0 && keyValues > nonEmpty/2
}
