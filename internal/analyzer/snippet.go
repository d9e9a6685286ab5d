package analyzer

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// snippetMaxLines caps how much of a file is carried into reports
const snippetMaxLines = 20

// ExtractSnippet returns a representative excerpt of the content: the
// window starting at the first def or class, capped at 20 lines, or
// the leading lines when the file has neither.
func ExtractSnippet(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= snippetMaxLines {
		return content
	}

	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "def ") || strings.HasPrefix(stripped, "class ") {
			end := i + snippetMaxLines
			if end > len(lines) {
				end = len(lines)
			}
			return strings.Join(lines[i:end], "\n")
		}
	}

	return strings.Join(lines[:snippetMaxLines], "\n")
}

// GeneratePatch produces a unified diff between the original and
// modified content, labeled a/<path> and b/<path>. Empty when the
// contents are identical.
func GeneratePatch(original, modified, path string) string {
	if original == modified {
		return ""
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(modified),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	}

	patch, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}
	return patch
}
