package extract

import (
	"regexp"
	"strings"
)

var (
	excessNewlinesRe = regexp.MustCompile(`\n{3,}`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
	inlineSpaceRe    = regexp.MustCompile(`[ \t\r\f\v]+`)
)

// normalizeText turns non-breaking spaces into spaces, collapses runs of
// three or more newlines to two and trims the result.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = excessNewlinesRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// collapseWhitespace reduces every whitespace run (NBSP included) to one space.
func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// collapseLines collapses horizontal whitespace within each line and drops
// blank lines at either end.
func collapseLines(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(inlineSpaceRe.ReplaceAllString(line, " "))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
