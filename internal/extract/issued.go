package extract

import (
	"regexp"
	"strconv"
	"time"
)

var (
	dateRe = regexp.MustCompile(`\b\d{1,2}\.\d{1,2}\.\d{4}\b`)

	// titleIssuedRe matches "issued on 16.10.2026 at 06".
	titleIssuedRe = regexp.MustCompile(`(?i)issued\s+on\s+(\d{1,2})\.(\d{1,2})\.(\d{4})\.?\s+at\s+(\d{1,2})`)

	// bodyIssuedRes are tried in order against the whole page text.
	bodyIssuedRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)issued\s+on\s+(\d{1,2})\.(\d{1,2})\.(\d{4})\.?\s+at\s+(\d{1,2})`),
		regexp.MustCompile(`(?i)\bon\s+(\d{1,2})\.\s?(\d{1,2})\.\s?(\d{4})\.?,?\s+at\s+(\d{1,2})`),
		regexp.MustCompile(`(?i)izdan[oa]?\s+(?:je\s+)?(?:dana\s+)?(\d{1,2})\.\s?(\d{1,2})\.\s?(\d{4})\.?\s+u\s+(\d{1,2})`),
		regexp.MustCompile(`(?i)(\d{1,2})\.\s?(\d{1,2})\.\s?(\d{4})\.?\s+u\s+(\d{1,2})(?:[:.]\d{2})?\s*(?:sati|h|utc)`),
	}
)

// hasDate reports whether s contains a DD.MM.YYYY date.
func hasDate(s string) bool {
	return dateRe.MatchString(s)
}

// resolveIssuedAt reads the issue time from the title, then from the page
// text. Returns nil when nothing matches.
func resolveIssuedAt(title, bodyText string) *time.Time {
	if t, ok := matchIssued(titleIssuedRe, title); ok {
		return &t
	}
	for _, re := range bodyIssuedRes {
		if t, ok := matchIssued(re, bodyText); ok {
			return &t
		}
	}
	return nil
}

func matchIssued(re *regexp.Regexp, s string) (time.Time, bool) {
	for _, m := range re.FindAllStringSubmatch(s, -1) {
		if t, ok := issuedTime(m[1], m[2], m[3], m[4]); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// issuedTime builds a UTC time, rejecting values time.Date would normalize.
func issuedTime(day, month, year, hour string) (time.Time, bool) {
	d, errD := strconv.Atoi(day)
	m, errM := strconv.Atoi(month)
	y, errY := strconv.Atoi(year)
	h, errH := strconv.Atoi(hour)
	if errD != nil || errM != nil || errY != nil || errH != nil {
		return time.Time{}, false
	}
	if m < 1 || m > 12 || h < 0 || h > 23 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, h, 0, 0, 0, time.UTC)
	if t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}
