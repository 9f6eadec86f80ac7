package utils

import (
	"regexp"
	"strings"
	"time"
)

// Date layouts accepted by NormalizeDate, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"01-02-2006",
	"02-01-2006",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// NormalizeDate converts a date string in a variety of layouts to YYYY-MM-DD.
// It returns "" when the input is empty or unparseable.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// NormalizeName collapses whitespace and applies title casing.
func NormalizeName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	words := strings.Split(strings.ToLower(s), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

var addressAbbreviations = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)\bSt\.?\b`), "Street"},
	{regexp.MustCompile(`(?i)\bAve\.?\b`), "Avenue"},
	{regexp.MustCompile(`(?i)\bRd\.?\b`), "Road"},
	{regexp.MustCompile(`(?i)\bBlvd\.?\b`), "Boulevard"},
	{regexp.MustCompile(`(?i)\bDr\.?\b`), "Drive"},
	{regexp.MustCompile(`(?i)\bLn\.?\b`), "Lane"},
	{regexp.MustCompile(`(?i)\bCt\.?\b`), "Court"},
	{regexp.MustCompile(`(?i)\bPl\.?\b`), "Place"},
	{regexp.MustCompile(`(?i)\bApt\.?\b`), "Apartment"},
	{regexp.MustCompile(`(?i)\bSte\.?\b`), "Suite"},
}

// NormalizeAddress collapses whitespace and expands common street abbreviations.
func NormalizeAddress(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	for _, abbr := range addressAbbreviations {
		s = abbr.pattern.ReplaceAllString(s, abbr.replacement)
	}
	return s
}

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]`)

// NormalizeIDNumber strips non-alphanumeric characters and uppercases the rest.
func NormalizeIDNumber(s string) string {
	return strings.ToUpper(nonAlphanumeric.ReplaceAllString(s, ""))
}
