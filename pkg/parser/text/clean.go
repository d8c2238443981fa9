// Package text strips PDF extraction noise from report text and splits it into
// the trimmed, non-empty lines every report parser walks.
package text

import (
	"regexp"
	"strings"
)

var noisePatterns = []*regexp.Regexp{
	// page separators: "-- 1 of 3 --"
	regexp.MustCompile(`-- \d+ of \d+ --`),
	// footers: "Page 1 of 3 ..."
	regexp.MustCompile(`Page \d+ of \d+.*`),
	regexp.MustCompile(`Report printed from TARA.*`),
	// letterhead address and phone lines
	regexp.MustCompile(`\d+ Kennedy Avenue, Cincinnati, OH.*`),
	regexp.MustCompile(`Ph:.*Fax:.*`),
	// the converter watermark runs to the end of the text
	regexp.MustCompile(`(?s)This document was created with the Win2PDF.*`),
	regexp.MustCompile(`https://\S+`),
	regexp.MustCompile(`(?s)Visit.*purchase/?`),
}

// CleanReportText removes known boilerplate from raw report text. Every
// pattern is optional.
func CleanReportText(raw string) string {
	for _, pattern := range noisePatterns {
		raw = pattern.ReplaceAllString(raw, "")
	}
	return raw
}

// ToLines cleans raw and returns its trimmed, non-empty lines.
func ToLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(CleanReportText(raw), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
