// Package venue shortens journal and conference names to display labels.
package venue

import (
	"regexp"
	"strconv"
	"strings"
)

// yearRegex finds a 21st-century year embedded in venue text.
var yearRegex = regexp.MustCompile(`\b(20\d{2})\b`)

// rule maps venue text to an alias. Rules are checked in order.
type rule struct {
	match    func(upper string) bool
	alias    string
	findings bool // append " Findings" when the venue mentions findings
	dropYear bool
}

func containsAny(subs ...string) func(string) bool {
	return func(upper string) bool {
		for _, s := range subs {
			if strings.Contains(upper, s) {
				return true
			}
		}
		return false
	}
}

var rules = []rule{
	{match: containsAny("ACM TRANSACTIONS ON INFORMATION SYSTEMS", "TOIS"), alias: "TOIS"},
	{match: containsAny("EMNLP"), alias: "EMNLP", findings: true},
	{match: containsAny("ACL"), alias: "ACL", findings: true},
	{match: containsAny("NEURIPS"), alias: "NeurIPS"},
	{match: containsAny("WSDM", "WEB SEARCH AND DATA MINING"), alias: "WSDM"},
	{match: containsAny("ARXIV"), alias: "arXiv", dropYear: true},
}

// Format returns a short label for a venue, e.g. "EMNLP 2024 Findings".
// A year embedded in the venue text wins over year; year <= 0 means unknown.
// Unrecognized venues are returned as written, with the year appended when
// the text does not already carry one.
func Format(venue string, year int) string {
	value := strings.TrimSpace(venue)
	if value == "" {
		if year > 0 {
			return strconv.Itoa(year)
		}
		return ""
	}

	upper := strings.ToUpper(value)
	yearInVenue := ""
	if m := yearRegex.FindStringSubmatch(value); m != nil {
		yearInVenue = m[1]
	}
	displayYear := yearInVenue
	if displayYear == "" && year > 0 {
		displayYear = strconv.Itoa(year)
	}

	for _, r := range rules {
		if !r.match(upper) {
			continue
		}
		if r.dropYear {
			return r.alias
		}
		label := r.alias
		if displayYear != "" {
			label += " " + displayYear
		}
		if r.findings && strings.Contains(upper, "FINDINGS") {
			label += " Findings"
		}
		return label
	}

	if yearInVenue != "" || displayYear == "" {
		return value
	}
	return value + " " + displayYear
}
