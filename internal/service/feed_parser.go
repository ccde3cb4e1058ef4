package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// lineKind classifies one raw line of the AMFI NAV feed.
type lineKind int

const (
	headerLine lineKind = iota // blank, "Scheme Code" header, or "Open Ended" section marker
	fundLine                   // fund-house name, no semicolons
	dataLine                   // semicolon-delimited NAV record
	malformedLine              // semicolon-delimited but fewer than six fields
)

// navLine is one parsed data record from the feed.
type navLine struct {
	SchemeCode string
	SchemeName string
	Nav        decimal.Decimal
	Date       time.Time
}

// classifiedLine is the result of classifying a single feed line. FundName is
// set for fundLine, Record for dataLine.
type classifiedLine struct {
	Kind     lineKind
	FundName string
	Record   navLine
}

// Feed dates arrive as "02-Jan-2006"; ISO dates are accepted as a fallback.
var feedDateLayouts = []string{"02-Jan-2006", "2006-01-02"}

// classifyLine decides whether a raw feed line is a header, a fund-name line,
// or a data record. Unparseable NAV values default to zero and unparseable
// dates default to now; data lines with fewer than six fields are reported as
// malformed so the caller can count them. The pipeline never fails on a bad
// line.
func classifyLine(line string, now time.Time) classifiedLine {
	trimmed := strings.TrimSpace(line)

	if trimmed == "" || strings.HasPrefix(trimmed, "Scheme Code") || strings.Contains(trimmed, "Open Ended") {
		return classifiedLine{Kind: headerLine}
	}

	if !strings.Contains(trimmed, ";") {
		return classifiedLine{Kind: fundLine, FundName: trimmed}
	}

	fields := strings.Split(trimmed, ";")
	if len(fields) < 6 {
		return classifiedLine{Kind: malformedLine}
	}

	nav, err := decimal.NewFromString(strings.TrimSpace(fields[4]))
	if err != nil {
		nav = decimal.Zero
	}

	date := now
	for _, layout := range feedDateLayouts {
		if parsed, err := time.Parse(layout, strings.TrimSpace(fields[5])); err == nil {
			date = parsed.UTC()
			break
		}
	}

	return classifiedLine{
		Kind: dataLine,
		Record: navLine{
			SchemeCode: strings.TrimSpace(fields[0]),
			SchemeName: strings.TrimSpace(fields[3]),
			Nav:        nav,
			Date:       date,
		},
	}
}

// DeriveFundID computes the deterministic fund identifier from a fund's
// display name. Names ending in "Mutual Fund" lose the suffix and gain a
// "_MF" marker; all spaces are removed either way.
//
//	"XYZ Mutual Fund" -> "XYZ_MF"
//	"ABC Fund House"  -> "ABCFundHouse"
func DeriveFundID(fundName string) string {
	trimmed := strings.TrimSpace(fundName)

	const suffix = "mutual fund"
	if len(trimmed) >= len(suffix) && strings.EqualFold(trimmed[len(trimmed)-len(suffix):], suffix) {
		base := strings.TrimSpace(trimmed[:len(trimmed)-len(suffix)])
		return strings.ReplaceAll(base, " ", "") + "_MF"
	}

	return strings.ReplaceAll(trimmed, " ", "")
}
