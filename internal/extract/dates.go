package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// months maps spelled Portuguese month names to their number
var months = map[string]int{
	"janeiro":   1,
	"fevereiro": 2,
	"março":     3,
	"abril":     4,
	"maio":      5,
	"junho":     6,
	"julho":     7,
	"agosto":    8,
	"setembro":  9,
	"outubro":   10,
	"novembro":  11,
	"dezembro":  12,
}

var (
	issueLabelPattern   = regexp.MustCompile(`(?i)(?:data\s+de\s+expedi[çc][ãa]o|expedi[çc][ãa]o|expedid[oa]\s+em)\s*:?\s*(\d{1,2}/\d{1,2}/\d{4})`)
	issueSpelledPattern = regexp.MustCompile(`(?i)(?:expedi[çc][ãa]o|expedid[oa]\s+em)\s*:?\s*(\d{1,2})\s+de\s+([a-zçã]+)\s+de\s+(\d{4})`)
	closingPattern      = regexp.MustCompile(`(?i)dado\s+e\s+passado\s+[^\n]{0,120}?(?:aos?|em)\s+(\d{1,2})\s+(?:dias?\s+)?(?:de|do\s+m[êe]s\s+de)\s+([a-zçã]+)\s+(?:de|do\s+ano\s+de)\s+(\d{4})`)
	bareDatePattern     = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`)

	expirationLabelPattern   = regexp.MustCompile(`(?i)(?:validade|v[áa]lido\s+at[ée]|expira(?:\s+em)?|prescreve\s+em|data\s+de\s+vencimento)\s*:?\s*(\d{1,2}/\d{1,2}/\d{4})`)
	expirationSpelledPattern = regexp.MustCompile(`(?i)(?:validade|v[áa]lido\s+at[ée]|expira(?:\s+em)?|prescreve\s+em)\s*:?\s*(\d{1,2})\s+de\s+([a-zçã]+)\s+de\s+(\d{4})`)

	searchOrderPattern = regexp.MustCompile(`(?i)busca\s+e\s+apreens[ãa]o`)
)

// DateEngine resolves issue and expiration dates from warrant text.
// The clock is injectable so tests are deterministic.
type DateEngine struct {
	now func() time.Time
}

// NewDateEngine creates a date engine using the wall clock
func NewDateEngine() *DateEngine {
	return &DateEngine{now: time.Now}
}

// NewDateEngineAt creates a date engine with a fixed clock (for tests)
func NewDateEngineAt(now func() time.Time) *DateEngine {
	return &DateEngine{now: now}
}

// IssueDate resolves the issuance date, normalized to YYYY-MM-DD.
// Cascade: explicit label, spelled-month label, closing-phrase idiom, then a
// generic DD/MM/YYYY scan taking the LAST occurrence (issuance dates appear
// after boilerplate birth dates in most layouts). Defaults to the processing
// date when nothing matches.
func (e *DateEngine) IssueDate(text string) string {
	if m := issueLabelPattern.FindStringSubmatch(text); m != nil {
		if d := normalizeSlashDate(m[1]); d != "" {
			return d
		}
	}
	if m := issueSpelledPattern.FindStringSubmatch(text); m != nil {
		if d := normalizeSpelledDate(m[1], m[2], m[3]); d != "" {
			return d
		}
	}
	if m := closingPattern.FindStringSubmatch(text); m != nil {
		if d := normalizeSpelledDate(m[1], m[2], m[3]); d != "" {
			return d
		}
	}
	if all := bareDatePattern.FindAllStringSubmatch(text, -1); len(all) > 0 {
		last := all[len(all)-1]
		if d := normalizeSlashDate(last[1]); d != "" {
			return d
		}
	}

	return e.now().Format("2006-01-02")
}

// ExpirationDate resolves the expiration date. Explicit validity labels are
// tried first; absent those the date is COMPUTED: issue + 180 days for
// search-and-seizure orders, issue + 20 years otherwise. The computed
// fallback is business policy, not a parsing heuristic.
func (e *DateEngine) ExpirationDate(text, issueDate string) string {
	if m := expirationLabelPattern.FindStringSubmatch(text); m != nil {
		if d := normalizeSlashDate(m[1]); d != "" {
			return d
		}
	}
	if m := expirationSpelledPattern.FindStringSubmatch(text); m != nil {
		if d := normalizeSpelledDate(m[1], m[2], m[3]); d != "" {
			return d
		}
	}

	issued, err := time.Parse("2006-01-02", issueDate)
	if err != nil {
		issued = e.now()
	}
	if searchOrderPattern.MatchString(text) {
		return issued.AddDate(0, 0, 180).Format("2006-01-02")
	}
	return issued.AddDate(20, 0, 0).Format("2006-01-02")
}

// normalizeSlashDate converts DD/MM/YYYY to YYYY-MM-DD, "" when invalid
func normalizeSlashDate(s string) string {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return ""
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return ""
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// normalizeSpelledDate converts "<day> de <month> de <year>" captures
func normalizeSpelledDate(dayStr, monthName, yearStr string) string {
	month, ok := months[strings.ToLower(monthName)]
	if !ok {
		return ""
	}
	day, err1 := strconv.Atoi(dayStr)
	year, err2 := strconv.Atoi(yearStr)
	if err1 != nil || err2 != nil || day < 1 || day > 31 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
