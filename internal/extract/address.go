package extract

import (
	"regexp"
	"strings"

	"github.com/otaviolm/mandex/internal/model"
)

// addressPattern captures a label-anchored block up to the next apparent
// "LABEL:" line or blank line. Go's regexp has no lookahead, so the
// terminator is a consumed non-capturing alternation; the scan loop resumes
// at the end of the captured group so a terminator label can anchor the
// next block.
var addressPattern = regexp.MustCompile(`(?is)(?:endere[çc]o\s+d[oa]\s+(?:r[ée]u|requerid[oa]|executad[oa])|endere[çc]o\s+para\s+(?:dilig[êe]ncia|cita[çc][ãa]o|intima[çc][ãa]o)|local\s+para\s+cumprimento|resid[êe]ncia|endere[çc]o|logradouro)\s*:\s*(.+?)(?:\n[^\n:]{1,60}:|\n\s*\n|$)`)

// addressStopPattern truncates a captured block at institutional boilerplate
var addressStopPattern = regexp.MustCompile(`\b(?:TRIBUNAL|PODER JUDICI[ÁA]RIO|COMARCA|F[ÓO]RUM|ESTADO D[EOA]|MANDADO|PROCESSO|CUMPRA-SE|OBSERVA[ÇC][ÃA]O|EXPEDIDO|INTIME-SE|VARA)\b`)

// negative markers meaning the address was actively reported absent
var addressNegativeMarkers = []string{
	"não informado", "nao informado", "sem endereço", "sem endereco",
	"endereço desconhecido", "endereco desconhecido", "não consta", "nao consta",
}

// Addresses extracts and sanitizes the subject's addresses. The returned
// list is never empty: when nothing is recognized it holds the single
// sentinel model.AddressNotGiven, and the sentinel is dropped whenever a
// genuine address was also found.
func Addresses(text string) []string {
	var found []string

	for start := 0; start < len(text); {
		m := addressPattern.FindStringSubmatchIndex(text[start:])
		if m == nil {
			break
		}
		addr := sanitizeAddress(text[start+m[2] : start+m[3]])
		// Resume right after the captured block, not after the full match:
		// the consumed terminator may itself be the next address label
		start += m[3]

		if addr == "" || addr == model.AddressNotGiven {
			continue
		}
		found = append(found, addr)
	}

	found = dedupeStrings(found)
	if len(found) == 0 {
		return []string{model.AddressNotGiven}
	}
	return found
}

// sanitizeAddress collapses whitespace, truncates at boilerplate and
// normalizes negative markers to the sentinel
func sanitizeAddress(raw string) string {
	addr := strings.Join(strings.Fields(raw), " ")

	if loc := addressStopPattern.FindStringIndex(addr); loc != nil {
		addr = addr[:loc[0]]
	}
	addr = strings.TrimSpace(strings.TrimRight(addr, ".,;:-– "))

	if addr == "" {
		return ""
	}

	lower := strings.ToLower(addr)
	for _, marker := range addressNegativeMarkers {
		if strings.Contains(lower, marker) {
			return model.AddressNotGiven
		}
	}
	return addr
}

// dedupeStrings removes duplicates preserving order
func dedupeStrings(values []string) []string {
	seen := make(map[string]bool)
	var unique []string
	for _, v := range values {
		key := strings.ToLower(v)
		if !seen[key] {
			seen[key] = true
			unique = append(unique, v)
		}
	}
	return unique
}
