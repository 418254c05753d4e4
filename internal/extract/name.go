package extract

import (
	"regexp"
	"strings"

	"github.com/otaviolm/mandex/internal/model"
)

// Label-anchored name patterns, tried in priority order. First match wins.
var nameLabelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)nome\s+d[oa]\s+(?:r[ée]u|autuad[oa]|investigad[oa]|apenad[oa]|executad[oa])\s*:?\s*([^\n,;]+)`),
	regexp.MustCompile(`(?i)\b(?:r[ée]u|requerid[oa]|indiciad[oa]|investigad[oa]|executad[oa]|autuad[oa]|apenad[oa]|acusad[oa])\s*:\s*([^\n,;]+)`),
	regexp.MustCompile(`(?i)mandado\s+de\s+(?:pris[ãa]o|busca\s+e\s+apreens[ãa]o)[^\n]{0,40}?(?:em\s+desfavor\s+de|em\s+face\s+de|contra)\s+([^\n,;]+)`),
	regexp.MustCompile(`(?i)\bem\s+(?:desfavor|face)\s+de\s+([^\n,;]+)`),
	regexp.MustCompile(`(?i)\bqualifica[çc][ãa]o\s*:\s*([^\n,;]+)`),
}

// uppercaseRunPattern matches runs of consecutive all-uppercase words, the
// fallback used when no label pattern yields a valid candidate.
var uppercaseRunPattern = regexp.MustCompile(`\b[A-ZÀ-Ü]{2,}(?:\s+[A-ZÀ-Ü]{2,}){1,}\b`)

// nameExclusions are institutional/legal terms that disqualify a candidate.
// Any exclusion appearing as a substring of the candidate rejects it.
var nameExclusions = []string{
	"TRIBUNAL", "JUSTIÇA", "JUSTICA", "PODER", "JUDICIÁRIO", "JUDICIARIO",
	"ESTADO", "COMARCA", "VARA", "FÓRUM", "FORUM", "JUÍZO", "JUIZO",
	"POLÍCIA", "POLICIA", "DELEGACIA", "MINISTÉRIO", "MINISTERIO", "PÚBLICO",
	"PUBLICO", "SECRETARIA", "MANDADO", "PRISÃO", "PRISAO", "BUSCA",
	"APREENSÃO", "APREENSAO", "PROCESSO", "CUMPRIMENTO", "CENTRAL",
	"EXECUÇÃO", "EXECUCAO", "PENAL", "DEFENSORIA", "CARTÓRIO", "CARTORIO",
	"AUDIÊNCIA", "AUDIENCIA", "OFICIAL", "ENDEREÇO", "ENDERECO",
}

// Name extracts the subject name from warrant text. Label patterns are
// tried first; failing those, the longest run of consecutive uppercase
// words is used. Candidates containing any institutional term are
// rejected. Never fails: returns model.NameNotIdentified when nothing
// qualifies.
func Name(text string) string {
	for _, pattern := range nameLabelPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := cleanNameCandidate(m[1])
		if validName(candidate, 5) {
			return candidate
		}
	}

	// Fallback: longest uppercase multi-word run anywhere in the text
	best := ""
	for _, run := range uppercaseRunPattern.FindAllString(text, -1) {
		candidate := cleanNameCandidate(run)
		if validName(candidate, 8) && len(candidate) > len(best) {
			best = candidate
		}
	}
	if best != "" {
		return best
	}

	return model.NameNotIdentified
}

// cleanNameCandidate normalizes a raw capture to an uppercase name
func cleanNameCandidate(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, ".,:-–")
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToUpper(s)
}

// validName applies the acceptance rules shared by both strategies
func validName(candidate string, minLen int) bool {
	if len(candidate) <= minLen {
		return false
	}
	if len(strings.Fields(candidate)) < 2 {
		return false
	}
	for _, term := range nameExclusions {
		if strings.Contains(candidate, term) {
			return false
		}
	}
	return true
}
