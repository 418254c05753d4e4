package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// Label-anchored document identifiers. All extractors here return "" on no
// match; a missing optional field is the expected outcome, never an error.
var (
	rgPattern  = regexp.MustCompile(`(?i)\bRG\s*(?:n[º°.]?\s*)?[:.]?\s*([\d][\d.\- ]{4,13}[\dxX])`)
	cpfPattern = regexp.MustCompile(`(?i)\bCPF\s*(?:n[º°.]?\s*)?[:.]?\s*(\d{3}\.?\d{3}\.?\d{3}[-.]?\d{2})`)

	// CNJ unified numbering: NNNNNNN-DD.AAAA.J.TR.OOOO
	processPattern = regexp.MustCompile(`\d{7}-?\d{2}\.?\d{4}\.?\d\.?\d{2}\.?\d{4}`)

	birthDatePattern = regexp.MustCompile(`(?i)(?:data\s+de\s+nascimento|nascimento|nascid[oa]\s+em)\s*:?\s*(\d{1,2}/\d{1,2}/\d{4})`)

	courtPattern = regexp.MustCompile(`(?i)(?:ju[ií]zo\s+de\s+direito\s+d[ae]|ju[ií]zo|[óo]rg[ãa]o\s+expedidor|expedid[oa]\s+pel[ao])\s*:?\s*([^\n]+)`)

	// Boilerplate that frequently trails the captured court span
	courtTrailers = []string{
		"TRIBUNAL", "JUIZ", "JUÍZA", "JUIZA", "SECRETARIA", "SECRETÁRIO",
		"SECRETARIO", "Processo Digital", "PROCESSO DIGITAL", "ESCRIVÃO",
		"ESCRIVAO", "Documento assinado",
	}

	phonePattern    = regexp.MustCompile(`(?i)(?:telefone|fone|celular|contato)\s*:?\s*((?:\+?\d{2}\s*)?\(?\d{2}\)?\s*9?\d{4}[-\s]?\d{4})`)
	debtPattern     = regexp.MustCompile(`(?i)(?:d[ée]bito|valor\s+(?:devido|da\s+d[ií]vida|executado))\s*(?:de|:)?\s*(R\$\s?[\d.,]+)`)
	deadlinePattern = regexp.MustCompile(`(?i)prazo\s+de\s+(\d+)\s+dias?`)
)

// RG extracts the subject's RG number
func RG(text string) string {
	if m := rgPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// CPF extracts the subject's CPF number
func CPF(text string) string {
	if m := cpfPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ProcessNumber extracts the first CNJ-format process number
func ProcessNumber(text string) string {
	return processPattern.FindString(text)
}

// BirthDate extracts a labeled birth date, normalized to YYYY-MM-DD
func BirthDate(text string) string {
	m := birthDatePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return normalizeSlashDate(m[1])
}

// IssuingCourt extracts the issuing court, trimming trailing boilerplate.
// Spans outside a sane length window are rejected.
func IssuingCourt(text string) string {
	m := courtPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}

	span := strings.TrimSpace(m[1])
	for _, trailer := range courtTrailers {
		if idx := strings.Index(span, trailer); idx > 0 {
			span = span[:idx]
		}
	}
	span = strings.TrimSpace(strings.Trim(span, ".,:-–"))

	if len(span) < 4 || len(span) > 120 {
		return ""
	}
	return span
}

// Observations aggregates secondary extracted facts (phone numbers, debt
// amount, deadlines) into one free-text field
func Observations(text string) string {
	var parts []string

	for _, m := range phonePattern.FindAllStringSubmatch(text, -1) {
		parts = append(parts, "Telefone: "+strings.TrimSpace(m[1]))
	}
	if m := debtPattern.FindStringSubmatch(text); m != nil {
		parts = append(parts, "Débito: "+strings.TrimSpace(m[1]))
	}
	if m := deadlinePattern.FindStringSubmatch(text); m != nil {
		parts = append(parts, fmt.Sprintf("Prazo de %s dias", m[1]))
	}

	return strings.Join(parts, "; ")
}
