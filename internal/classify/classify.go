// Package classify determines the legal classification of a warrant:
// order type/category, crime category and custody regime.
package classify

import (
	"regexp"
	"strings"

	"github.com/otaviolm/mandex/internal/model"
)

var (
	searchOrderPattern = regexp.MustCompile(`(?i)busca\s+e\s+apreens[ãa]o`)

	// Explicit legal-article reference. The trailing boundary keeps 4-digit
	// numbers (Art. 1571) from truncating to a 3-digit table entry.
	articlePattern = regexp.MustCompile(`(?i)(?:art(?:igo)?\.?\s*)(\d{1,3})\b`)

	alimonyPattern       = regexp.MustCompile(`(?i)pens[ãa]o\s+aliment[íi]cia|presta[çc][ãa]o\s+aliment[íi]cia|\balimentos\b|\bcivil\b`)
	justificationPattern = regexp.MustCompile(`(?i)audi[êe]ncia\s+de\s+justifica[çc][ãa]o`)
)

// articleCrimes maps penal-code article numbers to crime labels. An article
// match always outranks keyword matching.
var articleCrimes = map[string]string{
	"121": "Homicídio",
	"129": "Lesão corporal",
	"147": "Ameaça",
	"155": "Furto",
	"157": "Roubo",
	"171": "Estelionato",
	"180": "Receptação",
	"213": "Estupro",
	"217": "Estupro de vulnerável",
	"33":  "Tráfico de drogas",
	"35":  "Tráfico de drogas",
}

// crimeRule pairs a crime label with its keyword alternatives
type crimeRule struct {
	label    string
	keywords []string
}

// crimeRules is evaluated in order; the first rule with any keyword hit
// wins. Only consulted when no article resolves.
var crimeRules = []crimeRule{
	{"Tráfico de drogas", []string{"tráfico", "trafico", "entorpecente", "droga"}},
	{"Homicídio", []string{"homicídio", "homicidio", "assassinato"}},
	{"Latrocínio", []string{"latrocínio", "latrocinio"}},
	{"Roubo", []string{"roubo", "assalto"}},
	{"Furto", []string{"furto"}},
	{"Estupro", []string{"estupro"}},
	{"Violência doméstica", []string{"maria da penha", "violência doméstica", "violencia domestica"}},
	{"Estelionato", []string{"estelionato", "fraude"}},
	{"Porte ilegal de arma", []string{"porte ilegal", "posse irregular de arma"}},
	{"Receptação", []string{"receptação", "receptacao"}},
}

// regimeRule pairs a custody regime label with its keyword alternatives
type regimeRule struct {
	label    string
	keywords []string
}

// regimeRules is evaluated in order; first keyword hit wins
var regimeRules = []regimeRule{
	{"Fechado", []string{"regime fechado", "fechado"}},
	{"Semiaberto", []string{"semiaberto", "semi-aberto", "semi aberto"}},
	{"Aberto", []string{"regime aberto", "aberto"}},
	{"Preventiva", []string{"preventiva", "prisão preventiva", "prisao preventiva"}},
	{"Temporária", []string{"temporária", "temporaria"}},
	{"Contramandado", []string{"contramandado", "contraordem"}},
}

// OrderType classifies the document as a search-and-seizure or prison
// order. Two-way decision: prison is the default, there is no unknown.
func OrderType(text string) (model.OrderType, model.Category) {
	if searchOrderPattern.MatchString(text) {
		return model.OrderTypeSearch, model.CategorySearch
	}
	return model.OrderTypePrison, model.CategoryPrison
}

// Crime resolves the crime category. The alimony/support override is
// checked first (business rule), then explicit article references mapped
// through the article table, then the ordered keyword cascade. Falls back
// to "Outros".
func Crime(text string) string {
	if alimonyPattern.MatchString(text) {
		return "Pensão alimenticia"
	}

	for _, m := range articlePattern.FindAllStringSubmatch(text, -1) {
		if label, ok := articleCrimes[m[1]]; ok {
			return label
		}
	}

	lower := strings.ToLower(text)
	for _, rule := range crimeRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.label
			}
		}
	}

	return "Outros"
}

// Regime resolves the custody regime for the given category and crime.
// Search orders carry a location regime; alimony debt is always civil.
func Regime(text string, category model.Category, crime string) string {
	if category == model.CategorySearch {
		if justificationPattern.MatchString(text) {
			return "Audiência de justificação"
		}
		return "Localização"
	}

	if crime == "Pensão alimenticia" {
		return "Civil"
	}

	lower := strings.ToLower(text)
	for _, rule := range regimeRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.label
			}
		}
	}

	if strings.Contains(lower, "civil") {
		return "Civil"
	}
	return "Outros"
}
