// Package tactical derives field-safety annotations from warrant text:
// risk markers, the search-operation checklist and automatic priority tags.
package tactical

import (
	"strings"

	"github.com/otaviolm/mandex/internal/model"
)

// keywordRule pairs a label with its keyword alternatives; any hit anywhere
// in the text appends the label. Rules are non-exclusive.
type keywordRule struct {
	label    string
	keywords []string
}

var riskRules = []keywordRule{
	{"Histórico de resistência", []string{"resistência", "resistencia", "resistiu à prisão", "resistiu a prisao", "desacato"}},
	{"Uso de arma de fogo", []string{"arma de fogo", "armado", "revólver", "revolver", "pistola", "fuzil"}},
	{"Facção criminosa", []string{"facção", "faccao", "organização criminosa", "organizacao criminosa", "associação criminosa", "associacao criminosa"}},
	{"Violência extrema", []string{"extrema violência", "extrema violencia", "crueldade", "tortura", "meio cruel"}},
	{"Foragido", []string{"foragido", "evadido", "fuga"}},
}

var checklistRules = []keywordRule{
	{"Celulares e telefones", []string{"celular", "telefone", "smartphone", "aparelho telefônico", "aparelho telefonico"}},
	{"Computadores e notebooks", []string{"computador", "notebook", "laptop"}},
	{"Documentos", []string{"documento", "comprovante", "anotações", "anotacoes"}},
	{"Dinheiro em espécie", []string{"dinheiro", "valores em espécie", "valores em especie", "numerário", "numerario"}},
	{"Mídias de armazenamento", []string{"pendrive", "pen drive", "hd externo", "cartão de memória", "cartao de memoria", "mídia", "midia"}},
	{"Armas e munições", []string{"arma", "munição", "municao"}},
	{"Veículos", []string{"veículo", "veiculo", "motocicleta", "automóvel", "automovel"}},
}

// checklistFallback guarantees the checklist is never empty for search orders
const checklistFallback = "Itens relacionados à investigação descritos no mandado"

// highPriorityCrimes is the crime-category set that triggers the Urgente tag
var highPriorityCrimes = map[string]bool{
	"Homicídio":             true,
	"Latrocínio":            true,
	"Tráfico de drogas":     true,
	"Roubo":                 true,
	"Estupro":               true,
	"Estupro de vulnerável": true,
}

var deadlineKeywords = []string{
	"cumprimento imediato", "prazo imediato", "imediato cumprimento",
	"urgente", "urgência", "urgencia", "prazo fixado",
}

// RiskMarkers scans for risk-indicator labels
func RiskMarkers(text string) []string {
	return matchRules(text, riskRules, "")
}

// SearchChecklist builds the item-category checklist for search orders.
// Returns nil for any other category; never empty for search orders.
func SearchChecklist(text string, category model.Category) []string {
	if category != model.CategorySearch {
		return []string{}
	}
	return matchRules(text, checklistRules, checklistFallback)
}

// PriorityTags derives the automatic priority tag set
func PriorityTags(text, crime string) []string {
	seen := make(map[string]bool)
	var tags []string
	add := func(tag string) {
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	if highPriorityCrimes[crime] {
		add("Urgente")
	}

	lower := strings.ToLower(text)
	for _, keyword := range deadlineKeywords {
		if strings.Contains(lower, keyword) {
			add("Prioridade")
			break
		}
	}

	if crime == "Pensão alimenticia" {
		add("Aviso de cobrança")
	}

	if tags == nil {
		return []string{}
	}
	return tags
}

// matchRules evaluates keyword rules against the text, appending each rule's
// label on the first keyword hit. The fallback label, when non-empty, is
// emitted if no rule matched.
func matchRules(text string, rules []keywordRule, fallback string) []string {
	lower := strings.ToLower(text)
	var labels []string

	for _, rule := range rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				labels = append(labels, rule.label)
				break
			}
		}
	}

	if len(labels) == 0 {
		if fallback != "" {
			return []string{fallback}
		}
		return []string{}
	}
	return labels
}
