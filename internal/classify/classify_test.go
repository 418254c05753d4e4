package classify

import (
	"testing"

	"github.com/otaviolm/mandex/internal/model"
)

func TestOrderType(t *testing.T) {
	tests := []struct {
		text     string
		wantType model.OrderType
		wantCat  model.Category
	}{
		{"MANDADO DE BUSCA E APREENSÃO domiciliar", model.OrderTypeSearch, model.CategorySearch},
		{"mandado de busca e apreensao", model.OrderTypeSearch, model.CategorySearch},
		{"MANDADO DE PRISÃO em desfavor de fulano", model.OrderTypePrison, model.CategoryPrison},
		{"texto sem indicação nenhuma", model.OrderTypePrison, model.CategoryPrison},
	}

	for _, tt := range tests {
		gotType, gotCat := OrderType(tt.text)
		if gotType != tt.wantType || gotCat != tt.wantCat {
			t.Errorf("OrderType(%q) = (%q, %q), want (%q, %q)",
				tt.text, gotType, gotCat, tt.wantType, tt.wantCat)
		}
	}
}

func TestCrime_AlimonyOverridesEverything(t *testing.T) {
	// Support-debt wording wins even when an article reference is present
	text := "Execução de pensão alimentícia, Art. 528 do CPC, prisão civil do devedor"
	if got := Crime(text); got != "Pensão alimenticia" {
		t.Errorf("Crime() = %q, want Pensão alimenticia", got)
	}

	if got := Crime("devedor de alimentos em atraso"); got != "Pensão alimenticia" {
		t.Errorf("Crime() = %q, want Pensão alimenticia for bare alimentos", got)
	}
}

func TestCrime_ArticleOutranksKeywords(t *testing.T) {
	// Art. 157 (Roubo) must beat the furto keyword appearing in the same text
	text := "Incurso no Art. 157 do Código Penal; antecedente de furto registrado"
	if got := Crime(text); got != "Roubo" {
		t.Errorf("Crime() = %q, want article-mapped Roubo", got)
	}
}

func TestCrime_ArticleTable(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"incurso no artigo 121 do CP", "Homicídio"},
		{"art. 155 do Código Penal", "Furto"},
		{"Art 33 da Lei de Drogas", "Tráfico de drogas"},
		{"artigo 35 da Lei 11.343", "Tráfico de drogas"},
		{"art. 213 do CP", "Estupro"},
	}

	for _, tt := range tests {
		if got := Crime(tt.text); got != tt.want {
			t.Errorf("Crime(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestCrime_KeywordCascade(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"acusado de roubo qualificado", "Roubo"},
		{"apreensão de entorpecentes", "Tráfico de drogas"},
		{"medida protetiva da Lei Maria da Penha descumprida", "Violência doméstica"},
		{"condenado por estelionato", "Estelionato"},
		{"nenhuma tipificação reconhecida", "Outros"},
	}

	for _, tt := range tests {
		if got := Crime(tt.text); got != tt.want {
			t.Errorf("Crime(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestCrime_UnmappedArticleFallsThrough(t *testing.T) {
	// An article outside the table must not block the keyword cascade
	if got := Crime("art. 306 do CTB e roubo conexo"); got != "Roubo" {
		t.Errorf("Crime() = %q, want keyword fallthrough to Roubo", got)
	}

	// A 4-digit article never matches a 3-digit entry by prefix
	if got := Crime("descumprimento do dever previsto no Art. 1571 da legislação aplicável"); got != "Outros" {
		t.Errorf("Crime() = %q, want Outros for 4-digit article number", got)
	}
	if got := Crime("conduta do art. 331 do Código Penal"); got != "Outros" {
		t.Errorf("Crime() = %q, want Outros for unmapped 3-digit article", got)
	}
}

func TestRegime_SearchOrders(t *testing.T) {
	if got := Regime("cumpra-se a diligência", model.CategorySearch, "Outros"); got != "Localização" {
		t.Errorf("Regime() = %q, want Localização", got)
	}
	if got := Regime("designada audiência de justificação", model.CategorySearch, "Outros"); got != "Audiência de justificação" {
		t.Errorf("Regime() = %q, want Audiência de justificação", got)
	}
}

func TestRegime_AlimonyIsAlwaysCivil(t *testing.T) {
	got := Regime("regime fechado mencionado em outro contexto", model.CategoryPrison, "Pensão alimenticia")
	if got != "Civil" {
		t.Errorf("Regime() = %q, want Civil for alimony debt", got)
	}
}

func TestRegime_KeywordOrder(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"cumprimento em regime fechado", "Fechado"},
		{"regime semiaberto de cumprimento", "Semiaberto"},
		{"regime aberto concedido", "Aberto"},
		{"decretada a prisão preventiva", "Preventiva"},
		{"prisão temporária de 30 dias", "Temporária"},
		{"expedido contramandado de prisão", "Contramandado"},
	}

	for _, tt := range tests {
		if got := Regime(tt.text, model.CategoryPrison, "Outros"); got != tt.want {
			t.Errorf("Regime(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestRegime_BareCivilAndDefault(t *testing.T) {
	if got := Regime("ação de natureza civil", model.CategoryPrison, "Outros"); got != "Civil" {
		t.Errorf("Regime() = %q, want Civil", got)
	}
	if got := Regime("sem indicação de regime", model.CategoryPrison, "Outros"); got != "Outros" {
		t.Errorf("Regime() = %q, want Outros", got)
	}
}
