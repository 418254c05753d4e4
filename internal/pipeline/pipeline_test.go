package pipeline

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/otaviolm/mandex/internal/cache"
	"github.com/otaviolm/mandex/internal/extract"
	"github.com/otaviolm/mandex/internal/llm"
	"github.com/otaviolm/mandex/internal/model"
)

func testClock() time.Time {
	return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
}

// newTestExtractor builds a deterministic-only extractor on a fixed clock
func newTestExtractor() *Extractor {
	return &Extractor{
		dates:  extract.NewDateEngineAt(testClock),
		config: model.DefaultConfig(),
		now:    testClock,
	}
}

const searchWarrantText = `MANDADO DE BUSCA E APREENSÃO

Réu: João Carlos da Silva
Processo: 0001234-56.2024.8.26.0001
Endereço: Rua das Flores, 123, Centro, São Paulo - SP

Apreender celulares e documentos encontrados no local.
Mandado expedido em 10 de janeiro de 2025.`

func TestExtract_RefusesLowContent(t *testing.T) {
	x := newTestExtractor()

	_, err := x.Extract(context.Background(), "texto curto   ", "a.txt")
	var lowErr *LowContentError
	if !errors.As(err, &lowErr) {
		t.Fatalf("Extract() error = %v, want LowContentError", err)
	}
	if lowErr.Length >= minUsableChars {
		t.Errorf("LowContentError.Length = %d", lowErr.Length)
	}
}

func TestExtract_SearchWarrantEndToEnd(t *testing.T) {
	x := newTestExtractor()

	record, err := x.Extract(context.Background(), searchWarrantText, "mandado-001.txt")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if record.Strategy != "deterministic" {
		t.Errorf("Strategy = %q", record.Strategy)
	}
	if record.Name != "JOÃO CARLOS DA SILVA" {
		t.Errorf("Name = %q", record.Name)
	}
	if record.OrderType != model.OrderTypeSearch || record.Category != model.CategorySearch {
		t.Errorf("OrderType/Category = %q/%q", record.OrderType, record.Category)
	}
	if record.ProcessNumber != "0001234-56.2024.8.26.0001" {
		t.Errorf("ProcessNumber = %q", record.ProcessNumber)
	}
	if record.IssueDate != "2025-01-10" {
		t.Errorf("IssueDate = %q, want 2025-01-10", record.IssueDate)
	}
	if record.ExpirationDate != "2025-07-09" {
		t.Errorf("ExpirationDate = %q, want issue + 180 days", record.ExpirationDate)
	}
	if record.CustodyRegime != "Localização" {
		t.Errorf("CustodyRegime = %q", record.CustodyRegime)
	}
	if len(record.SearchChecklist) == 0 {
		t.Error("SearchChecklist is empty for a search order")
	}
	if len(record.Addresses) != 1 || record.Addresses[0] != "Rua das Flores, 123, Centro, São Paulo - SP" {
		t.Errorf("Addresses = %v", record.Addresses)
	}
	if record.SourceLabel != "mandado-001.txt" {
		t.Errorf("SourceLabel = %q", record.SourceLabel)
	}
}

func TestExtract_WithoutAIEqualsDeterministic(t *testing.T) {
	x := newTestExtractor()

	fromExtract, err := x.Extract(context.Background(), searchWarrantText, "doc.txt")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	direct := x.Deterministic(searchWarrantText, "doc.txt")

	if !reflect.DeepEqual(fromExtract, direct) {
		t.Errorf("Extract() with AI disabled differs from Deterministic():\n%+v\n%+v", fromExtract, direct)
	}
}

// scriptedProvider returns a fixed result for every model
type scriptedProvider struct {
	fields *llm.WarrantFields
	err    error
	calls  int
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) IsAvailable(ctx context.Context) bool { return true }

func (p *scriptedProvider) ExtractWarrant(ctx context.Context, req llm.ExtractRequest) (*llm.WarrantFields, error) {
	p.calls++
	return p.fields, p.err
}

func TestExtract_AIFailureFallsBackSilently(t *testing.T) {
	x := newTestExtractor()
	provider := &scriptedProvider{err: fmt.Errorf("model overloaded")}
	x.ladder = llm.NewLadder(provider, []string{"gpt-4o-mini"})

	record, err := x.Extract(context.Background(), searchWarrantText, "doc.txt")
	if err != nil {
		t.Fatalf("Extract() error = %v, AI failure must not surface", err)
	}
	if record.Strategy != "deterministic" {
		t.Errorf("Strategy = %q, want deterministic fallback", record.Strategy)
	}
	if record.Name != "JOÃO CARLOS DA SILVA" {
		t.Errorf("Name = %q", record.Name)
	}
}

func TestExtract_AIResponseFillsDefaults(t *testing.T) {
	x := newTestExtractor()
	provider := &scriptedProvider{fields: &llm.WarrantFields{
		Name: "joão carlos da silva",
		Tags: []string{"Verificar endereço"},
	}}
	x.ladder = llm.NewLadder(provider, []string{"gpt-4o-mini"})

	record, err := x.Extract(context.Background(), searchWarrantText, "doc.txt")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if record.Strategy != "ai" {
		t.Errorf("Strategy = %q", record.Strategy)
	}
	if record.Name != "JOÃO CARLOS DA SILVA" {
		t.Errorf("Name = %q, want normalized uppercase", record.Name)
	}
	// Omitted type resolved from the text, dates from the rule cascade
	if record.Category != model.CategorySearch {
		t.Errorf("Category = %q", record.Category)
	}
	if record.IssueDate != "2025-01-10" || record.ExpirationDate != "2025-07-09" {
		t.Errorf("dates = %q/%q", record.IssueDate, record.ExpirationDate)
	}
	// Omitted addresses come from the deterministic extractor
	if len(record.Addresses) != 1 || record.Addresses[0] != "Rua das Flores, 123, Centro, São Paulo - SP" {
		t.Errorf("Addresses = %v", record.Addresses)
	}
	// Model tags are unioned with the derived set
	found := false
	for _, tag := range record.AutoPriorityTags {
		if tag == "Verificar endereço" {
			found = true
		}
	}
	if !found {
		t.Errorf("AutoPriorityTags = %v, missing model-provided tag", record.AutoPriorityTags)
	}
	if len(record.SearchChecklist) == 0 {
		t.Error("SearchChecklist is empty for a search order")
	}
}

func TestExtract_CacheHitSkipsReprocessing(t *testing.T) {
	x := newTestExtractor()
	x.records = cache.NewMemoryCache(time.Hour, time.Hour)
	provider := &scriptedProvider{fields: &llm.WarrantFields{Name: "MARIA APARECIDA SOUZA"}}
	x.ladder = llm.NewLadder(provider, []string{"gpt-4o-mini"})

	first, err := x.Extract(context.Background(), searchWarrantText, "a.txt")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	second, err := x.Extract(context.Background(), searchWarrantText, "b.txt")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1 (cache hit)", provider.calls)
	}
	if second.Name != first.Name || second.Strategy != "ai" {
		t.Errorf("cached record = %+v", second)
	}
	if second.SourceLabel != "b.txt" {
		t.Errorf("SourceLabel = %q, want the current document's label", second.SourceLabel)
	}
}

func TestMergeTags(t *testing.T) {
	got := mergeTags([]string{"Urgente", "Prioridade"}, []string{"Urgente", " Verificar endereço ", ""})
	want := []string{"Urgente", "Prioridade", "Verificar endereço"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("mergeTags() = %v, want %v", got, want)
	}
}

func TestDeterministic_PrisonWarrantWithAlimony(t *testing.T) {
	x := newTestExtractor()
	text := `MANDADO DE PRISÃO CIVIL

Executado: Carlos Eduardo Ferreira Lima
Processo: 0002222-33.2024.8.26.0100
Execução de pensão alimentícia, Art. 528 do CPC.
Valor devido: R$ 5.000,00
Expedido em: 05/03/2024`

	record := x.Deterministic(text, "alimentos.txt")

	if record.Category != model.CategoryPrison {
		t.Errorf("Category = %q", record.Category)
	}
	if record.CrimeCategory != "Pensão alimenticia" {
		t.Errorf("CrimeCategory = %q", record.CrimeCategory)
	}
	if record.CustodyRegime != "Civil" {
		t.Errorf("CustodyRegime = %q", record.CustodyRegime)
	}
	if record.IssueDate != "2024-03-05" {
		t.Errorf("IssueDate = %q", record.IssueDate)
	}
	if record.ExpirationDate != "2044-03-05" {
		t.Errorf("ExpirationDate = %q, want issue + 20 years", record.ExpirationDate)
	}
	hasBilling := false
	for _, tag := range record.AutoPriorityTags {
		if tag == "Aviso de cobrança" {
			hasBilling = true
		}
	}
	if !hasBilling {
		t.Errorf("AutoPriorityTags = %v, missing billing notice", record.AutoPriorityTags)
	}
	if len(record.SearchChecklist) != 0 {
		t.Errorf("SearchChecklist = %v, want empty for prison order", record.SearchChecklist)
	}
}
