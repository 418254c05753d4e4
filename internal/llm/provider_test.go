package llm

import (
	"strings"
	"testing"

	"github.com/otaviolm/mandex/internal/model"
)

func TestParseWarrantFields(t *testing.T) {
	raw := `{"name": "JOÃO CARLOS DA SILVA", "type": "prisao", "crime": "Roubo", "addresses": ["Rua A, 1"]}`

	fields, err := ParseWarrantFields(raw)
	if err != nil {
		t.Fatalf("ParseWarrantFields() error = %v", err)
	}
	if fields.Name != "JOÃO CARLOS DA SILVA" || fields.Crime != "Roubo" {
		t.Errorf("fields = %+v", fields)
	}
	if len(fields.Addresses) != 1 || fields.Addresses[0] != "Rua A, 1" {
		t.Errorf("fields.Addresses = %v", fields.Addresses)
	}
}

func TestParseWarrantFields_StripsCodeFences(t *testing.T) {
	raw := "```json\n{\"name\": \"MARIA APARECIDA SOUZA\"}\n```"

	fields, err := ParseWarrantFields(raw)
	if err != nil {
		t.Fatalf("ParseWarrantFields() error = %v", err)
	}
	if fields.Name != "MARIA APARECIDA SOUZA" {
		t.Errorf("fields.Name = %q", fields.Name)
	}
}

func TestParseWarrantFields_ToleratesSurroundingProse(t *testing.T) {
	raw := `Segue o resultado solicitado:
{"name": "PEDRO HENRIQUE ALMEIDA", "type": "busca"}
Espero ter ajudado.`

	fields, err := ParseWarrantFields(raw)
	if err != nil {
		t.Fatalf("ParseWarrantFields() error = %v", err)
	}
	if fields.Name != "PEDRO HENRIQUE ALMEIDA" || fields.Type != "busca" {
		t.Errorf("fields = %+v", fields)
	}
}

func TestParseWarrantFields_RejectsGarbage(t *testing.T) {
	if _, err := ParseWarrantFields("não consegui processar o texto"); err == nil {
		t.Fatal("ParseWarrantFields() error = nil, want error")
	}
}

func TestWarrantFieldsValid(t *testing.T) {
	tests := []struct {
		fields *WarrantFields
		want   bool
	}{
		{&WarrantFields{Name: "JOÃO CARLOS DA SILVA"}, true},
		{&WarrantFields{Name: "   "}, false},
		{&WarrantFields{}, false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := tt.fields.Valid(); got != tt.want {
			t.Errorf("Valid(%+v) = %v, want %v", tt.fields, got, tt.want)
		}
	}
}

func TestBuildPrompt_EmbedsDocumentText(t *testing.T) {
	prompt := BuildPrompt("MANDADO DE PRISÃO contra fulano")
	if !strings.Contains(prompt, "MANDADO DE PRISÃO contra fulano") {
		t.Error("BuildPrompt() does not embed the document text")
	}
	if !strings.Contains(prompt, "JSON") {
		t.Error("BuildPrompt() does not demand JSON output")
	}
}

func TestConfigFromModel_DefaultsModelsWhenEmpty(t *testing.T) {
	cfg := ConfigFromModel(model.LLMConfig{Provider: "openai"})
	if len(cfg.Models) == 0 {
		t.Fatal("ConfigFromModel() left the model ladder empty")
	}
	if cfg.Models[0] != DefaultConfig().Models[0] {
		t.Errorf("cfg.Models = %v", cfg.Models)
	}
}
