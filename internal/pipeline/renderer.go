package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/otaviolm/mandex/internal/model"
	"github.com/otaviolm/mandex/internal/review"
)

// Renderer writes assembled records as JSON and Markdown
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the record as indented JSON
func (r *Renderer) RenderJSON(record *model.WarrantRecord, path string) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report for the record
func (r *Renderer) RenderMarkdown(record *model.WarrantRecord, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", record.OrderType)
	fmt.Fprintf(&b, "**Fonte:** %s\n\n", record.SourceLabel)

	fmt.Fprintf(&b, "## Identificação\n\n")
	fmt.Fprintf(&b, "| Campo | Valor |\n|---|---|\n")
	fmt.Fprintf(&b, "| Nome | %s |\n", record.Name)
	fmt.Fprintf(&b, "| RG | %s |\n", orDash(record.IDNumber))
	fmt.Fprintf(&b, "| CPF | %s |\n", orDash(record.TaxID))
	fmt.Fprintf(&b, "| Nascimento | %s |\n", orDash(record.BirthDate))
	fmt.Fprintf(&b, "| Idade | %s |\n", orDash(record.Age))

	fmt.Fprintf(&b, "\n## Processo\n\n")
	fmt.Fprintf(&b, "| Campo | Valor |\n|---|---|\n")
	fmt.Fprintf(&b, "| Processo | %s |\n", orDash(record.ProcessNumber))
	fmt.Fprintf(&b, "| Juízo | %s |\n", orDash(record.IssuingCourt))
	fmt.Fprintf(&b, "| Crime | %s |\n", record.CrimeCategory)
	fmt.Fprintf(&b, "| Regime | %s |\n", record.CustodyRegime)
	fmt.Fprintf(&b, "| Expedição | %s |\n", record.IssueDate)
	fmt.Fprintf(&b, "| Validade | %s |\n", record.ExpirationDate)

	fmt.Fprintf(&b, "\n## Endereços\n\n")
	for _, addr := range record.Addresses {
		fmt.Fprintf(&b, "- %s\n", addr)
	}

	if len(record.TacticalMarkers) > 0 {
		fmt.Fprintf(&b, "\n## Marcadores táticos\n\n")
		for _, marker := range record.TacticalMarkers {
			fmt.Fprintf(&b, "- %s\n", marker)
		}
	}

	if len(record.SearchChecklist) > 0 {
		fmt.Fprintf(&b, "\n## Checklist de busca\n\n")
		for _, item := range record.SearchChecklist {
			fmt.Fprintf(&b, "- [ ] %s\n", item)
		}
	}

	if len(record.AutoPriorityTags) > 0 {
		fmt.Fprintf(&b, "\n**Tags:** %s\n", strings.Join(record.AutoPriorityTags, ", "))
	}
	if record.Observations != "" {
		fmt.Fprintf(&b, "\n**Observações:** %s\n", record.Observations)
	}

	if flags := review.Flags(record); len(flags) > 0 {
		fmt.Fprintf(&b, "\n## Revisão necessária\n\n")
		for _, flag := range flags {
			fmt.Fprintf(&b, "- **%s**: %s\n", flag.Severity, flag.Description)
		}
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "\n---\nGerado por mandex (estratégia: %s). Registro sujeito a revisão humana.\n", record.Strategy)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a one-record summary to stderr
func (r *Renderer) RenderSummary(record *model.WarrantRecord) {
	fmt.Fprintf(os.Stderr, "✓ %s — %s / %s / %s (expedição %s)\n",
		record.Name, record.Category, record.CrimeCategory, record.CustodyRegime, record.IssueDate)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
