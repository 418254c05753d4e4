package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/otaviolm/mandex/internal/model"
)

// Provider defines the interface for AI-assisted extraction backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// ExtractWarrant interprets the full document text in a single shot
	ExtractWarrant(ctx context.Context, req ExtractRequest) (*WarrantFields, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ErrUnauthorized marks credential failures. The model ladder aborts on it:
// retrying with a different model cannot fix a bad key.
var ErrUnauthorized = errors.New("llm: unauthorized")

// ErrIncompleteResponse marks a structurally valid response that misses the
// minimum validity bar (a non-empty name)
var ErrIncompleteResponse = errors.New("llm: incomplete response")

// ExtractRequest contains the input for one extraction attempt
type ExtractRequest struct {
	// Text is the full warrant document text
	Text string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// WarrantFields is the structured response contract. Every field is
// optional except Name, which is the minimum validity bar.
type WarrantFields struct {
	Name           string   `json:"name"`
	RG             string   `json:"rg"`
	CPF            string   `json:"cpf"`
	ProcessNumber  string   `json:"processNumber"`
	Type           string   `json:"type"` // "prisao" or "busca"
	Crime          string   `json:"crime"`
	Regime         string   `json:"regime"`
	IssueDate      string   `json:"issueDate"`
	ExpirationDate string   `json:"expirationDate"`
	Addresses      []string `json:"addresses"`
	Observations   string   `json:"observations"`
	Tags           []string `json:"tags"`
	BirthDate      string   `json:"birthDate"`
	IssuingCourt   string   `json:"issuingCourt"`
}

// Valid reports whether the response meets the minimum validity bar
func (f *WarrantFields) Valid() bool {
	return f != nil && strings.TrimSpace(f.Name) != ""
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Models is the ordered fallback ladder; first entry tried first
	Models []string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for each model attempt
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Models:    []string{"gpt-4o-mini", "gpt-4o"},
		Timeout:   30,
		MaxTokens: 1500,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	cfg := Config{
		Provider:   modelConfig.Provider,
		Models:     modelConfig.Models,
		APIKey:     modelConfig.APIKey,
		BaseURL:    modelConfig.BaseURL,
		Timeout:    modelConfig.Timeout,
		HTTPProxy:  modelConfig.HTTPProxy,
		HTTPSProxy: modelConfig.HTTPSProxy,
		NoProxy:    modelConfig.NoProxy,
	}
	if len(cfg.Models) == 0 {
		cfg.Models = DefaultConfig().Models
	}
	return cfg
}

// BuildPrompt constructs the single-shot extraction prompt
func BuildPrompt(text string) string {
	return fmt.Sprintf(`Você analisa o texto integral de um mandado judicial brasileiro (prisão ou busca e apreensão) e devolve APENAS um objeto JSON, sem comentários e sem cercas de código, com as chaves:

{"name": "", "rg": "", "cpf": "", "processNumber": "", "type": "prisao|busca", "crime": "", "regime": "", "issueDate": "YYYY-MM-DD", "expirationDate": "YYYY-MM-DD", "addresses": [], "observations": "", "tags": [], "birthDate": "YYYY-MM-DD", "issuingCourt": ""}

Regras:
1. "name" é o nome completo da pessoa alvo do mandado, em MAIÚSCULAS. Nunca use nomes de órgãos (tribunal, vara, delegacia).
2. Campos ausentes no documento ficam como string vazia ou lista vazia.
3. Datas sempre normalizadas para YYYY-MM-DD.
4. Não invente dados que não estejam no texto.

Texto do mandado:
%s`, text)
}

// ParseWarrantFields decodes a model response leniently: code fences and
// surrounding prose are stripped before unmarshalling
func ParseWarrantFields(raw string) (*WarrantFields, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	// Tolerate prose around the object by slicing the outermost braces
	if start := strings.Index(cleaned, "{"); start >= 0 {
		if end := strings.LastIndex(cleaned, "}"); end > start {
			cleaned = cleaned[start : end+1]
		}
	}

	var fields WarrantFields
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}
	return &fields, nil
}
