// Package pipeline orchestrates warrant extraction: it selects between the
// AI-assisted strategy and the deterministic one, and assembles the final
// record. The caller never sees a different failure mode between the two
// strategies; the deterministic path is the mandatory fallback.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/otaviolm/mandex/internal/cache"
	"github.com/otaviolm/mandex/internal/classify"
	"github.com/otaviolm/mandex/internal/extract"
	"github.com/otaviolm/mandex/internal/llm"
	"github.com/otaviolm/mandex/internal/model"
	"github.com/otaviolm/mandex/internal/tactical"
)

// minUsableChars is the threshold below which input is refused as unreadable
const minUsableChars = 50

// LowContentError signals input too short to extract anything meaningful
// from. The only error an extraction can surface.
type LowContentError struct {
	Length int
}

func (e *LowContentError) Error() string {
	return fmt.Sprintf("document has only %d usable characters (minimum %d)", e.Length, minUsableChars)
}

// Extractor produces one WarrantRecord per input document
type Extractor struct {
	dates   *extract.DateEngine
	ladder  *llm.Ladder
	records cache.Cache
	config  *model.Config
	now     func() time.Time
}

// NewExtractor creates an extractor from configuration. The AI strategy is
// wired only when a provider is configured AND its credential resolves; any
// initialization failure downgrades to deterministic-only with a warning.
func NewExtractor(cfg *model.Config, keys *llm.KeySource) *Extractor {
	x := &Extractor{
		dates:  extract.NewDateEngine(),
		config: cfg,
		now:    time.Now,
	}

	if cfg.LLM.Provider != "" && keys != nil && keys.Enabled(cfg.LLM.Provider) {
		llmCfg := llm.ConfigFromModel(cfg.LLM)
		if llmCfg.APIKey == "" {
			llmCfg.APIKey = keys.Key("OPENAI_API_KEY")
		}
		provider, err := llm.NewProvider(llmCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else if provider != nil {
			x.ladder = llm.NewLadder(provider, llmCfg.Models)
		}
	}

	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			x.records = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			x.records = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		}
	}

	return x
}

// Extract produces the best-available structured record for the document.
// AI-assisted first when enabled; silent fallback to the deterministic
// pipeline on any AI failure, timeout or invalid response. Only unreadable
// input is an error.
func (x *Extractor) Extract(ctx context.Context, text, sourceLabel string) (*model.WarrantRecord, error) {
	usable := strings.TrimSpace(text)
	if len([]rune(usable)) < minUsableChars {
		return nil, &LowContentError{Length: len([]rune(usable))}
	}

	if x.records != nil {
		if data, found := x.records.Get(cache.Key(text)); found {
			var cached model.WarrantRecord
			if err := json.Unmarshal(data, &cached); err == nil {
				cached.SourceLabel = sourceLabel
				return &cached, nil
			}
		}
	}

	var record *model.WarrantRecord
	if x.ladder != nil {
		fields, err := x.ladder.Extract(ctx, text)
		if err != nil {
			if x.config.Output.Verbose {
				fmt.Fprintf(os.Stderr, "AI strategy failed, using deterministic pipeline: %v\n", err)
			}
		} else {
			record = x.assembleFromAI(fields, text, sourceLabel)
		}
	}
	if record == nil {
		record = x.Deterministic(text, sourceLabel)
	}

	if x.records != nil {
		if data, err := json.Marshal(record); err == nil {
			_ = x.records.Set(cache.Key(text), data, 0)
		}
	}

	return record, nil
}

// Deterministic runs the full rule-based pipeline: field extractors, date
// resolution, classification and tactical annotation. Pure with respect to
// the input text except for the issue-date default clock.
func (x *Extractor) Deterministic(text, sourceLabel string) *model.WarrantRecord {
	record := model.NewWarrantRecord(sourceLabel)
	record.Strategy = "deterministic"

	record.Name = extract.Name(text)
	record.IDNumber = extract.RG(text)
	record.TaxID = extract.CPF(text)
	record.ProcessNumber = extract.ProcessNumber(text)
	record.BirthDate = extract.BirthDate(text)
	record.Age = extract.Age(record.BirthDate, x.now())
	record.IssuingCourt = extract.IssuingCourt(text)
	record.Addresses = extract.Addresses(text)
	record.Observations = extract.Observations(text)

	record.OrderType, record.Category = classify.OrderType(text)
	record.CrimeCategory = classify.Crime(text)
	record.CustodyRegime = classify.Regime(text, record.Category, record.CrimeCategory)

	record.IssueDate = x.dates.IssueDate(text)
	record.ExpirationDate = x.dates.ExpirationDate(text, record.IssueDate)

	record.TacticalMarkers = tactical.RiskMarkers(text)
	record.SearchChecklist = tactical.SearchChecklist(text, record.Category)
	record.AutoPriorityTags = tactical.PriorityTags(text, record.CrimeCategory)

	return record
}

// assembleFromAI builds a record from a validated AI response, filling
// omitted optional fields with the deterministic safe defaults
func (x *Extractor) assembleFromAI(fields *llm.WarrantFields, text, sourceLabel string) *model.WarrantRecord {
	record := model.NewWarrantRecord(sourceLabel)
	record.Strategy = "ai"

	record.Name = strings.ToUpper(strings.TrimSpace(fields.Name))
	record.IDNumber = strings.TrimSpace(fields.RG)
	record.TaxID = strings.TrimSpace(fields.CPF)
	record.ProcessNumber = strings.TrimSpace(fields.ProcessNumber)
	record.IssuingCourt = strings.TrimSpace(fields.IssuingCourt)
	record.Observations = strings.TrimSpace(fields.Observations)
	record.BirthDate = strings.TrimSpace(fields.BirthDate)
	record.Age = extract.Age(record.BirthDate, x.now())

	switch {
	case strings.EqualFold(fields.Type, "busca"), strings.Contains(strings.ToLower(text), "ato infracional"):
		record.OrderType, record.Category = model.OrderTypeSearch, model.CategorySearch
	case strings.EqualFold(fields.Type, "prisao"):
		// default already set
	default:
		record.OrderType, record.Category = classify.OrderType(text)
	}

	if crime := strings.TrimSpace(fields.Crime); crime != "" {
		record.CrimeCategory = crime
	} else {
		record.CrimeCategory = classify.Crime(text)
	}
	if regime := strings.TrimSpace(fields.Regime); regime != "" {
		record.CustodyRegime = regime
	} else {
		record.CustodyRegime = classify.Regime(text, record.Category, record.CrimeCategory)
	}

	if record.IssueDate = strings.TrimSpace(fields.IssueDate); record.IssueDate == "" {
		record.IssueDate = x.dates.IssueDate(text)
	}
	if record.ExpirationDate = strings.TrimSpace(fields.ExpirationDate); record.ExpirationDate == "" {
		record.ExpirationDate = x.dates.ExpirationDate(text, record.IssueDate)
	}

	var addresses []string
	for _, addr := range fields.Addresses {
		if a := strings.TrimSpace(addr); a != "" {
			addresses = append(addresses, a)
		}
	}
	if len(addresses) > 0 {
		record.Addresses = addresses
	} else {
		record.Addresses = extract.Addresses(text)
	}

	// Tactical annotations are derived scans, always computed from the text
	record.TacticalMarkers = tactical.RiskMarkers(text)
	record.SearchChecklist = tactical.SearchChecklist(text, record.Category)
	record.AutoPriorityTags = mergeTags(tactical.PriorityTags(text, record.CrimeCategory), fields.Tags)

	return record
}

// mergeTags unions the derived and model-provided tag sets
func mergeTags(derived, fromModel []string) []string {
	seen := make(map[string]bool)
	merged := make([]string, 0, len(derived)+len(fromModel))
	for _, set := range [][]string{derived, fromModel} {
		for _, tag := range set {
			tag = strings.TrimSpace(tag)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			merged = append(merged, tag)
		}
	}
	return merged
}
