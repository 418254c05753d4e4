// Package review derives human-review flags from an assembled record. The
// extraction core always returns a record; these flags tell downstream
// reviewers which defaults were applied so acceptance stays a human call.
package review

import (
	"github.com/otaviolm/mandex/internal/model"
)

// Severity indicates the importance of a review flag
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Flag is one reason a record needs human attention
type Flag struct {
	Field       string   `json:"field"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// Flags evaluates the record and returns zero or more review flags
func Flags(record *model.WarrantRecord) []Flag {
	var flags []Flag

	if record.Name == model.NameNotIdentified {
		flags = append(flags, Flag{
			Field:       "name",
			Severity:    SeverityCritical,
			Description: "nenhum nome válido reconhecido no texto",
		})
	}

	if record.ProcessNumber == "" {
		flags = append(flags, Flag{
			Field:       "process_number",
			Severity:    SeverityWarning,
			Description: "número de processo não encontrado",
		})
	}

	if len(record.Addresses) == 1 && record.Addresses[0] == model.AddressNotGiven {
		flags = append(flags, Flag{
			Field:       "addresses",
			Severity:    SeverityWarning,
			Description: "nenhum endereço reconhecido",
		})
	}

	if record.CrimeCategory == "Outros" {
		flags = append(flags, Flag{
			Field:       "crime_category",
			Severity:    SeverityInfo,
			Description: "crime não classificado pela taxonomia",
		})
	}

	return flags
}
