package model

// Sentinel values used when a field was actively searched and not found.
// Distinct from "" which means the field was simply absent/not applicable.
const (
	NameNotIdentified = "Nome não identificado"
	AddressNotGiven   = "Não informado"
)

// OrderType identifies the kind of judicial order
type OrderType string

const (
	OrderTypePrison OrderType = "MANDADO DE PRISÃO"
	OrderTypeSearch OrderType = "MANDADO DE BUSCA E APREENSÃO"
)

// Category is the short classification used by downstream consumers
type Category string

const (
	CategoryPrison Category = "prisao"
	CategorySearch Category = "busca"
)

// WarrantRecord is the structured interpretation of one warrant document.
// Every field has a defined non-nil default so the record is always
// serializable; it is not mutated after assembly.
type WarrantRecord struct {
	Name          string    `json:"name"`           // uppercase subject name or NameNotIdentified
	IDNumber      string    `json:"rg"`             // RG, "" when absent
	TaxID         string    `json:"cpf"`            // CPF, "" when absent
	ProcessNumber string    `json:"process_number"` // CNJ process number or ""
	OrderType     OrderType `json:"order_type"`
	Category      Category  `json:"category"`
	CrimeCategory string    `json:"crime_category"` // closed taxonomy label or "Outros"
	CustodyRegime string    `json:"custody_regime"`

	IssueDate      string `json:"issue_date"`      // YYYY-MM-DD
	ExpirationDate string `json:"expiration_date"` // YYYY-MM-DD
	BirthDate      string `json:"birth_date"`      // YYYY-MM-DD or ""
	Age            string `json:"age"`             // "N anos" or ""

	IssuingCourt string   `json:"issuing_court"`
	Addresses    []string `json:"addresses"` // never empty; AddressNotGiven when nothing found
	Observations string   `json:"observations"`

	TacticalMarkers  []string `json:"tactical_markers"`
	SearchChecklist  []string `json:"search_checklist"` // populated only for Category == CategorySearch
	AutoPriorityTags []string `json:"auto_priority_tags"`

	SourceLabel string `json:"source_label"`
	Strategy    string `json:"strategy"` // "ai" or "deterministic", for traceability
}

// NewWarrantRecord returns a record with all safe defaults applied
func NewWarrantRecord(sourceLabel string) *WarrantRecord {
	return &WarrantRecord{
		Name:             NameNotIdentified,
		OrderType:        OrderTypePrison,
		Category:         CategoryPrison,
		CrimeCategory:    "Outros",
		CustodyRegime:    "Outros",
		Addresses:        []string{AddressNotGiven},
		TacticalMarkers:  []string{},
		SearchChecklist:  []string{},
		AutoPriorityTags: []string{},
		SourceLabel:      sourceLabel,
	}
}
