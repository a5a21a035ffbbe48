package fhir_dto

type Patient struct {
	ID           string         `json:"id,omitempty"`
	ResourceType string         `json:"resourceType,omitempty"`
	Active       bool           `json:"active,omitempty"`
	Name         []HumanName    `json:"name,omitempty"`
	Telecom      []ContactPoint `json:"telecom,omitempty"`
	Gender       string         `json:"gender,omitempty"`
	BirthDate    string         `json:"birthDate,omitempty"`
	Identifier   []Identifier   `json:"identifier,omitempty"`
}

// HasDemographics reports whether the record carries at least one name
// entry and a birth date.
func (p *Patient) HasDemographics() bool {
	return len(p.Name) > 0 && p.BirthDate != ""
}
