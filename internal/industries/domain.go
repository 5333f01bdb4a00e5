package industries

// Industry is an industry row. The display name column is called industry,
// matching the wire field.
type Industry struct {
	Code string `json:"code"`
	Name string `json:"industry"`
}

// WithCompanies is the list view: an industry plus the codes of every
// company associated with it.
type WithCompanies struct {
	Code      string   `json:"code"`
	Name      string   `json:"industry"`
	CompCodes []string `json:"comp_codes"`
}

// IndustryInput carries the create payload.
type IndustryInput struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"industry" validate:"required"`
}
