package companies

// Company is a company row.
type Company struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Summary is the list projection: code and name only.
type Summary struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Detail is the aggregated company view: the company row plus the names of
// its industries and the identifiers of its invoices.
type Detail struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Industries  []string `json:"industries"`
	Invoices    []int64  `json:"invoices"`
}

// CompanyInput carries the create/update payload. The code is never taken
// from the client; on create it is derived from the name.
type CompanyInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// AssociateInput names the industry to attach to a company.
type AssociateInput struct {
	IndustryCode string `json:"industry_code" validate:"required"`
}
