package invoices

import (
	"time"
)

// Invoice is an invoice row. PaidDate is nil until the invoice is paid.
type Invoice struct {
	ID       int64      `json:"id"`
	CompCode string     `json:"comp_code"`
	Amt      float64    `json:"amt"`
	Paid     bool       `json:"paid"`
	AddDate  time.Time  `json:"add_date"`
	PaidDate *time.Time `json:"paid_date"`
}

// Summary is the list projection: id and owning company code only.
type Summary struct {
	ID       int64  `json:"id"`
	CompCode string `json:"comp_code"`
}

// CompanyRef is the owning company as nested in the invoice detail view.
type CompanyRef struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Detail is an invoice joined with its owning company.
type Detail struct {
	ID       int64      `json:"id"`
	Amt      float64    `json:"amt"`
	Paid     bool       `json:"paid"`
	AddDate  time.Time  `json:"add_date"`
	PaidDate *time.Time `json:"paid_date"`
	Company  CompanyRef `json:"company"`
}

// CreateInput carries the create payload.
type CreateInput struct {
	CompCode string  `json:"comp_code" validate:"required"`
	Amt      float64 `json:"amt" validate:"required,gt=0"`
}

// UpdateInput carries the update payload. Paid is a pointer so an omitted
// field is distinguishable from an explicit false.
type UpdateInput struct {
	Amt  float64 `json:"amt" validate:"required,gt=0"`
	Paid *bool   `json:"paid"`
}

// resolvePayment computes the next paid/paid_date pair from the persisted
// state and the requested change:
//   - explicitly paid with no paid date on record: stamp now
//   - explicitly unpaid: clear the date, idempotently
//   - omitted, or paid while already paid: keep the persisted state
func resolvePayment(currentPaid bool, currentPaidDate *time.Time, requested *bool, now time.Time) (bool, *time.Time) {
	switch {
	case requested != nil && *requested && currentPaidDate == nil:
		return true, &now
	case requested != nil && !*requested:
		return false, nil
	default:
		return currentPaid, currentPaidDate
	}
}
