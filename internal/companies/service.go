package companies

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/biztime/biztime/internal/platform/httpx"
)

// Service handles company business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Summary, error) {
	return s.repo.List(ctx)
}

// Get composes the full company view. The industry and invoice reads are
// independent, so they run concurrently.
func (s *Service) Get(ctx context.Context, code string) (Detail, error) {
	var (
		company    Company
		industries []string
		invoiceIDs []int64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		company, industries, err = s.repo.GetWithIndustries(ctx, code)
		return err
	})
	g.Go(func() error {
		var err error
		invoiceIDs, err = s.repo.InvoiceIDs(ctx, code)
		return err
	})
	if err := g.Wait(); err != nil {
		return Detail{}, err
	}

	return Detail{
		Code:        company.Code,
		Name:        company.Name,
		Description: company.Description,
		Industries:  industries,
		Invoices:    invoiceIDs,
	}, nil
}

// Create derives the company code from the name and persists the row.
func (s *Service) Create(ctx context.Context, input CompanyInput) (Company, error) {
	code := Slugify(input.Name)
	if code == "" {
		return Company{}, fmt.Errorf("name yields an empty code: %w", httpx.ErrValidation)
	}
	return s.repo.Create(ctx, Company{
		Code:        code,
		Name:        input.Name,
		Description: input.Description,
	})
}

// Update rewrites name and description. The code is stable for the life of
// the row and is never reassigned.
func (s *Service) Update(ctx context.Context, code string, input CompanyInput) (Company, error) {
	return s.repo.Update(ctx, code, input.Name, input.Description)
}

func (s *Service) Delete(ctx context.Context, code string) error {
	return s.repo.Delete(ctx, code)
}

// Associate links a company to an industry. A missing company or industry
// surfaces as a referential failure, not a generic one.
func (s *Service) Associate(ctx context.Context, compCode, industryCode string) error {
	return s.repo.Associate(ctx, compCode, industryCode)
}
