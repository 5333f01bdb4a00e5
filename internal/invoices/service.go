package invoices

import (
	"context"
	"time"
)

// Service handles invoice business logic, including the payment-state
// resolution on update.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]Summary, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Detail, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, input CreateInput) (Invoice, error) {
	return s.repo.Create(ctx, input.CompCode, input.Amt)
}

// Update overwrites the amount and resolves the payment state against the
// currently persisted row. Read and write share one transaction, so a
// concurrent update cannot slip between resolution and write.
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (Invoice, error) {
	var updated Invoice
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		paid, paidDate, err := repo.PaymentState(ctx, id)
		if err != nil {
			return err
		}
		nextPaid, nextPaidDate := resolvePayment(paid, paidDate, input.Paid, s.now())
		updated, err = repo.Update(ctx, id, input.Amt, nextPaid, nextPaidDate)
		return err
	})
	if err != nil {
		return Invoice{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
