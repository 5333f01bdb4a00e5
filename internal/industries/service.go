package industries

import (
	"context"
)

// Service handles industry business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]WithCompanies, error) {
	return s.repo.ListWithCompanies(ctx)
}

func (s *Service) Create(ctx context.Context, input IndustryInput) (Industry, error) {
	return s.repo.Create(ctx, Industry{Code: input.Code, Name: input.Name})
}
