package companies

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/biztime/biztime/internal/platform/httpx"
)

var (
	ErrNotFound      = fmt.Errorf("company: %w", httpx.ErrNotFound)
	ErrAlreadyExists = fmt.Errorf("company code: %w", httpx.ErrDuplicate)
	// ErrMissingReference covers association inserts naming a company or
	// industry that does not exist.
	ErrMissingReference = fmt.Errorf("company or industry: %w", httpx.ErrMissingReference)
)

// Repository defines data access for companies.
type Repository interface {
	List(ctx context.Context) ([]Summary, error)
	GetWithIndustries(ctx context.Context, code string) (Company, []string, error)
	InvoiceIDs(ctx context.Context, code string) ([]int64, error)
	Create(ctx context.Context, company Company) (Company, error)
	Update(ctx context.Context, code, name, description string) (Company, error)
	Delete(ctx context.Context, code string) error
	Associate(ctx context.Context, compCode, industryCode string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context) ([]Summary, error) {
	rows, err := r.pool.Query(ctx, `SELECT code, name FROM companies ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("companies: list: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.Code, &s.Name); err != nil {
			return nil, fmt.Errorf("companies: list scan: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// GetWithIndustries fetches a company and the names of its industries in one
// left-joined query. A lone row with a NULL industry column means the company
// exists but has no industries.
func (r *repository) GetWithIndustries(ctx context.Context, code string) (Company, []string, error) {
	const query = `
		SELECT c.code, c.name, c.description, i.industry
		FROM companies c
		LEFT JOIN companies_industries ci ON ci.comp_code = c.code
		LEFT JOIN industries i ON i.code = ci.industry_code
		WHERE c.code = $1`

	rows, err := r.pool.Query(ctx, query, code)
	if err != nil {
		return Company{}, nil, fmt.Errorf("companies: get: %w", err)
	}
	defer rows.Close()

	var company Company
	industries := []string{}
	found := false
	for rows.Next() {
		var description, industry pgtype.Text
		if err := rows.Scan(&company.Code, &company.Name, &description, &industry); err != nil {
			return Company{}, nil, fmt.Errorf("companies: get scan: %w", err)
		}
		found = true
		company.Description = description.String
		if industry.Valid {
			industries = append(industries, industry.String)
		}
	}
	if err := rows.Err(); err != nil {
		return Company{}, nil, err
	}
	if !found {
		return Company{}, nil, ErrNotFound
	}
	return company, industries, nil
}

func (r *repository) InvoiceIDs(ctx context.Context, code string) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM invoices WHERE comp_code = $1 ORDER BY id`, code)
	if err != nil {
		return nil, fmt.Errorf("companies: invoice ids: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("companies: invoice ids scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *repository) Create(ctx context.Context, company Company) (Company, error) {
	const query = `
		INSERT INTO companies (code, name, description)
		VALUES ($1, $2, $3)
		RETURNING code, name, description`

	var created Company
	var description pgtype.Text
	err := r.pool.QueryRow(ctx, query, company.Code, company.Name, company.Description).
		Scan(&created.Code, &created.Name, &description)
	if err != nil {
		return Company{}, translateConstraint(err)
	}
	created.Description = description.String
	return created, nil
}

func (r *repository) Update(ctx context.Context, code, name, description string) (Company, error) {
	const query = `
		UPDATE companies
		SET name = $2, description = $3
		WHERE code = $1
		RETURNING code, name, description`

	var updated Company
	var desc pgtype.Text
	err := r.pool.QueryRow(ctx, query, code, name, description).
		Scan(&updated.Code, &updated.Name, &desc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Company{}, ErrNotFound
		}
		return Company{}, fmt.Errorf("companies: update: %w", err)
	}
	updated.Description = desc.String
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, code string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("companies: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Associate(ctx context.Context, compCode, industryCode string) error {
	const query = `
		INSERT INTO companies_industries (comp_code, industry_code)
		VALUES ($1, $2)`

	if _, err := r.pool.Exec(ctx, query, compCode, industryCode); err != nil {
		return translateConstraint(err)
	}
	return nil
}

// translateConstraint maps PostgreSQL constraint violations onto domain
// sentinels; anything else passes through wrapped.
func translateConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrAlreadyExists
		case "23503":
			return ErrMissingReference
		}
	}
	return fmt.Errorf("companies: %w", err)
}
