package industries

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/biztime/biztime/internal/platform/httpx"
)

var ErrAlreadyExists = fmt.Errorf("industry code: %w", httpx.ErrDuplicate)

// Repository defines data access for industries.
type Repository interface {
	ListWithCompanies(ctx context.Context) ([]WithCompanies, error)
	Create(ctx context.Context, industry Industry) (Industry, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// ListWithCompanies returns every industry with its associated company
// codes. Rows are grouped by industry code in first-seen order; a NULL
// comp_code from the left join means the industry has no associations and
// contributes nothing to its group.
func (r *repository) ListWithCompanies(ctx context.Context) ([]WithCompanies, error) {
	const query = `
		SELECT i.code, i.industry, ci.comp_code
		FROM industries i
		LEFT JOIN companies_industries ci ON ci.industry_code = i.code
		ORDER BY i.code, ci.comp_code`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("industries: list: %w", err)
	}
	defer rows.Close()

	var joined []joinedRow
	for rows.Next() {
		var jr joinedRow
		var compCode pgtype.Text
		if err := rows.Scan(&jr.Code, &jr.Name, &compCode); err != nil {
			return nil, fmt.Errorf("industries: list scan: %w", err)
		}
		if compCode.Valid {
			jr.CompCode = &compCode.String
		}
		joined = append(joined, jr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groupByIndustry(joined), nil
}

// joinedRow is one row of the industries left join. CompCode is nil when
// the industry has no associations.
type joinedRow struct {
	Code     string
	Name     string
	CompCode *string
}

// groupByIndustry collapses joined rows into one entry per industry,
// preserving first-seen order. A nil comp_code contributes no entry, so an
// industry with no associations keeps an empty, non-nil list.
func groupByIndustry(rows []joinedRow) []WithCompanies {
	var order []string
	groups := map[string]*WithCompanies{}
	for _, row := range rows {
		group, ok := groups[row.Code]
		if !ok {
			group = &WithCompanies{Code: row.Code, Name: row.Name, CompCodes: []string{}}
			groups[row.Code] = group
			order = append(order, row.Code)
		}
		if row.CompCode != nil {
			group.CompCodes = append(group.CompCodes, *row.CompCode)
		}
	}
	result := make([]WithCompanies, 0, len(order))
	for _, code := range order {
		result = append(result, *groups[code])
	}
	return result
}

func (r *repository) Create(ctx context.Context, industry Industry) (Industry, error) {
	const query = `
		INSERT INTO industries (code, industry)
		VALUES ($1, $2)
		RETURNING code, industry`

	var created Industry
	err := r.pool.QueryRow(ctx, query, industry.Code, industry.Name).
		Scan(&created.Code, &created.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Industry{}, ErrAlreadyExists
		}
		return Industry{}, fmt.Errorf("industries: create: %w", err)
	}
	return created, nil
}
