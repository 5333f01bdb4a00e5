package invoices

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/biztime/biztime/internal/platform/db"
	"github.com/biztime/biztime/internal/platform/httpx"
)

var (
	ErrNotFound = fmt.Errorf("invoice: %w", httpx.ErrNotFound)
	// ErrMissingCompany covers inserts whose comp_code references no company.
	ErrMissingCompany = fmt.Errorf("company: %w", httpx.ErrMissingReference)
)

// Repository defines data access for invoices.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	List(ctx context.Context) ([]Summary, error)
	Get(ctx context.Context, id int64) (Detail, error)
	Create(ctx context.Context, compCode string, amt float64) (Invoice, error)
	PaymentState(ctx context.Context, id int64) (bool, *time.Time, error)
	Update(ctx context.Context, id int64, amt float64, paid bool, paidDate *time.Time) (Invoice, error)
	Delete(ctx context.Context, id int64) error
}

type dbtx interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

// WithTx runs fn against a repository bound to a single transaction.
func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

func (r *repository) List(ctx context.Context) ([]Summary, error) {
	rows, err := r.db.Query(ctx, `SELECT id, comp_code FROM invoices ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("invoices: list: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.CompCode); err != nil {
			return nil, fmt.Errorf("invoices: list scan: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Detail, error) {
	const query = `
		SELECT inv.id, inv.amt, inv.paid, inv.add_date, inv.paid_date,
		       c.code, c.name, c.description
		FROM invoices inv
		JOIN companies c ON c.code = inv.comp_code
		WHERE inv.id = $1`

	var d Detail
	var paidDate pgtype.Timestamptz
	var description pgtype.Text
	err := r.db.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Amt, &d.Paid, &d.AddDate, &paidDate,
		&d.Company.Code, &d.Company.Name, &description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Detail{}, ErrNotFound
		}
		return Detail{}, fmt.Errorf("invoices: get: %w", err)
	}
	if paidDate.Valid {
		t := paidDate.Time
		d.PaidDate = &t
	}
	d.Company.Description = description.String
	return d, nil
}

func (r *repository) Create(ctx context.Context, compCode string, amt float64) (Invoice, error) {
	const query = `
		INSERT INTO invoices (comp_code, amt)
		VALUES ($1, $2)
		RETURNING id, comp_code, amt, paid, add_date, paid_date`

	inv, err := scanInvoice(r.db.QueryRow(ctx, query, compCode, amt))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Invoice{}, ErrMissingCompany
		}
		return Invoice{}, fmt.Errorf("invoices: create: %w", err)
	}
	return inv, nil
}

// PaymentState reads the persisted paid flag and paid date. Inside a
// transaction the row is locked so the subsequent Update sees the same
// state it resolved against.
func (r *repository) PaymentState(ctx context.Context, id int64) (bool, *time.Time, error) {
	var paid bool
	var paidDate pgtype.Timestamptz
	err := r.db.QueryRow(ctx, `SELECT paid, paid_date FROM invoices WHERE id = $1 FOR UPDATE`, id).
		Scan(&paid, &paidDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil, ErrNotFound
		}
		return false, nil, fmt.Errorf("invoices: payment state: %w", err)
	}
	if paidDate.Valid {
		t := paidDate.Time
		return paid, &t, nil
	}
	return paid, nil, nil
}

func (r *repository) Update(ctx context.Context, id int64, amt float64, paid bool, paidDate *time.Time) (Invoice, error) {
	const query = `
		UPDATE invoices
		SET amt = $2, paid = $3, paid_date = $4
		WHERE id = $1
		RETURNING id, comp_code, amt, paid, add_date, paid_date`

	var pd pgtype.Timestamptz
	if paidDate != nil {
		pd = pgtype.Timestamptz{Time: *paidDate, Valid: true}
	}
	inv, err := scanInvoice(r.db.QueryRow(ctx, query, id, amt, paid, pd))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Invoice{}, ErrNotFound
		}
		return Invoice{}, fmt.Errorf("invoices: update: %w", err)
	}
	return inv, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("invoices: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanInvoice(row pgx.Row) (Invoice, error) {
	var inv Invoice
	var paidDate pgtype.Timestamptz
	if err := row.Scan(&inv.ID, &inv.CompCode, &inv.Amt, &inv.Paid, &inv.AddDate, &paidDate); err != nil {
		return Invoice{}, err
	}
	if paidDate.Valid {
		t := paidDate.Time
		inv.PaidDate = &t
	}
	return inv, nil
}
