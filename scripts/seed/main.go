// Command seed applies the schema and loads the sample biztime dataset.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	schemaPath := flag.String("schema", "migrations/0001_init.sql", "path to the schema DDL")
	flag.Parse()

	dsn := getenv("PG_DSN", "postgres://postgres@localhost:5432/biztime?sslmode=disable")
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	fmt.Println("→ Applying schema...")
	if err := applySchema(ctx, pool, *schemaPath); err != nil {
		log.Fatalf("apply schema: %v", err)
	}

	fmt.Println("→ Seeding companies...")
	if err := seedCompanies(ctx, pool); err != nil {
		log.Fatalf("seed companies: %v", err)
	}

	fmt.Println("→ Seeding industries...")
	if err := seedIndustries(ctx, pool); err != nil {
		log.Fatalf("seed industries: %v", err)
	}

	fmt.Println("→ Seeding invoices...")
	if err := seedInvoices(ctx, pool); err != nil {
		log.Fatalf("seed invoices: %v", err)
	}

	fmt.Println("Done.")
}

func applySchema(ctx context.Context, pool *pgxpool.Pool, path string) error {
	ddl, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, string(ddl))
	return err
}

func seedCompanies(ctx context.Context, pool *pgxpool.Pool) error {
	companies := []struct {
		code, name, description string
	}{
		{"apple", "Apple Computer", "Maker of OSX."},
		{"ibm", "IBM", "Big blue."},
	}
	for _, c := range companies {
		_, err := pool.Exec(ctx, `
			INSERT INTO companies (code, name, description)
			VALUES ($1, $2, $3)
			ON CONFLICT (code) DO NOTHING`,
			c.code, c.name, c.description)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedIndustries(ctx context.Context, pool *pgxpool.Pool) error {
	industries := []struct {
		code, name string
	}{
		{"acct", "Accounting"},
		{"tech", "Technology"},
	}
	for _, i := range industries {
		_, err := pool.Exec(ctx, `
			INSERT INTO industries (code, industry)
			VALUES ($1, $2)
			ON CONFLICT (code) DO NOTHING`,
			i.code, i.name)
		if err != nil {
			return err
		}
	}

	associations := []struct {
		compCode, industryCode string
	}{
		{"apple", "tech"},
		{"ibm", "tech"},
		{"ibm", "acct"},
	}
	for _, a := range associations {
		_, err := pool.Exec(ctx, `
			INSERT INTO companies_industries (comp_code, industry_code)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`,
			a.compCode, a.industryCode)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedInvoices(ctx context.Context, pool *pgxpool.Pool) error {
	invoices := []struct {
		compCode string
		amt      float64
		paid     bool
	}{
		{"apple", 100, false},
		{"apple", 200, false},
		{"apple", 300, true},
		{"ibm", 400, false},
	}
	for _, inv := range invoices {
		var query string
		if inv.paid {
			query = `INSERT INTO invoices (comp_code, amt, paid, paid_date) VALUES ($1, $2, true, now())`
		} else {
			query = `INSERT INTO invoices (comp_code, amt) VALUES ($1, $2)`
		}
		if _, err := pool.Exec(ctx, query, inv.compCode, inv.amt); err != nil {
			return err
		}
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
