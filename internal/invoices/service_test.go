package invoices

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memoryInvoice struct {
	Invoice
	company CompanyRef
}

type memoryRepo struct {
	invoices map[int64]*memoryInvoice
	nextID   int64
	badComp  map[string]bool // comp codes that do not exist
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{invoices: make(map[int64]*memoryInvoice), badComp: make(map[string]bool)}
}

func (r *memoryRepo) add(compCode string, amt float64, paid bool, paidDate *time.Time) *memoryInvoice {
	r.nextID++
	inv := &memoryInvoice{
		Invoice: Invoice{
			ID:       r.nextID,
			CompCode: compCode,
			Amt:      amt,
			Paid:     paid,
			AddDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			PaidDate: paidDate,
		},
		company: CompanyRef{Code: compCode, Name: compCode},
	}
	r.invoices[inv.ID] = inv
	return inv
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, r)
}

func (r *memoryRepo) List(ctx context.Context) ([]Summary, error) {
	summaries := []Summary{}
	for id := int64(1); id <= r.nextID; id++ {
		if inv, ok := r.invoices[id]; ok {
			summaries = append(summaries, Summary{ID: inv.ID, CompCode: inv.CompCode})
		}
	}
	return summaries, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Detail, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return Detail{}, ErrNotFound
	}
	return Detail{
		ID:       inv.ID,
		Amt:      inv.Amt,
		Paid:     inv.Paid,
		AddDate:  inv.AddDate,
		PaidDate: inv.PaidDate,
		Company:  inv.company,
	}, nil
}

func (r *memoryRepo) Create(ctx context.Context, compCode string, amt float64) (Invoice, error) {
	if r.badComp[compCode] {
		return Invoice{}, ErrMissingCompany
	}
	inv := r.add(compCode, amt, false, nil)
	return inv.Invoice, nil
}

func (r *memoryRepo) PaymentState(ctx context.Context, id int64) (bool, *time.Time, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return false, nil, ErrNotFound
	}
	return inv.Paid, inv.PaidDate, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, amt float64, paid bool, paidDate *time.Time) (Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return Invoice{}, ErrNotFound
	}
	inv.Amt = amt
	inv.Paid = paid
	inv.PaidDate = paidDate
	return inv.Invoice, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.invoices[id]; !ok {
		return ErrNotFound
	}
	delete(r.invoices, id)
	return nil
}

func newFixedClockService(repo Repository, now time.Time) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return now }
	return svc
}

func TestCreateDefaultsUnpaid(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateInput{CompCode: "apple", Amt: 100})
	require.NoError(t, err)
	require.False(t, created.Paid)
	require.Nil(t, created.PaidDate)
	require.Equal(t, 100.0, created.Amt)
}

func TestCreateMissingCompany(t *testing.T) {
	repo := newMemoryRepo()
	repo.badComp["nope"] = true
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateInput{CompCode: "nope", Amt: 100})
	require.ErrorIs(t, err, ErrMissingCompany)
}

func TestUpdateMarkingPaidStampsDate(t *testing.T) {
	repo := newMemoryRepo()
	inv := repo.add("apple", 100, false, nil)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newFixedClockService(repo, now)

	paid := true
	updated, err := svc.Update(context.Background(), inv.ID, UpdateInput{Amt: 99, Paid: &paid})
	require.NoError(t, err)
	require.True(t, updated.Paid)
	require.NotNil(t, updated.PaidDate)
	require.Equal(t, now, *updated.PaidDate)
	require.Equal(t, 99.0, updated.Amt)
}

func TestUpdatePayingAgainKeepsOriginalDate(t *testing.T) {
	repo := newMemoryRepo()
	firstPayment := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	inv := repo.add("apple", 100, true, &firstPayment)
	svc := newFixedClockService(repo, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	paid := true
	updated, err := svc.Update(context.Background(), inv.ID, UpdateInput{Amt: 100, Paid: &paid})
	require.NoError(t, err)
	require.True(t, updated.Paid)
	require.NotNil(t, updated.PaidDate)
	require.Equal(t, firstPayment, *updated.PaidDate)
}

func TestUpdateUnpayingClearsDate(t *testing.T) {
	repo := newMemoryRepo()
	paidAt := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	inv := repo.add("apple", 100, true, &paidAt)
	svc := NewService(repo)

	paid := false
	updated, err := svc.Update(context.Background(), inv.ID, UpdateInput{Amt: 100, Paid: &paid})
	require.NoError(t, err)
	require.False(t, updated.Paid)
	require.Nil(t, updated.PaidDate)

	// Unpaying an already-unpaid invoice is idempotent.
	updated, err = svc.Update(context.Background(), inv.ID, UpdateInput{Amt: 100, Paid: &paid})
	require.NoError(t, err)
	require.False(t, updated.Paid)
	require.Nil(t, updated.PaidDate)
}

func TestUpdateOmittedPaidRetainsState(t *testing.T) {
	repo := newMemoryRepo()
	paidAt := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	inv := repo.add("apple", 100, true, &paidAt)
	svc := NewService(repo)

	updated, err := svc.Update(context.Background(), inv.ID, UpdateInput{Amt: 250})
	require.NoError(t, err)
	require.True(t, updated.Paid)
	require.NotNil(t, updated.PaidDate)
	require.Equal(t, paidAt, *updated.PaidDate)
	require.Equal(t, 250.0, updated.Amt)
}

func TestUpdateNotFound(t *testing.T) {
	svc := NewService(newMemoryRepo())
	_, err := svc.Update(context.Background(), 42, UpdateInput{Amt: 1})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteNotFound(t *testing.T) {
	svc := NewService(newMemoryRepo())
	require.ErrorIs(t, svc.Delete(context.Background(), 42), ErrNotFound)
}

func TestResolvePayment(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	truth, falsth := true, false

	cases := []struct {
		name        string
		currentPaid bool
		currentDate *time.Time
		requested   *bool
		wantPaid    bool
		wantDate    *time.Time
	}{
		{"pay unpaid invoice", false, nil, &truth, true, &now},
		{"pay already-paid invoice", true, &earlier, &truth, true, &earlier},
		{"unpay paid invoice", true, &earlier, &falsth, false, nil},
		{"unpay unpaid invoice", false, nil, &falsth, false, nil},
		{"omitted keeps unpaid", false, nil, nil, false, nil},
		{"omitted keeps paid", true, &earlier, nil, true, &earlier},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotPaid, gotDate := resolvePayment(tc.currentPaid, tc.currentDate, tc.requested, now)
			require.Equal(t, tc.wantPaid, gotPaid)
			if tc.wantDate == nil {
				require.Nil(t, gotDate)
			} else {
				require.NotNil(t, gotDate)
				require.Equal(t, *tc.wantDate, *gotDate)
			}
		})
	}
}
