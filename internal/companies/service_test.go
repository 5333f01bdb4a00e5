package companies

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

type association struct {
	compCode     string
	industryCode string
}

type memoryRepo struct {
	companies    map[string]Company
	industries   map[string]string // industry code -> name
	invoices     map[string][]int64
	associations []association
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		companies:  make(map[string]Company),
		industries: make(map[string]string),
		invoices:   make(map[string][]int64),
	}
}

func (r *memoryRepo) List(ctx context.Context) ([]Summary, error) {
	summaries := []Summary{}
	for _, c := range r.companies {
		summaries = append(summaries, Summary{Code: c.Code, Name: c.Name})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Code < summaries[j].Code })
	return summaries, nil
}

func (r *memoryRepo) GetWithIndustries(ctx context.Context, code string) (Company, []string, error) {
	c, ok := r.companies[code]
	if !ok {
		return Company{}, nil, ErrNotFound
	}
	names := []string{}
	for _, a := range r.associations {
		if a.compCode == code {
			names = append(names, r.industries[a.industryCode])
		}
	}
	return c, names, nil
}

func (r *memoryRepo) InvoiceIDs(ctx context.Context, code string) ([]int64, error) {
	ids := []int64{}
	ids = append(ids, r.invoices[code]...)
	return ids, nil
}

func (r *memoryRepo) Create(ctx context.Context, company Company) (Company, error) {
	if _, ok := r.companies[company.Code]; ok {
		return Company{}, ErrAlreadyExists
	}
	r.companies[company.Code] = company
	return company, nil
}

func (r *memoryRepo) Update(ctx context.Context, code, name, description string) (Company, error) {
	c, ok := r.companies[code]
	if !ok {
		return Company{}, ErrNotFound
	}
	c.Name = name
	c.Description = description
	r.companies[code] = c
	return c, nil
}

func (r *memoryRepo) Delete(ctx context.Context, code string) error {
	if _, ok := r.companies[code]; !ok {
		return ErrNotFound
	}
	delete(r.companies, code)
	return nil
}

func (r *memoryRepo) Associate(ctx context.Context, compCode, industryCode string) error {
	if _, ok := r.companies[compCode]; !ok {
		return ErrMissingReference
	}
	if _, ok := r.industries[industryCode]; !ok {
		return ErrMissingReference
	}
	r.associations = append(r.associations, association{compCode, industryCode})
	return nil
}

func TestGetComposesIndustriesAndInvoices(t *testing.T) {
	repo := newMemoryRepo()
	repo.companies["apple"] = Company{Code: "apple", Name: "Apple Computer", Description: "Maker of OSX."}
	repo.industries["tech"] = "Technology"
	repo.industries["acct"] = "Accounting"
	repo.associations = []association{{"apple", "tech"}, {"apple", "acct"}}
	repo.invoices["apple"] = []int64{1, 2, 3}

	svc := NewService(repo)
	detail, err := svc.Get(context.Background(), "apple")
	require.NoError(t, err)
	require.Equal(t, "apple", detail.Code)
	require.Equal(t, "Apple Computer", detail.Name)
	require.ElementsMatch(t, []string{"Technology", "Accounting"}, detail.Industries)
	require.Equal(t, []int64{1, 2, 3}, detail.Invoices)
}

func TestGetWithoutAssociationsYieldsEmptySlices(t *testing.T) {
	repo := newMemoryRepo()
	repo.companies["ibm"] = Company{Code: "ibm", Name: "IBM"}

	svc := NewService(repo)
	detail, err := svc.Get(context.Background(), "ibm")
	require.NoError(t, err)
	require.NotNil(t, detail.Industries)
	require.Empty(t, detail.Industries)
	require.NotNil(t, detail.Invoices)
	require.Empty(t, detail.Invoices)
}

func TestGetNotFound(t *testing.T) {
	svc := NewService(newMemoryRepo())
	_, err := svc.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateDerivesCodeFromName(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CompanyInput{Name: "Apple Computer", Description: "Maker of OSX."})
	require.NoError(t, err)
	require.Equal(t, "apple-computer", created.Code)
	require.Equal(t, "Apple Computer", created.Name)
}

func TestCreateDuplicateCode(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CompanyInput{Name: "Apple"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CompanyInput{Name: "apple"})
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCreateRejectsUnsluggableName(t *testing.T) {
	svc := NewService(newMemoryRepo())
	_, err := svc.Create(context.Background(), CompanyInput{Name: "!!!"})
	require.Error(t, err)
}

func TestUpdateKeepsCode(t *testing.T) {
	repo := newMemoryRepo()
	repo.companies["apple"] = Company{Code: "apple", Name: "Apple"}

	svc := NewService(repo)
	updated, err := svc.Update(context.Background(), "apple", CompanyInput{Name: "Apple Inc", Description: "Fruit stand"})
	require.NoError(t, err)
	require.Equal(t, "apple", updated.Code)
	require.Equal(t, "Apple Inc", updated.Name)
	require.Equal(t, "Fruit stand", updated.Description)
}

func TestDeleteThenGetNotFound(t *testing.T) {
	repo := newMemoryRepo()
	repo.companies["apple"] = Company{Code: "apple", Name: "Apple"}

	svc := NewService(repo)
	_, err := svc.Get(context.Background(), "apple")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "apple"))

	_, err = svc.Get(context.Background(), "apple")
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, svc.Delete(context.Background(), "apple"), ErrNotFound)
}

func TestAssociateMissingReferenceLeavesAssociationsUnchanged(t *testing.T) {
	repo := newMemoryRepo()
	repo.companies["apple"] = Company{Code: "apple", Name: "Apple"}
	repo.industries["tech"] = "Technology"

	svc := NewService(repo)
	require.ErrorIs(t, svc.Associate(context.Background(), "apple", "finance"), ErrMissingReference)
	require.ErrorIs(t, svc.Associate(context.Background(), "nope", "tech"), ErrMissingReference)
	require.Empty(t, repo.associations)

	require.NoError(t, svc.Associate(context.Background(), "apple", "tech"))
	require.Len(t, repo.associations, 1)
}
