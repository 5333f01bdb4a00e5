package industries

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestGroupByIndustryPreservesFirstSeenOrder(t *testing.T) {
	rows := []joinedRow{
		{Code: "acct", Name: "Accounting", CompCode: strptr("ibm")},
		{Code: "tech", Name: "Technology", CompCode: strptr("apple")},
		{Code: "tech", Name: "Technology", CompCode: strptr("ibm")},
	}

	grouped := groupByIndustry(rows)
	require.Equal(t, []WithCompanies{
		{Code: "acct", Name: "Accounting", CompCodes: []string{"ibm"}},
		{Code: "tech", Name: "Technology", CompCodes: []string{"apple", "ibm"}},
	}, grouped)
}

func TestGroupByIndustryEmptyGroupIsNotPlaceholder(t *testing.T) {
	rows := []joinedRow{
		{Code: "tech", Name: "Technology", CompCode: strptr("apple")},
		{Code: "media", Name: "Media"}, // lone left-join row, no association
	}

	grouped := groupByIndustry(rows)
	require.Len(t, grouped, 2)
	require.Equal(t, "media", grouped[1].Code)
	require.NotNil(t, grouped[1].CompCodes)
	require.Empty(t, grouped[1].CompCodes)
}

func TestGroupByIndustryNoRows(t *testing.T) {
	require.Empty(t, groupByIndustry(nil))
}
