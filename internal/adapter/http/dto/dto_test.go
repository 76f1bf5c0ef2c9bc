package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/compta/internal/domain"
)

func TestDateJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "calendar date", input: `"2024-03-31"`, want: time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339 truncated", input: `"2024-03-31T23:30:00-02:00"`, want: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)},
		{name: "null", input: `null`},
		{name: "garbage", input: `"31/03/2024"`, wantErr: true},
		{name: "number", input: `20240331`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, d.Time.Equal(tt.want), "got %s", d.Time)
		})
	}

	out, err := json.Marshal(NewDate(time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2023-07-01"`, string(out))
}

func TestCreateAssetRequest_ToUseCaseInput(t *testing.T) {
	var req CreateAssetRequest
	err := json.Unmarshal([]byte(`{
		"designation": "Serveur",
		"category": "informatique",
		"account_code": "2183",
		"acquisition_date": "2023-07-01",
		"acquisition_value": "12000",
		"useful_life_years": 5,
		"method": "straight_line"
	}`), &req)
	require.NoError(t, err)

	in := req.ToUseCaseInput()
	assert.Equal(t, domain.MethodStraightLine, in.Method)
	assert.True(t, in.AcquisitionValue.Equal(decimal.NewFromInt(12000)))
	assert.True(t, in.ResidualValue.IsZero())
	assert.Nil(t, in.DecliningRate)
	assert.Equal(t, 2023, in.AcquisitionDate.Year())
}

func TestUpdateBankAccountRequest_DefaultsActive(t *testing.T) {
	req := UpdateBankAccountRequest{Name: "Compte courant"}
	assert.True(t, req.ToUseCaseInput("b-1").Active)

	inactive := false
	req.Active = &inactive
	in := req.ToUseCaseInput("b-1")
	assert.False(t, in.Active)
	assert.Equal(t, "b-1", in.ID)
}

func TestInvoiceRequest_OptionalDueDate(t *testing.T) {
	var req InvoiceRequest
	require.NoError(t, json.Unmarshal([]byte(`{"number":"FAC-2024-0001","type":"vente","issue_date":"2024-01-15","amount_excl_tax":100,"vat_amount":20,"amount_incl_tax":120}`), &req))

	in := req.ToUseCaseInput()
	assert.Nil(t, in.DueDate)
	assert.Equal(t, domain.InvoiceSale, in.Type)
	assert.True(t, in.AmountInclTax.Equal(decimal.NewFromInt(120)))

	require.NoError(t, json.Unmarshal([]byte(`{"due_date":"2024-02-15"}`), &req))
	in = req.ToUseCaseInput()
	require.NotNil(t, in.DueDate)
	assert.Equal(t, time.February, in.DueDate.Month())
}

func TestAssetFromDomain_DisposalGain(t *testing.T) {
	disposed := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	price := decimal.NewFromInt(5000)
	asset := &domain.FixedAsset{
		ID:              "a-1",
		Method:          domain.MethodStraightLine,
		AcquisitionDate: time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC),
		NetBookValue:    decimal.NewFromInt(6000),
		DisposalDate:    &disposed,
		DisposalPrice:   &price,
	}

	resp := AssetFromDomain(asset)
	require.NotNil(t, resp.DisposalGain)
	assert.Equal(t, "-1000", resp.DisposalGain.String())
	require.NotNil(t, resp.DisposalDate)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"disposal_date":"2025-06-30"`)
	assert.Contains(t, string(body), `"acquisition_date":"2023-07-01"`)
}

func TestConsistencyFromDomain(t *testing.T) {
	report := domain.NewConsistencyReport([]domain.PieceImbalance{
		{PieceNumber: "FAC-1", Journal: domain.JournalSales, TotalDebit: decimal.NewFromInt(120), TotalCredit: decimal.NewFromInt(120)},
		{PieceNumber: "FAC-2", Journal: domain.JournalSales, TotalDebit: decimal.NewFromInt(100), TotalCredit: decimal.NewFromInt(90)},
	})

	resp := ConsistencyFromDomain(report)
	assert.False(t, resp.Balanced)
	require.Len(t, resp.Imbalances, 1)
	assert.Equal(t, "FAC-2", resp.Imbalances[0].PieceNumber)
	assert.Equal(t, "10", resp.Imbalances[0].Difference.String())
}

func TestJustificatifFromDomain_HidesStorageKey(t *testing.T) {
	body, err := json.Marshal(JustificatifFromDomain(&domain.Justificatif{
		ID:         "j-1",
		StorageKey: "2024/03/j-1_secret.pdf",
		Provider:   domain.StorageS3,
	}))
	require.NoError(t, err)
	assert.NotContains(t, string(body), "secret")
	assert.Contains(t, string(body), `"provider":"s3"`)
}
