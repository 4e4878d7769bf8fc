package ocr

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/BaSui01/ocrflow/ocr/country"
	"github.com/BaSui01/ocrflow/types"
)

func loadFixture(t testing.TB, name string) []byte {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return raw
}

func TestMapMindeeReceipt(t *testing.T) {
	raw := loadFixture(t, "mindee_receipt.json")

	env, err := MapMindeeReceipt(raw)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(env.OriginalResponse()))

	result := env.Standardized()
	require.Len(t, result.ExtractedData, 1)
	rec := result.ExtractedData[0]

	require.NotNil(t, rec.Total)
	assert.Equal(t, 21.3, *rec.Total)
	require.NotNil(t, rec.Date)
	assert.True(t, time.Date(2024, 1, 2, 13, 45, 0, 0, time.UTC).Equal(*rec.Date))
	assert.Nil(t, rec.Number)
	assert.Nil(t, rec.Subtotal)
	assert.Nil(t, rec.DueDate)

	assert.Equal(t, "LE BISTROT", *rec.Merchant.Name)
	assert.Equal(t, "12 RUE DE LA PAIX 75002 PARIS", *rec.Merchant.Address)
	assert.Equal(t, "0142000000", *rec.Merchant.Phone)
	assert.Nil(t, rec.Merchant.URL)
	assert.Nil(t, rec.Merchant.Siret)
	assert.Nil(t, rec.Customer.Name)

	assert.Equal(t, "EUR", *rec.Locale.Currency)
	assert.Equal(t, "fr", *rec.Locale.Language)
	assert.Equal(t, "FR", *rec.Locale.Country)

	require.Len(t, rec.Taxes, 2)
	assert.Equal(t, 1.5, *rec.Taxes[0].Amount)
	assert.Equal(t, 10.0, *rec.Taxes[0].Rate)
	assert.Equal(t, 0.8, *rec.Taxes[1].Amount)
	assert.Equal(t, 20.0, *rec.Taxes[1].Rate)

	require.Len(t, rec.ItemLines, 3)
	wantItems := []struct {
		desc           string
		qty, unit, amt float64
	}{
		{"CAFE", 2, 2.5, 5},
		{"CROISSANT", 1, 1.8, 1.8},
		{"PLAT DU JOUR", 1, 14.5, 14.5},
	}
	for i, want := range wantItems {
		got := rec.ItemLines[i]
		assert.Equal(t, want.desc, *got.Description, "item %d", i)
		assert.Equal(t, want.qty, *got.Quantity, "item %d", i)
		assert.Equal(t, want.unit, *got.UnitPrice, "item %d", i)
		assert.Equal(t, want.amt, *got.Amount, "item %d", i)
	}

	assert.Equal(t, PaymentInfo{}, rec.Payment)
	assert.NotNil(t, rec.Barcodes)
	assert.Empty(t, rec.Barcodes)
}

func TestMapMindeeReceipt_EmitsExplicitNulls(t *testing.T) {
	env, err := MapMindeeReceipt(loadFixture(t, "mindee_receipt.json"))
	require.NoError(t, err)

	out, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded struct {
		Original     map[string]any `json:"original_response"`
		Standardized struct {
			ExtractedData []map[string]any `json:"extracted_data"`
		} `json:"standardized_response"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.NotNil(t, decoded.Original["document"])
	require.Len(t, decoded.Standardized.ExtractedData, 1)

	rec := decoded.Standardized.ExtractedData[0]
	for _, key := range []string{"invoice_number", "invoice_subtotal", "due_date"} {
		v, ok := rec[key]
		assert.True(t, ok, "%s must be present", key)
		assert.Nil(t, v, "%s must be null", key)
	}

	merchant := rec["merchant_information"].(map[string]any)
	v, ok := merchant["merchant_siret"]
	assert.True(t, ok)
	assert.Nil(t, v)

	assert.Equal(t, []any{}, rec["barcodes"])
	assert.Contains(t, string(out), `"payment_information":{"card_type":null`)
}

func TestMapMindeeInvoice(t *testing.T) {
	env, err := MapMindeeInvoice(loadFixture(t, "mindee_invoice.json"))
	require.NoError(t, err)
	require.Len(t, env.Standardized().ExtractedData, 1)
	rec := env.Standardized().ExtractedData[0]

	assert.Equal(t, "INV-2023-0042", *rec.Number)
	assert.Equal(t, 1200.0, *rec.Total, "string totals go through number conversion")
	assert.Equal(t, 1000.0, *rec.Subtotal)
	assert.True(t, time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC).Equal(*rec.Date))
	assert.True(t, time.Date(2023, 12, 15, 17, 30, 0, 0, time.UTC).Equal(*rec.DueDate))

	assert.Equal(t, "ACME CORP", *rec.Customer.Name)
	assert.Equal(t, "1 MAIN STREET SPRINGFIELD", *rec.Customer.Address)
	assert.Equal(t, rec.Customer.Address, rec.Customer.MailingAddress)
	assert.Nil(t, rec.Customer.BillingAddress)
	assert.Equal(t, "WIDGETS LTD", *rec.Merchant.Name)
	assert.Equal(t, "99 INDUSTRIAL WAY", *rec.Merchant.Address)
	assert.Nil(t, rec.Merchant.Phone)

	require.Len(t, rec.Taxes, 1)
	assert.Equal(t, 200.0, *rec.Taxes[0].Amount)
	assert.Equal(t, "USD", *rec.Locale.Currency)
	assert.Equal(t, "en", *rec.Locale.Language)
	assert.Nil(t, rec.Locale.Country)
	assert.NotNil(t, rec.ItemLines)
	assert.Empty(t, rec.ItemLines)
	assert.Equal(t, BankInfo{}, rec.Bank)
}

func TestMapMindeeFinancial(t *testing.T) {
	env, err := MapMindeeFinancial(loadFixture(t, "mindee_financial.json"))
	require.NoError(t, err)
	rec := env.Standardized().ExtractedData[0]

	assert.Equal(t, "F-778", *rec.Number)
	assert.Equal(t, 59.9, *rec.Total)
	assert.Equal(t, 49.92, *rec.Subtotal)
	assert.True(t, time.Date(2024, 3, 8, 9, 15, 0, 0, time.UTC).Equal(*rec.Date))
	assert.Nil(t, rec.DueDate)
	assert.Equal(t, "GARAGE MARTIN", *rec.Merchant.Name)
	assert.Equal(t, "0478000000", *rec.Merchant.Phone)
	assert.Equal(t, "JEAN DUPONT", *rec.Customer.Name)
	assert.Nil(t, rec.Customer.Address)
	require.Len(t, rec.ItemLines, 1)
	assert.Equal(t, "VIDANGE", *rec.ItemLines[0].Description)
	assert.Equal(t, "FR", *rec.Locale.Country)
}

func TestMapMindeeIdentity(t *testing.T) {
	env, err := MapMindeeIdentity(loadFixture(t, "mindee_passport.json"))
	require.NoError(t, err)
	require.Len(t, env.Standardized().ExtractedData, 1)
	rec := env.Standardized().ExtractedData[0]

	assert.Equal(t, "MARTIN", *rec.LastName.Value)
	assert.Equal(t, 0.99, *rec.LastName.Confidence)

	require.Len(t, rec.GivenNames, 3)
	assert.Equal(t, "MARIE", *rec.GivenNames[0].Value)
	assert.Equal(t, "CLAIRE", *rec.GivenNames[1].Value)
	assert.Equal(t, 0.96, *rec.GivenNames[1].Confidence)
	assert.Equal(t, "ANNE", *rec.GivenNames[2].Value)

	assert.Equal(t, "1985-04-12", *rec.BirthDate.Value)
	assert.Equal(t, "LYON", *rec.BirthPlace.Value)
	assert.Equal(t, "2021-07-01", *rec.IssuanceDate.Value)
	assert.Equal(t, "2031-06-30", *rec.ExpireDate.Value)
	assert.Equal(t, "21AB12345", *rec.DocumentID.Value)
	assert.Equal(t, "F", *rec.Gender.Value)
	assert.Equal(t, "P<FRAMARTIN<<MARIE<CLAIRE<ANNE<<<<<<<<<<<<<<<", *rec.MRZ.Value)

	assert.Equal(t, "France", rec.Country.Name)
	assert.Equal(t, "FR", rec.Country.Alpha2)
	assert.Equal(t, "FRA", rec.Country.Alpha3)
	require.NotNil(t, rec.Country.Confidence)
	assert.Equal(t, 0.98, *rec.Country.Confidence)

	for name, f := range map[string]IdentityField{
		"issuing_state": rec.IssuingState,
		"address":       rec.Address,
		"age":           rec.Age,
		"document_type": rec.DocumentType,
		"nationality":   rec.Nationality,
	} {
		assert.Equal(t, IdentityField{}, f, name)
	}
	assert.NotNil(t, rec.ImageID)
	assert.Empty(t, rec.ImageID)
	assert.NotNil(t, rec.ImageSignature)
	assert.Empty(t, rec.ImageSignature)
}

func TestMapMindeeIdentity_UnknownCountryUsesDefault(t *testing.T) {
	raw := strings.Replace(string(loadFixture(t, "mindee_passport.json")),
		`"country": {"value": "FRA", "confidence": 0.98}`,
		`"country": {"value": "ZZZ", "confidence": 0.41}`, 1)
	require.Contains(t, raw, "ZZZ")

	env, err := MapMindeeIdentity([]byte(raw))
	require.NoError(t, err)

	rec := env.Standardized().ExtractedData[0]
	assert.Equal(t, country.Default(), rec.Country)
	assert.True(t, rec.Country.IsDefault())

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"country":{"name":"","alpha2":"","alpha3":"","confidence":null}`)
}

func TestMapMindeeIdentity_MissingCountryUsesDefault(t *testing.T) {
	env, err := MapMindeeIdentity([]byte(`{"document":{"inference":{"prediction":{}}}}`))
	require.NoError(t, err)

	rec := env.Standardized().ExtractedData[0]
	assert.Equal(t, country.Default(), rec.Country)
	assert.Empty(t, rec.GivenNames)
	assert.Nil(t, rec.LastName.Value)
}

func TestMapMindee_EmptyPredictionYieldsNulls(t *testing.T) {
	raw := []byte(`{"document": {}}`)

	receipt, err := MapMindeeReceipt(raw)
	require.NoError(t, err)
	rec := receipt.Standardized().ExtractedData[0]
	assert.Nil(t, rec.Total)
	assert.Nil(t, rec.Date)
	assert.Empty(t, rec.Taxes)
	assert.Empty(t, rec.ItemLines)

	invoice, err := MapMindeeInvoice(raw)
	require.NoError(t, err)
	assert.Nil(t, invoice.Standardized().ExtractedData[0].Customer.MailingAddress)
}

func TestMapMindee_ConversionErrorsPropagate(t *testing.T) {
	tests := []struct {
		name    string
		fixture string
		from    string
		to      string
		field   string
		mapFn   func([]byte) error
	}{
		{
			name:    "receipt total",
			fixture: "mindee_receipt.json",
			from:    `"total_amount": {"value": 21.3`,
			to:      `"total_amount": {"value": "twenty"`,
			field:   "total_amount",
			mapFn:   func(b []byte) error { _, err := MapMindeeReceipt(b); return err },
		},
		{
			name:    "receipt date",
			fixture: "mindee_receipt.json",
			from:    `"date": {"value": "2024-01-02"`,
			to:      `"date": {"value": "last tuesday"`,
			field:   "date",
			mapFn:   func(b []byte) error { _, err := MapMindeeReceipt(b); return err },
		},
		{
			name:    "invoice total",
			fixture: "mindee_invoice.json",
			from:    `"total_incl": {"value": "1200.00"`,
			to:      `"total_incl": {"value": "1,200.00 USD"`,
			field:   "total_incl",
			mapFn:   func(b []byte) error { _, err := MapMindeeInvoice(b); return err },
		},
		{
			name:    "invoice total NaN",
			fixture: "mindee_invoice.json",
			from:    `"total_incl": {"value": "1200.00"`,
			to:      `"total_incl": {"value": "NaN"`,
			field:   "total_incl",
			mapFn:   func(b []byte) error { _, err := MapMindeeInvoice(b); return err },
		},
		{
			name:    "invoice total infinity",
			fixture: "mindee_invoice.json",
			from:    `"total_incl": {"value": "1200.00"`,
			to:      `"total_incl": {"value": "-infinity"`,
			field:   "total_incl",
			mapFn:   func(b []byte) error { _, err := MapMindeeInvoice(b); return err },
		},
		{
			name:    "identity confidence",
			fixture: "mindee_passport.json",
			from:    `"gender": {"value": "F", "confidence": 0.99}`,
			to:      `"gender": {"value": "F", "confidence": "high"}`,
			field:   "gender.confidence",
			mapFn:   func(b []byte) error { _, err := MapMindeeIdentity(b); return err },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := string(loadFixture(t, tt.fixture))
			require.Contains(t, raw, tt.from)
			err := tt.mapFn([]byte(strings.Replace(raw, tt.from, tt.to, 1)))
			require.Error(t, err)
			assert.True(t, types.IsConversionError(err), "got %v", err)
			assert.False(t, types.IsProviderError(err))

			e, ok := types.AsError(err)
			require.True(t, ok)
			assert.True(t, strings.HasPrefix(e.Message, tt.field+": "), "message %q", e.Message)
		})
	}
}

func TestMapMindee_Idempotent(t *testing.T) {
	for _, name := range []string{"mindee_receipt.json", "mindee_invoice.json", "mindee_financial.json", "mindee_passport.json"} {
		t.Run(name, func(t *testing.T) {
			raw := loadFixture(t, name)
			var first, second any
			switch name {
			case "mindee_receipt.json":
				a, err := MapMindeeReceipt(raw)
				require.NoError(t, err)
				b, err := MapMindeeReceipt(raw)
				require.NoError(t, err)
				first, second = a.Standardized(), b.Standardized()
			case "mindee_passport.json":
				a, err := MapMindeeIdentity(raw)
				require.NoError(t, err)
				b, err := MapMindeeIdentity(raw)
				require.NoError(t, err)
				first, second = a.Standardized(), b.Standardized()
			case "mindee_financial.json":
				a, err := MapMindeeFinancial(raw)
				require.NoError(t, err)
				b, err := MapMindeeFinancial(raw)
				require.NoError(t, err)
				first, second = a.Standardized(), b.Standardized()
			default:
				a, err := MapMindeeInvoice(raw)
				require.NoError(t, err)
				b, err := MapMindeeInvoice(raw)
				require.NoError(t, err)
				first, second = a.Standardized(), b.Standardized()
			}
			assert.Equal(t, first, second)
		})
	}
}

func TestResultEnvelope_IsImmutable(t *testing.T) {
	raw := []byte(`{"document":{}}`)
	env := NewResultEnvelope(raw, ReceiptParserResult{ExtractedData: []ReceiptRecord{}})

	raw[2] = 'X'
	assert.Equal(t, `{"document":{}}`, string(env.OriginalResponse()))

	out := env.OriginalResponse()
	out[2] = 'Y'
	assert.Equal(t, `{"document":{}}`, string(env.OriginalResponse()))
}

// TestProperty_ReceiptSequencesKeepOrder 任意数量的税费与明细行在映射后保持数量与顺序.
func TestProperty_ReceiptSequencesKeepOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		taxes := rapid.SliceOfN(rapid.Float64Range(0, 1000), 0, 6).Draw(rt, "taxes")
		items := rapid.SliceOfN(rapid.StringMatching(`[A-Z ]{1,12}`), 0, 8).Draw(rt, "items")

		taxNodes := make([]map[string]any, 0, len(taxes))
		for i, v := range taxes {
			taxNodes = append(taxNodes, map[string]any{"value": v, "rate": float64(i)})
		}
		itemNodes := make([]map[string]any, 0, len(items))
		for i, d := range items {
			itemNodes = append(itemNodes, map[string]any{"description": d, "quantity": float64(i + 1)})
		}
		raw, err := json.Marshal(map[string]any{
			"document": map[string]any{
				"inference": map[string]any{
					"prediction": map[string]any{"taxes": taxNodes, "line_items": itemNodes},
				},
			},
		})
		require.NoError(rt, err)

		first, err := MapMindeeReceipt(raw)
		require.NoError(rt, err)
		second, err := MapMindeeReceipt(raw)
		require.NoError(rt, err)
		require.Equal(rt, first.Standardized(), second.Standardized())

		rec := first.Standardized().ExtractedData[0]
		require.Len(rt, rec.Taxes, len(taxes))
		for i, v := range taxes {
			require.Equal(rt, v, *rec.Taxes[i].Amount)
			require.Equal(rt, float64(i), *rec.Taxes[i].Rate)
		}
		require.Len(rt, rec.ItemLines, len(items))
		for i, d := range items {
			require.Equal(rt, d, *rec.ItemLines[i].Description)
			require.Nil(rt, rec.ItemLines[i].Amount)
		}
	})
}
