package handler_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"brickledger/internal/storage/workbook"
)

func TestMonthlySummaryEndpoint(t *testing.T) {
	r := setupRouter(t)

	t.Run("empty_register_yields_empty_report", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/reports/monthly-summary", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeEnvelope(t, w)["data"])
	})

	t.Run("aggregates_by_month", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/invoices", invoiceBody("INV-001"))
		require.Equal(t, http.StatusCreated, w.Code)

		second := invoiceBody("INV-002")
		second["date"] = "2024-04-20"
		second["quantity"] = "1000"
		w = doJSON(t, r, http.MethodPost, "/api/v1/invoices", second)
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, r, http.MethodGet, "/api/v1/reports/monthly-summary", nil)
		require.Equal(t, http.StatusOK, w.Code)

		rows := decodeEnvelope(t, w)["data"].([]interface{})
		require.Len(t, rows, 1)
		row := rows[0].(map[string]interface{})
		assert.Equal(t, "2024-04", row["month"])
		assert.Equal(t, float64(2), row["invoice_count"])
		assert.Equal(t, "15000", row["total_taxable_value"])
		assert.Equal(t, "17700", row["total_value"])
	})
}

func TestGSTReportEndpoint(t *testing.T) {
	r := setupRouter(t)

	intra := invoiceBody("INV-001")
	w := doJSON(t, r, http.MethodPost, "/api/v1/invoices", intra)
	require.Equal(t, http.StatusCreated, w.Code)

	inter := invoiceBody("INV-002")
	inter["buyer_state"] = "Maharashtra"
	inter["tax_rate"] = "12"
	w = doJSON(t, r, http.MethodPost, "/api/v1/invoices", inter)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/reports/gst", nil)
	require.Equal(t, http.StatusOK, w.Code)

	rows := decodeEnvelope(t, w)["data"].([]interface{})
	require.Len(t, rows, 2)

	// Lower slab first within the month.
	first := rows[0].(map[string]interface{})
	assert.Equal(t, "12", first["tax_rate"])
	assert.Equal(t, "inter", first["supply_type"])
	assert.Equal(t, "1200", first["igst_sum"])

	second := rows[1].(map[string]interface{})
	assert.Equal(t, "18", second["tax_rate"])
	assert.Equal(t, "intra", second["supply_type"])
	assert.Equal(t, "900", second["cgst_sum"])
}

func TestExportEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/invoices", invoiceBody("INV-001"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, workbook.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, []string{workbook.SheetInvoices, workbook.SheetSummary, workbook.SheetGST}, f.GetSheetList())
}

func TestBackupEndpoint_NotConfigured(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/backup", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeEnvelope(t, w)
	errObj := resp["error"].(map[string]interface{})
	assert.Equal(t, "BACKUP_NOT_CONFIGURED", errObj["code"])
}
