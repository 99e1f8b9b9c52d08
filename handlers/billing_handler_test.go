package handlers

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/My-name-is-Jamshidbek/kindergarten-crm/database"
	"github.com/My-name-is-Jamshidbek/kindergarten-crm/models"
)

func TestBillingListMaterializesMonth(t *testing.T) {
	setupDB(t)
	h := NewBillingHandler()
	room := mustCreateClassroom(t, "Stars", 10)
	tariff := models.Tariff{Name: "Full day", Amount: 450, IsActive: true}
	require.NoError(t, database.DB.Create(&tariff).Error)
	mustCreateChild(t, "Alice", room.ID, &tariff.ID, models.ChildStatusActive)
	mustCreateChild(t, "Bruno", room.ID, nil, models.ChildStatusActive)

	c, rec := newCtx(t, http.MethodGet, "/billing?month=2026-02", "")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeBody(t, rec)
	assert.Equal(t, "2026-02", out["month"])
	assert.EqualValues(t, 2, out["total"])
	summary := out["summary"].(map[string]any)
	assert.EqualValues(t, 2, summary["unpaid_count"])
	assert.EqualValues(t, 450, summary["unpaid_total"])
}

func TestBillingListBadMonthFallsBackToCurrent(t *testing.T) {
	setupDB(t)
	h := NewBillingHandler()

	c, rec := newCtx(t, http.MethodGet, "/billing?month=2026-13", "")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, "2026-13", decodeBody(t, rec)["month"])
}

func TestBillingPayAndUnpay(t *testing.T) {
	setupDB(t)
	h := NewBillingHandler()
	room := mustCreateClassroom(t, "Stars", 10)
	tariff := models.Tariff{Name: "Full day", Amount: 450, IsActive: true}
	require.NoError(t, database.DB.Create(&tariff).Error)
	alice := mustCreateChild(t, "Alice", room.ID, &tariff.ID, models.ChildStatusActive)

	c, rec := newCtx(t, http.MethodPost, "/billing/1/2026-02/pay", "")
	c.SetParamNames("child_id", "month")
	c.SetParamValues(strconv.Itoa(int(alice.ID)), "2026-02")
	require.NoError(t, h.Pay(c))
	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeBody(t, rec)
	assert.Equal(t, "paid", out["status"])
	assert.NotNil(t, out["paid_at"])

	c, rec = newCtx(t, http.MethodPost, "/billing/1/2026-02/unpay", "")
	c.SetParamNames("child_id", "month")
	c.SetParamValues(strconv.Itoa(int(alice.ID)), "2026-02")
	require.NoError(t, h.Unpay(c))
	require.Equal(t, http.StatusOK, rec.Code)
	out = decodeBody(t, rec)
	assert.Equal(t, "unpaid", out["status"])
	assert.Nil(t, out["paid_at"])
}

func TestBillingPayUnknownChild(t *testing.T) {
	setupDB(t)
	h := NewBillingHandler()

	c, rec := newCtx(t, http.MethodPost, "/billing/999/2026-02/pay", "")
	c.SetParamNames("child_id", "month")
	c.SetParamValues("999", "2026-02")
	require.NoError(t, h.Pay(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBillingUpdateAmount(t *testing.T) {
	setupDB(t)
	h := NewBillingHandler()
	room := mustCreateClassroom(t, "Stars", 10)
	alice := mustCreateChild(t, "Alice", room.ID, nil, models.ChildStatusActive)
	row := models.MonthlyBilling{ChildID: alice.ID, BillingMonth: "2026-02", Amount: 450, Status: models.BillingUnpaid}
	require.NoError(t, database.DB.Create(&row).Error)

	c, rec := newCtx(t, http.MethodPut, "/billing/1", `{"amount":300,"notes":"sibling discount"}`)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(row.ID)))
	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var fresh models.MonthlyBilling
	require.NoError(t, database.DB.First(&fresh, row.ID).Error)
	assert.Equal(t, 300.0, fresh.Amount)
	assert.Equal(t, "sibling discount", fresh.Notes)
}
