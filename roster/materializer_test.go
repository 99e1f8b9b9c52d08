package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/My-name-is-Jamshidbek/kindergarten-crm/models"
)

func TestEnsureAttendanceCreatesRowsForActiveChildren(t *testing.T) {
	db := newTestDB(t)
	seedChild(t, db, "Alice", models.ChildStatusActive, nil)
	seedChild(t, db, "Bruno", models.ChildStatusActive, nil)
	seedChild(t, db, "Clara", models.ChildStatusInactive, nil)

	n, err := EnsureAttendance(db, "2026-02-02")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var rows []models.Attendance
	require.NoError(t, db.Where("attendance_date = ?", "2026-02-02").Find(&rows).Error)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, models.AttendanceExpected, r.Status)
	}
}

func TestEnsureAttendanceIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	seedChild(t, db, "Alice", models.ChildStatusActive, nil)

	n, err := EnsureAttendance(db, "2026-02-02")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = EnsureAttendance(db, "2026-02-02")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	var count int64
	db.Model(&models.Attendance{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestEnsureAttendanceKeepsExistingStatus(t *testing.T) {
	db := newTestDB(t)
	alice := seedChild(t, db, "Alice", models.ChildStatusActive, nil)

	_, err := EnsureAttendance(db, "2026-02-02")
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Attendance{}).
		Where("child_id = ?", alice.ID).
		Update("status", models.AttendancePresent).Error)

	// เด็กใหม่ถูกเติม แถวเดิมไม่ถูกรีเซ็ต
	seedChild(t, db, "Bruno", models.ChildStatusActive, nil)
	n, err := EnsureAttendance(db, "2026-02-02")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var rec models.Attendance
	require.NoError(t, db.First(&rec, "child_id = ?", alice.ID).Error)
	assert.Equal(t, models.AttendancePresent, rec.Status)
}

func TestEnsureBillingSeedsTariffAmount(t *testing.T) {
	db := newTestDB(t)
	tariff := models.Tariff{Name: "Full day", Amount: 450, IsActive: true}
	require.NoError(t, db.Create(&tariff).Error)

	withTariff := seedChild(t, db, "Alice", models.ChildStatusActive, &tariff.ID)
	noTariff := seedChild(t, db, "Bruno", models.ChildStatusActive, nil)

	n, err := EnsureBilling(db, "2026-02")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var rec models.MonthlyBilling
	require.NoError(t, db.First(&rec, "child_id = ?", withTariff.ID).Error)
	assert.Equal(t, 450.0, rec.Amount)
	assert.Equal(t, models.BillingUnpaid, rec.Status)

	rec = models.MonthlyBilling{}
	require.NoError(t, db.First(&rec, "child_id = ?", noTariff.ID).Error)
	assert.Equal(t, 0.0, rec.Amount)
}

func TestEnsureBillingKeepsExistingAmounts(t *testing.T) {
	db := newTestDB(t)
	tariff := models.Tariff{Name: "Full day", Amount: 450, IsActive: true}
	require.NoError(t, db.Create(&tariff).Error)
	alice := seedChild(t, db, "Alice", models.ChildStatusActive, &tariff.ID)

	_, err := EnsureBilling(db, "2026-02")
	require.NoError(t, err)

	// ปรับยอดเองแล้ว tariff เปลี่ยนทีหลัง — แถวเดิมต้องไม่ขยับ
	require.NoError(t, db.Model(&models.MonthlyBilling{}).
		Where("child_id = ?", alice.ID).
		Update("amount", 999).Error)
	require.NoError(t, db.Model(&tariff).Update("amount", 100).Error)

	n, err := EnsureBilling(db, "2026-02")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	var rec models.MonthlyBilling
	require.NoError(t, db.First(&rec, "child_id = ?", alice.ID).Error)
	assert.Equal(t, 999.0, rec.Amount)
}
