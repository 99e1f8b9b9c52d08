package roster

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/My-name-is-Jamshidbek/kindergarten-crm/models"
)

var (
	ErrInvalidStatus = errors.New("invalid status")
	ErrNotFound      = errors.New("record not found")
)

// MarkAttendance เปลี่ยนสถานะแถว attendance ที่มีอยู่แล้ว
// status นอกเซ็ตที่อนุญาต → ErrInvalidStatus โดยไม่แตะข้อมูล
func MarkAttendance(db *gorm.DB, id uint, status string) (models.Attendance, error) {
	if !models.ValidAttendanceStatus(status) {
		return models.Attendance{}, ErrInvalidStatus
	}

	var rec models.Attendance
	if err := db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Attendance{}, ErrNotFound
		}
		return models.Attendance{}, err
	}

	// เขียนเฉพาะ status (+updated_at)
	if err := db.Model(&rec).Update("status", status).Error; err != nil {
		return models.Attendance{}, err
	}
	return rec, nil
}

// MarkBillingPaid บันทึกจ่ายแล้ว — ถ้ายังไม่มีแถวของ (เด็ก, เดือน) จะสร้างให้ก่อน (upsert)
// เรียกซ้ำได้: จ่ายแล้วจ่ายอีก = refresh paid_at
func MarkBillingPaid(db *gorm.DB, childID uint, month string) (models.MonthlyBilling, error) {
	return setBillingStatus(db, childID, month, models.BillingPaid)
}

// MarkBillingUnpaid ย้อนสถานะเป็นยังไม่จ่าย และล้าง paid_at
func MarkBillingUnpaid(db *gorm.DB, childID uint, month string) (models.MonthlyBilling, error) {
	return setBillingStatus(db, childID, month, models.BillingUnpaid)
}

func setBillingStatus(db *gorm.DB, childID uint, month, status string) (models.MonthlyBilling, error) {
	var child models.Child
	if err := db.First(&child, "id = ?", childID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.MonthlyBilling{}, ErrNotFound
		}
		return models.MonthlyBilling{}, err
	}

	// สร้างแถวถ้ายังไม่มี — ยอดตั้งต้นตาม tariff ปัจจุบันของเด็ก
	var amount float64
	if child.TariffID != nil {
		var tariff models.Tariff
		if err := db.First(&tariff, "id = ?", *child.TariffID).Error; err == nil {
			amount = tariff.Amount
		}
	}
	seed := models.MonthlyBilling{
		ChildID:      childID,
		BillingMonth: month,
		Amount:       amount,
		Status:       models.BillingUnpaid,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return models.MonthlyBilling{}, err
	}

	var rec models.MonthlyBilling
	if err := db.First(&rec, "child_id = ? AND billing_month = ?", childID, month).Error; err != nil {
		return models.MonthlyBilling{}, err
	}

	rec.Status = status
	if status == models.BillingPaid {
		now := time.Now()
		rec.PaidAt = &now
	} else {
		rec.PaidAt = nil
	}
	if err := db.Model(&rec).Select("status", "paid_at").Updates(&rec).Error; err != nil {
		return models.MonthlyBilling{}, err
	}
	return rec, nil
}
