package roster

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/My-name-is-Jamshidbek/kindergarten-crm/models"
)

// EnsureAttendance เติมแถว attendance ของวันที่กำหนดให้เด็ก active ทุกคนที่ยังไม่มีแถว
// สถานะเริ่มต้น expected; แถวเดิมไม่ถูกแตะ; เรียกซ้ำกี่ครั้งก็ได้ (idempotent)
// ชนกับ materialize พร้อมกัน → unique constraint กันซ้ำ แล้วถือว่าสำเร็จ
func EnsureAttendance(db *gorm.DB, date string) (int, error) {
	existing := db.Model(&models.Attendance{}).
		Select("child_id").
		Where("attendance_date = ?", date)

	var childIDs []uint
	if err := db.Model(&models.Child{}).
		Where("status = ?", models.ChildStatusActive).
		Where("id NOT IN (?)", existing).
		Pluck("id", &childIDs).Error; err != nil {
		return 0, err
	}
	if len(childIDs) == 0 {
		return 0, nil
	}

	rows := make([]models.Attendance, 0, len(childIDs))
	for _, id := range childIDs {
		rows = append(rows, models.Attendance{
			ChildID:        id,
			AttendanceDate: date,
			Status:         models.AttendanceExpected,
		})
	}

	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

// EnsureBilling เติมแถวบิลของเดือนที่กำหนด ยอดตั้งต้น = amount ของ tariff เด็ก (ไม่มี tariff = 0)
// แถวเดิมคงยอด/สถานะเดิมไว้เสมอ แม้ tariff จะเปลี่ยนภายหลัง
func EnsureBilling(db *gorm.DB, month string) (int, error) {
	existing := db.Model(&models.MonthlyBilling{}).
		Select("child_id").
		Where("billing_month = ?", month)

	var missing []struct {
		ID     uint
		Amount *float64
	}
	if err := db.Model(&models.Child{}).
		Select("children.id, tariffs.amount").
		Joins("LEFT JOIN tariffs ON tariffs.id = children.tariff_id").
		Where("children.status = ?", models.ChildStatusActive).
		Where("children.id NOT IN (?)", existing).
		Scan(&missing).Error; err != nil {
		return 0, err
	}
	if len(missing) == 0 {
		return 0, nil
	}

	rows := make([]models.MonthlyBilling, 0, len(missing))
	for _, m := range missing {
		var amount float64
		if m.Amount != nil {
			amount = *m.Amount
		}
		rows = append(rows, models.MonthlyBilling{
			ChildID:      m.ID,
			BillingMonth: month,
			Amount:       amount,
			Status:       models.BillingUnpaid,
		})
	}

	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}
