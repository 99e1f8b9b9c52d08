package roster

import "time"

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// ParseDate อ่าน period key แบบวัน (YYYY-MM-DD)
// ค่าว่าง/พาร์สไม่ได้/ปี < 1900 → ใช้วันนี้แทน ไม่ถือเป็น error
func ParseDate(s string) string {
	if s == "" {
		return time.Now().Format(DateLayout)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil || t.Year() < 1900 {
		return time.Now().Format(DateLayout)
	}
	return t.Format(DateLayout)
}

// ParseMonth อ่าน period key แบบเดือน (YYYY-MM)
// รับ YYYY-MM-DD ด้วย (ตัดเหลือ prefix); ค่าที่ไม่ถูกต้อง → เดือนปัจจุบัน
func ParseMonth(s string) string {
	if s == "" {
		return time.Now().Format(MonthLayout)
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		if t.Year() < 1900 {
			return time.Now().Format(MonthLayout)
		}
		return t.Format(MonthLayout)
	}
	t, err := time.Parse(MonthLayout, s)
	if err != nil || t.Year() < 1900 {
		return time.Now().Format(MonthLayout)
	}
	return t.Format(MonthLayout)
}
