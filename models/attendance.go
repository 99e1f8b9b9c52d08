package models

import "time"

// สถานะเข้าเรียนรายวัน
const (
	AttendanceExpected = "expected" // ยังไม่บันทึก
	AttendancePresent  = "present"
	AttendanceAbsent   = "absent"
	AttendanceLate     = "late"
	AttendanceHalfDay  = "half_day"
)

// ValidAttendanceStatus returns true when the status is a supported value.
func ValidAttendanceStatus(s string) bool {
	switch s {
	case AttendanceExpected, AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceHalfDay:
		return true
	default:
		return false
	}
}

// บันทึกสถานะรายวันของเด็ก — 1 แถวต่อ (เด็ก, วัน)
type Attendance struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	ChildID        uint   `json:"child_id" gorm:"not null;uniqueIndex:uniq_attendance_child_date"`
	AttendanceDate string `json:"attendance_date" gorm:"size:10;not null;uniqueIndex:uniq_attendance_child_date;index:idx_attendance_date_status"` // YYYY-MM-DD
	Status         string `json:"status" gorm:"size:10;not null;default:'expected';index:idx_attendance_date_status"`
	CheckInTime    string `json:"check_in_time" gorm:"size:5"`  // HH:MM (ถ้ามี)
	CheckOutTime   string `json:"check_out_time" gorm:"size:5"` // HH:MM (ถ้ามี)
	AbsenceReason  string `json:"absence_reason" gorm:"type:text"`
	Notes          string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
