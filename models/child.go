package models

import "time"

// สถานะเด็ก
const (
	ChildStatusActive   = "active"
	ChildStatusInactive = "inactive"
)

type Child struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FirstName   string    `json:"first_name" gorm:"size:80;not null"`
	LastName    string    `json:"last_name" gorm:"size:80;not null"`
	BirthDate   time.Time `json:"birth_date" gorm:"type:date;not null"`
	ClassroomID uint      `json:"classroom_id" gorm:"index;not null"`
	TariffID    *uint     `json:"tariff_id" gorm:"index"`                                // optional; ลบ tariff → set null
	Status      string    `json:"status" gorm:"size:10;not null;default:'active'"`       // active | inactive

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidChildStatus(s string) bool {
	return s == ChildStatusActive || s == ChildStatusInactive
}

// AgeYears นับอายุเต็มปี ณ วันนี้
func (c *Child) AgeYears() int {
	today := time.Now()
	years := today.Year() - c.BirthDate.Year()
	if today.Month() < c.BirthDate.Month() ||
		(today.Month() == c.BirthDate.Month() && today.Day() < c.BirthDate.Day()) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return years
}
