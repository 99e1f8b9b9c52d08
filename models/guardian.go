package models

import "time"

type Guardian struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	FirstName string `json:"first_name" gorm:"size:80;not null"`
	LastName  string `json:"last_name" gorm:"size:80;not null"`
	Phone     string `json:"phone" gorm:"size:30;not null"`
	Email     string `json:"email" gorm:"size:120;not null"`
	ChildID   uint   `json:"child_id" gorm:"index;not null"` // ลบเด็ก → ลบผู้ปกครองตาม (จัดการใน handler)
	IsPrimary bool   `json:"is_primary" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
