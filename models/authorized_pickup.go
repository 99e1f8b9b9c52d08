package models

import "time"

// ผู้มีสิทธิ์มารับเด็ก นอกเหนือจากผู้ปกครองหลัก
type AuthorizedPickup struct {
	ID               uint    `json:"id" gorm:"primaryKey"`
	ChildID          uint    `json:"child_id" gorm:"index;not null"`
	FullName         string  `json:"full_name" gorm:"size:160;not null"`
	Relationship     string  `json:"relationship" gorm:"size:80;not null"` // เช่น "aunt", "driver"
	Phone            string  `json:"phone" gorm:"size:30;not null"`
	IDDocumentNumber string  `json:"id_document_number" gorm:"size:80"`
	IsActive         bool    `json:"is_active" gorm:"not null;default:true"`
	ValidFrom        *string `json:"valid_from" gorm:"size:10"`  // YYYY-MM-DD
	ValidUntil       *string `json:"valid_until" gorm:"size:10"` // YYYY-MM-DD

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
