package models

import "time"

type Tariff struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"size:120;uniqueIndex;not null"`
	Amount      float64 `json:"amount" gorm:"type:numeric(12,2);not null"`
	IsActive    bool    `json:"is_active" gorm:"not null;default:true"`
	Description string  `json:"description" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
