package models

import "time"

type Classroom struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"size:120;uniqueIndex;not null"`
	AgeGroup string `json:"age_group" gorm:"size:50;not null"` // เช่น "3-4"
	Capacity int    `json:"capacity" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
