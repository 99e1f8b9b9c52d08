package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/My-name-is-Jamshidbek/kindergarten-crm/config"
	"github.com/My-name-is-Jamshidbek/kindergarten-crm/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}

// Migrate สร้าง/อัปเดตตารางทั้งหมด (ใช้ซ้ำใน tests กับ sqlite)
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Classroom{},
		&models.Tariff{},
		&models.Child{},
		&models.Guardian{},
		&models.AuthorizedPickup{},
		&models.Attendance{},
		&models.MonthlyBilling{},
		&models.User{},
	)
}
