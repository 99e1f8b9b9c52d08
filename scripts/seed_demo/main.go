// scripts/seed_demo — ข้อมูลตัวอย่างสำหรับ dev/demo
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/My-name-is-Jamshidbek/kindergarten-crm/config"
	"github.com/My-name-is-Jamshidbek/kindergarten-crm/database"
	"github.com/My-name-is-Jamshidbek/kindergarten-crm/models"
	"github.com/My-name-is-Jamshidbek/kindergarten-crm/roster"
)

func main() {
	cfg := config.Load()
	database.Connect(cfg)
	db := database.DB

	var n int64
	db.Model(&models.Child{}).Count(&n)
	if n > 0 {
		fmt.Println("database already has children, skipping seed")
		return
	}

	classrooms := []models.Classroom{
		{Name: "Sunflowers", AgeGroup: "3-4", Capacity: 15},
		{Name: "Stars", AgeGroup: "4-5", Capacity: 18},
		{Name: "Rainbows", AgeGroup: "5-6", Capacity: 20},
	}
	if err := db.Create(&classrooms).Error; err != nil {
		log.Fatalf("seed classrooms: %v", err)
	}

	tariffs := []models.Tariff{
		{Name: "Full day", Amount: 450.00, IsActive: true, Description: "08:00-18:00, meals included"},
		{Name: "Half day", Amount: 300.00, IsActive: true, Description: "08:00-13:00, lunch included"},
		{Name: "Legacy plan", Amount: 380.00, IsActive: false},
	}
	if err := db.Create(&tariffs).Error; err != nil {
		log.Fatalf("seed tariffs: %v", err)
	}

	full := tariffs[0].ID
	half := tariffs[1].ID
	children := []models.Child{
		{FirstName: "Alice", LastName: "Moreau", BirthDate: date(2022, 3, 14), ClassroomID: classrooms[0].ID, TariffID: &full, Status: models.ChildStatusActive},
		{FirstName: "Bruno", LastName: "Keller", BirthDate: date(2022, 7, 2), ClassroomID: classrooms[0].ID, TariffID: &half, Status: models.ChildStatusActive},
		{FirstName: "Clara", LastName: "Dimitrov", BirthDate: date(2021, 11, 23), ClassroomID: classrooms[1].ID, TariffID: &full, Status: models.ChildStatusActive},
		{FirstName: "Daniel", LastName: "Okafor", BirthDate: date(2021, 1, 8), ClassroomID: classrooms[1].ID, TariffID: &full, Status: models.ChildStatusActive},
		{FirstName: "Emma", LastName: "Virtanen", BirthDate: date(2020, 5, 30), ClassroomID: classrooms[2].ID, TariffID: &half, Status: models.ChildStatusActive},
		{FirstName: "Filip", LastName: "Nowak", BirthDate: date(2020, 9, 17), ClassroomID: classrooms[2].ID, Status: models.ChildStatusInactive},
	}
	if err := db.Create(&children).Error; err != nil {
		log.Fatalf("seed children: %v", err)
	}

	guardians := []models.Guardian{
		{FirstName: "Marie", LastName: "Moreau", Phone: "+33 6 12 34 56 78", Email: "marie.moreau@example.com", ChildID: children[0].ID, IsPrimary: true},
		{FirstName: "Paul", LastName: "Moreau", Phone: "+33 6 98 76 54 32", Email: "paul.moreau@example.com", ChildID: children[0].ID},
		{FirstName: "Greta", LastName: "Keller", Phone: "+49 151 2345678", Email: "greta.keller@example.com", ChildID: children[1].ID, IsPrimary: true},
		{FirstName: "Ivan", LastName: "Dimitrov", Phone: "+359 88 123 4567", Email: "ivan.dimitrov@example.com", ChildID: children[2].ID, IsPrimary: true},
		{FirstName: "Ngozi", LastName: "Okafor", Phone: "+234 803 123 4567", Email: "ngozi.okafor@example.com", ChildID: children[3].ID, IsPrimary: true},
		{FirstName: "Aino", LastName: "Virtanen", Phone: "+358 40 123 4567", Email: "aino.virtanen@example.com", ChildID: children[4].ID, IsPrimary: true},
	}
	if err := db.Create(&guardians).Error; err != nil {
		log.Fatalf("seed guardians: %v", err)
	}

	until := "2026-12-31"
	pickups := []models.AuthorizedPickup{
		{ChildID: children[0].ID, FullName: "Jeanne Moreau", Relationship: "grandmother", Phone: "+33 6 11 22 33 44", IsActive: true},
		{ChildID: children[2].ID, FullName: "Stefan Dimitrov", Relationship: "uncle", Phone: "+359 88 765 4321", IsActive: true, ValidUntil: &until},
	}
	if err := db.Create(&pickups).Error; err != nil {
		log.Fatalf("seed pickups: %v", err)
	}

	// เปิด roster ของวันนี้กับบิลของเดือนนี้ไว้เลย
	today := time.Now().Format("2006-01-02")
	if _, err := roster.EnsureAttendance(db, today); err != nil {
		log.Fatalf("seed attendance: %v", err)
	}
	if _, err := roster.EnsureBilling(db, today[:7]); err != nil {
		log.Fatalf("seed billing: %v", err)
	}

	fmt.Println("demo data seeded")
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
