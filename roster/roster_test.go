package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/My-name-is-Jamshidbek/kindergarten-crm/database"
	"github.com/My-name-is-Jamshidbek/kindergarten-crm/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedChild(t *testing.T, db *gorm.DB, first string, status string, tariffID *uint) models.Child {
	t.Helper()
	var room models.Classroom
	err := db.First(&room).Error
	if err != nil {
		room = models.Classroom{Name: "Sunflowers", AgeGroup: "3-4", Capacity: 20}
		require.NoError(t, db.Create(&room).Error)
	}
	ch := models.Child{
		FirstName:   first,
		LastName:    "Test",
		BirthDate:   time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC),
		ClassroomID: room.ID,
		TariffID:    tariffID,
		Status:      status,
	}
	require.NoError(t, db.Create(&ch).Error)
	return ch
}
