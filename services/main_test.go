package services

import (
	"testing"

	"careops-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB spins up an isolated in-memory database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A single connection keeps every session on the same in-memory store.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to unwrap test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.Contact{},
		&models.Service{},
		&models.AvailabilityWindow{},
		&models.Booking{},
		&models.FormTemplate{},
		&models.FormSubmission{},
		&models.InventoryItem{},
		&models.Alert{},
		&models.AutomationLog{},
		&models.Conversation{},
		&models.Message{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if err := models.EnsureBookingSlotIndex(db); err != nil {
		t.Fatalf("failed to create slot index: %v", err)
	}

	return db
}

func seedWorkspace(t *testing.T, db *gorm.DB) *models.Workspace {
	t.Helper()

	workspace := &models.Workspace{
		Name:         "Harbor Wellness",
		Slug:         "harbor-wellness-" + uuid.NewString()[:6],
		ContactEmail: "hello@harborwellness.test",
		Status:       models.WorkspaceActive,
		OwnerID:      uuid.New(),
	}
	if err := db.Create(workspace).Error; err != nil {
		t.Fatalf("failed to seed workspace: %v", err)
	}
	return workspace
}

func seedService(t *testing.T, db *gorm.DB, workspaceID uuid.UUID, durationMinutes, bufferMinutes int, windows ...models.AvailabilityWindow) *models.Service {
	t.Helper()

	service := &models.Service{
		WorkspaceID:         workspaceID,
		Name:                "Deep Tissue Massage",
		Price:               80,
		DurationMinutes:     durationMinutes,
		BufferMinutes:       bufferMinutes,
		IsActive:            true,
		AvailabilityWindows: windows,
	}
	if err := db.Create(service).Error; err != nil {
		t.Fatalf("failed to seed service: %v", err)
	}
	return service
}

func mondayWindow(startTime, endTime string) models.AvailabilityWindow {
	return models.AvailabilityWindow{
		DayOfWeek: 0,
		StartTime: startTime,
		EndTime:   endTime,
		IsActive:  true,
	}
}
