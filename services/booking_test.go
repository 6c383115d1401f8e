package services

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"careops-backend/models"

	"github.com/google/uuid"
)

func newBookingInput(ws *models.Workspace, svc *models.Service) CreateBookingInput {
	return CreateBookingInput{
		WorkspaceID:   ws.ID,
		ServiceID:     svc.ID,
		BookingDate:   testMonday,
		StartTime:     "14:00",
		CustomerName:  "Alex Morgan",
		CustomerEmail: "alex@example.com",
		CustomerPhone: "+15550100",
	}
}

func TestCreateBookingHappyPath(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	svc := seedService(t, db, ws.ID, 60, 0, mondayWindow("09:00", "17:00"))

	booking, err := CreateBooking(db, nil, newBookingInput(ws, svc))
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if booking.EndTime != "15:00" {
		t.Errorf("expected end time 15:00, got %s", booking.EndTime)
	}
	if booking.Status != models.BookingConfirmed {
		t.Errorf("expected confirmed status, got %s", booking.Status)
	}

	var contact models.Contact
	if err := db.First(&contact, "id = ?", booking.ContactID).Error; err != nil {
		t.Fatalf("expected a contact to be created: %v", err)
	}
	if contact.Source != models.SourceBooking {
		t.Errorf("expected booking source, got %s", contact.Source)
	}

	var logCount int64
	db.Model(&models.AutomationLog{}).
		Where("workspace_id = ? AND event_type = ?", ws.ID, "booking_created").
		Count(&logCount)
	if logCount != 1 {
		t.Errorf("expected one booking_created log entry, got %d", logCount)
	}
}

func TestCreateBookingSpawnsObligationWithDeadline(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	svc := seedService(t, db, ws.ID, 60, 0, mondayWindow("09:00", "17:00"))

	deadlineHours := 24
	template := models.FormTemplate{
		WorkspaceID:   ws.ID,
		Name:          "Intake Form",
		DeadlineHours: &deadlineHours,
		IsActive:      true,
	}
	if err := db.Create(&template).Error; err != nil {
		t.Fatalf("failed to create template: %v", err)
	}

	booking, err := CreateBooking(db, nil, newBookingInput(ws, svc))
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	var submission models.FormSubmission
	if err := db.First(&submission, "booking_id = ?", booking.ID).Error; err != nil {
		t.Fatalf("expected a form submission: %v", err)
	}
	if submission.Status != models.SubmissionPending {
		t.Errorf("expected pending submission, got %s", submission.Status)
	}
	if submission.Token == uuid.Nil {
		t.Error("expected a token to be assigned")
	}

	// 2030-01-07 14:00 minus 24 hours.
	wantDeadline := time.Date(2030, 1, 6, 14, 0, 0, 0, time.UTC)
	if submission.Deadline == nil || !submission.Deadline.Equal(wantDeadline) {
		t.Errorf("expected deadline %v, got %v", wantDeadline, submission.Deadline)
	}
}

func TestCreateBookingSkipsUnlinkedTemplate(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	svc := seedService(t, db, ws.ID, 60, 0, mondayWindow("09:00", "17:00"))

	template := models.FormTemplate{
		WorkspaceID:      ws.ID,
		Name:             "Other Service Form",
		LinkedServiceIDs: models.UUIDList{uuid.NewString()},
		IsActive:         true,
	}
	if err := db.Create(&template).Error; err != nil {
		t.Fatalf("failed to create template: %v", err)
	}

	booking, err := CreateBooking(db, nil, newBookingInput(ws, svc))
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	var count int64
	db.Model(&models.FormSubmission{}).Where("booking_id = ?", booking.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected no submission for a template linked elsewhere, got %d", count)
	}
}

func TestCreateBookingDeductsInventory(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	svc := seedService(t, db, ws.ID, 60, 0, mondayWindow("09:00", "17:00"))

	item := models.InventoryItem{
		WorkspaceID:     ws.ID,
		Name:            "Massage Oil",
		Unit:            "bottles",
		CurrentQuantity: 4,
		LowThreshold:    5,
		UsagePerBooking: models.UsageMap{svc.ID.String(): 5},
		IsActive:        true,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to create item: %v", err)
	}

	if _, err := CreateBooking(db, nil, newBookingInput(ws, svc)); err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	var got models.InventoryItem
	db.First(&got, "id = ?", item.ID)
	if got.CurrentQuantity != 0 {
		t.Errorf("expected quantity clamped at 0, got %d", got.CurrentQuantity)
	}

	var alert models.Alert
	if err := db.First(&alert, "workspace_id = ? AND type = ?", ws.ID, models.AlertInventoryLow).Error; err != nil {
		t.Fatalf("expected an inventory_low alert: %v", err)
	}
	if alert.Severity != models.SeverityCritical {
		t.Errorf("expected critical severity at zero stock, got %s", alert.Severity)
	}
}

func TestCreateBookingSlotConflict(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	svc := seedService(t, db, ws.ID, 60, 0, mondayWindow("09:00", "17:00"))

	if _, err := CreateBooking(db, nil, newBookingInput(ws, svc)); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	// Exact duplicate.
	if _, err := CreateBooking(db, nil, newBookingInput(ws, svc)); !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("expected ErrSlotUnavailable for duplicate slot, got %v", err)
	}

	// Partial overlap: 14:30-15:30 against the existing 14:00-15:00.
	in := newBookingInput(ws, svc)
	in.StartTime = "14:30"
	if _, err := CreateBooking(db, nil, in); !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("expected ErrSlotUnavailable for overlapping slot, got %v", err)
	}

	// Touching boundary is allowed: 15:00-16:00.
	in.StartTime = "15:00"
	if _, err := CreateBooking(db, nil, in); err != nil {
		t.Errorf("expected adjacent booking to succeed, got %v", err)
	}
}

func TestCreateBookingNormalizesUnpaddedInput(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	svc := seedService(t, db, ws.ID, 60, 0, mondayWindow("09:00", "17:00"))

	in := newBookingInput(ws, svc)
	in.BookingDate = "2030-1-7"
	in.StartTime = "9:30"

	booking, err := CreateBooking(db, nil, in)
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if booking.StartTime != "09:30" || booking.EndTime != "10:30" {
		t.Errorf("expected canonical times 09:30-10:30, got %s-%s", booking.StartTime, booking.EndTime)
	}
	if booking.BookingDate != testMonday {
		t.Errorf("expected canonical date %s, got %s", testMonday, booking.BookingDate)
	}
}

func TestCreateBookingUnpaddedTimeHitsConflict(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	svc := seedService(t, db, ws.ID, 60, 0, mondayWindow("09:00", "17:00"))

	in := newBookingInput(ws, svc)
	in.StartTime = "09:00"
	if _, err := CreateBooking(db, nil, in); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	// "9:00" parses but sorts after "10:00" lexically; without
	// canonicalization it would slip past the overlap predicate and the
	// unique index and sell the same slot twice.
	in.StartTime = "9:00"
	if _, err := CreateBooking(db, nil, in); !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("expected ErrSlotUnavailable for unpadded duplicate, got %v", err)
	}

	var count int64
	db.Model(&models.Booking{}).Where("service_id = ?", svc.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected a single booking row, got %d", count)
	}
}

func TestCreateBookingConcurrentSingleWinner(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	svc := seedService(t, db, ws.ID, 60, 0, mondayWindow("09:00", "17:00"))

	const callers = 4
	errs := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			in := newBookingInput(ws, svc)
			in.CustomerEmail = fmt.Sprintf("caller%d@example.com", n)
			_, err := CreateBooking(db, nil, in)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	wins, losses := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotUnavailable):
			losses++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if wins != 1 || losses != callers-1 {
		t.Errorf("expected 1 winner and %d losers, got %d and %d", callers-1, wins, losses)
	}

	var count int64
	db.Model(&models.Booking{}).Where("service_id = ?", svc.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected a single booking row, got %d", count)
	}
}

func TestCreateBookingAfterCancellation(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	svc := seedService(t, db, ws.ID, 60, 0, mondayWindow("09:00", "17:00"))

	first, err := CreateBooking(db, nil, newBookingInput(ws, svc))
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := UpdateBookingStatus(db, ws.ID, first.ID, models.BookingCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if _, err := CreateBooking(db, nil, newBookingInput(ws, svc)); err != nil {
		t.Errorf("expected freed slot to be bookable again, got %v", err)
	}
}

func TestCreateBookingContactDedup(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	svc := seedService(t, db, ws.ID, 60, 0, mondayWindow("09:00", "17:00"))

	first, err := CreateBooking(db, nil, newBookingInput(ws, svc))
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	in := newBookingInput(ws, svc)
	in.StartTime = "16:00"
	second, err := CreateBooking(db, nil, in)
	if err != nil {
		t.Fatalf("second booking failed: %v", err)
	}

	if first.ContactID != second.ContactID {
		t.Errorf("expected both bookings to share one contact, got %s and %s", first.ContactID, second.ContactID)
	}

	var count int64
	db.Model(&models.Contact{}).Where("workspace_id = ?", ws.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected a single contact row, got %d", count)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	svc := seedService(t, db, ws.ID, 60, 0, mondayWindow("09:00", "17:00"))

	tests := []struct {
		name   string
		mutate func(*CreateBookingInput)
		want   error
	}{
		{"bad time", func(in *CreateBookingInput) { in.StartTime = "2pm" }, ErrInvalidInput},
		{"bad date", func(in *CreateBookingInput) { in.BookingDate = "Jan 7" }, ErrInvalidInput},
		{"empty name", func(in *CreateBookingInput) { in.CustomerName = "" }, ErrInvalidInput},
		{"unknown service", func(in *CreateBookingInput) { in.ServiceID = uuid.New() }, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newBookingInput(ws, svc)
			tt.mutate(&in)
			if _, err := CreateBooking(db, nil, in); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCreateBookingRollsBackOnFailure(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	svc := seedService(t, db, ws.ID, 60, 0, mondayWindow("09:00", "17:00"))

	template := models.FormTemplate{WorkspaceID: ws.ID, Name: "Intake", IsActive: true}
	if err := db.Create(&template).Error; err != nil {
		t.Fatalf("failed to create template: %v", err)
	}

	// Force the obligation insert to fail mid-transaction.
	if err := db.Migrator().DropTable(&models.FormSubmission{}); err != nil {
		t.Fatalf("failed to drop table: %v", err)
	}

	if _, err := CreateBooking(db, nil, newBookingInput(ws, svc)); err == nil {
		t.Fatal("expected CreateBooking to fail")
	}

	var bookings int64
	db.Model(&models.Booking{}).Where("workspace_id = ?", ws.ID).Count(&bookings)
	if bookings != 0 {
		t.Errorf("expected booking rolled back, found %d rows", bookings)
	}
	var contacts int64
	db.Model(&models.Contact{}).Where("workspace_id = ?", ws.ID).Count(&contacts)
	if contacts != 0 {
		t.Errorf("expected contact rolled back, found %d rows", contacts)
	}
}

func TestUpdateBookingStatus(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	svc := seedService(t, db, ws.ID, 60, 0, mondayWindow("09:00", "17:00"))

	booking, err := CreateBooking(db, nil, newBookingInput(ws, svc))
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	updated, err := UpdateBookingStatus(db, ws.ID, booking.ID, models.BookingCompleted)
	if err != nil {
		t.Fatalf("UpdateBookingStatus failed: %v", err)
	}
	if updated.Status != models.BookingCompleted {
		t.Errorf("expected completed, got %s", updated.Status)
	}

	if _, err := UpdateBookingStatus(db, ws.ID, booking.ID, "archived"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown status, got %v", err)
	}
	if _, err := UpdateBookingStatus(db, ws.ID, uuid.New(), models.BookingCancelled); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown booking, got %v", err)
	}
}
