package services

import (
	"errors"
	"testing"
	"time"

	"careops-backend/models"

	"github.com/google/uuid"
)

// 2030-01-07 is a Monday.
const testMonday = "2030-01-07"

func TestComputeAvailableSlotsBufferSpacing(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	svc := seedService(t, db, ws.ID, 60, 15, mondayWindow("09:00", "17:00"))

	slots, err := ComputeAvailableSlots(db, svc.ID, testMonday)
	if err != nil {
		t.Fatalf("ComputeAvailableSlots failed: %v", err)
	}

	// 480 minute window, 75 minute stride: floor((480-60)/75)+1 = 6 slots.
	want := []Slot{
		{StartTime: "09:00", EndTime: "10:00"},
		{StartTime: "10:15", EndTime: "11:15"},
		{StartTime: "11:30", EndTime: "12:30"},
		{StartTime: "12:45", EndTime: "13:45"},
		{StartTime: "14:00", EndTime: "15:00"},
		{StartTime: "15:15", EndTime: "16:15"},
	}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d: %v", len(want), len(slots), slots)
	}
	for i, s := range slots {
		if s != want[i] {
			t.Errorf("slot %d: expected %v, got %v", i, want[i], s)
		}
	}
}

func TestComputeAvailableSlotsExactFit(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	svc := seedService(t, db, ws.ID, 30, 0, mondayWindow("09:00", "10:00"))

	slots, err := ComputeAvailableSlots(db, svc.ID, testMonday)
	if err != nil {
		t.Fatalf("ComputeAvailableSlots failed: %v", err)
	}

	want := []Slot{
		{StartTime: "09:00", EndTime: "09:30"},
		{StartTime: "09:30", EndTime: "10:00"},
	}
	if len(slots) != 2 || slots[0] != want[0] || slots[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, slots)
	}
}

func TestComputeAvailableSlotsExcludesBooked(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	svc := seedService(t, db, ws.ID, 30, 0, mondayWindow("09:00", "11:00"))

	booking := models.Booking{
		WorkspaceID:  ws.ID,
		ServiceID:    svc.ID,
		ContactID:    uuid.New(),
		BookingDate:  testMonday,
		StartTime:    "09:30",
		EndTime:      "10:00",
		Status:       models.BookingConfirmed,
		CustomerName: "Dana",
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}

	slots, err := ComputeAvailableSlots(db, svc.ID, testMonday)
	if err != nil {
		t.Fatalf("ComputeAvailableSlots failed: %v", err)
	}

	// Touching endpoints do not conflict: 09:00-09:30 and 10:00-10:30 stay.
	want := []Slot{
		{StartTime: "09:00", EndTime: "09:30"},
		{StartTime: "10:00", EndTime: "10:30"},
		{StartTime: "10:30", EndTime: "11:00"},
	}
	if len(slots) != len(want) {
		t.Fatalf("expected %v, got %v", want, slots)
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slot %d: expected %v, got %v", i, want[i], slots[i])
		}
	}
}

func TestComputeAvailableSlotsCancelledDoesNotBlock(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	svc := seedService(t, db, ws.ID, 30, 0, mondayWindow("09:00", "10:00"))

	booking := models.Booking{
		WorkspaceID:  ws.ID,
		ServiceID:    svc.ID,
		ContactID:    uuid.New(),
		BookingDate:  testMonday,
		StartTime:    "09:00",
		EndTime:      "09:30",
		Status:       models.BookingCancelled,
		CustomerName: "Dana",
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}

	slots, err := ComputeAvailableSlots(db, svc.ID, testMonday)
	if err != nil {
		t.Fatalf("ComputeAvailableSlots failed: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, cancelled booking should not block: %v", slots)
	}
}

func TestComputeAvailableSlotsTodayPastStarts(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	svc := seedService(t, db, ws.ID, 60, 0, mondayWindow("09:00", "17:00"))

	now := time.Date(2030, 1, 7, 12, 0, 0, 0, time.UTC)
	slots, err := computeAvailableSlots(db, svc.ID, testMonday, now)
	if err != nil {
		t.Fatalf("computeAvailableSlots failed: %v", err)
	}

	// A slot starting exactly now is excluded too.
	if len(slots) != 4 {
		t.Fatalf("expected 4 remaining slots, got %v", slots)
	}
	if slots[0].StartTime != "13:00" {
		t.Errorf("expected first remaining slot at 13:00, got %s", slots[0].StartTime)
	}
}

func TestComputeAvailableSlotsNoWindowDay(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	svc := seedService(t, db, ws.ID, 30, 0, mondayWindow("09:00", "17:00"))

	// 2030-01-08 is a Tuesday.
	slots, err := ComputeAvailableSlots(db, svc.ID, "2030-01-08")
	if err != nil {
		t.Fatalf("ComputeAvailableSlots failed: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots on a day without windows, got %v", slots)
	}
}

func TestComputeAvailableSlotsInactiveWindowIgnored(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	inactive := mondayWindow("09:00", "17:00")
	inactive.IsActive = false
	svc := seedService(t, db, ws.ID, 30, 0, inactive)

	slots, err := ComputeAvailableSlots(db, svc.ID, testMonday)
	if err != nil {
		t.Fatalf("ComputeAvailableSlots failed: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected inactive window to be ignored, got %v", slots)
	}
}

func TestComputeAvailableSlotsOverlappingWindowsKeepDuplicates(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	svc := seedService(t, db, ws.ID, 30, 0,
		mondayWindow("09:00", "10:00"),
		mondayWindow("09:00", "10:00"),
	)

	slots, err := ComputeAvailableSlots(db, svc.ID, testMonday)
	if err != nil {
		t.Fatalf("ComputeAvailableSlots failed: %v", err)
	}
	if len(slots) != 4 {
		t.Fatalf("expected duplicate candidates from overlapping windows, got %v", slots)
	}
	if slots[0].StartTime != "09:00" || slots[1].StartTime != "09:00" {
		t.Errorf("expected slots sorted by start with duplicates adjacent, got %v", slots)
	}
}

func TestComputeAvailableSlotsErrors(t *testing.T) {
	db := openTestDB(t)
	ws := seedWorkspace(t, db)
	svc := seedService(t, db, ws.ID, 30, 0, mondayWindow("09:00", "17:00"))

	if _, err := ComputeAvailableSlots(db, svc.ID, "07-01-2030"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for malformed date, got %v", err)
	}
	if _, err := ComputeAvailableSlots(db, uuid.New(), testMonday); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown service, got %v", err)
	}
}
