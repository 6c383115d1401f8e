package services

import (
	"errors"
	"sort"
	"time"

	"careops-backend/models"
	"careops-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Slot is a candidate bookable interval spanning exactly one service
// duration. Times are "HH:MM".
type Slot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ComputeAvailableSlots derives the open slots for a service on a date from
// its weekly recurring windows, minus existing pending/confirmed bookings,
// minus already-passed starts when the date is today. It is a pure read:
// the conflict re-check inside CreateBooking is what actually prevents
// double-booking.
func ComputeAvailableSlots(db *gorm.DB, serviceID uuid.UUID, targetDate string) ([]Slot, error) {
	return computeAvailableSlots(db, serviceID, targetDate, time.Now())
}

// ComputeAvailableSlotsIn evaluates the same-day cutoff on the wall clock of
// the given location, so "today" means today for the business, not the
// server.
func ComputeAvailableSlotsIn(db *gorm.DB, serviceID uuid.UUID, targetDate string, loc *time.Location) ([]Slot, error) {
	if loc == nil {
		loc = time.UTC
	}
	return computeAvailableSlots(db, serviceID, targetDate, time.Now().In(loc))
}

func computeAvailableSlots(db *gorm.DB, serviceID uuid.UUID, targetDate string, now time.Time) ([]Slot, error) {
	date, err := utils.ParseDate(targetDate)
	if err != nil {
		return nil, ErrInvalidInput
	}

	var service models.Service
	if err := db.Preload("AvailabilityWindows").First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	dayOfWeek := utils.DayOfWeek(date)

	var windows []models.AvailabilityWindow
	for _, w := range service.AvailabilityWindows {
		if w.DayOfWeek == dayOfWeek && w.IsActive {
			windows = append(windows, w)
		}
	}
	if len(windows) == 0 {
		return []Slot{}, nil
	}

	booked, err := bookedIntervals(db, serviceID, targetDate)
	if err != nil {
		return nil, err
	}

	isToday := utils.FormatDate(utils.BeginningOfDay(now)) == targetDate
	nowMinutes := utils.MinutesOfDay(now)

	// Overlapping windows intentionally produce duplicate candidates; they
	// are not deduplicated here.
	var surviving []interval
	for _, w := range windows {
		for _, cand := range windowSlots(w, service.DurationMinutes, service.BufferMinutes) {
			if overlapsAny(cand, booked) {
				continue
			}
			if isToday && cand.start <= nowMinutes {
				continue
			}
			surviving = append(surviving, cand)
		}
	}

	sort.SliceStable(surviving, func(i, j int) bool {
		return surviving[i].start < surviving[j].start
	})

	slots := make([]Slot, 0, len(surviving))
	for _, cand := range surviving {
		slots = append(slots, Slot{
			StartTime: utils.FormatClock(cand.start),
			EndTime:   utils.FormatClock(cand.end),
		})
	}

	return slots, nil
}

type interval struct {
	start int // minutes since midnight
	end   int
}

// windowSlots advances a cursor from the window start in steps of
// duration+buffer. Each candidate spans the duration only; the buffer is
// spacing, never part of the slot.
func windowSlots(w models.AvailabilityWindow, durationMinutes, bufferMinutes int) []interval {
	start, err := utils.ParseClock(w.StartTime)
	if err != nil {
		return nil
	}
	end, err := utils.ParseClock(w.EndTime)
	if err != nil {
		return nil
	}

	var out []interval
	step := durationMinutes + bufferMinutes
	for cursor := start; cursor+durationMinutes <= end; cursor += step {
		out = append(out, interval{start: cursor, end: cursor + durationMinutes})
	}
	return out
}

// bookedIntervals loads the blocking bookings for a service/date. Only
// pending and confirmed bookings block slots.
func bookedIntervals(db *gorm.DB, serviceID uuid.UUID, targetDate string) ([]interval, error) {
	var bookings []models.Booking
	err := db.Where("service_id = ? AND booking_date = ? AND status IN ?",
		serviceID, targetDate, []models.BookingStatus{models.BookingPending, models.BookingConfirmed}).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	intervals := make([]interval, 0, len(bookings))
	for _, b := range bookings {
		s, err := utils.ParseClock(b.StartTime)
		if err != nil {
			continue
		}
		e, err := utils.ParseClock(b.EndTime)
		if err != nil {
			continue
		}
		intervals = append(intervals, interval{start: s, end: e})
	}
	return intervals, nil
}

// overlapsAny uses open-interval overlap: touching endpoints do not
// conflict.
func overlapsAny(cand interval, booked []interval) bool {
	for _, b := range booked {
		if cand.start < b.end && cand.end > b.start {
			return true
		}
	}
	return false
}
