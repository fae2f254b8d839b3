// Package scheduling computes bookable time slots for a doctor's day from
// recurring weekly availability windows and existing appointments. It is
// pure computation: callers load the rows, this package classifies them.
package scheduling

import (
	"errors"
	"fmt"
	"time"

	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

// SlotStatus classifies a single slot of a doctor's day
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotBooked      SlotStatus = "booked"
	SlotUnavailable SlotStatus = "unavailable"
)

// Slot is the atomic bookable unit of a doctor's calendar
type Slot struct {
	Time          string     `json:"time"`
	Status        SlotStatus `json:"status"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
}

// OperatingWindow is the clinic-wide span of candidate slots, wall-clock HH:MM
type OperatingWindow struct {
	Start string
	End   string
}

var (
	ErrInvalidGranularity = errors.New("granularity must be positive and evenly divide the operating window")
	ErrInvalidClockTime   = errors.New("invalid time of day, use HH:MM")
)

// ParseClock converts an HH:MM string to minutes since midnight
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidClockTime
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes since midnight back to an HH:MM string
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ResolveDaySlots produces the ordered slot classification for one doctor
// and one calendar date.
//
// Candidate slot starts step from the operating-window start to its end in
// increments of granularityMinutes. Each slot defaults to unavailable, is
// reclassified available when any window for the date's weekday covers it
// (startTime <= t < endTime) with IsAvailable=true, and is reclassified
// booked when a non-cancelled appointment starts at exactly t. Booked
// always wins over available. Appointments whose start does not align to
// a slot boundary are not matched.
//
// Windows for other weekdays and appointments on other calendar days or
// with cancelled status are ignored, so callers may pass supersets.
// Returns ErrInvalidGranularity when granularityMinutes is not positive
// or does not evenly divide the operating window.
func ResolveDaySlots(
	window OperatingWindow,
	granularityMinutes int,
	date time.Time,
	availabilityWindows []entity.AvailabilityWindow,
	appointments []entity.Appointment,
) ([]Slot, error) {
	start, err := ParseClock(window.Start)
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(window.End)
	if err != nil {
		return nil, err
	}
	if granularityMinutes <= 0 || end <= start || (end-start)%granularityMinutes != 0 {
		return nil, ErrInvalidGranularity
	}

	dayOfWeek := int(date.Weekday())

	type span struct {
		start, end int
	}
	var open []span
	for _, w := range availabilityWindows {
		if w.DayOfWeek != dayOfWeek || !w.IsAvailable {
			continue
		}
		ws, err := ParseClock(w.StartTime)
		if err != nil {
			continue
		}
		we, err := ParseClock(w.EndTime)
		if err != nil {
			continue
		}
		open = append(open, span{start: ws, end: we})
	}

	booked := make(map[int]uuid.UUID)
	y, m, d := date.Date()
	for _, a := range appointments {
		if a.IsCancelled() {
			continue
		}
		ay, am, ad := a.Date.Date()
		if ay != y || am != m || ad != d {
			continue
		}
		booked[a.Date.Hour()*60+a.Date.Minute()] = a.ID
	}

	slots := make([]Slot, 0, (end-start)/granularityMinutes)
	for t := start; t < end; t += granularityMinutes {
		slot := Slot{Time: FormatClock(t), Status: SlotUnavailable}
		for _, s := range open {
			if s.start <= t && t < s.end {
				slot.Status = SlotAvailable
				break
			}
		}
		if id, ok := booked[t]; ok {
			appointmentID := id
			slot.Status = SlotBooked
			slot.AppointmentID = &appointmentID
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// ApplyToggle flips one slot between available and unavailable, in place.
// Toggling a booked slot is a no-op. Returns false when no slot matches
// the given time or the slot is booked.
func ApplyToggle(slots []Slot, clock string) bool {
	for i := range slots {
		if slots[i].Time != clock {
			continue
		}
		switch slots[i].Status {
		case SlotAvailable:
			slots[i].Status = SlotUnavailable
			return true
		case SlotUnavailable:
			slots[i].Status = SlotAvailable
			return true
		default:
			return false
		}
	}
	return false
}

// WindowsForDay converts an edited day's slots back into recurring
// availability rows for the date's weekday, one row per slot. Persistence
// is at day-of-week granularity: the saved rows apply to every future
// occurrence of that weekday, not just the edited date. Booked slots keep
// their range offered so the underlying window survives the booking.
func WindowsForDay(doctorID uuid.UUID, dayOfWeek int, slots []Slot, granularityMinutes int) []entity.AvailabilityWindow {
	windows := make([]entity.AvailabilityWindow, 0, len(slots))
	for _, slot := range slots {
		start, err := ParseClock(slot.Time)
		if err != nil {
			continue
		}
		windows = append(windows, entity.AvailabilityWindow{
			DoctorID:    doctorID,
			DayOfWeek:   dayOfWeek,
			StartTime:   slot.Time,
			EndTime:     FormatClock(start + granularityMinutes),
			IsAvailable: slot.Status != SlotUnavailable,
		})
	}
	return windows
}
