package scheduling

import (
	"testing"
	"time"

	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clinicHours = OperatingWindow{Start: "09:00", End: "17:00"}

// monday is a fixed Monday used across the tests
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func mondayWindow(doctorID uuid.UUID, start, end string, available bool) entity.AvailabilityWindow {
	return entity.AvailabilityWindow{
		DoctorID:    doctorID,
		DayOfWeek:   int(time.Monday),
		StartTime:   start,
		EndTime:     end,
		IsAvailable: available,
	}
}

func scheduledAt(doctorID uuid.UUID, day time.Time, hour, minute int) entity.Appointment {
	return entity.Appointment{
		ID:       uuid.New(),
		DoctorID: doctorID,
		Date:     time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC),
		Duration: 30,
		Type:     "checkup",
		Status:   entity.AppointmentStatusScheduled,
	}
}

func statusAt(t *testing.T, slots []Slot, clock string) SlotStatus {
	t.Helper()
	for _, s := range slots {
		if s.Time == clock {
			return s.Status
		}
	}
	t.Fatalf("no slot at %s", clock)
	return ""
}

func TestResolveDaySlots_NoWindowsAllUnavailable(t *testing.T) {
	slots, err := ResolveDaySlots(clinicHours, 30, monday, nil, nil)
	require.NoError(t, err)

	require.Len(t, slots, 16)
	for _, slot := range slots {
		assert.Equal(t, SlotUnavailable, slot.Status, "slot %s", slot.Time)
		assert.Nil(t, slot.AppointmentID)
	}
}

func TestResolveDaySlots_CoveredSlotsAvailable(t *testing.T) {
	doctorID := uuid.New()
	windows := []entity.AvailabilityWindow{
		mondayWindow(doctorID, "09:00", "12:00", true),
	}

	slots, err := ResolveDaySlots(clinicHours, 30, monday, windows, nil)
	require.NoError(t, err)

	assert.Equal(t, SlotAvailable, statusAt(t, slots, "09:00"))
	assert.Equal(t, SlotAvailable, statusAt(t, slots, "11:30"))
	assert.Equal(t, SlotUnavailable, statusAt(t, slots, "12:00"), "window end is exclusive")
}

func TestResolveDaySlots_BookedOverridesAvailable(t *testing.T) {
	doctorID := uuid.New()
	windows := []entity.AvailabilityWindow{
		mondayWindow(doctorID, "09:00", "17:00", true),
	}
	appointment := scheduledAt(doctorID, monday, 10, 0)

	slots, err := ResolveDaySlots(clinicHours, 30, monday, windows, []entity.Appointment{appointment})
	require.NoError(t, err)

	assert.Equal(t, SlotBooked, statusAt(t, slots, "10:00"))
}

func TestResolveDaySlots_BookedWithoutWindow(t *testing.T) {
	doctorID := uuid.New()
	appointment := scheduledAt(doctorID, monday, 14, 0)

	slots, err := ResolveDaySlots(clinicHours, 30, monday, nil, []entity.Appointment{appointment})
	require.NoError(t, err)

	assert.Equal(t, SlotBooked, statusAt(t, slots, "14:00"), "booked wins regardless of window configuration")
}

func TestResolveDaySlots_CancellationFreesSlot(t *testing.T) {
	doctorID := uuid.New()
	windows := []entity.AvailabilityWindow{
		mondayWindow(doctorID, "09:00", "12:00", true),
	}
	appointment := scheduledAt(doctorID, monday, 10, 0)

	slots, err := ResolveDaySlots(clinicHours, 30, monday, windows, []entity.Appointment{appointment})
	require.NoError(t, err)
	assert.Equal(t, SlotBooked, statusAt(t, slots, "10:00"))

	appointment.Cancel()

	slots, err = ResolveDaySlots(clinicHours, 30, monday, windows, []entity.Appointment{appointment})
	require.NoError(t, err)
	assert.Equal(t, SlotAvailable, statusAt(t, slots, "10:00"))

	// Without a covering window the freed slot falls back to unavailable
	slots, err = ResolveDaySlots(clinicHours, 30, monday, nil, []entity.Appointment{appointment})
	require.NoError(t, err)
	assert.Equal(t, SlotUnavailable, statusAt(t, slots, "10:00"))
}

func TestResolveDaySlots_LengthAndOrder(t *testing.T) {
	for _, granularity := range []int{30, 60} {
		slots, err := ResolveDaySlots(clinicHours, granularity, monday, nil, nil)
		require.NoError(t, err)
		require.Len(t, slots, (17-9)*60/granularity)

		for i := 1; i < len(slots); i++ {
			prev, err := ParseClock(slots[i-1].Time)
			require.NoError(t, err)
			cur, err := ParseClock(slots[i].Time)
			require.NoError(t, err)
			assert.Equal(t, granularity, cur-prev)
		}
	}
}

func TestResolveDaySlots_MorningWindowScenario(t *testing.T) {
	doctorID := uuid.New()
	windows := []entity.AvailabilityWindow{
		mondayWindow(doctorID, "09:00", "12:00", true),
	}

	slots, err := ResolveDaySlots(clinicHours, 60, monday, windows, nil)
	require.NoError(t, err)
	require.Len(t, slots, 8)

	expected := map[string]SlotStatus{
		"09:00": SlotAvailable,
		"10:00": SlotAvailable,
		"11:00": SlotAvailable,
		"12:00": SlotUnavailable,
		"13:00": SlotUnavailable,
		"14:00": SlotUnavailable,
		"15:00": SlotUnavailable,
		"16:00": SlotUnavailable,
	}
	for i, slot := range slots {
		assert.Equal(t, expected[slot.Time], slot.Status, "slot %d (%s)", i, slot.Time)
	}
}

func TestResolveDaySlots_MorningWindowWithBookingScenario(t *testing.T) {
	doctorID := uuid.New()
	windows := []entity.AvailabilityWindow{
		mondayWindow(doctorID, "09:00", "12:00", true),
	}
	appointment := scheduledAt(doctorID, monday, 10, 0)

	slots, err := ResolveDaySlots(clinicHours, 60, monday, windows, []entity.Appointment{appointment})
	require.NoError(t, err)

	for _, slot := range slots {
		switch slot.Time {
		case "10:00":
			assert.Equal(t, SlotBooked, slot.Status)
			require.NotNil(t, slot.AppointmentID)
			assert.Equal(t, appointment.ID, *slot.AppointmentID)
		case "09:00", "11:00":
			assert.Equal(t, SlotAvailable, slot.Status)
			assert.Nil(t, slot.AppointmentID)
		default:
			assert.Equal(t, SlotUnavailable, slot.Status)
		}
	}

	// Cancelling and re-resolving returns the slot to available
	appointment.Cancel()
	slots, err = ResolveDaySlots(clinicHours, 60, monday, windows, []entity.Appointment{appointment})
	require.NoError(t, err)
	assert.Equal(t, SlotAvailable, statusAt(t, slots, "10:00"))
}

func TestResolveDaySlots_ExplicitUnavailableWindow(t *testing.T) {
	doctorID := uuid.New()
	windows := []entity.AvailabilityWindow{
		mondayWindow(doctorID, "09:00", "12:00", true),
		mondayWindow(doctorID, "10:00", "11:00", false),
	}

	slots, err := ResolveDaySlots(clinicHours, 60, monday, windows, nil)
	require.NoError(t, err)

	// Overlap policy: any IsAvailable=true cover keeps the slot offerable
	assert.Equal(t, SlotAvailable, statusAt(t, slots, "10:00"))
}

func TestResolveDaySlots_IgnoresOtherWeekdaysAndDays(t *testing.T) {
	doctorID := uuid.New()
	windows := []entity.AvailabilityWindow{
		{DoctorID: doctorID, DayOfWeek: int(time.Tuesday), StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
	}
	tuesdayAppt := scheduledAt(doctorID, monday.AddDate(0, 0, 1), 10, 0)

	slots, err := ResolveDaySlots(clinicHours, 60, monday, windows, []entity.Appointment{tuesdayAppt})
	require.NoError(t, err)

	for _, slot := range slots {
		assert.Equal(t, SlotUnavailable, slot.Status)
	}
}

func TestResolveDaySlots_MisalignedAppointmentInvisible(t *testing.T) {
	doctorID := uuid.New()
	windows := []entity.AvailabilityWindow{
		mondayWindow(doctorID, "09:00", "17:00", true),
	}
	appointment := scheduledAt(doctorID, monday, 10, 15)

	slots, err := ResolveDaySlots(clinicHours, 30, monday, windows, []entity.Appointment{appointment})
	require.NoError(t, err)

	assert.Equal(t, SlotAvailable, statusAt(t, slots, "10:00"))
	assert.Equal(t, SlotAvailable, statusAt(t, slots, "10:30"))
}

func TestResolveDaySlots_InvalidGranularity(t *testing.T) {
	tests := []struct {
		name        string
		granularity int
	}{
		{"zero", 0},
		{"negative", -30},
		{"does not divide window", 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveDaySlots(clinicHours, tt.granularity, monday, nil, nil)
			assert.ErrorIs(t, err, ErrInvalidGranularity)
		})
	}
}

func TestApplyToggle(t *testing.T) {
	appointmentID := uuid.New()
	slots := []Slot{
		{Time: "09:00", Status: SlotAvailable},
		{Time: "09:30", Status: SlotUnavailable},
		{Time: "10:00", Status: SlotBooked, AppointmentID: &appointmentID},
	}

	assert.True(t, ApplyToggle(slots, "09:00"))
	assert.Equal(t, SlotUnavailable, slots[0].Status)

	assert.True(t, ApplyToggle(slots, "09:30"))
	assert.Equal(t, SlotAvailable, slots[1].Status)

	// Toggling a booked slot is a no-op
	before := slots[2].Status
	assert.False(t, ApplyToggle(slots, "10:00"))
	assert.Equal(t, before, slots[2].Status)

	assert.False(t, ApplyToggle(slots, "23:00"), "unknown slot time")
}

func TestWindowsForDay(t *testing.T) {
	doctorID := uuid.New()
	appointmentID := uuid.New()
	slots := []Slot{
		{Time: "09:00", Status: SlotAvailable},
		{Time: "09:30", Status: SlotUnavailable},
		{Time: "10:00", Status: SlotBooked, AppointmentID: &appointmentID},
	}

	windows := WindowsForDay(doctorID, int(time.Monday), slots, 30)
	require.Len(t, windows, 3)

	assert.Equal(t, "09:00", windows[0].StartTime)
	assert.Equal(t, "09:30", windows[0].EndTime)
	assert.True(t, windows[0].IsAvailable)

	assert.False(t, windows[1].IsAvailable)

	// Booked slots stay offered so the recurring rule survives the booking
	assert.True(t, windows[2].IsAvailable)

	for _, w := range windows {
		assert.Equal(t, doctorID, w.DoctorID)
		assert.Equal(t, int(time.Monday), w.DayOfWeek)
	}
}

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	_, err = ParseClock("25:00")
	assert.ErrorIs(t, err, ErrInvalidClockTime)

	_, err = ParseClock("not-a-time")
	assert.ErrorIs(t, err, ErrInvalidClockTime)

	assert.Equal(t, "09:30", FormatClock(570))
	assert.Equal(t, "00:00", FormatClock(0))
}
