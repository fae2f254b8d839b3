package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"scheduled to completed", AppointmentStatusScheduled, AppointmentStatusCompleted, true},
		{"scheduled to cancelled", AppointmentStatusScheduled, AppointmentStatusCancelled, true},
		{"completed to cancelled", AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{"cancelled to scheduled", AppointmentStatusCancelled, AppointmentStatusScheduled, false},
		{"completed to scheduled", AppointmentStatusCompleted, AppointmentStatusScheduled, false},
		{"same status is idempotent", AppointmentStatusCancelled, AppointmentStatusCancelled, true},
		{"scheduled to scheduled", AppointmentStatusScheduled, AppointmentStatusScheduled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Appointment{Status: tt.from}
			assert.Equal(t, tt.allowed, a.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointmentStatusHelpers(t *testing.T) {
	a := &Appointment{Status: AppointmentStatusScheduled}
	assert.True(t, a.IsScheduled())
	assert.False(t, a.IsCancelled())

	a.Cancel()
	assert.True(t, a.IsCancelled())
	assert.False(t, a.IsScheduled())

	b := &Appointment{Status: AppointmentStatusScheduled}
	b.Complete()
	assert.Equal(t, AppointmentStatusCompleted, b.Status)
}
