package converter

import (
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
)

// AvailabilityToResponse converts an AvailabilityWindow entity to its DTO
func AvailabilityToResponse(window *entity.AvailabilityWindow) *dto.AvailabilityResponse {
	if window == nil {
		return nil
	}

	return &dto.AvailabilityResponse{
		ID:          window.ID,
		DoctorID:    window.DoctorID,
		DayOfWeek:   window.DayOfWeek,
		StartTime:   window.StartTime,
		EndTime:     window.EndTime,
		IsAvailable: window.IsAvailable,
	}
}

// AvailabilitiesToResponses converts a slice of AvailabilityWindow entities
func AvailabilitiesToResponses(windows []entity.AvailabilityWindow) []dto.AvailabilityResponse {
	responses := make([]dto.AvailabilityResponse, len(windows))
	for i, window := range windows {
		resp := AvailabilityToResponse(&window)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
