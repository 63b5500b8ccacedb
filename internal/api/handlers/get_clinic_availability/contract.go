package get_clinic_availability

import (
	"context"

	"github.com/m04kA/CMS-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetByClinic(ctx context.Context, clinicID string) (*models.RuleListResponse, error)
	GetByDoctorAndClinic(ctx context.Context, doctorID, clinicID string) (*models.RuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
