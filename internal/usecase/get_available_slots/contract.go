package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/CMS-BookingService/internal/domain"
	"github.com/m04kA/CMS-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория записей на приём
type BookingRepository interface {
	// GetBookedTimes получает занятые слоты врача/клиники на дату
	GetBookedTimes(ctx context.Context, doctorID, clinicID string, date time.Time) ([]types.TimeString, error)
}

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	GetByDoctorAndClinic(ctx context.Context, doctorID, clinicID string) ([]*domain.AvailabilityRule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
