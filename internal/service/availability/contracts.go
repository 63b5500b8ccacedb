package availability

import (
	"context"

	"github.com/m04kA/CMS-BookingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error)
	GetByDoctorAndClinic(ctx context.Context, doctorID, clinicID string) ([]*domain.AvailabilityRule, error)
	GetByClinic(ctx context.Context, clinicID string) ([]*domain.AvailabilityRule, error)
	Update(ctx context.Context, id int64, update domain.AvailabilityRuleUpdate) error
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
