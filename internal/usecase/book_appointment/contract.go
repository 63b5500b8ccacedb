package book_appointment

import (
	"context"
	"time"

	"github.com/m04kA/CMS-BookingService/internal/domain"
	"github.com/m04kA/CMS-BookingService/internal/integrations/notifyservice"
	"github.com/m04kA/CMS-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория записей на приём
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// GetBookedTimes получает занятые слоты врача/клиники на дату (FOR UPDATE в транзакции)
	GetBookedTimes(ctx context.Context, doctorID, clinicID string, date time.Time) ([]types.TimeString, error)
	CountByDate(ctx context.Context, date time.Time) (int, error)
}

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	GetByDoctorAndClinic(ctx context.Context, doctorID, clinicID string) ([]*domain.AvailabilityRule, error)
}

// NotifyServiceClient интерфейс клиента сервиса уведомлений
type NotifyServiceClient interface {
	SendBookingConfirmationWithGracefulDegradation(ctx context.Context, confirmation *notifyservice.BookingConfirmation) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
