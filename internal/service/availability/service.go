package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/CMS-BookingService/internal/domain"
	availabilityRepo "github.com/m04kA/CMS-BookingService/internal/infra/storage/availability"
	"github.com/m04kA/CMS-BookingService/internal/service/availability/models"
	"github.com/m04kA/CMS-BookingService/pkg/types"
)

// Service сервис для управления правилами доступности врачей
type Service struct {
	availabilityRepo AvailabilityRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(availabilityRepo AvailabilityRepository, logger Logger) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

// Create создаёт правила доступности: одно окно времени на несколько дней недели
// Дни валидируются и дедуплицируются до первой вставки, дубликат дня в БД
// останавливает создание с ErrRuleExists
func (s *Service) Create(ctx context.Context, req *models.CreateRulesRequest) (*models.RuleListResponse, error) {
	s.logger.Info("Create: rules for doctor=%s, clinic=%s, days=%v", req.DoctorID, req.ClinicID, req.Days)

	if strings.TrimSpace(req.DoctorID) == "" {
		return nil, fmt.Errorf("%w: doctorId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ClinicID) == "" {
		return nil, fmt.Errorf("%w: clinicId is required", ErrInvalidInput)
	}
	if len(req.Days) == 0 {
		return nil, fmt.Errorf("%w: days are required", ErrInvalidInput)
	}

	days, err := normalizeDays(req.Days)
	if err != nil {
		s.logger.Warn("Create: invalid days %v: %v", req.Days, err)
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime %q", ErrInvalidInput, req.StartTime)
	}
	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endTime %q", ErrInvalidInput, req.EndTime)
	}
	if !startTime.IsBefore(endTime) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	interval := domain.DefaultIntervalMinutes
	if req.IntervalMinutes != nil {
		if err := validateInterval(*req.IntervalMinutes); err != nil {
			return nil, err
		}
		interval = *req.IntervalMinutes
	}

	slotType := domain.SlotType(req.SlotType)
	if !slotType.IsValid() {
		return nil, fmt.Errorf("%w: invalid slotType %q", ErrInvalidInput, req.SlotType)
	}

	created := make([]*domain.AvailabilityRule, 0, len(days))
	for _, day := range days {
		rule, err := s.availabilityRepo.Create(ctx, &domain.AvailabilityRule{
			DoctorID:        req.DoctorID,
			ClinicID:        req.ClinicID,
			DayOfWeek:       day.Abbr(),
			StartTime:       startTime,
			EndTime:         endTime,
			IntervalMinutes: interval,
			SlotType:        slotType,
		})
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrRuleExists) {
				s.logger.Warn("Create: rule for doctor=%s, clinic=%s, day=%s already exists",
					req.DoctorID, req.ClinicID, day.Name())
				return nil, fmt.Errorf("%w: %s", ErrRuleExists, day.Name())
			}
			s.logger.Error("Create: repository error for day=%s: %v", day.Name(), err)
			return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
		created = append(created, rule)
	}

	s.logger.Info("Create: created %d rules for doctor=%s, clinic=%s", len(created), req.DoctorID, req.ClinicID)
	return models.FromDomainRules(created), nil
}

// GetByClinic получает все правила клиники, упорядоченные по врачу и дню недели
func (s *Service) GetByClinic(ctx context.Context, clinicID string) (*models.RuleListResponse, error) {
	s.logger.Info("GetByClinic: fetching rules for clinic=%s", clinicID)

	if strings.TrimSpace(clinicID) == "" {
		return nil, fmt.Errorf("%w: clinicId is required", ErrInvalidInput)
	}

	rules, err := s.availabilityRepo.GetByClinic(ctx, clinicID)
	if err != nil {
		s.logger.Error("GetByClinic: repository error for clinic=%s: %v", clinicID, err)
		return nil, fmt.Errorf("%w: GetByClinic - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRules(rules), nil
}

// GetByDoctorAndClinic получает правила врача в клинике
func (s *Service) GetByDoctorAndClinic(ctx context.Context, doctorID, clinicID string) (*models.RuleListResponse, error) {
	s.logger.Info("GetByDoctorAndClinic: fetching rules for doctor=%s, clinic=%s", doctorID, clinicID)

	if strings.TrimSpace(doctorID) == "" {
		return nil, fmt.Errorf("%w: doctorId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(clinicID) == "" {
		return nil, fmt.Errorf("%w: clinicId is required", ErrInvalidInput)
	}

	rules, err := s.availabilityRepo.GetByDoctorAndClinic(ctx, doctorID, clinicID)
	if err != nil {
		s.logger.Error("GetByDoctorAndClinic: repository error for doctor=%s: %v", doctorID, err)
		return nil, fmt.Errorf("%w: GetByDoctorAndClinic - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRules(rules), nil
}

// Update частично обновляет правило доступности
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("Update: rule id=%d", id)

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	update, err := buildRuleUpdate(req)
	if err != nil {
		s.logger.Warn("Update: invalid payload for rule id=%d: %v", id, err)
		return nil, err
	}

	// Окно проверяется на итоговом правиле: обновление одного края
	// не должно инвертировать его относительно сохранённого второго
	if update.StartTime != nil || update.EndTime != nil {
		current, err := s.availabilityRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrRuleNotFound) {
				s.logger.Warn("Update: rule id=%d not found", id)
				return nil, ErrRuleNotFound
			}
			s.logger.Error("Update: repository error for rule id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		merged := *current
		if update.StartTime != nil {
			merged.StartTime = *update.StartTime
		}
		if update.EndTime != nil {
			merged.EndTime = *update.EndTime
		}
		if !merged.HasValidWindow() {
			s.logger.Warn("Update: inverted time window for rule id=%d", id)
			return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
		}
	}

	if err := s.availabilityRepo.Update(ctx, id, update); err != nil {
		switch {
		case errors.Is(err, availabilityRepo.ErrRuleNotFound):
			s.logger.Warn("Update: rule id=%d not found", id)
			return nil, ErrRuleNotFound
		case errors.Is(err, availabilityRepo.ErrRuleExists):
			s.logger.Warn("Update: rule id=%d conflicts with existing day rule", id)
			return nil, ErrRuleExists
		}
		s.logger.Error("Update: repository error for rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	updated, err := s.availabilityRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to refetch rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: rule id=%d updated", id)
	return models.FromDomainRule(updated), nil
}

// Delete удаляет правило доступности
// Существующие записи на приём не затрагиваются
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: rule id=%d", id)

	if err := s.availabilityRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, availabilityRepo.ErrRuleNotFound) {
			s.logger.Warn("Delete: rule id=%d not found", id)
			return ErrRuleNotFound
		}
		s.logger.Error("Delete: repository error for rule id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: rule id=%d deleted", id)
	return nil
}

// normalizeDays парсит и дедуплицирует дни недели из запроса
func normalizeDays(raw []string) ([]domain.Weekday, error) {
	seen := make(map[domain.Weekday]struct{}, len(raw))
	days := make([]domain.Weekday, 0, len(raw))
	for _, d := range raw {
		day, err := domain.ParseWeekday(d)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid day %q", ErrInvalidInput, d)
		}
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	return days, nil
}

// validateInterval проверяет длину слота на допустимый диапазон
func validateInterval(interval int) error {
	if interval < domain.MinIntervalMinutes || interval > domain.MaxIntervalMinutes {
		return fmt.Errorf("%w: intervalMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinIntervalMinutes, domain.MaxIntervalMinutes)
	}
	return nil
}

// buildRuleUpdate валидирует и конвертирует запрос в domain обновление
func buildRuleUpdate(req *models.UpdateRuleRequest) (domain.AvailabilityRuleUpdate, error) {
	var update domain.AvailabilityRuleUpdate

	if req.DayOfWeek != nil {
		day, err := domain.ParseWeekday(*req.DayOfWeek)
		if err != nil {
			return update, fmt.Errorf("%w: invalid day %q", ErrInvalidInput, *req.DayOfWeek)
		}
		abbr := day.Abbr()
		update.DayOfWeek = &abbr
	}

	if req.StartTime != nil {
		t, err := types.NewTimeStringFromString(*req.StartTime)
		if err != nil {
			return update, fmt.Errorf("%w: invalid startTime %q", ErrInvalidInput, *req.StartTime)
		}
		update.StartTime = &t
	}

	if req.EndTime != nil {
		t, err := types.NewTimeStringFromString(*req.EndTime)
		if err != nil {
			return update, fmt.Errorf("%w: invalid endTime %q", ErrInvalidInput, *req.EndTime)
		}
		update.EndTime = &t
	}

	if req.IntervalMinutes != nil {
		if err := validateInterval(*req.IntervalMinutes); err != nil {
			return update, err
		}
		update.IntervalMinutes = req.IntervalMinutes
	}

	if req.SlotType != nil {
		slotType := domain.SlotType(*req.SlotType)
		if !slotType.IsValid() {
			return update, fmt.Errorf("%w: invalid slotType %q", ErrInvalidInput, *req.SlotType)
		}
		update.SlotType = &slotType
	}

	return update, nil
}
