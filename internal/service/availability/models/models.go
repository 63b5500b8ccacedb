package models

import (
	"time"

	"github.com/m04kA/CMS-BookingService/internal/domain"
)

// Request модели

// CreateRulesRequest запрос на создание правил доступности
// Одно окно времени применяется сразу к нескольким дням недели,
// на каждый день создаётся отдельное правило
type CreateRulesRequest struct {
	DoctorID        string   `json:"doctorId"`
	ClinicID        string   `json:"clinicId"`
	Days            []string `json:"days"`                      // "Mon" или "Monday", любой регистр
	StartTime       string   `json:"startTime"`                 // "09:00"
	EndTime         string   `json:"endTime"`                   // "13:00"
	IntervalMinutes *int     `json:"intervalMinutes,omitempty"` // по умолчанию 15
	SlotType        string   `json:"slotType"`                  // clinic/video/both
}

// UpdateRuleRequest запрос на частичное обновление правила (nil = поле не меняется)
type UpdateRuleRequest struct {
	DayOfWeek       *string `json:"dayOfWeek,omitempty"`
	StartTime       *string `json:"startTime,omitempty"`
	EndTime         *string `json:"endTime,omitempty"`
	IntervalMinutes *int    `json:"intervalMinutes,omitempty"`
	SlotType        *string `json:"slotType,omitempty"`
}

// IsEmpty возвращает true, если ни одно поле не обновляется
func (r *UpdateRuleRequest) IsEmpty() bool {
	return r.DayOfWeek == nil &&
		r.StartTime == nil &&
		r.EndTime == nil &&
		r.IntervalMinutes == nil &&
		r.SlotType == nil
}

// Response модели

// RuleResponse ответ с данными правила доступности
type RuleResponse struct {
	ID              int64  `json:"id"`
	DoctorID        string `json:"doctorId"`
	ClinicID        string `json:"clinicId"`
	DayOfWeek       string `json:"dayOfWeek"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	IntervalMinutes int    `json:"intervalMinutes"`
	SlotType        string `json:"slotType"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RuleListResponse ответ со списком правил
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// Методы конвертации

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.AvailabilityRule) *RuleResponse {
	if r == nil {
		return nil
	}

	return &RuleResponse{
		ID:              r.ID,
		DoctorID:        r.DoctorID,
		ClinicID:        r.ClinicID,
		DayOfWeek:       r.DayOfWeek,
		StartTime:       r.StartTime.String(),
		EndTime:         r.EndTime.String(),
		IntervalMinutes: r.Interval(),
		SlotType:        string(r.SlotType),

		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// FromDomainRules конвертирует список domain моделей в DTO
func FromDomainRules(rules []*domain.AvailabilityRule) *RuleListResponse {
	result := make([]RuleResponse, 0, len(rules))
	for _, r := range rules {
		result = append(result, *FromDomainRule(r))
	}
	return &RuleListResponse{Rules: result}
}
