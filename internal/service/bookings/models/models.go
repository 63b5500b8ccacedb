package models

import (
	"errors"
	"time"

	"github.com/m04kA/CMS-BookingService/internal/domain"
	"github.com/m04kA/CMS-BookingService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе приёма
	ErrInvalidStatus = errors.New("invalid consult status")

	// ErrInvalidTime возвращается при некорректном формате времени
	ErrInvalidTime = errors.New("invalid time format")
)

// Request модели

// GetDoctorBookingsRequest запрос на получение записей врача
type GetDoctorBookingsRequest struct {
	DoctorID      string  `json:"doctorId"`
	ClinicID      *string `json:"clinicId,omitempty"`      // фильтр по клинике (опционально)
	Date          *string `json:"date,omitempty"`          // фильтр по дате "2025-10-15" (опционально)
	Status        *string `json:"status,omitempty"`        // фильтр по статусу приёма (опционально)
	Time          *string `json:"time,omitempty"`          // фильтр по времени слота "09:30" (опционально)
	AppointmentID *string `json:"appointmentId,omitempty"` // точный поиск по ID записи (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetDoctorBookingsRequest) ToDomainFilter() (domain.DoctorBookingsFilter, error) {
	filter := domain.DoctorBookingsFilter{
		DoctorID:      r.DoctorID,
		ClinicID:      r.ClinicID,
		AppointmentID: r.AppointmentID,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return filter, err
		}
		filter.Date = &date
	}

	if r.Status != nil {
		status, err := ToDomainConsultStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.Time != nil {
		t, err := types.NewTimeStringFromString(*r.Time)
		if err != nil {
			return filter, ErrInvalidTime
		}
		filter.Time = &t
	}

	return filter, nil
}

// VerifyBookingRequest запрос на проверку записи пациентом
// Поиск идёт по мобильному телефону, опционально сужается до конкретной записи
type VerifyBookingRequest struct {
	Mobile        string  `json:"mobile"`
	AppointmentID *string `json:"appointmentId,omitempty"`
}

// UpdateStatusRequest запрос на смену статуса приёма
type UpdateStatusRequest struct {
	AppointmentID string `json:"appointmentId"`
	Status        string `json:"status"`
	// AdminOverride разрешает обратный переход in_progress -> not_seen
	AdminOverride bool `json:"adminOverride,omitempty"`
}

// Response модели

// BookingResponse ответ с данными записи на приём
type BookingResponse struct {
	AppointmentID string `json:"appointmentId"` // "BK20251015003"
	ReferenceCode string `json:"referenceCode"` // UUID
	DoctorID      string `json:"doctorId"`
	ClinicID      string `json:"clinicId"`

	PatientID     string  `json:"patientId"`
	PatientName   string  `json:"patientName"`
	PatientMobile string  `json:"patientMobile"`
	PatientAge    int     `json:"patientAge"`
	PatientGender *string `json:"patientGender,omitempty"`
	BloodGroup    *string `json:"bloodGroup,omitempty"`

	AppointmentDate string `json:"appointmentDate"` // "2025-10-15"
	AppointmentTime string `json:"appointmentTime"` // "09:30"
	QueueNumber     int    `json:"queueNumber"`
	ConsultStatus   string `json:"consultStatus"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком записей
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FilterValuesResponse уникальные значения полей записей врача для фильтров
type FilterValuesResponse struct {
	Statuses []string `json:"statuses"`
	Dates    []string `json:"dates"`
	Times    []string `json:"times"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		AppointmentID: b.AppointmentID,
		ReferenceCode: b.ReferenceCode,
		DoctorID:      b.DoctorID,
		ClinicID:      b.ClinicID,

		PatientID:     b.PatientID,
		PatientName:   b.PatientName,
		PatientMobile: b.PatientMobile,
		PatientAge:    b.PatientAge,
		PatientGender: b.PatientGender,
		BloodGroup:    b.BloodGroup,

		AppointmentDate: b.AppointmentDate.Format(domain.DateFormat),
		AppointmentTime: b.AppointmentTime.String(),
		QueueNumber:     b.QueueNumber,
		ConsultStatus:   string(b.ConsultStatus),

		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// FromDomainBookings конвертирует список domain моделей в DTO
func FromDomainBookings(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, *FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: result}
}

// FromDomainFilterValues конвертирует значения фильтров в DTO
func FromDomainFilterValues(v *domain.BookingFilterValues) *FilterValuesResponse {
	if v == nil {
		return &FilterValuesResponse{
			Statuses: []string{},
			Dates:    []string{},
			Times:    []string{},
		}
	}

	statuses := make([]string, 0, len(v.Statuses))
	for _, s := range v.Statuses {
		statuses = append(statuses, string(s))
	}

	dates := make([]string, 0, len(v.Dates))
	for _, d := range v.Dates {
		dates = append(dates, d.Format(domain.DateFormat))
	}

	times := make([]string, 0, len(v.Times))
	for _, t := range v.Times {
		times = append(times, t.String())
	}

	return &FilterValuesResponse{
		Statuses: statuses,
		Dates:    dates,
		Times:    times,
	}
}

// ToDomainConsultStatus конвертирует строку в domain.ConsultStatus
func ToDomainConsultStatus(status string) (domain.ConsultStatus, error) {
	s := domain.ConsultStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
