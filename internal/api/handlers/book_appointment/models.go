package book_appointment

import (
	"time"

	"github.com/m04kA/CMS-BookingService/internal/domain"
	bookAppointment "github.com/m04kA/CMS-BookingService/internal/usecase/book_appointment"
)

// BookAppointmentRequest HTTP request model
// Время приёма не передаётся: слот назначается сервисом
type BookAppointmentRequest struct {
	PatientName   string  `json:"patientName"`
	PatientMobile string  `json:"patientMobile"`
	PatientAge    int     `json:"patientAge"`
	PatientGender *string `json:"patientGender,omitempty"`
	BloodGroup    *string `json:"bloodGroup,omitempty"`
	DoctorID      string  `json:"doctorId"`
	ClinicID      string  `json:"clinicId"`
	Date          string  `json:"date"` // "2025-10-15"
}

// BookAppointmentResponse HTTP response model
type BookAppointmentResponse struct {
	AppointmentID string `json:"appointmentId"`
	ReferenceCode string `json:"referenceCode"`
	PatientID     string `json:"patientId"`
	DoctorID      string `json:"doctorId"`
	ClinicID      string `json:"clinicId"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	QueueNumber   int    `json:"queueNumber"`
	TentativeTime string `json:"tentativeTime"`
	ConsultStatus string `json:"consultStatus"`
	CreatedAt     string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookAppointmentRequest) ToUseCaseRequest() (*bookAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &bookAppointment.Request{
		PatientName:   r.PatientName,
		PatientMobile: r.PatientMobile,
		PatientAge:    r.PatientAge,
		PatientGender: r.PatientGender,
		BloodGroup:    r.BloodGroup,
		DoctorID:      r.DoctorID,
		ClinicID:      r.ClinicID,
		Date:          date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *BookAppointmentResponse {
	return &BookAppointmentResponse{
		AppointmentID: resp.AppointmentID,
		ReferenceCode: resp.ReferenceCode,
		PatientID:     resp.PatientID,
		DoctorID:      resp.DoctorID,
		ClinicID:      resp.ClinicID,
		Date:          resp.Date.Format(domain.DateFormat),
		Time:          resp.Time.String(),
		QueueNumber:   resp.QueueNumber,
		TentativeTime: resp.TentativeTime.String(),
		ConsultStatus: resp.ConsultStatus,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
