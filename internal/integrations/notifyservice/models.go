package notifyservice

// BookingConfirmation данные для уведомления о созданной записи
type BookingConfirmation struct {
	AppointmentID   string `json:"appointment_id"`
	PatientName     string `json:"patient_name"`
	PatientMobile   string `json:"patient_mobile"`
	DoctorID        string `json:"doctor_id"`
	ClinicID        string `json:"clinic_id"`
	AppointmentDate string `json:"appointment_date"` // YYYY-MM-DD
	AppointmentTime string `json:"appointment_time"` // HH:MM
	QueueNumber     int    `json:"queue_number"`
	Message         string `json:"message"` // готовый текст для WhatsApp
}

// ErrorResponse модель ошибки от сервиса уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
