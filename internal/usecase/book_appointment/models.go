package book_appointment

import (
	"time"

	"github.com/m04kA/CMS-BookingService/pkg/types"
)

// Request модель запроса на запись к врачу
// Время не передаётся: сервис сам назначает первый свободный слот дня
type Request struct {
	PatientName   string    // ФИО пациента
	PatientMobile string    // мобильный телефон
	PatientAge    int       // возраст
	PatientGender *string   // пол (опционально)
	BloodGroup    *string   // группа крови (опционально)
	DoctorID      string    // ID врача
	ClinicID      string    // ID клиники
	Date          time.Time // дата приёма (без времени)
}

// Response модель ответа с созданной записью
type Response struct {
	AppointmentID string           // человекочитаемый ID записи (BK...)
	ReferenceCode string           // UUID для внешних ссылок
	PatientID     string           // выведенный ID пациента
	DoctorID      string           // ID врача
	ClinicID      string           // ID клиники
	Date          time.Time        // дата приёма
	Time          types.TimeString // назначенное время слота
	QueueNumber   int              // номер в очереди (позиция в каноническом расписании)
	TentativeTime types.TimeString // ориентировочное время консультации
	ConsultStatus string           // статус приёма (not_seen при создании)
	CreatedAt     time.Time        // время создания
}
