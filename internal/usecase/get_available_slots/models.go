package get_available_slots

import (
	"time"

	"github.com/m04kA/CMS-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	DoctorID string    // ID врача
	ClinicID string    // ID клиники
	Date     time.Time // дата приёма (без времени)
}

// Response модель ответа со списком доступных слотов
// При отсутствии правила на день недели слоты пустые, ValidDay = false,
// а AvailableDays подсказывает расписание врача
type Response struct {
	DoctorID      string    // ID врача
	ClinicID      string    // ID клиники
	Date          time.Time // дата, на которую запрашивались слоты
	Day           string    // полное имя дня недели даты
	ValidDay      bool      // есть ли правило доступности на этот день
	SlotType      string    // тип приёма по правилу дня (clinic/video/both)
	Slots         []Slot    // свободные слоты в каноническом порядке
	TotalSlots    int       // размер канонического расписания дня
	BookedCount   int       // количество занятых слотов
	AvailableDays []string  // человекочитаемое расписание по всем правилам
}

// Slot свободный слот с номером очереди, который получит пациент
type Slot struct {
	Time        types.TimeString // время начала слота
	QueueNumber int              // 1-based позиция в каноническом расписании дня
}
