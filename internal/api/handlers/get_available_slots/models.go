package get_available_slots

import (
	"time"

	"github.com/m04kA/CMS-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/CMS-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель свободного слота
type SlotResponse struct {
	Time        string `json:"time"`        // "09:30"
	QueueNumber int    `json:"queueNumber"` // номер очереди, который получит пациент
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	DoctorID      string         `json:"doctorId"`
	ClinicID      string         `json:"clinicId"`
	Date          string         `json:"date"`
	Day           string         `json:"day"`
	ValidDay      bool           `json:"validDay"`
	SlotType      string         `json:"slotType,omitempty"`
	Slots         []SlotResponse `json:"slots"`
	TotalSlots    int            `json:"totalSlots"`
	BookedCount   int            `json:"bookedCount"`
	AvailableDays []string       `json:"availableDays"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(doctorID, clinicID, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		DoctorID: doctorID,
		ClinicID: clinicID,
		Date:     date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Time:        s.Time.String(),
			QueueNumber: s.QueueNumber,
		})
	}

	return &AvailableSlotsResponse{
		DoctorID:      resp.DoctorID,
		ClinicID:      resp.ClinicID,
		Date:          resp.Date.Format(domain.DateFormat),
		Day:           resp.Day,
		ValidDay:      resp.ValidDay,
		SlotType:      resp.SlotType,
		Slots:         slots,
		TotalSlots:    resp.TotalSlots,
		BookedCount:   resp.BookedCount,
		AvailableDays: resp.AvailableDays,
	}
}
