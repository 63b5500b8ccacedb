package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/CMS-BookingService/internal/domain"
	"github.com/m04kA/CMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/CMS-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/CMS-BookingService/pkg/types"
)

// pgUniqueViolation код ошибки Postgres при нарушении уникального индекса
const pgUniqueViolation = "23505"

// slotUniqueIndex имя уникального индекса на слот
// (doctor_id, clinic_id, appointment_date, appointment_time)
const slotUniqueIndex = "bookings_slot_unique"

var bookingColumns = []string{
	"id",
	"appointment_id",
	"reference_code",
	"doctor_id",
	"clinic_id",
	"patient_id",
	"patient_name",
	"patient_mobile",
	"patient_age",
	"patient_gender",
	"blood_group",
	"appointment_date",
	"appointment_time",
	"queue_number",
	"consult_status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на приём
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись на приём
// Если в контексте передана активная транзакция, использует её
//
// Уникальный индекс на (doctor_id, clinic_id, appointment_date, appointment_time)
// страхует от гонки двух конкурентных запросов на один слот даже вне
// сериализуемой транзакции: проигравший получает ErrSlotTaken
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"appointment_id",
			"reference_code",
			"doctor_id",
			"clinic_id",
			"patient_id",
			"patient_name",
			"patient_mobile",
			"patient_age",
			"patient_gender",
			"blood_group",
			"appointment_date",
			"appointment_time",
			"queue_number",
			"consult_status",
		).
		Values(
			booking.AppointmentID,
			booking.ReferenceCode,
			booking.DoctorID,
			booking.ClinicID,
			booking.PatientID,
			booking.PatientName,
			booking.PatientMobile,
			booking.PatientAge,
			booking.PatientGender,
			booking.BloodGroup,
			booking.AppointmentDate,
			booking.AppointmentTime,
			booking.QueueNumber,
			booking.ConsultStatus,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isSlotUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByAppointmentID получает запись по человекочитаемому ID
func (r *Repository) GetByAppointmentID(ctx context.Context, appointmentID string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointmentID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetByAppointmentID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetBookedTimes получает занятые времена слотов врача в клинике на дату
// Учитываются ВСЕ записи независимо от consult_status: отменённая запись
// продолжает занимать свой слот (поведение унаследовано от исходной системы)
//
// Внутри транзакции строки блокируются FOR UPDATE - вместе с сериализуемой
// изоляцией это закрывает гонку "прочитали занятые - вставили ту же запись"
func (r *Repository) GetBookedTimes(ctx context.Context, doctorID, clinicID string, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("appointment_time").
		From("bookings").
		Where(squirrel.Eq{
			"doctor_id":        doctorID,
			"clinic_id":        clinicID,
			"appointment_date": date,
		}).
		OrderBy("appointment_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: GetBookedTimes - scan appointment_time: %v", ErrScanRow, err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedTimes - rows error: %v", ErrScanRow, err)
	}

	return times, nil
}

// CountByDate возвращает количество записей за дату по всем врачам
// Используется для сквозного порядкового номера в appointment_id
func (r *Repository) CountByDate(ctx context.Context, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"appointment_date": date}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByDate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByDate - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetByDoctorWithFilter получает записи врача с гибкой фильтрацией
// Поддерживает фильтры по клинике, дате, статусу, времени и appointment_id
func (r *Repository) GetByDoctorWithFilter(ctx context.Context, filter domain.DoctorBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"doctor_id": filter.DoctorID})

	if filter.ClinicID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"clinic_id": *filter.ClinicID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_date": *filter.Date})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"consult_status": *filter.Status})
	}
	if filter.Time != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_time": *filter.Time})
	}
	if filter.AppointmentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_id": *filter.AppointmentID})
	}

	selectBuilder = selectBuilder.OrderBy("appointment_date DESC, appointment_time ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctorWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctorWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByMobile получает записи по мобильному пациента
// Опционально сужает поиск до конкретного appointment_id
func (r *Repository) GetByMobile(ctx context.Context, mobile string, appointmentID *string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"patient_mobile": mobile}).
		OrderBy("appointment_date DESC, appointment_time ASC")

	if appointmentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_id": *appointmentID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMobile - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMobile - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет consult_status записи
// Валидность перехода проверяет сервисный слой
func (r *Repository) UpdateStatus(ctx context.Context, appointmentID string, status domain.ConsultStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("consult_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// GetFilterValues получает уникальные статусы, даты и времена записей врача
func (r *Repository) GetFilterValues(ctx context.Context, doctorID string) (*domain.BookingFilterValues, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	values := &domain.BookingFilterValues{
		Statuses: make([]domain.ConsultStatus, 0),
		Dates:    make([]time.Time, 0),
		Times:    make([]types.TimeString, 0),
	}

	if err := r.collectDistinct(ctx, executor, doctorID, "consult_status", func(rows *sql.Rows) error {
		var s domain.ConsultStatus
		if err := rows.Scan(&s); err != nil {
			return err
		}
		values.Statuses = append(values.Statuses, s)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := r.collectDistinct(ctx, executor, doctorID, "appointment_date", func(rows *sql.Rows) error {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return err
		}
		values.Dates = append(values.Dates, d)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := r.collectDistinct(ctx, executor, doctorID, "appointment_time", func(rows *sql.Rows) error {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return err
		}
		values.Times = append(values.Times, t)
		return nil
	}); err != nil {
		return nil, err
	}

	return values, nil
}

// collectDistinct выполняет SELECT DISTINCT по одной колонке записей врача
func (r *Repository) collectDistinct(
	ctx context.Context,
	executor DBExecutor,
	doctorID string,
	column string,
	scan func(rows *sql.Rows) error,
) error {
	query, args, err := psqlbuilder.Select("DISTINCT "+column).
		From("bookings").
		Where(squirrel.Eq{"doctor_id": doctorID}).
		OrderBy(column + " ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: GetFilterValues - build %s query: %v", ErrBuildQuery, column, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: GetFilterValues - execute %s query: %v", ErrExecQuery, column, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("%w: GetFilterValues - scan %s: %v", ErrScanRow, column, err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: GetFilterValues - rows error (%s): %v", ErrScanRow, column, err)
	}

	return nil
}

// scanBooking сканирует одну строку результата в запись
func (r *Repository) scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.AppointmentID,
		&booking.ReferenceCode,
		&booking.DoctorID,
		&booking.ClinicID,
		&booking.PatientID,
		&booking.PatientName,
		&booking.PatientMobile,
		&booking.PatientAge,
		&booking.PatientGender,
		&booking.BloodGroup,
		&booking.AppointmentDate,
		&booking.AppointmentTime,
		&booking.QueueNumber,
		&booking.ConsultStatus,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс записей
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.AppointmentID,
			&booking.ReferenceCode,
			&booking.DoctorID,
			&booking.ClinicID,
			&booking.PatientID,
			&booking.PatientName,
			&booking.PatientMobile,
			&booking.PatientAge,
			&booking.PatientGender,
			&booking.BloodGroup,
			&booking.AppointmentDate,
			&booking.AppointmentTime,
			&booking.QueueNumber,
			&booking.ConsultStatus,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// isSlotUniqueViolation проверяет, что ошибка - нарушение уникального индекса слота
func isSlotUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pgUniqueViolation && pqErr.Constraint == slotUniqueIndex
}
