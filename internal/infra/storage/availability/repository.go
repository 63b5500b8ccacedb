package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/CMS-BookingService/internal/domain"
	"github.com/m04kA/CMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/CMS-BookingService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

// dayRuleUniqueIndex имя уникального индекса на (doctor_id, clinic_id, day_of_week)
const dayRuleUniqueIndex = "availability_rules_day_unique"

// dayOrderCase сортировка дней недели Monday..Sunday
// Хранимые значения исторически бывают и сокращением, и полным названием
const dayOrderCase = `CASE lower(day_of_week)
	WHEN 'mon' THEN 1 WHEN 'monday' THEN 1
	WHEN 'tue' THEN 2 WHEN 'tuesday' THEN 2
	WHEN 'wed' THEN 3 WHEN 'wednesday' THEN 3
	WHEN 'thu' THEN 4 WHEN 'thursday' THEN 4
	WHEN 'fri' THEN 5 WHEN 'friday' THEN 5
	WHEN 'sat' THEN 6 WHEN 'saturday' THEN 6
	WHEN 'sun' THEN 7 WHEN 'sunday' THEN 7
	ELSE 8 END`

var ruleColumns = []string{
	"id",
	"doctor_id",
	"clinic_id",
	"day_of_week",
	"start_time",
	"end_time",
	"interval_minutes",
	"slot_type",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с правилами доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое правило доступности
func (r *Repository) Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_rules").
		Columns(
			"doctor_id",
			"clinic_id",
			"day_of_week",
			"start_time",
			"end_time",
			"interval_minutes",
			"slot_type",
		).
		Values(
			rule.DoctorID,
			rule.ClinicID,
			rule.DayOfWeek,
			rule.StartTime,
			rule.EndTime,
			rule.IntervalMinutes,
			rule.SlotType,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isDayRuleUniqueViolation(err) {
			return nil, ErrRuleExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// GetByID получает правило по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("availability_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := r.scanRule(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRuleNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// GetByDoctorAndClinic получает все правила врача в клинике
// Порядок соответствует порядку хранения (id ASC) - на нём основано
// разрешение конфликтов дублирующихся правил дня
func (r *Repository) GetByDoctorAndClinic(ctx context.Context, doctorID, clinicID string) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("availability_rules").
		Where(squirrel.Eq{
			"doctor_id": doctorID,
			"clinic_id": clinicID,
		}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctorAndClinic - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctorAndClinic - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRules(rows)
}

// GetByClinic получает все правила клиники по всем врачам
// Сортировка: по врачу, затем по дню недели Monday..Sunday
func (r *Repository) GetByClinic(ctx context.Context, clinicID string) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("availability_rules").
		Where(squirrel.Eq{"clinic_id": clinicID}).
		OrderBy("doctor_id ASC", dayOrderCase+" ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByClinic - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClinic - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRules(rows)
}

// Update частично обновляет правило (только не-nil поля)
func (r *Repository) Update(ctx context.Context, id int64, update domain.AvailabilityRuleUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("availability_rules").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if update.DayOfWeek != nil {
		updateBuilder = updateBuilder.Set("day_of_week", *update.DayOfWeek)
	}
	if update.StartTime != nil {
		updateBuilder = updateBuilder.Set("start_time", *update.StartTime)
	}
	if update.EndTime != nil {
		updateBuilder = updateBuilder.Set("end_time", *update.EndTime)
	}
	if update.IntervalMinutes != nil {
		updateBuilder = updateBuilder.Set("interval_minutes", *update.IntervalMinutes)
	}
	if update.SlotType != nil {
		updateBuilder = updateBuilder.Set("slot_type", *update.SlotType)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isDayRuleUniqueViolation(err) {
			return ErrRuleExists
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

// Delete удаляет правило доступности
// День без правила означает, что врач не принимает
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

// scanRule сканирует одну строку результата в правило
func (r *Repository) scanRule(row *sql.Row) (*domain.AvailabilityRule, error) {
	var rule domain.AvailabilityRule
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&rule.DoctorID,
		&rule.ClinicID,
		&rule.DayOfWeek,
		&rule.StartTime,
		&rule.EndTime,
		&rule.IntervalMinutes,
		&rule.SlotType,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

// scanRules сканирует результаты запроса в слайс правил
func (r *Repository) scanRules(rows *sql.Rows) ([]*domain.AvailabilityRule, error) {
	rules := make([]*domain.AvailabilityRule, 0)

	for rows.Next() {
		var rule domain.AvailabilityRule
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.DoctorID,
			&rule.ClinicID,
			&rule.DayOfWeek,
			&rule.StartTime,
			&rule.EndTime,
			&rule.IntervalMinutes,
			&rule.SlotType,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanRules - scan row: %v", ErrScanRow, err)
		}

		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time

		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// isDayRuleUniqueViolation проверяет, что ошибка - нарушение уникальности правила дня
func isDayRuleUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pgUniqueViolation && pqErr.Constraint == dayRuleUniqueIndex
}
