package availability

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMS-BookingService/internal/domain"
	"github.com/m04kA/CMS-BookingService/pkg/ptr"
	"github.com/m04kA/CMS-BookingService/pkg/types"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func testRule() *domain.AvailabilityRule {
	return &domain.AvailabilityRule{
		DoctorID:        "doc-1",
		ClinicID:        "clinic-1",
		DayOfWeek:       "Mon",
		StartTime:       types.TimeString("09:00"),
		EndTime:         types.TimeString("13:00"),
		IntervalMinutes: 15,
		SlotType:        domain.SlotTypeClinic,
	}
}

func ruleRows(rules ...*domain.AvailabilityRule) *sqlmock.Rows {
	now := time.Now()
	rows := sqlmock.NewRows(ruleColumns)
	for i, r := range rules {
		rows.AddRow(
			int64(i+1), r.DoctorID, r.ClinicID, r.DayOfWeek,
			string(r.StartTime), string(r.EndTime), r.IntervalMinutes,
			string(r.SlotType), now, now,
		)
	}
	return rows
}

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO availability_rules")).
		WithArgs("doc-1", "clinic-1", "Mon", "09:00", "13:00", 15, "clinic").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(3), now, now))

	created, err := repo.Create(context.Background(), testRule())
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateDay(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO availability_rules")).
		WillReturnError(&pq.Error{Code: pgUniqueViolation, Constraint: dayRuleUniqueIndex})

	_, err := repo.Create(context.Background(), testRule())
	assert.ErrorIs(t, err, ErrRuleExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, doctor_id, clinic_id")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(ruleColumns))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrRuleNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByDoctorAndClinic(t *testing.T) {
	repo, mock := newMock(t)

	first := testRule()
	second := testRule()
	second.DayOfWeek = "Wed"

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, doctor_id, clinic_id")).
		WithArgs("clinic-1", "doc-1").
		WillReturnRows(ruleRows(first, second))

	rules, err := repo.GetByDoctorAndClinic(context.Background(), "doc-1", "clinic-1")
	require.NoError(t, err)
	require.Len(t, rules, 2)
	// Порядок хранения сохраняется (id ASC)
	assert.Equal(t, "Mon", rules[0].DayOfWeek)
	assert.Equal(t, "Wed", rules[1].DayOfWeek)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE availability_rules SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 3, domain.AvailabilityRuleUpdate{
		EndTime:         ptr.Ptr(types.TimeString("17:00")),
		IntervalMinutes: ptr.Ptr(30),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE availability_rules SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), 42, domain.AvailabilityRuleUpdate{
		IntervalMinutes: ptr.Ptr(30),
	})
	assert.ErrorIs(t, err, ErrRuleNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_DayConflict(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE availability_rules SET")).
		WillReturnError(&pq.Error{Code: pgUniqueViolation, Constraint: dayRuleUniqueIndex})

	err := repo.Update(context.Background(), 3, domain.AvailabilityRuleUpdate{
		DayOfWeek: ptr.Ptr("Tue"),
	})
	assert.ErrorIs(t, err, ErrRuleExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM availability_rules")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM availability_rules")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 42), ErrRuleNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
