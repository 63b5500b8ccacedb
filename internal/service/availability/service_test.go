package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMS-BookingService/internal/domain"
	availabilityRepo "github.com/m04kA/CMS-BookingService/internal/infra/storage/availability"
	"github.com/m04kA/CMS-BookingService/internal/service/availability/models"
	"github.com/m04kA/CMS-BookingService/pkg/ptr"
)

type fakeRepo struct {
	rules      map[int64]*domain.AvailabilityRule
	nextID     int64
	createErrs []error
	createIdx  int
	lastUpdate domain.AvailabilityRuleUpdate
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rules: make(map[int64]*domain.AvailabilityRule), nextID: 1}
}

func (f *fakeRepo) Create(_ context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	if f.createIdx < len(f.createErrs) {
		err := f.createErrs[f.createIdx]
		f.createIdx++
		if err != nil {
			return nil, err
		}
	}
	created := *rule
	created.ID = f.nextID
	f.rules[f.nextID] = &created
	f.nextID++
	return &created, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.AvailabilityRule, error) {
	rule, ok := f.rules[id]
	if !ok {
		return nil, availabilityRepo.ErrRuleNotFound
	}
	return rule, nil
}

func (f *fakeRepo) GetByClinic(_ context.Context, clinicID string) ([]*domain.AvailabilityRule, error) {
	result := make([]*domain.AvailabilityRule, 0, len(f.rules))
	for _, r := range f.rules {
		if r.ClinicID == clinicID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeRepo) GetByDoctorAndClinic(_ context.Context, doctorID, clinicID string) ([]*domain.AvailabilityRule, error) {
	result := make([]*domain.AvailabilityRule, 0, len(f.rules))
	for _, r := range f.rules {
		if r.DoctorID == doctorID && r.ClinicID == clinicID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, update domain.AvailabilityRuleUpdate) error {
	f.lastUpdate = update
	rule, ok := f.rules[id]
	if !ok {
		return availabilityRepo.ErrRuleNotFound
	}
	if update.DayOfWeek != nil {
		rule.DayOfWeek = *update.DayOfWeek
	}
	if update.StartTime != nil {
		rule.StartTime = *update.StartTime
	}
	if update.EndTime != nil {
		rule.EndTime = *update.EndTime
	}
	if update.IntervalMinutes != nil {
		rule.IntervalMinutes = *update.IntervalMinutes
	}
	if update.SlotType != nil {
		rule.SlotType = *update.SlotType
	}
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.rules[id]; !ok {
		return availabilityRepo.ErrRuleNotFound
	}
	delete(f.rules, id)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func createRequest() *models.CreateRulesRequest {
	return &models.CreateRulesRequest{
		DoctorID:  "doc-1",
		ClinicID:  "clinic-1",
		Days:      []string{"Mon", "Wednesday"},
		StartTime: "09:00",
		EndTime:   "13:00",
		SlotType:  "clinic",
	}
}

func TestCreate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopLogger{})

	resp, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	require.Len(t, resp.Rules, 2)

	// Дни хранятся в канонической аббревиатуре, интервал по умолчанию
	assert.Equal(t, "Mon", resp.Rules[0].DayOfWeek)
	assert.Equal(t, "Wed", resp.Rules[1].DayOfWeek)
	assert.Equal(t, domain.DefaultIntervalMinutes, resp.Rules[0].IntervalMinutes)
	assert.Equal(t, "09:00", resp.Rules[0].StartTime)
	assert.Equal(t, "13:00", resp.Rules[0].EndTime)
}

func TestCreate_DeduplicatesDays(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopLogger{})

	req := createRequest()
	req.Days = []string{"Mon", "monday", "MON"}

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Rules, 1)
	assert.Equal(t, "Mon", resp.Rules[0].DayOfWeek)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.CreateRulesRequest)
		wantErr error
	}{
		{"empty doctorId", func(r *models.CreateRulesRequest) { r.DoctorID = "" }, ErrInvalidInput},
		{"empty clinicId", func(r *models.CreateRulesRequest) { r.ClinicID = "" }, ErrInvalidInput},
		{"no days", func(r *models.CreateRulesRequest) { r.Days = nil }, ErrInvalidInput},
		{"unknown day", func(r *models.CreateRulesRequest) { r.Days = []string{"Someday"} }, ErrInvalidInput},
		{"bad startTime", func(r *models.CreateRulesRequest) { r.StartTime = "25:00" }, ErrInvalidInput},
		{"bad endTime", func(r *models.CreateRulesRequest) { r.EndTime = "13" }, ErrInvalidInput},
		{"interval too small", func(r *models.CreateRulesRequest) { r.IntervalMinutes = ptr.Ptr(2) }, ErrInvalidInput},
		{"interval too big", func(r *models.CreateRulesRequest) { r.IntervalMinutes = ptr.Ptr(500) }, ErrInvalidInput},
		{"bad slotType", func(r *models.CreateRulesRequest) { r.SlotType = "phone" }, ErrInvalidInput},
		{"inverted window", func(r *models.CreateRulesRequest) { r.StartTime = "18:00"; r.EndTime = "09:00" }, ErrInvalidInput},
		{"empty window", func(r *models.CreateRulesRequest) { r.StartTime = "09:00"; r.EndTime = "09:00" }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeRepo(), noopLogger{})
			req := createRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreate_DuplicateDayStopsCreation(t *testing.T) {
	repo := newFakeRepo()
	repo.createErrs = []error{nil, availabilityRepo.ErrRuleExists}
	svc := NewService(repo, noopLogger{})

	_, err := svc.Create(context.Background(), createRequest())
	require.ErrorIs(t, err, ErrRuleExists)
	assert.Contains(t, err.Error(), "Wednesday")
}

func TestUpdate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopLogger{})

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	id := created.Rules[0].ID

	resp, err := svc.Update(context.Background(), id, &models.UpdateRuleRequest{
		DayOfWeek:       ptr.Ptr("friday"),
		EndTime:         ptr.Ptr("17:00"),
		IntervalMinutes: ptr.Ptr(30),
	})
	require.NoError(t, err)
	assert.Equal(t, "Fri", resp.DayOfWeek)
	assert.Equal(t, "17:00", resp.EndTime)
	assert.Equal(t, 30, resp.IntervalMinutes)
	// Не переданные поля не трогаем
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Nil(t, repo.lastUpdate.StartTime)
}

func TestUpdate_InvertedWindow(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopLogger{})

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	id := created.Rules[0].ID

	// Сдвиг одного края не должен инвертировать окно относительно второго
	_, err = svc.Update(context.Background(), id, &models.UpdateRuleRequest{
		StartTime: ptr.Ptr("15:00"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(context.Background(), id, &models.UpdateRuleRequest{
		EndTime: ptr.Ptr("08:00"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(context.Background(), id, &models.UpdateRuleRequest{
		StartTime: ptr.Ptr("10:00"),
		EndTime:   ptr.Ptr("10:00"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Правило осталось нетронутым
	rules, err := svc.GetByDoctorAndClinic(context.Background(), "doc-1", "clinic-1")
	require.NoError(t, err)
	assert.Equal(t, "09:00", rules.Rules[0].StartTime)
	assert.Equal(t, "13:00", rules.Rules[0].EndTime)
}

func TestUpdate_Errors(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopLogger{})

	_, err := svc.Update(context.Background(), 1, &models.UpdateRuleRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(context.Background(), 1, &models.UpdateRuleRequest{SlotType: ptr.Ptr("phone")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(context.Background(), 42, &models.UpdateRuleRequest{EndTime: ptr.Ptr("17:00")})
	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func TestDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopLogger{})

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	id := created.Rules[0].ID

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.ErrorIs(t, svc.Delete(context.Background(), id), ErrRuleNotFound)
}

func TestGetByDoctorAndClinic(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopLogger{})

	_, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	resp, err := svc.GetByDoctorAndClinic(context.Background(), "doc-1", "clinic-1")
	require.NoError(t, err)
	assert.Len(t, resp.Rules, 2)

	_, err = svc.GetByDoctorAndClinic(context.Background(), "", "clinic-1")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByClinic(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopLogger{})

	_, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	resp, err := svc.GetByClinic(context.Background(), "clinic-1")
	require.NoError(t, err)
	assert.Len(t, resp.Rules, 2)

	_, err = svc.GetByClinic(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
