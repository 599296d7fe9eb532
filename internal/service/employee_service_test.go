package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Ahmed-Morsi888/Doctor-system/internal/domain"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeService_CreateThenDeleteRestoresTotal(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := newTestEmployeeService(t, pub)
	before := svc.ListState().View().Total

	e, err := svc.Create(ctx, validEmployeeFields())
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, domain.EmployeeActive, e.Status)
	assert.Equal(t, before+1, svc.ListState().View().Total)

	require.NoError(t, svc.Delete(ctx, e.ID))
	assert.Equal(t, before, svc.ListState().View().Total)
	assert.Equal(t, []events.Action{events.ActionCreated, events.ActionDeleted}, pub.actions())
}

func TestEmployeeService_UpdateUnknownID(t *testing.T) {
	ctx := context.Background()
	svc := newTestEmployeeService(t, nil)
	view := svc.ListState().View()
	records, _ := svc.Records(ctx)

	_, err := svc.Update(ctx, "EMP-404", validEmployeeFields())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "EMP-404"), ErrNotFound)

	after, _ := svc.Records(ctx)
	assert.Equal(t, records, after)
	assert.Equal(t, view.Items, svc.ListState().View().Items)
	assert.Equal(t, view.Total, svc.ListState().View().Total)
}

func TestEmployeeService_UpdateInPlace(t *testing.T) {
	ctx := context.Background()
	svc := newTestEmployeeService(t, nil)

	fields := EmployeeFields{
		Name:        "Jane Doe-Smith",
		Email:       "jane.smith@clinic.test",
		PhoneNumber: "0100",
		Role:        domain.RoleDoctor,
		Status:      domain.EmployeeInactive,
	}
	e, err := svc.Update(ctx, "EMP-001", fields)
	require.NoError(t, err)
	assert.Equal(t, "EMP-001", e.ID)
	assert.Equal(t, "2020-01-01", e.HireDate, "hire date kept when omitted")

	records, _ := svc.Records(ctx)
	assert.Equal(t, "Jane Doe-Smith", records[0].Name, "position unchanged")
	assert.Equal(t, "Jane Doe-Smith", svc.ListState().View().Items[0].Name)
}

func TestEmployeeService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newTestEmployeeService(t, nil)

	tests := []struct {
		name   string
		mutate func(*EmployeeFields)
		field  string
	}{
		{"missing name", func(f *EmployeeFields) { f.Name = "  " }, "name"},
		{"bad email", func(f *EmployeeFields) { f.Email = "not-an-email" }, "email"},
		{"missing phone", func(f *EmployeeFields) { f.PhoneNumber = "" }, "phoneNumber"},
		{"unknown role", func(f *EmployeeFields) { f.Role = "Nurse" }, "role"},
		{"unknown status", func(f *EmployeeFields) { f.Status = "Retired" }, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validEmployeeFields()
			tt.mutate(&fields)

			_, err := svc.Create(ctx, fields)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Fields[0].Field)
			assert.NotEmpty(t, verr.Message())

			_, err = svc.Update(ctx, "EMP-001", fields)
			assert.True(t, errors.As(err, &verr))
		})
	}
	assert.Equal(t, 3, svc.ListState().View().Total)
}

func TestEmployeeService_RederivesWithActiveCriteria(t *testing.T) {
	ctx := context.Background()
	svc := newTestEmployeeService(t, nil)
	svc.ListState().OnCategoryChange(string(domain.RoleDoctor))
	require.Equal(t, 2, svc.ListState().View().Total)

	receptionist := validEmployeeFields()
	receptionist.Role = domain.RoleReceptionist
	_, err := svc.Create(ctx, receptionist)
	require.NoError(t, err)
	assert.Equal(t, 2, svc.ListState().View().Total)

	_, err = svc.Create(ctx, validEmployeeFields())
	require.NoError(t, err)
	assert.Equal(t, 3, svc.ListState().View().Total)
	assert.Equal(t, "Doctor", svc.ListState().View().Criteria.Category)
}

func TestEmployeeService_PublishFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := newTestEmployeeService(t, pub)

	_, err := svc.Create(ctx, validEmployeeFields())
	require.NoError(t, err)
	assert.Len(t, pub.actions(), 1)
}
