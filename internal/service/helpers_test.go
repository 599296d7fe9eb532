package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Ahmed-Morsi888/Doctor-system/internal/domain"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/events"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/filter"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingPublisher 记录收到的事件
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.RecordEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.RecordEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) actions() []events.Action {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Action, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Action)
	}
	return out
}

// 测试中搜索不会走到真实定时器
var testListOptions = filter.ListOptions{Debounce: time.Hour, PageSize: 10}

func testEmployees() []domain.Employee {
	return []domain.Employee{
		{ID: "EMP-001", Name: "Jane Doe", Email: "jane@clinic.test", PhoneNumber: "0100", Role: domain.RoleDoctor, Status: domain.EmployeeActive, HireDate: "2020-01-01"},
		{ID: "EMP-002", Name: "Omar Hassan", Email: "omar@clinic.test", PhoneNumber: "0101", Role: domain.RoleReceptionist, Status: domain.EmployeeActive},
		{ID: "EMP-003", Name: "Laila Said", Email: "laila@clinic.test", PhoneNumber: "0102", Role: domain.RoleDoctor, Status: domain.EmployeeInactive},
	}
}

func newTestEmployeeService(t *testing.T, pub events.Publisher) *EmployeeService {
	t.Helper()
	svc, err := NewEmployeeService(context.Background(), repository.NewMemoryRecordsRepo(testEmployees()), testListOptions, pub, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc
}

func validEmployeeFields() EmployeeFields {
	return EmployeeFields{
		Name:        "Sara Nabil",
		Email:       "sara@clinic.test",
		PhoneNumber: "0199",
		Role:        domain.RoleDoctor,
	}
}
