package service

import (
	"context"

	"github.com/Ahmed-Morsi888/Doctor-system/internal/domain"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/events"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/filter"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const CollectionEmployees = "employees"

// EmployeeService 员工列表与资料维护
type EmployeeService struct {
	*recordSet[domain.Employee]
}

// NewEmployeeService 创建员工服务
func NewEmployeeService(ctx context.Context, repo repository.RecordsRepository[domain.Employee], opts filter.ListOptions, pub events.Publisher, logger *zap.Logger) (*EmployeeService, error) {
	rs, err := newRecordSet(ctx, CollectionEmployees, repo, opts, pub, logger)
	if err != nil {
		return nil, err
	}
	return &EmployeeService{recordSet: rs}, nil
}

// Create 新增员工（生成新 ID，状态默认 Active）
func (s *EmployeeService) Create(ctx context.Context, fields EmployeeFields) (*domain.Employee, error) {
	fields = fields.normalize()
	if err := validateFields(fields); err != nil {
		return nil, err
	}
	e := fields.toEmployee(uuid.NewString())
	if e.HireDate == "" {
		e.HireDate = s.now().UTC().Format("2006-01-02")
	}
	if err := s.insert(ctx, e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Update 原位修改员工资料；未提供的可选字段沿用旧值
func (s *EmployeeService) Update(ctx context.Context, id string, fields EmployeeFields) (*domain.Employee, error) {
	fields = fields.normalize()
	if err := validateFields(fields); err != nil {
		return nil, err
	}
	e, err := s.replace(ctx, id, func(old domain.Employee) domain.Employee {
		next := fields.toEmployee(old.ID)
		if next.HireDate == "" {
			next.HireDate = old.HireDate
		}
		if next.Avatar == "" {
			next.Avatar = old.Avatar
		}
		return next
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}
