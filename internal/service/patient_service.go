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

const CollectionPatients = "patients"

// PatientCreator 远端创建患者（RecordsAPIClient）
type PatientCreator interface {
	CreatePatient(ctx context.Context, fields PatientFields) (*domain.Patient, error)
}

// PatientService 患者列表
type PatientService struct {
	*recordSet[domain.Patient]
	api PatientCreator
}

// NewPatientService api 为 nil 时 Register 直接在本地创建
func NewPatientService(ctx context.Context, repo repository.RecordsRepository[domain.Patient], api PatientCreator, opts filter.ListOptions, pub events.Publisher, logger *zap.Logger) (*PatientService, error) {
	rs, err := newRecordSet(ctx, CollectionPatients, repo, opts, pub, logger)
	if err != nil {
		return nil, err
	}
	return &PatientService{recordSet: rs, api: api}, nil
}

func (s *PatientService) Create(ctx context.Context, fields PatientFields) (*domain.Patient, error) {
	fields = fields.normalize()
	if err := validateFields(fields); err != nil {
		return nil, err
	}
	p := fields.toPatient(uuid.NewString(), s.timestamp())
	if err := s.insert(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PatientService) Update(ctx context.Context, id string, fields PatientFields) (*domain.Patient, error) {
	fields = fields.normalize()
	if err := validateFields(fields); err != nil {
		return nil, err
	}
	p, err := s.replace(ctx, id, func(old domain.Patient) domain.Patient {
		return fields.toPatient(old.ID, old.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Register 通过记录 API 创建患者，进度见 CreateStateSignal
func (s *PatientService) Register(ctx context.Context, fields PatientFields) (*domain.Patient, error) {
	fields = fields.normalize()
	if err := validateFields(fields); err != nil {
		return nil, err
	}
	p, err := s.register(ctx, func(ctx context.Context) (domain.Patient, error) {
		if s.api == nil {
			return fields.toPatient(uuid.NewString(), s.timestamp()), nil
		}
		created, err := s.api.CreatePatient(ctx, fields)
		if err != nil {
			return domain.Patient{}, err
		}
		p := *created
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.CreatedAt == "" {
			p.CreatedAt = s.timestamp()
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}
