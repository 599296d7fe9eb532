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

const CollectionReservations = "reservations"

// ReservationCreator 远端创建预约（RecordsAPIClient）
type ReservationCreator interface {
	CreateReservation(ctx context.Context, fields ReservationFields) (*domain.Reservation, error)
}

// ReservationService 预约列表，分类维度为预约状态
type ReservationService struct {
	*recordSet[domain.Reservation]
	api ReservationCreator
}

func NewReservationService(ctx context.Context, repo repository.RecordsRepository[domain.Reservation], api ReservationCreator, opts filter.ListOptions, pub events.Publisher, logger *zap.Logger) (*ReservationService, error) {
	rs, err := newRecordSet(ctx, CollectionReservations, repo, opts, pub, logger)
	if err != nil {
		return nil, err
	}
	return &ReservationService{recordSet: rs, api: api}, nil
}

func (s *ReservationService) Create(ctx context.Context, fields ReservationFields) (*domain.Reservation, error) {
	fields = fields.normalize()
	if err := validateFields(fields); err != nil {
		return nil, err
	}
	r := fields.toReservation(uuid.NewString(), s.timestamp())
	if err := s.insert(ctx, r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *ReservationService) Update(ctx context.Context, id string, fields ReservationFields) (*domain.Reservation, error) {
	fields = fields.normalize()
	if err := validateFields(fields); err != nil {
		return nil, err
	}
	r, err := s.replace(ctx, id, func(old domain.Reservation) domain.Reservation {
		return fields.toReservation(old.ReservationID, old.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Register 通过记录 API 创建预约
func (s *ReservationService) Register(ctx context.Context, fields ReservationFields) (*domain.Reservation, error) {
	fields = fields.normalize()
	if err := validateFields(fields); err != nil {
		return nil, err
	}
	r, err := s.register(ctx, func(ctx context.Context) (domain.Reservation, error) {
		if s.api == nil {
			return fields.toReservation(uuid.NewString(), s.timestamp()), nil
		}
		created, err := s.api.CreateReservation(ctx, fields)
		if err != nil {
			return domain.Reservation{}, err
		}
		r := *created
		if r.ReservationID == "" {
			r.ReservationID = uuid.NewString()
		}
		if r.CreatedAt == "" {
			r.CreatedAt = s.timestamp()
		}
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}
