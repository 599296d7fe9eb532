package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Ahmed-Morsi888/Doctor-system/internal/events"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/filter"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/reactive"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/repository"

	"go.uber.org/zap"
)

// CreateState 异步创建的进度
type CreateState struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error"`
}

// recordSet 单个集合的变更入口：修改后备集合后用当前条件重新派生视图
type recordSet[T filter.Record] struct {
	collection string
	mu         sync.Mutex // 串行化 变更 + 重新派生
	repo       repository.RecordsRepository[T]
	list       *filter.ListState[T]
	events     events.Publisher
	create     *reactive.Signal[CreateState]
	now        func() time.Time
	logger     *zap.Logger
}

func newRecordSet[T filter.Record](ctx context.Context, collection string, repo repository.RecordsRepository[T], opts filter.ListOptions, pub events.Publisher, logger *zap.Logger) (*recordSet[T], error) {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	items, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", collection, err)
	}
	return &recordSet[T]{
		collection: collection,
		repo:       repo,
		list:       filter.NewListState(collection, items, opts, logger),
		events:     pub,
		create:     reactive.NewComparable(CreateState{}),
		now:        time.Now,
		logger:     logger,
	}, nil
}

// Collection 集合名
func (s *recordSet[T]) Collection() string { return s.collection }

// ListState 该集合的列表状态（搜索 / 分类 / 分页 / 选中）
func (s *recordSet[T]) ListState() *filter.ListState[T] { return s.list }

// Records 后备集合快照
func (s *recordSet[T]) Records(ctx context.Context) ([]T, error) {
	return s.repo.List(ctx)
}

// Get 按 ID 查询
func (s *recordSet[T]) Get(ctx context.Context, id string) (T, error) {
	return s.repo.Get(ctx, id)
}

// Delete 删除记录；ID 不存在时返回 ErrNotFound，集合与视图不变
func (s *recordSet[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	removed, err := s.repo.Remove(ctx, id)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	err = s.refreshLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.logger.Info("Record deleted", zap.String("collection", s.collection), zap.String("id", id))
	s.publish(ctx, events.ActionDeleted, id, removed)
	return nil
}

// CreateState 当前异步创建状态
func (s *recordSet[T]) CreateState() CreateState { return s.create.Get() }

// CreateStateSignal 异步创建状态的只读信号
func (s *recordSet[T]) CreateStateSignal() reactive.ReadOnly[CreateState] { return s.create }

// Close 停止列表的防抖定时器
func (s *recordSet[T]) Close() { s.list.Close() }

func (s *recordSet[T]) insert(ctx context.Context, rec T) error {
	s.mu.Lock()
	if err := s.repo.Insert(ctx, rec); err != nil {
		s.mu.Unlock()
		return err
	}
	err := s.refreshLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.logger.Info("Record created", zap.String("collection", s.collection), zap.String("id", rec.RecordID()))
	s.publish(ctx, events.ActionCreated, rec.RecordID(), rec)
	return nil
}

// replace 用 build 基于旧记录构造新记录并原位替换
func (s *recordSet[T]) replace(ctx context.Context, id string, build func(old T) T) (T, error) {
	var zero T
	s.mu.Lock()
	old, err := s.repo.Get(ctx, id)
	if err != nil {
		s.mu.Unlock()
		return zero, err
	}
	updated := build(old)
	if err := s.repo.Replace(ctx, id, updated); err != nil {
		s.mu.Unlock()
		return zero, err
	}
	err = s.refreshLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return zero, err
	}

	s.logger.Info("Record updated", zap.String("collection", s.collection), zap.String("id", id))
	s.publish(ctx, events.ActionUpdated, id, updated)
	return updated, nil
}

// register 异步创建：loading -> 远端创建 -> 写入集合；失败时记录错误信息，不重试
func (s *recordSet[T]) register(ctx context.Context, remote func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	s.create.Set(CreateState{Loading: true})

	rec, err := remote(ctx)
	if err != nil {
		if !errors.Is(err, ErrNetwork) {
			err = fmt.Errorf("%w: %v", ErrNetwork, err)
		}
		s.create.Set(CreateState{Error: err.Error()})
		s.logger.Warn("Remote create failed", zap.String("collection", s.collection), zap.Error(err))
		return zero, err
	}
	if err := s.insert(ctx, rec); err != nil {
		s.create.Set(CreateState{Error: err.Error()})
		return zero, err
	}
	s.create.Set(CreateState{})
	return rec, nil
}

func (s *recordSet[T]) refreshLocked(ctx context.Context) error {
	items, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload %s: %w", s.collection, err)
	}
	s.list.SetItems(items)
	return nil
}

func (s *recordSet[T]) publish(ctx context.Context, action events.Action, id string, rec any) {
	if err := s.events.Publish(ctx, events.NewRecordEvent(s.collection, action, id, rec)); err != nil {
		s.logger.Warn("Failed to publish record event",
			zap.String("collection", s.collection),
			zap.String("action", string(action)),
			zap.String("id", id),
			zap.Error(err),
		)
	}
}

func (s *recordSet[T]) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
