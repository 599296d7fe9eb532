package repository

import (
	"context"
	"fmt"
	"sync"
)

// MemoryRecordsRepo 进程内集合：启动时由种子数据初始化，重启即恢复
type MemoryRecordsRepo[T Identified] struct {
	mu    sync.RWMutex
	items []T
}

// NewMemoryRecordsRepo seed 中重复 ID 只保留第一条
func NewMemoryRecordsRepo[T Identified](seed []T) *MemoryRecordsRepo[T] {
	r := &MemoryRecordsRepo[T]{items: make([]T, 0, len(seed))}
	seen := make(map[string]struct{}, len(seed))
	for _, it := range seed {
		if _, dup := seen[it.RecordID()]; dup {
			continue
		}
		seen[it.RecordID()] = struct{}{}
		r.items = append(r.items, it)
	}
	return r
}

func (r *MemoryRecordsRepo[T]) List(_ context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *MemoryRecordsRepo[T]) Get(_ context.Context, id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexLocked(id); i >= 0 {
		return r.items[i], nil
	}
	var zero T
	return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (r *MemoryRecordsRepo[T]) Insert(_ context.Context, item T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexLocked(item.RecordID()) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicate, item.RecordID())
	}
	r.items = append(r.items, item)
	return nil
}

func (r *MemoryRecordsRepo[T]) Replace(_ context.Context, id string, item T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r.items[i] = item
	return nil
}

func (r *MemoryRecordsRepo[T]) Remove(_ context.Context, id string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	i := r.indexLocked(id)
	if i < 0 {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	removed := r.items[i]
	r.items = append(r.items[:i:i], r.items[i+1:]...)
	return removed, nil
}

// Len 记录数
func (r *MemoryRecordsRepo[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *MemoryRecordsRepo[T]) indexLocked(id string) int {
	for i, it := range r.items {
		if it.RecordID() == id {
			return i
		}
	}
	return -1
}
