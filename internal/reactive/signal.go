// Package reactive 提供简单的可观察状态容器：读取当前值、订阅变化（同步通知）、派生值。
package reactive

import (
	"sort"
	"sync"
)

// ReadOnly 只读信号：对外暴露的状态
type ReadOnly[T any] interface {
	Get() T
	Subscribe(fn func(T)) (unsubscribe func())
}

// Signal 可写信号
type Signal[T any] struct {
	mu    sync.RWMutex
	value T
	equal func(a, b T) bool
	subs  map[uint64]func(T)
	next  uint64
}

// New 创建信号；每次 Set 都会通知订阅者
func New[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial, subs: map[uint64]func(T){}}
}

// NewComparable 创建信号；值未变化时不通知
func NewComparable[T comparable](initial T) *Signal[T] {
	return NewWithEqual(initial, func(a, b T) bool { return a == b })
}

// NewWithEqual 创建信号，equal 返回 true 时视为未变化
func NewWithEqual[T any](initial T, equal func(a, b T) bool) *Signal[T] {
	s := New(initial)
	s.equal = equal
	return s
}

func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set 设置新值，返回是否发生变化
func (s *Signal[T]) Set(v T) bool {
	return s.Update(func(T) T { return v })
}

// Update 基于当前值计算新值
func (s *Signal[T]) Update(fn func(current T) T) bool {
	s.mu.Lock()
	next := fn(s.value)
	if s.equal != nil && s.equal(s.value, next) {
		s.mu.Unlock()
		return false
	}
	s.value = next
	subs := s.snapshotLocked()
	s.mu.Unlock()

	// 回调在锁外执行，允许订阅者读取其它信号
	for _, fn := range subs {
		fn(next)
	}
	return true
}

// Subscribe 注册订阅者，返回取消订阅函数（可重复调用）
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// ReadOnly 返回只读视图
func (s *Signal[T]) ReadOnly() ReadOnly[T] { return s }

// snapshotLocked 按注册顺序返回订阅者
func (s *Signal[T]) snapshotLocked() []func(T) {
	ids := make([]uint64, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]func(T), 0, len(ids))
	for _, id := range ids {
		out = append(out, s.subs[id])
	}
	return out
}

// Computed 派生信号：依赖变化时立即重新计算
type Computed[T any] struct {
	sig  *Signal[T]
	stop func()
}

// Derive 从 src 派生新信号
func Derive[S, T any](src ReadOnly[S], fn func(S) T) *Computed[T] {
	c := &Computed[T]{sig: New(fn(src.Get()))}
	c.stop = src.Subscribe(func(v S) {
		c.sig.Set(fn(v))
	})
	return c
}

func (c *Computed[T]) Get() T { return c.sig.Get() }

func (c *Computed[T]) Subscribe(fn func(T)) func() { return c.sig.Subscribe(fn) }

// Close 停止跟踪依赖
func (c *Computed[T]) Close() { c.stop() }
