package filter

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Ahmed-Morsi888/Doctor-system/internal/models"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/reactive"

	"go.uber.org/zap"
)

// DefaultPageSize 默认每页行数
const DefaultPageSize = 10

// View 派生视图：过滤后的完整序列 + 总数
type View[T any] struct {
	Items    []T      `json:"items"`
	Total    int      `json:"total"`
	Criteria Criteria `json:"criteria"`
	seq      uint64
}

// ListOptions 列表状态参数
type ListOptions struct {
	Debounce  time.Duration
	PageSize  int
	AfterFunc AfterFunc
}

// ListState 单个列表页面的状态：后备集合、过滤条件、派生视图、选中项
type ListState[T Record] struct {
	mu         sync.Mutex
	name       string
	items      []T
	criteria   Criteria
	rawSearch  string
	selectedID string
	seq        uint64
	applies    atomic.Uint64

	view       *reactive.Signal[View[T]]
	pagination *reactive.Signal[models.PaginationEvent]
	debouncer  *Debouncer
	logger     *zap.Logger
}

// NewListState 创建列表状态，并立即以默认条件派生一次视图
func NewListState[T Record](name string, items []T, opts ListOptions, logger *zap.Logger) *ListState[T] {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Debounce == 0 {
		opts.Debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &ListState[T]{
		name:     name,
		items:    append([]T(nil), items...),
		criteria: Criteria{Category: CategoryAll, PageSize: opts.PageSize},
		logger:   logger,
	}
	// 旧的派生结果（seq 更小）不会覆盖新结果
	s.view = reactive.NewWithEqual(View[T]{Items: []T{}}, func(a, b View[T]) bool { return a.seq == b.seq })
	s.pagination = reactive.NewComparable(models.NewPaginationEvent(0, opts.PageSize, 0))
	s.debouncer = NewDebouncer(opts.Debounce, opts.AfterFunc, s.applySearch)

	s.mu.Lock()
	v := s.deriveLocked()
	s.mu.Unlock()
	s.publish(v)
	return s
}

// OnSearchInput 原始按键输入，经防抖后生效
func (s *ListState[T]) OnSearchInput(text string) {
	s.mu.Lock()
	s.rawSearch = text
	s.mu.Unlock()
	s.debouncer.Push(text)
}

// ClearSearch 清空搜索（同样经过防抖）
func (s *ListState[T]) ClearSearch() {
	s.OnSearchInput("")
}

func (s *ListState[T]) applySearch(text string) {
	s.mu.Lock()
	s.criteria.Search = text
	s.criteria.Page = 0
	v := s.deriveLocked()
	s.mu.Unlock()

	s.logger.Debug("list search applied",
		zap.String("list", s.name),
		zap.String("search", text),
		zap.Int("total", v.Total),
	)
	s.publish(v)
	s.pagination.Set(models.NewPaginationEvent(0, v.Criteria.PageSize, 0))
}

// OnCategoryChange 分类过滤立即生效，沿用最近一次输入的搜索文本
func (s *ListState[T]) OnCategoryChange(category string) {
	if category == "" {
		category = CategoryAll
	}
	s.mu.Lock()
	s.criteria.Category = category
	s.criteria.Search = s.rawSearch
	s.criteria.Page = 0
	v := s.deriveLocked()
	s.mu.Unlock()
	// 之后的防抖去重以当前生效的搜索为准
	s.debouncer.Sync(v.Criteria.Search)
	s.publish(v)
	s.pagination.Set(models.NewPaginationEvent(0, v.Criteria.PageSize, 0))
}

// OnPageChange 分页变化只更新记账，不重新过滤
func (s *ListState[T]) OnPageChange(first, rows, page int) models.PaginationEvent {
	s.mu.Lock()
	if rows <= 0 {
		rows = s.criteria.PageSize
	}
	ev := models.NewPaginationEvent(first, rows, page)
	s.criteria.PageSize = ev.Rows
	s.criteria.Page = ev.Page
	s.mu.Unlock()

	s.pagination.Set(ev)
	return ev
}

// SetItems 替换后备集合，并用当前条件重新派生
func (s *ListState[T]) SetItems(items []T) {
	s.mu.Lock()
	s.items = append([]T(nil), items...)
	v := s.deriveLocked()
	s.mu.Unlock()
	s.publish(v)
}

// Select 设置选中记录 ID（空串取消选中）
func (s *ListState[T]) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
}

// Selected 返回选中记录；ID 不在后备集合中时返回 false
func (s *ListState[T]) Selected() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	if s.selectedID == "" {
		return zero, false
	}
	for _, it := range s.items {
		if it.RecordID() == s.selectedID {
			return it, true
		}
	}
	return zero, false
}

// View 当前派生视图
func (s *ListState[T]) View() View[T] {
	return s.view.Get()
}

// Criteria 当前过滤条件
func (s *ListState[T]) Criteria() Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// Page 当前页的记录
func (s *ListState[T]) Page() []T {
	c := s.Criteria()
	return Window(s.View().Items, c.First(), c.PageSize)
}

// Applies 过滤执行次数
func (s *ListState[T]) Applies() uint64 {
	return s.applies.Load()
}

// ViewSignal 派生视图的只读信号
func (s *ListState[T]) ViewSignal() reactive.ReadOnly[View[T]] {
	return s.view
}

// PaginationSignal 分页事件的只读信号
func (s *ListState[T]) PaginationSignal() reactive.ReadOnly[models.PaginationEvent] {
	return s.pagination
}

// Close 取消等待中的搜索
func (s *ListState[T]) Close() {
	s.debouncer.Close()
}

func (s *ListState[T]) deriveLocked() View[T] {
	items, total := Apply(s.criteria, s.items)
	s.applies.Add(1)
	s.seq++
	return View[T]{Items: items, Total: total, Criteria: s.criteria, seq: s.seq}
}

func (s *ListState[T]) publish(v View[T]) {
	s.view.Update(func(cur View[T]) View[T] {
		if cur.seq > v.seq {
			return cur
		}
		return v
	})
}
