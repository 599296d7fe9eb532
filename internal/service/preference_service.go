package service

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/Ahmed-Morsi888/Doctor-system/internal/reactive"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/store"

	"go.uber.org/zap"
)

const (
	KeySidebarCollapsed = "sidebarCollapsed"
	KeyLanguage         = "language"

	DefaultPreferencePrefix = "clinic:preferences:"
)

var preferenceDefaults = map[string]string{
	KeySidebarCollapsed: "false",
	KeyLanguage:         "en",
}

// Preferences 偏好快照
type Preferences struct {
	SidebarCollapsed bool   `json:"sidebarCollapsed"`
	Language         string `json:"language"`
}

// PreferenceService UI 偏好（侧边栏折叠、语言）
// 存储不可用时不返回错误：本次会话退化为仅内存，并只告警一次
type PreferenceService struct {
	kv     store.KV
	prefix string
	logger *zap.Logger

	// writeMu 串行化所有写操作（含信号通知），保证读-改-写原子且通知顺序与写入顺序一致
	writeMu sync.Mutex

	mu       sync.Mutex
	values   map[string]string
	degraded bool
	warnOnce sync.Once

	sidebar  *reactive.Signal[bool]
	language *reactive.Signal[string]
}

// NewPreferenceService 创建偏好服务，并读取已持久化的值
func NewPreferenceService(ctx context.Context, kv store.KV, prefix string, logger *zap.Logger) *PreferenceService {
	if prefix == "" {
		prefix = DefaultPreferencePrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &PreferenceService{
		kv:     kv,
		prefix: prefix,
		logger: logger,
		values: map[string]string{},
	}
	s.sidebar = reactive.NewComparable(parseBool(s.Get(ctx, KeySidebarCollapsed)))
	s.language = reactive.NewComparable(s.Get(ctx, KeyLanguage))
	return s
}

// Get 读取偏好；从未写入或读取失败时返回默认值
func (s *PreferenceService) Get(ctx context.Context, key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.values[key]; ok {
		return v
	}
	v := preferenceDefaults[key]
	if !s.degraded {
		stored, err := s.kv.Get(ctx, s.prefix+key)
		switch {
		case err == nil:
			v = stored
		case errors.Is(err, store.ErrMiss):
		default:
			s.degradeLocked("read", key, err)
		}
	}
	s.values[key] = v
	return v
}

// Set 写入偏好（同步写持久化存储）
func (s *PreferenceService) Set(ctx context.Context, key, value string) {
	s.Update(ctx, key, func(string) (string, bool) { return value, true })
}

// Update 在写锁内完成读-改-写；fn 返回 false 时不写入。返回最终值以及是否写入
// 订阅者回调在写锁内执行，回调中不能再写偏好
func (s *PreferenceService) Update(ctx context.Context, key string, fn func(current string) (string, bool)) (string, bool) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current := s.Get(ctx, key)
	next, ok := fn(current)
	if !ok {
		return current, false
	}
	s.store(ctx, key, next)
	s.notify(key, next)
	return next, true
}

func (s *PreferenceService) store(ctx context.Context, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	if !s.degraded {
		if err := s.kv.Set(ctx, s.prefix+key, value, 0); err != nil {
			s.degradeLocked("write", key, err)
		}
	}
}

func (s *PreferenceService) notify(key, value string) {
	switch key {
	case KeySidebarCollapsed:
		s.sidebar.Set(parseBool(value))
	case KeyLanguage:
		s.language.Set(value)
	}
}

func (s *PreferenceService) SidebarCollapsed(ctx context.Context) bool {
	return parseBool(s.Get(ctx, KeySidebarCollapsed))
}

func (s *PreferenceService) SetSidebarCollapsed(ctx context.Context, collapsed bool) {
	s.Set(ctx, KeySidebarCollapsed, strconv.FormatBool(collapsed))
}

// ToggleSidebar 切换侧边栏，返回新状态
func (s *PreferenceService) ToggleSidebar(ctx context.Context) bool {
	v, _ := s.Update(ctx, KeySidebarCollapsed, func(current string) (string, bool) {
		return strconv.FormatBool(!parseBool(current)), true
	})
	return parseBool(v)
}

func (s *PreferenceService) Language(ctx context.Context) string {
	return s.Get(ctx, KeyLanguage)
}

// SetLanguage 只负责持久化；合法性由 LanguageService 判断
func (s *PreferenceService) SetLanguage(ctx context.Context, code string) {
	s.Set(ctx, KeyLanguage, code)
}

// Snapshot 全部偏好
func (s *PreferenceService) Snapshot(ctx context.Context) Preferences {
	return Preferences{
		SidebarCollapsed: s.SidebarCollapsed(ctx),
		Language:         s.Language(ctx),
	}
}

// Reset 删除已持久化的偏好，恢复默认值（语言订阅者同样收到默认语言）
func (s *PreferenceService) Reset(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.values = map[string]string{}
	if !s.degraded {
		keys := make([]string, 0, len(preferenceDefaults))
		for k := range preferenceDefaults {
			keys = append(keys, s.prefix+k)
		}
		if err := s.kv.Delete(ctx, keys...); err != nil {
			s.degradeLocked("delete", "*", err)
		}
	}
	s.mu.Unlock()

	s.notify(KeySidebarCollapsed, preferenceDefaults[KeySidebarCollapsed])
	s.notify(KeyLanguage, preferenceDefaults[KeyLanguage])
}

// SidebarSignal 侧边栏折叠状态的只读信号
func (s *PreferenceService) SidebarSignal() reactive.ReadOnly[bool] {
	return s.sidebar
}

// LanguageSignal 已持久化的语言代码（未归一化）
func (s *PreferenceService) LanguageSignal() reactive.ReadOnly[string] {
	return s.language
}

// Degraded 是否已退化为仅内存
func (s *PreferenceService) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *PreferenceService) degradeLocked(op, key string, err error) {
	s.degraded = true
	s.warnOnce.Do(func() {
		s.logger.Warn("Preference storage unavailable, keeping preferences in memory for this session",
			zap.String("op", op),
			zap.String("key", key),
			zap.Error(err),
		)
	})
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
