package service

import (
	"context"
	"sort"
	"strings"

	"github.com/Ahmed-Morsi888/Doctor-system/internal/reactive"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Direction 文字方向
type Direction string

const (
	DirLTR Direction = "ltr"
	DirRTL Direction = "rtl"
)

// 支持的界面语言
var supportedLanguages = map[string]Direction{
	"en": DirLTR,
	"ar": DirRTL,
}

const DefaultLanguage = "en"

// LanguageState 当前语言与方向
type LanguageState struct {
	Code string    `json:"code"`
	Dir  Direction `json:"dir"`
}

// LanguageService 当前界面语言；变化时同步通知订阅者（翻译引擎）并持久化
// 状态跟随偏好中的语言值，因此 PreferenceService.Reset 也会切回默认语言
type LanguageService struct {
	prefs  *PreferenceService
	state  *reactive.Signal[LanguageState]
	stop   func()
	logger *zap.Logger
}

// NewLanguageService 初始语言取自偏好，非法值回退为 en
func NewLanguageService(ctx context.Context, prefs *PreferenceService, logger *zap.Logger) *LanguageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &LanguageService{
		prefs:  prefs,
		state:  reactive.NewComparable(languageState(prefs.Language(ctx))),
		logger: logger,
	}
	s.stop = prefs.LanguageSignal().Subscribe(func(code string) {
		s.state.Set(languageState(code))
	})
	return s
}

func languageState(code string) LanguageState {
	normalized, ok := NormalizeLanguage(code)
	if !ok {
		normalized = DefaultLanguage
	}
	return LanguageState{Code: normalized, Dir: supportedLanguages[normalized]}
}

// NormalizeLanguage "EN" / "en-US" / "ar-EG" 归一为基础语言；不支持时返回 false
func NormalizeLanguage(code string) (string, bool) {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	b := base.String()
	if _, ok := supportedLanguages[b]; !ok {
		return "", false
	}
	return b, true
}

// SupportedLanguages 按字母序
func SupportedLanguages() []string {
	out := make([]string, 0, len(supportedLanguages))
	for code := range supportedLanguages {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func (s *LanguageService) Current() string { return s.state.Get().Code }

func (s *LanguageService) State() LanguageState { return s.state.Get() }

// SetLanguage 切换语言；未知语言或与当前相同时不做任何事，返回 false
// 比较与持久化在偏好写锁内完成，并发调用时 Current() 与存储值一致
func (s *LanguageService) SetLanguage(ctx context.Context, code string) bool {
	normalized, ok := NormalizeLanguage(code)
	if !ok {
		s.logger.Debug("Ignoring unsupported language", zap.String("code", code))
		return false
	}
	_, changed := s.prefs.Update(ctx, KeyLanguage, func(current string) (string, bool) {
		return normalized, languageState(current).Code != normalized
	})
	if changed {
		s.logger.Info("Language changed", zap.String("language", normalized), zap.String("dir", string(supportedLanguages[normalized])))
	}
	return changed
}

func (s *LanguageService) IsRightToLeft() bool { return s.state.Get().Dir == DirRTL }

// Dir "rtl" / "ltr"
func (s *LanguageService) Dir() string { return string(s.state.Get().Dir) }

// Subscribe 注册语言变化回调（同步调用）
func (s *LanguageService) Subscribe(fn func(LanguageState)) func() {
	return s.state.Subscribe(fn)
}

func (s *LanguageService) Signal() reactive.ReadOnly[LanguageState] { return s.state }

// Close 停止跟随偏好
func (s *LanguageService) Close() { s.stop() }
